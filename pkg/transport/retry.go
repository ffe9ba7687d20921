package transport

import (
	"math"
	"math/rand"
	"time"
)

// RetryConfig tunes the backoff applied to transient failures. The zero
// value gets sensible defaults: 3 retries starting at 500ms, doubling up
// to 10s, with 10% jitter.
type RetryConfig struct {
	// MaxRetries is the number of retries after the initial attempt.
	MaxRetries int
	// InitialBackoff is the delay before the first retry.
	InitialBackoff time.Duration
	// MaxBackoff caps the computed delay.
	MaxBackoff time.Duration
	// Multiplier grows the delay per attempt.
	Multiplier float64
	// Jitter is the relative randomization applied to each delay, in
	// [0, 1). 0.1 means +-10%.
	Jitter float64
}

// DefaultRetryConfig returns the default retry policy.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxRetries:     3,
		InitialBackoff: 500 * time.Millisecond,
		MaxBackoff:     10 * time.Second,
		Multiplier:     2.0,
		Jitter:         0.1,
	}
}

func (rc RetryConfig) withDefaults() RetryConfig {
	def := DefaultRetryConfig()
	if rc.InitialBackoff <= 0 {
		rc.InitialBackoff = def.InitialBackoff
	}
	if rc.MaxBackoff <= 0 {
		rc.MaxBackoff = def.MaxBackoff
	}
	if rc.Multiplier < 1 {
		rc.Multiplier = def.Multiplier
	}
	if rc.Jitter < 0 || rc.Jitter >= 1 {
		rc.Jitter = def.Jitter
	}
	return rc
}

// delay computes the exponential backoff with jitter for the given
// zero-based attempt.
func (rc RetryConfig) delay(attempt int) time.Duration {
	d := float64(rc.InitialBackoff) * math.Pow(rc.Multiplier, float64(attempt))
	if d > float64(rc.MaxBackoff) {
		d = float64(rc.MaxBackoff)
	}
	if rc.Jitter > 0 {
		d *= 1 + rc.Jitter*(2*rand.Float64()-1)
	}
	return time.Duration(d)
}
