package transport

import (
	"bytes"
	"context"
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/klauspost/compress/gzip"

	"github.com/mfrntic/eudr-api-client-sub001/pkg/logging"
	"github.com/mfrntic/eudr-api-client-sub001/pkg/soap"
)

// TLS version constants
const (
	TLS12 = tls.VersionTLS12
	TLS13 = tls.VersionTLS13
)

// RecommendedTLS12CipherSuites lists the TLS 1.2 suites accepted by the
// TRACES NT front ends.
var RecommendedTLS12CipherSuites = []uint16{
	tls.TLS_ECDHE_ECDSA_WITH_AES_256_GCM_SHA384,
	tls.TLS_ECDHE_ECDSA_WITH_AES_128_GCM_SHA256,
	tls.TLS_ECDHE_RSA_WITH_AES_256_GCM_SHA384,
	tls.TLS_ECDHE_RSA_WITH_AES_128_GCM_SHA256,
}

// Config contains HTTPS client configuration.
type Config struct {
	MinTLSVersion   uint16
	MaxTLSVersion   uint16
	CipherSuites    []uint16
	RootCAs         *x509.CertPool
	Timeout         time.Duration
	IdleConnTimeout time.Duration
	UserAgent       string
	Retry           RetryConfig
}

// DefaultConfig returns a default client configuration.
func DefaultConfig() *Config {
	return &Config{
		MinTLSVersion:   TLS12,
		MaxTLSVersion:   TLS13,
		CipherSuites:    RecommendedTLS12CipherSuites,
		Timeout:         30 * time.Second,
		IdleConnTimeout: 90 * time.Second,
		UserAgent:       "eudr-api-client/1.0",
		Retry:           DefaultRetryConfig(),
	}
}

// Client sends SOAP envelopes over HTTPS.
type Client struct {
	client  *http.Client
	config  *Config
	log     logging.Logger
	metrics *Metrics
}

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the logger used for request tracing.
func WithLogger(log logging.Logger) Option {
	return func(c *Client) {
		c.log = log
	}
}

// WithMetrics attaches a Prometheus collector.
func WithMetrics(m *Metrics) Option {
	return func(c *Client) {
		c.metrics = m
	}
}

// WithHTTPClient replaces the underlying HTTP client. Used by tests and
// by callers that need proxies or custom transports.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.client = hc
	}
}

// NewClient creates a new SOAP transport client.
func NewClient(config *Config, opts ...Option) *Client {
	if config == nil {
		config = DefaultConfig()
	}

	tlsConfig := &tls.Config{
		MinVersion:   config.MinTLSVersion,
		MaxVersion:   config.MaxTLSVersion,
		CipherSuites: config.CipherSuites,
		RootCAs:      config.RootCAs,
	}

	httpTransport := &http.Transport{
		TLSClientConfig:     tlsConfig,
		IdleConnTimeout:     config.IdleConnTimeout,
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
	}

	c := &Client{
		client: &http.Client{
			Transport: httpTransport,
			Timeout:   config.Timeout,
		},
		config: config,
		log:    logging.NewDefault(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Call posts a SOAP envelope to endpoint and returns the response body.
// Transient failures are retried per the configured retry policy; SOAP
// faults are returned as *soap.Fault without retrying.
func (c *Client) Call(ctx context.Context, endpoint, action string, envelope []byte) ([]byte, error) {
	retry := c.config.Retry.withDefaults()

	var lastErr error
	for attempt := 0; ; attempt++ {
		start := time.Now()
		body, retryable, err := c.do(ctx, endpoint, action, envelope)
		c.observe(action, time.Since(start), err)

		if err == nil {
			return body, nil
		}
		lastErr = err

		if !retryable {
			return nil, err
		}
		if attempt >= retry.MaxRetries {
			return nil, fmt.Errorf("request failed after %d attempts: %w", attempt+1, lastErr)
		}

		delay := retry.delay(attempt)
		c.log.Debug("retrying request", "endpoint", endpoint, "attempt", attempt+1, "delay", delay, "error", err)
		if c.metrics != nil {
			c.metrics.retriesTotal.WithLabelValues(action).Inc()
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(delay):
		}
	}
}

// do performs a single attempt. The second return value reports whether
// the failure is worth retrying.
func (c *Client) do(ctx context.Context, endpoint, action string, envelope []byte) ([]byte, bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(envelope))
	if err != nil {
		return nil, false, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "text/xml; charset=utf-8")
	req.Header.Set("SOAPAction", `"`+action+`"`)
	req.Header.Set("User-Agent", c.config.UserAgent)
	req.Header.Set("Accept-Encoding", "gzip")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, true, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := readBody(resp)
	if err != nil {
		return nil, true, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode == http.StatusOK {
		return body, false, nil
	}

	// EUDR delivers SOAP faults with status 500; a fault is a definitive
	// answer, not a transient condition.
	if fault := soap.ParseFault(body); fault != nil {
		return nil, false, fault
	}

	err = fmt.Errorf("unexpected status code %d: %s", resp.StatusCode, snippet(body))
	return nil, retryableStatus(resp.StatusCode), err
}

// readBody reads the response body, decoding gzip when the server used it.
func readBody(resp *http.Response) ([]byte, error) {
	reader := resp.Body
	if strings.EqualFold(resp.Header.Get("Content-Encoding"), "gzip") {
		gz, err := gzip.NewReader(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("opening gzip reader: %w", err)
		}
		defer gz.Close()
		reader = gz
	}
	return io.ReadAll(reader)
}

func retryableStatus(code int) bool {
	switch code {
	case http.StatusTooManyRequests,
		http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true
	}
	return false
}

func (c *Client) observe(action string, elapsed time.Duration, err error) {
	if c.metrics == nil {
		return
	}
	outcome := "success"
	if err != nil {
		outcome = "error"
		if _, ok := err.(*soap.Fault); ok {
			outcome = "fault"
		}
	}
	c.metrics.requestsTotal.WithLabelValues(action, outcome).Inc()
	c.metrics.requestDuration.WithLabelValues(action).Observe(elapsed.Seconds())
}

// snippet truncates a response body for error messages.
func snippet(body []byte) string {
	const max = 512
	s := strings.TrimSpace(string(body))
	if len(s) > max {
		return s[:max] + "..."
	}
	return s
}
