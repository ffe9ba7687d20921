package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/sirupsen/logrus"
)

// Logger is the leveled logging interface the client depends on. Fields
// are alternating key/value pairs appended to the message.
//
// Fatal logs at the fatal level but does not terminate the process;
// process exit is the caller's decision.
type Logger interface {
	Trace(msg string, fields ...any)
	Debug(msg string, fields ...any)
	Info(msg string, fields ...any)
	Warn(msg string, fields ...any)
	Error(msg string, fields ...any)
	Fatal(msg string, fields ...any)

	SetLevel(level Level)
	Level() Level
}

// Config selects the logger implementation and its initial level. When
// Backend is set, the structured logrus implementation is used; otherwise
// messages are written as plain lines to Output (os.Stderr when nil).
type Config struct {
	Level   Level
	Backend *logrus.Logger
	Output  io.Writer
}

// envConfig is the environment surface of the package, read once per
// construction of the default logger.
type envConfig struct {
	Level string `env:"EUDR_LOG_LEVEL"`
}

// New constructs a Logger from cfg, selecting the structured or console
// variant once.
func New(cfg Config) Logger {
	if cfg.Backend != nil {
		return newStructured(cfg.Backend, cfg.Level)
	}
	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}
	return newConsole(out, cfg.Level)
}

// LevelFromEnv reads EUDR_LOG_LEVEL and returns the configured level, or
// DefaultLevel when the variable is unset or unrecognized.
func LevelFromEnv() Level {
	var ec envConfig
	if err := env.Parse(&ec); err != nil {
		return DefaultLevel
	}
	if ec.Level == "" {
		return DefaultLevel
	}
	level, ok := ParseLevel(ec.Level)
	if !ok {
		return DefaultLevel
	}
	return level
}

// NewDefault returns a console logger at the level configured in the
// environment.
func NewDefault() Logger {
	return New(Config{Level: LevelFromEnv()})
}

// Nop returns a logger that discards everything.
func Nop() Logger {
	return newConsole(io.Discard, LevelFatal+1)
}

// leveled holds the mutable current level shared by both implementations.
type leveled struct {
	level atomic.Int32
}

func (l *leveled) SetLevel(level Level) {
	l.level.Store(int32(level))
}

func (l *leveled) Level() Level {
	return Level(l.level.Load())
}

func (l *leveled) enabled(level Level) bool {
	return level >= l.Level()
}

// consoleLogger is the fallback implementation writing one line per
// message.
type consoleLogger struct {
	leveled
	mu  sync.Mutex
	out io.Writer
	now func() time.Time
}

func newConsole(out io.Writer, level Level) *consoleLogger {
	l := &consoleLogger{out: out, now: time.Now}
	l.SetLevel(level)
	return l
}

func (l *consoleLogger) log(level Level, msg string, fields []any) {
	if !l.enabled(level) {
		return
	}

	var b strings.Builder
	b.WriteString(l.now().UTC().Format(time.RFC3339))
	b.WriteByte(' ')
	b.WriteString(strings.ToUpper(level.String()))
	b.WriteByte(' ')
	b.WriteString(msg)
	for i := 0; i+1 < len(fields); i += 2 {
		fmt.Fprintf(&b, " %v=%v", fields[i], fields[i+1])
	}
	if len(fields)%2 != 0 {
		fmt.Fprintf(&b, " %v", fields[len(fields)-1])
	}
	b.WriteByte('\n')

	l.mu.Lock()
	defer l.mu.Unlock()
	io.WriteString(l.out, b.String())
}

func (l *consoleLogger) Trace(msg string, fields ...any) { l.log(LevelTrace, msg, fields) }
func (l *consoleLogger) Debug(msg string, fields ...any) { l.log(LevelDebug, msg, fields) }
func (l *consoleLogger) Info(msg string, fields ...any)  { l.log(LevelInfo, msg, fields) }
func (l *consoleLogger) Warn(msg string, fields ...any)  { l.log(LevelWarn, msg, fields) }
func (l *consoleLogger) Error(msg string, fields ...any) { l.log(LevelError, msg, fields) }
func (l *consoleLogger) Fatal(msg string, fields ...any) { l.log(LevelFatal, msg, fields) }

// structuredLogger emits through a logrus backend. Filtering happens here
// so SetLevel behaves identically across implementations; the backend is
// opened up to pass everything through.
type structuredLogger struct {
	leveled
	backend *logrus.Logger
}

var logrusLevels = map[Level]logrus.Level{
	LevelTrace: logrus.TraceLevel,
	LevelDebug: logrus.DebugLevel,
	LevelInfo:  logrus.InfoLevel,
	LevelWarn:  logrus.WarnLevel,
	LevelError: logrus.ErrorLevel,
	LevelFatal: logrus.FatalLevel,
}

func newStructured(backend *logrus.Logger, level Level) *structuredLogger {
	backend.SetLevel(logrus.TraceLevel)
	l := &structuredLogger{backend: backend}
	l.SetLevel(level)
	return l
}

func (l *structuredLogger) log(level Level, msg string, fields []any) {
	if !l.enabled(level) {
		return
	}

	entry := logrus.NewEntry(l.backend)
	if len(fields) > 0 {
		data := make(logrus.Fields, len(fields)/2)
		for i := 0; i+1 < len(fields); i += 2 {
			data[fmt.Sprint(fields[i])] = fields[i+1]
		}
		if len(fields)%2 != 0 {
			data["extra"] = fields[len(fields)-1]
		}
		entry = entry.WithFields(data)
	}

	// Log, not Fatal: logrus.Fatal would os.Exit.
	entry.Log(logrusLevels[level], msg)
}

func (l *structuredLogger) Trace(msg string, fields ...any) { l.log(LevelTrace, msg, fields) }
func (l *structuredLogger) Debug(msg string, fields ...any) { l.log(LevelDebug, msg, fields) }
func (l *structuredLogger) Info(msg string, fields ...any)  { l.log(LevelInfo, msg, fields) }
func (l *structuredLogger) Warn(msg string, fields ...any)  { l.log(LevelWarn, msg, fields) }
func (l *structuredLogger) Error(msg string, fields ...any) { l.log(LevelError, msg, fields) }
func (l *structuredLogger) Fatal(msg string, fields ...any) { l.log(LevelFatal, msg, fields) }
