// Package logger provides a global, Sugared Zap logger configured through
// functional options. It emits JSON logs and carries key/value fields scoped
// to a context, so every entry produced while handling one command shares the
// same identifying fields.
//
// When telemetry has been initialized, entries are also bridged to the OTLP
// logger provider.
//
// Until Init is called the logger discards everything, which keeps library
// packages safe to use without any logging setup.
package logger

import (
	"context"
	"io"
	"os"
	"sync"

	"github.com/gabapcia/dictkit/internal/pkg/telemetry"

	"go.opentelemetry.io/contrib/bridges/otelzap"
	"go.opentelemetry.io/otel/log"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	// logger is the global SugaredLogger instance. It is replaced once by Init.
	logger = zap.NewNop().Sugar()

	// initOnce ensures the logger is only configured a single time.
	initOnce sync.Once
)

// fieldsKey is the context key under which scoped fields are stored.
type fieldsKey struct{}

// config holds configuration options for the logger.
type config struct {
	level  string    // the minimum log level (debug, info, warn, error, panic, fatal)
	output io.Writer // destination of the JSON entries

	provider log.LoggerProvider // receives every entry through otelzap when set
}

// Option configures the logger before initialization.
type Option func(*config)

// WithLevel sets the minimum log level for the global logger.
// Example levels: "debug", "info", "warn", "error".
func WithLevel(l string) Option {
	return func(c *config) {
		c.level = l
	}
}

// WithOutput sets the writer log entries are written to. Defaults to stderr,
// leaving stdout for command output.
func WithOutput(w io.Writer) Option {
	return func(c *config) {
		c.output = w
	}
}

// WithLoggerProvider bridges every entry to lp, regardless of the level. It
// defaults to the provider registered by telemetry.Init.
func WithLoggerProvider(lp log.LoggerProvider) Option {
	return func(c *config) {
		c.provider = lp
	}
}

// Init configures the global logger. By default it logs JSON to stderr at the
// "info" level. Calling Init multiple times has no effect after the first
// successful initialization.
//
// Returns an error if parsing the log level fails.
func Init(opts ...Option) error {
	cfg := config{level: "info", output: os.Stderr}
	if lp := telemetry.LoggerProvider(); lp != nil {
		cfg.provider = lp
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	level, err := zapcore.ParseLevel(cfg.level)
	if err != nil {
		return err
	}

	initOnce.Do(func() {
		cores := []zapcore.Core{
			zapcore.NewCore(
				zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
				zapcore.AddSync(cfg.output),
				level,
			),
		}

		if cfg.provider != nil {
			cores = append(cores, otelzap.NewCore("", otelzap.WithLoggerProvider(cfg.provider)))
		}

		logger = zap.New(zapcore.NewTee(cores...)).Sugar()
	})

	return nil
}

// Sync flushes any buffered log entries. It should be called on application
// shutdown to ensure all logs are written out.
func Sync() error {
	return logger.Sync()
}

// WithFields returns a copy of ctx carrying keysAndValues. Every entry logged
// with the returned context includes them, after any fields already scoped
// to ctx.
func WithFields(ctx context.Context, keysAndValues ...any) context.Context {
	fields := append(fieldsFrom(ctx), keysAndValues...)
	return context.WithValue(ctx, fieldsKey{}, fields)
}

// fieldsFrom returns a copy of the fields scoped to ctx.
func fieldsFrom(ctx context.Context) []any {
	if ctx == nil {
		return nil
	}

	fields, _ := ctx.Value(fieldsKey{}).([]any)
	return append([]any(nil), fields...)
}

func fromCtx(ctx context.Context) *zap.SugaredLogger {
	if fields := fieldsFrom(ctx); len(fields) > 0 {
		return logger.With(fields...)
	}
	return logger
}

// Debug logs a debug-level message with optional key/value context.
func Debug(ctx context.Context, msg string, keysAndValues ...any) {
	fromCtx(ctx).Debugw(msg, keysAndValues...)
}

// Info logs an info-level message with optional key/value context.
func Info(ctx context.Context, msg string, keysAndValues ...any) {
	fromCtx(ctx).Infow(msg, keysAndValues...)
}

// Warn logs a warn-level message with optional key/value context.
func Warn(ctx context.Context, msg string, keysAndValues ...any) {
	fromCtx(ctx).Warnw(msg, keysAndValues...)
}

// Error logs an error-level message with optional key/value context.
func Error(ctx context.Context, msg string, keysAndValues ...any) {
	fromCtx(ctx).Errorw(msg, keysAndValues...)
}
