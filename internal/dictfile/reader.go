package dictfile

import (
	"context"
	"errors"
	"fmt"

	"github.com/viant/afs"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/trace"

	"github.com/gabapcia/dictkit/internal/literal"
	"github.com/gabapcia/dictkit/internal/pkg/logger"
)

const instrumentationScope = "github.com/gabapcia/dictkit/internal/dictfile"

const (
	outcomeOK         = "ok"
	outcomeReadError  = "read_error"
	outcomeParseError = "parse_error"
)

var defaultReader = NewReader()

// Reader reads dictionary files from any location its file system
// understands: local paths and file://, mem:// or cloud storage URLs.
type Reader struct {
	fs     afs.Service
	tracer trace.Tracer
	reads  metric.Int64Counter
}

type readerConfig struct {
	fs             afs.Service
	tracerProvider trace.TracerProvider
	meterProvider  metric.MeterProvider
}

// Option configures a Reader.
type Option func(*readerConfig)

// WithFileSystem sets the file system used to open locations.
func WithFileSystem(fs afs.Service) Option {
	return func(c *readerConfig) {
		c.fs = fs
	}
}

// WithTracerProvider sets the provider of read spans.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(c *readerConfig) {
		c.tracerProvider = tp
	}
}

// WithMeterProvider sets the provider of the read counter.
func WithMeterProvider(mp metric.MeterProvider) Option {
	return func(c *readerConfig) {
		c.meterProvider = mp
	}
}

// NewReader returns a Reader backed by afs.New that reports to the global
// OpenTelemetry providers unless configured otherwise.
func NewReader(opts ...Option) *Reader {
	cfg := readerConfig{
		fs:             afs.New(),
		tracerProvider: otel.GetTracerProvider(),
		meterProvider:  otel.GetMeterProvider(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	reads, err := cfg.meterProvider.Meter(instrumentationScope).Int64Counter(
		"dictfile.reads",
		metric.WithDescription("Dictionary files read, by outcome"),
	)
	if err != nil {
		reads = noop.Int64Counter{}
	}

	return &Reader{
		fs:     cfg.fs,
		tracer: cfg.tracerProvider.Tracer(instrumentationScope),
		reads:  reads,
	}
}

// Read opens location, extracts its brace-delimited literal and parses it.
// The file is closed before Read returns.
func (r *Reader) Read(ctx context.Context, location string) (any, error) {
	ctx, span := r.tracer.Start(ctx, "dictfile.Read", trace.WithAttributes(
		attribute.String("dictfile.location", location),
	))
	defer span.End()

	v, err := r.read(ctx, location)

	outcome := outcomeOK
	switch {
	case errors.Is(err, ErrRead):
		outcome = outcomeReadError
	case err != nil:
		outcome = outcomeParseError
	}
	r.reads.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome)))

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		logger.Debug(ctx, "dictionary file rejected", "location", location, "error", err)
		return nil, err
	}

	logger.Debug(ctx, "dictionary file read", "location", location)
	return v, nil
}

func (r *Reader) read(ctx context.Context, location string) (v any, err error) {
	rc, err := r.fs.OpenURL(ctx, location)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRead, err)
	}
	defer func() {
		if closeErr := rc.Close(); closeErr != nil && err == nil {
			v, err = nil, fmt.Errorf("%w: %w", ErrRead, closeErr)
		}
	}()

	return Parse(rc)
}

// ReadDict reads location and requires the literal to be a mapping.
func (r *Reader) ReadDict(ctx context.Context, location string) (*literal.Dict, error) {
	v, err := r.Read(ctx, location)
	if err != nil {
		return nil, err
	}

	d, ok := v.(*literal.Dict)
	if !ok {
		return nil, fmt.Errorf("%w: got %s", ErrNotMapping, literal.TypeName(v))
	}
	return d, nil
}

// Read reads location with the default Reader.
func Read(ctx context.Context, location string) (any, error) {
	return defaultReader.Read(ctx, location)
}

// ReadDict reads a mapping from location with the default Reader.
func ReadDict(ctx context.Context, location string) (*literal.Dict, error) {
	return defaultReader.ReadDict(ctx, location)
}
