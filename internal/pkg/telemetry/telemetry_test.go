package telemetry

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/log/global"
	sdklog "go.opentelemetry.io/otel/sdk/log"
	semconv "go.opentelemetry.io/otel/semconv/v1.34.0"
)

func TestNewResource(t *testing.T) {
	t.Run("sets the service name attribute", func(t *testing.T) {
		res, err := newResource("dictkit")
		require.NoError(t, err)

		value, ok := res.Set().Value(semconv.ServiceNameKey)
		require.True(t, ok, "service name attribute not found in resource")
		assert.Equal(t, "dictkit", value.AsString())
	})

	t.Run("accepts an empty service name", func(t *testing.T) {
		res, err := newResource("")

		require.NoError(t, err)
		assert.NotNil(t, res)
	})
}

func TestNoop(t *testing.T) {
	assert.NoError(t, Noop(t.Context()))
}

func TestLoggerProvider(t *testing.T) {
	t.Cleanup(func() { loggerProvider = nil })

	t.Run("is nil before Init", func(t *testing.T) {
		loggerProvider = nil

		assert.Nil(t, LoggerProvider())
	})

	t.Run("returns the registered provider", func(t *testing.T) {
		lp := sdklog.NewLoggerProvider()
		t.Cleanup(func() { _ = lp.Shutdown(context.Background()) })
		loggerProvider = lp

		assert.Same(t, lp, LoggerProvider())
	})
}

func TestInit(t *testing.T) {
	originalMeterProvider := otel.GetMeterProvider()
	originalTracerProvider := otel.GetTracerProvider()
	originalLoggerProvider := global.GetLoggerProvider()
	t.Cleanup(func() {
		otel.SetMeterProvider(originalMeterProvider)
		otel.SetTracerProvider(originalTracerProvider)
		global.SetLoggerProvider(originalLoggerProvider)
		loggerProvider = nil
	})

	t.Run("returns a shutdown function", func(t *testing.T) {
		// Exporters connect lazily, so Init succeeds without a collector.
		shutdown, err := Init(context.Background(), "dictkit-test")
		if err != nil {
			t.Logf("Init() failed without an OTLP endpoint: %v", err)
			return
		}
		require.NotNil(t, shutdown)
		require.NotNil(t, LoggerProvider())

		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()

		if err := shutdown(ctx); err != nil {
			t.Logf("shutdown returned error without a collector: %v", err)
		}
	})
}
