package otel_test

import (
	"context"
	"errors"
	"rendezvous/infras/otel"
	"rendezvous/shared/failure"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func record(t *testing.T, fn func(scope otel.Scope)) sdktrace.ReadOnlySpan {
	t.Helper()

	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))

	_, span := provider.Tracer("test").Start(context.Background(), "booking.Create")
	scope := otel.NewScope(span)
	fn(scope)
	scope.End()

	spans := recorder.Ended()
	require.Len(t, spans, 1)

	return spans[0]
}

func TestTraceIfErrorServerFailure(t *testing.T) {
	span := record(t, func(scope otel.Scope) {
		scope.TraceIfError(errors.New("database gone"))
	})

	assert.Equal(t, codes.Error, span.Status().Code)
	assert.Equal(t, "database gone", span.Status().Description)
	require.Len(t, span.Events(), 1)
}

func TestTraceIfErrorClientFailure(t *testing.T) {
	span := record(t, func(scope otel.Scope) {
		scope.TraceIfError(failure.Conflict("plate already booked"))
	})

	assert.Equal(t, codes.Unset, span.Status().Code)
	require.Len(t, span.Events(), 1)
	assert.Contains(t, span.Events()[0].Attributes, attribute.Int("error.code", 409))
}

func TestTraceIfErrorNil(t *testing.T) {
	span := record(t, func(scope otel.Scope) {
		scope.TraceIfError(nil)
	})

	assert.Equal(t, codes.Unset, span.Status().Code)
	assert.Empty(t, span.Events())
}

func TestSetAttributes(t *testing.T) {
	span := record(t, func(scope otel.Scope) {
		scope.SetAttributes(map[string]any{
			"booking.id":     int64(7),
			"booking.plate":  "1234-AB-56",
			"booking.ids":    []int64{1, 2},
			"booking.active": true,
			"booking.window": struct{ From, To string }{"09:00", "11:00"},
		})
	})

	attrs := span.Attributes()

	assert.Contains(t, attrs, attribute.Int64("booking.id", 7))
	assert.Contains(t, attrs, attribute.String("booking.plate", "1234-AB-56"))
	assert.Contains(t, attrs, attribute.Int64Slice("booking.ids", []int64{1, 2}))
	assert.Contains(t, attrs, attribute.Bool("booking.active", true))
	assert.Contains(t, attrs, attribute.String("booking.window", "{09:00 11:00}"))
}
