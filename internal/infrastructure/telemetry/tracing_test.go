package telemetry

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelcodes "go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// installSpanRecorder swaps in a recording provider for the duration of
// the test so business spans can be inspected after End.
func installSpanRecorder(t *testing.T) *tracetest.SpanRecorder {
	t.Helper()

	sr := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	previous := otel.GetTracerProvider()
	otel.SetTracerProvider(provider)
	t.Cleanup(func() {
		otel.SetTracerProvider(previous)
		_ = provider.Shutdown(context.Background())
	})
	return sr
}

func endedSpan(t *testing.T, sr *tracetest.SpanRecorder, name string) sdktrace.ReadOnlySpan {
	t.Helper()
	for _, span := range sr.Ended() {
		if span.Name() == name {
			return span
		}
	}
	t.Fatalf("no ended span named %q", name)
	return nil
}

func TestNewTracerProvider_Disabled(t *testing.T) {
	tp, err := NewTracerProvider(context.Background(), Config{Enabled: false}, zap.NewNop())
	require.NoError(t, err)
	require.NotNil(t, tp)

	assert.False(t, tp.IsEnabled())
	assert.NoError(t, tp.Shutdown(context.Background()))
	assert.NoError(t, tp.ForceFlush(context.Background()))
	assert.NotNil(t, tp.Tracer("test"))
}

func TestStartSpan(t *testing.T) {
	sr := installSpanRecorder(t)

	ctx, span := StartSpan(context.Background(), "trip.close",
		WithAttribute(SpanAttrTripNumber, "S207"),
	)
	assert.Equal(t, span, trace.SpanFromContext(ctx))
	span.End()

	recorded := endedSpan(t, sr, "trip.close")
	assert.Equal(t, trace.SpanKindInternal, recorded.SpanKind())
	assert.Contains(t, recorded.Attributes(), attribute.String(SpanAttrTripNumber, "S207"))
}

func TestStartSpan_WithSpanKind(t *testing.T) {
	sr := installSpanRecorder(t)

	_, span := StartSpan(context.Background(), "invoice.export", WithSpanKind(trace.SpanKindProducer))
	span.End()

	assert.Equal(t, trace.SpanKindProducer, endedSpan(t, sr, "invoice.export").SpanKind())
}

func TestStartServiceSpan_NamesSpanByConvention(t *testing.T) {
	sr := installSpanRecorder(t)

	_, span := StartServiceSpan(context.Background(), "invoice", "generate_for_trip")
	span.End()

	endedSpan(t, sr, "invoice.generate_for_trip")
}

func TestRecordError(t *testing.T) {
	sr := installSpanRecorder(t)

	_, span := StartSpan(context.Background(), "trip.close")
	RecordError(span, errors.New("trip already closed"))
	span.End()

	recorded := endedSpan(t, sr, "trip.close")
	assert.Equal(t, otelcodes.Error, recorded.Status().Code)
	assert.Equal(t, "trip already closed", recorded.Status().Description)
	require.Len(t, recorded.Events(), 1)
	assert.Equal(t, "exception", recorded.Events()[0].Name)
}

func TestRecordError_NilSafe(t *testing.T) {
	RecordError(nil, errors.New("boom"))

	_, span := StartSpan(context.Background(), "test.op")
	defer span.End()
	RecordError(span, nil)
}

func TestSetOK(t *testing.T) {
	sr := installSpanRecorder(t)

	_, span := StartSpan(context.Background(), "trip.close")
	SetOK(span)
	span.End()

	assert.Equal(t, otelcodes.Ok, endedSpan(t, sr, "trip.close").Status().Code)
	SetOK(nil)
}

func TestSetAttributes_SkipsMalformedPairs(t *testing.T) {
	sr := installSpanRecorder(t)

	_, span := StartSpan(context.Background(), "test.op")
	SetAttributes(span, SpanAttrTripID, "abc", 42, "ignored", "dangling")
	SetAttributes(nil, SpanAttrTripID, "abc")
	span.End()

	attrs := endedSpan(t, sr, "test.op").Attributes()
	assert.Contains(t, attrs, attribute.String(SpanAttrTripID, "abc"))
	assert.Len(t, attrs, 1)
}

func TestAddEvent(t *testing.T) {
	sr := installSpanRecorder(t)

	_, span := StartSpan(context.Background(), "scan.assign")
	AddEvent(span, "piece_scanned", SpanAttrBarcode, "123456789012")
	span.End()

	events := endedSpan(t, sr, "scan.assign").Events()
	require.Len(t, events, 1)
	assert.Equal(t, "piece_scanned", events[0].Name)
	assert.Contains(t, events[0].Attributes, attribute.String(SpanAttrBarcode, "123456789012"))

	AddEvent(nil, "ignored")
}

func TestAsAttribute_Conversions(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  attribute.KeyValue
	}{
		{"string", "S207", attribute.String("k", "S207")},
		{"int", 7, attribute.Int("k", 7)},
		{"int64", int64(7), attribute.Int64("k", 7)},
		{"float64", 1.5, attribute.Float64("k", 1.5)},
		{"bool", true, attribute.Bool("k", true)},
		{"string slice", []string{"a", "b"}, attribute.StringSlice("k", []string{"a", "b"})},
		{"fallback", struct{}{}, attribute.String("k", "{}")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, asAttribute("k", tt.value))
		})
	}
}

func TestGetTraceID(t *testing.T) {
	assert.Equal(t, "", GetTraceID(context.Background()))

	installSpanRecorder(t)
	ctx, span := StartSpan(context.Background(), "test.op")
	defer span.End()

	assert.Equal(t, span.SpanContext().TraceID().String(), GetTraceID(ctx))
}
