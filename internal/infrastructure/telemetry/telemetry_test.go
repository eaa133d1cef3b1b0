package telemetry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.uber.org/zap"
)

func TestDisabledProviders(t *testing.T) {
	ctx := context.Background()
	tp, err := NewTracerProvider(ctx, Config{}, zap.NewNop())
	require.NoError(t, err)
	assert.False(t, tp.IsEnabled())
	assert.NotNil(t, tp.Tracer("test"))
	assert.NoError(t, tp.Shutdown(ctx))

	mp, err := NewMeterProvider(ctx, Config{}, 0, zap.NewNop())
	require.NoError(t, err)
	assert.NotNil(t, mp.Meter("test"))
	assert.NoError(t, mp.Shutdown(ctx))

	lp, err := NewLoggerProvider(ctx, Config{})
	require.NoError(t, err)
	base := zap.NewNop()
	assert.Same(t, base, lp.Bridge(base, "svc"))

	p, err := NewProfiler(ProfilerConfig{}, zap.NewNop())
	require.NoError(t, err)
	assert.False(t, p.IsEnabled())
	assert.NoError(t, p.Stop())
	assert.NoError(t, p.Stop())
}

func TestNewProfiler_RequiresAddress(t *testing.T) {
	_, err := NewProfiler(ProfilerConfig{Enabled: true}, zap.NewNop())
	assert.Error(t, err)
}

func TestSampler(t *testing.T) {
	assert.Equal(t, sdktrace.AlwaysSample().Description(), sampler(1).Description())
	assert.Equal(t, sdktrace.NeverSample().Description(), sampler(0).Description())
	assert.Contains(t, sampler(0.5).Description(), "TraceIDRatioBased")
}

func TestStartServiceSpan(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder)))
	t.Cleanup(func() { otel.SetTracerProvider(prev) })

	_, span := StartServiceSpan(context.Background(), "LedgerService", "Post")
	EndSpan(span, errors.New("boom"))

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "LedgerService.Post", spans[0].Name())
	assert.Equal(t, codes.Error, spans[0].Status().Code)
}

func TestBusinessMetrics(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	m, err := NewBusinessMetrics(provider.Meter("test"))
	require.NoError(t, err)

	ctx := context.Background()
	m.RecordLedgerPosting(ctx, "client")
	m.RecordLedgerPosting(ctx, "system")
	m.RecordLogin(ctx, "failure")
	m.RecordExport(ctx, "xlsx", 2*time.Second)
	m.RecordVoucherIssued(ctx, "OR")
	m.RecordChecklistSaved(ctx)

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(ctx, &rm))

	names := map[string]bool{}
	for _, sm := range rm.ScopeMetrics {
		for _, metric := range sm.Metrics {
			names[metric.Name] = true
			if metric.Name == "ledger_postings_total" {
				sum, ok := metric.Data.(metricdata.Sum[int64])
				require.True(t, ok)
				var total int64
				for _, dp := range sum.DataPoints {
					total += dp.Value
				}
				assert.Equal(t, int64(2), total)
			}
		}
	}
	assert.True(t, names["ledger_postings_total"])
	assert.True(t, names["login_attempts_total"])
	assert.True(t, names["export_duration_seconds"])
	assert.True(t, names["vouchers_issued_total"])
	assert.True(t, names["checklist_saves_total"])
}

func TestBusinessMetrics_NilIsSafe(t *testing.T) {
	var m *BusinessMetrics
	assert.NotPanics(t, func() {
		m.RecordLogin(context.Background(), "success")
		m.RecordHTTP(context.Background(), "/x", 200, time.Millisecond)
	})
}

func TestSanitizeLabels(t *testing.T) {
	long := string(make([]byte, MaxLabelValueLength+10))
	pairs := sanitizeLabels(map[string]string{
		ProfilingLabelRoute:  "/api/v1/owners/:id",
		ProfilingLabelMethod: "GET",
		"user_id":            "u-1",
		"empty":              "",
		ProfilingLabelRole:   long,
	})
	require.Len(t, pairs, 6)
	assert.Equal(t, []string{ProfilingLabelMethod, "GET"}, pairs[:2])
	assert.Equal(t, ProfilingLabelRole, pairs[2])
	assert.Len(t, pairs[3], MaxLabelValueLength)
	assert.Equal(t, ProfilingLabelRoute, pairs[4])

	assert.Nil(t, sanitizeLabels(nil))
}

func TestWithProfilingLabels_RunsFn(t *testing.T) {
	ran := 0
	WithProfilingLabels(context.Background(), nil, func(context.Context) { ran++ })
	WithProfilingLabels(context.Background(), map[string]string{ProfilingLabelMethod: "POST"}, func(ctx context.Context) {
		assert.NotNil(t, ctx)
		ran++
	})
	assert.Equal(t, 2, ran)
}
