package main

import (
	"context"
	"time"

	"github.com/realtyadmin/backend/internal/infrastructure/config"
	"github.com/realtyadmin/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// observability bundles the OpenTelemetry providers and the profiler
type observability struct {
	tracer   *telemetry.TracerProvider
	meter    *telemetry.MeterProvider
	logs     *telemetry.LoggerProvider
	profiler *telemetry.Profiler
	metrics  *telemetry.BusinessMetrics
}

func setupTelemetry(ctx context.Context, cfg config.TelemetryConfig, log *zap.Logger) (*observability, error) {
	base := telemetry.Config{
		Enabled:           cfg.Enabled,
		CollectorEndpoint: cfg.CollectorEndpoint,
		SamplingRatio:     cfg.SamplingRatio,
		ServiceName:       cfg.ServiceName,
		Insecure:          cfg.Insecure,
	}
	o := &observability{}

	var err error
	if o.tracer, err = telemetry.NewTracerProvider(ctx, base, log); err != nil {
		return nil, err
	}

	metricsCfg := base
	metricsCfg.Enabled = cfg.Enabled && cfg.MetricsEnabled
	if o.meter, err = telemetry.NewMeterProvider(ctx, metricsCfg, cfg.MetricsInterval, log); err != nil {
		return nil, err
	}
	if o.metrics, err = telemetry.NewBusinessMetrics(o.meter.Meter(cfg.ServiceName)); err != nil {
		return nil, err
	}

	logsCfg := base
	logsCfg.Enabled = cfg.Enabled && cfg.LogsEnabled
	if o.logs, err = telemetry.NewLoggerProvider(ctx, logsCfg); err != nil {
		return nil, err
	}

	o.profiler, err = telemetry.NewProfiler(telemetry.ProfilerConfig{
		Enabled:         cfg.ProfilingEnabled,
		ServerAddress:   cfg.PyroscopeURL,
		ApplicationName: cfg.ServiceName,
	}, log)
	if err != nil {
		return nil, err
	}
	if o.profiler.IsEnabled() && o.tracer.IsEnabled() {
		o.tracer.EnableSpanProfiles()
	}
	return o, nil
}

// shutdown flushes every provider, logging failures
func (o *observability) shutdown(log *zap.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := o.profiler.Stop(); err != nil {
		log.Error("Error stopping profiler", zap.Error(err))
	}
	if err := o.tracer.Shutdown(ctx); err != nil {
		log.Error("Error shutting down tracer provider", zap.Error(err))
	}
	if err := o.meter.Shutdown(ctx); err != nil {
		log.Error("Error shutting down meter provider", zap.Error(err))
	}
	if err := o.logs.Shutdown(ctx); err != nil {
		log.Error("Error shutting down logger provider", zap.Error(err))
	}
}
