// Package telemetry provides observability instrumentation for the S3 object
// provider: structured logging with zerolog and Prometheus metrics.
//
// Initialize at startup and thread the logger through context:
//
//	logger, err := telemetry.NewLogger(cfg.Logging)
//	ctx = logger.WithContext(ctx)
//
// Handlers retrieve the contextual logger with telemetry.FromContext(ctx).
// Metrics are registered against an injected registry so tests can use an
// isolated one:
//
//	metrics := telemetry.NewMetrics(prometheus.NewRegistry())
//	metrics.RecordInvocation("create", "SUCCESS", duration)
package telemetry
