// Package logger provides a structured core.Logger implementation.
//
// # Logger Interface
//
// Every component in this module depends only on core.Logger, never on a
// concrete type:
//
//	type Logger interface {
//	    Info(msg string, fields map[string]interface{})
//	    Error(msg string, fields map[string]interface{})
//	    Warn(msg string, fields map[string]interface{})
//	    Debug(msg string, fields map[string]interface{})
//	    InfoWithContext(ctx context.Context, msg string, fields map[string]interface{})
//	    ...
//	}
//
// StructuredLogger is one implementation of it; core.NoOpLogger is the
// zero-value default used when no logger is configured.
//
// # Output
//
// LOG_FORMAT selects "json" or "text" (default text); LOG_LEVEL selects the
// minimum severity emitted ("debug", "info", "warn", "error"; default
// "info").
//
// # Component tagging
//
// WithComponent returns a child logger that tags every entry, so structured
// logs from different pipeline stages can be filtered independently:
//
//	analysisLog := log.WithComponent("orchestrator/analysis")
//
// # Trace correlation
//
// The *WithContext methods pull the active span's trace_id/span_id out of
// ctx (via go.opentelemetry.io/otel/trace) when telemetry.OTelProvider has
// one running, so a log line can be matched back to the trace it occurred
// in without threading a request id through by hand.
package logger
