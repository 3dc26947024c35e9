package logger

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"go.opentelemetry.io/otel/trace"

	"github.com/tech-psycho95/ai-council/core"
)

// StructuredLogger is a small, dependency-free core.Logger implementation:
// JSON or key=value output, a configurable minimum level, and persistent
// fields via WithComponent. It has no buffering or sampling; for anything
// heavier, wrap a different core.Logger around the same interface.
type StructuredLogger struct {
	level  LogLevel
	format string
	fields map[string]interface{}
	out    *log.Logger
}

// NewStructuredLogger builds a logger reading LOG_LEVEL and LOG_FORMAT
// ("json" or "text", default "text") from the environment.
func NewStructuredLogger() *StructuredLogger {
	return &StructuredLogger{
		level:  parseLevel(os.Getenv("LOG_LEVEL")),
		format: strings.ToLower(os.Getenv("LOG_FORMAT")),
		fields: map[string]interface{}{},
		out:    log.New(os.Stdout, "", 0),
	}
}

// WithComponent returns a child logger tagging every entry with component,
// satisfying core.ComponentAwareLogger.
func (l *StructuredLogger) WithComponent(component string) core.Logger {
	return l.with(map[string]interface{}{"component": component})
}

func (l *StructuredLogger) with(extra map[string]interface{}) *StructuredLogger {
	merged := make(map[string]interface{}, len(l.fields)+len(extra))
	for k, v := range l.fields {
		merged[k] = v
	}
	for k, v := range extra {
		merged[k] = v
	}
	return &StructuredLogger{level: l.level, format: l.format, fields: merged, out: l.out}
}

func (l *StructuredLogger) Debug(msg string, fields map[string]interface{}) { l.emit(DebugLevel, "DEBUG", msg, fields) }
func (l *StructuredLogger) Info(msg string, fields map[string]interface{})  { l.emit(InfoLevel, "INFO", msg, fields) }
func (l *StructuredLogger) Warn(msg string, fields map[string]interface{})  { l.emit(WarnLevel, "WARN", msg, fields) }
func (l *StructuredLogger) Error(msg string, fields map[string]interface{}) { l.emit(ErrorLevel, "ERROR", msg, fields) }

func (l *StructuredLogger) DebugWithContext(ctx context.Context, msg string, fields map[string]interface{}) {
	l.emit(DebugLevel, "DEBUG", msg, l.withTrace(ctx, fields))
}
func (l *StructuredLogger) InfoWithContext(ctx context.Context, msg string, fields map[string]interface{}) {
	l.emit(InfoLevel, "INFO", msg, l.withTrace(ctx, fields))
}
func (l *StructuredLogger) WarnWithContext(ctx context.Context, msg string, fields map[string]interface{}) {
	l.emit(WarnLevel, "WARN", msg, l.withTrace(ctx, fields))
}
func (l *StructuredLogger) ErrorWithContext(ctx context.Context, msg string, fields map[string]interface{}) {
	l.emit(ErrorLevel, "ERROR", msg, l.withTrace(ctx, fields))
}

// withTrace tags the entry with the active span's trace/span id, when ctx
// carries one, so log lines can be correlated with the OpenTelemetry traces
// telemetry.OTelProvider emits.
func (l *StructuredLogger) withTrace(ctx context.Context, fields map[string]interface{}) map[string]interface{} {
	sc := trace.SpanContextFromContext(ctx)
	if !sc.IsValid() {
		return fields
	}
	merged := make(map[string]interface{}, len(fields)+2)
	for k, v := range fields {
		merged[k] = v
	}
	merged["trace_id"] = sc.TraceID().String()
	merged["span_id"] = sc.SpanID().String()
	return merged
}

func (l *StructuredLogger) emit(level LogLevel, label, msg string, fields map[string]interface{}) {
	if level < l.level {
		return
	}

	entry := make(map[string]interface{}, len(l.fields)+len(fields)+2)
	for k, v := range l.fields {
		entry[k] = v
	}
	for k, v := range fields {
		entry[k] = v
	}
	entry["level"] = label
	entry["msg"] = msg
	entry["ts"] = time.Now().UTC().Format(time.RFC3339Nano)

	if l.format == "json" {
		encoded, err := json.Marshal(entry)
		if err != nil {
			l.out.Println(label, msg, err)
			return
		}
		l.out.Println(string(encoded))
		return
	}

	var parts []string
	parts = append(parts, fmt.Sprintf("[%s]", label), msg)
	for k, v := range entry {
		if k == "level" || k == "msg" {
			continue
		}
		parts = append(parts, fmt.Sprintf("%s=%v", k, v))
	}
	l.out.Println(strings.Join(parts, " "))
}
