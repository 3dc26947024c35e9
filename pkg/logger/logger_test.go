package logger_test

import (
	"context"
	"os"
	"testing"

	"github.com/tech-psycho95/ai-council/pkg/logger"
)

func TestStructuredLoggerDoesNotPanic(t *testing.T) {
	log := logger.NewStructuredLogger()

	log.Debug("debug message", map[string]interface{}{"test": "value"})
	log.Info("info message", map[string]interface{}{"test": "value"})
	log.Warn("warn message", map[string]interface{}{"test": "value"})
	log.Error("error message", map[string]interface{}{"test": "value"})
}

func TestStructuredLoggerWithComponent(t *testing.T) {
	log := logger.NewStructuredLogger()

	scoped := log.WithComponent("orchestrator/analysis")
	scoped.Info("tagged message", nil)
}

func TestStructuredLoggerContextVariantsDoNotPanicWithoutSpan(t *testing.T) {
	log := logger.NewStructuredLogger()

	ctx := context.Background()
	log.InfoWithContext(ctx, "no active span", nil)
	log.ErrorWithContext(ctx, "still no active span", map[string]interface{}{"k": "v"})
}

func TestLogLevelEnvVar(t *testing.T) {
	os.Setenv("LOG_LEVEL", "error")
	defer os.Unsetenv("LOG_LEVEL")

	log := logger.NewStructuredLogger()
	if log == nil {
		t.Fatal("expected a non-nil logger")
	}
	// Below the configured level; exercised only to confirm no panic.
	log.Debug("should be suppressed", nil)
	log.Error("should be emitted", nil)
}

func BenchmarkStructuredLoggerInfo(b *testing.B) {
	log := logger.NewStructuredLogger()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		log.Info("benchmark message", map[string]interface{}{"iteration": i})
	}
}
