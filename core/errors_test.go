package core

import (
	"errors"
	"fmt"
	"testing"
)

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{"ErrModelTimeout is retryable", ErrModelTimeout, true},
		{"ErrRateLimit is retryable", ErrRateLimit, true},
		{"ErrModelUnavail is retryable", ErrModelUnavail, true},
		{"ErrSystemOverload is retryable", ErrSystemOverload, true},
		{"wrapped retryable error is retryable", fmt.Errorf("call failed: %w", ErrModelTimeout), true},
		{"ErrValidation is not retryable", ErrValidation, false},
		{"ErrConfiguration is not retryable", ErrConfiguration, false},
		{"custom error is not retryable", errors.New("custom error"), false},
		{"nil error is not retryable", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsRetryable(tt.err); got != tt.expected {
				t.Errorf("IsRetryable(%v) = %v, want %v", tt.err, got, tt.expected)
			}
		})
	}
}

func TestIsCircuitOpen(t *testing.T) {
	if !IsCircuitOpen(ErrCircuitOpen) {
		t.Error("ErrCircuitOpen should be detected as circuit open")
	}
	if !IsCircuitOpen(fmt.Errorf("wrapped: %w", ErrCircuitOpen)) {
		t.Error("wrapped ErrCircuitOpen should be detected as circuit open")
	}
	if IsCircuitOpen(ErrModelTimeout) {
		t.Error("ErrModelTimeout should not be circuit open")
	}
}

func TestIsConfigurationError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{"ErrConfiguration is configuration error", ErrConfiguration, true},
		{"ErrValidation is configuration error", ErrValidation, true},
		{"wrapped configuration error is detected", fmt.Errorf("bad config: %w", ErrConfiguration), true},
		{"ErrModelTimeout is not configuration error", ErrModelTimeout, false},
		{"custom error is not configuration error", errors.New("random error"), false},
		{"nil error is not configuration error", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsConfigurationError(tt.err); got != tt.expected {
				t.Errorf("IsConfigurationError(%v) = %v, want %v", tt.err, got, tt.expected)
			}
		})
	}
}

func TestKindOf(t *testing.T) {
	if k := KindOf(ErrModelTimeout); k != KindModelTimeout {
		t.Errorf("KindOf(ErrModelTimeout) = %s, want %s", k, KindModelTimeout)
	}
	if k := KindOf(errors.New("unknown")); k != "SystemError" {
		t.Errorf("KindOf(unknown) = %s, want SystemError", k)
	}
	wrapped := NewFrameworkError("router.SelectModel", KindModelUnavail, ErrModelUnavail)
	if k := KindOf(wrapped); k != KindModelUnavail {
		t.Errorf("KindOf(FrameworkError) = %s, want %s", k, KindModelUnavail)
	}
}

func TestFrameworkErrorMessage(t *testing.T) {
	err := NewFrameworkErrorf("execution.Run", KindModelTimeout, "subtask-1", ErrModelTimeout)
	if errors.Unwrap(err) != ErrModelTimeout {
		t.Error("Unwrap should return the wrapped sentinel")
	}
	want := "execution.Run [subtask-1]: model timeout"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestErrorWrappingThroughMultipleLayers(t *testing.T) {
	wrappedOnce := fmt.Errorf("call failed: %w", ErrModelUnavail)
	wrappedTwice := fmt.Errorf("stage failed: %w", wrappedOnce)

	if !IsRetryable(wrappedTwice) {
		t.Error("twice-wrapped error should still be detected as retryable")
	}
	if !errors.Is(wrappedTwice, ErrModelUnavail) {
		t.Error("errors.Is should work through multiple wrapping layers")
	}
}

func BenchmarkIsRetryable(b *testing.B) {
	err := fmt.Errorf("wrapped: %w", ErrModelTimeout)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = IsRetryable(err)
	}
}
