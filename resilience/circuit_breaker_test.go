package resilience

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tech-psycho95/ai-council/core"
	"github.com/tech-psycho95/ai-council/model"
)

func testConfig() BreakerConfig {
	return BreakerConfig{FailureThreshold: 3, RecoveryTimeout: 50 * time.Millisecond, SuccessThreshold: 2}
}

func TestCircuitBreakerClosedToOpenOnThreshold(t *testing.T) {
	cb := NewCircuitBreaker("test", testConfig(), nil)
	boom := errors.New("boom")

	for i := 0; i < 2; i++ {
		err := cb.Execute(context.Background(), func(ctx context.Context) error { return boom })
		require.ErrorIs(t, err, boom)
		assert.Equal(t, model.StateClosed, cb.State().State, "breaker should stay closed before threshold")
	}

	err := cb.Execute(context.Background(), func(ctx context.Context) error { return boom })
	require.ErrorIs(t, err, boom)
	assert.Equal(t, model.StateOpen, cb.State().State, "breaker should open at the failure threshold")
}

func TestCircuitBreakerFailFastWhenOpen(t *testing.T) {
	cb := NewCircuitBreaker("test", testConfig(), nil)
	boom := errors.New("boom")
	for i := 0; i < 3; i++ {
		_ = cb.Execute(context.Background(), func(ctx context.Context) error { return boom })
	}
	require.Equal(t, model.StateOpen, cb.State().State)

	called := false
	err := cb.Execute(context.Background(), func(ctx context.Context) error {
		called = true
		return nil
	})
	assert.False(t, called, "protected function must not run while breaker is open")
	assert.True(t, core.IsCircuitOpen(err))
}

func TestCircuitBreakerHalfOpenRecovery(t *testing.T) {
	cfg := testConfig()
	cb := NewCircuitBreaker("test", cfg, nil)
	boom := errors.New("boom")
	for i := 0; i < cfg.FailureThreshold; i++ {
		_ = cb.Execute(context.Background(), func(ctx context.Context) error { return boom })
	}
	require.Equal(t, model.StateOpen, cb.State().State)

	time.Sleep(cfg.RecoveryTimeout + 10*time.Millisecond)

	err := cb.Execute(context.Background(), func(ctx context.Context) error { return nil })
	require.NoError(t, err)
	assert.Equal(t, model.StateHalfOpen, cb.State().State, "one success in half-open should not yet close")

	err = cb.Execute(context.Background(), func(ctx context.Context) error { return nil })
	require.NoError(t, err)
	assert.Equal(t, model.StateClosed, cb.State().State, "success_threshold successes in half-open should close")
}

func TestCircuitBreakerHalfOpenFailureReopens(t *testing.T) {
	cfg := testConfig()
	cb := NewCircuitBreaker("test", cfg, nil)
	boom := errors.New("boom")
	for i := 0; i < cfg.FailureThreshold; i++ {
		_ = cb.Execute(context.Background(), func(ctx context.Context) error { return boom })
	}
	time.Sleep(cfg.RecoveryTimeout + 10*time.Millisecond)

	err := cb.Execute(context.Background(), func(ctx context.Context) error { return boom })
	require.ErrorIs(t, err, boom)
	assert.Equal(t, model.StateOpen, cb.State().State, "any half-open failure reopens the breaker")
}

func TestCircuitBreakerListenerNotifiedOnTransition(t *testing.T) {
	cfg := testConfig()
	cb := NewCircuitBreaker("test", cfg, nil)

	var transitions []string
	cb.OnStateChange(func(name string, from, to model.BreakerState) {
		transitions = append(transitions, string(from)+"->"+string(to))
	})

	boom := errors.New("boom")
	for i := 0; i < cfg.FailureThreshold; i++ {
		_ = cb.Execute(context.Background(), func(ctx context.Context) error { return boom })
	}
	require.Len(t, transitions, 1)
	assert.Equal(t, "CLOSED->OPEN", transitions[0])
}

func TestCircuitBreakerReset(t *testing.T) {
	cfg := testConfig()
	cb := NewCircuitBreaker("test", cfg, nil)
	boom := errors.New("boom")
	for i := 0; i < cfg.FailureThreshold; i++ {
		_ = cb.Execute(context.Background(), func(ctx context.Context) error { return boom })
	}
	require.Equal(t, model.StateOpen, cb.State().State)

	cb.Reset()
	assert.Equal(t, model.StateClosed, cb.State().State)
	assert.Equal(t, 0, cb.State().ConsecutiveFailures)
}
