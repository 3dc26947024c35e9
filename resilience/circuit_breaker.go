// Package resilience implements the orchestrator's fault-tolerance layer:
// per-component circuit breakers, a resilience manager that aggregates
// their health, and adaptive per-operation timeouts.
package resilience

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/tech-psycho95/ai-council/core"
	"github.com/tech-psycho95/ai-council/model"
)

// BreakerConfig configures one circuit breaker's thresholds.
type BreakerConfig struct {
	FailureThreshold int           // consecutive failures to trip CLOSED -> OPEN
	RecoveryTimeout  time.Duration // OPEN -> HALF_OPEN after this elapses
	SuccessThreshold int           // successes in HALF_OPEN to close
}

// Listener is notified of state transitions, for telemetry wiring.
type Listener func(name string, from, to model.BreakerState)

// CircuitBreaker implements the consecutive-failure-threshold state machine:
//
//	CLOSED -> OPEN       when consecutive_failures >= FailureThreshold
//	OPEN -> HALF_OPEN    when now - opened_at >= RecoveryTimeout, lazily on next call
//	HALF_OPEN -> CLOSED  when successes_in_half_open >= SuccessThreshold
//	HALF_OPEN -> OPEN    on any failure
//
// Calls while OPEN fail fast with core.ErrCircuitOpen without invoking fn.
type CircuitBreaker struct {
	name   string
	config BreakerConfig
	logger core.Logger

	mu                  sync.Mutex
	state               atomic.Value // model.BreakerState
	consecutiveFailures int
	successesInHalfOpen int
	openedAt            time.Time
	halfOpenInFlight    bool

	listeners []Listener
}

// NewCircuitBreaker builds a breaker named name with the given config. A nil
// logger is replaced with a no-op logger.
func NewCircuitBreaker(name string, config BreakerConfig, logger core.Logger) *CircuitBreaker {
	if logger == nil {
		logger = &core.NoOpLogger{}
	}
	cb := &CircuitBreaker{name: name, config: config, logger: logger}
	cb.state.Store(model.StateClosed)
	return cb
}

// OnStateChange registers a listener invoked synchronously on every
// transition, in the order registered.
func (cb *CircuitBreaker) OnStateChange(l Listener) {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	cb.listeners = append(cb.listeners, l)
}

func (cb *CircuitBreaker) currentState() model.BreakerState {
	return cb.state.Load().(model.BreakerState)
}

// CanExecute reports whether a call would be allowed right now, without
// mutating state for a pending HALF_OPEN probe.
func (cb *CircuitBreaker) CanExecute() bool {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.canExecuteLocked()
}

func (cb *CircuitBreaker) canExecuteLocked() bool {
	switch cb.currentState() {
	case model.StateClosed, model.StateHalfOpen:
		return true
	case model.StateOpen:
		return time.Since(cb.openedAt) >= cb.config.RecoveryTimeout
	default:
		return false
	}
}

// Execute runs fn under breaker protection. If the circuit is OPEN and the
// recovery timeout has not elapsed, it returns core.ErrCircuitOpen without
// calling fn.
func (cb *CircuitBreaker) Execute(ctx context.Context, fn func(ctx context.Context) error) error {
	if !cb.tryEnter() {
		cb.logger.WarnWithContext(ctx, "circuit breaker rejected call", map[string]interface{}{
			"breaker": cb.name,
			"state":   string(cb.currentState()),
		})
		return core.NewFrameworkError(cb.name, core.KindCircuitOpen, core.ErrCircuitOpen)
	}

	err := fn(ctx)
	cb.recordResult(err == nil)
	return err
}

// tryEnter decides whether a call may proceed, transitioning OPEN ->
// HALF_OPEN lazily once the recovery timeout elapses.
func (cb *CircuitBreaker) tryEnter() bool {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	switch cb.currentState() {
	case model.StateClosed:
		return true
	case model.StateOpen:
		if time.Since(cb.openedAt) < cb.config.RecoveryTimeout {
			return false
		}
		cb.transitionLocked(model.StateHalfOpen)
		cb.successesInHalfOpen = 0
		return true
	case model.StateHalfOpen:
		return true
	default:
		return false
	}
}

func (cb *CircuitBreaker) recordResult(success bool) {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	switch cb.currentState() {
	case model.StateClosed:
		if success {
			cb.consecutiveFailures = 0
			return
		}
		cb.consecutiveFailures++
		cb.logger.Warn("circuit breaker recorded failure", map[string]interface{}{
			"breaker":              cb.name,
			"consecutive_failures": cb.consecutiveFailures,
			"threshold":            cb.config.FailureThreshold,
		})
		if cb.consecutiveFailures >= cb.config.FailureThreshold {
			cb.openedAt = time.Now()
			cb.transitionLocked(model.StateOpen)
		}
	case model.StateHalfOpen:
		if success {
			cb.successesInHalfOpen++
			if cb.successesInHalfOpen >= cb.config.SuccessThreshold {
				cb.consecutiveFailures = 0
				cb.transitionLocked(model.StateClosed)
			}
			return
		}
		cb.consecutiveFailures = cb.config.FailureThreshold
		cb.openedAt = time.Now()
		cb.transitionLocked(model.StateOpen)
	case model.StateOpen:
		// A stray result after the breaker reopened; ignore.
	}
}

func (cb *CircuitBreaker) transitionLocked(to model.BreakerState) {
	from := cb.currentState()
	if from == to {
		return
	}
	cb.state.Store(to)
	cb.logger.Info("circuit breaker state transition", map[string]interface{}{
		"breaker": cb.name,
		"from":    string(from),
		"to":      string(to),
	})
	for _, l := range cb.listeners {
		l(cb.name, from, to)
	}
}

// State returns a snapshot of the breaker's state for observability.
func (cb *CircuitBreaker) State() model.CircuitBreakerState {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return model.CircuitBreakerState{
		State:               cb.currentState(),
		ConsecutiveFailures: cb.consecutiveFailures,
		SuccessesInHalfOpen: cb.successesInHalfOpen,
		OpenedAt:            cb.openedAt,
	}
}

// Reset forces the breaker back to CLOSED, clearing all counters. Used by
// tests and by operator intervention.
func (cb *CircuitBreaker) Reset() {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	cb.consecutiveFailures = 0
	cb.successesInHalfOpen = 0
	cb.halfOpenInFlight = false
	cb.transitionLocked(model.StateClosed)
}

// Name returns the breaker's identifying name.
func (cb *CircuitBreaker) Name() string { return cb.name }
