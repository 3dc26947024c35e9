package resilience

import (
	"sync"
	"time"

	"github.com/tech-psycho95/ai-council/core"
	"github.com/tech-psycho95/ai-council/model"
)

// Component names for the orchestrator's fixed set of protected stages.
const (
	ComponentAnalysisEngine = "analysis_engine"
	ComponentTaskDecomposer = "task_decomposer"
	ComponentArbitration    = "arbitration_layer"
	ComponentSynthesis      = "synthesis_layer"
)

// defaultBreakerConfigs holds the per-component defaults from the
// specification: (failure_threshold, recovery_timeout, success_threshold).
func defaultBreakerConfigs() map[string]BreakerConfig {
	return map[string]BreakerConfig{
		ComponentAnalysisEngine: {FailureThreshold: 3, RecoveryTimeout: 30 * time.Second, SuccessThreshold: 2},
		ComponentTaskDecomposer: {FailureThreshold: 3, RecoveryTimeout: 45 * time.Second, SuccessThreshold: 2},
		ComponentArbitration:    {FailureThreshold: 5, RecoveryTimeout: 60 * time.Second, SuccessThreshold: 3},
		ComponentSynthesis:      {FailureThreshold: 3, RecoveryTimeout: 30 * time.Second, SuccessThreshold: 2},
	}
}

// RecoveryAction is ResilienceManager's recommendation after a FailureEvent
// is filed: what the orchestrator or execution agent should do next.
type RecoveryAction struct {
	ActionType string // "alternative_model" | "reduce_complexity" | "wait_and_retry" | "upgrade_model" | "continue_degraded" | "fail" | "generic_retry"
	RetryCount int
}

// Manager owns the fixed set of per-component circuit breakers and turns
// FailureEvents into recovery recommendations. It replaces what used to be
// a handful of global singletons (resilience_manager, timeout_handler,
// adaptive_timeout_manager): the orchestrator constructs one and passes it
// explicitly to every stage that needs it.
type Manager struct {
	mu       sync.RWMutex
	breakers map[string]*CircuitBreaker
	logger   core.Logger

	timeouts *TimeoutHandler
}

// NewManager builds a Manager with the specification's default breaker
// configuration for the four fixed components, and a TimeoutHandler with
// no recorded samples (its timeouts bootstrap from the caller's default).
func NewManager(logger core.Logger) *Manager {
	if logger == nil {
		logger = &core.NoOpLogger{}
	}
	m := &Manager{
		breakers: make(map[string]*CircuitBreaker),
		logger:   logger,
		timeouts: NewTimeoutHandler(logger),
	}
	for name, cfg := range defaultBreakerConfigs() {
		m.breakers[name] = NewCircuitBreaker(name, cfg, logger)
	}
	return m
}

// Breaker returns the named component's circuit breaker, or nil if name is
// not one of the four fixed components.
func (m *Manager) Breaker(name string) *CircuitBreaker {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.breakers[name]
}

// Timeouts returns the shared adaptive timeout handler.
func (m *Manager) Timeouts() *TimeoutHandler {
	return m.timeouts
}

// HealthCheck reports "degraded" when any component breaker is OPEN, else
// "operational". Degraded state drives the orchestrator's FAST-mode
// execution skipping for LOW/MEDIUM priority subtasks.
func (m *Manager) HealthCheck() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, b := range m.breakers {
		if b.State().State == model.StateOpen {
			return "degraded"
		}
	}
	return "operational"
}

// HandleFailure maps a FailureEvent to a RecoveryAction. For PARTIAL_FAILURE
// events the recommendation is "continue_degraded" when at least one
// response succeeded (carried in event.Context["success_count"]), and "fail"
// when none did — the orchestrator returns a degraded FinalResponse in the
// latter case (spec §4.1 stage 6).
func (m *Manager) HandleFailure(event model.FailureEvent) RecoveryAction {
	m.logger.Warn("resilience manager handling failure", map[string]interface{}{
		"type":      string(event.Type),
		"component": event.Component,
		"message":   event.ErrorMessage,
	})

	switch event.Type {
	case model.FailureModelUnavail:
		return RecoveryAction{ActionType: "alternative_model", RetryCount: 1}
	case model.FailureTimeout:
		return RecoveryAction{ActionType: "reduce_complexity", RetryCount: 2}
	case model.FailureRateLimit:
		return RecoveryAction{ActionType: "wait_and_retry", RetryCount: 3}
	case model.FailureQuality:
		return RecoveryAction{ActionType: "upgrade_model", RetryCount: 1}
	case model.FailurePartial:
		if successCount, ok := event.Context["success_count"].(int); ok && successCount > 0 {
			return RecoveryAction{ActionType: "continue_degraded"}
		}
		return RecoveryAction{ActionType: "fail"}
	default:
		return RecoveryAction{ActionType: "generic_retry", RetryCount: 1}
	}
}
