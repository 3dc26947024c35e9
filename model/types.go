// Package model defines the data entities shared across the orchestrator
// pipeline stages: tasks, subtasks, execution plans, model capabilities,
// and the response types each stage produces or consumes.
package model

import "time"

// Intent is the classified purpose of a user request.
type Intent string

const (
	IntentQuestion     Intent = "QUESTION"
	IntentGeneration   Intent = "GENERATION"
	IntentAnalysis     Intent = "ANALYSIS"
	IntentDebugging    Intent = "DEBUGGING"
	IntentConversation Intent = "CONVERSATION"
)

// Complexity is the classified difficulty of a user request.
type Complexity string

const (
	ComplexitySimple Complexity = "SIMPLE"
	ComplexityMedium Complexity = "MEDIUM"
	ComplexityHigh   Complexity = "HIGH"
)

// ExecutionMode is the user's cost/quality preference for a request.
type ExecutionMode string

const (
	ModeFast        ExecutionMode = "FAST"
	ModeBalanced    ExecutionMode = "BALANCED"
	ModeBestQuality ExecutionMode = "BEST_QUALITY"
)

// TaskType labels what kind of work a Subtask represents.
type TaskType string

const (
	TaskReasoning      TaskType = "REASONING"
	TaskResearch       TaskType = "RESEARCH"
	TaskCodeGeneration TaskType = "CODE_GENERATION"
	TaskFactChecking   TaskType = "FACT_CHECKING"
	TaskDebugging      TaskType = "DEBUGGING"
)

// Priority orders subtasks for weighting and scheduling decisions.
// HIGH > MEDIUM > LOW.
type Priority string

const (
	PriorityLow    Priority = "LOW"
	PriorityMedium Priority = "MEDIUM"
	PriorityHigh   Priority = "HIGH"
)

// Weight returns a numeric weight for priority-weighted averages:
// HIGH=3, MEDIUM=2, LOW=1.
func (p Priority) Weight() float64 {
	switch p {
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	default:
		return 1
	}
}

// Task is the top-level unit of work created from user input. Immutable
// once constructed.
type Task struct {
	ID            string
	Content       string
	Intent        Intent
	Complexity    Complexity
	ExecutionMode ExecutionMode
	CreatedAt     time.Time
}

// Subtask is one unit of decomposed work. Immutable once constructed by
// the TaskDecomposer.
type Subtask struct {
	ID                  string
	ParentTaskID        string
	Content             string
	TaskType            TaskType
	Priority            Priority
	AccuracyRequirement float64
}

// ExecutionPlan groups subtasks into parallel batches with a deterministic
// flattened ordering for bookkeeping. Invariant: every subtask referenced by
// SequentialOrder appears in exactly one group of ParallelGroups.
type ExecutionPlan struct {
	ParallelGroups  [][]Subtask
	SequentialOrder []string // subtask IDs, decomposer emission order
}

// ModelCapabilities describes one registered model. Immutable for the
// process lifetime once registered.
type ModelCapabilities struct {
	ModelID        string
	TaskTypes      []TaskType
	AvgCostPerToken float64
	AvgLatency      time.Duration
	MaxContext      int
	Reliability     float64 // 0..1
	Strengths       []string
	Weaknesses      []string
}

// ServesTaskType reports whether this model is registered to handle tt.
func (m ModelCapabilities) ServesTaskType(tt TaskType) bool {
	for _, t := range m.TaskTypes {
		if t == tt {
			return true
		}
	}
	return false
}

// SelfAssessment is the confidence/cost/timing tuple attached to a response,
// either model-reported or estimated by the execution agent.
type SelfAssessment struct {
	Confidence      float64
	Assumptions     []string
	RiskLevel       string
	EstimatedCost   float64
	TokenUsage      int
	ExecutionTime   time.Duration
	ModelUsed       string
}

// AgentResponse is the result of executing one (Subtask, model) pair.
type AgentResponse struct {
	SubtaskID      string
	ModelUsed      string
	Content        string
	SelfAssessment *SelfAssessment
	Success        bool
	ErrorMessage   string
	Metadata       map[string]interface{}
}

// ConflictResolution records one arbitration decision.
type ConflictResolution struct {
	ChosenResponseID string
	Reasoning        string
	Confidence       float64
}

// ArbitrationResult is the outcome of reconciling multiple AgentResponses.
type ArbitrationResult struct {
	ValidatedResponses []AgentResponse
	ConflictsResolved  []ConflictResolution
}

// CostBreakdown aggregates cost/time across every SelfAssessment that
// contributed to a FinalResponse.
type CostBreakdown struct {
	TotalCost     float64
	ExecutionTime time.Duration
	ModelCosts    map[string]float64
	TokenUsage    map[string]int
	Currency      string
}

// ExecutionMetadata records how a request's pipeline ran.
type ExecutionMetadata struct {
	ExecutionPath       []string
	TotalExecutionTime  time.Duration
	ParallelExecutions  int
}

// FinalResponse is the orchestrator's output for process_request. The core
// always returns one; success=false responses still carry whatever
// execution metadata was gathered.
type FinalResponse struct {
	Content           string
	OverallConfidence float64
	Success           bool
	ErrorMessage      string
	ErrorType         string
	ModelsUsed        []string
	CostBreakdown     CostBreakdown
	ExecutionMetadata ExecutionMetadata
}

// FailureKind classifies a FailureEvent.
type FailureKind string

const (
	FailureTimeout         FailureKind = "TIMEOUT"
	FailureRateLimit       FailureKind = "RATE_LIMIT"
	FailureModelUnavail    FailureKind = "MODEL_UNAVAILABLE"
	FailureQuality         FailureKind = "QUALITY"
	FailurePartial         FailureKind = "PARTIAL_FAILURE"
	FailureSystemOverload  FailureKind = "SYSTEM_OVERLOAD"
)

// FailureEvent is filed with the ResilienceManager when a component or the
// aggregate pipeline experiences a notable failure.
type FailureEvent struct {
	Type         FailureKind
	Component    string
	ErrorMessage string
	Context      map[string]interface{}
	Timestamp    time.Time
}

// BreakerState is one of the three circuit breaker states.
type BreakerState string

const (
	StateClosed   BreakerState = "CLOSED"
	StateOpen     BreakerState = "OPEN"
	StateHalfOpen BreakerState = "HALF_OPEN"
)

// CircuitBreakerState is a snapshot of one breaker's state machine.
type CircuitBreakerState struct {
	State                BreakerState
	ConsecutiveFailures  int
	SuccessesInHalfOpen  int
	OpenedAt             time.Time
}
