package core

import (
	"errors"
	"fmt"
)

// Sentinel errors for the orchestrator's error taxonomy. Components wrap
// these with FrameworkError so callers can still use errors.Is against the
// sentinel while getting a structured, loggable error value.
var (
	ErrConfiguration  = errors.New("configuration error")
	ErrValidation     = errors.New("validation error")
	ErrAnalysis       = errors.New("analysis error")
	ErrDecomposition  = errors.New("decomposition error")
	ErrArbitration    = errors.New("arbitration error")
	ErrSynthesis      = errors.New("synthesis error")
	ErrModelTimeout   = errors.New("model timeout")
	ErrRateLimit      = errors.New("rate limit exceeded")
	ErrModelUnavail   = errors.New("model unavailable")
	ErrQualityFailure = errors.New("quality failure")
	ErrCircuitOpen    = errors.New("circuit breaker open")
	ErrPartialFailure = errors.New("partial failure")
	ErrSystemOverload = errors.New("system overload")

	ErrMaxRetriesExceeded = errors.New("maximum retries exceeded")
)

// Kind names used in FrameworkError.Kind and in ErrorResponseFactory's
// reported error_type. These correspond one-to-one with the taxonomy
// in the specification.
const (
	KindConfiguration  = "ConfigurationError"
	KindValidation     = "ValidationError"
	KindAnalysis       = "AnalysisError"
	KindDecomposition  = "DecompositionError"
	KindArbitration    = "ArbitrationError"
	KindSynthesis      = "SynthesisError"
	KindModelTimeout   = "ModelTimeoutError"
	KindRateLimit      = "RateLimitError"
	KindModelUnavail   = "ModelUnavailableError"
	KindQualityFailure = "QualityFailureError"
	KindCircuitOpen    = "CircuitOpenError"
	KindPartialFailure = "PartialFailureError"
	KindSystemOverload = "SystemOverloadError"
)

// FrameworkError carries structured context around a taxonomy error: which
// operation failed, what kind of failure it was, which entity (task,
// subtask, model) was involved, and the wrapped cause.
type FrameworkError struct {
	Op      string // operation that failed, e.g. "router.SelectModel"
	Kind    string // one of the Kind* constants above
	ID      string // task/subtask/model id involved, if any
	Message string
	Err     error
}

func (e *FrameworkError) Error() string {
	if e.Op != "" && e.Err != nil {
		if e.ID != "" {
			return fmt.Sprintf("%s [%s]: %v", e.Op, e.ID, e.Err)
		}
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s error", e.Kind)
}

func (e *FrameworkError) Unwrap() error {
	return e.Err
}

// NewFrameworkError builds a FrameworkError wrapping a sentinel (or any)
// error with an operation name and taxonomy kind.
func NewFrameworkError(op, kind string, err error) *FrameworkError {
	return &FrameworkError{Op: op, Kind: kind, Err: err}
}

// NewFrameworkErrorf is NewFrameworkError with an identifying ID attached,
// for errors tied to a specific task/subtask/model.
func NewFrameworkErrorf(op, kind, id string, err error) *FrameworkError {
	return &FrameworkError{Op: op, Kind: kind, ID: id, Err: err}
}

// IsRetryable reports whether a pipeline error represents a transient
// condition worth retrying (timeouts, rate limits, momentary unavailability,
// system overload) as opposed to a structural failure.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrModelTimeout) ||
		errors.Is(err, ErrRateLimit) ||
		errors.Is(err, ErrModelUnavail) ||
		errors.Is(err, ErrSystemOverload)
}

// IsCircuitOpen reports whether err is (or wraps) ErrCircuitOpen.
func IsCircuitOpen(err error) bool {
	return errors.Is(err, ErrCircuitOpen)
}

// IsConfigurationError reports whether err is a configuration or validation
// failure — the class of errors the orchestrator should never retry.
func IsConfigurationError(err error) bool {
	return errors.Is(err, ErrConfiguration) || errors.Is(err, ErrValidation)
}

// IsPartialFailure reports whether err represents a partial-failure
// condition raised by the partial-failure check stage.
func IsPartialFailure(err error) bool {
	return errors.Is(err, ErrPartialFailure)
}

// KindOf returns the taxonomy Kind string for err, walking the wrap chain
// via FrameworkError, or "SystemError" if err does not carry a known kind.
func KindOf(err error) string {
	var fe *FrameworkError
	if errors.As(err, &fe) && fe.Kind != "" {
		return fe.Kind
	}
	switch {
	case errors.Is(err, ErrConfiguration):
		return KindConfiguration
	case errors.Is(err, ErrValidation):
		return KindValidation
	case errors.Is(err, ErrAnalysis):
		return KindAnalysis
	case errors.Is(err, ErrDecomposition):
		return KindDecomposition
	case errors.Is(err, ErrArbitration):
		return KindArbitration
	case errors.Is(err, ErrSynthesis):
		return KindSynthesis
	case errors.Is(err, ErrModelTimeout):
		return KindModelTimeout
	case errors.Is(err, ErrRateLimit):
		return KindRateLimit
	case errors.Is(err, ErrModelUnavail):
		return KindModelUnavail
	case errors.Is(err, ErrQualityFailure):
		return KindQualityFailure
	case errors.Is(err, ErrCircuitOpen):
		return KindCircuitOpen
	case errors.Is(err, ErrPartialFailure):
		return KindPartialFailure
	case errors.Is(err, ErrSystemOverload):
		return KindSystemOverload
	default:
		return "SystemError"
	}
}
