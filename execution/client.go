// Package execution runs a single (Subtask, model) pair against the model
// capability contract and turns the outcome into an AgentResponse.
package execution

import "context"

// GenerationOptions configures one model call. Mirrors the narrow contract
// the core consumes from external model adapters (spec §6): the core never
// sees HTTP, auth, or provider-specific request shapes, only this.
type GenerationOptions struct {
	Temperature float64
	MaxTokens   int
}

// GenerationResult is what a model call returns on success.
type GenerationResult struct {
	Content      string
	Confidence   float64 // model-reported, or 0 if the model doesn't self-report
	TokenUsage   int
	FinishReason string
}

// ModelClient is the capability contract external model adapters implement.
// The core depends only on this interface — never on a concrete provider,
// HTTP transport, or authentication scheme (those are external collaborator
// concerns, out of scope for this module).
type ModelClient interface {
	// ModelID returns the model's registry identifier.
	ModelID() string

	// Generate produces a response to prompt. It may fail with an error
	// wrapping core.ErrModelTimeout, core.ErrRateLimit, or
	// core.ErrModelUnavail; any other error is treated as a generic
	// provider failure.
	Generate(ctx context.Context, prompt string, opts GenerationOptions) (GenerationResult, error)
}
