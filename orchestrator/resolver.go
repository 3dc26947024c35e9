package orchestrator

import "github.com/tech-psycho95/ai-council/execution"

// ClientResolver maps a model_id to the execution.ModelClient adapter that
// serves it. Adapters are the external boundary (spec §6); the core never
// constructs one itself.
type ClientResolver interface {
	Resolve(modelID string) (execution.ModelClient, bool)
}

// StaticResolver is a fixed modelID -> ModelClient map, sufficient for tests
// and single-process deployments that wire all their clients up front.
type StaticResolver map[string]execution.ModelClient

// Resolve implements ClientResolver.
func (s StaticResolver) Resolve(modelID string) (execution.ModelClient, bool) {
	c, ok := s[modelID]
	return c, ok
}
