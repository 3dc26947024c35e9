// Package routing implements the Router (ModelContextProtocol) and
// CostOptimizer: producing execution plans, selecting models under a
// cost/quality regime, and tracking per-model rolling performance.
package routing

import (
	"sync"

	"github.com/tech-psycho95/ai-council/model"
)

// Registry is the model registry external interface (spec §6): adapters
// register_model once at process start; the router consults it per
// subtask.
type Registry interface {
	RegisterModel(caps model.ModelCapabilities)
	ModelsForTaskType(tt model.TaskType) []model.ModelCapabilities
	Get(modelID string) (model.ModelCapabilities, bool)
}

// InMemoryRegistry is the default Registry: a process-lifetime map of
// ModelCapabilities keyed by ModelID. Entries are never removed;
// registering an already-known ModelID replaces its capabilities.
type InMemoryRegistry struct {
	mu     sync.RWMutex
	models map[string]model.ModelCapabilities
}

// NewInMemoryRegistry builds an empty registry.
func NewInMemoryRegistry() *InMemoryRegistry {
	return &InMemoryRegistry{models: make(map[string]model.ModelCapabilities)}
}

// RegisterModel implements Registry.
func (r *InMemoryRegistry) RegisterModel(caps model.ModelCapabilities) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.models[caps.ModelID] = caps
}

// ModelsForTaskType implements Registry. The returned slice is sorted by
// ModelID for deterministic selection downstream.
func (r *InMemoryRegistry) ModelsForTaskType(tt model.TaskType) []model.ModelCapabilities {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []model.ModelCapabilities
	for _, caps := range r.models {
		if caps.ServesTaskType(tt) {
			out = append(out, caps)
		}
	}
	sortByModelID(out)
	return out
}

// Get implements Registry.
func (r *InMemoryRegistry) Get(modelID string) (model.ModelCapabilities, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	caps, ok := r.models[modelID]
	return caps, ok
}

func sortByModelID(caps []model.ModelCapabilities) {
	for i := 1; i < len(caps); i++ {
		for j := i; j > 0 && caps[j].ModelID < caps[j-1].ModelID; j-- {
			caps[j], caps[j-1] = caps[j-1], caps[j]
		}
	}
}
