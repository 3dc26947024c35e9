package routing

import (
	"github.com/tech-psycho95/ai-council/core"
	"github.com/tech-psycho95/ai-council/model"
)

// Router is the ModelContextProtocol component (spec §4.4): it turns
// subtasks into an ExecutionPlan, picks a model per subtask via the
// CostOptimizer, and resolves fallbacks when a chosen model fails.
type Router struct {
	registry  Registry
	optimizer *CostOptimizer
}

// NewRouter builds a Router over a Registry and CostOptimizer. Passing a
// nil optimizer builds one against an in-memory PerformanceStore.
func NewRouter(registry Registry, optimizer *CostOptimizer) *Router {
	if optimizer == nil {
		optimizer = NewCostOptimizer(nil)
	}
	return &Router{registry: registry, optimizer: optimizer}
}

// DetermineParallelism builds an ExecutionPlan treating decomposed subtasks
// as mutually independent (TaskDecomposer emits no inter-subtask
// dependencies), so the whole batch forms a single parallel execution
// group. SequentialOrder preserves the decomposer's emission order for
// bookkeeping and deterministic synthesis ordering downstream.
func (r *Router) DetermineParallelism(subtasks []model.Subtask) model.ExecutionPlan {
	ordered := make([]model.Subtask, len(subtasks))
	copy(ordered, subtasks)

	ids := make([]string, len(ordered))
	for i, st := range ordered {
		ids[i] = st.ID
	}

	var groups [][]model.Subtask
	if len(ordered) > 0 {
		groups = [][]model.Subtask{ordered}
	}

	return model.ExecutionPlan{
		ParallelGroups:  groups,
		SequentialOrder: ids,
	}
}

// SelectModel picks the best model for a subtask under mode, consulting the
// registry for candidates serving the subtask's task type. It returns
// core.ErrModelUnavail (via the taxonomy) when no model registered for
// that task type.
func (r *Router) SelectModel(subtask model.Subtask, mode model.ExecutionMode) (model.ModelCapabilities, Selection, error) {
	candidates := r.registry.ModelsForTaskType(subtask.TaskType)
	if len(candidates) == 0 {
		return model.ModelCapabilities{}, Selection{}, core.NewFrameworkError("router.select_model", core.KindModelUnavail, core.ErrModelUnavail)
	}

	sel, ok := r.optimizer.OptimizeModelSelection(subtask, mode, candidates)
	if !ok {
		return model.ModelCapabilities{}, Selection{}, core.NewFrameworkError("router.select_model", core.KindModelUnavail, core.ErrModelUnavail)
	}

	caps, ok := r.registry.Get(sel.RecommendedModel)
	if !ok {
		return model.ModelCapabilities{}, Selection{}, core.NewFrameworkError("router.select_model", core.KindModelUnavail, core.ErrModelUnavail)
	}
	return caps, sel, nil
}

// CostOptimizer exposes the Router's optimizer for callers that need to
// run cost/quality estimates outside the normal SelectModel path (the
// orchestrator's pre-flight budget check, for instance).
func (r *Router) CostOptimizer() *CostOptimizer {
	return r.optimizer
}

// SelectFallback picks the next-best candidate for subtask excluding the
// model that just failed, per spec §4.4's "on model failure, reselect
// excluding the failed model." Ties broken the same way as the optimizer:
// higher reliability then lexicographic model_id.
func (r *Router) SelectFallback(failedModelID string, subtask model.Subtask, mode model.ExecutionMode) (model.ModelCapabilities, error) {
	candidates := r.registry.ModelsForTaskType(subtask.TaskType)
	remaining := make([]model.ModelCapabilities, 0, len(candidates))
	for _, caps := range candidates {
		if caps.ModelID != failedModelID {
			remaining = append(remaining, caps)
		}
	}
	if len(remaining) == 0 {
		return model.ModelCapabilities{}, core.NewFrameworkError("router.select_fallback", core.KindModelUnavail, core.ErrModelUnavail)
	}

	sel, ok := r.optimizer.OptimizeModelSelection(subtask, mode, remaining)
	if !ok {
		return model.ModelCapabilities{}, core.NewFrameworkError("router.select_fallback", core.KindModelUnavail, core.ErrModelUnavail)
	}
	caps, ok := r.registry.Get(sel.RecommendedModel)
	if !ok {
		return model.ModelCapabilities{}, core.NewFrameworkError("router.select_fallback", core.KindModelUnavail, core.ErrModelUnavail)
	}
	return caps, nil
}

// RecordOutcome feeds an actual execution outcome back into the cost
// optimizer's rolling history.
func (r *Router) RecordOutcome(modelID string, actualCost, actualConfidence float64) {
	r.optimizer.UpdatePerformanceHistory(modelID, actualCost, actualConfidence)
}
