// Package orchestrator wires the eight pipeline stages — analysis,
// decomposition, routing, execution, partial-failure check, arbitration,
// synthesis, and metadata attachment — into the single ProcessRequest
// operation, owning the circuit breakers and event bus for every request.
package orchestrator

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/tech-psycho95/ai-council/analysis"
	"github.com/tech-psycho95/ai-council/arbitration"
	"github.com/tech-psycho95/ai-council/core"
	"github.com/tech-psycho95/ai-council/decomposition"
	"github.com/tech-psycho95/ai-council/events"
	"github.com/tech-psycho95/ai-council/execution"
	"github.com/tech-psycho95/ai-council/model"
	"github.com/tech-psycho95/ai-council/resilience"
	"github.com/tech-psycho95/ai-council/routing"
	"github.com/tech-psycho95/ai-council/synthesis"
)

// Orchestrator is the Orchestrator component (spec §4.1). Construct one
// with New and call ProcessRequest per incoming request; it is safe for
// concurrent use across requests.
type Orchestrator struct {
	config    Config
	logger    core.Logger
	telemetry core.Telemetry

	analysisEngine *analysis.Engine
	decomposer     *decomposition.Decomposer
	router         *routing.Router
	registry       routing.Registry
	agent          *execution.Agent
	arbitration    *arbitration.Layer
	synthesis      *synthesis.Layer
	resilience     *resilience.Manager
	bus            *events.Bus
	clients        ClientResolver
}

// New builds an Orchestrator. registry and clients are the two external
// boundaries the caller must supply: registry holds ModelCapabilities,
// clients resolves a model_id to the adapter that actually calls the
// provider. telemetry is optional; pass nil to disable span/metric
// recording.
func New(registry routing.Registry, clients ClientResolver, logger core.Logger, telemetry core.Telemetry, opts ...Option) *Orchestrator {
	if logger == nil {
		logger = &core.NoOpLogger{}
	}
	if telemetry == nil {
		telemetry = &core.NoOpTelemetry{}
	}
	config := NewConfig(opts...)

	resilienceManager := resilience.NewManager(logger)
	engine := analysis.NewEngine(logger)

	return &Orchestrator{
		config:         config,
		logger:         logger,
		telemetry:      telemetry,
		analysisEngine: engine,
		decomposer:     decomposition.NewDecomposer(engine, logger),
		router:         routing.NewRouter(registry, routing.NewCostOptimizer(nil)),
		registry:       registry,
		agent:          execution.NewAgent(resilienceManager.Timeouts(), logger),
		arbitration:    arbitration.NewLayer(arbitration.DefaultConfig(), registry),
		synthesis:      synthesis.NewLayer(),
		resilience:     resilienceManager,
		bus:            events.NewBus(logger),
		clients:        clients,
	}
}

// Subscribe attaches a listener to a request's event stream. Callers must
// subscribe before the pipeline publishes its first event, or earlier ones
// are dropped silently (spec §4.10) — pair with Begin, which hands back the
// request_id before any stage runs.
func (o *Orchestrator) Subscribe(requestID string) (<-chan events.Event, func()) {
	return o.bus.Subscribe(requestID)
}

// pipelineState threads bookkeeping through the stages of one request.
type pipelineState struct {
	requestID string
	start     time.Time
	path      []string
	mode      model.ExecutionMode
}

func (s *pipelineState) mark(stage string) {
	s.path = append(s.path, stage)
}

// ProcessRequest runs the full 8-stage pipeline synchronously and always
// returns a FinalResponse — the only unrecoverable failure in this core is
// configuration validation at construction time. Equivalent to calling
// Begin and waiting on its result channel; callers who need to observe the
// stage event stream should call Begin directly so they can Subscribe
// before the pipeline starts publishing.
func (o *Orchestrator) ProcessRequest(ctx context.Context, userInput string, mode model.ExecutionMode) model.FinalResponse {
	_, result := o.Begin(ctx, userInput, mode)
	return <-result
}

// Begin allocates a request_id and returns it immediately, before the
// pipeline runs, so a caller can Subscribe(requestID) and observe every
// stage event including processing_started (spec §5: "subscribers attach
// before process_request returns its first event"). The pipeline runs in
// its own goroutine; the returned channel receives exactly one
// FinalResponse and is then closed.
func (o *Orchestrator) Begin(ctx context.Context, userInput string, mode model.ExecutionMode) (string, <-chan model.FinalResponse) {
	if mode == "" {
		mode = o.config.DefaultMode
	}

	state := &pipelineState{requestID: uuid.NewString(), start: time.Now(), mode: mode}
	result := make(chan model.FinalResponse, 1)

	go func() {
		defer close(result)
		result <- o.run(ctx, state, userInput, mode)
	}()

	return state.requestID, result
}

func (o *Orchestrator) run(ctx context.Context, state *pipelineState, userInput string, mode model.ExecutionMode) model.FinalResponse {
	defer o.bus.Retire(state.requestID)

	ctx, span := o.telemetry.StartSpan(ctx, "orchestrator.process_request")
	span.SetAttribute("request_id", state.requestID)
	span.SetAttribute("execution_mode", string(mode))
	defer span.End()

	ctx, cancel := context.WithTimeout(ctx, o.config.DefaultTimeout)
	defer cancel()

	o.bus.Publish(state.requestID, events.TypeProcessingStarted, map[string]interface{}{"execution_mode": string(mode)})

	if rejectMsg, rejected := o.preflightCostCheck(userInput, mode); rejected {
		return o.fail(state, "cost_preflight_rejected", core.NewFrameworkError("orchestrator.preflight", core.KindValidation, fmt.Errorf("%w: %s", core.ErrValidation, rejectMsg)))
	}

	task, err := o.createTask(ctx, userInput, mode)
	if err != nil {
		return o.fail(state, "task_creation_failed", err)
	}
	state.mark("task_creation")
	o.bus.Publish(state.requestID, events.TypeAnalysisComplete, map[string]interface{}{
		"intent": string(task.Intent), "complexity": string(task.Complexity),
	})

	subtasks := o.decompose(ctx, task)
	state.mark("task_decomposition")
	priorities := priorityLookup(subtasks)

	plan := o.router.DetermineParallelism(subtasks)
	state.mark("execution_planning")
	o.publishRoutingComplete(state.requestID, subtasks, mode)

	responses := o.execute(ctx, state, plan)
	state.mark("subtask_execution")

	successCount := countSuccesses(responses)
	if degraded, final := o.checkPartialFailure(state, responses, successCount); degraded {
		return final
	}

	validated := o.arbitrate(ctx, state, responses)

	finalResponse := o.synthesizeFinal(ctx, state, validated, priorities)
	result := o.attachMetadata(state, finalResponse, responses, plan)

	o.telemetry.RecordMetric("orchestrator.request_duration_seconds", time.Since(state.start).Seconds(), map[string]string{
		"execution_mode": string(mode),
	})
	if !result.Success {
		span.RecordError(fmt.Errorf("request failed: %s", result.ErrorMessage))
	}
	return result
}

// fail builds the terminal FinalResponse for a stage that cannot proceed.
// It publishes a diagnostic error event followed by final_response, which
// must remain the last event published for every request (spec §8).
func (o *Orchestrator) fail(state *pipelineState, pathStage string, err error) model.FinalResponse {
	o.telemetry.RecordMetric("orchestrator.request_failures_total", 1, map[string]string{"stage": pathStage})
	o.bus.Publish(state.requestID, events.TypeError, map[string]interface{}{"message": err.Error()})
	state.mark(pathStage)
	response := model.FinalResponse{
		Success:      false,
		ErrorMessage: err.Error(),
		ErrorType:    core.KindOf(err),
		ExecutionMetadata: model.ExecutionMetadata{
			ExecutionPath:      state.path,
			TotalExecutionTime: time.Since(state.start),
		},
	}
	o.bus.Publish(state.requestID, events.TypeFinalResponse, map[string]interface{}{
		"success":       response.Success,
		"error_message": response.ErrorMessage,
	})
	return response
}

// runProtected executes fn through breaker and wraps the outcome in a
// core.Result, so the caller can use core.IsCircuitOpen to tell a
// CircuitOpenError apart from a genuine component failure instead of
// string-matching an error message — the result-typed call design note
// (spec §9) that replaces exception-based circuit-breaker control flow.
func runProtected[T any](ctx context.Context, breaker *resilience.CircuitBreaker, fn func(ctx context.Context) (T, error)) core.Result[T] {
	var value T
	err := breaker.Execute(ctx, func(ctx context.Context) error {
		v, err := fn(ctx)
		if err != nil {
			return err
		}
		value = v
		return nil
	})
	if err != nil {
		return core.Failure[T](err)
	}
	return core.Success(value)
}

// createTask runs stage 1 through the analysis_engine breaker.
func (o *Orchestrator) createTask(ctx context.Context, userInput string, mode model.ExecutionMode) (model.Task, error) {
	ctx, span := o.telemetry.StartSpan(ctx, "orchestrator.analysis")
	defer span.End()

	breaker := o.resilience.Breaker(resilience.ComponentAnalysisEngine)
	result := runProtected(ctx, breaker, func(ctx context.Context) (model.Task, error) {
		intent, err := o.analysisEngine.AnalyzeIntent(userInput)
		if err != nil {
			return model.Task{}, err
		}
		complexity, err := o.analysisEngine.DetermineComplexity(userInput)
		if err != nil {
			return model.Task{}, err
		}
		return model.Task{
			ID:            uuid.NewString(),
			Content:       userInput,
			Intent:        intent,
			Complexity:    complexity,
			ExecutionMode: mode,
			CreatedAt:     time.Now(),
		}, nil
	})
	if !result.IsSuccess() {
		err := result.Err()
		span.RecordError(err)
		kind := core.KindAnalysis
		if core.IsCircuitOpen(err) {
			kind = core.KindCircuitOpen
		}
		return model.Task{}, core.NewFrameworkError("orchestrator.task_creation", kind, err)
	}
	task, _ := result.Get()
	return task, nil
}

// decompose runs stage 3 through the task_decomposer breaker, substituting
// a single fallback subtask on any failure (spec §4.1 stage 3).
func (o *Orchestrator) decompose(ctx context.Context, task model.Task) []model.Subtask {
	breaker := o.resilience.Breaker(resilience.ComponentTaskDecomposer)
	result := runProtected(ctx, breaker, func(ctx context.Context) ([]model.Subtask, error) {
		return o.decomposer.Decompose(task)
	})
	if !result.IsSuccess() {
		err := result.Err()
		reason := "decomposition failed"
		if core.IsCircuitOpen(err) {
			reason = "task_decomposer circuit breaker open"
		}
		o.logger.WarnWithContext(ctx, reason+", substituting fallback subtask", map[string]interface{}{
			"task_id": task.ID, "error": err.Error(),
		})
		return []model.Subtask{decomposition.FallbackSubtask(task)}
	}
	subtasks, _ := result.Get()
	return subtasks
}

// preflightCostCheck runs stage 2, ahead of task creation (spec §6: "if any
// pre-flight estimate exceeds this, request is rejected... before stage
// 1"). It speculatively decomposes the raw user input purely to estimate
// cost — mirroring the original system's estimate_cost_and_time, which
// re-decomposes the task a second time just for this estimate rather than
// threading the real stage-3 decomposition's output back here.
func (o *Orchestrator) preflightCostCheck(userInput string, mode model.ExecutionMode) (string, bool) {
	if o.config.MaxCostPerRequest <= 0 {
		return "", false
	}

	speculativeTask := model.Task{ID: "preflight", Content: userInput, ExecutionMode: mode}
	subtasks, err := o.decomposer.Decompose(speculativeTask)
	if err != nil {
		subtasks = []model.Subtask{decomposition.FallbackSubtask(speculativeTask)}
	}

	var total float64
	for _, st := range subtasks {
		candidates := o.registry.ModelsForTaskType(st.TaskType)
		if len(candidates) == 0 {
			continue
		}
		sel, ok := o.router.CostOptimizer().OptimizeModelSelection(st, mode, candidates)
		if ok {
			total += sel.EstimatedCost
		}
	}

	o.logger.Info("pre-flight cost estimate", map[string]interface{}{"estimated_cost": total, "currency": o.config.Currency})

	if total > o.config.MaxCostPerRequest {
		return fmt.Sprintf("estimated cost %.4f exceeds budget %.4f", total, o.config.MaxCostPerRequest), true
	}
	return "", false
}

func (o *Orchestrator) publishRoutingComplete(requestID string, subtasks []model.Subtask, mode model.ExecutionMode) {
	assignments := make([]map[string]interface{}, 0, len(subtasks))
	for _, st := range subtasks {
		caps, sel, err := o.router.SelectModel(st, mode)
		if err != nil {
			continue
		}
		assignments = append(assignments, map[string]interface{}{
			"subtask_id":     st.ID,
			"task_type":      string(st.TaskType),
			"model_id":       caps.ModelID,
			"reason":         sel.Reasoning,
			"estimated_cost": sel.EstimatedCost,
			"estimated_time": sel.EstimatedTime.String(),
		})
	}
	o.bus.Publish(requestID, events.TypeRoutingComplete, map[string]interface{}{
		"assignments":    assignments,
		"total_subtasks": len(subtasks),
	})
}

func countSuccesses(responses []model.AgentResponse) int {
	n := 0
	for _, r := range responses {
		if r.Success {
			n++
		}
	}
	return n
}

func priorityLookup(subtasks []model.Subtask) map[string]model.Priority {
	out := make(map[string]model.Priority, len(subtasks))
	for _, st := range subtasks {
		out[st.ID] = st.Priority
	}
	return out
}

// execute runs stage 5: every subtask in plan, grouped the way the router
// laid them out, bounded by config.MaxParallelExecutions concurrent
// workers. A subtask whose model fails is retried once against the
// router's next-best fallback before giving up (spec §4.4, §4.5).
func (o *Orchestrator) execute(ctx context.Context, state *pipelineState, plan model.ExecutionPlan) []model.AgentResponse {
	ctx, span := o.telemetry.StartSpan(ctx, "orchestrator.subtask_execution")
	span.SetAttribute("subtask_count", len(plan.SequentialOrder))
	defer span.End()

	degraded := o.resilience.HealthCheck() == "degraded"

	results := make(map[string]model.AgentResponse)
	var mu sync.Mutex
	var wg sync.WaitGroup
	sem := make(chan struct{}, o.config.MaxParallelExecutions)

	for _, group := range plan.ParallelGroups {
		for _, subtask := range group {
			subtask := subtask
			if state.mode == model.ModeFast && degraded &&
				(subtask.Priority == model.PriorityLow || subtask.Priority == model.PriorityMedium) {
				resp := execution.SkippedResponse(subtask)
				mu.Lock()
				results[subtask.ID] = resp
				mu.Unlock()
				o.publishExecutionProgress(state.requestID, resp)
				continue
			}

			wg.Add(1)
			sem <- struct{}{}
			go func() {
				defer wg.Done()
				defer func() { <-sem }()
				resp := o.runSubtask(ctx, subtask, state.mode)
				mu.Lock()
				results[subtask.ID] = resp
				mu.Unlock()
				o.publishExecutionProgress(state.requestID, resp)
			}()
		}
	}
	wg.Wait()

	ordered := make([]model.AgentResponse, 0, len(plan.SequentialOrder))
	for _, id := range plan.SequentialOrder {
		if resp, ok := results[id]; ok {
			ordered = append(ordered, resp)
		}
	}
	return ordered
}

// runSubtask selects a model, executes it, and retries once against the
// router's next-best fallback on failure (spec §4.1 stage 5).
func (o *Orchestrator) runSubtask(ctx context.Context, subtask model.Subtask, mode model.ExecutionMode) model.AgentResponse {
	caps, _, err := o.router.SelectModel(subtask, mode)
	if err != nil {
		return model.AgentResponse{SubtaskID: subtask.ID, Success: false, ErrorMessage: err.Error()}
	}

	resp := o.callModel(ctx, subtask, caps)
	if resp.Success {
		return resp
	}

	fallbackCaps, err := o.router.SelectFallback(caps.ModelID, subtask, mode)
	if err != nil {
		return resp
	}
	return o.callModel(ctx, subtask, fallbackCaps)
}

func (o *Orchestrator) callModel(ctx context.Context, subtask model.Subtask, caps model.ModelCapabilities) model.AgentResponse {
	client, ok := o.clients.Resolve(caps.ModelID)
	if !ok {
		return model.AgentResponse{
			SubtaskID: subtask.ID, ModelUsed: caps.ModelID, Success: false,
			ErrorMessage: fmt.Sprintf("no adapter registered for model %q", caps.ModelID),
		}
	}

	timeout := o.resilience.Timeouts().NextTimeout("execution."+string(subtask.TaskType), o.config.DefaultTimeout)
	resp := o.agent.Execute(ctx, subtask, client, caps, timeout)

	if resp.SelfAssessment != nil {
		o.router.RecordOutcome(caps.ModelID, resp.SelfAssessment.EstimatedCost, resp.SelfAssessment.Confidence)
	}
	return resp
}

func (o *Orchestrator) publishExecutionProgress(requestID string, resp model.AgentResponse) {
	status := "completed"
	if !resp.Success {
		status = "failed"
	}
	payload := map[string]interface{}{
		"subtask_id":    resp.SubtaskID,
		"model_id":      resp.ModelUsed,
		"status":        status,
		"success":       resp.Success,
		"error_message": resp.ErrorMessage,
	}
	if resp.SelfAssessment != nil {
		payload["confidence"] = resp.SelfAssessment.Confidence
		payload["cost"] = resp.SelfAssessment.EstimatedCost
		payload["execution_time"] = resp.SelfAssessment.ExecutionTime.String()
	}
	if reason, ok := resp.Metadata["reason"]; ok {
		payload["reason"] = reason
	}
	o.bus.Publish(requestID, events.TypeExecutionProgress, payload)
}

// checkPartialFailure runs stage 6. A success rate below
// config.PartialFailureThreshold files a PARTIAL_FAILURE event with the
// resilience manager; "fail" terminates the request, "continue_degraded"
// lets the remaining stages work with whatever succeeded.
func (o *Orchestrator) checkPartialFailure(state *pipelineState, responses []model.AgentResponse, successCount int) (bool, model.FinalResponse) {
	if len(responses) == 0 {
		return false, model.FinalResponse{}
	}
	successRate := float64(successCount) / float64(len(responses))
	if successRate >= o.config.PartialFailureThreshold {
		return false, model.FinalResponse{}
	}

	action := o.resilience.HandleFailure(model.FailureEvent{
		Type:         model.FailurePartial,
		Component:    "orchestrator",
		ErrorMessage: fmt.Sprintf("success rate %.2f below threshold %.2f", successRate, o.config.PartialFailureThreshold),
		Context:      map[string]interface{}{"success_count": successCount},
		Timestamp:    time.Now(),
	})

	state.mark("partial_failure_check")
	if action.ActionType == "fail" {
		err := fmt.Errorf("%w: %d/%d subtasks succeeded", core.ErrPartialFailure, successCount, len(responses))
		return true, o.fail(state, "partial_failure", core.NewFrameworkErrorf("orchestrator.partial_failure", core.KindPartialFailure, state.requestID, err))
	}
	state.mark("partial_failure_degraded")
	return false, model.FinalResponse{}
}

// arbitrate runs stage 7 against every successful response, even a single
// one (it still emits arbitration_decision with zero conflicts). Skipped
// only when arbitration is disabled or no subtask succeeded; on circuit
// breaker failure it degrades to the first successful response rather than
// blocking the request.
func (o *Orchestrator) arbitrate(ctx context.Context, state *pipelineState, responses []model.AgentResponse) []model.AgentResponse {
	successful := make([]model.AgentResponse, 0, len(responses))
	for _, r := range responses {
		if r.Success {
			successful = append(successful, r)
		}
	}
	if !o.config.EnableArbitration {
		state.mark("arbitration_skipped")
		return successful
	}
	if len(successful) == 0 {
		state.mark("arbitration_skipped")
		return successful
	}

	breaker := o.resilience.Breaker(resilience.ComponentArbitration)
	result := runProtected(ctx, breaker, func(ctx context.Context) (model.ArbitrationResult, error) {
		return o.arbitration.Arbitrate(successful), nil
	})
	if !result.IsSuccess() {
		reason := "arbitration failed, degrading to first successful response"
		if core.IsCircuitOpen(result.Err()) {
			reason = "arbitration circuit breaker open, degrading to first successful response"
		}
		o.logger.WarnWithContext(ctx, reason, map[string]interface{}{
			"request_id": state.requestID,
		})
		state.mark("arbitration_degraded")
		return successful[:1]
	}

	arbitration, _ := result.Get()
	state.mark("arbitration")
	o.bus.Publish(state.requestID, events.TypeArbitrationResult, map[string]interface{}{
		"conflicts_detected": len(arbitration.ConflictsResolved),
		"decisions":          arbitration.ConflictsResolved,
	})
	return arbitration.ValidatedResponses
}

// synthesizeFinal runs stage 8. Skipped when synthesis is disabled, in
// which case the first validated response is returned verbatim; on circuit
// breaker failure the same verbatim fallback applies.
func (o *Orchestrator) synthesizeFinal(ctx context.Context, state *pipelineState, validated []model.AgentResponse, priorities map[string]model.Priority) model.FinalResponse {
	if len(validated) == 0 {
		state.mark("synthesis_skipped")
		return model.FinalResponse{Success: false, ErrorMessage: "No responses available for synthesis"}
	}

	if !o.config.EnableSynthesis {
		state.mark("synthesis_bypassed")
		return verbatimResponse(validated[0])
	}

	o.bus.Publish(state.requestID, events.TypeSynthesisProgress, map[string]interface{}{"stage": "started"})

	breaker := o.resilience.Breaker(resilience.ComponentSynthesis)
	result := runProtected(ctx, breaker, func(ctx context.Context) (model.FinalResponse, error) {
		return o.synthesis.Synthesize(validated, func(subtaskID string) model.Priority {
			return priorities[subtaskID]
		}), nil
	})

	var final model.FinalResponse
	var degradedNote string
	if !result.IsSuccess() {
		if core.IsCircuitOpen(result.Err()) {
			degradedNote = "synthesis circuit breaker open, returning first validated response verbatim"
		} else {
			degradedNote = "synthesis failed, returning first validated response verbatim"
		}
		o.logger.WarnWithContext(ctx, degradedNote, map[string]interface{}{
			"request_id": state.requestID,
		})
		state.mark("synthesis_degraded")
		final = verbatimResponse(validated[0])
	} else {
		state.mark("synthesis")
		final, _ = result.Get()
	}

	payload := map[string]interface{}{
		"stage":              "complete",
		"content":            final.Content,
		"overall_confidence": final.OverallConfidence,
		"success":            final.Success,
	}
	if degradedNote != "" {
		payload["message"] = degradedNote
	}
	o.bus.Publish(state.requestID, events.TypeSynthesisProgress, payload)
	return final
}

func verbatimResponse(r model.AgentResponse) model.FinalResponse {
	confidence := 0.0
	if r.SelfAssessment != nil {
		confidence = r.SelfAssessment.Confidence
	}
	return model.FinalResponse{
		Content:           r.Content,
		OverallConfidence: confidence,
		Success:           true,
		ModelsUsed:        []string{r.ModelUsed},
	}
}

// attachMetadata runs stage 9: aggregating cost/token usage across every
// subtask response and recording the pipeline's execution path, then
// publishes the final_response event.
func (o *Orchestrator) attachMetadata(state *pipelineState, final model.FinalResponse, responses []model.AgentResponse, plan model.ExecutionPlan) model.FinalResponse {
	cost := model.CostBreakdown{
		ModelCosts: make(map[string]float64),
		TokenUsage: make(map[string]int),
		Currency:   o.config.Currency,
	}
	for _, r := range responses {
		if r.SelfAssessment == nil {
			continue
		}
		cost.ModelCosts[r.ModelUsed] += r.SelfAssessment.EstimatedCost
		cost.TokenUsage[r.ModelUsed] += r.SelfAssessment.TokenUsage
		cost.TotalCost += r.SelfAssessment.EstimatedCost
	}
	cost.ExecutionTime = time.Since(state.start)

	parallelExecutions := 0
	if len(plan.ParallelGroups) > 0 {
		parallelExecutions = len(plan.ParallelGroups[0])
		if parallelExecutions > o.config.MaxParallelExecutions {
			parallelExecutions = o.config.MaxParallelExecutions
		}
	}
	metadata := model.ExecutionMetadata{
		ExecutionPath:      state.path,
		TotalExecutionTime: time.Since(state.start),
		ParallelExecutions: parallelExecutions,
	}

	result := o.synthesis.AttachMetadata(final, cost, metadata)
	o.bus.Publish(state.requestID, events.TypeFinalResponse, map[string]interface{}{
		"success":            result.Success,
		"overall_confidence": result.OverallConfidence,
	})
	return result
}
