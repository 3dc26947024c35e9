package execution

import (
	"errors"
	"time"

	"github.com/tech-psycho95/ai-council/core"
	"github.com/tech-psycho95/ai-council/model"
	"github.com/tech-psycho95/ai-council/resilience"

	"context"
)

// Agent executes one (Subtask, model) pair. Execute never returns an error:
// every failure mode is folded into a failed AgentResponse, matching the
// specification's "on any thrown error, returns AgentResponse{success=false};
// never throws."
type Agent struct {
	logger   core.Logger
	timeouts *resilience.TimeoutHandler
}

// NewAgent builds an Agent. A nil logger defaults to NoOpLogger.
func NewAgent(timeouts *resilience.TimeoutHandler, logger core.Logger) *Agent {
	if logger == nil {
		logger = &core.NoOpLogger{}
	}
	return &Agent{logger: logger, timeouts: timeouts}
}

// Execute runs subtask against client under caps' cost model and the given
// deadline, returning a populated AgentResponse.
func (a *Agent) Execute(ctx context.Context, subtask model.Subtask, client ModelClient, caps model.ModelCapabilities, timeout time.Duration) model.AgentResponse {
	start := time.Now()
	opts := GenerationOptions{Temperature: 0.7, MaxTokens: 2048}

	var result GenerationResult
	opName := "execution." + string(subtask.TaskType)
	err := a.timeouts.ExecuteWithTimeout(ctx, opName, timeout, func(ctx context.Context) error {
		var genErr error
		result, genErr = client.Generate(ctx, subtask.Content, opts)
		return genErr
	})

	if err != nil {
		return a.failureResponse(subtask, client.ModelID(), err)
	}

	elapsed := time.Since(start)
	confidence := result.Confidence
	if confidence == 0 {
		confidence = estimateConfidence(subtask, result)
	}

	assessment := &model.SelfAssessment{
		Confidence:    confidence,
		RiskLevel:     riskLevel(confidence),
		EstimatedCost: caps.AvgCostPerToken * float64(result.TokenUsage),
		TokenUsage:    result.TokenUsage,
		ExecutionTime: elapsed,
		ModelUsed:     client.ModelID(),
	}

	a.logger.Info("subtask executed", map[string]interface{}{
		"subtask_id": subtask.ID,
		"model":      client.ModelID(),
		"confidence": confidence,
		"duration":   elapsed.String(),
	})

	return model.AgentResponse{
		SubtaskID:      subtask.ID,
		ModelUsed:      client.ModelID(),
		Content:        result.Content,
		SelfAssessment: assessment,
		Success:        true,
		Metadata:       map[string]interface{}{},
	}
}

func (a *Agent) failureResponse(subtask model.Subtask, modelID string, err error) model.AgentResponse {
	var timeoutErr *resilience.TimeoutError
	metadata := map[string]interface{}{}
	message := err.Error()

	if errors.As(err, &timeoutErr) {
		message = "Execution timed out: " + err.Error()
		metadata["timeout"] = true
		metadata["timeout_duration"] = timeoutErr.Duration.String()
	}

	a.logger.Warn("subtask execution failed", map[string]interface{}{
		"subtask_id": subtask.ID,
		"model":      modelID,
		"error":      message,
	})

	return model.AgentResponse{
		SubtaskID:    subtask.ID,
		ModelUsed:    modelID,
		Success:      false,
		ErrorMessage: message,
		Metadata:     metadata,
	}
}

// SkippedResponse builds the AgentResponse for a subtask skipped before
// execution because the system is degraded (spec §4.8, §9 supplemented
// health-driven skipping).
func SkippedResponse(subtask model.Subtask) model.AgentResponse {
	return model.AgentResponse{
		SubtaskID:    subtask.ID,
		Success:      false,
		ErrorMessage: "skipped: system degraded",
		Metadata: map[string]interface{}{
			"skipped": true,
			"reason":  "system_degraded",
		},
	}
}

func estimateConfidence(subtask model.Subtask, result GenerationResult) float64 {
	if result.FinishReason == "stop" || result.FinishReason == "" {
		return 0.75
	}
	return 0.5
}

func riskLevel(confidence float64) string {
	switch {
	case confidence >= 0.8:
		return "low"
	case confidence >= 0.5:
		return "medium"
	default:
		return "high"
	}
}
