package synthesis

import (
	"testing"
	"time"

	"github.com/tech-psycho95/ai-council/model"
)

func TestSynthesizeEmptyReturnsFailure(t *testing.T) {
	l := NewLayer()
	final := l.Synthesize(nil, nil)
	if final.Success {
		t.Fatal("expected success=false for empty input")
	}
	if final.ErrorMessage != "No responses available for synthesis" {
		t.Fatalf("unexpected error message: %s", final.ErrorMessage)
	}
}

func TestSynthesizeWeightsByPriority(t *testing.T) {
	l := NewLayer()
	responses := []model.AgentResponse{
		{SubtaskID: "s1", ModelUsed: "alpha", Content: "a", Success: true, SelfAssessment: &model.SelfAssessment{Confidence: 1.0}},
		{SubtaskID: "s2", ModelUsed: "beta", Content: "b", Success: true, SelfAssessment: &model.SelfAssessment{Confidence: 0.0}},
	}
	priorities := map[string]model.Priority{"s1": model.PriorityHigh, "s2": model.PriorityLow}
	final := l.Synthesize(responses, func(id string) model.Priority { return priorities[id] })

	// weighted mean = (1.0*3 + 0.0*1) / (3+1) = 0.75
	if diff := final.OverallConfidence - 0.75; diff > 1e-9 || diff < -1e-9 {
		t.Fatalf("expected overall confidence 0.75, got %f", final.OverallConfidence)
	}
}

func TestSynthesizeDeduplicatesModelsUsed(t *testing.T) {
	l := NewLayer()
	responses := []model.AgentResponse{
		{SubtaskID: "s1", ModelUsed: "alpha", Content: "a", Success: true, SelfAssessment: &model.SelfAssessment{Confidence: 0.8}},
		{SubtaskID: "s2", ModelUsed: "alpha", Content: "b", Success: true, SelfAssessment: &model.SelfAssessment{Confidence: 0.8}},
	}
	final := l.Synthesize(responses, nil)
	if len(final.ModelsUsed) != 1 || final.ModelsUsed[0] != "alpha" {
		t.Fatalf("expected deduplicated [alpha], got %v", final.ModelsUsed)
	}
}

func TestAttachMetadataDoesNotMutateOriginal(t *testing.T) {
	l := NewLayer()
	original := model.FinalResponse{Content: "hi"}
	cost := model.CostBreakdown{TotalCost: 1.5}
	meta := model.ExecutionMetadata{TotalExecutionTime: 2 * time.Second, ParallelExecutions: 3}

	updated := l.AttachMetadata(original, cost, meta)
	if original.CostBreakdown.TotalCost != 0 {
		t.Fatal("expected original to remain unmodified")
	}
	if updated.CostBreakdown.TotalCost != 1.5 {
		t.Fatalf("expected updated cost 1.5, got %f", updated.CostBreakdown.TotalCost)
	}
}
