package arbitration

import (
	"testing"

	"github.com/tech-psycho95/ai-council/model"
	"github.com/tech-psycho95/ai-council/routing"
)

func responseFixture(subtaskID, modelID, content string, confidence float64) model.AgentResponse {
	return model.AgentResponse{
		SubtaskID: subtaskID,
		ModelUsed: modelID,
		Content:   content,
		Success:   true,
		SelfAssessment: &model.SelfAssessment{
			Confidence: confidence,
			ModelUsed:  modelID,
		},
	}
}

func TestArbitrateSingleResponsePassesThrough(t *testing.T) {
	l := NewLayer(DefaultConfig(), nil)
	result := l.Arbitrate([]model.AgentResponse{responseFixture("s1", "alpha", "Paris", 0.9)})
	if len(result.ValidatedResponses) != 1 {
		t.Fatalf("expected 1 validated response, got %d", len(result.ValidatedResponses))
	}
	if len(result.ConflictsResolved) != 0 {
		t.Fatalf("expected no conflicts for single response")
	}
}

func TestArbitrateDropsFailedResponses(t *testing.T) {
	l := NewLayer(DefaultConfig(), nil)
	failed := model.AgentResponse{SubtaskID: "s1", ModelUsed: "alpha", Success: false}
	result := l.Arbitrate([]model.AgentResponse{failed})
	if len(result.ValidatedResponses) != 0 {
		t.Fatalf("expected no validated responses, got %d", len(result.ValidatedResponses))
	}
}

func TestArbitrateConflictingContentPicksHighestConfidence(t *testing.T) {
	l := NewLayer(DefaultConfig(), nil)
	a := responseFixture("s1", "alpha", "The answer is forty two and nothing else matters here", 0.6)
	b := responseFixture("s1", "beta", "Completely different response about quantum mechanics and relativity", 0.95)

	result := l.Arbitrate([]model.AgentResponse{a, b})
	if len(result.ValidatedResponses) != 1 {
		t.Fatalf("expected 1 validated response, got %d", len(result.ValidatedResponses))
	}
	if result.ValidatedResponses[0].ModelUsed != "beta" {
		t.Fatalf("expected beta to win on confidence, got %s", result.ValidatedResponses[0].ModelUsed)
	}
	if len(result.ConflictsResolved) != 1 {
		t.Fatalf("expected 1 conflict resolution, got %d", len(result.ConflictsResolved))
	}
}

func TestArbitrateAgreeingResponsesNoConflict(t *testing.T) {
	l := NewLayer(DefaultConfig(), nil)
	a := responseFixture("s1", "alpha", "Paris is the capital of France", 0.9)
	b := responseFixture("s1", "beta", "Paris is the capital of France indeed", 0.88)

	result := l.Arbitrate([]model.AgentResponse{a, b})
	if len(result.ConflictsResolved) != 0 {
		t.Fatalf("expected no conflict for near-identical responses, got %d", len(result.ConflictsResolved))
	}
}

func TestArbitrateTieBreaksOnReliability(t *testing.T) {
	registry := routing.NewInMemoryRegistry()
	registry.RegisterModel(model.ModelCapabilities{ModelID: "alpha", Reliability: 0.5})
	registry.RegisterModel(model.ModelCapabilities{ModelID: "beta", Reliability: 0.95})

	l := NewLayer(DefaultConfig(), registry)
	a := responseFixture("s1", "alpha", "Response one with distinct wording entirely unrelated to response two", 0.8)
	b := responseFixture("s1", "beta", "Totally separate content describing something else altogether", 0.8)

	result := l.Arbitrate([]model.AgentResponse{a, b})
	if result.ValidatedResponses[0].ModelUsed != "beta" {
		t.Fatalf("expected beta to win tie on reliability, got %s", result.ValidatedResponses[0].ModelUsed)
	}
}
