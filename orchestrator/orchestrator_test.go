package orchestrator

import (
	"context"
	"testing"
	"time"

	"github.com/tech-psycho95/ai-council/core"
	"github.com/tech-psycho95/ai-council/model"
	"github.com/tech-psycho95/ai-council/providers/mock"
	"github.com/tech-psycho95/ai-council/routing"
	"github.com/tech-psycho95/ai-council/telemetry"
)

func reasoningModel(id string, reliability float64) model.ModelCapabilities {
	return model.ModelCapabilities{
		ModelID:         id,
		TaskTypes:       []model.TaskType{model.TaskReasoning, model.TaskResearch, model.TaskFactChecking, model.TaskCodeGeneration, model.TaskDebugging},
		AvgCostPerToken: 0.001,
		AvgLatency:      200 * time.Millisecond,
		MaxContext:      8192,
		Reliability:     reliability,
	}
}

func newTestRegistry(ids ...string) *routing.InMemoryRegistry {
	reg := routing.NewInMemoryRegistry()
	for i, id := range ids {
		reg.RegisterModel(reasoningModel(id, 0.8+float64(i)*0.01))
	}
	return reg
}

func TestProcessRequestSingleModelHappyPath(t *testing.T) {
	reg := newTestRegistry("gpt-a")
	clients := StaticResolver{"gpt-a": mock.NewClient("gpt-a", "the answer is 42")}

	orch := New(reg, clients, nil, nil)
	resp := orch.ProcessRequest(context.Background(), "What is the meaning of life?", model.ModeBalanced)

	if !resp.Success {
		t.Fatalf("expected success, got error %q", resp.ErrorMessage)
	}
	if resp.Content == "" {
		t.Fatal("expected non-empty content")
	}
	if len(resp.ModelsUsed) == 0 {
		t.Fatal("expected at least one model recorded")
	}
	if resp.ExecutionMetadata.TotalExecutionTime <= 0 {
		t.Fatal("expected non-zero execution time")
	}
}

func TestProcessRequestNoModelsAvailableDegradesGracefully(t *testing.T) {
	reg := routing.NewInMemoryRegistry()
	clients := StaticResolver{}

	orch := New(reg, clients, nil, nil)
	resp := orch.ProcessRequest(context.Background(), "Explain quantum entanglement and also summarize it.", model.ModeBalanced)

	if resp.Success {
		t.Fatal("expected failure when no models are registered for any task type")
	}
	if resp.ErrorMessage == "" {
		t.Fatal("expected a non-empty error message")
	}
}

func TestProcessRequestFailedModelFallsBackToNextCandidate(t *testing.T) {
	reg := newTestRegistry("gpt-a", "gpt-b")
	failing := mock.FailWith("gpt-b", core.KindModelUnavail, core.ErrModelUnavail)
	clients := StaticResolver{
		"gpt-a": mock.NewClient("gpt-a", "fallback answer"),
		"gpt-b": failing,
	}

	orch := New(reg, clients, nil, nil, WithPartialFailureThreshold(0))
	resp := orch.ProcessRequest(context.Background(), "Describe the water cycle.", model.ModeBalanced)

	if !resp.Success {
		t.Fatalf("expected degraded success via fallback, got error %q", resp.ErrorMessage)
	}
	if resp.Content != "fallback answer" {
		t.Fatalf("expected content from the fallback model, got %q", resp.Content)
	}
}

// TestCheckPartialFailureMarksExecutionPathDegraded exercises stage 6 of the
// pipeline directly: when the recovery action is continue_degraded the
// execution path must record partial_failure_degraded alongside
// partial_failure_check (spec §4.1 stage 6).
func TestCheckPartialFailureMarksExecutionPathDegraded(t *testing.T) {
	reg := newTestRegistry("gpt-a")
	clients := StaticResolver{"gpt-a": mock.NewClient("gpt-a", "ok")}
	orch := New(reg, clients, nil, nil, WithPartialFailureThreshold(1))

	state := &pipelineState{requestID: "req-degraded-test", mode: model.ModeBalanced}
	responses := []model.AgentResponse{
		{SubtaskID: "s1", Success: true},
		{SubtaskID: "s2", Success: false},
	}

	failed, _ := orch.checkPartialFailure(state, responses, 1)
	if failed {
		t.Fatal("expected continue_degraded, not a terminal failure")
	}

	found := false
	for _, step := range state.path {
		if step == "partial_failure_degraded" {
			found = true
			break
		}
	}
	if !found {
		t.Fatalf("expected execution_path to contain partial_failure_degraded, got %v", state.path)
	}
}

func TestProcessRequestArbitrationConflictPicksHigherConfidence(t *testing.T) {
	reg := routing.NewInMemoryRegistry()
	reg.RegisterModel(reasoningModel("gpt-low", 0.80))
	reg.RegisterModel(reasoningModel("gpt-high", 0.95))

	clients := StaticResolver{
		"gpt-low":  mock.NewClient("gpt-low", "answer one"),
		"gpt-high": mock.NewClient("gpt-high", "a completely different answer"),
	}

	orch := New(reg, clients, nil, nil)
	resp := orch.ProcessRequest(context.Background(), "Summarize this document for me.", model.ModeBalanced)

	if !resp.Success {
		t.Fatalf("expected success, got error %q", resp.ErrorMessage)
	}
}

func TestProcessRequestEmptyInputFails(t *testing.T) {
	reg := newTestRegistry("gpt-a")
	clients := StaticResolver{"gpt-a": mock.NewClient("gpt-a", "ok")}

	orch := New(reg, clients, nil, nil)
	resp := orch.ProcessRequest(context.Background(), "", model.ModeBalanced)

	if resp.Success {
		t.Fatal("expected failure for empty input")
	}
}

func TestProcessRequestDefaultsExecutionModeWhenUnset(t *testing.T) {
	reg := newTestRegistry("gpt-a")
	clients := StaticResolver{"gpt-a": mock.NewClient("gpt-a", "ok")}

	orch := New(reg, clients, nil, nil, WithDefaultMode(model.ModeFast))
	resp := orch.ProcessRequest(context.Background(), "Quick question: what time is it?", "")

	if !resp.Success {
		t.Fatalf("expected success under default FAST mode, got error %q", resp.ErrorMessage)
	}
}

func TestProcessRequestSynthesisDisabledReturnsVerbatimResponse(t *testing.T) {
	reg := newTestRegistry("gpt-a")
	clients := StaticResolver{"gpt-a": mock.NewClient("gpt-a", "verbatim content")}

	orch := New(reg, clients, nil, nil, WithSynthesis(false))
	resp := orch.ProcessRequest(context.Background(), "Tell me a fact.", model.ModeBalanced)

	if !resp.Success {
		t.Fatalf("expected success, got error %q", resp.ErrorMessage)
	}
	if resp.Content != "verbatim content" {
		t.Fatalf("expected verbatim content, got %q", resp.Content)
	}
}

func TestProcessRequestRecordsOTelSpansAndMetrics(t *testing.T) {
	provider, err := telemetry.NewOTelProvider("orchestrator-test")
	if err != nil {
		t.Fatalf("unexpected error building telemetry provider: %v", err)
	}
	defer provider.Shutdown(context.Background())

	reg := newTestRegistry("gpt-a")
	clients := StaticResolver{"gpt-a": mock.NewClient("gpt-a", "the answer is 42")}

	orch := New(reg, clients, nil, provider)
	resp := orch.ProcessRequest(context.Background(), "What is the meaning of life?", model.ModeBalanced)

	if !resp.Success {
		t.Fatalf("expected success, got error %q", resp.ErrorMessage)
	}
}

func TestSubscribeReceivesLifecycleEvents(t *testing.T) {
	reg := newTestRegistry("gpt-a")
	slowClient := mock.NewClient("gpt-a", "ok")
	slowClient.Delay = func(ctx context.Context) error {
		time.Sleep(50 * time.Millisecond)
		return nil
	}
	clients := StaticResolver{"gpt-a": slowClient}

	orch := New(reg, clients, nil, nil)

	requestID, result := orch.Begin(context.Background(), "Hello there.", model.ModeBalanced)
	stream, unsubscribe := orch.Subscribe(requestID)
	defer unsubscribe()

	var types []string
	timeout := time.After(5 * time.Second)
collect:
	for {
		select {
		case evt, ok := <-stream:
			if !ok {
				break collect
			}
			types = append(types, string(evt.Type))
			if evt.Type == "final_response" {
				break collect
			}
		case <-timeout:
			t.Fatal("timed out waiting for final_response event")
		}
	}

	resp := <-result
	if !resp.Success {
		t.Fatalf("expected success, got error %q", resp.ErrorMessage)
	}
	if len(types) == 0 || types[0] != "processing_started" {
		t.Fatalf("expected first event to be processing_started, got %v", types)
	}
	if types[len(types)-1] != "final_response" {
		t.Fatalf("expected last event to be final_response, got %v", types)
	}
}
