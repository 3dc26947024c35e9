package routing

import (
	"testing"
	"time"

	"github.com/tech-psycho95/ai-council/model"
)

func capsFixture(id string, taskTypes []model.TaskType, cost float64, reliability float64) model.ModelCapabilities {
	return model.ModelCapabilities{
		ModelID:         id,
		TaskTypes:       taskTypes,
		AvgCostPerToken: cost,
		AvgLatency:      100 * time.Millisecond,
		MaxContext:      8192,
		Reliability:     reliability,
	}
}

func TestInMemoryRegistryFiltersByTaskType(t *testing.T) {
	r := NewInMemoryRegistry()
	r.RegisterModel(capsFixture("alpha", []model.TaskType{model.TaskReasoning}, 0.001, 0.9))
	r.RegisterModel(capsFixture("beta", []model.TaskType{model.TaskCodeGeneration}, 0.002, 0.8))

	got := r.ModelsForTaskType(model.TaskReasoning)
	if len(got) != 1 || got[0].ModelID != "alpha" {
		t.Fatalf("expected only alpha, got %+v", got)
	}
}

func TestInMemoryRegistryModelsForTaskTypeSortedDeterministic(t *testing.T) {
	r := NewInMemoryRegistry()
	r.RegisterModel(capsFixture("zeta", []model.TaskType{model.TaskReasoning}, 0.001, 0.9))
	r.RegisterModel(capsFixture("alpha", []model.TaskType{model.TaskReasoning}, 0.001, 0.9))

	got := r.ModelsForTaskType(model.TaskReasoning)
	if len(got) != 2 || got[0].ModelID != "alpha" || got[1].ModelID != "zeta" {
		t.Fatalf("expected sorted [alpha zeta], got %+v", got)
	}
}

func TestInMemoryRegistryGetMissing(t *testing.T) {
	r := NewInMemoryRegistry()
	if _, ok := r.Get("nope"); ok {
		t.Fatal("expected not found")
	}
}
