package registry

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/tech-psycho95/ai-council/model"
	"github.com/tech-psycho95/ai-council/routing"
)

const sampleYAML = `
models:
  - model_id: gpt-fast
    task_types: ["REASONING", "RESEARCH"]
    avg_cost_per_token: 0.0005
    avg_latency: "300ms"
    max_context: 8192
    reliability: 0.85
    strengths: ["speed"]
  - model_id: gpt-quality
    task_types: ["REASONING"]
    avg_cost_per_token: 0.01
    avg_latency: "2s"
    max_context: 32768
    reliability: 0.97
`

func TestLoadCapabilitiesFileRegistersModels(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "capabilities.yaml")
	if err := os.WriteFile(path, []byte(sampleYAML), 0o644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	reg := routing.NewInMemoryRegistry()
	if err := LoadCapabilitiesFile(path, reg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	caps, ok := reg.Get("gpt-fast")
	if !ok {
		t.Fatal("expected gpt-fast to be registered")
	}
	if !caps.ServesTaskType(model.TaskResearch) {
		t.Fatal("expected gpt-fast to serve RESEARCH")
	}

	models := reg.ModelsForTaskType(model.TaskReasoning)
	if len(models) != 2 {
		t.Fatalf("expected 2 models serving REASONING, got %d", len(models))
	}
}

func TestLoadCapabilitiesFileMissingModelID(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	bad := "models:\n  - avg_cost_per_token: 0.1\n    avg_latency: \"1s\"\n"
	if err := os.WriteFile(path, []byte(bad), 0o644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	reg := routing.NewInMemoryRegistry()
	if err := LoadCapabilitiesFile(path, reg); err == nil {
		t.Fatal("expected error for missing model_id")
	}
}

func TestLoadCapabilitiesFileMissingFile(t *testing.T) {
	reg := routing.NewInMemoryRegistry()
	if err := LoadCapabilitiesFile("/nonexistent/path.yaml", reg); err == nil {
		t.Fatal("expected error for missing file")
	}
}
