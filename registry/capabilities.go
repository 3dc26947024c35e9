// Package registry loads ModelCapabilities definitions from a YAML
// configuration file into a routing.Registry, so operators can register
// models without recompiling.
package registry

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/tech-psycho95/ai-council/model"
	"github.com/tech-psycho95/ai-council/routing"
)

// fileModel mirrors one model entry in the capabilities file. Durations and
// task types are strings on disk and converted on load.
type fileModel struct {
	ModelID        string   `yaml:"model_id"`
	TaskTypes      []string `yaml:"task_types"`
	AvgCostPerToken float64 `yaml:"avg_cost_per_token"`
	AvgLatency      string  `yaml:"avg_latency"`
	MaxContext      int     `yaml:"max_context"`
	Reliability     float64 `yaml:"reliability"`
	Strengths       []string `yaml:"strengths"`
	Weaknesses      []string `yaml:"weaknesses"`
}

type fileFormat struct {
	Models []fileModel `yaml:"models"`
}

// LoadCapabilitiesFile parses a YAML capabilities file and registers every
// entry into registry. Returns an error naming the first malformed entry
// rather than partially registering the file.
func LoadCapabilitiesFile(path string, reg routing.Registry) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("registry: read capabilities file: %w", err)
	}

	var parsed fileFormat
	if err := yaml.Unmarshal(raw, &parsed); err != nil {
		return fmt.Errorf("registry: parse capabilities file: %w", err)
	}

	converted := make([]model.ModelCapabilities, 0, len(parsed.Models))
	for _, fm := range parsed.Models {
		caps, err := fm.toCapabilities()
		if err != nil {
			return fmt.Errorf("registry: model %q: %w", fm.ModelID, err)
		}
		converted = append(converted, caps)
	}
	for _, caps := range converted {
		reg.RegisterModel(caps)
	}
	return nil
}

func (fm fileModel) toCapabilities() (model.ModelCapabilities, error) {
	if fm.ModelID == "" {
		return model.ModelCapabilities{}, fmt.Errorf("missing model_id")
	}
	latency, err := time.ParseDuration(fm.AvgLatency)
	if err != nil {
		return model.ModelCapabilities{}, fmt.Errorf("invalid avg_latency %q: %w", fm.AvgLatency, err)
	}

	taskTypes := make([]model.TaskType, len(fm.TaskTypes))
	for i, tt := range fm.TaskTypes {
		taskTypes[i] = model.TaskType(tt)
	}

	return model.ModelCapabilities{
		ModelID:         fm.ModelID,
		TaskTypes:       taskTypes,
		AvgCostPerToken: fm.AvgCostPerToken,
		AvgLatency:      latency,
		MaxContext:      fm.MaxContext,
		Reliability:     fm.Reliability,
		Strengths:       fm.Strengths,
		Weaknesses:      fm.Weaknesses,
	}, nil
}
