// Package synthesis implements the SynthesisLayer: combining validated
// AgentResponses into a single FinalResponse.
package synthesis

import (
	"sort"
	"strings"

	"github.com/tech-psycho95/ai-council/model"
)

// subtaskPriority looks up the priority of the subtask a response answers,
// for confidence weighting. Subtasks are the authoritative source of
// priority, not the response itself.
type subtaskPriority func(subtaskID string) model.Priority

// Layer is the SynthesisLayer.
type Layer struct{}

// NewLayer builds a Layer. Stateless: kept as a type for symmetry with the
// other pipeline stages and so it can grow configuration later.
func NewLayer() *Layer {
	return &Layer{}
}

// Synthesize combines validated responses into one FinalResponse. Content
// from multiple responses is joined in subtask order; overall_confidence is
// the priority-weighted mean of each response's self-reported confidence.
func (l *Layer) Synthesize(validated []model.AgentResponse, priorityOf subtaskPriority) model.FinalResponse {
	if len(validated) == 0 {
		return model.FinalResponse{
			Success:      false,
			ErrorMessage: "No responses available for synthesis",
		}
	}

	var contentParts []string
	var weightedSum, weightTotal float64
	modelSet := make(map[string]struct{})

	for _, r := range validated {
		contentParts = append(contentParts, strings.TrimSpace(r.Content))
		modelSet[r.ModelUsed] = struct{}{}

		confidence := 0.0
		if r.SelfAssessment != nil {
			confidence = r.SelfAssessment.Confidence
		}
		weight := 1.0
		if priorityOf != nil {
			weight = priorityOf(r.SubtaskID).Weight()
		}
		weightedSum += confidence * weight
		weightTotal += weight
	}

	overallConfidence := 0.0
	if weightTotal > 0 {
		overallConfidence = weightedSum / weightTotal
	}

	modelsUsed := make([]string, 0, len(modelSet))
	for m := range modelSet {
		modelsUsed = append(modelsUsed, m)
	}
	sort.Strings(modelsUsed)

	return model.FinalResponse{
		Content:           strings.Join(contentParts, "\n\n"),
		OverallConfidence: overallConfidence,
		Success:           true,
		ModelsUsed:        modelsUsed,
	}
}

// AttachMetadata returns a copy of response with its CostBreakdown and
// ExecutionMetadata set, matching the specification's attach_metadata
// operation (a pure transform, never mutates its argument).
func (l *Layer) AttachMetadata(response model.FinalResponse, cost model.CostBreakdown, metadata model.ExecutionMetadata) model.FinalResponse {
	response.CostBreakdown = cost
	response.ExecutionMetadata = metadata
	return response
}
