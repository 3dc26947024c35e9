// Package arbitration implements the ArbitrationLayer: detecting conflicts
// between multiple AgentResponses answering the same subtask and choosing
// which one to keep.
package arbitration

import (
	"fmt"
	"sort"
	"strings"

	"github.com/tech-psycho95/ai-council/model"
	"github.com/tech-psycho95/ai-council/routing"
)

// confidenceConflictThreshold is the maximum self-reported confidence
// delta between two responses to the same subtask before they are treated
// as contradictory, per spec §4.6 ("differ by more than 0.2").
const confidenceConflictThreshold = 0.2

// ContentDistance scores how much two response contents disagree, in
// [0, 1]; 0 is identical, 1 is maximally different. Pluggable so callers
// can swap in an embedding-based distance without touching the layer.
type ContentDistance func(a, b string) float64

// DefaultContentDistance is a cheap token-overlap (Jaccard) distance: it
// needs no external embedding service and is deterministic, matching the
// core's no-network-dependency constraint for this stage.
func DefaultContentDistance(a, b string) float64 {
	ta := tokenSet(a)
	tb := tokenSet(b)
	if len(ta) == 0 && len(tb) == 0 {
		return 0
	}
	union := make(map[string]struct{}, len(ta)+len(tb))
	for t := range ta {
		union[t] = struct{}{}
	}
	for t := range tb {
		union[t] = struct{}{}
	}
	intersection := 0
	for t := range ta {
		if _, ok := tb[t]; ok {
			intersection++
		}
	}
	if len(union) == 0 {
		return 0
	}
	similarity := float64(intersection) / float64(len(union))
	return 1 - similarity
}

func tokenSet(s string) map[string]struct{} {
	fields := strings.Fields(strings.ToLower(s))
	out := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		out[f] = struct{}{}
	}
	return out
}

// Config holds the thresholds arbitration uses to decide "these two
// responses conflict." Resolves spec §9's open question about what
// constitutes conflict by making both knobs explicit and overridable.
type Config struct {
	DistanceThreshold   float64
	ConfidenceThreshold float64
	Distance            ContentDistance
}

// DefaultConfig returns the threshold values used when a caller doesn't
// override them: distance 0.6 (responses sharing under 40% token overlap
// are considered disagreeing), confidence delta 0.2 per spec.
func DefaultConfig() Config {
	return Config{
		DistanceThreshold:   0.6,
		ConfidenceThreshold: confidenceConflictThreshold,
		Distance:            DefaultContentDistance,
	}
}

// Layer is the ArbitrationLayer.
type Layer struct {
	config   Config
	registry routing.Registry
}

// NewLayer builds a Layer. A nil registry disables reliability-based tie
// breaking (ties then resolve on confidence alone).
func NewLayer(config Config, registry routing.Registry) *Layer {
	if config.Distance == nil {
		config.Distance = DefaultContentDistance
	}
	return &Layer{config: config, registry: registry}
}

// Arbitrate groups responses by subtask_id, detects conflicts within each
// group, and keeps the winner. Responses with Success=false are dropped
// before grouping — arbitration only reconciles usable answers.
func (l *Layer) Arbitrate(responses []model.AgentResponse) model.ArbitrationResult {
	groups := make(map[string][]model.AgentResponse)
	var order []string
	for _, r := range responses {
		if !r.Success {
			continue
		}
		if _, seen := groups[r.SubtaskID]; !seen {
			order = append(order, r.SubtaskID)
		}
		groups[r.SubtaskID] = append(groups[r.SubtaskID], r)
	}

	result := model.ArbitrationResult{}
	for _, subtaskID := range order {
		group := groups[subtaskID]
		if len(group) == 1 {
			result.ValidatedResponses = append(result.ValidatedResponses, group[0])
			continue
		}

		conflicted := l.anyConflict(group)
		winner, reasoning := l.choose(group)
		result.ValidatedResponses = append(result.ValidatedResponses, winner)
		if conflicted {
			result.ConflictsResolved = append(result.ConflictsResolved, model.ConflictResolution{
				ChosenResponseID: responseID(winner),
				Reasoning:        reasoning,
				Confidence:       confidenceOf(winner),
			})
		}
	}
	return result
}

func (l *Layer) anyConflict(group []model.AgentResponse) bool {
	for i := 0; i < len(group); i++ {
		for j := i + 1; j < len(group); j++ {
			if l.config.Distance(group[i].Content, group[j].Content) >= l.config.DistanceThreshold {
				return true
			}
			if abs(confidenceOf(group[i])-confidenceOf(group[j])) > l.config.ConfidenceThreshold {
				return true
			}
		}
	}
	return false
}

// choose picks the response with the highest self-reported confidence,
// breaking ties by the producing model's registered reliability.
func (l *Layer) choose(group []model.AgentResponse) (model.AgentResponse, string) {
	sorted := make([]model.AgentResponse, len(group))
	copy(sorted, group)
	sort.SliceStable(sorted, func(i, j int) bool {
		ci, cj := confidenceOf(sorted[i]), confidenceOf(sorted[j])
		if ci != cj {
			return ci > cj
		}
		return l.reliabilityOf(sorted[i].ModelUsed) > l.reliabilityOf(sorted[j].ModelUsed)
	})
	winner := sorted[0]
	reasoning := fmt.Sprintf("chosen for highest confidence (%.2f) among %d conflicting responses", confidenceOf(winner), len(group))
	return winner, reasoning
}

func (l *Layer) reliabilityOf(modelID string) float64 {
	if l.registry == nil {
		return 0
	}
	caps, ok := l.registry.Get(modelID)
	if !ok {
		return 0
	}
	return caps.Reliability
}

func confidenceOf(r model.AgentResponse) float64 {
	if r.SelfAssessment == nil {
		return 0
	}
	return r.SelfAssessment.Confidence
}

func responseID(r model.AgentResponse) string {
	return r.SubtaskID + "/" + r.ModelUsed
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}
