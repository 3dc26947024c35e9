package routing

import (
	"sort"
	"time"

	"github.com/tech-psycho95/ai-council/model"
)

// modeMultipliers are the FAST/BALANCED/BEST_QUALITY cost/time/quality
// knobs, grounded on the original system's _build_execution_configs().
type modeMultipliers struct {
	costMultiplier   float64
	timeMultiplier   float64
	qualityThreshold float64
}

func multipliersFor(mode model.ExecutionMode) modeMultipliers {
	switch mode {
	case model.ModeFast:
		return modeMultipliers{costMultiplier: 0.7, timeMultiplier: 0.5, qualityThreshold: 0.6}
	case model.ModeBestQuality:
		return modeMultipliers{costMultiplier: 1.5, timeMultiplier: 1.8, qualityThreshold: 0.95}
	default: // BALANCED
		return modeMultipliers{costMultiplier: 1.0, timeMultiplier: 1.0, qualityThreshold: 0.8}
	}
}

const costEpsilon = 1e-9

// Selection is the outcome of optimizing model choice for one subtask.
type Selection struct {
	RecommendedModel string
	EstimatedCost    float64
	EstimatedTime    time.Duration
	QualityScore     float64
	Confidence       float64
	Reasoning        string
}

// CostOptimizer ranks candidate models for a subtask under an execution
// mode's cost/quality regime, and tracks a per-model rolling performance
// history that feeds subsequent selections.
type CostOptimizer struct {
	history PerformanceStore
}

// NewCostOptimizer builds an optimizer against the given PerformanceStore.
// Passing nil defaults to an in-memory, process-local store.
func NewCostOptimizer(history PerformanceStore) *CostOptimizer {
	if history == nil {
		history = NewInMemoryPerformanceStore()
	}
	return &CostOptimizer{history: history}
}

// estimatedTokens is a length-based proxy for prompt size, used only to
// make cost/time estimates scale with input length (spec §8: "monotonic
// cost vs length").
func estimatedTokens(subtask model.Subtask) float64 {
	return float64(len(subtask.Content)) * 0.3
}

func (o *CostOptimizer) qualityScore(caps model.ModelCapabilities) float64 {
	score := caps.Reliability
	if sample, ok := o.history.Get(caps.ModelID); ok && sample.Count > 0 {
		score = (score + sample.AvgConfidence) / 2
	}
	return score
}

// OptimizeModelSelection implements CostOptimizer.optimize_model_selection.
// candidates must be non-empty; callers filter by task_type beforehand via
// the Registry.
func (o *CostOptimizer) OptimizeModelSelection(subtask model.Subtask, mode model.ExecutionMode, candidates []model.ModelCapabilities) (Selection, bool) {
	if len(candidates) == 0 {
		return Selection{}, false
	}

	mult := multipliersFor(mode)
	tokens := estimatedTokens(subtask)

	type scored struct {
		caps          model.ModelCapabilities
		estimatedCost float64
		estimatedTime time.Duration
		quality       float64
	}

	var pool []scored
	for _, caps := range candidates {
		quality := o.qualityScore(caps)
		estimatedCost := caps.AvgCostPerToken * tokens * mult.costMultiplier
		estimatedTime := time.Duration(float64(caps.AvgLatency) * mult.timeMultiplier)
		pool = append(pool, scored{caps: caps, estimatedCost: estimatedCost, estimatedTime: estimatedTime, quality: quality})
	}

	filtered := make([]scored, 0, len(pool))
	for _, s := range pool {
		if s.quality >= mult.qualityThreshold {
			filtered = append(filtered, s)
		}
	}
	if len(filtered) == 0 {
		// No candidate clears the mode's quality bar; fall back to the
		// full pool rather than failing the request outright.
		filtered = pool
	}

	var best scored
	var reason string
	switch mode {
	case model.ModeFast:
		sort.SliceStable(filtered, func(i, j int) bool {
			return rankLess(filtered[i], filtered[j], func(s scored) float64 {
				return float64(s.estimatedTime)
			})
		})
		best = filtered[0]
		reason = "fastest model meeting the FAST quality floor"
	case model.ModeBestQuality:
		sort.SliceStable(filtered, func(i, j int) bool {
			return rankLess(filtered[i], filtered[j], func(s scored) float64 { return -s.quality })
		})
		best = filtered[0]
		reason = "highest quality score meeting the BEST_QUALITY floor"
	default: // BALANCED
		sort.SliceStable(filtered, func(i, j int) bool {
			value := func(s scored) float64 {
				cost := s.estimatedCost
				if cost < costEpsilon {
					cost = costEpsilon
				}
				return -s.quality / cost
			}
			return rankLess(filtered[i], filtered[j], value)
		})
		best = filtered[0]
		reason = "best quality-per-cost ratio"
	}

	return Selection{
		RecommendedModel: best.caps.ModelID,
		EstimatedCost:    best.estimatedCost,
		EstimatedTime:    best.estimatedTime,
		QualityScore:     best.quality,
		Confidence:       best.quality,
		Reasoning:        reason,
	}, true
}

// rankLess orders a before b by value, breaking ties by higher reliability
// then lexicographically smaller model_id, per the specification's
// determinism requirement.
func rankLess(a, b struct {
	caps          model.ModelCapabilities
	estimatedCost float64
	estimatedTime time.Duration
	quality       float64
}, value func(struct {
	caps          model.ModelCapabilities
	estimatedCost float64
	estimatedTime time.Duration
	quality       float64
}) float64) bool {
	va, vb := value(a), value(b)
	if va != vb {
		return va < vb
	}
	if a.caps.Reliability != b.caps.Reliability {
		return a.caps.Reliability > b.caps.Reliability
	}
	return a.caps.ModelID < b.caps.ModelID
}

// UpdatePerformanceHistory folds a successful execution's actual cost and
// confidence into the model's rolling average.
func (o *CostOptimizer) UpdatePerformanceHistory(modelID string, actualCost, actualConfidence float64) {
	o.history.Update(modelID, actualCost, actualConfidence)
}

// TradeoffRecommendation is the §4.4-supplement "analyze cost/quality
// tradeoffs across modes" result.
type TradeoffRecommendation struct {
	ByMode      map[model.ExecutionMode]Selection
	LowestCost  model.ExecutionMode
	HighestQuality model.ExecutionMode
	Fastest     model.ExecutionMode
	BestValue   model.ExecutionMode
}

// AnalyzeCostQualityTradeoffs runs OptimizeModelSelection across all three
// execution modes and summarizes which mode wins on each axis. This is the
// Go counterpart of the original system's analyze_cost_quality_tradeoffs,
// exposed for callers that want a quote without running the pipeline.
func (o *CostOptimizer) AnalyzeCostQualityTradeoffs(subtask model.Subtask, candidates []model.ModelCapabilities) (TradeoffRecommendation, bool) {
	modes := []model.ExecutionMode{model.ModeFast, model.ModeBalanced, model.ModeBestQuality}
	byMode := make(map[model.ExecutionMode]Selection, 3)
	for _, m := range modes {
		sel, ok := o.OptimizeModelSelection(subtask, m, candidates)
		if !ok {
			return TradeoffRecommendation{}, false
		}
		byMode[m] = sel
	}

	rec := TradeoffRecommendation{ByMode: byMode}
	rec.LowestCost = modes[0]
	rec.Fastest = modes[0]
	rec.HighestQuality = modes[0]
	rec.BestValue = modes[0]
	for _, m := range modes[1:] {
		if byMode[m].EstimatedCost < byMode[rec.LowestCost].EstimatedCost {
			rec.LowestCost = m
		}
		if byMode[m].EstimatedTime < byMode[rec.Fastest].EstimatedTime {
			rec.Fastest = m
		}
		if byMode[m].QualityScore >= byMode[rec.HighestQuality].QualityScore {
			rec.HighestQuality = m
		}
		valueOf := func(mm model.ExecutionMode) float64 {
			cost := byMode[mm].EstimatedCost
			if cost < costEpsilon {
				cost = costEpsilon
			}
			return byMode[mm].QualityScore / cost
		}
		if valueOf(m) > valueOf(rec.BestValue) {
			rec.BestValue = m
		}
	}
	return rec, true
}
