// Package decomposition implements the TaskDecomposer: expanding a Task
// into one or more typed, prioritized Subtasks.
package decomposition

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/tech-psycho95/ai-council/analysis"
	"github.com/tech-psycho95/ai-council/core"
	"github.com/tech-psycho95/ai-council/model"
)

// splitPattern breaks compound requests at coordinating conjunctions and
// sentence boundaries, the same structural signals Engine.DetermineComplexity
// uses to score complexity.
var splitPattern = regexp.MustCompile(`(?i)[.!?]\s+|\s+and then\s+|\s+then\s+`)

// Decomposer is the TaskDecomposer. It depends on an analysis.Engine to
// label each emitted subtask's task_type.
type Decomposer struct {
	classifier *analysis.Engine
	logger     core.Logger
}

// NewDecomposer builds a Decomposer. A nil logger defaults to NoOpLogger.
func NewDecomposer(classifier *analysis.Engine, logger core.Logger) *Decomposer {
	if logger == nil {
		logger = &core.NoOpLogger{}
	}
	return &Decomposer{classifier: classifier, logger: logger}
}

// Decompose expands task into subtasks. Single-clause input yields exactly
// one subtask; compound input splits on sentence/conjunction boundaries.
// Returns DecompositionError if validation fails after splitting.
func (d *Decomposer) Decompose(task model.Task) ([]model.Subtask, error) {
	clauses := splitClauses(task.Content)
	if len(clauses) == 0 {
		return nil, core.NewFrameworkError("decomposition.decompose", core.KindDecomposition, core.ErrDecomposition)
	}

	subtasks := make([]model.Subtask, 0, len(clauses))
	for _, clause := range clauses {
		taskType := model.TaskReasoning
		if d.classifier != nil {
			if types, err := d.classifier.ClassifyTaskType(clause); err == nil && len(types) > 0 {
				taskType = types[0]
			}
		}

		subtasks = append(subtasks, model.Subtask{
			ID:                  uuid.NewString(),
			ParentTaskID:        task.ID,
			Content:             clause,
			TaskType:            taskType,
			Priority:            priorityFor(len(subtasks), len(clauses)),
			AccuracyRequirement: accuracyFor(task.Complexity),
		})
	}

	if err := d.ValidateDecomposition(subtasks); err != nil {
		return nil, err
	}
	return subtasks, nil
}

// ValidateDecomposition implements validate_decomposition: non-empty, every
// subtask has non-empty content and a task_type set.
func (d *Decomposer) ValidateDecomposition(subtasks []model.Subtask) error {
	if len(subtasks) == 0 {
		return core.NewFrameworkError("decomposition.validate_decomposition", core.KindDecomposition, core.ErrDecomposition)
	}
	for _, st := range subtasks {
		if strings.TrimSpace(st.Content) == "" {
			return core.NewFrameworkErrorf("decomposition.validate_decomposition", core.KindDecomposition, st.ID,
				fmt.Errorf("%w: subtask %s has empty content", core.ErrDecomposition, st.ID))
		}
		if st.TaskType == "" {
			return core.NewFrameworkErrorf("decomposition.validate_decomposition", core.KindDecomposition, st.ID,
				fmt.Errorf("%w: subtask %s missing task_type", core.ErrDecomposition, st.ID))
		}
	}
	return nil
}

func splitClauses(content string) []string {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return nil
	}
	pieces := splitPattern.Split(trimmed, -1)
	var out []string
	for _, p := range pieces {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		out = []string{trimmed}
	}
	return out
}

// priorityFor gives the first clause of a multi-clause decomposition HIGH
// priority (it usually carries the primary ask), and MEDIUM to the rest;
// single-clause tasks are always MEDIUM.
func priorityFor(index, totalClauses int) model.Priority {
	if totalClauses > 1 && index == 0 {
		return model.PriorityHigh
	}
	return model.PriorityMedium
}

// accuracyFor maps a task's overall complexity to a per-subtask accuracy
// floor: harder requests demand higher-fidelity answers.
func accuracyFor(c model.Complexity) float64 {
	switch c {
	case model.ComplexityHigh:
		return 0.9
	case model.ComplexityMedium:
		return 0.75
	default:
		return 0.6
	}
}

// FallbackSubtask builds the single REASONING subtask the orchestrator
// substitutes when decomposition fails outright (spec §4.1 stage 3).
func FallbackSubtask(task model.Task) model.Subtask {
	return model.Subtask{
		ID:                  uuid.NewString(),
		ParentTaskID:        task.ID,
		Content:             task.Content,
		TaskType:            model.TaskReasoning,
		Priority:            model.PriorityMedium,
		AccuracyRequirement: accuracyFor(task.Complexity),
	}
}
