// Package analysis implements the AnalysisEngine: deterministic intent,
// complexity, and task-type classification of raw user input. No external
// state or network calls — classification is pattern-based so that repeated
// calls on the same input always agree.
package analysis

import (
	"regexp"
	"strings"

	"github.com/tech-psycho95/ai-council/core"
	"github.com/tech-psycho95/ai-council/model"
)

var (
	questionPatterns = compilePatterns([]string{
		`\?\s*$`, `^(what|who|when|where|why|how|which|is|are|can|does|do)\b`,
	})
	debuggingPatterns = compilePatterns([]string{
		`\b(bug|error|exception|crash|stack ?trace|traceback|fix|broken|fail(s|ing|ed)?)\b`,
	})
	generationPatterns = compilePatterns([]string{
		`\b(write|generate|create|build|implement|draft|compose)\b`,
	})
	analysisPatterns = compilePatterns([]string{
		`\b(analyz(e|ing)|compare|evaluate|assess|review|summarize)\b`,
	})

	codePatterns = compilePatterns([]string{
		`\b(function|class|code|script|program|algorithm|api|refactor)\b`,
	})
	researchPatterns = compilePatterns([]string{
		`\b(research|investigate|find out|look up|history of|background on)\b`,
	})
	factCheckPatterns = compilePatterns([]string{
		`\b(verify|fact.?check|is it true|confirm that|accurate)\b`,
	})
)

func compilePatterns(patterns []string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(patterns))
	for i, p := range patterns {
		out[i] = regexp.MustCompile("(?i)" + p)
	}
	return out
}

func anyMatch(patterns []*regexp.Regexp, text string) bool {
	for _, p := range patterns {
		if p.MatchString(text) {
			return true
		}
	}
	return false
}

// Engine is the AnalysisEngine. It holds no mutable state; every method is
// a pure function of its input.
type Engine struct {
	logger core.Logger
}

// NewEngine builds an Engine. A nil logger defaults to NoOpLogger.
func NewEngine(logger core.Logger) *Engine {
	if logger == nil {
		logger = &core.NoOpLogger{}
	}
	return &Engine{logger: logger}
}

// AnalyzeIntent classifies text into one of the Intent categories. Errors
// only on empty input.
func (e *Engine) AnalyzeIntent(text string) (model.Intent, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return "", core.NewFrameworkError("analysis.analyze_intent", core.KindValidation, core.ErrValidation)
	}

	switch {
	case anyMatch(debuggingPatterns, trimmed):
		return model.IntentDebugging, nil
	case anyMatch(generationPatterns, trimmed):
		return model.IntentGeneration, nil
	case anyMatch(analysisPatterns, trimmed):
		return model.IntentAnalysis, nil
	case anyMatch(questionPatterns, trimmed):
		return model.IntentQuestion, nil
	default:
		return model.IntentConversation, nil
	}
}

// DetermineComplexity estimates request complexity from length and
// structural signals (sentence-ending punctuation and the conjunctions
// "and"/"then").
func (e *Engine) DetermineComplexity(text string) (model.Complexity, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return "", core.NewFrameworkError("analysis.determine_complexity", core.KindValidation, core.ErrValidation)
	}

	words := len(strings.Fields(trimmed))
	sentences := strings.Count(trimmed, ".") + strings.Count(trimmed, "?") + strings.Count(trimmed, "!")
	conjunctions := strings.Count(strings.ToLower(trimmed), " and ") + strings.Count(strings.ToLower(trimmed), " then ")

	score := words + sentences*5 + conjunctions*8

	switch {
	case score >= 60:
		return model.ComplexityHigh, nil
	case score >= 20:
		return model.ComplexityMedium, nil
	default:
		return model.ComplexitySimple, nil
	}
}

// ClassifyTaskType returns the set of TaskTypes the input content could be
// routed under. Always returns at least one entry (REASONING is the
// catch-all).
func (e *Engine) ClassifyTaskType(text string) ([]model.TaskType, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, core.NewFrameworkError("analysis.classify_task_type", core.KindValidation, core.ErrValidation)
	}

	var types []model.TaskType
	if anyMatch(debuggingPatterns, trimmed) {
		types = append(types, model.TaskDebugging)
	}
	if anyMatch(codePatterns, trimmed) || anyMatch(generationPatterns, trimmed) {
		types = append(types, model.TaskCodeGeneration)
	}
	if anyMatch(researchPatterns, trimmed) {
		types = append(types, model.TaskResearch)
	}
	if anyMatch(factCheckPatterns, trimmed) {
		types = append(types, model.TaskFactChecking)
	}
	if len(types) == 0 {
		types = append(types, model.TaskReasoning)
	}
	return types, nil
}
