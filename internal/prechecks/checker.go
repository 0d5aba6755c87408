// Package prechecks holds cheap heuristics computed on the extracted exchange
// without calling an LLM.
package prechecks

import (
	"github.com/povarna/generative-ai-agents/audit-agent/internal/models"
)

type Checker interface {
	Check(exchange models.Exchange) models.CheckResult
}

// StageRunner runs its checkers one after another, in order.
type StageRunner struct {
	Checkers []Checker
}

func NewStageRunner(checkers []Checker) *StageRunner {
	return &StageRunner{
		Checkers: checkers,
	}
}

// DefaultCheckers returns the format, length and overlap checkers.
func DefaultCheckers() []Checker {
	return []Checker{
		NewFormatChecker(),
		NewLengthChecker(),
		NewOverlapChecker(),
	}
}

func (r *StageRunner) Run(exchange models.Exchange) []models.CheckResult {
	results := make([]models.CheckResult, 0, len(r.Checkers))
	for _, checker := range r.Checkers {
		results = append(results, checker.Check(exchange))
	}
	return results
}
