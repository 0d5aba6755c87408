// Package aggregator turns per-stage outcomes of an analysis into either a
// result or a fatal error, following a fixed stage policy.
package aggregator

import (
	"errors"
	"fmt"

	"github.com/povarna/generative-ai-agents/audit-agent/internal/models"
	"github.com/rs/zerolog"
)

type Stage string

const (
	StageParseChat    Stage = "parse_chat"
	StageParseContext Stage = "parse_context"
	StageExtract      Stage = "extract"
	StageChecks       Stage = "checks"
	StageMetrics      Stage = "metrics"
	StageRelevance    Stage = "relevance"
	StageFaithfulness Stage = "faithfulness"
)

type Policy int

const (
	Fatal Policy = iota
	Absorbed
)

func (p Policy) String() string {
	if p == Absorbed {
		return "absorbed"
	}
	return "fatal"
}

// DefaultPolicy only lets input parsing abort an analysis. Stages missing
// from a policy are fatal.
var DefaultPolicy = map[Stage]Policy{
	StageParseChat:    Fatal,
	StageParseContext: Fatal,
	StageExtract:      Absorbed,
	StageChecks:       Absorbed,
	StageMetrics:      Absorbed,
	StageRelevance:    Absorbed,
	StageFaithfulness: Absorbed,
}

type StageOutcome struct {
	Stage Stage
	Err   error
}

// StageError is returned for a failed fatal stage. Its message is the
// underlying error's message.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return e.Err.Error()
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// Report collects what the stages of one analysis produced.
type Report struct {
	Exchange models.Exchange
	Metrics  models.Metrics
	Scores   models.Scores
	Checks   []models.CheckResult
	Outcomes []StageOutcome
}

func (r *Report) Record(stage Stage, err error) {
	r.Outcomes = append(r.Outcomes, StageOutcome{Stage: stage, Err: err})
}

type Aggregator struct {
	policy map[Stage]Policy
	logger *zerolog.Logger
}

func NewAggregator(policy map[Stage]Policy, logger *zerolog.Logger) *Aggregator {
	if policy == nil {
		policy = DefaultPolicy
	}
	return &Aggregator{
		policy: policy,
		logger: logger,
	}
}

func (a *Aggregator) PolicyFor(stage Stage) Policy {
	if p, ok := a.policy[stage]; ok {
		return p
	}
	return Fatal
}

// Halts reports whether a failed outcome must stop the analysis.
func (a *Aggregator) Halts(outcome StageOutcome) bool {
	return outcome.Err != nil && a.PolicyFor(outcome.Stage) == Fatal
}

// Aggregate returns the first fatal failure as a *StageError, or assembles
// the result with absorbed failures replaced by their degraded values.
func (a *Aggregator) Aggregate(report Report) (models.AnalysisResult, error) {
	for _, outcome := range report.Outcomes {
		if outcome.Err == nil {
			continue
		}

		if a.Halts(outcome) {
			a.logger.Error().
				Err(outcome.Err).
				Str("stage", string(outcome.Stage)).
				Msg("fatal stage failure")
			return models.AnalysisResult{}, &StageError{Stage: outcome.Stage, Err: outcome.Err}
		}

		a.logger.Warn().
			Err(outcome.Err).
			Str("stage", string(outcome.Stage)).
			Msg("stage failure absorbed")
		degrade(&report, outcome)
	}

	return models.AnalysisResult{
		Status:   models.StatusSuccess,
		Query:    report.Exchange.Query,
		Response: report.Exchange.Response,
		Metrics:  report.Metrics,
		Scores:   report.Scores,
		Checks:   report.Checks,
	}, nil
}

func degrade(report *Report, outcome StageOutcome) {
	switch outcome.Stage {
	case StageExtract:
		report.Exchange.Query = models.UnknownMessage
		report.Exchange.Response = models.UnknownMessage
	case StageChecks:
		report.Checks = nil
	case StageMetrics:
		report.Metrics = models.Metrics{}
	case StageRelevance:
		report.Scores.Relevance = absorbedJudge(report.Scores.Relevance, outcome.Err)
	case StageFaithfulness:
		report.Scores.Faithfulness = absorbedJudge(report.Scores.Faithfulness, outcome.Err)
	}
}

// absorbedJudge keeps a judge result that already carries its own failure
// reason and fills one in otherwise.
func absorbedJudge(result models.JudgeResult, err error) models.JudgeResult {
	if result.Reason != "" {
		result.Score = models.ZeroScore
		return result
	}
	return models.JudgeResult{
		Score:  models.ZeroScore,
		Reason: fmt.Sprintf("System Error: %v", err),
	}
}

// IsStageError reports whether err came from a fatal stage and which one.
func IsStageError(err error) (Stage, bool) {
	var stageErr *StageError
	if errors.As(err, &stageErr) {
		return stageErr.Stage, true
	}
	return "", false
}
