package executor

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/povarna/generative-ai-agents/audit-agent/internal/aggregator"
	"github.com/povarna/generative-ai-agents/audit-agent/internal/ingestion"
	"github.com/povarna/generative-ai-agents/audit-agent/internal/judge"
	"github.com/povarna/generative-ai-agents/audit-agent/internal/models"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/povarna/generative-ai-agents/audit-agent/internal/executor"

// PrecheckRunner runs the heuristic checks
type PrecheckRunner interface {
	Run(exchange models.Exchange) []models.CheckResult
}

// MetricsEstimator estimates tokens, cost and latency of an exchange
type MetricsEstimator interface {
	Estimate(query, context, response string) (models.Metrics, error)
}

// JudgeFactory looks up judges by name
type JudgeFactory interface {
	Get(judgeName string) (judge.Judge, error)
}

// Aggregator applies the stage policy to the collected report
type Aggregator interface {
	Halts(outcome aggregator.StageOutcome) bool
	Aggregate(report aggregator.Report) (models.AnalysisResult, error)
}

// StageObserver receives the duration and error of every stage
type StageObserver interface {
	ObserveStage(stage string, duration time.Duration, err error)
	ObserveAnalysis(result models.AnalysisResult, err error)
}

// Executor runs one analysis: parse both uploads, extract the exchange, then
// checks, metrics and the two judges, one after another.
type Executor struct {
	extractor  *ingestion.Extractor
	prechecks  PrecheckRunner
	estimator  MetricsEstimator
	judges     JudgeFactory
	aggregator Aggregator
	observer   StageObserver
	tracer     trace.Tracer
	logger     *zerolog.Logger
}

func NewExecutor(
	extractor *ingestion.Extractor,
	prechecks PrecheckRunner,
	estimator MetricsEstimator,
	judges JudgeFactory,
	aggregator Aggregator,
	observer StageObserver,
	logger *zerolog.Logger,
) *Executor {
	if extractor == nil {
		extractor = ingestion.NewExtractor()
	}
	return &Executor{
		extractor:  extractor,
		prechecks:  prechecks,
		estimator:  estimator,
		judges:     judges,
		aggregator: aggregator,
		observer:   observer,
		tracer:     otel.Tracer(tracerName),
		logger:     logger,
	}
}

func (e *Executor) Execute(ctx context.Context, chat []byte, contextDump []byte) (models.AnalysisResult, error) {
	id := uuid.NewString()
	logger := e.logger.With().Str("requestID", id).Logger()
	logger.Info().
		Int("chat_bytes", len(chat)).
		Int("context_bytes", len(contextDump)).
		Msg("starting analysis")

	ctx, span := e.tracer.Start(ctx, "analyze", trace.WithAttributes(attribute.String("request.id", id)))
	defer span.End()

	result, err := e.execute(ctx, chat, contextDump)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		logger.Error().Err(err).Msg("analysis failed")
	} else {
		logger.Info().
			Str("relevance", string(result.Scores.Relevance.Score)).
			Str("faithfulness", string(result.Scores.Faithfulness.Score)).
			Msg("analysis complete")
	}

	if e.observer != nil {
		e.observer.ObserveAnalysis(result, err)
	}
	return result, err
}

func (e *Executor) execute(ctx context.Context, chat []byte, contextDump []byte) (models.AnalysisResult, error) {
	var report aggregator.Report
	var transcript models.ChatTranscript
	var dump models.ContextDump

	if e.runStage(ctx, &report, aggregator.StageParseChat, func(context.Context) (err error) {
		transcript, err = ingestion.DecodeTranscript(chat)
		return err
	}) {
		return e.aggregator.Aggregate(report)
	}

	if e.runStage(ctx, &report, aggregator.StageParseContext, func(context.Context) (err error) {
		dump, err = ingestion.DecodeContext(contextDump)
		return err
	}) {
		return e.aggregator.Aggregate(report)
	}

	stages := []struct {
		stage aggregator.Stage
		run   func(ctx context.Context) error
	}{
		{aggregator.StageExtract, func(context.Context) error {
			report.Exchange = e.extractor.Extract(transcript, dump)
			return nil
		}},
		{aggregator.StageChecks, func(context.Context) error {
			report.Checks = e.prechecks.Run(report.Exchange)
			return nil
		}},
		{aggregator.StageMetrics, func(context.Context) (err error) {
			ex := report.Exchange
			report.Metrics, err = e.estimator.Estimate(ex.Query, ex.Context, ex.Response)
			return err
		}},
		{aggregator.StageRelevance, func(ctx context.Context) (err error) {
			report.Scores.Relevance, err = e.evaluate(ctx, judge.Relevance, report.Exchange)
			return err
		}},
		{aggregator.StageFaithfulness, func(ctx context.Context) (err error) {
			report.Scores.Faithfulness, err = e.evaluate(ctx, judge.Faithfulness, report.Exchange)
			return err
		}},
	}

	for _, s := range stages {
		if e.runStage(ctx, &report, s.stage, s.run) {
			break
		}
	}

	return e.aggregator.Aggregate(report)
}

func (e *Executor) evaluate(ctx context.Context, name string, exchange models.Exchange) (models.JudgeResult, error) {
	j, err := e.judges.Get(name)
	if err != nil {
		return models.JudgeResult{}, err
	}
	result := j.Evaluate(ctx, exchange)
	return result, result.Err
}

// runStage runs fn, recording its outcome on the report. It returns true when
// the outcome halts the analysis.
func (e *Executor) runStage(ctx context.Context, report *aggregator.Report, stage aggregator.Stage, fn func(ctx context.Context) error) bool {
	ctx, span := e.tracer.Start(ctx, "stage."+string(stage))
	defer span.End()

	start := time.Now()
	err := safeRun(ctx, fn)
	duration := time.Since(start)

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	if e.observer != nil {
		e.observer.ObserveStage(string(stage), duration, err)
	}

	e.logger.Debug().
		Str("stage", string(stage)).
		Dur("duration", duration).
		AnErr("error", err).
		Msg("stage finished")

	report.Record(stage, err)
	return e.aggregator.Halts(report.Outcomes[len(report.Outcomes)-1])
}

func safeRun(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return fn(ctx)
}
