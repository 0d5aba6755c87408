package judge

import (
	"bytes"
	"context"
	"fmt"
	"text/template"
	"time"

	"github.com/povarna/generative-ai-agents/audit-agent/internal/config"
	"github.com/povarna/generative-ai-agents/audit-agent/internal/llm"
	"github.com/povarna/generative-ai-agents/audit-agent/internal/models"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/povarna/generative-ai-agents/audit-agent/internal/judge"

// LLMJudge renders its prompt template with the exchange, sends it to the LLM
// in a single call and parses the "Score|Reason" reply.
type LLMJudge struct {
	name            string
	promptTemplate  *template.Template
	modelConfig     config.ModelConfig
	requiresContext bool
	llmClient       llm.LLMClient
	tracer          trace.Tracer
	logger          *zerolog.Logger
}

func NewLLMJudge(
	judgeCfg config.JudgeConfiguration,
	llmClient llm.LLMClient,
	logger *zerolog.Logger,
) (*LLMJudge, error) {
	tmpl, err := template.New(judgeCfg.Name).Option("missingkey=error").Parse(judgeCfg.Prompt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse prompt template for judge %s: %w", judgeCfg.Name, err)
	}

	if judgeCfg.Model == nil {
		return nil, fmt.Errorf("judge %s has nil model config (should be populated by config loader)", judgeCfg.Name)
	}

	return &LLMJudge{
		name:            judgeCfg.Name,
		promptTemplate:  tmpl,
		modelConfig:     *judgeCfg.Model,
		requiresContext: judgeCfg.RequiresContext,
		llmClient:       llmClient,
		tracer:          otel.Tracer(tracerName),
		logger:          logger,
	}, nil
}

func (j *LLMJudge) Name() string {
	return j.name
}

func (j *LLMJudge) Evaluate(ctx context.Context, exchange models.Exchange) models.JudgeResult {
	now := time.Now()

	ctx, span := j.tracer.Start(ctx, "judge."+j.name, trace.WithAttributes(
		attribute.String("judge.name", j.name),
		attribute.Int("judge.max_tokens", j.modelConfig.MaxTokens),
	))
	defer span.End()

	if j.requiresContext && exchange.Context == "" {
		// still evaluated: an empty ground truth makes any claim unsupported
		j.logger.Warn().
			Str("judge", j.name).
			Msg("judge requires context but none provided")
	}

	result, err := j.evaluate(ctx, exchange)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		j.logger.Error().
			Err(err).
			Str("judge", j.name).
			Msg("judge evaluation failed")
		result = systemError(err)
	}

	result.Duration = time.Since(now)
	span.SetAttributes(attribute.String("judge.score", string(result.Score)))

	j.logger.Info().
		Str("judge", j.name).
		Str("score", string(result.Score)).
		Dur("duration", result.Duration).
		Msg("judge completed")

	return result
}

func (j *LLMJudge) evaluate(ctx context.Context, exchange models.Exchange) (models.JudgeResult, error) {
	prompt, err := j.buildPrompt(exchange)
	if err != nil {
		return models.JudgeResult{}, err
	}

	resp, err := j.llmClient.InvokeModel(ctx, llm.LLMRequest{
		Prompt:      prompt,
		MaxTokens:   j.modelConfig.MaxTokens,
		Temperature: j.modelConfig.Temperature,
	})
	if err != nil {
		return models.JudgeResult{}, err
	}
	if resp == nil {
		return models.JudgeResult{}, llm.ErrEmptyResponse
	}

	score, reason := SplitVerdict(resp.Content)
	return models.JudgeResult{Score: score, Reason: reason}, nil
}

func (j *LLMJudge) buildPrompt(exchange models.Exchange) (string, error) {
	var buf bytes.Buffer
	if err := j.promptTemplate.Execute(&buf, exchange); err != nil {
		return "", fmt.Errorf("template execution failed: %w", err)
	}
	return buf.String(), nil
}
