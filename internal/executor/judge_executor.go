package executor

import (
	"context"

	"github.com/povarna/generative-ai-agents/audit-agent/internal/judge"
	"github.com/povarna/generative-ai-agents/audit-agent/internal/models"
	"github.com/rs/zerolog"
)

var ErrJudgeNotFound = judge.ErrJudgeNotFound

// JudgeObserver receives single-judge scores
type JudgeObserver interface {
	ObserveJudge(judge string, score models.Score)
}

// JudgeExecutor runs one named judge on a caller-supplied exchange.
type JudgeExecutor struct {
	judges   JudgeFactory
	observer JudgeObserver
	logger   *zerolog.Logger
}

func NewJudgeExecutor(judges JudgeFactory, observer JudgeObserver, logger *zerolog.Logger) *JudgeExecutor {
	return &JudgeExecutor{
		judges:   judges,
		observer: observer,
		logger:   logger,
	}
}

func (e *JudgeExecutor) Execute(ctx context.Context, judgeName string, request models.JudgeRequest) (models.JudgeEvaluation, error) {
	j, err := e.judges.Get(judgeName)
	if err != nil {
		e.logger.Error().Err(err).Str("judgeName", judgeName).Msg("Judge not found")
		return models.JudgeEvaluation{}, err
	}

	result := j.Evaluate(ctx, models.Exchange{
		Query:    request.Query,
		Response: request.Response,
		Context:  request.Context,
	})

	if e.observer != nil {
		e.observer.ObserveJudge(judgeName, result.Score)
	}

	e.logger.Info().
		Str("judgeName", judgeName).
		Str("score", string(result.Score)).
		Dur("duration", result.Duration).
		Msg("single judge evaluation complete")

	return models.JudgeEvaluation{
		Judge:  judgeName,
		Result: result,
	}, nil
}
