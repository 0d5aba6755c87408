// Package metrics estimates token usage, cost and latency of an audited
// exchange. Counts come from a general-purpose BPE encoding used as a proxy
// for the judged model's tokenizer, so every value here is an approximation.
package metrics

import (
	"fmt"
	"math"

	"github.com/povarna/generative-ai-agents/audit-agent/internal/models"
	"github.com/rs/zerolog"
)

const (
	DefaultInputCostPer1K  = 0.000075
	DefaultOutputCostPer1K = 0.00030
	DefaultTokensPerSecond = 80.0
)

type Rates struct {
	InputCostPer1K  float64
	OutputCostPer1K float64
	TokensPerSecond float64
}

func DefaultRates() Rates {
	return Rates{
		InputCostPer1K:  DefaultInputCostPer1K,
		OutputCostPer1K: DefaultOutputCostPer1K,
		TokensPerSecond: DefaultTokensPerSecond,
	}
}

type Estimator struct {
	tokenizer Tokenizer
	rates     Rates
	logger    *zerolog.Logger
}

func NewEstimator(tokenizer Tokenizer, rates Rates, logger *zerolog.Logger) *Estimator {
	if rates.TokensPerSecond <= 0 {
		rates.TokensPerSecond = DefaultTokensPerSecond
	}
	return &Estimator{
		tokenizer: tokenizer,
		rates:     rates,
		logger:    logger,
	}
}

// Estimate counts tokens of query+context (input) and response (output).
// On failure it returns zero cost and latency without token counts, together
// with the error so the caller can record it.
func (e *Estimator) Estimate(query, context, response string) (models.Metrics, error) {
	inputTokens, err := e.tokenizer.Count(query + context)
	if err != nil {
		return e.fail(fmt.Errorf("input tokens: %w", err))
	}

	outputTokens, err := e.tokenizer.Count(response)
	if err != nil {
		return e.fail(fmt.Errorf("output tokens: %w", err))
	}

	cost := float64(inputTokens)/1000*e.rates.InputCostPer1K +
		float64(outputTokens)/1000*e.rates.OutputCostPer1K
	latency := float64(outputTokens) / e.rates.TokensPerSecond
	total := inputTokens + outputTokens

	result := models.Metrics{
		InputTokens:    &inputTokens,
		OutputTokens:   &outputTokens,
		TotalTokens:    &total,
		CostUSD:        round(cost, 7),
		LatencySeconds: round(latency, 2),
	}

	e.logger.Debug().
		Int("input_tokens", inputTokens).
		Int("output_tokens", outputTokens).
		Float64("cost_usd", result.CostUSD).
		Float64("latency_seconds", result.LatencySeconds).
		Msg("metrics estimated")

	return result, nil
}

func (e *Estimator) fail(err error) (models.Metrics, error) {
	e.logger.Warn().Err(err).Msg("metrics estimation failed, returning zeroed metrics")
	return models.Metrics{CostUSD: 0, LatencySeconds: 0}, err
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
