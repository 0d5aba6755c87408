package judge

import (
	"fmt"

	"github.com/povarna/generative-ai-agents/audit-agent/internal/config"
	"github.com/povarna/generative-ai-agents/audit-agent/internal/llm"
	"github.com/rs/zerolog"
)

// JudgePool builds the enabled judges of a configuration.
type JudgePool struct {
	llmClient llm.LLMClient
	logger    *zerolog.Logger
}

func NewJudgePool(llmClient llm.LLMClient, logger *zerolog.Logger) *JudgePool {
	return &JudgePool{
		llmClient: llmClient,
		logger:    logger,
	}
}

func (p *JudgePool) BuildFromConfig(cfg *config.JudgesConfig) ([]Judge, error) {
	if cfg == nil {
		return nil, fmt.Errorf("judges config is nil")
	}

	var judges []Judge

	for _, judgeCfg := range cfg.Judges.Evaluators {
		if !judgeCfg.Enabled {
			p.logger.Info().
				Str("judge", judgeCfg.Name).
				Msg("judge disabled in config, skipping")
			continue
		}

		judge, err := NewLLMJudge(judgeCfg, p.llmClient, p.logger)
		if err != nil {
			return nil, fmt.Errorf("failed to create judge %s: %w", judgeCfg.Name, err)
		}

		judges = append(judges, judge)

		p.logger.Debug().
			Str("judge", judgeCfg.Name).
			Int("max_tokens", judgeCfg.Model.MaxTokens).
			Float64("temperature", judgeCfg.Model.Temperature).
			Bool("requires_context", judgeCfg.RequiresContext).
			Msg("judge created")
	}

	if len(judges) == 0 {
		return nil, fmt.Errorf("no enabled judges found in config")
	}

	p.logger.Info().
		Int("total_judges", len(judges)).
		Msg("judge pool built successfully")

	return judges, nil
}
