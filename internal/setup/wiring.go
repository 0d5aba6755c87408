package setup

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/povarna/generative-ai-agents/audit-agent/internal/aggregator"
	"github.com/povarna/generative-ai-agents/audit-agent/internal/config"
	"github.com/povarna/generative-ai-agents/audit-agent/internal/executor"
	"github.com/povarna/generative-ai-agents/audit-agent/internal/ingestion"
	"github.com/povarna/generative-ai-agents/audit-agent/internal/judge"
	"github.com/povarna/generative-ai-agents/audit-agent/internal/llm"
	"github.com/povarna/generative-ai-agents/audit-agent/internal/llm/anthropic"
	"github.com/povarna/generative-ai-agents/audit-agent/internal/llm/bedrock"
	"github.com/povarna/generative-ai-agents/audit-agent/internal/llm/gemini"
	"github.com/povarna/generative-ai-agents/audit-agent/internal/llm/gpt"
	"github.com/povarna/generative-ai-agents/audit-agent/internal/metrics"
	"github.com/povarna/generative-ai-agents/audit-agent/internal/prechecks"
	"github.com/povarna/generative-ai-agents/audit-agent/internal/telemetry"
	"github.com/rs/zerolog"
)

type Config struct {
	Provider         string `validate:"oneof=gemini bedrock openai anthropic"`
	GoogleAPIKey     string
	GeminiModelID    string
	AWSRegion        string `validate:"required_if=Provider bedrock"`
	ClaudeModelID    string `validate:"required_if=Provider bedrock"`
	OpenAIKey        string
	OpenAIModelID    string
	AnthropicKey     string
	AnthropicModelID string

	// RequestsPerSecond caps judge calls to the provider, 0 disables the limit.
	RequestsPerSecond float64 `validate:"gte=0"`
	RequestBurst      int     `validate:"gte=0"`

	InputCostPer1K    float64 `validate:"gte=0"`
	OutputCostPer1K   float64 `validate:"gte=0"`
	TokensPerSecond   float64 `validate:"gt=0"`
	TokenizerEncoding string  `validate:"required"`

	StaticDir string
	Port      string `validate:"required,numeric"`
	LogLevel  string
}

type Dependencies struct {
	Executor      *executor.Executor
	JudgeExecutor *executor.JudgeExecutor
	JudgeFactory  *judge.JudgeFactory
	Telemetry     *telemetry.Metrics
	Logger        *zerolog.Logger
}

func LoadConfig() *Config {
	return &Config{
		Provider:          getEnv("LLM_PROVIDER", llm.ProviderGemini),
		GoogleAPIKey:      getEnv("GOOGLE_API_KEY", ""),
		GeminiModelID:     getEnv("GEMINI_MODEL_ID", gemini.DefaultModel),
		AWSRegion:         getEnv("AWS_REGION", "us-east-1"),
		ClaudeModelID:     getEnv("CLAUDE_MODEL_ID", ""),
		OpenAIKey:         getEnv("OPEN_AI_KEY", ""),
		OpenAIModelID:     getEnv("OPEN_AI_MODEL_ID", ""),
		AnthropicKey:      getEnv("ANTHROPIC_API_KEY", ""),
		AnthropicModelID:  getEnv("ANTHROPIC_MODEL_ID", anthropic.DefaultModel),
		RequestsPerSecond: getEnvFloat("LLM_REQUESTS_PER_SECOND", 0),
		RequestBurst:      int(getEnvFloat("LLM_REQUEST_BURST", 1)),
		InputCostPer1K:    getEnvFloat("INPUT_COST_PER_1K", metrics.DefaultInputCostPer1K),
		OutputCostPer1K:   getEnvFloat("OUTPUT_COST_PER_1K", metrics.DefaultOutputCostPer1K),
		TokensPerSecond:   getEnvFloat("TOKENS_PER_SECOND", metrics.DefaultTokensPerSecond),
		TokenizerEncoding: getEnv("TOKENIZER_ENCODING", metrics.DefaultEncoding),
		StaticDir:         getEnv("STATIC_DIR", "static"),
		Port:              getEnv("AUDIT_AGENT_API_PORT", "8000"),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
	}
}

// Validate checks the configuration and that the selected provider has its
// API key.
func (c *Config) Validate() error {
	if err := validator.New(validator.WithRequiredStructEnabled()).Struct(c); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			fe := validationErrs[0]
			return fmt.Errorf("invalid configuration: field %s failed %q validation", fe.Field(), fe.Tag())
		}
		return fmt.Errorf("invalid configuration: %w", err)
	}

	switch c.Provider {
	case llm.ProviderGemini:
		if c.GoogleAPIKey == "" {
			return fmt.Errorf("GOOGLE_API_KEY: %w", llm.ErrMissingAPIKey)
		}
	case llm.ProviderOpenAI:
		if c.OpenAIKey == "" {
			return fmt.Errorf("OPEN_AI_KEY: %w", llm.ErrMissingAPIKey)
		}
	case llm.ProviderAnthropic:
		if c.AnthropicKey == "" {
			return fmt.Errorf("ANTHROPIC_API_KEY: %w", llm.ErrMissingAPIKey)
		}
	}

	return nil
}

func (c *Config) Rates() metrics.Rates {
	return metrics.Rates{
		InputCostPer1K:  c.InputCostPer1K,
		OutputCostPer1K: c.OutputCostPer1K,
		TokensPerSecond: c.TokensPerSecond,
	}
}

func Wire(ctx context.Context, cfg *Config, logger *zerolog.Logger) (*Dependencies, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	llmClient, err := createLLMClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s client: %w", cfg.Provider, err)
	}

	return WireWithClient(cfg, llm.WithRateLimit(llmClient, cfg.RequestsPerSecond, cfg.RequestBurst), logger)
}

// WireWithClient builds the pipeline around an already constructed LLM client.
func WireWithClient(cfg *Config, llmClient llm.LLMClient, logger *zerolog.Logger) (*Dependencies, error) {
	// Load judges configuration from YAML
	judgesConfig, err := config.LoadJudgesConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load judges config: %w", err)
	}

	judges, err := judge.NewJudgePool(llmClient, logger).BuildFromConfig(judgesConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to build judges from config: %w", err)
	}
	judgeFactory := judge.NewJudgeFactory(judges)

	stageRunner := prechecks.NewStageRunner(prechecks.DefaultCheckers())
	estimator := metrics.NewEstimator(metrics.NewTiktokenTokenizer(cfg.TokenizerEncoding), cfg.Rates(), logger)
	agg := aggregator.NewAggregator(aggregator.DefaultPolicy, logger)
	collectors := telemetry.New()

	exec := executor.NewExecutor(ingestion.NewExtractor(), stageRunner, estimator, judgeFactory, agg, collectors, logger)
	judgeExec := executor.NewJudgeExecutor(judgeFactory, collectors, logger)

	return &Dependencies{
		Executor:      exec,
		JudgeExecutor: judgeExec,
		JudgeFactory:  judgeFactory,
		Telemetry:     collectors,
		Logger:        logger,
	}, nil
}

func getEnv(key string, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		value = defaultValue
	}

	return value
}

func getEnvFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		value = defaultValue
	}

	return value
}

func createLLMClient(ctx context.Context, cfg *Config) (llm.LLMClient, error) {
	switch cfg.Provider {
	case llm.ProviderBedrock:
		return bedrock.NewClient(ctx, cfg.AWSRegion, cfg.ClaudeModelID)
	case llm.ProviderOpenAI:
		return gpt.NewClient(cfg.OpenAIKey, cfg.OpenAIModelID)
	case llm.ProviderAnthropic:
		return anthropic.NewClient(cfg.AnthropicKey, cfg.AnthropicModelID)
	default:
		return gemini.NewClient(ctx, cfg.GoogleAPIKey, cfg.GeminiModelID)
	}
}
