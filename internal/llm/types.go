package llm

import "errors"

const (
	ProviderGemini  = "gemini"
	ProviderBedrock = "bedrock"
	ProviderOpenAI  = "openai"

	ProviderAnthropic = "anthropic"
)

var (
	ErrMissingAPIKey = errors.New("API key is required")
	ErrEmptyResponse = errors.New("model returned an empty response")
)

type LLMRequest struct {
	Prompt      string
	MaxTokens   int
	Temperature float64
}

type LLMResponse struct {
	Content    string
	StopReason string
}
