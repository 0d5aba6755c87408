package anthropic

import (
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/povarna/generative-ai-agents/audit-agent/internal/llm"
)

const DefaultModel = "claude-3-5-sonnet-20241022"

type Client struct {
	Client  anthropic.Client
	ModelID string
}

// NewClient builds a client for the Anthropic Messages API. SDK retries are
// disabled, a failed judge call degrades to a zero score instead.
func NewClient(apiKey string, modelID string) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("Anthropic: %w", llm.ErrMissingAPIKey)
	}
	if modelID == "" {
		modelID = DefaultModel
	}

	return &Client{
		Client: anthropic.NewClient(
			option.WithAPIKey(apiKey),
			option.WithMaxRetries(0),
		),
		ModelID: modelID,
	}, nil
}
