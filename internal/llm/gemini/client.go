// Package gemini invokes Google Gemini models through the GenAI SDK.
package gemini

import (
	"context"
	"fmt"

	"github.com/povarna/generative-ai-agents/audit-agent/internal/llm"
	"google.golang.org/genai"
)

const DefaultModel = "gemini-2.5-flash"

type Client struct {
	Client  *genai.Client
	ModelID string
}

func NewClient(ctx context.Context, apiKey string, modelID string) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("Gemini: %w", llm.ErrMissingAPIKey)
	}
	if modelID == "" {
		modelID = DefaultModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &Client{
		Client:  client,
		ModelID: modelID,
	}, nil
}
