package gemini

import (
	"context"
	"errors"
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/povarna/generative-ai-agents/audit-agent/internal/llm"
	"google.golang.org/api/googleapi"
	"google.golang.org/genai"
)

const generateContentAction = "generateContent"

func (c *Client) InvokeModel(ctx context.Context, request llm.LLMRequest) (*llm.LLMResponse, error) {
	contents := []*genai.Content{
		genai.NewContentFromText(request.Prompt, genai.RoleUser),
	}

	resp, err := c.Client.Models.GenerateContent(ctx, c.ModelID, contents, buildGenerationConfig(request))
	if err != nil {
		return nil, classifyError(err)
	}

	var stopReason string
	if len(resp.Candidates) > 0 {
		stopReason = string(resp.Candidates[0].FinishReason)
	}

	content := resp.Text()
	if strings.TrimSpace(content) == "" {
		return nil, emptyResponseError(stopReason)
	}

	return &llm.LLMResponse{
		Content:    content,
		StopReason: stopReason,
	}, nil
}

// ListGenerativeModels returns the names of the models available to the
// configured key that support content generation.
func (c *Client) ListGenerativeModels(ctx context.Context) ([]string, error) {
	var names []string
	for model, err := range c.Client.Models.All(ctx) {
		if err != nil {
			return nil, classifyError(err)
		}
		if supportsGeneration(model) {
			names = append(names, model.Name)
		}
	}
	return names, nil
}

func supportsGeneration(model *genai.Model) bool {
	return model != nil && slices.Contains(model.SupportedActions, generateContentAction)
}

func emptyResponseError(finishReason string) error {
	if finishReason == "" {
		return llm.ErrEmptyResponse
	}
	return fmt.Errorf("%w (finish reason %s)", llm.ErrEmptyResponse, finishReason)
}

// buildGenerationConfig disables thinking: thought tokens count against
// MaxOutputTokens and would leave a short verdict budget with no text.
func buildGenerationConfig(request llm.LLMRequest) *genai.GenerateContentConfig {
	config := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(float32(request.Temperature)),
		ThinkingConfig: &genai.ThinkingConfig{
			ThinkingBudget: genai.Ptr[int32](0),
		},
	}

	if request.MaxTokens > 0 {
		if request.MaxTokens > math.MaxInt32 {
			config.MaxOutputTokens = math.MaxInt32
		} else {
			config.MaxOutputTokens = int32(request.MaxTokens)
		}
	}

	return config
}

// classifyError turns SDK errors into short, readable messages; they end up
// verbatim in judge reasons.
func classifyError(err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("gemini request aborted: %w", err)
	}

	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return fmt.Errorf("gemini API error %d (%s): %s: %w", apiErr.Code, apiErr.Status, apiErr.Message, err)
	}

	var gErr *googleapi.Error
	if errors.As(err, &gErr) {
		message := gErr.Message
		if message == "" && len(gErr.Errors) > 0 {
			message = gErr.Errors[0].Message
		}
		return fmt.Errorf("gemini API error %d: %s: %w", gErr.Code, message, err)
	}

	return fmt.Errorf("gemini request failed: %w", err)
}
