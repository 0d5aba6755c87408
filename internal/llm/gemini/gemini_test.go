package gemini

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/povarna/generative-ai-agents/audit-agent/internal/llm"
	"google.golang.org/api/googleapi"
	"google.golang.org/genai"
)

func TestNewClient_MissingAPIKey(t *testing.T) {
	_, err := NewClient(context.Background(), "", "")
	if !errors.Is(err, llm.ErrMissingAPIKey) {
		t.Errorf("Expected ErrMissingAPIKey, got %v", err)
	}
}

func TestBuildGenerationConfig(t *testing.T) {
	config := buildGenerationConfig(llm.LLMRequest{MaxTokens: 256, Temperature: 0})

	if config.Temperature == nil || *config.Temperature != 0 {
		t.Errorf("Expected explicit temperature 0, got %v", config.Temperature)
	}
	if config.MaxOutputTokens != 256 {
		t.Errorf("Expected MaxOutputTokens=256, got %d", config.MaxOutputTokens)
	}

	config = buildGenerationConfig(llm.LLMRequest{})
	if config.MaxOutputTokens != 0 {
		t.Errorf("Expected MaxOutputTokens unset, got %d", config.MaxOutputTokens)
	}
}

func TestBuildGenerationConfig_DisablesThinking(t *testing.T) {
	config := buildGenerationConfig(llm.LLMRequest{MaxTokens: 256})

	if config.ThinkingConfig == nil || config.ThinkingConfig.ThinkingBudget == nil {
		t.Fatal("Expected a thinking budget to be set")
	}
	if *config.ThinkingConfig.ThinkingBudget != 0 {
		t.Errorf("Expected thinking budget 0, got %d", *config.ThinkingConfig.ThinkingBudget)
	}
}

func TestEmptyResponseError(t *testing.T) {
	err := emptyResponseError(string(genai.FinishReasonMaxTokens))
	if !errors.Is(err, llm.ErrEmptyResponse) {
		t.Errorf("Expected ErrEmptyResponse, got %v", err)
	}
	if !strings.Contains(err.Error(), "finish reason MAX_TOKENS") {
		t.Errorf("Expected finish reason in %q", err.Error())
	}

	if err := emptyResponseError(""); err != llm.ErrEmptyResponse {
		t.Errorf("Expected bare ErrEmptyResponse, got %v", err)
	}
}

func TestSupportsGeneration(t *testing.T) {
	tests := []struct {
		name  string
		model *genai.Model
		want  bool
	}{
		{"nil model", nil, false},
		{"generation model", &genai.Model{Name: "models/gemini-2.5-flash", SupportedActions: []string{"countTokens", "generateContent"}}, true},
		{"embedding model", &genai.Model{Name: "models/text-embedding-004", SupportedActions: []string{"embedContent"}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := supportsGeneration(tt.model); got != tt.want {
				t.Errorf("supportsGeneration() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestClassifyError(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		wantSub string
	}{
		{"context canceled", context.Canceled, "aborted"},
		{"genai api error", genai.APIError{Code: 403, Status: "PERMISSION_DENIED", Message: "API key not valid"}, "API key not valid"},
		{"googleapi error", &googleapi.Error{Code: 429, Errors: []googleapi.ErrorItem{{Message: "quota exceeded"}}}, "quota exceeded"},
		{"other error", errors.New("dial tcp: timeout"), "gemini request failed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classifyError(tt.err)
			if !strings.Contains(got.Error(), tt.wantSub) {
				t.Errorf("Expected %q in %q", tt.wantSub, got.Error())
			}
			if !errors.Is(got, tt.err) && !errors.As(got, new(genai.APIError)) {
				t.Errorf("Expected original error to be wrapped")
			}
		})
	}
}
