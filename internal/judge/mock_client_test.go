package judge

import (
	"context"

	"github.com/povarna/generative-ai-agents/audit-agent/internal/llm"
)

// MockLLMClient is a fake LLM client for testing
type MockLLMClient struct {
	ResponseToReturn *llm.LLMResponse
	ErrorToReturn    error
	CallCount        int
	LastRequest      llm.LLMRequest
}

func (m *MockLLMClient) InvokeModel(ctx context.Context, request llm.LLMRequest) (*llm.LLMResponse, error) {
	m.CallCount++
	m.LastRequest = request
	if m.ErrorToReturn != nil {
		return nil, m.ErrorToReturn
	}
	return m.ResponseToReturn, nil
}
