package gpt

import (
	"errors"
	"testing"

	"github.com/povarna/generative-ai-agents/audit-agent/internal/llm"
)

func TestNewClient(t *testing.T) {
	if _, err := NewClient("", "gpt-4o-mini"); !errors.Is(err, llm.ErrMissingAPIKey) {
		t.Errorf("Expected ErrMissingAPIKey, got %v", err)
	}

	if _, err := NewClient("key", ""); err == nil {
		t.Error("Expected error for missing model ID")
	}

	client, err := NewClient("key", "gpt-4o-mini")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if client.ModelID != "gpt-4o-mini" {
		t.Errorf("Expected model gpt-4o-mini, got %s", client.ModelID)
	}
}
