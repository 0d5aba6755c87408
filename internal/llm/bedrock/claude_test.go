package bedrock

import (
	"errors"
	"testing"

	"github.com/povarna/generative-ai-agents/audit-agent/internal/llm"
)

func TestDecodeResponse(t *testing.T) {
	body := []byte(`{"content":[{"type":"text","text":"85|"},{"type":"text","text":"Answered."}],"stop_reason":"end_turn"}`)

	resp, err := decodeResponse(body)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Content != "85|Answered." {
		t.Errorf("Expected joined text blocks, got %q", resp.Content)
	}
	if resp.StopReason != "end_turn" {
		t.Errorf("Expected stop reason end_turn, got %q", resp.StopReason)
	}
}

func TestDecodeResponse_Empty(t *testing.T) {
	_, err := decodeResponse([]byte(`{"content":[],"stop_reason":"max_tokens"}`))
	if !errors.Is(err, llm.ErrEmptyResponse) {
		t.Errorf("Expected ErrEmptyResponse, got %v", err)
	}
}

func TestDecodeResponse_Malformed(t *testing.T) {
	if _, err := decodeResponse([]byte(`not json`)); err == nil {
		t.Error("Expected error for malformed body")
	}
}
