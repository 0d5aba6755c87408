package prechecks

import (
	"strings"
	"testing"

	"github.com/povarna/generative-ai-agents/audit-agent/internal/models"
)

func TestLengthChecker(t *testing.T) {
	checker := NewLengthChecker()

	tests := []struct {
		name       string
		query      string
		response   string
		wantScore  float64
		wantReason string
	}{
		{"empty query", "", "anything", 0, "Empty query"},
		{"too short", "hello", "hi", 0, "much shorter"},
		{"acceptable", "hi", "hello world", 1.0, "acceptable"},
		{"too long", "Hi", strings.Repeat("word ", 10), 0.5, "times longer"},
		{"multibyte characters counted as runes", "żółw?", "żółwie", 1.0, "acceptable"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := checker.Check(models.Exchange{Query: tt.query, Response: tt.response})

			if result.Score != tt.wantScore {
				t.Errorf("Expected score %v, got %v", tt.wantScore, result.Score)
			}
			if !strings.Contains(result.Reason, tt.wantReason) {
				t.Errorf("Expected reason containing %q, got %q", tt.wantReason, result.Reason)
			}
		})
	}
}
