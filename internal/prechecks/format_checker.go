package prechecks

import (
	"regexp"
	"strings"
	"time"

	"github.com/povarna/generative-ai-agents/audit-agent/internal/models"
)

const FormatCheckName = "format"

type FormatChecker struct {
}

func NewFormatChecker() *FormatChecker {
	return &FormatChecker{}
}

var repeatedPunctuation = regexp.MustCompile(`[!?.]{3,}`)

// Check flags empty, single-word and repeated-punctuation responses.
func (c *FormatChecker) Check(exchange models.Exchange) models.CheckResult {
	now := time.Now()
	result := models.CheckResult{Name: FormatCheckName}

	response := strings.TrimSpace(exchange.Response)

	switch {
	case response == "":
		result.Reason = "Empty response"
	case response == models.UnknownMessage:
		result.Reason = "No AI response found in transcript"
	case len(strings.Fields(response)) < 2:
		result.Reason = "Single-word response"
	case repeatedPunctuation.MatchString(response):
		result.Score = 0.5
		result.Reason = "Response contains repeated punctuation"
	default:
		result.Score = 1.0
		result.Reason = "Well-formed response"
	}

	result.Duration = time.Since(now)
	return result
}
