package prechecks

import (
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/povarna/generative-ai-agents/audit-agent/internal/models"
)

const LengthCheckName = "length"

const (
	minLengthRatio = 0.5
	maxLengthRatio = 10.0
)

type LengthChecker struct {
}

func NewLengthChecker() *LengthChecker {
	return &LengthChecker{}
}

// Check compares the response length to the query length in characters.
// Responses shorter than half the query score 0, responses more than ten
// times longer score 0.5.
func (c *LengthChecker) Check(exchange models.Exchange) models.CheckResult {
	now := time.Now()
	result := models.CheckResult{Name: LengthCheckName}

	queryLength := utf8.RuneCountInString(exchange.Query)
	responseLength := utf8.RuneCountInString(exchange.Response)

	if queryLength == 0 {
		result.Reason = "Empty query"
		result.Duration = time.Since(now)
		return result
	}

	ratio := float64(responseLength) / float64(queryLength)

	switch {
	case ratio < minLengthRatio:
		result.Reason = fmt.Sprintf("Response is much shorter than the query (ratio %.2f)", ratio)
	case ratio > maxLengthRatio:
		result.Score = 0.5
		result.Reason = fmt.Sprintf("Response is %.0f times longer than the query", ratio)
	default:
		result.Score = 1.0
		result.Reason = "Response length is acceptable"
	}

	result.Duration = time.Since(now)
	return result
}
