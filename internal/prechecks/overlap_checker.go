package prechecks

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/povarna/generative-ai-agents/audit-agent/internal/models"
	"golang.org/x/text/cases"
)

const (
	OverlapCheckName = "overlap"

	defaultMinOverlap = 0.1
)

type OverlapChecker struct {
	MinOverlapThreshold float64
}

func NewOverlapChecker() *OverlapChecker {
	return &OverlapChecker{MinOverlapThreshold: defaultMinOverlap}
}

// Check scores the share of unique query keywords that also appear in the
// response. Stop-words and one-letter tokens are ignored.
func (c *OverlapChecker) Check(exchange models.Exchange) models.CheckResult {
	now := time.Now()
	result := models.CheckResult{Name: OverlapCheckName}

	queryKeywords := keywords(exchange.Query)
	responseKeywords := keywords(exchange.Response)

	switch {
	case len(queryKeywords) == 0:
		result.Reason = "Query has no keywords"
	case len(responseKeywords) == 0:
		result.Reason = "Response has no keywords"
	default:
		shared := 0
		for word := range queryKeywords {
			if responseKeywords[word] {
				shared++
			}
		}

		result.Score = float64(shared) / float64(len(queryKeywords))
		if result.Score < c.MinOverlapThreshold {
			result.Reason = fmt.Sprintf("Low keyword overlap: %.0f%% of query terms found in response", result.Score*100)
		} else {
			result.Reason = fmt.Sprintf("%d of %d query terms found in response", shared, len(queryKeywords))
		}
	}

	result.Duration = time.Since(now)
	return result
}

var stopWords = map[string]bool{
	"a": true, "an": true, "the": true, "is": true, "are": true,
	"was": true, "were": true, "be": true, "been": true, "being": true,
	"have": true, "has": true, "had": true, "do": true, "does": true,
	"did": true, "will": true, "would": true, "could": true, "should": true,
	"of": true, "at": true, "by": true, "for": true, "with": true,
	"about": true, "against": true, "between": true, "into": true,
	"through": true, "during": true, "before": true, "after": true,
	"to": true, "from": true, "in": true, "on": true, "and": true,
	"or": true, "what": true, "how": true, "can": true, "you": true,
	"my": true, "your": true, "it": true, "this": true, "that": true,
}

// keywords case-folds s, splits it on anything that is not a letter or digit
// and returns the remaining unique words.
func keywords(s string) map[string]bool {
	words := strings.FieldsFunc(cases.Fold().String(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	unique := make(map[string]bool, len(words))
	for _, word := range words {
		if len([]rune(word)) > 1 && !stopWords[word] {
			unique[word] = true
		}
	}
	return unique
}
