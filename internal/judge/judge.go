package judge

import (
	"context"

	"github.com/povarna/generative-ai-agents/audit-agent/internal/models"
)

const (
	Relevance    = "relevance"
	Faithfulness = "faithfulness"
)

// Judge scores one aspect of an exchange. Implementations never return
// errors; failures are reported through the result's reason with score "0".
type Judge interface {
	Name() string
	Evaluate(ctx context.Context, exchange models.Exchange) models.JudgeResult
}
