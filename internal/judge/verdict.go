package judge

import (
	"strings"

	"github.com/povarna/generative-ai-agents/audit-agent/internal/models"
)

const systemErrorPrefix = "System Error: "

// SplitVerdict splits a "Score|Reason" reply on its first pipe. A reply
// without a pipe is treated as a bare reason with score "0". The score is
// kept as the model wrote it.
func SplitVerdict(reply string) (models.Score, string) {
	reply = stripMarkdownCodeBlock(reply)

	score, reason, found := strings.Cut(reply, "|")
	if !found {
		return models.ZeroScore, strings.TrimSpace(reply)
	}

	return models.Score(strings.TrimSpace(score)), strings.TrimSpace(reason)
}

func systemError(err error) models.JudgeResult {
	return models.JudgeResult{
		Score:  models.ZeroScore,
		Reason: systemErrorPrefix + err.Error(),
		Err:    err,
	}
}

// stripMarkdownCodeBlock removes a surrounding ``` fence if present
func stripMarkdownCodeBlock(content string) string {
	content = strings.TrimSpace(content)

	if !strings.HasPrefix(content, "```") {
		return content
	}

	firstNewline := strings.Index(content, "\n")
	if firstNewline == -1 {
		return content
	}

	closingBackticks := strings.LastIndex(content, "```")
	if closingBackticks <= firstNewline {
		return content
	}

	return strings.TrimSpace(content[firstNewline+1 : closingBackticks])
}
