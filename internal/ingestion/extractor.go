package ingestion

import (
	"fmt"
	"strings"

	"github.com/povarna/generative-ai-agents/audit-agent/internal/lenientjson"
	"github.com/povarna/generative-ai-agents/audit-agent/internal/models"
)

// Extractor pulls the audited exchange out of a transcript and a context dump.
type Extractor struct {
	// RequireUserPredecessor only accepts the turn before the last AI turn as
	// the query when its role is "User". Off by default: the turn directly
	// before the AI turn is used whatever its role.
	RequireUserPredecessor bool
}

func NewExtractor() *Extractor {
	return &Extractor{}
}

// Decode parses both uploads through the lenient parser into typed documents.
// Missing fields decode to their zero values.
func Decode(chat []byte, context []byte) (models.ChatTranscript, models.ContextDump, error) {
	transcript, err := DecodeTranscript(chat)
	if err != nil {
		return transcript, models.ContextDump{}, err
	}

	dump, err := DecodeContext(context)
	return transcript, dump, err
}

func DecodeTranscript(chat []byte) (models.ChatTranscript, error) {
	var transcript models.ChatTranscript
	if err := lenientjson.Unmarshal(chat, &transcript); err != nil {
		return transcript, fmt.Errorf("chat_file: %w", err)
	}
	return transcript, nil
}

func DecodeContext(context []byte) (models.ContextDump, error) {
	var dump models.ContextDump
	if err := lenientjson.Unmarshal(context, &dump); err != nil {
		return dump, fmt.Errorf("context_file: %w", err)
	}
	return dump, nil
}

func (e *Extractor) Extract(transcript models.ChatTranscript, dump models.ContextDump) models.Exchange {
	query, response := e.ExtractExchange(transcript.ConversationTurns)
	return models.Exchange{
		Query:    query,
		Response: response,
		Context:  BuildContext(dump.Data.VectorData),
	}
}

// ExtractExchange scans backwards, stopping before index 0, for the last
// "AI/Chatbot" turn and returns the message of the turn right before it as the
// query. Non-alternating transcripts still yield that predecessor, which is not
// necessarily a user turn.
func (e *Extractor) ExtractExchange(turns []models.Turn) (query string, response string) {
	query, response = models.UnknownMessage, models.UnknownMessage

	for i := len(turns) - 1; i > 0; i-- {
		if turns[i].Role != models.RoleAI {
			continue
		}

		response = turns[i].Message
		prev := turns[i-1]
		if !e.RequireUserPredecessor || prev.Role == models.RoleUser {
			query = prev.Message
		}
		break
	}

	return query, response
}

// BuildContext renders every context item as "[Source n]: text", n starting
// at 1, separated by a blank line.
func BuildContext(items []models.ContextItem) string {
	blocks := make([]string, 0, len(items))
	for i, item := range items {
		blocks = append(blocks, fmt.Sprintf("[Source %d]: %s", i+1, strings.TrimSpace(item.Text)))
	}
	return strings.Join(blocks, "\n\n")
}
