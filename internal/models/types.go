package models

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

const (
	RoleUser = "User"
	RoleAI   = "AI/Chatbot"

	// UnknownMessage is used for the query and response when no AI turn is found.
	UnknownMessage = "Unknown"

	StatusSuccess = "success"
)

// Uploaded chat log

type Turn struct {
	Role    string `json:"role"`
	Message string `json:"message"`
}

type ChatTranscript struct {
	ConversationTurns []Turn `json:"conversation_turns"`
}

// Uploaded retrieval dump

type ContextItem struct {
	Text string `json:"text"`
}

type ContextData struct {
	VectorData []ContextItem `json:"vector_data"`
}

type ContextDump struct {
	Data ContextData `json:"data"`
}

// Exchange is the last query/response pair of a transcript plus the
// flattened retrieval context it should be grounded in.
type Exchange struct {
	Query    string `json:"query" jsonschema:"last user query"`
	Response string `json:"response" jsonschema:"last AI response"`
	Context  string `json:"context,omitempty" jsonschema:"labelled retrieval context"`
}

// Metrics are advisory estimates. Token counts are nil when tokenization failed.
type Metrics struct {
	InputTokens    *int    `json:"input_tokens,omitempty"`
	OutputTokens   *int    `json:"output_tokens,omitempty"`
	TotalTokens    *int    `json:"total_tokens,omitempty"`
	CostUSD        float64 `json:"cost_usd"`
	LatencySeconds float64 `json:"latency_seconds"`
}

// Score is the raw score text a judge produced. It is not validated against
// the 0-100 rubric; it serialises as a JSON number whenever it parses as one.
type Score string

const ZeroScore Score = "0"

// Float returns the numeric value of the score and whether it was numeric.
func (s Score) Float() (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(string(s)), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func (s Score) MarshalJSON() ([]byte, error) {
	if v, ok := s.Float(); ok {
		return json.Marshal(v)
	}
	return json.Marshal(string(s))
}

func (s *Score) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		*s = Score(str)
		return nil
	}

	var num json.Number
	if err := json.Unmarshal(data, &num); err != nil {
		return err
	}
	*s = Score(num.String())
	return nil
}

type JudgeResult struct {
	Score    Score         `json:"score"`
	Reason   string        `json:"reason"`
	Duration time.Duration `json:"-"`
	// Err is the failure behind a "System Error" reason, if any.
	Err error `json:"-"`
}

type Scores struct {
	Relevance    JudgeResult `json:"relevance"`
	Faithfulness JudgeResult `json:"faithfulness"`
}

// One heuristic check's output
type CheckResult struct {
	Name     string        `json:"name"`
	Score    float64       `json:"score"`
	Reason   string        `json:"reason"`
	Duration time.Duration `json:"duration_ns"`
}

// Final output returned by POST /analyze
type AnalysisResult struct {
	Status   string        `json:"status"`
	Query    string        `json:"query"`
	Response string        `json:"response"`
	Metrics  Metrics       `json:"metrics"`
	Scores   Scores        `json:"scores"`
	Checks   []CheckResult `json:"checks,omitempty"`
}

// Single judge request body for POST /api/v1/evaluate/judge/{judge_name}
type JudgeRequest struct {
	Query    string `json:"query" validate:"required"`
	Response string `json:"response" validate:"required"`
	Context  string `json:"context,omitempty"`
}

type JudgeEvaluation struct {
	Judge  string      `json:"judge"`
	Result JudgeResult `json:"result"`
}
