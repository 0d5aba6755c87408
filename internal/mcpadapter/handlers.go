// Package mcpadapter exposes the audit pipeline as MCP tools.
package mcpadapter

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/povarna/generative-ai-agents/audit-agent/internal/models"
)

const (
	AnalyzeToolName     = "analyze_transcript"
	SingleJudgeToolName = "evaluate_single_judge"
)

// Analyzer runs the full audit on the two documents
type Analyzer interface {
	Execute(ctx context.Context, chat []byte, contextDump []byte) (models.AnalysisResult, error)
}

// SingleJudgeRunner runs one named judge
type SingleJudgeRunner interface {
	Execute(ctx context.Context, judgeName string, request models.JudgeRequest) (models.JudgeEvaluation, error)
}

// AnalyzeTranscriptInput carries the same documents the HTTP endpoint
// receives as uploads.
type AnalyzeTranscriptInput struct {
	ChatJSON    string `json:"chat_json" jsonschema:"chat transcript JSON with conversation_turns; comments and trailing commas are tolerated"`
	ContextJSON string `json:"context_json" jsonschema:"retrieval context dump JSON with data.vector_data"`
}

type EvaluateSingleJudgeInput struct {
	JudgeName string `json:"judge_name" jsonschema:"judge name: relevance or faithfulness"`
	Query     string `json:"query" jsonschema:"user query"`
	Response  string `json:"response" jsonschema:"chatbot response to evaluate"`
	Context   string `json:"context,omitempty" jsonschema:"retrieved context, required by faithfulness"`
}

// NewAnalyzeHandler returns a tool handler that uses the given analyzer.
// Pass the returned function to mcp.AddTool.
func NewAnalyzeHandler(analyzer Analyzer) func(context.Context, *mcp.CallToolRequest, AnalyzeTranscriptInput) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input AnalyzeTranscriptInput) (*mcp.CallToolResult, any, error) {
		result, err := analyzer.Execute(ctx, []byte(input.ChatJSON), []byte(input.ContextJSON))
		if err != nil {
			return nil, nil, err
		}
		return jsonResult(result)
	}
}

// NewEvaluateSingleJudgeHandler returns a tool handler for single judge evaluation.
func NewEvaluateSingleJudgeHandler(judgeExec SingleJudgeRunner) func(context.Context, *mcp.CallToolRequest, EvaluateSingleJudgeInput) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input EvaluateSingleJudgeInput) (*mcp.CallToolResult, any, error) {
		if input.Query == "" || input.Response == "" {
			return nil, nil, fmt.Errorf("query and response are required")
		}

		evaluation, err := judgeExec.Execute(ctx, input.JudgeName, models.JudgeRequest{
			Query:    input.Query,
			Response: input.Response,
			Context:  input.Context,
		})
		if err != nil {
			return nil, nil, err
		}
		return jsonResult(evaluation)
	}
}

// NewServer builds the MCP server with both tools registered.
func NewServer(analyzer Analyzer, judgeExec SingleJudgeRunner) *mcp.Server {
	server := mcp.NewServer(
		&mcp.Implementation{
			Name:    "audit-agent",
			Version: "1.0.0",
		}, nil,
	)

	mcp.AddTool(server, &mcp.Tool{
		Name:        AnalyzeToolName,
		Description: "Audit the last exchange of a chatbot transcript: token/cost/latency estimates plus relevance and faithfulness scores",
	}, NewAnalyzeHandler(analyzer))

	mcp.AddTool(server, &mcp.Tool{
		Name:        SingleJudgeToolName,
		Description: "Score a query/response pair with a single judge (relevance or faithfulness)",
	}, NewEvaluateSingleJudgeHandler(judgeExec))

	return server
}

func jsonResult(v any) (*mcp.CallToolResult, any, error) {
	body, err := json.Marshal(v)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to encode result: %w", err)
	}

	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: string(body)}},
	}, nil, nil
}
