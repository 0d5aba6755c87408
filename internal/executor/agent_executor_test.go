package executor

import (
	"context"
	"errors"
	"testing"

	"github.com/povarna/generative-ai-agents/audit-agent/internal/aggregator"
	"github.com/povarna/generative-ai-agents/audit-agent/internal/executor/mocks"
	"github.com/povarna/generative-ai-agents/audit-agent/internal/judge"
	"github.com/povarna/generative-ai-agents/audit-agent/internal/models"
	"github.com/rs/zerolog"
	"go.uber.org/mock/gomock"
)

func newTestLogger() *zerolog.Logger {
	logger := zerolog.Nop()
	return &logger
}

var (
	chatFile = []byte(`{
  // exported from the support widget
  "conversation_turns": [
    {"turn": 1, "role": "User", "message": "hi"},
    {"turn": 2, "role": "AI/Chatbot", "message": "A1"},
    {"turn": 3, "role": "User", "message": "bye"},
    {"turn": 4, "role": "AI/Chatbot", "message": "A2"},
  ]
}`)
	contextFile = []byte(`{"data": {"vector_data": [{"text": " Clinic opens at 9am. "}]}}`)

	expectedExchange = models.Exchange{
		Query:    "bye",
		Response: "A2",
		Context:  "[Source 1]: Clinic opens at 9am.",
	}
)

func intPtr(v int) *int {
	return &v
}

type pipelineMocks struct {
	prechecks *mocks.MockPrecheckRunner
	estimator *mocks.MockMetricsEstimator
	factory   *mocks.MockJudgeFactory
	relevance *mocks.MockJudge
	faithful  *mocks.MockJudge
}

func newPipelineMocks(ctrl *gomock.Controller) pipelineMocks {
	return pipelineMocks{
		prechecks: mocks.NewMockPrecheckRunner(ctrl),
		estimator: mocks.NewMockMetricsEstimator(ctrl),
		factory:   mocks.NewMockJudgeFactory(ctrl),
		relevance: mocks.NewMockJudge(ctrl),
		faithful:  mocks.NewMockJudge(ctrl),
	}
}

func (m pipelineMocks) executor(observer StageObserver) *Executor {
	return NewExecutor(nil, m.prechecks, m.estimator, m.factory,
		aggregator.NewAggregator(nil, newTestLogger()), observer, newTestLogger())
}

func (m pipelineMocks) expectJudges(relevance, faithfulness models.JudgeResult) {
	m.factory.EXPECT().Get(judge.Relevance).Return(m.relevance, nil)
	m.relevance.EXPECT().Evaluate(gomock.Any(), expectedExchange).Return(relevance)
	m.factory.EXPECT().Get(judge.Faithfulness).Return(m.faithful, nil)
	m.faithful.EXPECT().Evaluate(gomock.Any(), expectedExchange).Return(faithfulness)
}

func TestExecutor_Execute_FullPipeline(t *testing.T) {
	ctrl := gomock.NewController(t)
	m := newPipelineMocks(ctrl)

	checks := []models.CheckResult{{Name: "format", Score: 1, Reason: "Well-formed response"}}
	metrics := models.Metrics{
		InputTokens:    intPtr(9),
		OutputTokens:   intPtr(1),
		TotalTokens:    intPtr(10),
		CostUSD:        0.000001,
		LatencySeconds: 0.01,
	}

	m.prechecks.EXPECT().Run(expectedExchange).Return(checks)
	m.estimator.EXPECT().Estimate("bye", expectedExchange.Context, "A2").Return(metrics, nil)
	m.expectJudges(
		models.JudgeResult{Score: "100", Reason: "Direct answer"},
		models.JudgeResult{Score: "50", Reason: "Minor additions"},
	)

	result, err := m.executor(nil).Execute(context.Background(), chatFile, contextFile)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Status != models.StatusSuccess {
		t.Errorf("expected status success, got %s", result.Status)
	}
	if result.Query != "bye" || result.Response != "A2" {
		t.Errorf("unexpected exchange %q / %q", result.Query, result.Response)
	}
	if *result.Metrics.TotalTokens != 10 {
		t.Errorf("expected 10 total tokens, got %d", *result.Metrics.TotalTokens)
	}
	if result.Scores.Relevance.Score != "100" || result.Scores.Faithfulness.Score != "50" {
		t.Errorf("unexpected scores %+v", result.Scores)
	}
	if len(result.Checks) != 1 {
		t.Errorf("expected 1 check, got %d", len(result.Checks))
	}
}

func TestExecutor_Execute_OneJudgeFailureStillSucceeds(t *testing.T) {
	ctrl := gomock.NewController(t)
	m := newPipelineMocks(ctrl)

	cause := errors.New("API key not valid")

	m.prechecks.EXPECT().Run(expectedExchange).Return(nil)
	m.estimator.EXPECT().Estimate(gomock.Any(), gomock.Any(), gomock.Any()).Return(models.Metrics{}, nil)
	m.expectJudges(
		models.JudgeResult{Score: "75", Reason: "Missing details"},
		models.JudgeResult{Score: "0", Reason: "System Error: API key not valid", Err: cause},
	)

	result, err := m.executor(nil).Execute(context.Background(), chatFile, contextFile)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Status != models.StatusSuccess {
		t.Errorf("expected status success, got %s", result.Status)
	}
	if result.Scores.Relevance.Score != "75" {
		t.Errorf("relevance should be unaffected, got %s", result.Scores.Relevance.Score)
	}
	if result.Scores.Faithfulness.Score != models.ZeroScore || result.Scores.Faithfulness.Reason != "System Error: API key not valid" {
		t.Errorf("unexpected faithfulness %+v", result.Scores.Faithfulness)
	}
}

func TestExecutor_Execute_ParseFailuresAreFatal(t *testing.T) {
	tests := []struct {
		name      string
		chat      []byte
		context   []byte
		wantStage aggregator.Stage
	}{
		{"invalid chat file", []byte(`{"conversation_turns": [`), contextFile, aggregator.StageParseChat},
		{"invalid context file", chatFile, []byte(`{"data": }`), aggregator.StageParseContext},
		{"non UTF-8 chat file", []byte{0xff, 0xfe}, contextFile, aggregator.StageParseChat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			// no downstream calls are expected
			m := newPipelineMocks(ctrl)

			_, err := m.executor(nil).Execute(context.Background(), tt.chat, tt.context)
			if err == nil {
				t.Fatal("expected error")
			}

			stage, ok := aggregator.IsStageError(err)
			if !ok || stage != tt.wantStage {
				t.Errorf("expected stage %s, got %s (%v)", tt.wantStage, stage, err)
			}
		})
	}
}

func TestExecutor_Execute_MetricsFailureIsZeroed(t *testing.T) {
	ctrl := gomock.NewController(t)
	m := newPipelineMocks(ctrl)

	m.prechecks.EXPECT().Run(expectedExchange).Return(nil)
	m.estimator.EXPECT().Estimate(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(models.Metrics{}, errors.New("encoding unavailable"))
	m.expectJudges(
		models.JudgeResult{Score: "100", Reason: "ok"},
		models.JudgeResult{Score: "100", Reason: "ok"},
	)

	result, err := m.executor(nil).Execute(context.Background(), chatFile, contextFile)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Metrics.TotalTokens != nil || result.Metrics.CostUSD != 0 || result.Metrics.LatencySeconds != 0 {
		t.Errorf("expected zeroed metrics, got %+v", result.Metrics)
	}
}

func TestExecutor_Execute_EmptyAIMessageIsNotUnknown(t *testing.T) {
	ctrl := gomock.NewController(t)
	m := newPipelineMocks(ctrl)

	chat := []byte(`{"conversation_turns": [
    {"role": "User", "message": "hi"},
    {"role": "AI/Chatbot", "message": ""}
  ]}`)
	exchange := models.Exchange{Query: "hi", Response: ""}

	m.prechecks.EXPECT().Run(exchange).Return(nil)
	m.estimator.EXPECT().Estimate("hi", "", "").Return(models.Metrics{}, nil)
	m.factory.EXPECT().Get(judge.Relevance).Return(m.relevance, nil)
	m.relevance.EXPECT().Evaluate(gomock.Any(), exchange).Return(models.JudgeResult{Score: "0", Reason: "No answer"})
	m.factory.EXPECT().Get(judge.Faithfulness).Return(m.faithful, nil)
	m.faithful.EXPECT().Evaluate(gomock.Any(), exchange).Return(models.JudgeResult{Score: "0", Reason: "No claims"})

	result, err := m.executor(nil).Execute(context.Background(), chat, []byte(`{}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Query != "hi" || result.Response != "" {
		t.Errorf("expected the audited exchange (hi, \"\"), got (%q, %q)", result.Query, result.Response)
	}
}

func TestExecutor_Execute_MissingJudgeIsAbsorbed(t *testing.T) {
	ctrl := gomock.NewController(t)
	m := newPipelineMocks(ctrl)

	m.prechecks.EXPECT().Run(expectedExchange).Return(nil)
	m.estimator.EXPECT().Estimate(gomock.Any(), gomock.Any(), gomock.Any()).Return(models.Metrics{}, nil)
	m.factory.EXPECT().Get(judge.Relevance).Return(m.relevance, nil)
	m.relevance.EXPECT().Evaluate(gomock.Any(), expectedExchange).Return(models.JudgeResult{Score: "100", Reason: "ok"})
	m.factory.EXPECT().Get(judge.Faithfulness).Return(nil, judge.ErrJudgeNotFound)

	result, err := m.executor(nil).Execute(context.Background(), chatFile, contextFile)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Scores.Faithfulness.Reason != "System Error: judge not found" {
		t.Errorf("unexpected faithfulness reason %q", result.Scores.Faithfulness.Reason)
	}
}

type panickingRunner struct{}

func (panickingRunner) Run(models.Exchange) []models.CheckResult {
	panic("checker exploded")
}

func TestExecutor_Execute_PanickingChecksAreAbsorbed(t *testing.T) {
	ctrl := gomock.NewController(t)
	m := newPipelineMocks(ctrl)

	m.estimator.EXPECT().Estimate(gomock.Any(), gomock.Any(), gomock.Any()).Return(models.Metrics{}, nil)
	m.expectJudges(
		models.JudgeResult{Score: "100", Reason: "ok"},
		models.JudgeResult{Score: "100", Reason: "ok"},
	)

	executor := NewExecutor(nil, panickingRunner{}, m.estimator, m.factory,
		aggregator.NewAggregator(nil, newTestLogger()), nil, newTestLogger())

	result, err := executor.Execute(context.Background(), chatFile, contextFile)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Checks != nil {
		t.Errorf("expected checks to be omitted, got %+v", result.Checks)
	}
}

func TestExecutor_Execute_ReportsStagesToObserver(t *testing.T) {
	ctrl := gomock.NewController(t)
	m := newPipelineMocks(ctrl)
	observer := mocks.NewMockStageObserver(ctrl)

	m.prechecks.EXPECT().Run(expectedExchange).Return(nil)
	m.estimator.EXPECT().Estimate(gomock.Any(), gomock.Any(), gomock.Any()).Return(models.Metrics{}, nil)
	m.expectJudges(
		models.JudgeResult{Score: "100", Reason: "ok"},
		models.JudgeResult{Score: "100", Reason: "ok"},
	)

	observer.EXPECT().ObserveStage(gomock.Any(), gomock.Any(), nil).Times(7)
	observer.EXPECT().ObserveAnalysis(gomock.Any(), nil).Times(1)

	if _, err := m.executor(observer).Execute(context.Background(), chatFile, contextFile); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestExecutor_Execute_HaltingPolicyStopsPipeline(t *testing.T) {
	ctrl := gomock.NewController(t)
	m := newPipelineMocks(ctrl)

	strict := aggregator.NewAggregator(map[aggregator.Stage]aggregator.Policy{
		aggregator.StageParseChat:    aggregator.Fatal,
		aggregator.StageParseContext: aggregator.Fatal,
		aggregator.StageExtract:      aggregator.Absorbed,
		aggregator.StageChecks:       aggregator.Absorbed,
		aggregator.StageMetrics:      aggregator.Fatal,
	}, newTestLogger())

	m.prechecks.EXPECT().Run(expectedExchange).Return(nil)
	m.estimator.EXPECT().Estimate(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(models.Metrics{}, errors.New("encoding unavailable"))
	// judges are never looked up

	executor := NewExecutor(nil, m.prechecks, m.estimator, m.factory, strict, nil, newTestLogger())

	_, err := executor.Execute(context.Background(), chatFile, contextFile)
	stage, ok := aggregator.IsStageError(err)
	if !ok || stage != aggregator.StageMetrics {
		t.Errorf("expected fatal metrics stage, got %v", err)
	}
}

func TestExecutor_Execute_UsesAggregator(t *testing.T) {
	ctrl := gomock.NewController(t)
	m := newPipelineMocks(ctrl)
	mockAgg := mocks.NewMockAggregator(ctrl)

	m.prechecks.EXPECT().Run(gomock.Any()).Return(nil)
	m.estimator.EXPECT().Estimate(gomock.Any(), gomock.Any(), gomock.Any()).Return(models.Metrics{}, nil)
	m.expectJudges(
		models.JudgeResult{Score: "100", Reason: "ok"},
		models.JudgeResult{Score: "100", Reason: "ok"},
	)

	mockAgg.EXPECT().Halts(gomock.Any()).Return(false).Times(7)
	mockAgg.EXPECT().Aggregate(gomock.Any()).DoAndReturn(func(report aggregator.Report) (models.AnalysisResult, error) {
		if len(report.Outcomes) != 7 {
			t.Errorf("expected 7 outcomes, got %d", len(report.Outcomes))
		}
		if report.Exchange != expectedExchange {
			t.Errorf("unexpected exchange %+v", report.Exchange)
		}
		return models.AnalysisResult{Status: models.StatusSuccess}, nil
	})

	executor := NewExecutor(nil, m.prechecks, m.estimator, m.factory, mockAgg, nil, newTestLogger())
	if _, err := executor.Execute(context.Background(), chatFile, contextFile); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
