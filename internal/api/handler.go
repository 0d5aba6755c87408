package api

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/emicklei/go-restful/v3"
	"github.com/go-playground/validator/v10"
	"github.com/povarna/generative-ai-agents/audit-agent/internal/aggregator"
	"github.com/povarna/generative-ai-agents/audit-agent/internal/api/middleware"
	"github.com/povarna/generative-ai-agents/audit-agent/internal/executor"
	"github.com/povarna/generative-ai-agents/audit-agent/internal/models"
	"github.com/rs/zerolog"
)

const (
	ChatFileField    = "chat_file"
	ContextFileField = "context_file"

	MaxUploadBytes = 10 << 20

	IndexPath = "/app/index.html"
)

// Analyzer runs the full audit on two uploaded documents
type Analyzer interface {
	Execute(ctx context.Context, chat []byte, contextDump []byte) (models.AnalysisResult, error)
}

// SingleJudgeRunner runs one named judge
type SingleJudgeRunner interface {
	Execute(ctx context.Context, judgeName string, request models.JudgeRequest) (models.JudgeEvaluation, error)
}

type Handler struct {
	analyzer      Analyzer
	judgeExecutor SingleJudgeRunner
	validate      *validator.Validate
	logger        *zerolog.Logger
}

func NewHandler(analyzer Analyzer, judgeExecutor SingleJudgeRunner, logger *zerolog.Logger) *Handler {
	return &Handler{
		analyzer:      analyzer,
		judgeExecutor: judgeExecutor,
		validate:      validator.New(validator.WithRequiredStructEnabled()),
		logger:        logger,
	}
}

// POST /analyze
// Body: multipart form with chat_file and context_file
// Returns: AnalysisResult
func (h *Handler) Analyze(req *restful.Request, resp *restful.Response) {
	req.Request.Body = http.MaxBytesReader(resp.ResponseWriter, req.Request.Body, MaxUploadBytes)

	if err := req.Request.ParseMultipartForm(MaxUploadBytes); err != nil {
		h.logger.Error().Err(err).Msg("Failed to parse multipart form")
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			middleware.HandleError(resp, fmt.Errorf("upload exceeds %d bytes", MaxUploadBytes), http.StatusRequestEntityTooLarge)
			return
		}
		middleware.HandleError(resp, fmt.Errorf("invalid multipart form: %w", err), http.StatusBadRequest)
		return
	}
	defer req.Request.MultipartForm.RemoveAll()

	chat, err := readUpload(req.Request.MultipartForm, ChatFileField)
	if err != nil {
		middleware.HandleError(resp, err, http.StatusBadRequest)
		return
	}

	contextDump, err := readUpload(req.Request.MultipartForm, ContextFileField)
	if err != nil {
		middleware.HandleError(resp, err, http.StatusBadRequest)
		return
	}

	result, err := h.analyzer.Execute(req.Request.Context(), chat, contextDump)
	if err != nil {
		if stage, ok := aggregator.IsStageError(err); ok {
			h.logger.Warn().Str("stage", string(stage)).Err(err).Msg("analysis rejected")
		}
		middleware.HandleError(resp, err, http.StatusInternalServerError)
		return
	}

	resp.WriteHeaderAndEntity(http.StatusOK, result)
}

// POST /api/v1/evaluate/judge/{judge_name}
func (h *Handler) EvaluateSingleJudge(req *restful.Request, resp *restful.Response) {
	judgeName := req.PathParameter("judge_name")

	var judgeRequest models.JudgeRequest
	if err := req.ReadEntity(&judgeRequest); err != nil {
		h.logger.Error().Err(err).Msg("Failed to parse request body")
		middleware.HandleError(resp, err, http.StatusBadRequest)
		return
	}

	if err := h.validate.Struct(judgeRequest); err != nil {
		middleware.HandleError(resp, err, http.StatusBadRequest)
		return
	}

	h.logger.Info().
		Str("judge_name", judgeName).
		Msg("Start single judge evaluation")

	evaluation, err := h.judgeExecutor.Execute(req.Request.Context(), judgeName, judgeRequest)
	if err != nil {
		if errors.Is(err, executor.ErrJudgeNotFound) {
			middleware.HandleError(resp, err, http.StatusNotFound)
			return
		}
		middleware.HandleError(resp, err, http.StatusInternalServerError)
		return
	}

	resp.WriteHeaderAndEntity(http.StatusOK, evaluation)
}

// Health handler GET API /api/v1/health
func (h *Handler) Health(req *restful.Request, resp *restful.Response) {
	healthResponse := HealthResponse{
		Status:  "ok",
		Version: "1.0.0",
	}

	resp.WriteHeaderAndEntity(http.StatusOK, healthResponse)
}

// Root redirects "/" to the bundled UI and answers 404 for anything else
// no web service claimed.
func Root(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	http.Redirect(w, r, IndexPath, http.StatusTemporaryRedirect)
}

func readUpload(form *multipart.Form, field string) ([]byte, error) {
	files := form.File[field]
	if len(files) == 0 {
		return nil, fmt.Errorf("missing upload field: %s", field)
	}

	f, err := files[0].Open()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", field, err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", field, err)
	}
	return data, nil
}
