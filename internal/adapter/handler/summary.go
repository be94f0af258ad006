package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/a-shrinked-org/plato-unchained/internal/adapter/dto/common"
	"github.com/a-shrinked-org/plato-unchained/internal/adapter/dto/summarize"
	"github.com/a-shrinked-org/plato-unchained/internal/adapter/presenter"
	"github.com/a-shrinked-org/plato-unchained/internal/usecase/pipeline"
	"github.com/a-shrinked-org/plato-unchained/pkg/ai"
)

// SummaryHandler exposes the summarization pipeline over HTTP
type SummaryHandler struct {
	service pipeline.Service
	logger  *zap.Logger
}

// NewSummaryHandler creates a new summary handler
func NewSummaryHandler(service pipeline.Service, logger *zap.Logger) *SummaryHandler {
	return &SummaryHandler{service: service, logger: logger}
}

// Create runs the pipeline synchronously for one transcript.
// POST /v1/summaries
func (h *SummaryHandler) Create(c echo.Context) error {
	var req summarize.CreateSummaryRequest
	if err := c.Bind(&req); err != nil {
		return respondBadRequest(c, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return respondBadRequest(c, err.Error())
	}

	fields := make([]ai.Field, 0, len(req.Fields))
	for _, f := range req.Fields {
		fields = append(fields, ai.Field(f))
	}

	doc, err := h.service.Summarize(c.Request().Context(), pipeline.SummarizeInput{
		Source:            req.Source,
		Text:              req.Text,
		FormatHint:        req.Format,
		ModelID:           req.Model,
		Fields:            fields,
		ChunkSizeOverride: req.ChunkSize,
	})
	if err != nil {
		h.logger.Warn("summarization failed",
			zap.String("source", req.Source),
			zap.Error(err),
		)
		return respondError(c, err, req.Source)
	}

	return c.JSON(http.StatusOK, common.Response{Data: presenter.ToDocumentResponse(doc)})
}

// CreateFromASR runs the pipeline over a completed ASR transcript.
// POST /v1/summaries/asr
func (h *SummaryHandler) CreateFromASR(c echo.Context) error {
	var req summarize.CreateASRSummaryRequest
	if err := c.Bind(&req); err != nil {
		return respondBadRequest(c, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return respondBadRequest(c, err.Error())
	}

	fields := make([]ai.Field, 0, len(req.Fields))
	for _, f := range req.Fields {
		fields = append(fields, ai.Field(f))
	}

	doc, err := h.service.SummarizeASR(c.Request().Context(), pipeline.ASRInput{
		Source:            req.Source,
		Transcript:        req.Transcript,
		ModelID:           req.Model,
		Fields:            fields,
		ChunkSizeOverride: req.ChunkSize,
	})
	if err != nil {
		h.logger.Warn("asr summarization failed",
			zap.String("source", req.Source),
			zap.Error(err),
		)
		return respondError(c, err, req.Source)
	}

	return c.JSON(http.StatusOK, common.Response{Data: presenter.ToDocumentResponse(doc)})
}

// Get fetches a stored document.
// GET /v1/summaries/:id
func (h *SummaryHandler) Get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return respondBadRequest(c, "invalid document id")
	}

	doc, err := h.service.GetDocument(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err, "")
	}

	return c.JSON(http.StatusOK, common.Response{Data: presenter.ToDocumentResponse(doc)})
}

// GetArtifact returns a presigned URL for the stored document JSON.
// GET /v1/summaries/:id/artifact
func (h *SummaryHandler) GetArtifact(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return respondBadRequest(c, "invalid document id")
	}

	url, err := h.service.GetDocumentArtifactURL(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err, "")
	}

	return c.JSON(http.StatusOK, common.Response{Data: map[string]string{"url": url}})
}

// GetRun fetches pipeline run progress.
// GET /v1/runs/:id
func (h *SummaryHandler) GetRun(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return respondBadRequest(c, "invalid run id")
	}

	run, err := h.service.GetRun(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err, "")
	}

	return c.JSON(http.StatusOK, common.Response{Data: presenter.ToRunResponse(run)})
}
