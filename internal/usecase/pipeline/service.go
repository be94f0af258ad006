package pipeline

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	aai "github.com/AssemblyAI/assemblyai-go-sdk"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	apperrors "github.com/a-shrinked-org/plato-unchained/errors"
	"github.com/a-shrinked-org/plato-unchained/internal/domain/entities"
	domainrepo "github.com/a-shrinked-org/plato-unchained/internal/domain/repositories"
	"github.com/a-shrinked-org/plato-unchained/internal/infrastructure/cache"
	"github.com/a-shrinked-org/plato-unchained/internal/infrastructure/storage"
	"github.com/a-shrinked-org/plato-unchained/internal/usecase/ingest"
	"github.com/a-shrinked-org/plato-unchained/internal/usecase/tokens"
	"github.com/a-shrinked-org/plato-unchained/pkg/ai"
	"github.com/a-shrinked-org/plato-unchained/pkg/config"
)

// artifactURLTTL bounds how long a presigned artifact link stays usable.
const artifactURLTTL = time.Hour

// SummarizeInput is the external input contract: raw text plus its
// originating identifier and optional hints. Audio is pre-excluded; any
// audio source must already have been transcribed by the ASR collaborator.
type SummarizeInput struct {
	Source            string
	Text              string
	FormatHint        string
	ModelID           string
	Fields            []ai.Field
	ChunkSizeOverride int
}

// ASRInput submits a completed ASR transcript instead of raw text.
type ASRInput struct {
	Source            string
	Transcript        *aai.Transcript
	ModelID           string
	Fields            []ai.Field
	ChunkSizeOverride int
}

// Service runs the summarization pipeline end to end.
type Service interface {
	Summarize(ctx context.Context, in SummarizeInput) (*entities.Document, error)
	SummarizeASR(ctx context.Context, in ASRInput) (*entities.Document, error)
	GetDocument(ctx context.Context, id uuid.UUID) (*entities.Document, error)
	GetDocumentArtifactURL(ctx context.Context, id uuid.UUID) (string, error)
	GetRun(ctx context.Context, id uuid.UUID) (*entities.PipelineRun, error)
}

type pipelineService struct {
	runRepo   domainrepo.RunRepository
	docRepo   domainrepo.DocumentRepository
	processor *Processor
	estimator *tokens.Estimator
	store     cache.Store
	artifacts *storage.MinIOClient
	cfg       *config.Config
	logger    *zap.Logger
}

// NewService constructs the pipeline service. store and artifacts may be
// nil; caching and artifact upload are then skipped.
func NewService(
	runRepo domainrepo.RunRepository,
	docRepo domainrepo.DocumentRepository,
	processor *Processor,
	estimator *tokens.Estimator,
	store cache.Store,
	artifacts *storage.MinIOClient,
	cfg *config.Config,
	logger *zap.Logger,
) Service {
	return &pipelineService{
		runRepo:   runRepo,
		docRepo:   docRepo,
		processor: processor,
		estimator: estimator,
		store:     store,
		artifacts: artifacts,
		cfg:       cfg,
		logger:    logger,
	}
}

// Summarize normalizes raw transcript text, plans token-safe chunks,
// processes them with failure isolation and merges the fragments into one
// document. Structural preconditions (unknown model, empty transcript)
// fail before any model call; everything scoped to a single line or chunk
// is recovered into the document's warning list instead.
func (s *pipelineService) Summarize(ctx context.Context, in SummarizeInput) (*entities.Document, error) {
	modelID, fields, limits, err := s.resolveRequest(in.ModelID, in.Fields)
	if err != nil {
		return nil, err
	}

	cacheKey := s.cacheKey(in.Source, modelID, fields, in.FormatHint, in.ChunkSizeOverride, in.Text)
	if doc, ok := s.cachedDocument(ctx, cacheKey); ok {
		s.logger.Info("document served from cache",
			zap.String("source", in.Source),
			zap.String("model", modelID),
		)
		return doc, nil
	}

	transcript, err := ingest.Normalize(in.Source, in.Text, ingest.Format(in.FormatHint))
	if err != nil {
		return nil, err
	}

	return s.summarizeTranscript(ctx, transcript, modelID, fields, limits, in.ChunkSizeOverride, cacheKey)
}

// SummarizeASR runs the pipeline over an already-transcribed recording.
// Utterances become the event sequence; everything downstream of parsing
// is shared with the text path.
func (s *pipelineService) SummarizeASR(ctx context.Context, in ASRInput) (*entities.Document, error) {
	modelID, fields, limits, err := s.resolveRequest(in.ModelID, in.Fields)
	if err != nil {
		return nil, err
	}

	transcript, err := ingest.FromASR(in.Source, in.Transcript)
	if err != nil {
		return nil, err
	}

	// ASR input has no raw text; the rendered event sequence stands in for
	// it in the cache key.
	cacheKey := s.cacheKey(in.Source, modelID, fields, ingest.FormatASR, in.ChunkSizeOverride, tokens.RenderEvents(transcript.Events))
	if doc, ok := s.cachedDocument(ctx, cacheKey); ok {
		s.logger.Info("document served from cache",
			zap.String("source", in.Source),
			zap.String("model", modelID),
		)
		return doc, nil
	}

	return s.summarizeTranscript(ctx, transcript, modelID, fields, limits, in.ChunkSizeOverride, cacheKey)
}

// resolveRequest applies defaults and validates the model and field
// selection before any transcript work happens.
func (s *pipelineService) resolveRequest(modelID string, fields []ai.Field) (string, []ai.Field, tokens.ModelLimits, error) {
	if modelID == "" {
		modelID = s.cfg.Pipeline.DefaultModel
	}

	limits, err := s.estimator.LimitsFor(modelID)
	if err != nil {
		return "", nil, tokens.ModelLimits{}, err
	}

	if len(fields) == 0 {
		fields = ai.DefaultFields()
	}
	for _, f := range fields {
		if !f.IsValid() {
			return "", nil, tokens.ModelLimits{}, fmt.Errorf("%w: unknown field %q", entities.ErrInvalidRequest, f)
		}
	}

	return modelID, fields, limits, nil
}

func (s *pipelineService) summarizeTranscript(
	ctx context.Context,
	transcript *entities.Transcript,
	modelID string,
	fields []ai.Field,
	limits tokens.ModelLimits,
	chunkSizeOverride int,
	cacheKey string,
) (*entities.Document, error) {
	run := entities.NewPipelineRun(transcript.Source, modelID)
	run.Format = transcript.Format
	run.EventCount = len(transcript.Events)
	if err := s.runRepo.CreateRun(ctx, run); err != nil {
		return nil, apperrors.ErrDBQueryFailed(fmt.Errorf("failed to create pipeline run: %w", err))
	}

	_, estimated := s.estimator.ValidateInputSize(tokens.RenderEvents(transcript.Events), limits)
	run.InputTokens = estimated

	chunks, planWarnings := Plan(transcript.Events, s.estimator, limits, chunkSizeOverride)
	run.ChunkCount = len(chunks)
	run.Status = entities.RunStatusProcessing
	if err := s.runRepo.UpdateRun(ctx, run); err != nil {
		s.logger.Warn("failed to update run status", zap.String("run_id", run.ID.String()), zap.Error(err))
	}

	s.logger.Info("processing transcript",
		zap.String("run_id", run.ID.String()),
		zap.String("source", transcript.Source),
		zap.String("format", transcript.Format),
		zap.Int("events", len(transcript.Events)),
		zap.Int("estimated_tokens", estimated),
		zap.Int("chunks", len(chunks)),
	)

	results := s.processor.Process(ctx, run.ID, modelID, chunks, fields, limits)

	merged, chunkWarnings, mergeErr := Merge(results)

	failed := 0
	for _, res := range results {
		if !res.Succeeded {
			failed++
		}
	}

	if mergeErr != nil {
		run.MarkTerminal(failed, mergeErr)
		if err := s.runRepo.UpdateRun(ctx, run); err != nil {
			s.logger.Warn("failed to record run failure", zap.String("run_id", run.ID.String()), zap.Error(err))
		}
		return nil, fmt.Errorf("run %s: %w", run.ID, mergeErr)
	}

	doc := s.buildDocument(run, transcript, merged, planWarnings, chunkWarnings, modelID)

	run.MarkTerminal(failed, nil)
	if err := s.runRepo.UpdateRun(ctx, run); err != nil {
		s.logger.Warn("failed to finalize run", zap.String("run_id", run.ID.String()), zap.Error(err))
	}
	if err := s.docRepo.CreateDocument(ctx, doc); err != nil {
		return nil, apperrors.ErrDBQueryFailed(fmt.Errorf("failed to store document: %w", err))
	}

	s.uploadArtifact(ctx, doc)
	s.cacheDocument(ctx, cacheKey, doc)

	return doc, nil
}

// buildDocument assembles the final artifact from the merge output plus
// every warning accumulated along the way.
func (s *pipelineService) buildDocument(
	run *entities.PipelineRun,
	transcript *entities.Transcript,
	merged *entities.DocumentFragment,
	planWarnings, chunkWarnings []entities.Warning,
	modelID string,
) *entities.Document {
	doc := entities.NewDocument(run.ID, transcript.Source)
	doc.ModelUsed = modelID
	doc.Title = merged.Title
	doc.Summary = merged.Summary
	doc.Chapters = merged.Chapters
	doc.Passages = merged.Passages

	// Markdown inputs carry chapter boundaries of their own; use them when
	// the model produced none.
	if len(doc.Chapters) == 0 && len(transcript.Chapters) > 0 {
		for _, mark := range transcript.Chapters {
			startMS := int64(0)
			if mark.EventIndex < len(transcript.Events) {
				startMS = transcript.Events[mark.EventIndex].StartMS
			}
			doc.Chapters = append(doc.Chapters, entities.Chapter{StartMS: startMS, Title: mark.Title})
		}
	}

	doc.Warnings = append(doc.Warnings, transcript.Warnings...)
	doc.Warnings = append(doc.Warnings, planWarnings...)
	doc.Warnings = append(doc.Warnings, chunkWarnings...)

	doc.RawData = datatypes.NewJSONType(map[string]interface{}{
		"event_count":  run.EventCount,
		"chunk_count":  run.ChunkCount,
		"input_tokens": run.InputTokens,
		"format":       run.Format,
	})

	return doc
}

// GetDocument fetches a stored document by id.
func (s *pipelineService) GetDocument(ctx context.Context, id uuid.UUID) (*entities.Document, error) {
	doc, err := s.docRepo.GetDocumentByID(ctx, id)
	if err != nil {
		return nil, apperrors.ErrDBQueryFailed(err)
	}
	if doc == nil {
		return nil, entities.ErrDocNotFound
	}
	return doc, nil
}

// GetDocumentArtifactURL returns a presigned link to the document JSON in
// object storage.
func (s *pipelineService) GetDocumentArtifactURL(ctx context.Context, id uuid.UUID) (string, error) {
	if s.artifacts == nil {
		return "", apperrors.ErrNotFound("document artifact")
	}

	doc, err := s.docRepo.GetDocumentByID(ctx, id)
	if err != nil {
		return "", apperrors.ErrDBQueryFailed(err)
	}
	if doc == nil {
		return "", entities.ErrDocNotFound
	}

	objectName := fmt.Sprintf("documents/%s.json", doc.ID)
	return s.artifacts.GetDocumentURL(ctx, objectName, artifactURLTTL)
}

// GetRun fetches a pipeline run by id.
func (s *pipelineService) GetRun(ctx context.Context, id uuid.UUID) (*entities.PipelineRun, error) {
	run, err := s.runRepo.GetRunByID(ctx, id)
	if err != nil {
		return nil, apperrors.ErrDBQueryFailed(err)
	}
	if run == nil {
		return nil, entities.ErrRunNotFound
	}
	return run, nil
}

// cacheKey hashes every input that changes the pipeline's output: the
// format hint selects the parser and the chunk-size override reshapes the
// plan, so both are part of the key alongside source, model, fields and
// the text itself.
func (s *pipelineService) cacheKey(source, modelID string, fields []ai.Field, formatHint string, chunkSizeOverride int, text string) string {
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = string(f)
	}
	h := sha256.New()
	fmt.Fprintf(h, "%s|%s|%s|%s|%d|", source, modelID, strings.Join(names, ","), formatHint, chunkSizeOverride)
	h.Write([]byte(text))
	return "doc:" + hex.EncodeToString(h.Sum(nil))
}

func (s *pipelineService) cachedDocument(ctx context.Context, key string) (*entities.Document, bool) {
	if s.store == nil {
		return nil, false
	}
	raw, ok := s.store.Get(ctx, key)
	if !ok {
		return nil, false
	}
	var doc entities.Document
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		s.logger.Warn("dropping undecodable cached document", zap.Error(err))
		s.store.Delete(ctx, key)
		return nil, false
	}
	return &doc, true
}

func (s *pipelineService) cacheDocument(ctx context.Context, key string, doc *entities.Document) {
	if s.store == nil {
		return
	}
	raw, err := json.Marshal(doc)
	if err != nil {
		s.logger.Warn("failed to marshal document for cache", zap.Error(err))
		return
	}
	s.store.Set(ctx, key, string(raw), s.cfg.Pipeline.CacheTTL)
}

func (s *pipelineService) uploadArtifact(ctx context.Context, doc *entities.Document) {
	if s.artifacts == nil {
		return
	}
	raw, err := json.Marshal(doc)
	if err != nil {
		s.logger.Warn("failed to marshal document artifact", zap.Error(err))
		return
	}
	objectName := fmt.Sprintf("documents/%s.json", doc.ID)
	if err := s.artifacts.UploadDocument(ctx, objectName, raw); err != nil {
		s.logger.Warn("failed to upload document artifact",
			zap.String("object", objectName),
			zap.Error(err),
		)
	}
}
