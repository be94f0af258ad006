package pipeline

import (
	"context"
	"sync"
	"time"

	backoff "github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/a-shrinked-org/plato-unchained/internal/domain/entities"
	"github.com/a-shrinked-org/plato-unchained/internal/usecase/tokens"
	"github.com/a-shrinked-org/plato-unchained/pkg/ai"
	"github.com/a-shrinked-org/plato-unchained/pkg/jobcontext"
)

const (
	defaultConcurrency  = 4
	defaultChunkTimeout = 3 * time.Minute
	maxChunkRetries     = 2
)

// Processor runs the model over planned chunks with bounded concurrency.
// Each chunk is independent: a failure is captured in its ChunkResult and
// never aborts siblings. Process only returns after every chunk reached a
// terminal state.
type Processor struct {
	model        ai.LanguageModel
	logger       *zap.Logger
	concurrency  int
	chunkTimeout time.Duration
}

// NewProcessor constructs a chunk processor. Zero concurrency or timeout
// select the defaults.
func NewProcessor(model ai.LanguageModel, logger *zap.Logger, concurrency int, chunkTimeout time.Duration) *Processor {
	if concurrency <= 0 {
		concurrency = defaultConcurrency
	}
	if chunkTimeout <= 0 {
		chunkTimeout = defaultChunkTimeout
	}
	return &Processor{
		model:        model,
		logger:       logger,
		concurrency:  concurrency,
		chunkTimeout: chunkTimeout,
	}
}

// Process dispatches one model call per chunk and collects results indexed
// by chunk. Workers share nothing mutable: each reads its own chunk and
// writes its own result slot, so the WaitGroup is the only synchronization
// point before the merge.
func (p *Processor) Process(ctx context.Context, runID uuid.UUID, modelID string, chunks []entities.Chunk, fields []ai.Field, limits tokens.ModelLimits) []entities.ChunkResult {
	results := make([]entities.ChunkResult, len(chunks))

	semaphore := make(chan struct{}, p.concurrency)
	var wg sync.WaitGroup

	for i := range chunks {
		wg.Add(1)
		go func(workerID int, chunk entities.Chunk) {
			defer wg.Done()

			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			results[chunk.Index] = p.processChunk(ctx, runID, modelID, chunk, fields, limits, workerID)
		}(i, chunks[i])
	}

	wg.Wait()
	return results
}

func (p *Processor) processChunk(ctx context.Context, runID uuid.UUID, modelID string, chunk entities.Chunk, fields []ai.Field, limits tokens.ModelLimits, workerID int) entities.ChunkResult {
	chunkCtx, cancel := jobcontext.ChunkBegin(ctx, runID, chunk.Index, workerID, p.chunkTimeout)
	defer cancel()

	req := ai.CompletionRequest{
		ModelID:         modelID,
		ChunkText:       tokens.RenderEvents(chunk.Events),
		Fields:          fields,
		MaxOutputTokens: limits.SafeOutputTokens,
	}

	var content string
	operation := func() error {
		var err error
		content, err = p.model.Complete(chunkCtx, req)
		return err
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewExponentialBackOff(), maxChunkRetries),
		chunkCtx,
	)

	if err := backoff.Retry(operation, policy); err != nil {
		p.logger.Warn("chunk request failed",
			zap.String("run_id", runID.String()),
			zap.Int("chunk_index", chunk.Index),
			zap.Int("worker_id", workerID),
			zap.Duration("elapsed", jobcontext.Elapsed(chunkCtx)),
			zap.Error(err),
		)
		return entities.ChunkResult{ChunkIndex: chunk.Index, Err: err}
	}

	fragment, err := ParseFragment(content, chunk)
	if err != nil {
		p.logger.Warn("chunk response unusable",
			zap.String("run_id", runID.String()),
			zap.Int("chunk_index", chunk.Index),
			zap.Error(err),
		)
		return entities.ChunkResult{ChunkIndex: chunk.Index, Err: err}
	}

	p.logger.Debug("chunk processed",
		zap.String("run_id", runID.String()),
		zap.Int("chunk_index", chunk.Index),
		zap.Int("estimated_tokens", chunk.EstimatedTokens),
		zap.Duration("elapsed", jobcontext.Elapsed(chunkCtx)),
	)

	return entities.ChunkResult{ChunkIndex: chunk.Index, Succeeded: true, Fragment: fragment}
}
