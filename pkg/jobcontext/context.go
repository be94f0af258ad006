package jobcontext

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type KeyContext string

var (
	keyRunID      KeyContext = "run_id"
	keyChunkIndex KeyContext = "chunk_index"
	keyWorkerID   KeyContext = "worker_id"
	keyStartTime  KeyContext = "chunk_start_time"
)

// ChunkMetadata holds metadata for one chunk's model call.
type ChunkMetadata struct {
	RunID      uuid.UUID
	ChunkIndex int
	WorkerID   int
	StartTime  time.Time
}

// ChunkBegin derives a per-chunk context with metadata and its own timeout.
// Timeouts are per chunk, not per run, so one slow chunk cannot block
// siblings that already finished.
func ChunkBegin(parent context.Context, runID uuid.UUID, chunkIndex, workerID int, timeout time.Duration) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithTimeout(parent, timeout)

	ctx = context.WithValue(ctx, keyRunID, runID)
	ctx = context.WithValue(ctx, keyChunkIndex, chunkIndex)
	ctx = context.WithValue(ctx, keyWorkerID, workerID)
	ctx = context.WithValue(ctx, keyStartTime, time.Now())

	return ctx, cancel
}

// GetRunID extracts the run ID from context
func GetRunID(ctx context.Context) (uuid.UUID, bool) {
	runID, ok := ctx.Value(keyRunID).(uuid.UUID)
	return runID, ok
}

// GetChunkIndex extracts the chunk index from context
func GetChunkIndex(ctx context.Context) int {
	idx, ok := ctx.Value(keyChunkIndex).(int)
	if !ok {
		return -1
	}
	return idx
}

// GetWorkerID extracts the worker ID from context
func GetWorkerID(ctx context.Context) int {
	workerID, ok := ctx.Value(keyWorkerID).(int)
	if !ok {
		return -1
	}
	return workerID
}

// GetStartTime extracts the chunk start time from context
func GetStartTime(ctx context.Context) (time.Time, bool) {
	startTime, ok := ctx.Value(keyStartTime).(time.Time)
	return startTime, ok
}

// Elapsed reports how long the chunk has been running.
func Elapsed(ctx context.Context) time.Duration {
	start, ok := GetStartTime(ctx)
	if !ok {
		return 0
	}
	return time.Since(start)
}

// GetChunkMetadata extracts all chunk metadata from context
func GetChunkMetadata(ctx context.Context) *ChunkMetadata {
	runID, _ := GetRunID(ctx)
	startTime, _ := GetStartTime(ctx)

	return &ChunkMetadata{
		RunID:      runID,
		ChunkIndex: GetChunkIndex(ctx),
		WorkerID:   GetWorkerID(ctx),
		StartTime:  startTime,
	}
}
