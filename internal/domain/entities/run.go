package entities

import (
	"time"

	"github.com/google/uuid"
)

// RunStatus is the lifecycle state of a pipeline run.
type RunStatus string

const (
	RunStatusPending    RunStatus = "pending"
	RunStatusProcessing RunStatus = "processing"
	RunStatusCompleted  RunStatus = "completed"
	RunStatusDegraded   RunStatus = "degraded"
	RunStatusFailed     RunStatus = "failed"
)

// PipelineRun tracks one summarization request end to end.
type PipelineRun struct {
	ID           uuid.UUID `json:"id" gorm:"type:uuid;primary_key"`
	Source       string    `json:"source" gorm:"type:varchar(2048);not null"`
	Format       string    `json:"format,omitempty" gorm:"type:varchar(32)"`
	ModelID      string    `json:"model_id" gorm:"type:varchar(100);not null"`
	Status       RunStatus `json:"status" gorm:"type:varchar(20);not null;index"`
	EventCount   int       `json:"event_count"`
	ChunkCount   int       `json:"chunk_count"`
	FailedChunks int       `json:"failed_chunks"`
	InputTokens  int       `json:"input_tokens"`
	ErrorMessage string    `json:"error_message,omitempty" gorm:"type:text"`
	CreatedAt    time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt    time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName specifies the table name for GORM
func (PipelineRun) TableName() string {
	return "pipeline_runs"
}

// NewPipelineRun creates a pending run for a source/model pair.
func NewPipelineRun(source, modelID string) *PipelineRun {
	return &PipelineRun{
		ID:        uuid.New(),
		Source:    source,
		ModelID:   modelID,
		Status:    RunStatusPending,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
}

// MarkTerminal sets the final status from the merge outcome.
func (r *PipelineRun) MarkTerminal(failedChunks int, err error) {
	r.FailedChunks = failedChunks
	switch {
	case err != nil:
		r.Status = RunStatusFailed
		r.ErrorMessage = err.Error()
	case failedChunks > 0:
		r.Status = RunStatusDegraded
	default:
		r.Status = RunStatusCompleted
	}
	r.UpdatedAt = time.Now()
}
