package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/a-shrinked-org/plato-unchained/internal/domain/entities"
)

// RunRepository persists pipeline run state.
type RunRepository interface {
	CreateRun(ctx context.Context, run *entities.PipelineRun) error
	GetRunByID(ctx context.Context, id uuid.UUID) (*entities.PipelineRun, error)
	UpdateRun(ctx context.Context, run *entities.PipelineRun) error
	ListRecentRuns(ctx context.Context, limit int) ([]*entities.PipelineRun, error)
}
