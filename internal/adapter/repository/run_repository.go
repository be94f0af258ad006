package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/a-shrinked-org/plato-unchained/internal/domain/entities"
)

// RunRepository handles pipeline run persistence
type RunRepository struct {
	db *gorm.DB
}

// NewRunRepository creates a new run repository
func NewRunRepository(db *gorm.DB) *RunRepository {
	return &RunRepository{db: db}
}

// CreateRun creates a new pipeline run
func (r *RunRepository) CreateRun(ctx context.Context, run *entities.PipelineRun) error {
	if run == nil {
		return errors.New("run cannot be nil")
	}
	return r.db.WithContext(ctx).Create(run).Error
}

// GetRunByID retrieves a run by ID
func (r *RunRepository) GetRunByID(ctx context.Context, id uuid.UUID) (*entities.PipelineRun, error) {
	var run entities.PipelineRun
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&run).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &run, nil
}

// UpdateRun updates a pipeline run
func (r *RunRepository) UpdateRun(ctx context.Context, run *entities.PipelineRun) error {
	if run == nil {
		return errors.New("run cannot be nil")
	}
	return r.db.WithContext(ctx).
		Model(&entities.PipelineRun{}).
		Where("id = ?", run.ID).
		Save(run).Error
}

// ListRecentRuns returns the most recently created runs
func (r *RunRepository) ListRecentRuns(ctx context.Context, limit int) ([]*entities.PipelineRun, error) {
	if limit <= 0 {
		limit = 20
	}
	var runs []*entities.PipelineRun
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&runs).Error; err != nil {
		return nil, err
	}
	return runs, nil
}
