package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/a-shrinked-org/plato-unchained/internal/domain/entities"
)

// DocumentRepository handles document persistence
type DocumentRepository struct {
	db *gorm.DB
}

// NewDocumentRepository creates a new document repository
func NewDocumentRepository(db *gorm.DB) *DocumentRepository {
	return &DocumentRepository{db: db}
}

// CreateDocument creates a new document
func (r *DocumentRepository) CreateDocument(ctx context.Context, doc *entities.Document) error {
	if doc == nil {
		return errors.New("document cannot be nil")
	}
	return r.db.WithContext(ctx).Create(doc).Error
}

// GetDocumentByID retrieves a document by ID
func (r *DocumentRepository) GetDocumentByID(ctx context.Context, id uuid.UUID) (*entities.Document, error) {
	var doc entities.Document
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&doc).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &doc, nil
}

// GetDocumentByRunID retrieves the document produced by a run
func (r *DocumentRepository) GetDocumentByRunID(ctx context.Context, runID uuid.UUID) (*entities.Document, error) {
	var doc entities.Document
	if err := r.db.WithContext(ctx).Where("run_id = ?", runID).First(&doc).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &doc, nil
}
