package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/a-shrinked-org/plato-unchained/internal/domain/entities"
)

// DocumentRepository persists final structured documents.
type DocumentRepository interface {
	CreateDocument(ctx context.Context, doc *entities.Document) error
	GetDocumentByID(ctx context.Context, id uuid.UUID) (*entities.Document, error)
	GetDocumentByRunID(ctx context.Context, runID uuid.UUID) (*entities.Document, error)
}
