package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Chapter is a logical section of the final document.
type Chapter struct {
	StartMS int64  `json:"start_ms"`
	Title   string `json:"title"`
	Summary string `json:"summary,omitempty"`
}

// Passage is a rewritten portion of the transcript. StartMS/EndMS reference
// the originating event time range so citations stay traceable.
type Passage struct {
	Text    string `json:"text"`
	StartMS int64  `json:"start_ms"`
	EndMS   int64  `json:"end_ms"`
}

// Document is the final structured artifact of a pipeline run.
type Document struct {
	ID        uuid.UUID                                  `json:"id" gorm:"type:uuid;primary_key"`
	RunID     uuid.UUID                                  `json:"run_id" gorm:"type:uuid;not null;index"`
	Source    string                                     `json:"source" gorm:"type:varchar(2048)"`
	ModelUsed string                                     `json:"model_used,omitempty" gorm:"type:varchar(100)"`
	Title     string                                     `json:"title,omitempty" gorm:"type:text"`
	Summary   string                                     `json:"summary,omitempty" gorm:"type:text"`
	Chapters  []Chapter                                  `json:"chapters,omitempty" gorm:"type:jsonb;serializer:json"`
	Passages  []Passage                                  `json:"passages,omitempty" gorm:"type:jsonb;serializer:json"`
	Warnings  []Warning                                  `json:"warnings,omitempty" gorm:"type:jsonb;serializer:json"`
	RawData   datatypes.JSONType[map[string]interface{}] `json:"raw_data,omitempty" gorm:"type:jsonb"`
	CreatedAt time.Time                                  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time                                  `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName specifies the table name for GORM
func (Document) TableName() string {
	return "documents"
}

// NewDocument creates a document bound to a pipeline run.
func NewDocument(runID uuid.UUID, source string) *Document {
	return &Document{
		ID:        uuid.New(),
		RunID:     runID,
		Source:    source,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
}

// Degraded reports whether any chunk failed while producing this document.
func (d *Document) Degraded() bool {
	for _, w := range d.Warnings {
		if w.Kind == WarningChunkFailed {
			return true
		}
	}
	return false
}
