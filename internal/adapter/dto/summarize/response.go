package summarize

import "time"

// ChapterResponse is one document chapter
type ChapterResponse struct {
	StartMS int64  `json:"start_ms"`
	Title   string `json:"title"`
	Summary string `json:"summary,omitempty"`
}

// PassageResponse is one document passage with its source time range
type PassageResponse struct {
	Text    string `json:"text"`
	StartMS int64  `json:"start_ms"`
	EndMS   int64  `json:"end_ms"`
}

// WarningResponse is one recovered, non-fatal problem
type WarningResponse struct {
	Kind       string `json:"kind"`
	Message    string `json:"message"`
	Line       int    `json:"line,omitempty"`
	ChunkIndex int    `json:"chunk_index,omitempty"`
}

// DocumentResponse is the final structured document
type DocumentResponse struct {
	ID        string            `json:"id"`
	RunID     string            `json:"run_id"`
	Source    string            `json:"source"`
	ModelUsed string            `json:"model_used,omitempty"`
	Title     string            `json:"title,omitempty"`
	Summary   string            `json:"summary,omitempty"`
	Chapters  []ChapterResponse `json:"chapters,omitempty"`
	Passages  []PassageResponse `json:"passages,omitempty"`
	Warnings  []WarningResponse `json:"warnings,omitempty"`
	Degraded  bool              `json:"degraded"`
	CreatedAt time.Time         `json:"created_at"`
}

// RunResponse reports pipeline run progress and outcome
type RunResponse struct {
	ID           string    `json:"id"`
	Source       string    `json:"source"`
	Format       string    `json:"format,omitempty"`
	ModelID      string    `json:"model_id"`
	Status       string    `json:"status"`
	EventCount   int       `json:"event_count"`
	ChunkCount   int       `json:"chunk_count"`
	FailedChunks int       `json:"failed_chunks"`
	InputTokens  int       `json:"input_tokens"`
	ErrorMessage string    `json:"error_message,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
