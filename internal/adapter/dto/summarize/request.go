package summarize

// CreateSummaryRequest submits one transcript for summarization.
type CreateSummaryRequest struct {
	// Source identifies where the text came from (file path or URL).
	Source string `json:"source" validate:"required,max=2048"`
	// Text is the raw transcript content.
	Text string `json:"text" validate:"required"`
	// Format optionally bypasses detection.
	Format string `json:"format,omitempty" validate:"omitempty,oneof=time_clock millisecond_bracket millisecond_colon markdown plain"`
	// Model selects the language model; empty uses the configured default.
	Model string `json:"model,omitempty" validate:"omitempty,max=100"`
	// Fields picks the structured outputs; empty requests all of them.
	Fields []string `json:"fields,omitempty" validate:"omitempty,dive,oneof=title summary chapters passages"`
	// ChunkSize overrides the automatic chunk size in tokens.
	ChunkSize int `json:"chunk_size,omitempty" validate:"omitempty,gt=0"`
}
