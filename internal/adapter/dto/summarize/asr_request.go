package summarize

import (
	aai "github.com/AssemblyAI/assemblyai-go-sdk"
)

// CreateASRSummaryRequest submits a completed AssemblyAI transcript for
// summarization. The transcript payload is the SDK's own JSON shape, so a
// caller can forward the ASR response body unmodified.
type CreateASRSummaryRequest struct {
	// Source identifies the recording the transcript came from.
	Source string `json:"source" validate:"required,max=2048"`
	// Transcript is the completed ASR result.
	Transcript *aai.Transcript `json:"transcript" validate:"required"`
	// Model selects the language model; empty uses the configured default.
	Model string `json:"model,omitempty" validate:"omitempty,max=100"`
	// Fields picks the structured outputs; empty requests all of them.
	Fields []string `json:"fields,omitempty" validate:"omitempty,dive,oneof=title summary chapters passages"`
	// ChunkSize overrides the automatic chunk size in tokens.
	ChunkSize int `json:"chunk_size,omitempty" validate:"omitempty,gt=0"`
}
