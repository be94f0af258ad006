package ai

import (
	"context"
	"fmt"
	"strings"
)

// Field names one of the structured outputs a caller can request per chunk.
type Field string

const (
	FieldTitle    Field = "title"
	FieldSummary  Field = "summary"
	FieldChapters Field = "chapters"
	FieldPassages Field = "passages"
)

// IsValid checks if the Field is a recognized value.
func (f Field) IsValid() bool {
	switch f {
	case FieldTitle, FieldSummary, FieldChapters, FieldPassages:
		return true
	}
	return false
}

// DefaultFields is what a request gets when the caller picks nothing.
func DefaultFields() []Field {
	return []Field{FieldTitle, FieldSummary, FieldChapters, FieldPassages}
}

// CompletionRequest is the abstract model contract: one chunk of rendered
// transcript text plus the output fields to populate. The pipeline depends
// only on this shape, not on any vendor API.
type CompletionRequest struct {
	ModelID         string
	ChunkText       string
	Fields          []Field
	MaxOutputTokens int
}

// LanguageModel is implemented by each vendor client. Complete returns the
// raw assistant text; the pipeline extracts the JSON fragment from it.
type LanguageModel interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}

// BuildPrompt renders the shared instruction scaffolding around a chunk.
// Every vendor client sends the same prompt so fragment parsing stays
// uniform.
func BuildPrompt(req CompletionRequest) string {
	var b strings.Builder

	b.WriteString("You are given a portion of a timestamped transcript. Each line has the form \"[<milliseconds>ms] <text>\".\n")
	b.WriteString("Respond with a single JSON object and nothing else. Populate exactly these keys:\n")

	for _, f := range req.Fields {
		switch f {
		case FieldTitle:
			b.WriteString("- \"title\": a short descriptive title for this portion\n")
		case FieldSummary:
			b.WriteString("- \"summary\": a concise abstract of this portion\n")
		case FieldChapters:
			b.WriteString("- \"chapters\": array of {\"start_ms\": number, \"title\": string, \"summary\": string} marking topic boundaries\n")
		case FieldPassages:
			b.WriteString("- \"passages\": array of {\"text\": string, \"start_ms\": number, \"end_ms\": number} rewriting the content as readable prose, each passage citing the timestamp range it covers\n")
		}
	}

	fmt.Fprintf(&b, "\nTranscript portion:\n\n%s", req.ChunkText)
	return b.String()
}
