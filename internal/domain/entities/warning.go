package entities

import "fmt"

// WarningKind classifies non-fatal pipeline conditions.
type WarningKind string

const (
	WarningLineParse      WarningKind = "line_parse"
	WarningOutOfOrder     WarningKind = "out_of_order"
	WarningOversizedEvent WarningKind = "oversized_event"
	WarningChunkFailed    WarningKind = "chunk_failed"
)

// Warning records a recoverable problem encountered during parsing,
// planning, or chunk processing. Line and ChunkIndex are -1 when not
// applicable.
type Warning struct {
	Kind       WarningKind `json:"kind"`
	Message    string      `json:"message"`
	Line       int         `json:"line,omitempty"`
	ChunkIndex int         `json:"chunk_index,omitempty"`
}

// NewLineWarning records a line that did not match its transcript format.
// The preview is truncated so warnings stay readable for long lines.
func NewLineWarning(line int, format, content string) Warning {
	preview := content
	if len(preview) > 40 {
		preview = preview[:40] + "..."
	}
	return Warning{
		Kind:       WarningLineParse,
		Message:    fmt.Sprintf("line does not match %s format: %q", format, preview),
		Line:       line,
		ChunkIndex: -1,
	}
}

// NewChunkWarning records a chunk whose model call reached terminal failure.
func NewChunkWarning(chunkIndex int, err error) Warning {
	msg := "chunk processing failed"
	if err != nil {
		msg = fmt.Sprintf("chunk processing failed: %v", err)
	}
	return Warning{
		Kind:       WarningChunkFailed,
		Message:    msg,
		Line:       -1,
		ChunkIndex: chunkIndex,
	}
}
