package entities

// Chunk is a contiguous sub-sequence of transcript events sized to fit a
// model's input token budget. Concatenating all chunks of a plan in index
// order reconstructs the original event sequence exactly.
type Chunk struct {
	Index           int           `json:"index"`
	Events          []SpeechEvent `json:"events"`
	EstimatedTokens int           `json:"estimated_tokens"`
}

// StartMS returns the timestamp of the chunk's first event.
func (c *Chunk) StartMS() int64 {
	if len(c.Events) == 0 {
		return 0
	}
	return c.Events[0].StartMS
}

// EndMS returns the timestamp of the chunk's last event.
func (c *Chunk) EndMS() int64 {
	if len(c.Events) == 0 {
		return 0
	}
	return c.Events[len(c.Events)-1].StartMS
}

// DocumentFragment is the structured output produced by the model for a
// single chunk.
type DocumentFragment struct {
	Title    string    `json:"title,omitempty"`
	Summary  string    `json:"summary,omitempty"`
	Chapters []Chapter `json:"chapters,omitempty"`
	Passages []Passage `json:"passages,omitempty"`
}

// ChunkResult is the terminal state of one chunk's model call. Exactly one
// of Fragment and Err is set.
type ChunkResult struct {
	ChunkIndex int
	Succeeded  bool
	Fragment   *DocumentFragment
	Err        error
}
