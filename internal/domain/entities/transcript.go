package entities

// SpeechEvent is one timestamped unit of transcript text.
// Events within a transcript are ordered by non-decreasing StartMS.
type SpeechEvent struct {
	StartMS int64  `json:"start_ms"`
	Text    string `json:"text"`
}

// ChapterMark is a structural boundary discovered during parsing
// (markdown headers). It points at the first event of the section
// rather than being an event itself.
type ChapterMark struct {
	EventIndex int    `json:"event_index"`
	Title      string `json:"title"`
}

// Transcript is the normalized parse output for one input.
type Transcript struct {
	Source   string        `json:"source"`
	Format   string        `json:"format"`
	Events   []SpeechEvent `json:"events"`
	Chapters []ChapterMark `json:"chapters,omitempty"`
	Warnings []Warning     `json:"warnings,omitempty"`
}

// Duration returns the timestamp of the last event in milliseconds.
func (t *Transcript) Duration() int64 {
	if len(t.Events) == 0 {
		return 0
	}
	return t.Events[len(t.Events)-1].StartMS
}
