package ingest

import (
	"fmt"
	"strings"

	aai "github.com/AssemblyAI/assemblyai-go-sdk"

	"github.com/a-shrinked-org/plato-unchained/internal/domain/entities"
)

// FormatASR marks transcripts that came from the ASR collaborator rather
// than one of the textual conventions.
const FormatASR = "asr"

// FromASR converts an AssemblyAI transcript into the normalized event
// sequence. Utterance start times are already in milliseconds. When the
// transcript carries speaker labels, each event text is prefixed with the
// speaker so the information survives normalization.
func FromASR(source string, transcript *aai.Transcript) (*entities.Transcript, error) {
	if transcript == nil {
		return nil, entities.ErrEmptyTranscript
	}

	t := &entities.Transcript{Source: source, Format: FormatASR}

	for _, u := range transcript.Utterances {
		text := strings.TrimSpace(deref(u.Text))
		if text == "" {
			continue
		}
		if speaker := deref(u.Speaker); speaker != "" {
			text = fmt.Sprintf("Speaker %s: %s", speaker, text)
		}
		start := int64(0)
		if u.Start != nil {
			start = *u.Start
		}
		t.Events = append(t.Events, entities.SpeechEvent{StartMS: start, Text: text})
	}

	// Some transcripts come back without utterance segmentation; fall back
	// to the full text as a single event.
	if len(t.Events) == 0 {
		if text := strings.TrimSpace(deref(transcript.Text)); text != "" {
			t.Events = append(t.Events, entities.SpeechEvent{StartMS: 0, Text: text})
		}
	}

	if len(t.Events) == 0 {
		return nil, entities.ErrEmptyTranscript
	}

	ensureSorted(t)
	return t, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
