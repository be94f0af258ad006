package ingest

import (
	"errors"
	"testing"

	aai "github.com/AssemblyAI/assemblyai-go-sdk"

	"github.com/a-shrinked-org/plato-unchained/internal/domain/entities"
)

func strPtr(s string) *string { return &s }
func msPtr(n int64) *int64    { return &n }

func TestFromASRUtterances(t *testing.T) {
	tr := &aai.Transcript{
		Utterances: []aai.TranscriptUtterance{
			{Start: msPtr(0), Speaker: strPtr("A"), Text: strPtr("Hello everyone")},
			{Start: msPtr(4200), Speaker: strPtr("B"), Text: strPtr("Hi there")},
		},
	}

	out, err := FromASR("recording.mp3", tr)
	if err != nil {
		t.Fatalf("FromASR failed: %v", err)
	}
	if out.Format != FormatASR {
		t.Fatalf("format = %s, want %s", out.Format, FormatASR)
	}
	if len(out.Events) != 2 {
		t.Fatalf("got %d events, want 2", len(out.Events))
	}
	if out.Events[0].Text != "Speaker A: Hello everyone" {
		t.Fatalf("text = %q", out.Events[0].Text)
	}
	if out.Events[1].StartMS != 4200 {
		t.Fatalf("StartMS = %d, want 4200", out.Events[1].StartMS)
	}
}

func TestFromASRFallsBackToFullText(t *testing.T) {
	tr := &aai.Transcript{Text: strPtr("the whole recording as one blob")}

	out, err := FromASR("recording.mp3", tr)
	if err != nil {
		t.Fatalf("FromASR failed: %v", err)
	}
	if len(out.Events) != 1 {
		t.Fatalf("got %d events, want 1", len(out.Events))
	}
	if out.Events[0].StartMS != 0 {
		t.Fatalf("StartMS = %d, want 0", out.Events[0].StartMS)
	}
}

func TestFromASREmpty(t *testing.T) {
	if _, err := FromASR("recording.mp3", nil); !errors.Is(err, entities.ErrEmptyTranscript) {
		t.Fatalf("nil transcript error = %v, want ErrEmptyTranscript", err)
	}
	if _, err := FromASR("recording.mp3", &aai.Transcript{}); !errors.Is(err, entities.ErrEmptyTranscript) {
		t.Fatalf("blank transcript error = %v, want ErrEmptyTranscript", err)
	}
}
