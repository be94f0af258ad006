package pipeline

import (
	"reflect"
	"strings"
	"testing"

	"github.com/a-shrinked-org/plato-unchained/internal/domain/entities"
	"github.com/a-shrinked-org/plato-unchained/internal/usecase/tokens"
)

// eventsOfNine builds n events that each render to exactly 36 characters,
// estimating to 9 tokens apiece. Timestamps stay four digits wide so the
// rendered length is constant.
func eventsOfNine(n int) []entities.SpeechEvent {
	events := make([]entities.SpeechEvent, n)
	for i := range events {
		events[i] = entities.SpeechEvent{
			StartMS: int64(1000 + i),
			Text:    strings.Repeat("x", 26),
		}
	}
	return events
}

func concatChunks(chunks []entities.Chunk) []entities.SpeechEvent {
	var out []entities.SpeechEvent
	for _, c := range chunks {
		out = append(out, c.Events...)
	}
	return out
}

func TestPlanSingleChunkWhenUnderBudget(t *testing.T) {
	est := tokens.NewEstimator(nil)
	limits := tokens.ModelLimits{SafeInputTokens: 90}

	events := eventsOfNine(5)
	chunks, warnings := Plan(events, est, limits, 0)
	if len(chunks) != 1 {
		t.Fatalf("got %d chunks, want 1", len(chunks))
	}
	if chunks[0].EstimatedTokens != 45 {
		t.Fatalf("EstimatedTokens = %d, want 45", chunks[0].EstimatedTokens)
	}
	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings: %+v", warnings)
	}
}

func TestPlanSingleChunkAtExactBudget(t *testing.T) {
	// Input that estimates to exactly the safe budget stays whole; chunking
	// only engages past it.
	est := tokens.NewEstimator(nil)
	limits := tokens.ModelLimits{SafeInputTokens: 90}

	chunks, _ := Plan(eventsOfNine(10), est, limits, 0)
	if len(chunks) != 1 {
		t.Fatalf("got %d chunks, want 1", len(chunks))
	}
	if chunks[0].EstimatedTokens != 90 {
		t.Fatalf("EstimatedTokens = %d, want 90", chunks[0].EstimatedTokens)
	}
}

func TestPlanGreedyAccumulation(t *testing.T) {
	est := tokens.NewEstimator(nil)
	limits := tokens.ModelLimits{SafeInputTokens: 90}

	// 30 events at 9 tokens = 270 total, target = floor(90 * 0.7) = 63,
	// so 7 events per chunk: 7+7+7+7+2.
	events := eventsOfNine(30)
	chunks, warnings := Plan(events, est, limits, 0)

	wantSizes := []int{7, 7, 7, 7, 2}
	if len(chunks) != len(wantSizes) {
		t.Fatalf("got %d chunks, want %d", len(chunks), len(wantSizes))
	}
	for i, c := range chunks {
		if c.Index != i {
			t.Fatalf("chunk %d has Index %d", i, c.Index)
		}
		if len(c.Events) != wantSizes[i] {
			t.Fatalf("chunk %d has %d events, want %d", i, len(c.Events), wantSizes[i])
		}
		if c.EstimatedTokens != wantSizes[i]*9 {
			t.Fatalf("chunk %d EstimatedTokens = %d, want %d", i, c.EstimatedTokens, wantSizes[i]*9)
		}
	}
	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings: %+v", warnings)
	}

	if !reflect.DeepEqual(concatChunks(chunks), events) {
		t.Fatal("concatenated chunks do not reproduce the input")
	}
}

func TestPlanOverrideWins(t *testing.T) {
	est := tokens.NewEstimator(nil)
	limits := tokens.ModelLimits{SafeInputTokens: 90}

	// 5 events fit the safe budget, but the override forces small chunks.
	events := eventsOfNine(5)
	chunks, _ := Plan(events, est, limits, 20)
	wantSizes := []int{2, 2, 1}
	if len(chunks) != len(wantSizes) {
		t.Fatalf("got %d chunks, want %d", len(chunks), len(wantSizes))
	}
	for i, c := range chunks {
		if len(c.Events) != wantSizes[i] {
			t.Fatalf("chunk %d has %d events, want %d", i, len(c.Events), wantSizes[i])
		}
	}
	if !reflect.DeepEqual(concatChunks(chunks), events) {
		t.Fatal("concatenated chunks do not reproduce the input")
	}
}

func TestPlanOversizedEvent(t *testing.T) {
	est := tokens.NewEstimator(nil)
	limits := tokens.ModelLimits{SafeInputTokens: 90}

	events := eventsOfNine(11)
	// Replace one event with a monologue far past the 63-token target.
	events[8].Text = strings.Repeat("y", 400)

	chunks, warnings := Plan(events, est, limits, 0)

	if len(warnings) != 1 {
		t.Fatalf("got %d warnings, want 1: %+v", len(warnings), warnings)
	}
	if warnings[0].Kind != entities.WarningOversizedEvent {
		t.Fatalf("warning kind = %s, want %s", warnings[0].Kind, entities.WarningOversizedEvent)
	}

	// The oversized event sits alone in its chunk.
	found := false
	for _, c := range chunks {
		for _, ev := range c.Events {
			if len(ev.Text) == 400 {
				if len(c.Events) != 1 {
					t.Fatalf("oversized event shares a chunk with %d others", len(c.Events)-1)
				}
				found = true
			}
		}
	}
	if !found {
		t.Fatal("oversized event missing from plan")
	}

	if !reflect.DeepEqual(concatChunks(chunks), events) {
		t.Fatal("concatenated chunks do not reproduce the input")
	}
}

func TestPlanEmptyEvents(t *testing.T) {
	est := tokens.NewEstimator(nil)
	chunks, warnings := Plan(nil, est, tokens.ModelLimits{SafeInputTokens: 90}, 0)
	if chunks != nil || warnings != nil {
		t.Fatalf("got %+v / %+v, want nil / nil", chunks, warnings)
	}
}

func TestTargetChunkTokens(t *testing.T) {
	limits := tokens.ModelLimits{SafeInputTokens: 190_000}
	if got := TargetChunkTokens(limits, 0); got != 133_000 {
		t.Fatalf("default target = %d, want 133000", got)
	}
	if got := TargetChunkTokens(limits, 50_000); got != 50_000 {
		t.Fatalf("override target = %d, want 50000", got)
	}
	if got := TargetChunkTokens(limits, -1); got != 133_000 {
		t.Fatalf("negative override target = %d, want 133000", got)
	}
}
