package pipeline

import (
	"fmt"

	"github.com/a-shrinked-org/plato-unchained/internal/domain/entities"
	"github.com/a-shrinked-org/plato-unchained/internal/usecase/tokens"
)

// ChunkFraction is the share of the safe input budget a chunk may use.
// The remainder is headroom for the fixed prompt scaffolding and
// output-format instructions that accompany every chunk request.
const ChunkFraction = 0.7

// TargetChunkTokens resolves the effective chunk size: an explicit positive
// override wins, otherwise floor(safe_input_tokens * ChunkFraction).
func TargetChunkTokens(limits tokens.ModelLimits, override int) int {
	if override > 0 {
		return override
	}
	return int(float64(limits.SafeInputTokens) * ChunkFraction)
}

// Plan splits an ordered event sequence into chunks that fit the model's
// budgets. A transcript that already fits the safe input budget yields a
// single chunk. Otherwise events are accumulated greedily up to the target
// size; an event is never split across chunks, so a lone event larger than
// the target gets its own oversized chunk with a warning.
//
// Concatenating the chunks' event slices in index order reproduces the
// input exactly: no loss, no duplication, no reordering.
func Plan(events []entities.SpeechEvent, est *tokens.Estimator, limits tokens.ModelLimits, override int) ([]entities.Chunk, []entities.Warning) {
	if len(events) == 0 {
		return nil, nil
	}

	perEvent := make([]int, len(events))
	total := 0
	for i, ev := range events {
		perEvent[i] = est.EstimateEventTokens(ev)
		total += perEvent[i]
	}

	// Chunking is only needed when the whole transcript exceeds the safe
	// budget; exactly-at-budget input stays whole.
	if override <= 0 && total <= limits.SafeInputTokens {
		return []entities.Chunk{{Index: 0, Events: events, EstimatedTokens: total}}, nil
	}

	target := TargetChunkTokens(limits, override)

	var (
		chunks   []entities.Chunk
		warnings []entities.Warning
		start    int
		running  int
	)

	closeChunk := func(end int) {
		if end <= start {
			return
		}
		chunks = append(chunks, entities.Chunk{
			Index:           len(chunks),
			Events:          events[start:end],
			EstimatedTokens: running,
		})
		start = end
		running = 0
	}

	for i := range events {
		if running > 0 && running+perEvent[i] > target {
			closeChunk(i)
		}
		running += perEvent[i]

		if perEvent[i] > target {
			// Splitting an utterance would destroy semantic coherence;
			// the soft limit gives way instead.
			warnings = append(warnings, entities.Warning{
				Kind:       entities.WarningOversizedEvent,
				Message:    fmt.Sprintf("event at %dms estimated at %d tokens exceeds chunk target %d; kept whole", events[i].StartMS, perEvent[i], target),
				Line:       -1,
				ChunkIndex: len(chunks),
			})
			closeChunk(i + 1)
		}
	}
	closeChunk(len(events))

	return chunks, warnings
}
