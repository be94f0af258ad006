package pipeline

import (
	"strings"

	"github.com/a-shrinked-org/plato-unchained/internal/domain/entities"
)

// Merge combines chunk results into the final document fields. Chunk index
// already encodes chronological order, so chapters and passages are
// concatenated without re-sorting. The title comes from the first
// successful chunk; summaries are joined in index order. Failed chunks are
// reported as warnings on the document; only a run with zero successful
// chunks is an error.
func Merge(results []entities.ChunkResult) (*entities.DocumentFragment, []entities.Warning, error) {
	merged := &entities.DocumentFragment{}
	var warnings []entities.Warning
	var summaries []string
	succeeded := 0

	for _, res := range results {
		if !res.Succeeded {
			warnings = append(warnings, entities.NewChunkWarning(res.ChunkIndex, res.Err))
			continue
		}
		succeeded++

		if merged.Title == "" && res.Fragment.Title != "" {
			merged.Title = res.Fragment.Title
		}
		if res.Fragment.Summary != "" {
			summaries = append(summaries, strings.TrimSpace(res.Fragment.Summary))
		}
		merged.Chapters = append(merged.Chapters, res.Fragment.Chapters...)
		merged.Passages = append(merged.Passages, res.Fragment.Passages...)
	}

	if succeeded == 0 {
		return nil, warnings, entities.ErrAllChunksFailed
	}

	merged.Summary = strings.Join(summaries, "\n\n")
	return merged, warnings, nil
}
