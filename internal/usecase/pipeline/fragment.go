package pipeline

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/a-shrinked-org/plato-unchained/internal/domain/entities"
)

// ParseFragment parses a model response into the structured fragment for
// one chunk. Passages that come back without a usable time range are
// clamped to the chunk's own event range so citations never dangle.
func ParseFragment(content string, chunk entities.Chunk) (*entities.DocumentFragment, error) {
	content = extractJSON(content)

	var fragment entities.DocumentFragment
	if err := json.Unmarshal([]byte(content), &fragment); err != nil {
		return nil, fmt.Errorf("failed to parse JSON response: %w", err)
	}

	if fragment.Title == "" && fragment.Summary == "" && len(fragment.Chapters) == 0 && len(fragment.Passages) == 0 {
		return nil, fmt.Errorf("response contains none of the requested fields")
	}

	for i := range fragment.Passages {
		p := &fragment.Passages[i]
		if p.StartMS == 0 && p.EndMS == 0 {
			p.StartMS = chunk.StartMS()
			p.EndMS = chunk.EndMS()
		}
		if p.EndMS < p.StartMS {
			p.EndMS = p.StartMS
		}
	}

	return &fragment, nil
}

// extractJSON extracts JSON content from markdown code blocks or plain text
func extractJSON(content string) string {
	content = strings.TrimSpace(content)

	// Check if wrapped in markdown code block
	if strings.HasPrefix(content, "```json") {
		content = strings.TrimPrefix(content, "```json")
		content = strings.TrimPrefix(content, "```")
		if idx := strings.LastIndex(content, "```"); idx != -1 {
			content = content[:idx]
		}
	} else if strings.HasPrefix(content, "```") {
		content = strings.TrimPrefix(content, "```")
		if idx := strings.LastIndex(content, "```"); idx != -1 {
			content = content[:idx]
		}
	}

	return strings.TrimSpace(content)
}
