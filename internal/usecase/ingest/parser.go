package ingest

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/a-shrinked-org/plato-unchained/internal/domain/entities"
)

// plainCadenceMS is the fixed cadence assigned to events that carry no real
// timing information (plain text and markdown bodies). A deliberate
// approximation: roughly one spoken line every three seconds.
const plainCadenceMS = 3000

// parseFunc converts raw text into events for one specific format.
// Implementations append per-line warnings instead of failing; a line that
// does not match the format is skipped.
type parseFunc func(raw string, t *entities.Transcript)

// Parse converts detected-format raw text into an ordered transcript.
// Returns entities.ErrEmptyTranscript when no line yields an event.
func Parse(raw string, format Format) (*entities.Transcript, error) {
	if !format.IsValid() {
		return nil, fmt.Errorf("unsupported transcript format %q", format)
	}

	t := &entities.Transcript{Format: string(format)}

	var parse parseFunc
	switch format {
	case FormatTimeClock:
		parse = parseTimeClock
	case FormatMillisecondBracket:
		parse = parseMillisecondBracket
	case FormatMillisecondColon:
		parse = parseMillisecondColon
	case FormatMarkdown:
		parse = parseMarkdown
	default:
		parse = parsePlain
	}
	parse(raw, t)

	if len(t.Events) == 0 {
		return nil, entities.ErrEmptyTranscript
	}

	ensureSorted(t)
	return t, nil
}

// Normalize detects (unless hinted) and parses raw text from one source.
func Normalize(source, raw string, hint Format) (*entities.Transcript, error) {
	format := hint
	if format == "" {
		format = Detect(raw)
	}

	t, err := Parse(raw, format)
	if err != nil {
		return nil, err
	}
	t.Source = source
	return t, nil
}

func parseMillisecondBracket(raw string, t *entities.Transcript) {
	eachLine(raw, func(n int, line string) {
		m := millisBracketRe.FindStringSubmatch(line)
		if m == nil {
			t.Warnings = append(t.Warnings, entities.NewLineWarning(n, string(FormatMillisecondBracket), line))
			return
		}
		ms, err := strconv.ParseInt(m[1], 10, 64)
		if err != nil {
			t.Warnings = append(t.Warnings, entities.NewLineWarning(n, string(FormatMillisecondBracket), line))
			return
		}
		t.Events = append(t.Events, entities.SpeechEvent{StartMS: ms, Text: strings.TrimSpace(m[2])})
	})
}

func parseMillisecondColon(raw string, t *entities.Transcript) {
	eachLine(raw, func(n int, line string) {
		// A MM:SS-looking prefix means the line slipped in from another
		// convention; treat it as malformed rather than misreading "02:15"
		// as 2ms.
		if timeClockRe.MatchString(line) {
			t.Warnings = append(t.Warnings, entities.NewLineWarning(n, string(FormatMillisecondColon), line))
			return
		}
		m := millisColonRe.FindStringSubmatch(line)
		if m == nil {
			t.Warnings = append(t.Warnings, entities.NewLineWarning(n, string(FormatMillisecondColon), line))
			return
		}
		ms, err := strconv.ParseInt(m[1], 10, 64)
		if err != nil {
			t.Warnings = append(t.Warnings, entities.NewLineWarning(n, string(FormatMillisecondColon), line))
			return
		}
		t.Events = append(t.Events, entities.SpeechEvent{StartMS: ms, Text: strings.TrimSpace(m[2])})
	})
}

func parseTimeClock(raw string, t *entities.Transcript) {
	eachLine(raw, func(n int, line string) {
		fields := strings.SplitN(line, " ", 2)
		if len(fields) != 2 || strings.TrimSpace(fields[1]) == "" {
			t.Warnings = append(t.Warnings, entities.NewLineWarning(n, string(FormatTimeClock), line))
			return
		}
		ms, err := clockToMillis(fields[0])
		if err != nil {
			t.Warnings = append(t.Warnings, entities.NewLineWarning(n, string(FormatTimeClock), line))
			return
		}
		t.Events = append(t.Events, entities.SpeechEvent{StartMS: ms, Text: strings.TrimSpace(fields[1])})
	})
}

// clockToMillis parses MM:SS (2 fields) or HH:MM:SS (3 fields).
func clockToMillis(s string) (int64, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 && len(parts) != 3 {
		return 0, fmt.Errorf("expected MM:SS or HH:MM:SS, got %q", s)
	}

	nums := make([]int64, len(parts))
	for i, p := range parts {
		n, err := strconv.ParseInt(p, 10, 64)
		if err != nil || n < 0 {
			return 0, fmt.Errorf("invalid time field %q", p)
		}
		nums[i] = n
	}

	if len(nums) == 2 {
		return (nums[0]*60 + nums[1]) * 1000, nil
	}
	return ((nums[0]*60+nums[1])*60 + nums[2]) * 1000, nil
}

// parseMarkdown turns header lines into chapter boundaries and body lines
// into auto-timestamped events. Header lines are not emitted as events;
// the chapter mark points at the first event that follows it.
func parseMarkdown(raw string, t *entities.Transcript) {
	eachLine(raw, func(n int, line string) {
		if markdownHeaderRe.MatchString(line) {
			title := strings.TrimSpace(strings.TrimLeft(line, "#"))
			t.Chapters = append(t.Chapters, entities.ChapterMark{
				EventIndex: len(t.Events),
				Title:      title,
			})
			return
		}
		t.Events = append(t.Events, entities.SpeechEvent{
			StartMS: int64(len(t.Events)) * plainCadenceMS,
			Text:    line,
		})
	})
}

func parsePlain(raw string, t *entities.Transcript) {
	eachLine(raw, func(n int, line string) {
		t.Events = append(t.Events, entities.SpeechEvent{
			StartMS: int64(len(t.Events)) * plainCadenceMS,
			Text:    line,
		})
	})
}

// eachLine visits non-blank trimmed lines with their 1-based line numbers.
func eachLine(raw string, visit func(n int, line string)) {
	for i, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		visit(i+1, line)
	}
}

// ensureSorted re-sorts events whose literal timestamps are out of order.
// The sort is stable so equal timestamps keep their original relative
// order, and a warning is recorded instead of rejecting the input.
func ensureSorted(t *entities.Transcript) {
	sorted := sort.SliceIsSorted(t.Events, func(i, j int) bool {
		return t.Events[i].StartMS < t.Events[j].StartMS
	})
	if sorted {
		return
	}

	sort.SliceStable(t.Events, func(i, j int) bool {
		return t.Events[i].StartMS < t.Events[j].StartMS
	})
	t.Warnings = append(t.Warnings, entities.Warning{
		Kind:       entities.WarningOutOfOrder,
		Message:    "timestamps out of chronological order; events re-sorted",
		Line:       -1,
		ChunkIndex: -1,
	})
}
