package ingest

import (
	"regexp"
	"strings"
)

// Format identifies one of the supported transcript text conventions.
type Format string

const (
	FormatTimeClock          Format = "time_clock"
	FormatMillisecondBracket Format = "millisecond_bracket"
	FormatMillisecondColon   Format = "millisecond_colon"
	FormatMarkdown           Format = "markdown"
	FormatPlain              Format = "plain"
)

// IsValid checks if the Format is a recognized value.
func (f Format) IsValid() bool {
	switch f {
	case FormatTimeClock, FormatMillisecondBracket, FormatMillisecondColon, FormatMarkdown, FormatPlain:
		return true
	}
	return false
}

var (
	// HH:MM:SS or MM:SS followed by whitespace and text. Checked before the
	// millisecond-colon form because "02:15" would otherwise parse as
	// integer 2 followed by text "15".
	timeClockRe = regexp.MustCompile(`^(\d{1,2}:)?\d{1,2}:\d{2}\s+\S`)

	// [123] text or [123ms] text
	millisBracketRe = regexp.MustCompile(`^\[(\d+)(?:ms)?\]\s*(\S.*)$`)

	// 123: text
	millisColonRe = regexp.MustCompile(`^(\d+):\s*(\S.*)$`)

	markdownHeaderRe = regexp.MustCompile(`^#{1,6}\s*\S`)
)

// Detect classifies raw text into one of the supported formats. Only the
// first non-blank line is trusted; formats are visually similar, so the
// priority order below resolves ambiguity deterministically. Malformed
// later lines are the parser's problem, not the detector's.
func Detect(raw string) Format {
	first := firstInformativeLine(raw)
	if first == "" {
		return FormatPlain
	}

	switch {
	case timeClockRe.MatchString(first):
		return FormatTimeClock
	case millisBracketRe.MatchString(first):
		return FormatMillisecondBracket
	case millisColonRe.MatchString(first):
		return FormatMillisecondColon
	}

	// Markdown is recognized by header lines anywhere in the content.
	for _, line := range strings.Split(raw, "\n") {
		if markdownHeaderRe.MatchString(strings.TrimSpace(line)) {
			return FormatMarkdown
		}
	}

	return FormatPlain
}

func firstInformativeLine(raw string) string {
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			return line
		}
	}
	return ""
}
