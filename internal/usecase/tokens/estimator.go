package tokens

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/a-shrinked-org/plato-unchained/internal/domain/entities"
)

// ModelLimits describes one model's token budgets. Safe budgets are fixed
// conservative fractions of the hard maximum, reserving headroom for prompt
// overhead and estimation error.
type ModelLimits struct {
	ModelID          string `json:"model_id"`
	MaxInputTokens   int    `json:"max_input_tokens"`
	MaxOutputTokens  int    `json:"max_output_tokens"`
	SafeInputTokens  int    `json:"safe_input_tokens"`
	SafeOutputTokens int    `json:"safe_output_tokens"`
}

// DefaultLimits returns the built-in limits table keyed by exact model id.
// Unknown ids are rejected rather than guessed at.
func DefaultLimits() map[string]ModelLimits {
	table := map[string]ModelLimits{
		"claude-3-5-sonnet-20240620": {MaxInputTokens: 200_000, MaxOutputTokens: 32_000, SafeInputTokens: 190_000, SafeOutputTokens: 8_000},
		"claude-3-opus-20240229":     {MaxInputTokens: 200_000, MaxOutputTokens: 32_000, SafeInputTokens: 190_000, SafeOutputTokens: 8_000},
		"claude-3-haiku-20240307":    {MaxInputTokens: 200_000, MaxOutputTokens: 2_000, SafeInputTokens: 190_000, SafeOutputTokens: 1_500},
		"claude-3-sonnet-20240229":   {MaxInputTokens: 200_000, MaxOutputTokens: 2_000, SafeInputTokens: 190_000, SafeOutputTokens: 1_500},
		"llama-3.1-70b-versatile":    {MaxInputTokens: 128_000, MaxOutputTokens: 8_000, SafeInputTokens: 120_000, SafeOutputTokens: 6_000},
		"llama-3.3-70b-versatile":    {MaxInputTokens: 128_000, MaxOutputTokens: 8_000, SafeInputTokens: 120_000, SafeOutputTokens: 6_000},
	}
	for id, l := range table {
		l.ModelID = id
		table[id] = l
	}
	return table
}

// ParseOverrides converts config-form limit entries into a table suitable
// for NewEstimator. Each value has the form
// "max_input/max_output/safe_input/safe_output"; all four must be positive.
func ParseOverrides(raw map[string]string) (map[string]ModelLimits, error) {
	if len(raw) == 0 {
		return nil, nil
	}

	out := make(map[string]ModelLimits, len(raw))
	for id, v := range raw {
		parts := strings.Split(v, "/")
		if len(parts) != 4 {
			return nil, fmt.Errorf("model %q: expected max_input/max_output/safe_input/safe_output, got %q", id, v)
		}
		nums := make([]int, len(parts))
		for i, p := range parts {
			n, err := strconv.Atoi(strings.TrimSpace(p))
			if err != nil || n <= 0 {
				return nil, fmt.Errorf("model %q: invalid token limit %q", id, p)
			}
			nums[i] = n
		}
		out[id] = ModelLimits{
			ModelID:          id,
			MaxInputTokens:   nums[0],
			MaxOutputTokens:  nums[1],
			SafeInputTokens:  nums[2],
			SafeOutputTokens: nums[3],
		}
	}
	return out, nil
}

// Estimator resolves model budgets and estimates token counts. The table is
// built once at process start (defaults plus config overrides) and is
// read-only afterwards.
type Estimator struct {
	limits map[string]ModelLimits
}

// NewEstimator builds an estimator from the default table merged with the
// provided overrides. Overrides win on id collision.
func NewEstimator(overrides map[string]ModelLimits) *Estimator {
	limits := DefaultLimits()
	for id, l := range overrides {
		l.ModelID = id
		limits[id] = l
	}
	return &Estimator{limits: limits}
}

// LimitsFor returns the limits entry for a model id.
func (e *Estimator) LimitsFor(modelID string) (ModelLimits, error) {
	l, ok := e.limits[modelID]
	if !ok {
		return ModelLimits{}, fmt.Errorf("%w: %q", entities.ErrUnknownModel, modelID)
	}
	return l, nil
}

// EstimateTokens approximates the token count of text at roughly four
// characters per token. Deterministic, monotonic in input length, and
// never requires a network call.
func (e *Estimator) EstimateTokens(text string) int {
	if text == "" {
		return 0
	}
	return (len(text) + 3) / 4
}

// EstimateEventTokens estimates one rendered event line, including the
// timestamp prefix and newline it will carry in the model request.
func (e *Estimator) EstimateEventTokens(event entities.SpeechEvent) int {
	return e.EstimateTokens(renderEventLine(event))
}

// ValidateInputSize reports whether text fits within the model's safe input
// budget, along with the estimate used for the decision.
func (e *Estimator) ValidateInputSize(text string, limits ModelLimits) (bool, int) {
	n := e.EstimateTokens(text)
	return n <= limits.SafeInputTokens, n
}

// renderEventLine is the canonical wire rendering of an event inside a
// model request: "[<ms>ms] <text>\n".
func renderEventLine(event entities.SpeechEvent) string {
	return fmt.Sprintf("[%dms] %s\n", event.StartMS, event.Text)
}

// RenderEvents renders an event sequence the way chunk requests carry it.
func RenderEvents(events []entities.SpeechEvent) string {
	total := 0
	for _, ev := range events {
		total += len(ev.Text) + 16
	}
	b := make([]byte, 0, total)
	for _, ev := range events {
		b = append(b, renderEventLine(ev)...)
	}
	return string(b)
}
