package ai

import (
	"context"
	"fmt"
	"strings"
)

// Router dispatches chunk requests to the vendor client that serves the
// requested model id. Either client may be nil when not configured.
type Router struct {
	anthropic LanguageModel
	groq      LanguageModel
}

// NewRouter creates a vendor router.
func NewRouter(anthropic, groq LanguageModel) *Router {
	return &Router{anthropic: anthropic, groq: groq}
}

// Complete routes the request by model family.
func (r *Router) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	if strings.HasPrefix(req.ModelID, "claude") {
		if r.anthropic == nil {
			return "", fmt.Errorf("anthropic client not configured for model %q", req.ModelID)
		}
		return r.anthropic.Complete(ctx, req)
	}
	if r.groq == nil {
		return "", fmt.Errorf("groq client not configured for model %q", req.ModelID)
	}
	return r.groq.Complete(ctx, req)
}
