package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/a-shrinked-org/plato-unchained/pkg/config"
)

func TestAnthropicComplete_Success(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/messages" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("x-api-key"); got != "test-key" {
			t.Fatalf("unexpected api key header %q", got)
		}
		if got := r.Header.Get("anthropic-version"); got != anthropicVersion {
			t.Fatalf("unexpected version header %q", got)
		}

		var payload anthropicRequest
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Fatalf("invalid payload: %v", err)
		}
		if payload.Model != "claude-3-5-sonnet-20240620" {
			t.Fatalf("unexpected model %s", payload.Model)
		}
		if len(payload.Messages) != 1 || payload.Messages[0].Role != "user" {
			t.Fatalf("unexpected messages %+v", payload.Messages)
		}

		json.NewEncoder(w).Encode(map[string]interface{}{
			"content": []map[string]string{
				{"type": "text", "text": `{"title":"T"}`},
			},
		})
	}))
	defer ts.Close()

	client := NewAnthropicClient(&config.AnthropicConfig{APIKey: "test-key", BaseURL: ts.URL})

	content, err := client.Complete(context.Background(), CompletionRequest{
		ModelID:         "claude-3-5-sonnet-20240620",
		ChunkText:       "[0ms] hello\n",
		Fields:          []Field{FieldTitle},
		MaxOutputTokens: 8000,
	})
	if err != nil {
		t.Fatalf("Complete failed: %v", err)
	}
	if content != `{"title":"T"}` {
		t.Fatalf("unexpected content %q", content)
	}
}

func TestAnthropicComplete_APIError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"error": map[string]string{"type": "overloaded_error", "message": "overloaded"},
		})
	}))
	defer ts.Close()

	client := NewAnthropicClient(&config.AnthropicConfig{APIKey: "test-key", BaseURL: ts.URL})

	_, err := client.Complete(context.Background(), CompletionRequest{ModelID: "claude-3-5-sonnet-20240620"})
	if err == nil {
		t.Fatal("expected error from API error body")
	}
}

func TestRouterDispatch(t *testing.T) {
	anthropic := &stubModel{content: "from-anthropic"}
	groq := &stubModel{content: "from-groq"}
	router := NewRouter(anthropic, groq)

	got, err := router.Complete(context.Background(), CompletionRequest{ModelID: "claude-3-5-sonnet-20240620"})
	if err != nil || got != "from-anthropic" {
		t.Fatalf("claude model: got %q, %v", got, err)
	}

	got, err = router.Complete(context.Background(), CompletionRequest{ModelID: "llama-3.3-70b-versatile"})
	if err != nil || got != "from-groq" {
		t.Fatalf("llama model: got %q, %v", got, err)
	}
}

func TestRouterMissingClient(t *testing.T) {
	router := NewRouter(nil, nil)

	if _, err := router.Complete(context.Background(), CompletionRequest{ModelID: "claude-3-opus-20240229"}); err == nil {
		t.Fatal("expected error for unconfigured anthropic client")
	}
	if _, err := router.Complete(context.Background(), CompletionRequest{ModelID: "llama-3.1-70b-versatile"}); err == nil {
		t.Fatal("expected error for unconfigured groq client")
	}
}

type stubModel struct {
	content string
}

func (s *stubModel) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	return s.content, nil
}

func TestBuildPromptFields(t *testing.T) {
	prompt := BuildPrompt(CompletionRequest{
		ChunkText: "[0ms] hello\n",
		Fields:    []Field{FieldTitle, FieldPassages},
	})

	for _, want := range []string{`"title"`, `"passages"`, "[0ms] hello"} {
		if !strings.Contains(prompt, want) {
			t.Fatalf("prompt missing %q:\n%s", want, prompt)
		}
	}
	if strings.Contains(prompt, `"chapters"`) {
		t.Fatal("prompt instructs a field that was not requested")
	}
}
