package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/a-shrinked-org/plato-unchained/internal/domain/entities"
	"github.com/a-shrinked-org/plato-unchained/internal/usecase/pipeline"
	"github.com/a-shrinked-org/plato-unchained/pkg/config"
	pkgvalidator "github.com/a-shrinked-org/plato-unchained/pkg/validator"
)

// fakeService returns canned results without running the pipeline.
type fakeService struct {
	doc *entities.Document
	run *entities.PipelineRun
	url string
	err error

	lastInput    pipeline.SummarizeInput
	lastASRInput pipeline.ASRInput
}

func (s *fakeService) Summarize(_ context.Context, in pipeline.SummarizeInput) (*entities.Document, error) {
	s.lastInput = in
	if s.err != nil {
		return nil, s.err
	}
	return s.doc, nil
}

func (s *fakeService) SummarizeASR(_ context.Context, in pipeline.ASRInput) (*entities.Document, error) {
	s.lastASRInput = in
	if s.err != nil {
		return nil, s.err
	}
	return s.doc, nil
}

func (s *fakeService) GetDocumentArtifactURL(_ context.Context, id uuid.UUID) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return s.url, nil
}

func (s *fakeService) GetDocument(_ context.Context, id uuid.UUID) (*entities.Document, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.doc, nil
}

func (s *fakeService) GetRun(_ context.Context, id uuid.UUID) (*entities.PipelineRun, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.run, nil
}

func newTestEcho(svc pipeline.Service) *echo.Echo {
	e := echo.New()
	e.Validator = pkgvalidator.New()

	cfg := &config.Config{}
	cfg.Server.Environment = "test"

	h := NewSummaryHandler(svc, zap.NewNop())
	NewRouter(cfg, h, nil).Setup(e)
	return e
}

func TestCreateSummary(t *testing.T) {
	doc := entities.NewDocument(uuid.New(), "meeting.txt")
	doc.Title = "Quarterly Sync"
	doc.Summary = "Things were discussed."
	svc := &fakeService{doc: doc}

	e := newTestEcho(svc)

	body := `{"source":"meeting.txt","text":"[0] Hello","model":"claude-3-5-sonnet-20240620","fields":["title","summary"]}`
	req := httptest.NewRequest(http.MethodPost, "/v1/summaries", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var envelope struct {
		Data struct {
			ID      string `json:"id"`
			Title   string `json:"title"`
			Summary string `json:"summary"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if envelope.Data.Title != "Quarterly Sync" {
		t.Fatalf("title = %q", envelope.Data.Title)
	}

	if svc.lastInput.ModelID != "claude-3-5-sonnet-20240620" {
		t.Fatalf("model not forwarded: %+v", svc.lastInput)
	}
	if len(svc.lastInput.Fields) != 2 {
		t.Fatalf("fields not forwarded: %+v", svc.lastInput.Fields)
	}
}

func TestCreateSummaryValidation(t *testing.T) {
	e := newTestEcho(&fakeService{})

	cases := []struct {
		name string
		body string
	}{
		{"missing text", `{"source":"meeting.txt"}`},
		{"missing source", `{"text":"[0] Hello"}`},
		{"bad format", `{"source":"s","text":"t","format":"srt"}`},
		{"bad field", `{"source":"s","text":"t","fields":["sentiment"]}`},
		{"negative chunk size", `{"source":"s","text":"t","chunk_size":-5}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/v1/summaries", strings.NewReader(tc.body))
			req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", rec.Code)
			}
		})
	}
}

func TestCreateSummaryEmptyTranscript(t *testing.T) {
	e := newTestEcho(&fakeService{err: entities.ErrEmptyTranscript})

	body := `{"source":"empty.txt","text":"\n\n"}`
	req := httptest.NewRequest(http.MethodPost, "/v1/summaries", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}

	var errResp struct {
		Code string `json:"code"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &errResp); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if errResp.Code != "EMPTY_TRANSCRIPT" {
		t.Fatalf("code = %q, want EMPTY_TRANSCRIPT", errResp.Code)
	}
}

func TestCreateSummaryAllChunksFailed(t *testing.T) {
	e := newTestEcho(&fakeService{err: entities.ErrAllChunksFailed})

	body := `{"source":"meeting.txt","text":"[0] Hello"}`
	req := httptest.NewRequest(http.MethodPost, "/v1/summaries", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want 502", rec.Code)
	}
}

func TestCreateSummaryFromASR(t *testing.T) {
	doc := entities.NewDocument(uuid.New(), "recording.mp3")
	doc.Summary = "Spoken things."
	svc := &fakeService{doc: doc}

	e := newTestEcho(svc)

	body := `{
		"source": "recording.mp3",
		"transcript": {
			"utterances": [
				{"start": 0, "speaker": "A", "text": "Hello everyone"}
			]
		}
	}`
	req := httptest.NewRequest(http.MethodPost, "/v1/summaries/asr", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if svc.lastASRInput.Transcript == nil {
		t.Fatal("transcript not forwarded to the service")
	}
	if len(svc.lastASRInput.Transcript.Utterances) != 1 {
		t.Fatalf("utterances = %+v", svc.lastASRInput.Transcript.Utterances)
	}
}

func TestCreateSummaryFromASRRequiresTranscript(t *testing.T) {
	e := newTestEcho(&fakeService{})

	body := `{"source":"recording.mp3"}`
	req := httptest.NewRequest(http.MethodPost, "/v1/summaries/asr", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestGetArtifact(t *testing.T) {
	e := newTestEcho(&fakeService{url: "https://storage.example/doc.json?sig=abc"})

	req := httptest.NewRequest(http.MethodGet, "/v1/summaries/"+uuid.NewString()+"/artifact", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var envelope struct {
		Data struct {
			URL string `json:"url"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if envelope.Data.URL != "https://storage.example/doc.json?sig=abc" {
		t.Fatalf("url = %q", envelope.Data.URL)
	}
}

func TestGetArtifactNotFound(t *testing.T) {
	e := newTestEcho(&fakeService{err: entities.ErrDocNotFound})

	req := httptest.NewRequest(http.MethodGet, "/v1/summaries/"+uuid.NewString()+"/artifact", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestGetDocumentInvalidID(t *testing.T) {
	e := newTestEcho(&fakeService{})

	req := httptest.NewRequest(http.MethodGet, "/v1/summaries/not-a-uuid", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestGetDocumentNotFound(t *testing.T) {
	e := newTestEcho(&fakeService{err: entities.ErrDocNotFound})

	req := httptest.NewRequest(http.MethodGet, "/v1/summaries/"+uuid.NewString(), nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestGetRun(t *testing.T) {
	run := entities.NewPipelineRun("meeting.txt", "claude-3-5-sonnet-20240620")
	run.Status = entities.RunStatusCompleted
	e := newTestEcho(&fakeService{run: run})

	req := httptest.NewRequest(http.MethodGet, "/v1/runs/"+run.ID.String(), nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var envelope struct {
		Data struct {
			Status string `json:"status"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if envelope.Data.Status != "completed" {
		t.Fatalf("status = %q", envelope.Data.Status)
	}
}

func TestHealthCheck(t *testing.T) {
	e := newTestEcho(&fakeService{})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
}
