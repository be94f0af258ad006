package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	pkgjwt "github.com/a-shrinked-org/plato-unchained/pkg/jwt"
)

func authEcho(manager *pkgjwt.Manager) *echo.Echo {
	e := echo.New()
	e.GET("/protected", func(c echo.Context) error {
		return c.String(http.StatusOK, c.Get(ClientContextKey).(string))
	}, EchoAuth(manager))
	return e
}

func TestEchoAuthValidToken(t *testing.T) {
	manager := pkgjwt.NewManager("test-secret", time.Minute)
	token, err := manager.GenerateToken("client-7")
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	e := authEcho(manager)
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if rec.Body.String() != "client-7" {
		t.Fatalf("client id = %q", rec.Body.String())
	}
}

func TestEchoAuthRejects(t *testing.T) {
	manager := pkgjwt.NewManager("test-secret", time.Minute)
	e := authEcho(manager)

	cases := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"not bearer", "Basic abc123"},
		{"garbage token", "Bearer not.a.token"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tc.header != "" {
				req.Header.Set(echo.HeaderAuthorization, tc.header)
			}
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)

			if rec.Code != http.StatusUnauthorized {
				t.Fatalf("status = %d, want 401", rec.Code)
			}

			var errResp struct {
				Code string `json:"code"`
			}
			if err := json.Unmarshal(rec.Body.Bytes(), &errResp); err != nil {
				t.Fatalf("decode failed: %v", err)
			}
			if errResp.Code != "UNAUTHENTICATED" {
				t.Fatalf("code = %q, want UNAUTHENTICATED", errResp.Code)
			}
		})
	}
}
