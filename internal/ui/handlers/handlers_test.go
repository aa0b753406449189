package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/bigkaa/billboard-acp/internal/domain/model"
	"github.com/bigkaa/billboard-acp/internal/service"
	"github.com/bigkaa/billboard-acp/internal/ui/auth"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

// countingOAuth считает обращения к token endpoint.
type countingOAuth struct{ exchanges int }

func (c *countingOAuth) AuthorizeURL(state, _ string) string {
	return "https://idp.example/auth?state=" + state
}

func (c *countingOAuth) ExchangeCode(context.Context, string, string) (*auth.TokenResponse, error) {
	c.exchanges++
	return &auth.TokenResponse{IDToken: "t"}, nil
}

type fixedVerifier struct{}

func (fixedVerifier) Verify(context.Context, string) (*auth.Identity, error) {
	return &auth.Identity{Email: "x@example.com"}, nil
}

type rejectingResolver struct{}

func (rejectingResolver) Resolve(context.Context, string) (*model.User, error) {
	return nil, service.ErrNotProvisioned
}

func newTestAuthHandler(t *testing.T, oauth OAuthClient) *AuthHandler {
	t.Helper()
	sessions, err := auth.NewSessionManager("k", false, time.Hour)
	if err != nil {
		t.Fatalf("NewSessionManager: %v", err)
	}
	return NewAuthHandler(oauth, fixedVerifier{}, rejectingResolver{}, sessions, testLogger())
}

func TestHandleCallback_RejectedBeforeTokenExchange(t *testing.T) {
	tests := []struct {
		name  string
		query string
	}{
		{"ошибка провайдера", "?error=access_denied&state=s"},
		{"нет code", "?state=s"},
		{"нет state", "?code=c"},
		{"нет state cookie", "?code=c&state=s"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			oauth := &countingOAuth{}
			h := newTestAuthHandler(t, oauth)

			rec := httptest.NewRecorder()
			h.HandleCallback(rec, httptest.NewRequest(http.MethodGet, "/auth/google/callback"+tt.query, nil))

			if rec.Code != http.StatusFound || rec.Header().Get("Location") != "/unauthorized" {
				t.Errorf("ответ = %d %q", rec.Code, rec.Header().Get("Location"))
			}
			if oauth.exchanges != 0 {
				t.Errorf("ExchangeCode вызван %d раз", oauth.exchanges)
			}
		})
	}
}

func TestHandleLogin_SetsStateCookie(t *testing.T) {
	h := newTestAuthHandler(t, &countingOAuth{})

	rec := httptest.NewRecorder()
	h.HandleLogin(rec, httptest.NewRequest(http.MethodGet, "/login", nil))

	if rec.Code != http.StatusFound {
		t.Fatalf("статус = %d", rec.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range rec.Result().Cookies() {
		req.AddCookie(c)
	}
	sd, err := readStateCookie(req)
	if err != nil {
		t.Fatalf("readStateCookie: %v", err)
	}
	if sd.State == "" || sd.CodeVerifier == "" {
		t.Errorf("state cookie неполный: %+v", sd)
	}
}

func TestSameSiteReferer(t *testing.T) {
	tests := []struct {
		referer string
		want    string
	}{
		{"", "/"},
		{"http://acp.example.com/banners/manage", "/banners/manage"},
		{"http://acp.example.com/data/manage?x=1", "/data/manage?x=1"},
		{"https://evil.example.net/phish", "/"},
		{"/users/manage", "/users/manage"},
		{"http://acp.example.com//evil.example/x", "/"},
		{"http://acp.example.com/%5Cevil.example", "/"},
		{"http://acp.example.com/%2F%2Fevil.example", "/"},
		{"javascript:alert(1)", "/"},
	}

	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodGet, "/lang/en", nil)
		req.Host = "acp.example.com"
		if tt.referer != "" {
			req.Header.Set("Referer", tt.referer)
		}
		if got := sameSiteReferer(req); got != tt.want {
			t.Errorf("sameSiteReferer(%q) = %q, хотели %q", tt.referer, got, tt.want)
		}
	}
}

func TestFormUpload_NoFile(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/banners/edit", nil)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if err := parseForm(req); err != nil {
		t.Fatalf("parseForm: %v", err)
	}

	upload, closeFile, err := formUpload(req)
	defer closeFile()
	if err != nil || upload != nil {
		t.Errorf("formUpload = %v, %v; хотели nil, nil", upload, err)
	}
}
