package middleware

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/bigkaa/billboard-acp/internal/domain/model"
	"github.com/bigkaa/billboard-acp/internal/ui/auth"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func newTestGuard(t *testing.T) (*SessionGuard, *auth.SessionManager) {
	t.Helper()
	sm, err := auth.NewSessionManager("test-key", false, time.Hour)
	if err != nil {
		t.Fatalf("NewSessionManager: %v", err)
	}
	return NewSessionGuard(NewCookiePrincipalLoader(sm), testLogger()), sm
}

// sessionCookie возвращает действующий session cookie для администратора.
func sessionCookie(t *testing.T, sm *auth.SessionManager, u *model.User) *http.Cookie {
	t.Helper()
	rec := httptest.NewRecorder()
	if err := sm.SetSessionCookie(rec, sm.NewSession(u)); err != nil {
		t.Fatalf("SetSessionCookie: %v", err)
	}
	return rec.Result().Cookies()[0]
}

func TestSession_AttachesPrincipal(t *testing.T) {
	guard, sm := newTestGuard(t)
	admin := &model.User{ID: "u1", Name: "Ada", Email: "ada@example.com"}

	var got *model.User
	h := guard.Session()(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		got = PrincipalFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(sessionCookie(t, sm, admin))
	h.ServeHTTP(httptest.NewRecorder(), req)

	if got == nil || *got != *admin {
		t.Errorf("principal = %+v, ожидается %+v", got, admin)
	}
}

func TestSession_NoCookie(t *testing.T) {
	guard, _ := newTestGuard(t)

	called := false
	h := guard.Session()(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		called = true
		if PrincipalFromContext(r.Context()) != nil {
			t.Error("principal должен отсутствовать")
		}
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	if !called {
		t.Error("обработчик не вызван")
	}
}

func TestSession_TamperedCookieCleared(t *testing.T) {
	guard, _ := newTestGuard(t)

	h := guard.Session()(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		if PrincipalFromContext(r.Context()) != nil {
			t.Error("principal из повреждённого cookie")
		}
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: auth.SessionCookieName, Value: "garbage"})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != auth.SessionCookieName || cookies[0].MaxAge >= 0 {
		t.Errorf("ожидалось удаление session cookie, получено %+v", cookies)
	}
}

func TestRequire_Unauthenticated(t *testing.T) {
	guard, _ := newTestGuard(t)

	called := false
	h := guard.Session()(guard.Require()(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		called = true
	})))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/users/manage", nil))

	if called {
		t.Error("защищённый обработчик вызван без сессии")
	}
	if rec.Code != http.StatusForbidden {
		t.Errorf("статус = %d, ожидается 403", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "You must be logged in to continue") {
		t.Errorf("страница 403 без сообщения: %s", body)
	}
	if strings.Contains(body, "/logout") {
		t.Error("страница 403 не должна показывать администратора")
	}
}

func TestRequire_Authenticated(t *testing.T) {
	guard, sm := newTestGuard(t)

	called := false
	h := guard.Session()(guard.Require()(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		called = true
		w.WriteHeader(http.StatusNoContent)
	})))

	req := httptest.NewRequest(http.MethodGet, "/users/manage", nil)
	req.AddCookie(sessionCookie(t, sm, &model.User{ID: "u1", Name: "Ada", Email: "ada@example.com"}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if !called || rec.Code != http.StatusNoContent {
		t.Errorf("called=%v status=%d", called, rec.Code)
	}
}

func TestRecover_RendersServerError(t *testing.T) {
	h := Recover(testLogger())(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("статус = %d, ожидается 500", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "500") {
		t.Error("ответ не содержит страницу 500")
	}
}
