// Пакет middleware — HTTP middleware страниц ACP.
// auth.go — загрузка администратора из session cookie и защита маршрутов.
package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/bigkaa/billboard-acp/internal/domain/model"
	"github.com/bigkaa/billboard-acp/internal/ui/auth"
	"github.com/bigkaa/billboard-acp/internal/ui/pages"
)

// contextKey — тип для ключей контекста UI (избегаем коллизий с API middleware).
type contextKey string

const (
	// ContextKeyPrincipal — администратор текущего запроса.
	ContextKeyPrincipal contextKey = "ui_principal"
)

// PrincipalLoader — источник администратора для запроса.
type PrincipalLoader interface {
	// LoadPrincipal возвращает администратора или nil, nil если сессии нет.
	LoadPrincipal(r *http.Request) (*model.User, error)
	// Forget сбрасывает сессию, которую не удалось загрузить.
	Forget(w http.ResponseWriter)
}

// CookiePrincipalLoader — администратор из зашифрованного session cookie.
// Запись сохраняется в cookie при входе и из БД не перечитывается.
type CookiePrincipalLoader struct {
	sessions *auth.SessionManager
}

// NewCookiePrincipalLoader создаёт загрузчик поверх менеджера сессий.
func NewCookiePrincipalLoader(sessions *auth.SessionManager) *CookiePrincipalLoader {
	return &CookiePrincipalLoader{sessions: sessions}
}

// LoadPrincipal дешифрует session cookie.
func (l *CookiePrincipalLoader) LoadPrincipal(r *http.Request) (*model.User, error) {
	session, err := l.sessions.GetSessionFromRequest(r)
	if err != nil || session == nil {
		return nil, err
	}
	principal := session.Principal
	return &principal, nil
}

// Forget удаляет session cookie.
func (l *CookiePrincipalLoader) Forget(w http.ResponseWriter) {
	l.sessions.ClearSessionCookie(w)
}

// SessionGuard — загрузка администратора и защита маршрутов.
type SessionGuard struct {
	loader PrincipalLoader
	logger *slog.Logger
}

// NewSessionGuard создаёт SessionGuard.
func NewSessionGuard(loader PrincipalLoader, logger *slog.Logger) *SessionGuard {
	return &SessionGuard{
		loader: loader,
		logger: logger.With(slog.String("component", "ui_session_guard")),
	}
}

// Session — middleware для всех маршрутов: помещает администратора
// (если сессия есть) в контекст запроса. Повреждённый или просроченный
// cookie сбрасывается, запрос продолжается без администратора.
func (g *SessionGuard) Session() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, err := g.loader.LoadPrincipal(r)
			if err != nil {
				g.logger.Debug("Ошибка чтения сессии",
					slog.String("error", err.Error()),
					slog.String("remote_addr", r.RemoteAddr),
				)
				g.loader.Forget(w)
				next.ServeHTTP(w, r)
				return
			}

			if principal == nil {
				next.ServeHTTP(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), ContextKeyPrincipal, principal)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Require — middleware защищённых маршрутов. Без администратора в контексте
// отвечает 403 со страницей "You must be logged in to continue";
// обработчик маршрута не вызывается.
func (g *SessionGuard) Require() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if PrincipalFromContext(r.Context()) != nil {
				next.ServeHTTP(w, r)
				return
			}

			g.logger.Info("Запрос без сессии к защищённому маршруту",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
			)

			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			w.WriteHeader(http.StatusForbidden)
			if err := pages.ErrorPage(http.StatusForbidden, pages.MsgLoginRequired, nil).Render(r.Context(), w); err != nil {
				g.logger.Error("Ошибка рендеринга страницы 403", slog.String("error", err.Error()))
			}
		})
	}
}

// PrincipalFromContext извлекает администратора из контекста запроса.
// Возвращает nil если сессии нет (или запрос не прошёл через Session).
func PrincipalFromContext(ctx context.Context) *model.User {
	principal, ok := ctx.Value(ContextKeyPrincipal).(*model.User)
	if !ok {
		return nil
	}
	return principal
}
