// auth.go — вход через Google OAuth2 (Authorization Code + PKCE) и выход.
// Вход разрешён только администраторам, чей email есть в коллекции users.
package handlers

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/bigkaa/billboard-acp/internal/domain/model"
	"github.com/bigkaa/billboard-acp/internal/service"
	"github.com/bigkaa/billboard-acp/internal/ui/auth"
)

// Имя cookie для хранения PKCE state (code_verifier + state).
const stateCookieName = "acp_auth_state"

// stateCookieMaxAge — максимальный возраст state cookie (5 минут).
const stateCookieMaxAge = 5 * 60

// OAuthClient — authorize и token endpoints провайдера.
type OAuthClient interface {
	AuthorizeURL(state, codeChallenge string) string
	ExchangeCode(ctx context.Context, code, codeVerifier string) (*auth.TokenResponse, error)
}

// TokenVerifier — проверка id_token.
type TokenVerifier interface {
	Verify(ctx context.Context, rawToken string) (*auth.Identity, error)
}

// PrincipalResolver — сопоставление внешней учётной записи администратору.
type PrincipalResolver interface {
	Resolve(ctx context.Context, email string) (*model.User, error)
}

// AuthHandler — обработчики входа и выхода.
type AuthHandler struct {
	oauth    OAuthClient
	verifier TokenVerifier
	resolver PrincipalResolver
	sessions *auth.SessionManager
	logger   *slog.Logger
}

// NewAuthHandler создаёт новый AuthHandler.
func NewAuthHandler(
	oauth OAuthClient,
	verifier TokenVerifier,
	resolver PrincipalResolver,
	sessions *auth.SessionManager,
	logger *slog.Logger,
) *AuthHandler {
	return &AuthHandler{
		oauth:    oauth,
		verifier: verifier,
		resolver: resolver,
		sessions: sessions,
		logger:   logger.With(slog.String("component", "ui_auth")),
	}
}

// stateData — данные, сохраняемые в state cookie на время auth flow.
type stateData struct {
	// State — CSRF state parameter.
	State string `json:"state"`
	// CodeVerifier — PKCE code_verifier для обмена code → tokens.
	CodeVerifier string `json:"code_verifier"`
}

// HandleLogin — GET /login
// Генерирует PKCE и state, сохраняет в short-lived cookie,
// redirect на authorize endpoint провайдера.
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	pkce, err := auth.GeneratePKCE()
	if err != nil {
		serverError(w, r, h.logger, "Ошибка генерации PKCE", err)
		return
	}

	state, err := auth.GenerateState()
	if err != nil {
		serverError(w, r, h.logger, "Ошибка генерации state", err)
		return
	}

	sdJSON, _ := json.Marshal(&stateData{State: state, CodeVerifier: pkce.CodeVerifier})
	h.setStateCookie(w, base64.URLEncoding.EncodeToString(sdJSON), stateCookieMaxAge)

	http.Redirect(w, r, h.oauth.AuthorizeURL(state, pkce.CodeChallenge), http.StatusFound)
}

// HandleCallback — GET /auth/google/callback
// Обменивает code на tokens, проверяет id_token, ищет администратора по email
// и создаёт сессию. Любая ошибка входа — redirect на /unauthorized.
func (h *AuthHandler) HandleCallback(w http.ResponseWriter, r *http.Request) {
	// state cookie одноразовый
	h.setStateCookie(w, "", -1)

	user, err := h.authenticate(r)
	if err != nil {
		level := slog.LevelWarn
		if errors.Is(err, service.ErrNotProvisioned) {
			level = slog.LevelInfo
		}
		h.logger.Log(r.Context(), level, "Вход отклонён", slog.String("error", err.Error()))
		http.Redirect(w, r, "/unauthorized", http.StatusFound)
		return
	}

	if err := h.sessions.SetSessionCookie(w, h.sessions.NewSession(user)); err != nil {
		serverError(w, r, h.logger, "Ошибка установки session cookie", err)
		return
	}

	h.logger.Info("Администратор вошёл",
		slog.String("user_id", user.ID),
		slog.String("email", user.Email),
	)
	http.Redirect(w, r, "/", http.StatusFound)
}

// authenticate проходит шаги callback и возвращает администратора.
func (h *AuthHandler) authenticate(r *http.Request) (*model.User, error) {
	query := r.URL.Query()

	// 1. Ошибка от провайдера (отказ пользователя и т.п.)
	if errCode := query.Get("error"); errCode != "" {
		return nil, errors.New("провайдер вернул ошибку: " + errCode)
	}

	code := query.Get("code")
	state := query.Get("state")
	if code == "" || state == "" {
		return nil, errors.New("отсутствует code или state")
	}

	// 2. State cookie и CSRF-проверка
	sd, err := readStateCookie(r)
	if err != nil {
		return nil, err
	}
	if sd.State != state {
		return nil, errors.New("state mismatch")
	}

	// 3. Обмен code на tokens
	tokens, err := h.oauth.ExchangeCode(r.Context(), code, sd.CodeVerifier)
	if err != nil {
		return nil, err
	}

	// 4. Проверка id_token
	identity, err := h.verifier.Verify(r.Context(), tokens.IDToken)
	if err != nil {
		return nil, err
	}

	// 5. Поиск администратора по email
	return h.resolver.Resolve(r.Context(), identity.Email)
}

// readStateCookie извлекает и декодирует state cookie.
func readStateCookie(r *http.Request) (*stateData, error) {
	cookie, err := r.Cookie(stateCookieName)
	if err != nil {
		return nil, errors.New("state cookie отсутствует")
	}

	raw, err := base64.URLEncoding.DecodeString(cookie.Value)
	if err != nil {
		return nil, errors.New("некорректный state cookie")
	}

	var sd stateData
	if err := json.Unmarshal(raw, &sd); err != nil {
		return nil, errors.New("некорректный state cookie")
	}
	return &sd, nil
}

// HandleLogout — GET /logout
// Очищает session cookie, redirect на главную.
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	h.sessions.ClearSessionCookie(w)
	h.logger.Info("Администратор вышел")
	http.Redirect(w, r, "/", http.StatusFound)
}

// setStateCookie устанавливает (maxAge > 0) или удаляет (maxAge < 0) state cookie.
func (h *AuthHandler) setStateCookie(w http.ResponseWriter, value string, maxAge int) {
	http.SetCookie(w, &http.Cookie{
		Name:     stateCookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   h.sessions.Secure(),
		SameSite: http.SameSiteLaxMode,
	})
}
