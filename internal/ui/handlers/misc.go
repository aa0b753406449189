// misc.go — главная, /ping, /protected и страницы ошибок.
package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	uimiddleware "github.com/bigkaa/billboard-acp/internal/ui/middleware"
	"github.com/bigkaa/billboard-acp/internal/ui/pages"
)

// PagesHandler — страницы без сущностей.
type PagesHandler struct {
	logger *slog.Logger
}

// NewPagesHandler создаёт новый PagesHandler.
func NewPagesHandler(logger *slog.Logger) *PagesHandler {
	return &PagesHandler{
		logger: logger.With(slog.String("component", "ui.pages")),
	}
}

// HandleHome — GET /
func (h *PagesHandler) HandleHome(w http.ResponseWriter, r *http.Request) {
	principal := uimiddleware.PrincipalFromContext(r.Context())
	renderPage(w, r, http.StatusOK, pages.Home(principal), h.logger)
}

// HandlePing — GET /ping
func (h *PagesHandler) HandlePing(w http.ResponseWriter, _ *http.Request) {
	h.logger.Debug("Ping получен")
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("Pong!"))
}

// protectedResponse — ответ /protected.
type protectedResponse struct {
	Message      string `json:"message"`
	YourUserInfo any    `json:"yourUserInfo"`
}

// HandleProtected — GET /protected (защищённый)
// Возвращает данные администратора из сессии.
func (h *PagesHandler) HandleProtected(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(protectedResponse{
		Message:      "You have accessed the protected endpoint!",
		YourUserInfo: uimiddleware.PrincipalFromContext(r.Context()),
	})
}

// HandleUnauthorized — GET /unauthorized
// Вход выполнен, но учётная запись не зарегистрирована в ACP.
func (h *PagesHandler) HandleUnauthorized(w http.ResponseWriter, r *http.Request) {
	principal := uimiddleware.PrincipalFromContext(r.Context())
	renderPage(w, r, http.StatusForbidden, pages.ErrorPage(http.StatusForbidden, pages.MsgNotProvisioned, principal), h.logger)
}

// HandleNotFound — страница 404 для всех несовпавших маршрутов.
func (h *PagesHandler) HandleNotFound(w http.ResponseWriter, r *http.Request) {
	principal := uimiddleware.PrincipalFromContext(r.Context())
	renderPage(w, r, http.StatusNotFound, pages.ErrorPage(http.StatusNotFound, "", principal), h.logger)
}
