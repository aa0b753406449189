// Пакет handlers — HTTP-обработчики страниц ACP.
// Защищённые маршруты вызываются только после SessionGuard.Require,
// поэтому администратор в контексте запроса всегда есть.
package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/a-h/templ"

	uimiddleware "github.com/bigkaa/billboard-acp/internal/ui/middleware"
)

// maxFormMemory — лимит памяти для multipart-форм, остальное уходит во временные файлы.
const maxFormMemory = 32 << 20

// renderPage пишет HTML-страницу с указанным статусом.
func renderPage(w http.ResponseWriter, r *http.Request, status int, page templ.Component, logger *slog.Logger) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := page.Render(r.Context(), w); err != nil {
		logger.Error("Ошибка рендеринга страницы",
			slog.String("path", r.URL.Path),
			slog.String("error", err.Error()),
		)
	}
}

// serverError логирует ошибку и отвечает страницей 500.
func serverError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, msg string, err error) {
	logger.Error(msg,
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		slog.String("error", err.Error()),
	)
	uimiddleware.RenderServerError(w, r, logger)
}

// parseForm разбирает тело формы: multipart/form-data или urlencoded.
func parseForm(r *http.Request) error {
	err := r.ParseMultipartForm(maxFormMemory)
	if errors.Is(err, http.ErrNotMultipart) {
		// ParseMultipartForm уже разобрал urlencoded-тело
		return nil
	}
	return err
}

// redirect — 302 на страницу списка.
func redirect(w http.ResponseWriter, r *http.Request, to string) {
	http.Redirect(w, r, to, http.StatusFound)
}
