// recover.go — перехват паник обработчиков и страница 500.
package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/bigkaa/billboard-acp/internal/ui/pages"
)

// Recover возвращает middleware, которое перехватывает панику обработчика,
// логирует её и отвечает страницей 500.
func Recover(logger *slog.Logger) func(http.Handler) http.Handler {
	log := logger.With(slog.String("component", "ui_recover"))

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				// Прерывание ответа сервером — не ошибка обработчика
				if rec == http.ErrAbortHandler { //nolint:errorlint // сравнение значения паники
					panic(rec)
				}

				log.Error("Паника в обработчике",
					slog.String("method", r.Method),
					slog.String("path", r.URL.Path),
					slog.String("panic", fmt.Sprint(rec)),
					slog.String("stack", string(debug.Stack())),
				)
				RenderServerError(w, r, log)
			}()

			next.ServeHTTP(w, r)
		})
	}
}

// RenderServerError отвечает страницей 500.
func RenderServerError(w http.ResponseWriter, r *http.Request, logger *slog.Logger) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusInternalServerError)
	page := pages.ErrorPage(http.StatusInternalServerError, "", PrincipalFromContext(r.Context()))
	if err := page.Render(r.Context(), w); err != nil {
		logger.Error("Ошибка рендеринга страницы 500", slog.String("error", err.Error()))
	}
}
