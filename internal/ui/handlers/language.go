// language.go — обработчик переключения языка UI.
package handlers

import (
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/bigkaa/billboard-acp/internal/ui/i18n"
)

// LanguageHandler — переключение языка.
type LanguageHandler struct {
	catalog *i18n.Catalog
}

// NewLanguageHandler создаёт новый LanguageHandler.
func NewLanguageHandler(catalog *i18n.Catalog) *LanguageHandler {
	return &LanguageHandler{catalog: catalog}
}

// HandleSetLanguage обрабатывает GET /lang/{lang}.
// Устанавливает cookie "lang" и перенаправляет обратно.
// Язык без каталога заменяется на язык по умолчанию.
func (h *LanguageHandler) HandleSetLanguage(w http.ResponseWriter, r *http.Request) {
	lang := chi.URLParam(r, "lang")
	if !h.catalog.Supports(lang) {
		lang = i18n.DefaultLang
	}

	// Устанавливаем cookie "lang" на 1 год
	http.SetCookie(w, &http.Cookie{
		Name:     i18n.LangCookieName,
		Value:    lang,
		Path:     "/",
		MaxAge:   365 * 24 * 60 * 60, // 1 год
		HttpOnly: false,              // JS может читать для UI-логики
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Now().Add(365 * 24 * time.Hour),
	})

	http.Redirect(w, r, sameSiteReferer(r), http.StatusSeeOther)
}

// sameSiteReferer возвращает локальный путь из Referer того же хоста или "/".
// Пути вида "//host" и "/\host" браузер трактует как другой хост.
func sameSiteReferer(r *http.Request) string {
	ref, err := url.Parse(r.Header.Get("Referer"))
	if err != nil || (ref.Host != "" && ref.Host != r.Host) {
		return "/"
	}

	p := ref.Path
	if !strings.HasPrefix(p, "/") || strings.HasPrefix(p, "//") || strings.HasPrefix(p, "/\\") {
		return "/"
	}
	if ref.RawQuery != "" {
		return p + "?" + ref.RawQuery
	}
	return p
}
