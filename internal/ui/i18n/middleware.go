// middleware.go — определение языка запроса.
package i18n

import (
	"net/http"
)

// LangCookieName — cookie с выбранным языком.
const LangCookieName = "lang"

// Middleware кладёт в контекст каталог и язык запроса.
// Приоритет: cookie "lang" → Accept-Language → DefaultLang.
func (c *Catalog) Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(c.WithLang(r.Context(), c.detect(r))))
		})
	}
}

func (c *Catalog) detect(r *http.Request) string {
	if cookie, err := r.Cookie(LangCookieName); err == nil && c.Supports(cookie.Value) {
		return cookie.Value
	}
	if accept := r.Header.Get("Accept-Language"); accept != "" {
		return c.Match(accept)
	}
	return DefaultLang
}
