package i18n

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"slices"
	"testing"
	"testing/fstest"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func loadCatalog(t *testing.T) *Catalog {
	t.Helper()
	c, err := Load(testLogger())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	return c
}

// TestCatalogsHaveSameKeys проверяет, что все каталоги содержат ключи каталога по умолчанию и только их.
func TestCatalogsHaveSameKeys(t *testing.T) {
	c := loadCatalog(t)
	base := c.messages[DefaultLang]

	for _, lang := range c.Languages() {
		for key := range base {
			if _, ok := c.messages[lang][key]; !ok {
				t.Errorf("ключ %q отсутствует в %s.json", key, lang)
			}
		}
		for key := range c.messages[lang] {
			if _, ok := base[key]; !ok {
				t.Errorf("лишний ключ %q в %s.json", key, lang)
			}
		}
	}
}

func TestLoad_LanguagesFromFiles(t *testing.T) {
	c := loadCatalog(t)
	if got := c.Languages(); !slices.Equal(got, []string{"en", "ru"}) {
		t.Errorf("Languages() = %v, ожидается [en ru]", got)
	}
	if !c.Supports("ru") || c.Supports("de") {
		t.Error("Supports не соответствует набору каталогов")
	}
}

func TestLoadFS(t *testing.T) {
	tests := []struct {
		name    string
		fsys    fstest.MapFS
		wantErr bool
		langs   []string
	}{
		{
			name: "язык по умолчанию первым",
			fsys: fstest.MapFS{
				"locales/de.json": {Data: []byte(`{"a":"A-de"}`)},
				"locales/en.json": {Data: []byte(`{"a":"A"}`)},
			},
			langs: []string{"en", "de"},
		},
		{
			name:    "нет каталога по умолчанию",
			fsys:    fstest.MapFS{"locales/ru.json": {Data: []byte(`{}`)}},
			wantErr: true,
		},
		{
			name: "битый JSON",
			fsys: fstest.MapFS{
				"locales/en.json": {Data: []byte(`{"a":`)},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := loadFS(tt.fsys, testLogger())
			if tt.wantErr {
				if err == nil {
					t.Fatal("ожидалась ошибка")
				}
				return
			}
			if err != nil {
				t.Fatalf("loadFS: %v", err)
			}
			if got := c.Languages(); !slices.Equal(got, tt.langs) {
				t.Errorf("Languages() = %v, ожидается %v", got, tt.langs)
			}
		})
	}
}

func TestCatalogTextFallback(t *testing.T) {
	c, err := loadFS(fstest.MapFS{
		"locales/en.json": {Data: []byte(`{"a":"A","b":"B %s"}`)},
		"locales/ru.json": {Data: []byte(`{"a":"А"}`)},
	}, testLogger())
	if err != nil {
		t.Fatalf("loadFS: %v", err)
	}

	tests := []struct {
		lang, key, want string
	}{
		{"ru", "a", "А"},
		{"ru", "b", "B %s"}, // fallback на en
		{"en", "missing", "missing"},
		{"xx", "a", "A"},
	}
	for _, tt := range tests {
		if got := c.Text(tt.lang, tt.key); got != tt.want {
			t.Errorf("Text(%q, %q) = %q, ожидается %q", tt.lang, tt.key, got, tt.want)
		}
	}
	if got := c.Textf("ru", "b", "x"); got != "B x" {
		t.Errorf("Textf = %q, ожидается %q", got, "B x")
	}
}

func TestTWithContext(t *testing.T) {
	c := loadCatalog(t)

	ctx := c.WithLang(context.Background(), "ru")
	if got := T(ctx, "nav.banners"); got != "Баннеры" {
		t.Errorf("T(ru, nav.banners) = %q", got)
	}
	if got := Tf(c.WithLang(context.Background(), "en"), "home.welcome", "Ada"); got != "Welcome, Ada. Choose what to manage:" {
		t.Errorf("Tf(en, home.welcome) = %q", got)
	}

	// Без каталога в контексте — ключ без подстановки
	if got := Tf(context.Background(), "home.welcome", "Ada"); got != "home.welcome" {
		t.Errorf("Tf без каталога = %q", got)
	}
	if got := LangFromContext(context.Background()); got != DefaultLang {
		t.Errorf("LangFromContext без каталога = %q", got)
	}
}

func TestMiddlewareDetectsLanguage(t *testing.T) {
	c := loadCatalog(t)

	tests := []struct {
		name   string
		cookie string
		accept string
		want   string
	}{
		{"cookie ru", "ru", "en-US", "ru"},
		{"неизвестный cookie", "de", "ru-RU,ru;q=0.9", "ru"},
		{"Accept-Language", "", "ru-RU,ru;q=0.9,en;q=0.8", "ru"},
		{"неподдерживаемый Accept-Language", "", "fr-FR", "en"},
		{"по умолчанию", "", "", "en"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got, nav string
			h := c.Middleware()(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
				got = LangFromContext(r.Context())
				nav = T(r.Context(), "nav.users")
			}))

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: LangCookieName, Value: tt.cookie})
			}
			if tt.accept != "" {
				req.Header.Set("Accept-Language", tt.accept)
			}
			h.ServeHTTP(httptest.NewRecorder(), req)

			if got != tt.want {
				t.Errorf("язык = %q, ожидается %q", got, tt.want)
			}
			if nav == "nav.users" {
				t.Error("T вернул ключ вместо перевода")
			}
		})
	}
}
