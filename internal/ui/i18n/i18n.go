// Пакет i18n — перевод интерфейса Billboard ACP.
// Catalog загружается один раз при старте из locales/*.json и передаётся
// в роутер; Middleware кладёт в контекст запроса каталог и выбранный язык,
// страницы получают строки через T(ctx, key) и Tf(ctx, key, args...).
package i18n

import (
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"log/slog"
	"path"
	"slices"
	"strings"

	"golang.org/x/text/language"
)

// DefaultLang — язык по умолчанию и fallback для отсутствующих ключей.
const DefaultLang = "en"

// Catalog — переводы всех языков. После Load только читается.
type Catalog struct {
	// messages — lang → key → перевод
	messages map[string]map[string]string
	// langs — коды языков; DefaultLang первым (fallback matcher)
	langs   []string
	matcher language.Matcher
}

// Load загружает встроенные каталоги. Код языка — имя файла (en.json → en).
func Load(logger *slog.Logger) (*Catalog, error) {
	return loadFS(LocaleFS, logger)
}

func loadFS(fsys fs.FS, logger *slog.Logger) (*Catalog, error) {
	paths, err := fs.Glob(fsys, "locales/*.json")
	if err != nil {
		return nil, fmt.Errorf("i18n: поиск каталогов: %w", err)
	}

	c := &Catalog{messages: make(map[string]map[string]string, len(paths))}
	for _, p := range paths {
		lang := strings.TrimSuffix(path.Base(p), ".json")

		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			return nil, fmt.Errorf("i18n: не удалось прочитать %s: %w", p, err)
		}
		var messages map[string]string
		if err := json.Unmarshal(data, &messages); err != nil {
			return nil, fmt.Errorf("i18n: ошибка парсинга каталога %s: %w", lang, err)
		}
		c.messages[lang] = messages
		c.langs = append(c.langs, lang)
	}

	if _, ok := c.messages[DefaultLang]; !ok {
		return nil, fmt.Errorf("i18n: нет каталога языка по умолчанию %s", DefaultLang)
	}

	slices.SortFunc(c.langs, func(a, b string) int {
		switch {
		case a == DefaultLang:
			return -1
		case b == DefaultLang:
			return 1
		}
		return strings.Compare(a, b)
	})

	tags := make([]language.Tag, len(c.langs))
	for i, lang := range c.langs {
		tags[i] = language.Make(lang)
	}
	c.matcher = language.NewMatcher(tags)

	logger.Info("Каталоги переводов загружены", slog.Any("languages", c.langs))
	return c, nil
}

// Languages возвращает коды загруженных языков.
func (c *Catalog) Languages() []string {
	return slices.Clone(c.langs)
}

// Supports сообщает, есть ли каталог для языка.
func (c *Catalog) Supports(lang string) bool {
	_, ok := c.messages[lang]
	return ok
}

// Text возвращает перевод; отсутствующий ключ ищется в DefaultLang,
// затем возвращается сам ключ.
func (c *Catalog) Text(lang, key string) string {
	if msg, ok := c.messages[lang][key]; ok {
		return msg
	}
	if msg, ok := c.messages[DefaultLang][key]; ok {
		return msg
	}
	return key
}

// Textf — Text с подстановкой аргументов через fmt.Sprintf.
func (c *Catalog) Textf(lang, key string, args ...any) string {
	return fmt.Sprintf(c.Text(lang, key), args...)
}

// Match выбирает язык по заголовку Accept-Language.
func (c *Catalog) Match(acceptLanguage string) string {
	_, idx := language.MatchStrings(c.matcher, acceptLanguage)
	return c.langs[idx]
}

// --- Язык запроса ---

type contextKey struct{}

// localizer — каталог и язык текущего запроса.
type localizer struct {
	catalog *Catalog
	lang    string
}

// WithLang помещает каталог и язык в контекст.
func (c *Catalog) WithLang(ctx context.Context, lang string) context.Context {
	return context.WithValue(ctx, contextKey{}, localizer{catalog: c, lang: lang})
}

// LangFromContext возвращает язык запроса или DefaultLang.
func LangFromContext(ctx context.Context) string {
	if l, ok := ctx.Value(contextKey{}).(localizer); ok {
		return l.lang
	}
	return DefaultLang
}

// T возвращает перевод ключа на язык запроса.
// Без каталога в контексте возвращается ключ.
func T(ctx context.Context, key string) string {
	l, ok := ctx.Value(contextKey{}).(localizer)
	if !ok {
		return key
	}
	return l.catalog.Text(l.lang, key)
}

// Tf — T с подстановкой аргументов.
func Tf(ctx context.Context, key string, args ...any) string {
	l, ok := ctx.Value(contextKey{}).(localizer)
	if !ok {
		return key
	}
	return l.catalog.Textf(l.lang, key, args...)
}
