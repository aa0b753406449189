// Пакет pages — серверные страницы Billboard ACP на компонентах templ.
// Все страницы рендерятся внутри Layout; текст интерфейса берётся из
// каталогов i18n, пользовательские данные экранируются.
package pages

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"github.com/bigkaa/billboard-acp/internal/ui/i18n"
)

// htmlWriter — запись HTML с накоплением первой ошибки.
type htmlWriter struct {
	ctx context.Context
	w   io.Writer
	err error
}

// raw пишет строку как есть (только разметка из кода).
func (hw *htmlWriter) raw(s string) {
	if hw.err != nil {
		return
	}
	_, hw.err = io.WriteString(hw.w, s)
}

// text пишет экранированный текст.
func (hw *htmlWriter) text(s string) {
	hw.raw(templ.EscapeString(s))
}

// attr пишет атрибут с экранированным значением: ` name="value"`.
func (hw *htmlWriter) attr(name, value string) {
	hw.raw(" " + name + `="`)
	hw.text(value)
	hw.raw(`"`)
}

// href пишет атрибут href с проверкой схемы URL.
func (hw *htmlWriter) href(u string) {
	hw.attr("href", string(templ.URL(u)))
}

// component рендерит вложенный компонент.
func (hw *htmlWriter) component(c templ.Component) {
	if hw.err != nil || c == nil {
		return
	}
	hw.err = c.Render(hw.ctx, hw.w)
}

// render создаёт templ-компонент из функции записи HTML.
func render(fn func(hw *htmlWriter)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := &htmlWriter{ctx: ctx, w: w}
		fn(hw)
		return hw.err
	})
}

// t пишет перевод ключа на языке запроса.
func (hw *htmlWriter) t(key string) {
	hw.text(i18n.T(hw.ctx, key))
}
