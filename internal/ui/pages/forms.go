// forms.go — общие элементы страниц списков и форм.
package pages

// formTitle возвращает ключ заголовка формы: "<entity>.add" или "<entity>.edit".
func formTitle(entity string, edit bool) string {
	if edit {
		return entity + ".edit"
	}
	return entity + ".add"
}

// manageHeader — заголовок списка и кнопка добавления.
func manageHeader(hw *htmlWriter, titleKey, addHref string) {
	hw.raw(`<header class="page-header"><h1>`)
	hw.t(titleKey)
	hw.raw(`</h1><a class="button"`)
	hw.attr("href", addHref)
	hw.raw(">")
	hw.t("action.add")
	hw.raw("</a></header>")
}

// rowActions — ячейка со ссылками изменения и удаления записи.
func rowActions(hw *htmlWriter, base, id string) {
	hw.raw(`<td class="actions"><a`)
	hw.attr("href", base+"/edit/"+id)
	hw.raw(">")
	hw.t("action.edit")
	hw.raw(`</a> <a class="danger"`)
	hw.attr("href", base+"/delete/"+id)
	hw.raw(">")
	hw.t("action.delete")
	hw.raw("</a></td>")
}

// emptyNote — подсказка под пустой таблицей.
func emptyNote(hw *htmlWriter, n int) {
	if n > 0 {
		return
	}
	hw.raw(`<p class="empty">`)
	hw.t("list.empty")
	hw.raw("</p>")
}

// selectOption — вариант выпадающего списка.
type selectOption struct {
	value string
	label string
}

// form — построитель формы добавления/изменения.
type form struct {
	hw        *htmlWriter
	base      string
	edit      bool
	multipart bool
}

func newForm(hw *htmlWriter, base string, edit, multipart bool) *form {
	return &form{hw: hw, base: base, edit: edit, multipart: multipart}
}

// open пишет заголовок и открывающий тег формы.
// Форма отправляется на <base>/edit при изменении и на <base>/add при добавлении.
func (f *form) open(entity string) {
	hw := f.hw
	hw.raw("<h1>")
	hw.t(formTitle(entity, f.edit))
	hw.raw(`</h1><form class="entity-form" method="post"`)
	action := f.base + "/add"
	if f.edit {
		action = f.base + "/edit"
	}
	hw.attr("action", action)
	if f.multipart {
		hw.raw(` enctype="multipart/form-data"`)
	}
	hw.raw(">")
}

// hidden пишет скрытое поле; только для формы изменения.
func (f *form) hidden(name, value string) {
	if !f.edit {
		return
	}
	f.hw.raw(`<input type="hidden"`)
	f.hw.attr("name", name)
	f.hw.attr("value", value)
	f.hw.raw(">")
}

// label пишет подпись поля.
func (f *form) label(name, labelKey string) {
	f.hw.raw("<label")
	f.hw.attr("for", name)
	f.hw.raw(">")
	f.hw.t(labelKey)
	f.hw.raw("</label>")
}

// input пишет текстовое поле с подписью.
func (f *form) input(name, labelKey, typ, value string) {
	hw := f.hw
	hw.raw(`<div class="field">`)
	f.label(name, labelKey)
	hw.raw("<input")
	hw.attr("type", typ)
	hw.attr("id", name)
	hw.attr("name", name)
	hw.attr("value", value)
	hw.raw("></div>")
}

// selectField пишет выпадающий список с пустым вариантом.
func (f *form) selectField(name, labelKey string, options []selectOption, selected string) {
	hw := f.hw
	hw.raw(`<div class="field">`)
	f.label(name, labelKey)
	hw.raw("<select")
	hw.attr("id", name)
	hw.attr("name", name)
	hw.raw(`><option value="">—</option>`)
	for _, opt := range options {
		hw.raw("<option")
		hw.attr("value", opt.value)
		if opt.value == selected {
			hw.raw(" selected")
		}
		hw.raw(">")
		hw.text(opt.label)
		hw.raw("</option>")
	}
	hw.raw("</select></div>")
}

// file пишет поле выбора изображения.
func (f *form) file(name, labelKey string) {
	hw := f.hw
	hw.raw(`<div class="field">`)
	f.label(name, labelKey)
	hw.raw(`<input type="file" accept="image/*"`)
	hw.attr("id", name)
	hw.attr("name", name)
	hw.raw("></div>")
}

// close пишет кнопки и закрывающий тег формы.
func (f *form) close(cancelHref string) {
	hw := f.hw
	hw.raw(`<div class="buttons"><button type="submit">`)
	hw.t("action.save")
	hw.raw("</button> <a")
	hw.attr("href", cancelHref)
	hw.raw(">")
	hw.t("action.cancel")
	hw.raw("</a></div></form>")
}
