// professors.go — список и форма преподавателей.
package pages

import (
	"github.com/a-h/templ"

	"github.com/bigkaa/billboard-acp/internal/domain/model"
)

// ProfessorsManage — таблица преподавателей.
// departments — индекс кафедр по ID для вывода краткого кода.
func ProfessorsManage(principal *model.User, professors []model.Professor, departments map[string]model.Department) templ.Component {
	body := render(func(hw *htmlWriter) {
		manageHeader(hw, "professors.title", "/data/add")
		hw.raw("<table><thead><tr>")
		for _, key := range []string{"field.name", "field.department", "field.email", "field.room", "field.hours", "field.phone", "field.website"} {
			hw.raw("<th>")
			hw.t(key)
			hw.raw("</th>")
		}
		hw.raw("<th></th></tr></thead><tbody>")
		for _, p := range professors {
			hw.raw("<tr><td>")
			hw.text(p.Name)
			hw.raw("</td><td>")
			// Ссылка на удалённую кафедру показывается пустой
			if d, ok := departments[p.Department]; ok {
				hw.raw("<abbr")
				hw.attr("title", d.Name)
				hw.raw(">")
				hw.text(d.ShortName)
				hw.raw("</abbr>")
			}
			hw.raw("</td><td>")
			hw.text(p.Email)
			hw.raw("</td><td>")
			hw.text(p.Room)
			hw.raw("</td><td>")
			hw.text(p.Hours)
			hw.raw("</td><td>")
			hw.text(p.Phone)
			hw.raw("</td><td>")
			if p.Website != "" {
				hw.raw(`<a rel="noopener" target="_blank"`)
				hw.href(p.Website)
				hw.raw(">")
				hw.text(p.Website)
				hw.raw("</a>")
			}
			hw.raw("</td>")
			rowActions(hw, "/data", p.ID)
			hw.raw("</tr>")
		}
		hw.raw("</tbody></table>")
		emptyNote(hw, len(professors))
	})
	return Layout("professors.title", principal, body)
}

// ProfessorForm — форма добавления (professor == nil) или изменения преподавателя.
// departments — варианты выбора кафедры.
func ProfessorForm(principal *model.User, professor *model.Professor, departments []model.Department) templ.Component {
	var p model.Professor
	if professor != nil {
		p = *professor
	}
	options := make([]selectOption, 0, len(departments))
	for _, d := range departments {
		options = append(options, selectOption{value: d.ID, label: d.ShortName + " — " + d.Name})
	}

	body := render(func(hw *htmlWriter) {
		f := newForm(hw, "/data", professor != nil, true)
		f.open("professors")
		f.hidden("id", p.ID)
		f.input("name", "field.name", "text", p.Name)
		f.input("email", "field.email", "email", p.Email)
		f.input("hours", "field.hours", "text", p.Hours)
		f.input("room", "field.room", "text", p.Room)
		f.input("phone", "field.phone", "tel", p.Phone)
		f.input("website", "field.website", "url", p.Website)
		f.selectField("department", "field.department", options, p.Department)
		f.close("/data/manage")
	})
	return Layout(formTitle("professors", professor != nil), principal, body)
}
