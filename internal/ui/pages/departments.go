// departments.go — список и форма кафедр.
package pages

import (
	"github.com/a-h/templ"

	"github.com/bigkaa/billboard-acp/internal/domain/model"
)

// DepartmentsManage — таблица кафедр.
func DepartmentsManage(principal *model.User, departments []model.Department) templ.Component {
	body := render(func(hw *htmlWriter) {
		manageHeader(hw, "departments.title", "/departments/add")
		hw.raw("<table><thead><tr><th>")
		hw.t("field.name")
		hw.raw("</th><th>")
		hw.t("field.short_name")
		hw.raw("</th><th></th></tr></thead><tbody>")
		for _, d := range departments {
			hw.raw("<tr><td>")
			hw.text(d.Name)
			hw.raw("</td><td>")
			hw.text(d.ShortName)
			hw.raw("</td>")
			rowActions(hw, "/departments", d.ID)
			hw.raw("</tr>")
		}
		hw.raw("</tbody></table>")
		emptyNote(hw, len(departments))
	})
	return Layout("departments.title", principal, body)
}

// DepartmentForm — форма добавления (department == nil) или изменения кафедры.
func DepartmentForm(principal *model.User, department *model.Department) templ.Component {
	var d model.Department
	if department != nil {
		d = *department
	}
	body := render(func(hw *htmlWriter) {
		f := newForm(hw, "/departments", department != nil, false)
		f.open("departments")
		f.hidden("id", d.ID)
		f.input("name", "field.name", "text", d.Name)
		f.input("short_name", "field.short_name", "text", d.ShortName)
		f.close("/departments/manage")
	})
	return Layout(formTitle("departments", department != nil), principal, body)
}
