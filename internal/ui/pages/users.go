// users.go — список и форма администраторов.
package pages

import (
	"github.com/a-h/templ"

	"github.com/bigkaa/billboard-acp/internal/domain/model"
)

// UsersManage — таблица администраторов.
func UsersManage(principal *model.User, users []model.User) templ.Component {
	body := render(func(hw *htmlWriter) {
		manageHeader(hw, "users.title", "/users/add")
		hw.raw("<table><thead><tr><th>")
		hw.t("field.name")
		hw.raw("</th><th>")
		hw.t("field.email")
		hw.raw("</th><th></th></tr></thead><tbody>")
		for _, u := range users {
			hw.raw("<tr><td>")
			hw.text(u.Name)
			hw.raw("</td><td>")
			hw.text(u.Email)
			hw.raw("</td>")
			rowActions(hw, "/users", u.ID)
			hw.raw("</tr>")
		}
		hw.raw("</tbody></table>")
		emptyNote(hw, len(users))
	})
	return Layout("users.title", principal, body)
}

// UserForm — форма добавления (user == nil) или изменения администратора.
func UserForm(principal *model.User, user *model.User) templ.Component {
	var u model.User
	if user != nil {
		u = *user
	}
	body := render(func(hw *htmlWriter) {
		f := newForm(hw, "/users", user != nil, false)
		f.open("users")
		f.hidden("id", u.ID)
		f.input("name", "field.name", "text", u.Name)
		f.input("email", "field.email", "email", u.Email)
		f.close("/users/manage")
	})
	return Layout(formTitle("users", user != nil), principal, body)
}
