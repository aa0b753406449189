// layout.go — общий каркас страниц, главная и страницы ошибок.
package pages

import (
	"net/http"
	"strconv"

	"github.com/a-h/templ"

	"github.com/bigkaa/billboard-acp/internal/domain/model"
	"github.com/bigkaa/billboard-acp/internal/ui/i18n"
)

// Фиксированные сообщения страниц 403 (не переводятся).
const (
	// MsgLoginRequired — запрос к защищённому маршруту без сессии.
	MsgLoginRequired = "You must be logged in to continue"
	// MsgNotProvisioned — вход выполнен, но email не найден среди администраторов.
	MsgNotProvisioned = "You have not been given access to the ECAMS Billboard ACP. Please contact an administrator for access."
)

// navItem — пункт меню администратора.
type navItem struct {
	href string
	key  string
}

var navItems = []navItem{
	{"/users/manage", "nav.users"},
	{"/data/manage", "nav.professors"},
	{"/departments/manage", "nav.departments"},
	{"/banners/manage", "nav.banners"},
}

// Layout — каркас страницы: head, навигация, блок пользователя, содержимое.
// principal == nil — посетитель не вошёл.
func Layout(titleKey string, principal *model.User, body templ.Component) templ.Component {
	return render(func(hw *htmlWriter) {
		hw.raw("<!DOCTYPE html>\n<html")
		hw.attr("lang", i18n.LangFromContext(hw.ctx))
		hw.raw(`><head><meta charset="utf-8"><meta name="viewport" content="width=device-width, initial-scale=1">`)
		hw.raw("<title>")
		hw.t(titleKey)
		hw.raw(" · ECAMS Billboard ACP</title>")
		hw.raw(`<link rel="stylesheet" href="/static/css/acp.css"></head><body>`)

		hw.raw(`<nav class="nav"><a class="brand" href="/">ECAMS Billboard ACP</a><ul>`)
		if principal != nil {
			for _, item := range navItems {
				hw.raw("<li><a")
				hw.attr("href", item.href)
				hw.raw(">")
				hw.t(item.key)
				hw.raw("</a></li>")
			}
		}
		hw.raw(`</ul><div class="account">`)
		if principal != nil {
			hw.raw(`<span class="principal">`)
			hw.text(principal.Name)
			hw.raw(`</span> <a href="/logout">`)
			hw.t("nav.logout")
			hw.raw("</a>")
		} else {
			hw.raw(`<a href="/login">`)
			hw.t("nav.login")
			hw.raw("</a>")
		}
		hw.raw(` <a class="lang" href="/lang/en">EN</a> <a class="lang" href="/lang/ru">RU</a>`)
		hw.raw("</div></nav>")

		hw.raw(`<main class="content">`)
		hw.component(body)
		hw.raw("</main></body></html>")
	})
}

// Home — главная страница.
func Home(principal *model.User) templ.Component {
	body := render(func(hw *htmlWriter) {
		hw.raw("<h1>")
		hw.t("home.title")
		hw.raw("</h1>")
		if principal == nil {
			hw.raw("<p>")
			hw.t("home.guest")
			hw.raw(` <a href="/login">`)
			hw.t("nav.login")
			hw.raw("</a></p>")
			return
		}
		hw.raw("<p>")
		hw.text(i18n.Tf(hw.ctx, "home.welcome", principal.Name))
		hw.raw(`</p><ul class="tiles">`)
		for _, item := range navItems {
			hw.raw("<li><a")
			hw.attr("href", item.href)
			hw.raw(">")
			hw.t(item.key)
			hw.raw("</a></li>")
		}
		hw.raw("</ul>")
	})
	return Layout("home.title", principal, body)
}

// ErrorPage — страница ошибки 403, 404 или 500.
// message — дополнительный текст (для 403 обязателен).
func ErrorPage(status int, message string, principal *model.User) templ.Component {
	key := "error." + strconv.Itoa(status)
	body := render(func(hw *htmlWriter) {
		hw.raw(`<section class="error"><h1>`)
		hw.text(strconv.Itoa(status))
		hw.raw(" ")
		hw.text(http.StatusText(status))
		hw.raw("</h1><p>")
		if message != "" {
			hw.text(message)
		} else {
			hw.t(key)
		}
		hw.raw(`</p><p><a href="/">`)
		hw.t("error.home")
		hw.raw("</a></p></section>")
	})
	return Layout(key, principal, body)
}
