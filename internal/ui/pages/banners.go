// banners.go — список и форма баннеров.
package pages

import (
	"github.com/a-h/templ"

	"github.com/bigkaa/billboard-acp/internal/domain/model"
)

// ImageURLFunc строит URL превью изображения по его имени в Image API.
type ImageURLFunc func(imageName string) string

// bannerPreview — миниатюра изображения баннера.
func bannerPreview(hw *htmlWriter, b *model.Banner, imageURL ImageURLFunc) {
	if !b.HasImage() || imageURL == nil {
		hw.raw(`<span class="no-image">`)
		hw.t("banners.no_image")
		hw.raw("</span>")
		return
	}
	hw.raw(`<img class="preview"`)
	hw.attr("src", string(templ.URL(imageURL(b.ImageName))))
	hw.attr("alt", b.Name)
	hw.raw(">")
}

// BannersManage — таблица баннеров с превью изображений.
func BannersManage(principal *model.User, banners []model.Banner, imageURL ImageURLFunc) templ.Component {
	body := render(func(hw *htmlWriter) {
		manageHeader(hw, "banners.title", "/banners/add")
		hw.raw("<table><thead><tr><th>")
		hw.t("field.image")
		hw.raw("</th><th>")
		hw.t("field.name")
		hw.raw("</th><th></th></tr></thead><tbody>")
		for i := range banners {
			b := &banners[i]
			hw.raw("<tr><td>")
			bannerPreview(hw, b, imageURL)
			hw.raw("</td><td>")
			hw.text(b.Name)
			hw.raw("</td>")
			rowActions(hw, "/banners", b.ID)
			hw.raw("</tr>")
		}
		hw.raw("</tbody></table>")
		emptyNote(hw, len(banners))
	})
	return Layout("banners.title", principal, body)
}

// BannerForm — форма добавления (banner == nil) или изменения баннера.
// При изменении новый файл заменяет содержимое текущего изображения.
func BannerForm(principal *model.User, banner *model.Banner, imageURL ImageURLFunc) templ.Component {
	var b model.Banner
	if banner != nil {
		b = *banner
	}
	body := render(func(hw *htmlWriter) {
		f := newForm(hw, "/banners", banner != nil, true)
		f.open("banners")
		f.hidden("id", b.ID)
		f.input("name", "field.name", "text", b.Name)
		if banner != nil {
			hw.raw(`<div class="field">`)
			bannerPreview(hw, &b, imageURL)
			hw.raw("</div>")
		}
		f.file("file", "field.image")
		f.close("/banners/manage")
	})
	return Layout(formTitle("banners", banner != nil), principal, body)
}
