// banners.go — управление баннерами (/banners/*).
// Изображения хранятся во внешнем Image API, см. service.BannerService.
package handlers

import (
	"errors"
	"log/slog"
	"mime/multipart"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/bigkaa/billboard-acp/internal/service"
	uimiddleware "github.com/bigkaa/billboard-acp/internal/ui/middleware"
	"github.com/bigkaa/billboard-acp/internal/ui/pages"
)

const bannersManagePath = "/banners/manage"

// MsgImageUploadFailed — ответ на неудачную загрузку изображения при создании баннера.
const MsgImageUploadFailed = "An error occured while trying to upload an image."

// BannersHandler — обработчики страниц баннеров.
type BannersHandler struct {
	banners  *service.BannerService
	imageURL pages.ImageURLFunc
	logger   *slog.Logger
}

// NewBannersHandler создаёт новый BannersHandler.
// imageURL строит URL превью изображения для страниц.
func NewBannersHandler(banners *service.BannerService, imageURL pages.ImageURLFunc, logger *slog.Logger) *BannersHandler {
	return &BannersHandler{
		banners:  banners,
		imageURL: imageURL,
		logger:   logger.With(slog.String("component", "ui.banners")),
	}
}

// HandleManage — GET /banners/manage
func (h *BannersHandler) HandleManage(w http.ResponseWriter, r *http.Request) {
	banners, err := h.banners.List(r.Context())
	if err != nil {
		serverError(w, r, h.logger, "Ошибка получения списка баннеров", err)
		return
	}
	principal := uimiddleware.PrincipalFromContext(r.Context())
	renderPage(w, r, http.StatusOK, pages.BannersManage(principal, banners, h.imageURL), h.logger)
}

// HandleAddForm — GET /banners/add
func (h *BannersHandler) HandleAddForm(w http.ResponseWriter, r *http.Request) {
	principal := uimiddleware.PrincipalFromContext(r.Context())
	renderPage(w, r, http.StatusOK, pages.BannerForm(principal, nil, h.imageURL), h.logger)
}

// HandleEditForm — GET /banners/edit/{id}
// Неизвестный id — redirect на список.
func (h *BannersHandler) HandleEditForm(w http.ResponseWriter, r *http.Request) {
	banner, err := h.banners.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			redirect(w, r, bannersManagePath)
			return
		}
		serverError(w, r, h.logger, "Ошибка получения баннера", err)
		return
	}
	principal := uimiddleware.PrincipalFromContext(r.Context())
	renderPage(w, r, http.StatusOK, pages.BannerForm(principal, banner, h.imageURL), h.logger)
}

// HandleAdd — POST /banners/add
// Если загрузка изображения не удалась — 502 с текстовым сообщением,
// баннер не создаётся.
func (h *BannersHandler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	if err := parseForm(r); err != nil {
		serverError(w, r, h.logger, "Ошибка разбора формы", err)
		return
	}

	upload, closeFile, err := formUpload(r)
	if err != nil {
		serverError(w, r, h.logger, "Ошибка чтения файла из формы", err)
		return
	}
	defer closeFile()

	if _, err := h.banners.Create(r.Context(), r.FormValue("name"), upload); err != nil {
		if errors.Is(err, service.ErrImageUpload) {
			h.logger.Warn("Баннер не создан: ошибка загрузки изображения",
				slog.String("error", err.Error()),
			)
			w.Header().Set("Content-Type", "text/plain; charset=utf-8")
			w.WriteHeader(http.StatusBadGateway)
			_, _ = w.Write([]byte(MsgImageUploadFailed))
			return
		}
		serverError(w, r, h.logger, "Ошибка создания баннера", err)
		return
	}
	redirect(w, r, bannersManagePath)
}

// HandleEdit — POST /banners/edit
// Новый файл заменяет содержимое изображения под прежним именем;
// ошибка замены не прерывает сохранение подписи.
func (h *BannersHandler) HandleEdit(w http.ResponseWriter, r *http.Request) {
	if err := parseForm(r); err != nil {
		serverError(w, r, h.logger, "Ошибка разбора формы", err)
		return
	}

	upload, closeFile, err := formUpload(r)
	if err != nil {
		serverError(w, r, h.logger, "Ошибка чтения файла из формы", err)
		return
	}
	defer closeFile()

	err = h.banners.Update(r.Context(), r.FormValue("id"), r.FormValue("name"), upload)
	if err != nil && !errors.Is(err, service.ErrNotFound) {
		serverError(w, r, h.logger, "Ошибка изменения баннера", err)
		return
	}
	redirect(w, r, bannersManagePath)
}

// HandleDelete — GET /banners/delete/{id}
// Изображение удаляется в фоне, ответ его не ждёт.
func (h *BannersHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.banners.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		serverError(w, r, h.logger, "Ошибка удаления баннера", err)
		return
	}
	redirect(w, r, bannersManagePath)
}

// formUpload возвращает файл из поля file или nil, если файл не выбран.
// Возвращаемую функцию закрытия нужно вызвать после использования файла.
func formUpload(r *http.Request) (*service.ImageUpload, func(), error) {
	file, header, err := r.FormFile("file")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, func() {}, nil
		}
		return nil, func() {}, err
	}
	return &service.ImageUpload{Filename: header.Filename, Content: file}, closer(file), nil
}

func closer(f multipart.File) func() {
	return func() { _ = f.Close() }
}
