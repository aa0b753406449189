// users.go — управление администраторами (/users/*).
package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/bigkaa/billboard-acp/internal/domain/model"
	"github.com/bigkaa/billboard-acp/internal/service"
	uimiddleware "github.com/bigkaa/billboard-acp/internal/ui/middleware"
	"github.com/bigkaa/billboard-acp/internal/ui/pages"
)

const usersManagePath = "/users/manage"

// UsersHandler — обработчики страниц администраторов.
type UsersHandler struct {
	users  *service.UserService
	logger *slog.Logger
}

// NewUsersHandler создаёт новый UsersHandler.
func NewUsersHandler(users *service.UserService, logger *slog.Logger) *UsersHandler {
	return &UsersHandler{
		users:  users,
		logger: logger.With(slog.String("component", "ui.users")),
	}
}

// HandleManage — GET /users/manage
func (h *UsersHandler) HandleManage(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.List(r.Context())
	if err != nil {
		serverError(w, r, h.logger, "Ошибка получения списка администраторов", err)
		return
	}
	principal := uimiddleware.PrincipalFromContext(r.Context())
	renderPage(w, r, http.StatusOK, pages.UsersManage(principal, users), h.logger)
}

// HandleAddForm — GET /users/add
func (h *UsersHandler) HandleAddForm(w http.ResponseWriter, r *http.Request) {
	principal := uimiddleware.PrincipalFromContext(r.Context())
	renderPage(w, r, http.StatusOK, pages.UserForm(principal, nil), h.logger)
}

// HandleEditForm — GET /users/edit/{id}
// Неизвестный id — redirect на список.
func (h *UsersHandler) HandleEditForm(w http.ResponseWriter, r *http.Request) {
	user, err := h.users.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			redirect(w, r, usersManagePath)
			return
		}
		serverError(w, r, h.logger, "Ошибка получения администратора", err)
		return
	}
	principal := uimiddleware.PrincipalFromContext(r.Context())
	renderPage(w, r, http.StatusOK, pages.UserForm(principal, user), h.logger)
}

// HandleAdd — POST /users/add
func (h *UsersHandler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	if err := parseForm(r); err != nil {
		serverError(w, r, h.logger, "Ошибка разбора формы", err)
		return
	}
	if err := h.users.Create(r.Context(), userFromForm(r)); err != nil {
		serverError(w, r, h.logger, "Ошибка создания администратора", err)
		return
	}
	redirect(w, r, usersManagePath)
}

// HandleEdit — POST /users/edit
// Неизвестный id — запись не создаётся, redirect на список.
func (h *UsersHandler) HandleEdit(w http.ResponseWriter, r *http.Request) {
	if err := parseForm(r); err != nil {
		serverError(w, r, h.logger, "Ошибка разбора формы", err)
		return
	}
	err := h.users.Update(r.Context(), r.FormValue("id"), userFromForm(r))
	if err != nil && !errors.Is(err, service.ErrNotFound) {
		serverError(w, r, h.logger, "Ошибка изменения администратора", err)
		return
	}
	redirect(w, r, usersManagePath)
}

// HandleDelete — GET /users/delete/{id}
func (h *UsersHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.users.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		serverError(w, r, h.logger, "Ошибка удаления администратора", err)
		return
	}
	redirect(w, r, usersManagePath)
}

func userFromForm(r *http.Request) *model.User {
	return &model.User{
		Name:  r.FormValue("name"),
		Email: r.FormValue("email"),
	}
}
