// departments.go — управление кафедрами (/departments/*).
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

const departmentsManagePath = "/departments/manage"

// DepartmentsHandler — обработчики страниц кафедр.
type DepartmentsHandler struct {
	departments *service.DepartmentService
	logger      *slog.Logger
}

// NewDepartmentsHandler создаёт новый DepartmentsHandler.
func NewDepartmentsHandler(departments *service.DepartmentService, logger *slog.Logger) *DepartmentsHandler {
	return &DepartmentsHandler{
		departments: departments,
		logger:      logger.With(slog.String("component", "ui.departments")),
	}
}

// HandleManage — GET /departments/manage
func (h *DepartmentsHandler) HandleManage(w http.ResponseWriter, r *http.Request) {
	departments, err := h.departments.List(r.Context())
	if err != nil {
		serverError(w, r, h.logger, "Ошибка получения списка кафедр", err)
		return
	}
	principal := uimiddleware.PrincipalFromContext(r.Context())
	renderPage(w, r, http.StatusOK, pages.DepartmentsManage(principal, departments), h.logger)
}

// HandleAddForm — GET /departments/add
func (h *DepartmentsHandler) HandleAddForm(w http.ResponseWriter, r *http.Request) {
	principal := uimiddleware.PrincipalFromContext(r.Context())
	renderPage(w, r, http.StatusOK, pages.DepartmentForm(principal, nil), h.logger)
}

// HandleEditForm — GET /departments/edit/{id}
// Неизвестный id — redirect на список.
func (h *DepartmentsHandler) HandleEditForm(w http.ResponseWriter, r *http.Request) {
	department, err := h.departments.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			redirect(w, r, departmentsManagePath)
			return
		}
		serverError(w, r, h.logger, "Ошибка получения кафедры", err)
		return
	}
	principal := uimiddleware.PrincipalFromContext(r.Context())
	renderPage(w, r, http.StatusOK, pages.DepartmentForm(principal, department), h.logger)
}

// HandleAdd — POST /departments/add
func (h *DepartmentsHandler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	if err := parseForm(r); err != nil {
		serverError(w, r, h.logger, "Ошибка разбора формы", err)
		return
	}
	if err := h.departments.Create(r.Context(), departmentFromForm(r)); err != nil {
		serverError(w, r, h.logger, "Ошибка создания кафедры", err)
		return
	}
	redirect(w, r, departmentsManagePath)
}

// HandleEdit — POST /departments/edit
// Новый short_name в карточки преподавателей не переносится.
func (h *DepartmentsHandler) HandleEdit(w http.ResponseWriter, r *http.Request) {
	if err := parseForm(r); err != nil {
		serverError(w, r, h.logger, "Ошибка разбора формы", err)
		return
	}
	err := h.departments.Update(r.Context(), r.FormValue("id"), departmentFromForm(r))
	if err != nil && !errors.Is(err, service.ErrNotFound) {
		serverError(w, r, h.logger, "Ошибка изменения кафедры", err)
		return
	}
	redirect(w, r, departmentsManagePath)
}

// HandleDelete — GET /departments/delete/{id}
// Карточки преподавателей со ссылкой на кафедру не меняются.
func (h *DepartmentsHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.departments.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		serverError(w, r, h.logger, "Ошибка удаления кафедры", err)
		return
	}
	redirect(w, r, departmentsManagePath)
}

func departmentFromForm(r *http.Request) *model.Department {
	return &model.Department{
		Name:      r.FormValue("name"),
		ShortName: r.FormValue("short_name"),
	}
}
