// professors.go — управление карточками преподавателей (/data/*).
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

const professorsManagePath = "/data/manage"

// ProfessorsHandler — обработчики страниц преподавателей.
// Кафедры нужны для выбора в форме и вывода краткого кода в списке.
type ProfessorsHandler struct {
	professors  *service.ProfessorService
	departments *service.DepartmentService
	logger      *slog.Logger
}

// NewProfessorsHandler создаёт новый ProfessorsHandler.
func NewProfessorsHandler(
	professors *service.ProfessorService,
	departments *service.DepartmentService,
	logger *slog.Logger,
) *ProfessorsHandler {
	return &ProfessorsHandler{
		professors:  professors,
		departments: departments,
		logger:      logger.With(slog.String("component", "ui.professors")),
	}
}

// HandleManage — GET /data/manage
func (h *ProfessorsHandler) HandleManage(w http.ResponseWriter, r *http.Request) {
	professors, err := h.professors.List(r.Context())
	if err != nil {
		serverError(w, r, h.logger, "Ошибка получения списка преподавателей", err)
		return
	}
	departments, err := h.departments.List(r.Context())
	if err != nil {
		serverError(w, r, h.logger, "Ошибка получения списка кафедр", err)
		return
	}

	principal := uimiddleware.PrincipalFromContext(r.Context())
	page := pages.ProfessorsManage(principal, professors, model.DepartmentIndex(departments))
	renderPage(w, r, http.StatusOK, page, h.logger)
}

// HandleAddForm — GET /data/add
func (h *ProfessorsHandler) HandleAddForm(w http.ResponseWriter, r *http.Request) {
	h.renderForm(w, r, nil)
}

// HandleEditForm — GET /data/edit/{id}
// Неизвестный id — redirect на список.
func (h *ProfessorsHandler) HandleEditForm(w http.ResponseWriter, r *http.Request) {
	professor, err := h.professors.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			redirect(w, r, professorsManagePath)
			return
		}
		serverError(w, r, h.logger, "Ошибка получения преподавателя", err)
		return
	}
	h.renderForm(w, r, professor)
}

// renderForm рендерит форму со списком кафедр.
func (h *ProfessorsHandler) renderForm(w http.ResponseWriter, r *http.Request, professor *model.Professor) {
	departments, err := h.departments.List(r.Context())
	if err != nil {
		serverError(w, r, h.logger, "Ошибка получения списка кафедр", err)
		return
	}
	principal := uimiddleware.PrincipalFromContext(r.Context())
	renderPage(w, r, http.StatusOK, pages.ProfessorForm(principal, professor, departments), h.logger)
}

// HandleAdd — POST /data/add
func (h *ProfessorsHandler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	if err := parseForm(r); err != nil {
		serverError(w, r, h.logger, "Ошибка разбора формы", err)
		return
	}
	if err := h.professors.Create(r.Context(), professorFromForm(r)); err != nil {
		serverError(w, r, h.logger, "Ошибка создания преподавателя", err)
		return
	}
	redirect(w, r, professorsManagePath)
}

// HandleEdit — POST /data/edit
// Принимает urlencoded или multipart (поле file игнорируется).
func (h *ProfessorsHandler) HandleEdit(w http.ResponseWriter, r *http.Request) {
	if err := parseForm(r); err != nil {
		serverError(w, r, h.logger, "Ошибка разбора формы", err)
		return
	}
	err := h.professors.Update(r.Context(), r.FormValue("id"), professorFromForm(r))
	if err != nil && !errors.Is(err, service.ErrNotFound) {
		serverError(w, r, h.logger, "Ошибка изменения преподавателя", err)
		return
	}
	redirect(w, r, professorsManagePath)
}

// HandleDelete — GET /data/delete/{id}
func (h *ProfessorsHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.professors.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		serverError(w, r, h.logger, "Ошибка удаления преподавателя", err)
		return
	}
	redirect(w, r, professorsManagePath)
}

func professorFromForm(r *http.Request) *model.Professor {
	return &model.Professor{
		Name:       r.FormValue("name"),
		Email:      r.FormValue("email"),
		Hours:      r.FormValue("hours"),
		Room:       r.FormValue("room"),
		Phone:      r.FormValue("phone"),
		Website:    r.FormValue("website"),
		Department: r.FormValue("department"),
	}
}
