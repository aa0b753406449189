// entities.go — сервисы администраторов, преподавателей и кафедр.
package service

import (
	"log/slog"

	"github.com/bigkaa/billboard-acp/internal/domain/model"
	"github.com/bigkaa/billboard-acp/internal/repository"
)

// UserService — управление списком администраторов ACP.
type UserService struct {
	crudService[model.User]
}

// NewUserService создаёт сервис администраторов.
// Список возвращается в порядке хранения.
func NewUserService(repo repository.UserRepository, logger *slog.Logger) *UserService {
	return &UserService{crudService[model.User]{
		repo:   repo,
		setID:  func(u *model.User, id string) { u.ID = id },
		entity: "user",
		logger: logger.With(slog.String("component", "user_service")),
	}}
}

// ProfessorService — управление карточками преподавателей.
type ProfessorService struct {
	crudService[model.Professor]
}

// NewProfessorService создаёт сервис преподавателей.
// Список сортируется по имени.
func NewProfessorService(repo repository.ProfessorRepository, logger *slog.Logger) *ProfessorService {
	return &ProfessorService{crudService[model.Professor]{
		repo:     repo,
		setID:    func(p *model.Professor, id string) { p.ID = id },
		sortList: model.SortProfessors,
		entity:   "professor",
		logger:   logger.With(slog.String("component", "professor_service")),
	}}
}

// DepartmentService — управление кафедрами.
// Изменение short_name не распространяется на карточки преподавателей.
type DepartmentService struct {
	crudService[model.Department]
}

// NewDepartmentService создаёт сервис кафедр.
// Список сортируется по имени.
func NewDepartmentService(repo repository.DepartmentRepository, logger *slog.Logger) *DepartmentService {
	return &DepartmentService{crudService[model.Department]{
		repo:     repo,
		setID:    func(d *model.Department, id string) { d.ID = id },
		sortList: model.SortDepartments,
		entity:   "department",
		logger:   logger.With(slog.String("component", "department_service")),
	}}
}
