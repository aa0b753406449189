// Пакет memstore — in-memory реализация репозиториев.
// Семантика совпадает с MongoDB-реализацией: порядок List — порядок вставки,
// Update отсутствующей записи — ErrNotFound, Delete идемпотентен.
// Используется в тестах сервисов и обработчиков.
package memstore

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/bigkaa/billboard-acp/internal/domain/model"
	"github.com/bigkaa/billboard-acp/internal/repository"
)

// table — коллекция записей T, упорядоченная по времени вставки.
type table[T any] struct {
	mu    sync.RWMutex
	order []string
	rows  map[string]T
	idOf  func(*T) string
}

func newTable[T any](idOf func(*T) string) *table[T] {
	return &table[T]{rows: make(map[string]T), idOf: idOf}
}

func (t *table[T]) List(_ context.Context) ([]T, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	result := make([]T, 0, len(t.order))
	for _, id := range t.order {
		result = append(result, t.rows[id])
	}
	return result, nil
}

func (t *table[T]) GetByID(_ context.Context, id string) (*T, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	row, ok := t.rows[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &row, nil
}

func (t *table[T]) Create(_ context.Context, doc *T) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	id := t.idOf(doc)
	if _, ok := t.rows[id]; ok {
		return fmt.Errorf("%w: id %s", repository.ErrConflict, id)
	}
	t.rows[id] = *doc
	t.order = append(t.order, id)
	return nil
}

func (t *table[T]) Update(_ context.Context, id string, doc *T) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, ok := t.rows[id]; !ok {
		return repository.ErrNotFound
	}
	t.rows[id] = *doc
	return nil
}

func (t *table[T]) Delete(_ context.Context, id string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, ok := t.rows[id]; !ok {
		return nil
	}
	delete(t.rows, id)
	t.order = slices.DeleteFunc(t.order, func(s string) bool { return s == id })
	return nil
}

// Len возвращает количество записей.
func (t *table[T]) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.order)
}

// Users — in-memory коллекция администраторов.
type Users struct {
	*table[model.User]
}

// NewUsers создаёт пустую коллекцию администраторов.
func NewUsers() *Users {
	return &Users{newTable(func(u *model.User) string { return u.ID })}
}

// GetByEmail возвращает администратора по email или ErrNotFound.
func (u *Users) GetByEmail(_ context.Context, email string) (*model.User, error) {
	u.mu.RLock()
	defer u.mu.RUnlock()

	for _, id := range u.order {
		if row := u.rows[id]; row.Email == email {
			return &row, nil
		}
	}
	return nil, repository.ErrNotFound
}

// Professors — in-memory коллекция преподавателей.
type Professors struct {
	*table[model.Professor]
}

// NewProfessors создаёт пустую коллекцию преподавателей.
func NewProfessors() *Professors {
	return &Professors{newTable(func(p *model.Professor) string { return p.ID })}
}

// Departments — in-memory коллекция кафедр.
type Departments struct {
	*table[model.Department]
}

// NewDepartments создаёт пустую коллекцию кафедр.
func NewDepartments() *Departments {
	return &Departments{newTable(func(d *model.Department) string { return d.ID })}
}

// Banners — in-memory коллекция баннеров.
type Banners struct {
	*table[model.Banner]
}

// NewBanners создаёт пустую коллекцию баннеров.
func NewBanners() *Banners {
	return &Banners{newTable(func(b *model.Banner) string { return b.ID })}
}

// Проверка соответствия интерфейсам на этапе компиляции.
var (
	_ repository.UserRepository       = (*Users)(nil)
	_ repository.ProfessorRepository  = (*Professors)(nil)
	_ repository.DepartmentRepository = (*Departments)(nil)
	_ repository.BannerRepository     = (*Banners)(nil)
)
