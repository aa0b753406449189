// crud.go — общая логика list/get/create/update/delete для сущностей
// без внешних зависимостей (администраторы, преподаватели, кафедры).
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/bigkaa/billboard-acp/internal/domain/model"
	"github.com/bigkaa/billboard-acp/internal/repository"
)

// crudService — CRUD над репозиторием сущностей T.
// Поля записываются как есть, без валидации.
type crudService[T any] struct {
	repo repository.CRUD[T]
	// setID записывает идентификатор в сущность
	setID func(*T, string)
	// sortList упорядочивает результат List (nil — порядок хранения)
	sortList func([]T)
	entity   string
	logger   *slog.Logger
}

// List возвращает все записи.
func (s *crudService[T]) List(ctx context.Context) ([]T, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if s.sortList != nil {
		s.sortList(items)
	}
	return items, nil
}

// Get возвращает запись по id или ErrNotFound.
func (s *crudService[T]) Get(ctx context.Context, id string) (*T, error) {
	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s %s", ErrNotFound, s.entity, id)
		}
		return nil, err
	}
	return item, nil
}

// Create назначает новой записи свежий id и сохраняет её.
func (s *crudService[T]) Create(ctx context.Context, doc *T) error {
	id := model.NewID()
	s.setID(doc, id)

	if err := s.repo.Create(ctx, doc); err != nil {
		return err
	}

	s.logger.Info("Запись создана", slog.String("entity", s.entity), slog.String("id", id))
	return nil
}

// Update перезаписывает поля записи id.
// Неизвестный id — ErrNotFound, хранилище не меняется.
func (s *crudService[T]) Update(ctx context.Context, id string, doc *T) error {
	s.setID(doc, id)

	if err := s.repo.Update(ctx, id, doc); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("%w: %s %s", ErrNotFound, s.entity, id)
		}
		return err
	}

	s.logger.Info("Запись обновлена", slog.String("entity", s.entity), slog.String("id", id))
	return nil
}

// Delete удаляет запись id. Повторное удаление не ошибка.
func (s *crudService[T]) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("Запись удалена", slog.String("entity", s.entity), slog.String("id", id))
	return nil
}
