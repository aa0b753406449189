// banners.go — сервис баннеров.
// Запись баннера в MongoDB и его изображение в Image API согласуются без транзакций:
//   - создание: сначала загрузка изображения, затем запись; при сбое загрузки запись не создаётся;
//   - изменение: содержимое изображения заменяется под прежним именем, image_name не меняется;
//   - удаление: сначала запись, затем фоновое удаление изображения без ожидания результата.
package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/bigkaa/billboard-acp/internal/domain/model"
	"github.com/bigkaa/billboard-acp/internal/imageclient"
	"github.com/bigkaa/billboard-acp/internal/repository"
)

// ImageUpload — файл изображения из формы баннера.
type ImageUpload struct {
	// Filename — оригинальное имя файла
	Filename string
	// Content — содержимое файла
	Content io.Reader
}

// BannerService — управление баннерами и их изображениями.
type BannerService struct {
	repo          repository.BannerRepository
	images        imageclient.Images
	deleteTimeout time.Duration
	// pending — фоновые удаления изображений в полёте
	pending sync.WaitGroup
	logger  *slog.Logger
}

// NewBannerService создаёт сервис баннеров.
// deleteTimeout ограничивает фоновое удаление изображения после удаления баннера.
func NewBannerService(
	repo repository.BannerRepository,
	images imageclient.Images,
	deleteTimeout time.Duration,
	logger *slog.Logger,
) *BannerService {
	return &BannerService{
		repo:          repo,
		images:        images,
		deleteTimeout: deleteTimeout,
		logger:        logger.With(slog.String("component", "banner_service")),
	}
}

// List возвращает все баннеры в порядке хранения.
func (s *BannerService) List(ctx context.Context) ([]model.Banner, error) {
	return s.repo.List(ctx)
}

// Get возвращает баннер по id или ErrNotFound.
func (s *BannerService) Get(ctx context.Context, id string) (*model.Banner, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: banner %s", ErrNotFound, id)
		}
		return nil, err
	}
	return b, nil
}

// Create создаёт баннер. Если передан файл, он загружается в Image API до
// записи в БД; при ошибке загрузки возвращается ErrImageUpload и запись
// не создаётся. Сбой записи после успешной загрузки оставляет изображение
// без баннера — компенсирующее удаление не выполняется.
func (s *BannerService) Create(ctx context.Context, name string, img *ImageUpload) (*model.Banner, error) {
	b := &model.Banner{Name: name}

	if img != nil {
		imageName, err := s.images.Create(ctx, img.Filename, img.Content)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrImageUpload, err) //nolint:errorlint // намеренный двойной wrap
		}
		b.ImageName = imageName
	}

	b.ID = model.NewID()
	if err := s.repo.Create(ctx, b); err != nil {
		if b.HasImage() {
			s.logger.Warn("Баннер не сохранён, изображение осталось в Image API",
				slog.String("image_name", b.ImageName),
				slog.String("error", err.Error()),
			)
		}
		return nil, err
	}

	s.logger.Info("Баннер создан",
		slog.String("id", b.ID),
		slog.String("image_name", b.ImageName),
	)
	return b, nil
}

// Update изменяет подпись баннера и, если передан файл, заменяет содержимое
// изображения под прежним именем. Ошибка замены только логируется.
// Если у баннера ещё нет изображения, файл загружается как новый.
// Неизвестный id — ErrNotFound, Image API не вызывается.
func (s *BannerService) Update(ctx context.Context, id, name string, img *ImageUpload) error {
	existing, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	imageName := existing.ImageName
	if img != nil {
		if existing.HasImage() {
			if err := s.images.Replace(ctx, imageName, img.Filename, img.Content); err != nil {
				s.logger.Warn("Не удалось заменить изображение баннера",
					slog.String("id", id),
					slog.String("image_name", imageName),
					slog.String("error", err.Error()),
				)
			}
		} else {
			created, err := s.images.Create(ctx, img.Filename, img.Content)
			if err != nil {
				s.logger.Warn("Не удалось загрузить изображение баннера",
					slog.String("id", id),
					slog.String("error", err.Error()),
				)
			} else {
				imageName = created
			}
		}
	}

	updated := &model.Banner{ID: id, Name: name, ImageName: imageName}
	if err := s.repo.Update(ctx, id, updated); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("%w: banner %s", ErrNotFound, id)
		}
		return err
	}

	s.logger.Info("Баннер обновлён",
		slog.String("id", id),
		slog.Bool("image_replaced", img != nil),
	)
	return nil
}

// Delete удаляет баннер, затем запускает фоновое удаление его изображения.
// Результат удаления изображения вызывающему не возвращается.
// Неизвестный id — no-op.
func (s *BannerService) Delete(ctx context.Context, id string) error {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil
		}
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("Баннер удалён", slog.String("id", id))

	if existing.HasImage() {
		s.deleteImageDetached(existing.ImageName)
	}
	return nil
}

// deleteImageDetached удаляет изображение в отдельной горутине с собственным
// контекстом: отмена запроса не прерывает удаление.
func (s *BannerService) deleteImageDetached(imageName string) {
	s.pending.Go(func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.deleteTimeout)
		defer cancel()

		if err := s.images.Delete(ctx, imageName); err != nil {
			s.logger.Warn("Не удалось удалить изображение баннера",
				slog.String("image_name", imageName),
				slog.String("error", err.Error()),
			)
			return
		}
		s.logger.Debug("Изображение баннера удалено", slog.String("image_name", imageName))
	})
}

// Wait ожидает завершения фоновых удалений изображений или отмены ctx.
// Вызывается при graceful shutdown.
func (s *BannerService) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		s.pending.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
