// identity.go — сопоставление внешней учётной записи (Google) с администратором ACP.
// Вход разрешён только заранее заведённым администраторам: самостоятельной
// регистрации нет.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/bigkaa/billboard-acp/internal/domain/model"
	"github.com/bigkaa/billboard-acp/internal/repository"
)

// EmailLookup — поиск администратора по email.
type EmailLookup interface {
	GetByEmail(ctx context.Context, email string) (*model.User, error)
}

// IdentityService — разрешение внешней идентичности в локального User.
type IdentityService struct {
	users  EmailLookup
	logger *slog.Logger
}

// NewIdentityService создаёт сервис идентификации.
func NewIdentityService(users EmailLookup, logger *slog.Logger) *IdentityService {
	return &IdentityService{
		users:  users,
		logger: logger.With(slog.String("component", "identity_service")),
	}
}

// Resolve возвращает администратора с указанным email.
// Нет совпадения (или email пуст) — ErrNotProvisioned.
func (s *IdentityService) Resolve(ctx context.Context, email string) (*model.User, error) {
	if email == "" {
		return nil, fmt.Errorf("%w: email не передан провайдером", ErrNotProvisioned)
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.logger.Warn("Вход отклонён: администратор не найден", slog.String("email", email))
			return nil, fmt.Errorf("%w: %s", ErrNotProvisioned, email)
		}
		return nil, fmt.Errorf("поиск администратора по email: %w", err)
	}

	s.logger.Info("Администратор вошёл в ACP",
		slog.String("user_id", user.ID),
		slog.String("email", user.Email),
	)
	return user, nil
}
