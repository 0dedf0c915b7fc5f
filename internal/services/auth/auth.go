// Package auth содержит бизнес-логику регистрации и входа пользователей.
// Сессий и токенов нет: вход лишь подтверждает пару email/пароль.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/magabrotheeeer/agora/internal/lib/password"
	"github.com/magabrotheeeer/agora/internal/lib/sl"
	"github.com/magabrotheeeer/agora/internal/models"
	"github.com/magabrotheeeer/agora/internal/storage/repository"
)

var (
	// ErrConflict email уже зарегистрирован.
	ErrConflict = errors.New("email exists")
	// ErrUnauthorized неверный email или пароль.
	ErrUnauthorized = errors.New("invalid credentials")
)

// UserRepository описывает контракт для работы с пользователями в базе данных.
type UserRepository interface {
	// CreateUser сохраняет пользователя и возвращает его ID.
	CreateUser(ctx context.Context, user models.User) (int64, error)
	// GetUserByEmail возвращает пользователя по email.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
}

// Service отвечает за регистрацию и проверку учётных данных.
type Service struct {
	users      UserRepository
	adminEmail string
	log        *slog.Logger
}

// NewService создает новый экземпляр Service.
// Пользователь, зарегистрированный на adminEmail, получает флаг администратора.
func NewService(users UserRepository, adminEmail string, log *slog.Logger) *Service {
	return &Service{
		users:      users,
		adminEmail: adminEmail,
		log:        log,
	}
}

// Signup хэширует пароль и создаёт пользователя.
// Уникальность email гарантирует ограничение в базе, дубликат превращается в ErrConflict.
func (s *Service) Signup(ctx context.Context, name, email, rawPassword string) (models.User, error) {
	const op = "services.auth.Signup"

	hashed, err := password.Hash(rawPassword)
	if err != nil {
		return models.User{}, fmt.Errorf("%s: %w", op, err)
	}

	user := models.User{
		Name:         name,
		Email:        email,
		PasswordHash: hashed,
		IsAdmin:      s.adminEmail != "" && email == s.adminEmail,
	}

	id, err := s.users.CreateUser(ctx, user)
	if err != nil {
		if errors.Is(err, repository.ErrUserExists) {
			return models.User{}, ErrConflict
		}
		return models.User{}, fmt.Errorf("%s: %w", op, err)
	}
	user.ID = id

	if user.IsAdmin {
		s.log.Warn("admin account created", slog.Int64("user_id", id))
	}
	return user, nil
}

// Login проверяет пароль пользователя. Неизвестный email и неверный пароль
// неразличимы для вызывающего: оба дают ErrUnauthorized.
func (s *Service) Login(ctx context.Context, email, rawPassword string) (models.User, error) {
	const op = "services.auth.Login"

	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return models.User{}, ErrUnauthorized
		}
		return models.User{}, fmt.Errorf("%s: %w", op, err)
	}

	if err := password.Compare(user.PasswordHash, rawPassword); err != nil {
		if !errors.Is(err, password.ErrMismatch) {
			s.log.Error("stored password hash is unusable", slog.Int64("user_id", user.ID), sl.Err(err))
		}
		return models.User{}, ErrUnauthorized
	}
	return *user, nil
}
