package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Freeeeeet/shareit/internal/model"
	"github.com/Freeeeeet/shareit/internal/repository"
	"go.uber.org/zap"
)

// UserStore is the user persistence.
type UserStore interface {
	UserDirectory
	GetByTelegramID(ctx context.Context, telegramID int64) (*model.User, error)
	Create(ctx context.Context, user *model.User) error
	Update(ctx context.Context, user *model.User) error
	List(ctx context.Context) ([]*model.User, error)
	Delete(ctx context.Context, id int64) error
}

// UserPatch - частичное обновление пользователя
type UserPatch struct {
	Name       *string
	Email      *string
	TelegramID *int64
}

type UserService struct {
	userRepo UserStore
	logger   *zap.Logger
}

func NewUserService(userRepo UserStore, logger *zap.Logger) *UserService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UserService{
		userRepo: userRepo,
		logger:   logger,
	}
}

// Create регистрирует пользователя; email уникален
func (s *UserService) Create(ctx context.Context, name, email string, telegramID *int64) (*model.User, error) {
	if strings.TrimSpace(name) == "" {
		return nil, invalid("user name must not be blank")
	}
	if strings.TrimSpace(email) == "" {
		return nil, invalid("user email must not be blank")
	}

	user := &model.User{
		Name:       name,
		Email:      email,
		TelegramID: telegramID,
	}

	err := s.userRepo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, invalid("email %s is already in use", email)
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.logger.Info("New user registered",
		zap.Int64("user_id", user.ID),
		zap.String("name", user.Name),
	)

	return user, nil
}

// Update меняет только переданные поля
func (s *UserService) Update(ctx context.Context, userID int64, patch UserPatch) (*model.User, error) {
	user, err := s.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if patch.Name != nil {
		if strings.TrimSpace(*patch.Name) == "" {
			return nil, invalid("user name must not be blank")
		}
		user.Name = *patch.Name
	}
	if patch.Email != nil {
		if strings.TrimSpace(*patch.Email) == "" {
			return nil, invalid("user email must not be blank")
		}
		user.Email = *patch.Email
	}
	if patch.TelegramID != nil {
		user.TelegramID = patch.TelegramID
	}

	err = s.userRepo.Update(ctx, user)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicate):
			return nil, invalid("email %s is already in use", user.Email)
		case errors.Is(err, repository.ErrNotFound):
			return nil, notFound("user with id = %d not found", userID)
		}
		return nil, fmt.Errorf("update user: %w", err)
	}

	s.logger.Info("User updated", zap.Int64("user_id", userID))

	return user, nil
}

// GetByID получает пользователя по ID
func (s *UserService) GetByID(ctx context.Context, id int64) (*model.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	if user == nil {
		return nil, notFound("user with id = %d not found", id)
	}
	return user, nil
}

// GetByTelegramID получает пользователя, привязанного к Telegram (nil, nil - не привязан)
func (s *UserService) GetByTelegramID(ctx context.Context, telegramID int64) (*model.User, error) {
	return s.userRepo.GetByTelegramID(ctx, telegramID)
}

// List получает всех пользователей
func (s *UserService) List(ctx context.Context) ([]*model.User, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// Delete удаляет пользователя
func (s *UserService) Delete(ctx context.Context, id int64) error {
	err := s.userRepo.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound("user with id = %d not found", id)
		}
		return fmt.Errorf("delete user: %w", err)
	}

	s.logger.Info("User deleted", zap.Int64("user_id", id))

	return nil
}
