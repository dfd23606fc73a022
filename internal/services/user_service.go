package services

import (
	"context"

	apperrors "fluxo/internal/errors"
	"fluxo/internal/models"

	"gorm.io/gorm"
)

type userService struct {
	db *gorm.DB
}

// NewUserService creates a new user service
func NewUserService(db *gorm.DB) UserServicer {
	return &userService{db: db}
}

// CreateAnonymous creates a fresh anonymous user. Every new session gets
// its own user row; there is no registration flow.
func (s *userService) CreateAnonymous(ctx context.Context) (*models.User, error) {
	user := &models.User{
		DisplayName: "Convidado",
		Anonymous:   true,
	}
	if err := s.db.WithContext(ctx).Create(user).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return user, nil
}
