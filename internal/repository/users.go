package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pageza/recipe-api/backend/internal/models"
)

type userStore struct {
	db *gorm.DB
}

func (s *userStore) Create(ctx context.Context, user *models.User) error {
	return translate(s.db.WithContext(ctx).Create(user).Error, "failed to create user")
}

func (s *userStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, translate(err, "failed to get user by email")
	}
	return &user, nil
}

func (s *userStore) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, translate(err, "failed to get user by id")
	}
	return &user, nil
}

func (s *userStore) Update(ctx context.Context, user *models.User) error {
	return translate(s.db.WithContext(ctx).Save(user).Error, "failed to update user")
}

func (s *userStore) Delete(ctx context.Context, id uuid.UUID) error {
	result := s.db.WithContext(ctx).Delete(&models.User{}, "id = ?", id)
	if result.Error != nil {
		return translate(result.Error, "failed to delete user")
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
