package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pageza/recipe-api/backend/internal/models"
)

// labelStore serves both tags and ingredients; they differ only in table
// names and the recipe join table they appear in.
type labelStore[T models.Label] struct {
	db         *gorm.DB
	joinTable  string
	joinColumn string
}

func (s *labelStore[T]) Find(ctx context.Context, userID uuid.UUID, name string) (*T, error) {
	var label T
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND name = ?", userID, name).
		First(&label).Error
	if err != nil {
		return nil, translate(err, "failed to find label")
	}
	return &label, nil
}

func (s *labelStore[T]) Get(ctx context.Context, userID, id uuid.UUID) (*T, error) {
	var label T
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND id = ?", userID, id).
		First(&label).Error
	if err != nil {
		return nil, translate(err, "failed to get label")
	}
	return &label, nil
}

func (s *labelStore[T]) List(ctx context.Context, userID uuid.UUID, opts LabelListOptions) ([]T, error) {
	query := s.db.WithContext(ctx).Where("user_id = ?", userID)
	if opts.AssignedOnly {
		assigned := s.db.WithContext(ctx).Table(s.joinTable).Select(s.joinColumn)
		query = query.Where("id IN (?)", assigned)
	}

	var labels []T
	if err := query.Order("name DESC").Find(&labels).Error; err != nil {
		return nil, translate(err, "failed to list labels")
	}
	return labels, nil
}

func (s *labelStore[T]) Create(ctx context.Context, label *T) error {
	return translate(s.db.WithContext(ctx).Create(label).Error, "failed to create label")
}

func (s *labelStore[T]) Update(ctx context.Context, label *T) error {
	return translate(s.db.WithContext(ctx).Save(label).Error, "failed to update label")
}

// Delete removes the label and unlinks it from every recipe. Recipes are kept.
func (s *labelStore[T]) Delete(ctx context.Context, label *T) error {
	id := models.LabelID(label)
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM "+s.joinTable+" WHERE "+s.joinColumn+" = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(label).Error
	})
	return translate(err, "failed to delete label")
}
