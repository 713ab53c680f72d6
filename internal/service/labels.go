package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"github.com/pageza/recipe-api/backend/internal/models"
	"github.com/pageza/recipe-api/backend/internal/repository"
)

// LabelService manages a user's tags and ingredients outside of recipes
type LabelService struct {
	repo repository.Repository
}

// Ensure LabelService implements ILabelService
var _ ILabelService = (*LabelService)(nil)

// NewLabelService creates a new LabelService instance
func NewLabelService(repo repository.Repository) *LabelService {
	return &LabelService{repo: repo}
}

func (s *LabelService) ListTags(ctx context.Context, userID uuid.UUID, assignedOnly bool) ([]models.Tag, error) {
	return s.repo.Tags().List(ctx, userID, repository.LabelListOptions{AssignedOnly: assignedOnly})
}

func (s *LabelService) UpdateTag(ctx context.Context, userID, tagID uuid.UUID, name string) (*models.Tag, error) {
	return renameLabel(ctx, s.repo.Tags(), userID, tagID, name)
}

func (s *LabelService) DeleteTag(ctx context.Context, userID, tagID uuid.UUID) error {
	return deleteLabel(ctx, s.repo.Tags(), userID, tagID)
}

func (s *LabelService) ListIngredients(ctx context.Context, userID uuid.UUID, assignedOnly bool) ([]models.Ingredient, error) {
	return s.repo.Ingredients().List(ctx, userID, repository.LabelListOptions{AssignedOnly: assignedOnly})
}

func (s *LabelService) UpdateIngredient(ctx context.Context, userID, ingredientID uuid.UUID, name string) (*models.Ingredient, error) {
	return renameLabel(ctx, s.repo.Ingredients(), userID, ingredientID, name)
}

func (s *LabelService) DeleteIngredient(ctx context.Context, userID, ingredientID uuid.UUID) error {
	return deleteLabel(ctx, s.repo.Ingredients(), userID, ingredientID)
}

// renameLabel changes the name of one of the user's labels. Taking a name
// another label of the same user already has is rejected.
func renameLabel[T models.Label](ctx context.Context, store repository.LabelStore[T], userID, id uuid.UUID, raw string) (*T, error) {
	name, err := cleanLabelName("name", raw)
	if err != nil {
		return nil, err
	}
	label, err := store.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if models.LabelName(label) == name {
		return label, nil
	}

	existing, err := store.Find(ctx, userID, name)
	switch {
	case err == nil && models.LabelID(existing) != id:
		return nil, NewValidationError("name", "a label with this name already exists")
	case err != nil && !errors.Is(err, repository.ErrNotFound):
		return nil, err
	}

	models.SetLabelName(label, name)
	if err := store.Update(ctx, label); err != nil {
		return nil, err
	}
	return label, nil
}

func deleteLabel[T models.Label](ctx context.Context, store repository.LabelStore[T], userID, id uuid.UUID) error {
	label, err := store.Get(ctx, userID, id)
	if err != nil {
		return err
	}
	if err := store.Delete(ctx, label); err != nil {
		return err
	}
	slog.Info("label deleted", "label_id", id, "user_id", userID)
	return nil
}
