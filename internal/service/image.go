package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/pageza/recipe-api/backend/internal/models"
	"github.com/pageza/recipe-api/backend/internal/repository"
	"github.com/pageza/recipe-api/backend/internal/storage"
)

// ImageService stores uploaded recipe images on a storage disk
type ImageService struct {
	repo repository.Repository
	disk storage.Disk
}

// Ensure ImageService implements IImageService
var _ IImageService = (*ImageService)(nil)

// NewImageService creates a new ImageService instance
func NewImageService(repo repository.Repository, disk storage.Disk) *ImageService {
	return &ImageService{repo: repo, disk: disk}
}

// UploadRecipeImage writes r under a fresh uploads/recipe/<uuid>.<ext> path,
// points the recipe at it and removes the image it replaces.
func (s *ImageService) UploadRecipeImage(ctx context.Context, userID, recipeID uuid.UUID, filename, contentType string, r io.Reader) (*models.Recipe, error) {
	if !strings.HasPrefix(contentType, "image/") {
		return nil, ErrUnsupportedImage
	}

	recipe, err := s.repo.Recipes().Get(ctx, userID, recipeID)
	if err != nil {
		return nil, err
	}

	path := models.RecipeImagePath(filename)
	if err := s.disk.Put(ctx, path, r, contentType); err != nil {
		return nil, fmt.Errorf("failed to store image: %w", err)
	}

	previous := recipe.Image
	recipe.Image = path
	if err := s.repo.Recipes().Update(ctx, recipe); err != nil {
		if delErr := s.disk.Delete(ctx, path); delErr != nil {
			slog.Warn("failed to remove orphaned image", "path", path, "error", delErr)
		}
		return nil, err
	}

	if previous != "" && previous != path {
		if err := s.disk.Delete(ctx, previous); err != nil {
			slog.Warn("failed to remove replaced image", "path", previous, "error", err)
		}
	}
	slog.Info("recipe image uploaded", "recipe_id", recipe.ID, "path", path)
	return recipe, nil
}

// ImageURL returns the public URL of the recipe image, or "" when it has none.
func (s *ImageService) ImageURL(ctx context.Context, recipe *models.Recipe) (string, error) {
	if recipe.Image == "" {
		return "", nil
	}
	return s.disk.URL(ctx, recipe.Image)
}
