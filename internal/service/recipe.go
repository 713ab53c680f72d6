package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pageza/recipe-api/backend/internal/models"
	"github.com/pageza/recipe-api/backend/internal/repository"
	"github.com/pageza/recipe-api/backend/internal/types"
)

const maxNameLength = 255

// maxPrice is the first value that no longer fits decimal(5,2).
var maxPrice = decimal.NewFromInt(1000)

// RecipeService handles recipe operations. It owns the assignment of tags
// and ingredients: labels are resolved by name under the recipe owner and
// created on first use.
type RecipeService struct {
	repo repository.Repository
}

// Ensure RecipeService implements IRecipeService
var _ IRecipeService = (*RecipeService)(nil)

// NewRecipeService creates a new RecipeService instance
func NewRecipeService(repo repository.Repository) *RecipeService {
	return &RecipeService{repo: repo}
}

// CreateRecipe stores a recipe owned by userID and links the requested tags
// and ingredients, creating the ones the user does not have yet. Everything
// happens in one transaction.
func (s *RecipeService) CreateRecipe(ctx context.Context, userID uuid.UUID, req *types.CreateRecipeRequest) (*models.Recipe, error) {
	title, err := cleanTitle(req.Title)
	if err != nil {
		return nil, err
	}
	if req.TimeMinutes == nil {
		return nil, NewValidationError("time_minutes", "this field is required")
	}
	if err := validateTimeMinutes(*req.TimeMinutes); err != nil {
		return nil, err
	}
	if req.Price == nil {
		return nil, NewValidationError("price", "this field is required")
	}
	if err := validatePrice(*req.Price); err != nil {
		return nil, err
	}
	tagNames, err := cleanLabelNames("tags", req.Tags)
	if err != nil {
		return nil, err
	}
	ingredientNames, err := cleanLabelNames("ingredients", req.Ingredients)
	if err != nil {
		return nil, err
	}

	recipe := &models.Recipe{
		UserID:      userID,
		Title:       title,
		TimeMinutes: *req.TimeMinutes,
		Price:       *req.Price,
		Link:        req.Link,
		Description: req.Description,
	}

	var tags []models.Tag
	var ingredients []models.Ingredient
	err = s.repo.WithTransaction(ctx, func(tx repository.Repository) error {
		if err := tx.Recipes().Create(ctx, recipe); err != nil {
			return err
		}
		var err error
		if tags, err = getOrCreateLabels(ctx, tx.Tags(), userID, tagNames); err != nil {
			return err
		}
		if err := tx.Recipes().AttachTags(ctx, recipe, tags...); err != nil {
			return err
		}
		if ingredients, err = getOrCreateLabels(ctx, tx.Ingredients(), userID, ingredientNames); err != nil {
			return err
		}
		return tx.Recipes().AttachIngredients(ctx, recipe, ingredients...)
	})
	if err != nil {
		return nil, err
	}

	recipe.Tags = tags
	recipe.Ingredients = ingredients
	slog.Info("recipe created", "recipe_id", recipe.ID, "user_id", userID,
		"tags", len(tags), "ingredients", len(ingredients))
	return recipe, nil
}

// UpdateRecipe applies the fields present in req to the user's recipe. A nil
// label list leaves that association untouched; any other list, including an
// empty one, replaces it.
func (s *RecipeService) UpdateRecipe(ctx context.Context, userID, recipeID uuid.UUID, req *types.UpdateRecipeRequest) (*models.Recipe, error) {
	var title string
	if req.Title != nil {
		var err error
		if title, err = cleanTitle(*req.Title); err != nil {
			return nil, err
		}
	}
	if req.TimeMinutes != nil {
		if err := validateTimeMinutes(*req.TimeMinutes); err != nil {
			return nil, err
		}
	}
	if req.Price != nil {
		if err := validatePrice(*req.Price); err != nil {
			return nil, err
		}
	}
	var tagNames, ingredientNames []string
	if req.Tags != nil {
		var err error
		if tagNames, err = cleanLabelNames("tags", *req.Tags); err != nil {
			return nil, err
		}
	}
	if req.Ingredients != nil {
		var err error
		if ingredientNames, err = cleanLabelNames("ingredients", *req.Ingredients); err != nil {
			return nil, err
		}
	}

	var updated *models.Recipe
	err := s.repo.WithTransaction(ctx, func(tx repository.Repository) error {
		recipe, err := tx.Recipes().GetForUpdate(ctx, userID, recipeID)
		if err != nil {
			return err
		}

		if req.Title != nil {
			recipe.Title = title
		}
		if req.TimeMinutes != nil {
			recipe.TimeMinutes = *req.TimeMinutes
		}
		if req.Price != nil {
			recipe.Price = *req.Price
		}
		if req.Link != nil {
			recipe.Link = *req.Link
		}
		if req.Description != nil {
			recipe.Description = *req.Description
		}
		if err := tx.Recipes().Update(ctx, recipe); err != nil {
			return err
		}

		// Labels always resolve under the recipe owner, never the editor.
		if req.Tags != nil {
			if err := tx.Recipes().ClearTags(ctx, recipe); err != nil {
				return err
			}
			tags, err := getOrCreateLabels(ctx, tx.Tags(), recipe.UserID, tagNames)
			if err != nil {
				return err
			}
			if err := tx.Recipes().AttachTags(ctx, recipe, tags...); err != nil {
				return err
			}
			recipe.Tags = tags
		}
		if req.Ingredients != nil {
			if err := tx.Recipes().ClearIngredients(ctx, recipe); err != nil {
				return err
			}
			ingredients, err := getOrCreateLabels(ctx, tx.Ingredients(), recipe.UserID, ingredientNames)
			if err != nil {
				return err
			}
			if err := tx.Recipes().AttachIngredients(ctx, recipe, ingredients...); err != nil {
				return err
			}
			recipe.Ingredients = ingredients
		}

		updated = recipe
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// GetRecipe returns the user's recipe with its tags and ingredients.
func (s *RecipeService) GetRecipe(ctx context.Context, userID, recipeID uuid.UUID) (*models.Recipe, error) {
	return s.repo.Recipes().Get(ctx, userID, recipeID)
}

// ListRecipes returns the user's recipes, newest first.
func (s *RecipeService) ListRecipes(ctx context.Context, userID uuid.UUID, opts repository.RecipeListOptions) ([]models.Recipe, error) {
	return s.repo.Recipes().List(ctx, userID, opts)
}

// DeleteRecipe removes the user's recipe. Its tags and ingredients remain.
func (s *RecipeService) DeleteRecipe(ctx context.Context, userID, recipeID uuid.UUID) error {
	recipe, err := s.repo.Recipes().Get(ctx, userID, recipeID)
	if err != nil {
		return err
	}
	if err := s.repo.Recipes().Delete(ctx, recipe); err != nil {
		return err
	}
	slog.Info("recipe deleted", "recipe_id", recipeID, "user_id", userID)
	return nil
}

// getOrCreateLabels resolves names to labels owned by userID, in order,
// creating the missing ones.
func getOrCreateLabels[T models.Label](ctx context.Context, store repository.LabelStore[T], userID uuid.UUID, names []string) ([]T, error) {
	labels := make([]T, 0, len(names))
	for _, name := range names {
		label, err := store.Find(ctx, userID, name)
		if errors.Is(err, repository.ErrNotFound) {
			label = models.NewLabel[T](userID, name)
			err = store.Create(ctx, label)
		}
		if err != nil {
			return nil, err
		}
		labels = append(labels, *label)
	}
	return labels, nil
}

// cleanLabelNames trims the requested names and drops repeats, keeping the
// first occurrence.
func cleanLabelNames(field string, labels []types.LabelRequest) ([]string, error) {
	names := make([]string, 0, len(labels))
	seen := make(map[string]struct{}, len(labels))
	for _, raw := range types.LabelNames(labels) {
		name, err := cleanLabelName(field, raw)
		if err != nil {
			return nil, err
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}
	return names, nil
}

func cleanLabelName(field, raw string) (string, error) {
	name := strings.TrimSpace(raw)
	if name == "" {
		return "", NewValidationError(field, "name may not be blank")
	}
	if utf8.RuneCountInString(name) > maxNameLength {
		return "", NewValidationError(field, "name may not exceed 255 characters")
	}
	return name, nil
}

func cleanTitle(raw string) (string, error) {
	title := strings.TrimSpace(raw)
	if title == "" {
		return "", NewValidationError("title", "this field may not be blank")
	}
	if utf8.RuneCountInString(title) > maxNameLength {
		return "", NewValidationError("title", "ensure this field has no more than 255 characters")
	}
	return title, nil
}

func validateTimeMinutes(minutes int) error {
	if minutes < 0 {
		return NewValidationError("time_minutes", "ensure this value is greater than or equal to 0")
	}
	return nil
}

// validatePrice enforces the decimal(5,2) column: at most two decimal
// places and three integer digits.
func validatePrice(price decimal.Decimal) error {
	if !price.Equal(price.Round(2)) {
		return NewValidationError("price", "ensure that there are no more than 2 decimal places")
	}
	if price.Abs().GreaterThanOrEqual(maxPrice) {
		return NewValidationError("price", "ensure that there are no more than 5 digits in total")
	}
	return nil
}
