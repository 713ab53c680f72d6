package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/pageza/recipe-api/backend/internal/models"
)

// recipeColumns are the scalar columns written by Update.
var recipeColumns = []string{"title", "time_minutes", "price", "link", "description", "image", "updated_at"}

type recipeStore struct {
	db *gorm.DB
}

func (s *recipeStore) Get(ctx context.Context, userID, id uuid.UUID) (*models.Recipe, error) {
	var recipe models.Recipe
	err := s.db.WithContext(ctx).
		Preload(models.AssocTags).
		Preload(models.AssocIngredients).
		Where("user_id = ? AND id = ?", userID, id).
		First(&recipe).Error
	if err != nil {
		return nil, translate(err, "failed to get recipe")
	}
	return &recipe, nil
}

// GetForUpdate loads a recipe and, on postgres, locks its row until the
// surrounding transaction ends.
func (s *recipeStore) GetForUpdate(ctx context.Context, userID, id uuid.UUID) (*models.Recipe, error) {
	query := s.db.WithContext(ctx)
	if s.db.Dialector.Name() == "postgres" {
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var recipe models.Recipe
	if err := query.Where("user_id = ? AND id = ?", userID, id).First(&recipe).Error; err != nil {
		return nil, translate(err, "failed to get recipe")
	}
	if err := s.db.WithContext(ctx).Model(&recipe).Association(models.AssocTags).Find(&recipe.Tags); err != nil {
		return nil, translate(err, "failed to load recipe tags")
	}
	if err := s.db.WithContext(ctx).Model(&recipe).Association(models.AssocIngredients).Find(&recipe.Ingredients); err != nil {
		return nil, translate(err, "failed to load recipe ingredients")
	}
	return &recipe, nil
}

func (s *recipeStore) List(ctx context.Context, userID uuid.UUID, opts RecipeListOptions) ([]models.Recipe, error) {
	query := s.db.WithContext(ctx).
		Preload(models.AssocTags).
		Preload(models.AssocIngredients).
		Where("user_id = ?", userID)

	if len(opts.TagIDs) > 0 {
		tagged := s.db.WithContext(ctx).Table("recipe_tags").Select("recipe_id").Where("tag_id IN ?", opts.TagIDs)
		query = query.Where("id IN (?)", tagged)
	}
	if len(opts.IngredientIDs) > 0 {
		using := s.db.WithContext(ctx).Table("recipe_ingredients").Select("recipe_id").Where("ingredient_id IN ?", opts.IngredientIDs)
		query = query.Where("id IN (?)", using)
	}

	var recipes []models.Recipe
	if err := query.Order("created_at DESC").Find(&recipes).Error; err != nil {
		return nil, translate(err, "failed to list recipes")
	}
	return recipes, nil
}

func (s *recipeStore) Create(ctx context.Context, recipe *models.Recipe) error {
	err := s.db.WithContext(ctx).Omit(clause.Associations).Create(recipe).Error
	return translate(err, "failed to create recipe")
}

// Update writes the scalar columns only; associations are managed separately.
func (s *recipeStore) Update(ctx context.Context, recipe *models.Recipe) error {
	result := s.db.WithContext(ctx).
		Model(recipe).
		Select(recipeColumns).
		Omit(clause.Associations).
		Updates(recipe)
	if result.Error != nil {
		return translate(result.Error, "failed to update recipe")
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes the recipe and its join rows. Tags and ingredients survive.
func (s *recipeStore) Delete(ctx context.Context, recipe *models.Recipe) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(recipe).Association(models.AssocTags).Clear(); err != nil {
			return err
		}
		if err := tx.Model(recipe).Association(models.AssocIngredients).Clear(); err != nil {
			return err
		}
		result := tx.Delete(recipe)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	return translate(err, "failed to delete recipe")
}

func (s *recipeStore) AttachTags(ctx context.Context, recipe *models.Recipe, tags ...models.Tag) error {
	if len(tags) == 0 {
		return nil
	}
	err := s.db.WithContext(ctx).Model(recipe).Association(models.AssocTags).Append(tags)
	return translate(err, "failed to attach tags")
}

func (s *recipeStore) ClearTags(ctx context.Context, recipe *models.Recipe) error {
	err := s.db.WithContext(ctx).Model(recipe).Association(models.AssocTags).Clear()
	return translate(err, "failed to clear tags")
}

func (s *recipeStore) AttachIngredients(ctx context.Context, recipe *models.Recipe, ingredients ...models.Ingredient) error {
	if len(ingredients) == 0 {
		return nil
	}
	err := s.db.WithContext(ctx).Model(recipe).Association(models.AssocIngredients).Append(ingredients)
	return translate(err, "failed to attach ingredients")
}

func (s *recipeStore) ClearIngredients(ctx context.Context, recipe *models.Recipe) error {
	err := s.db.WithContext(ctx).Model(recipe).Association(models.AssocIngredients).Clear()
	return translate(err, "failed to clear ingredients")
}
