// Package repository provides per-entity stores over gorm. Every query is
// scoped by the owning user's ID, which callers pass explicitly.
package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pageza/recipe-api/backend/internal/models"
)

// ErrNotFound is returned when no record matches the lookup.
var ErrNotFound = errors.New("record not found")

// UserStore persists user accounts.
type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// LabelListOptions filters label listings.
type LabelListOptions struct {
	// AssignedOnly restricts the result to labels attached to a recipe.
	AssignedOnly bool
}

// LabelStore persists tags or ingredients, uniquely keyed by (owner, name).
type LabelStore[T models.Label] interface {
	Find(ctx context.Context, userID uuid.UUID, name string) (*T, error)
	Get(ctx context.Context, userID, id uuid.UUID) (*T, error)
	List(ctx context.Context, userID uuid.UUID, opts LabelListOptions) ([]T, error)
	Create(ctx context.Context, label *T) error
	Update(ctx context.Context, label *T) error
	Delete(ctx context.Context, label *T) error
}

// TagStore persists tags.
type TagStore = LabelStore[models.Tag]

// IngredientStore persists ingredients.
type IngredientStore = LabelStore[models.Ingredient]

// RecipeListOptions filters recipe listings. A recipe matches when it has
// any of the given tags and any of the given ingredients.
type RecipeListOptions struct {
	TagIDs        []uuid.UUID
	IngredientIDs []uuid.UUID
}

// RecipeStore persists recipes and their tag/ingredient associations.
type RecipeStore interface {
	Get(ctx context.Context, userID, id uuid.UUID) (*models.Recipe, error)
	GetForUpdate(ctx context.Context, userID, id uuid.UUID) (*models.Recipe, error)
	List(ctx context.Context, userID uuid.UUID, opts RecipeListOptions) ([]models.Recipe, error)
	Create(ctx context.Context, recipe *models.Recipe) error
	Update(ctx context.Context, recipe *models.Recipe) error
	Delete(ctx context.Context, recipe *models.Recipe) error

	AttachTags(ctx context.Context, recipe *models.Recipe, tags ...models.Tag) error
	ClearTags(ctx context.Context, recipe *models.Recipe) error
	AttachIngredients(ctx context.Context, recipe *models.Recipe, ingredients ...models.Ingredient) error
	ClearIngredients(ctx context.Context, recipe *models.Recipe) error
}

// Repository groups the stores and provides the transaction boundary.
type Repository interface {
	Users() UserStore
	Tags() TagStore
	Ingredients() IngredientStore
	Recipes() RecipeStore

	// WithTransaction runs fn against stores bound to a single transaction.
	// The transaction commits when fn returns nil and rolls back otherwise.
	WithTransaction(ctx context.Context, fn func(repo Repository) error) error
}

// GormRepository implements Repository on top of a gorm connection.
type GormRepository struct {
	db *gorm.DB
}

// Ensure GormRepository implements Repository
var _ Repository = (*GormRepository)(nil)

// New creates a Repository backed by db
func New(db *gorm.DB) *GormRepository {
	return &GormRepository{db: db}
}

func (r *GormRepository) Users() UserStore {
	return &userStore{db: r.db}
}

func (r *GormRepository) Tags() TagStore {
	return &labelStore[models.Tag]{db: r.db, joinTable: "recipe_tags", joinColumn: "tag_id"}
}

func (r *GormRepository) Ingredients() IngredientStore {
	return &labelStore[models.Ingredient]{db: r.db, joinTable: "recipe_ingredients", joinColumn: "ingredient_id"}
}

func (r *GormRepository) Recipes() RecipeStore {
	return &recipeStore{db: r.db}
}

func (r *GormRepository) WithTransaction(ctx context.Context, fn func(repo Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&GormRepository{db: tx})
	})
}

// translate maps gorm's not-found error onto ErrNotFound and wraps the rest.
func translate(err error, op string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return fmt.Errorf("%s: %w", op, err)
}
