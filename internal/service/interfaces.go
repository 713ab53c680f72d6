package service

import (
	"context"
	"io"

	"github.com/google/uuid"

	"github.com/pageza/recipe-api/backend/internal/models"
	"github.com/pageza/recipe-api/backend/internal/repository"
	"github.com/pageza/recipe-api/backend/internal/types"
)

// IUserService defines user account and authentication operations
type IUserService interface {
	CreateUser(ctx context.Context, email, password, name string) (*models.User, error)
	CreateSuperuser(ctx context.Context, email, password string) (*models.User, error)
	Authenticate(ctx context.Context, email, password string) (*models.User, error)
	GenerateToken(user *models.User) (string, error)
	ValidateToken(token string) (*types.TokenClaims, error)
	GetUser(ctx context.Context, userID uuid.UUID) (*models.User, error)
	UpdateUser(ctx context.Context, userID uuid.UUID, req *types.UpdateUserRequest) (*models.User, error)
}

// IRecipeService defines recipe operations, including tag and ingredient
// assignment
type IRecipeService interface {
	CreateRecipe(ctx context.Context, userID uuid.UUID, req *types.CreateRecipeRequest) (*models.Recipe, error)
	UpdateRecipe(ctx context.Context, userID, recipeID uuid.UUID, req *types.UpdateRecipeRequest) (*models.Recipe, error)
	GetRecipe(ctx context.Context, userID, recipeID uuid.UUID) (*models.Recipe, error)
	ListRecipes(ctx context.Context, userID uuid.UUID, opts repository.RecipeListOptions) ([]models.Recipe, error)
	DeleteRecipe(ctx context.Context, userID, recipeID uuid.UUID) error
}

// ILabelService defines direct management of tags and ingredients
type ILabelService interface {
	ListTags(ctx context.Context, userID uuid.UUID, assignedOnly bool) ([]models.Tag, error)
	UpdateTag(ctx context.Context, userID, tagID uuid.UUID, name string) (*models.Tag, error)
	DeleteTag(ctx context.Context, userID, tagID uuid.UUID) error
	ListIngredients(ctx context.Context, userID uuid.UUID, assignedOnly bool) ([]models.Ingredient, error)
	UpdateIngredient(ctx context.Context, userID, ingredientID uuid.UUID, name string) (*models.Ingredient, error)
	DeleteIngredient(ctx context.Context, userID, ingredientID uuid.UUID) error
}

// IImageService defines recipe image storage operations
type IImageService interface {
	UploadRecipeImage(ctx context.Context, userID, recipeID uuid.UUID, filename, contentType string, r io.Reader) (*models.Recipe, error)
	ImageURL(ctx context.Context, recipe *models.Recipe) (string, error)
}
