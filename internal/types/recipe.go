package types

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pageza/recipe-api/backend/internal/models"
)

// LabelRequest names a tag or ingredient inside a recipe payload, or the new
// name when a label is edited directly.
type LabelRequest struct {
	Name string `json:"name" binding:"required,max=255"`
}

// LabelNames flattens label payloads into their names, keeping order.
func LabelNames(labels []LabelRequest) []string {
	names := make([]string, 0, len(labels))
	for _, l := range labels {
		names = append(names, l.Name)
	}
	return names
}

// CreateRecipeRequest represents the request body for creating a recipe
type CreateRecipeRequest struct {
	Title       string           `json:"title" binding:"required,max=255"`
	TimeMinutes *int             `json:"time_minutes" binding:"required,gte=0"`
	Price       *decimal.Decimal `json:"price" binding:"required"`
	Link        string           `json:"link" binding:"max=255"`
	Description string           `json:"description"`
	Tags        []LabelRequest   `json:"tags" binding:"omitempty,dive"`
	Ingredients []LabelRequest   `json:"ingredients" binding:"omitempty,dive"`
}

// UpdateRecipeRequest represents a full (PUT) or partial (PATCH) recipe update.
// A nil field is left untouched. A non-nil, empty label list clears that set.
type UpdateRecipeRequest struct {
	Title       *string          `json:"title" binding:"omitempty,min=1,max=255"`
	TimeMinutes *int             `json:"time_minutes" binding:"omitempty,gte=0"`
	Price       *decimal.Decimal `json:"price"`
	Link        *string          `json:"link" binding:"omitempty,max=255"`
	Description *string          `json:"description"`
	Tags        *[]LabelRequest  `json:"tags" binding:"omitempty,dive"`
	Ingredients *[]LabelRequest  `json:"ingredients" binding:"omitempty,dive"`
}

// MissingForReplace lists the required fields absent from a full update.
func (r *UpdateRecipeRequest) MissingForReplace() []string {
	var missing []string
	if r.Title == nil {
		missing = append(missing, "title")
	}
	if r.TimeMinutes == nil {
		missing = append(missing, "time_minutes")
	}
	if r.Price == nil {
		missing = append(missing, "price")
	}
	return missing
}

// LabelResponse is the payload for a tag or ingredient
type LabelResponse struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// RecipeResponse is the list/create/update representation of a recipe
type RecipeResponse struct {
	ID          uuid.UUID       `json:"id"`
	Title       string          `json:"title"`
	TimeMinutes int             `json:"time_minutes"`
	Price       string          `json:"price"`
	Link        string          `json:"link"`
	Tags        []LabelResponse `json:"tags"`
	Ingredients []LabelResponse `json:"ingredients"`
}

// RecipeDetailResponse adds the fields only shown on a single recipe
type RecipeDetailResponse struct {
	RecipeResponse
	Description string `json:"description"`
	Image       string `json:"image"`
}

// RecipeImageResponse is returned after an image upload
type RecipeImageResponse struct {
	ID    uuid.UUID `json:"id"`
	Image string    `json:"image"`
}

// NewLabelResponse builds the API payload for a tag or ingredient
func NewLabelResponse[T models.Label](label *T) LabelResponse {
	return LabelResponse{ID: models.LabelID(label), Name: models.LabelName(label)}
}

// NewLabelResponses maps a slice of tags or ingredients to payloads
func NewLabelResponses[T models.Label](labels []T) []LabelResponse {
	out := make([]LabelResponse, 0, len(labels))
	for i := range labels {
		out = append(out, NewLabelResponse(&labels[i]))
	}
	return out
}

// NewRecipeResponse builds the list representation of a recipe
func NewRecipeResponse(recipe *models.Recipe) RecipeResponse {
	return RecipeResponse{
		ID:          recipe.ID,
		Title:       recipe.Title,
		TimeMinutes: recipe.TimeMinutes,
		Price:       recipe.Price.StringFixed(2),
		Link:        recipe.Link,
		Tags:        NewLabelResponses(recipe.Tags),
		Ingredients: NewLabelResponses(recipe.Ingredients),
	}
}

// NewRecipeDetailResponse builds the detail representation of a recipe.
// imageURL is the public location of the stored image, if any.
func NewRecipeDetailResponse(recipe *models.Recipe, imageURL string) RecipeDetailResponse {
	return RecipeDetailResponse{
		RecipeResponse: NewRecipeResponse(recipe),
		Description:    recipe.Description,
		Image:          imageURL,
	}
}
