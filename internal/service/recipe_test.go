package service_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/pageza/recipe-api/backend/internal/mocks"
	"github.com/pageza/recipe-api/backend/internal/models"
	"github.com/pageza/recipe-api/backend/internal/repository"
	"github.com/pageza/recipe-api/backend/internal/service"
	"github.com/pageza/recipe-api/backend/internal/testhelpers"
	"github.com/pageza/recipe-api/backend/internal/types"
)

func newRecipeService(t *testing.T) (*service.RecipeService, *gorm.DB) {
	t.Helper()
	db := testhelpers.SetupTestDB(t)
	return service.NewRecipeService(repository.New(db)), db
}

func labels(names ...string) []types.LabelRequest {
	out := make([]types.LabelRequest, 0, len(names))
	for _, n := range names {
		out = append(out, types.LabelRequest{Name: n})
	}
	return out
}

func labelsPtr(names ...string) *[]types.LabelRequest {
	l := labels(names...)
	return &l
}

func createRequest(title string) *types.CreateRecipeRequest {
	minutes := 30
	price := decimal.RequireFromString("2.50")
	return &types.CreateRecipeRequest{
		Title:       title,
		TimeMinutes: &minutes,
		Price:       &price,
	}
}

func tagNames(tags []models.Tag) []string {
	names := make([]string, 0, len(tags))
	for _, tag := range tags {
		names = append(names, tag.Name)
	}
	return names
}

func ingredientNames(ingredients []models.Ingredient) []string {
	names := make([]string, 0, len(ingredients))
	for _, ing := range ingredients {
		names = append(names, ing.Name)
	}
	return names
}

func TestCreateRecipeWithNewTags(t *testing.T) {
	svc, db := newRecipeService(t)
	user := testhelpers.CreateTestUser(t, db)

	req := createRequest("Thai Prawn Curry")
	req.Tags = labels("Thai", "Dinner")
	recipe, err := svc.CreateRecipe(context.Background(), user.ID, req)
	require.NoError(t, err)

	assert.Equal(t, user.ID, recipe.UserID)
	assert.Equal(t, []string{"Thai", "Dinner"}, tagNames(recipe.Tags))
	assert.Equal(t, int64(2), testhelpers.CountRows(t, db, "tags"))

	stored, err := svc.GetRecipe(context.Background(), user.ID, recipe.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"Thai", "Dinner"}, tagNames(stored.Tags))
	for _, tag := range stored.Tags {
		assert.Equal(t, user.ID, tag.UserID)
	}
}

func TestCreateRecipeCollapsesDuplicateNames(t *testing.T) {
	svc, db := newRecipeService(t)
	user := testhelpers.CreateTestUser(t, db)

	req := createRequest("Pho")
	req.Tags = labels("a", "b", "a")
	req.Ingredients = labels("Noodles", " Noodles ", "Beef")
	recipe, err := svc.CreateRecipe(context.Background(), user.ID, req)
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "b"}, tagNames(recipe.Tags))
	assert.Equal(t, []string{"Noodles", "Beef"}, ingredientNames(recipe.Ingredients))
	assert.Equal(t, int64(2), testhelpers.CountRows(t, db, "recipe_tags"))
	assert.Equal(t, int64(2), testhelpers.CountRows(t, db, "ingredients"))
}

func TestCreateRecipeReusesExistingTag(t *testing.T) {
	svc, db := newRecipeService(t)
	user := testhelpers.CreateTestUser(t, db)
	indian := testhelpers.CreateTestTag(t, db, user.ID, "Indian")

	req := createRequest("Pongal")
	req.Tags = labels("Indian", "Breakfast")
	recipe, err := svc.CreateRecipe(context.Background(), user.ID, req)
	require.NoError(t, err)

	require.Len(t, recipe.Tags, 2)
	assert.Equal(t, indian.ID, recipe.Tags[0].ID)
	assert.Equal(t, int64(2), testhelpers.CountRows(t, db, "tags"))
}

func TestCreateRecipeDoesNotReuseOtherUsersLabels(t *testing.T) {
	svc, db := newRecipeService(t)
	user := testhelpers.CreateTestUser(t, db)
	other := testhelpers.CreateTestUser(t, db)
	foreign := testhelpers.CreateTestIngredient(t, db, other.ID, "Salt")

	req := createRequest("Chips")
	req.Ingredients = labels("Salt")
	recipe, err := svc.CreateRecipe(context.Background(), user.ID, req)
	require.NoError(t, err)

	require.Len(t, recipe.Ingredients, 1)
	assert.NotEqual(t, foreign.ID, recipe.Ingredients[0].ID)
	assert.Equal(t, user.ID, recipe.Ingredients[0].UserID)
	assert.Equal(t, int64(2), testhelpers.CountRows(t, db, "ingredients"))
}

func TestCreateRecipeValidation(t *testing.T) {
	svc, db := newRecipeService(t)
	user := testhelpers.CreateTestUser(t, db)

	tests := []struct {
		name  string
		field string
		edit  func(req *types.CreateRecipeRequest)
	}{
		{"blank title", "title", func(r *types.CreateRecipeRequest) { r.Title = "   " }},
		{"negative time", "time_minutes", func(r *types.CreateRecipeRequest) { m := -1; r.TimeMinutes = &m }},
		{"missing price", "price", func(r *types.CreateRecipeRequest) { r.Price = nil }},
		{"too precise price", "price", func(r *types.CreateRecipeRequest) { p := decimal.RequireFromString("1.234"); r.Price = &p }},
		{"price too large", "price", func(r *types.CreateRecipeRequest) { p := decimal.NewFromInt(1000); r.Price = &p }},
		{"blank tag", "tags", func(r *types.CreateRecipeRequest) { r.Tags = labels("ok", " ") }},
		{"long ingredient", "ingredients", func(r *types.CreateRecipeRequest) { r.Ingredients = labels(strings.Repeat("x", 256)) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := createRequest("Valid")
			tt.edit(req)

			_, err := svc.CreateRecipe(context.Background(), user.ID, req)
			var validationErr *service.ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.Equal(t, tt.field, validationErr.Field)
		})
	}

	assert.Equal(t, int64(0), testhelpers.CountRows(t, db, "recipes"))
	assert.Equal(t, int64(0), testhelpers.CountRows(t, db, "tags"))
}

func TestCreateRecipeLabelErrorPropagates(t *testing.T) {
	repo := mocks.NewMockRepository()
	svc := service.NewRecipeService(repo)
	userID := uuid.New()
	boom := errors.New("db unavailable")

	repo.On("WithTransaction", mock.Anything).Return()
	repo.RecipeStore.On("Create", mock.Anything, mock.AnythingOfType("*models.Recipe")).Return(nil)
	repo.TagStore.On("Find", mock.Anything, userID, "Vegan").Return(nil, boom)

	req := createRequest("Salad")
	req.Tags = labels("Vegan")
	recipe, err := svc.CreateRecipe(context.Background(), userID, req)

	assert.Nil(t, recipe)
	assert.ErrorIs(t, err, boom)
	repo.AssertExpectations(t)
	repo.RecipeStore.AssertNotCalled(t, "AttachTags", mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateRecipeRollsBackOnFailure(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	user := testhelpers.CreateTestUser(t, db)
	svc := service.NewRecipeService(repository.New(db))

	// a dropped join table makes attaching ingredients fail after the
	// recipe and tag rows were written
	require.NoError(t, db.Migrator().DropTable("recipe_ingredients"))

	req := createRequest("Broken")
	req.Tags = labels("Lunch")
	req.Ingredients = labels("Bread")
	_, err := svc.CreateRecipe(context.Background(), user.ID, req)
	require.Error(t, err)

	assert.Equal(t, int64(0), testhelpers.CountRows(t, db, "recipes"))
	assert.Equal(t, int64(0), testhelpers.CountRows(t, db, "tags"))
}

func TestUpdateRecipeClearsTags(t *testing.T) {
	svc, db := newRecipeService(t)
	user := testhelpers.CreateTestUser(t, db)
	ctx := context.Background()

	req := createRequest("Toast")
	req.Tags = labels("a", "b")
	recipe, err := svc.CreateRecipe(ctx, user.ID, req)
	require.NoError(t, err)

	updated, err := svc.UpdateRecipe(ctx, user.ID, recipe.ID, &types.UpdateRecipeRequest{Tags: labelsPtr()})
	require.NoError(t, err)
	assert.Empty(t, updated.Tags)

	assert.Equal(t, int64(0), testhelpers.CountRows(t, db, "recipe_tags"))
	assert.Equal(t, int64(2), testhelpers.CountRows(t, db, "tags"))
}

func TestUpdateRecipeReplacesLabels(t *testing.T) {
	svc, db := newRecipeService(t)
	user := testhelpers.CreateTestUser(t, db)
	ctx := context.Background()

	req := createRequest("Tacos")
	req.Tags = labels("Breakfast")
	req.Ingredients = labels("Lime")
	recipe, err := svc.CreateRecipe(ctx, user.ID, req)
	require.NoError(t, err)

	lunch := testhelpers.CreateTestTag(t, db, user.ID, "Lunch")
	updated, err := svc.UpdateRecipe(ctx, user.ID, recipe.ID, &types.UpdateRecipeRequest{
		Tags:        labelsPtr("Lunch"),
		Ingredients: labelsPtr("Chili", "Lime"),
	})
	require.NoError(t, err)

	require.Len(t, updated.Tags, 1)
	assert.Equal(t, lunch.ID, updated.Tags[0].ID)
	assert.Equal(t, []string{"Chili", "Lime"}, ingredientNames(updated.Ingredients))

	stored, err := svc.GetRecipe(ctx, user.ID, recipe.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Lunch"}, tagNames(stored.Tags))
	assert.ElementsMatch(t, []string{"Chili", "Lime"}, ingredientNames(stored.Ingredients))
}

func TestPartialUpdateLeavesLabelsUntouched(t *testing.T) {
	svc, db := newRecipeService(t)
	user := testhelpers.CreateTestUser(t, db)
	ctx := context.Background()

	req := createRequest("Chicken")
	req.Tags = labels("Dinner")
	req.Ingredients = labels("Chicken")
	recipe, err := svc.CreateRecipe(ctx, user.ID, req)
	require.NoError(t, err)

	title := "Roast chicken"
	price := decimal.RequireFromString("9.99")
	updated, err := svc.UpdateRecipe(ctx, user.ID, recipe.ID, &types.UpdateRecipeRequest{Title: &title, Price: &price})
	require.NoError(t, err)

	assert.Equal(t, "Roast chicken", updated.Title)
	assert.Equal(t, 30, updated.TimeMinutes)
	assert.Equal(t, []string{"Dinner"}, tagNames(updated.Tags))

	stored, err := svc.GetRecipe(ctx, user.ID, recipe.ID)
	require.NoError(t, err)
	assert.Equal(t, "Roast chicken", stored.Title)
	assert.Equal(t, "9.99", stored.Price.StringFixed(2))
	assert.Equal(t, []string{"Dinner"}, tagNames(stored.Tags))
	assert.Equal(t, []string{"Chicken"}, ingredientNames(stored.Ingredients))
}

func TestUpdateRecipeOfOtherUser(t *testing.T) {
	svc, db := newRecipeService(t)
	owner := testhelpers.CreateTestUser(t, db)
	intruder := testhelpers.CreateTestUser(t, db)
	recipe := testhelpers.CreateTestRecipe(t, db, owner.ID, "Secret")

	title := "Stolen"
	_, err := svc.UpdateRecipe(context.Background(), intruder.ID, recipe.ID, &types.UpdateRecipeRequest{
		Title: &title,
		Tags:  labelsPtr("Mine"),
	})
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.Equal(t, int64(0), testhelpers.CountRows(t, db, "tags"))
}

func TestUpdateRecipeValidation(t *testing.T) {
	svc, db := newRecipeService(t)
	user := testhelpers.CreateTestUser(t, db)
	recipe := testhelpers.CreateTestRecipe(t, db, user.ID, "Stew")

	blank := " "
	_, err := svc.UpdateRecipe(context.Background(), user.ID, recipe.ID, &types.UpdateRecipeRequest{Title: &blank})
	var validationErr *service.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "title", validationErr.Field)

	_, err = svc.UpdateRecipe(context.Background(), user.ID, recipe.ID, &types.UpdateRecipeRequest{Ingredients: labelsPtr("")})
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "ingredients", validationErr.Field)
}

func TestUpdateRecipeStoreErrorPropagates(t *testing.T) {
	repo := mocks.NewMockRepository()
	svc := service.NewRecipeService(repo)
	userID, recipeID := uuid.New(), uuid.New()
	recipe := &models.Recipe{ID: recipeID, UserID: userID, Title: "Soup"}
	boom := errors.New("write failed")

	repo.On("WithTransaction", mock.Anything).Return()
	repo.RecipeStore.On("GetForUpdate", mock.Anything, userID, recipeID).Return(recipe, nil)
	repo.RecipeStore.On("Update", mock.Anything, recipe).Return(nil)
	repo.RecipeStore.On("ClearIngredients", mock.Anything, recipe).Return(boom)

	_, err := svc.UpdateRecipe(context.Background(), userID, recipeID, &types.UpdateRecipeRequest{Ingredients: labelsPtr("Leek")})
	assert.ErrorIs(t, err, boom)
	repo.AssertExpectations(t)
}

func TestListRecipesFiltersByLabel(t *testing.T) {
	svc, db := newRecipeService(t)
	user := testhelpers.CreateTestUser(t, db)
	ctx := context.Background()

	veg := createRequest("Veg curry")
	veg.Tags = labels("Vegan")
	vegRecipe, err := svc.CreateRecipe(ctx, user.ID, veg)
	require.NoError(t, err)

	_, err = svc.CreateRecipe(ctx, user.ID, createRequest("Steak"))
	require.NoError(t, err)

	all, err := svc.ListRecipes(ctx, user.ID, repository.RecipeListOptions{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	filtered, err := svc.ListRecipes(ctx, user.ID, repository.RecipeListOptions{TagIDs: []uuid.UUID{vegRecipe.Tags[0].ID}})
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, vegRecipe.ID, filtered[0].ID)
}

func TestDeleteRecipeKeepsLabels(t *testing.T) {
	svc, db := newRecipeService(t)
	user := testhelpers.CreateTestUser(t, db)
	ctx := context.Background()

	req := createRequest("Omelette")
	req.Tags = labels("Breakfast")
	recipe, err := svc.CreateRecipe(ctx, user.ID, req)
	require.NoError(t, err)

	require.NoError(t, svc.DeleteRecipe(ctx, user.ID, recipe.ID))
	assert.Equal(t, int64(0), testhelpers.CountRows(t, db, "recipes"))
	assert.Equal(t, int64(1), testhelpers.CountRows(t, db, "tags"))

	assert.ErrorIs(t, svc.DeleteRecipe(ctx, user.ID, recipe.ID), repository.ErrNotFound)
}
