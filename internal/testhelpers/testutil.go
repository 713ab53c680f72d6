package testhelpers

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/pageza/recipe-api/backend/internal/models"
)

// TestPassword is the password of every user created by CreateTestUser.
const TestPassword = "testpass123"

// CreateTestUser creates a user with a unique email and TestPassword.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	user := &models.User{
		Email:    fmt.Sprintf("user-%s@example.com", uuid.NewString()[:8]),
		Name:     "Test User",
		IsActive: true,
	}
	require.NoError(t, user.SetPassword(TestPassword))
	require.NoError(t, db.Create(user).Error, "failed to create test user")
	return user
}

// CreateTestRecipe creates a recipe owned by userID with default values.
func CreateTestRecipe(t *testing.T, db *gorm.DB, userID uuid.UUID, title string) *models.Recipe {
	t.Helper()
	recipe := &models.Recipe{
		UserID:      userID,
		Title:       title,
		TimeMinutes: 22,
		Price:       decimal.RequireFromString("5.25"),
		Link:        "http://example.com/recipe.pdf",
		Description: "Sample description",
	}
	require.NoError(t, db.Create(recipe).Error, "failed to create test recipe")
	return recipe
}

// CreateTestTag creates a tag owned by userID.
func CreateTestTag(t *testing.T, db *gorm.DB, userID uuid.UUID, name string) *models.Tag {
	t.Helper()
	tag := &models.Tag{UserID: userID, Name: name}
	require.NoError(t, db.Create(tag).Error, "failed to create test tag")
	return tag
}

// CreateTestIngredient creates an ingredient owned by userID.
func CreateTestIngredient(t *testing.T, db *gorm.DB, userID uuid.UUID, name string) *models.Ingredient {
	t.Helper()
	ingredient := &models.Ingredient{UserID: userID, Name: name}
	require.NoError(t, db.Create(ingredient).Error, "failed to create test ingredient")
	return ingredient
}

// CountRows returns the number of rows in table.
func CountRows(t *testing.T, db *gorm.DB, table string) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Table(table).Count(&n).Error)
	return n
}

// JSONMarshal is a helper function to marshal JSON for testing
func JSONMarshal(t *testing.T, v interface{}) []byte {
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("Failed to marshal JSON: %v", err)
	}
	return data
}
