package main

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/pageza/recipe-api/backend/config"
	"github.com/pageza/recipe-api/backend/internal/models"
	"github.com/pageza/recipe-api/backend/internal/testhelpers"
)

func useTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db := testhelpers.SetupTestDB(t)
	cfg := &config.Config{JWTSecret: "test-secret"}

	orig := openDB
	openDB = func() (*gorm.DB, *config.Config, error) { return db, cfg, nil }
	t.Cleanup(func() { openDB = orig })
	return db
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestMigrate(t *testing.T) {
	useTestDB(t)

	out, err := execute(t, "migrate")
	require.NoError(t, err)
	assert.Contains(t, out, "Migrations applied.")
}

func TestCreateSuperuser(t *testing.T) {
	db := useTestDB(t)

	out, err := execute(t, "createsuperuser", "--email", "Admin@EXAMPLE.com", "--password", "secret123")
	require.NoError(t, err)
	assert.Contains(t, out, "Admin@example.com")

	var user models.User
	require.NoError(t, db.Where("email = ?", "Admin@example.com").First(&user).Error)
	assert.True(t, user.IsStaff)
	assert.True(t, user.IsSuperuser)
	assert.True(t, user.CheckPassword("secret123"))
}

func TestCreateUserPasswordFromEnv(t *testing.T) {
	db := useTestDB(t)
	t.Setenv(passwordEnv, "fromenv123")

	_, err := execute(t, "createuser", "--email", "cook@example.com", "--name", "Cook")
	require.NoError(t, err)

	var user models.User
	require.NoError(t, db.Where("email = ?", "cook@example.com").First(&user).Error)
	assert.Equal(t, "Cook", user.Name)
	assert.False(t, user.IsSuperuser)
	assert.True(t, user.CheckPassword("fromenv123"))
}

func TestCreateUserRequiresPassword(t *testing.T) {
	useTestDB(t)
	t.Setenv(passwordEnv, "")

	_, err := execute(t, "createuser", "--email", "cook@example.com")
	require.Error(t, err)
	assert.Contains(t, err.Error(), passwordEnv)
}

func TestCreateUserRequiresEmail(t *testing.T) {
	useTestDB(t)

	_, err := execute(t, "createuser", "--password", "secret123")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "email")
}

func TestSeed(t *testing.T) {
	db := useTestDB(t)

	out, err := execute(t, "seed")
	require.NoError(t, err)
	assert.Contains(t, out, "demo@example.com")

	assert.Equal(t, int64(len(demoRecipes)), testhelpers.CountRows(t, db, "recipes"))
	// "Dinner" and "Breakfast" are shared between demo recipes.
	assert.Equal(t, int64(6), testhelpers.CountRows(t, db, "tags"))
}
