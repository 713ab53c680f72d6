package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/pageza/recipe-api/backend/internal/mocks"
	"github.com/pageza/recipe-api/backend/internal/models"
	"github.com/pageza/recipe-api/backend/internal/repository"
	"github.com/pageza/recipe-api/backend/internal/service"
	"github.com/pageza/recipe-api/backend/internal/testhelpers"
	"github.com/pageza/recipe-api/backend/internal/types"
)

const testJWTSecret = "test-secret"

func newUserService(t *testing.T) (*service.UserService, repository.Repository) {
	t.Helper()
	repo := repository.New(testhelpers.SetupTestDB(t))
	return service.NewUserService(repo, testJWTSecret, time.Hour), repo
}

func TestNormalizeEmail(t *testing.T) {
	tests := []struct {
		email    string
		expected string
	}{
		{"test1@EXAMPLE.com", "test1@example.com"},
		{"Test2@Example.com", "Test2@example.com"},
		{"TEST3@EXAMPLE.COM", "TEST3@example.com"},
		{"test4@example.COM", "test4@example.com"},
		{"quoted\"@\"local@EXAMPLE.com", "quoted\"@\"local@example.com"},
		{"NoAtSign", "NoAtSign"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			assert.Equal(t, tt.expected, service.NormalizeEmail(tt.email))
		})
	}
}

func TestCreateUser(t *testing.T) {
	svc, repo := newUserService(t)
	ctx := context.Background()

	user, err := svc.CreateUser(ctx, "Test2@Example.com", "sample123", "Sample")
	require.NoError(t, err)

	assert.Equal(t, "Test2@example.com", user.Email)
	assert.True(t, user.IsActive)
	assert.False(t, user.IsStaff)
	assert.True(t, user.CheckPassword("sample123"))
	assert.NotEqual(t, "sample123", user.PasswordHash)

	stored, err := repo.Users().FindByEmail(ctx, "Test2@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, stored.ID)
}

func TestCreateUserWithoutEmail(t *testing.T) {
	repo := mocks.NewMockRepository()
	svc := service.NewUserService(repo, testJWTSecret, time.Hour)

	user, err := svc.CreateUser(context.Background(), "", "test123", "")
	assert.Nil(t, user)
	assert.ErrorIs(t, err, service.ErrEmailRequired)

	var validationErr *service.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "email", validationErr.Field)

	// nothing reached the store
	repo.AssertExpectations(t)
	repo.UserStore.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	svc, _ := newUserService(t)
	ctx := context.Background()

	_, err := svc.CreateUser(ctx, "dup@example.com", "sample123", "")
	require.NoError(t, err)

	_, err = svc.CreateUser(ctx, "dup@EXAMPLE.COM", "sample123", "")
	assert.ErrorIs(t, err, service.ErrEmailTaken)
}

func TestCreateUserStoreErrorPropagates(t *testing.T) {
	repo := mocks.NewMockRepository()
	svc := service.NewUserService(repo, testJWTSecret, time.Hour)
	boom := errors.New("connection reset")

	repo.UserStore.On("FindByEmail", mock.Anything, "a@example.com").Return(nil, repository.ErrNotFound)
	repo.UserStore.On("Create", mock.Anything, mock.AnythingOfType("*models.User")).Return(boom)

	_, err := svc.CreateUser(context.Background(), "a@example.com", "sample123", "")
	assert.ErrorIs(t, err, boom)
	repo.AssertExpectations(t)
}

func TestCreateSuperuser(t *testing.T) {
	svc, _ := newUserService(t)

	user, err := svc.CreateSuperuser(context.Background(), "admin@example.com", "test123")
	require.NoError(t, err)
	assert.True(t, user.IsSuperuser)
	assert.True(t, user.IsStaff)
	assert.True(t, user.IsActive)
}

func TestAuthenticate(t *testing.T) {
	svc, repo := newUserService(t)
	ctx := context.Background()

	created, err := svc.CreateUser(ctx, "login@example.com", "goodpass", "")
	require.NoError(t, err)

	user, err := svc.Authenticate(ctx, "login@EXAMPLE.com", "goodpass")
	require.NoError(t, err)
	assert.Equal(t, created.ID, user.ID)

	_, err = svc.Authenticate(ctx, "login@example.com", "badpass")
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)

	_, err = svc.Authenticate(ctx, "nobody@example.com", "goodpass")
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)

	created.IsActive = false
	require.NoError(t, repo.Users().Update(ctx, created))
	_, err = svc.Authenticate(ctx, "login@example.com", "goodpass")
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)
}

func TestGenerateAndValidateToken(t *testing.T) {
	svc, _ := newUserService(t)
	user := &models.User{ID: uuid.New(), Email: "token@example.com"}

	token, err := svc.GenerateToken(user)
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, user.Email, claims.Email)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, time.Minute)
}

func TestValidateTokenRejectsForeignSignature(t *testing.T) {
	svc, _ := newUserService(t)
	other := service.NewUserService(mocks.NewMockRepository(), "other-secret", time.Hour)

	token, err := other.GenerateToken(&models.User{ID: uuid.New(), Email: "x@example.com"})
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.ErrorIs(t, err, service.ErrInvalidToken)

	_, err = svc.ValidateToken("not-a-token")
	assert.ErrorIs(t, err, service.ErrInvalidToken)
}

func TestValidateTokenRejectsExpired(t *testing.T) {
	repo := mocks.NewMockRepository()
	svc := service.NewUserService(repo, testJWTSecret, time.Nanosecond)

	token, err := svc.GenerateToken(&models.User{ID: uuid.New(), Email: "x@example.com"})
	require.NoError(t, err)
	time.Sleep(time.Second)

	_, err = svc.ValidateToken(token)
	assert.ErrorIs(t, err, service.ErrInvalidToken)
}

func TestUpdateUser(t *testing.T) {
	svc, _ := newUserService(t)
	ctx := context.Background()

	user, err := svc.CreateUser(ctx, "update@example.com", "oldpass", "Old")
	require.NoError(t, err)

	name := "New Name"
	password := "newpass123"
	updated, err := svc.UpdateUser(ctx, user.ID, &types.UpdateUserRequest{Name: &name, Password: &password})
	require.NoError(t, err)
	assert.Equal(t, "New Name", updated.Name)

	_, err = svc.Authenticate(ctx, "update@example.com", "newpass123")
	assert.NoError(t, err)

	// partial update keeps the password
	other := "Other"
	_, err = svc.UpdateUser(ctx, user.ID, &types.UpdateUserRequest{Name: &other})
	require.NoError(t, err)
	_, err = svc.Authenticate(ctx, "update@example.com", "newpass123")
	assert.NoError(t, err)

	_, err = svc.UpdateUser(ctx, uuid.New(), &types.UpdateUserRequest{Name: &other})
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
