package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/pageza/recipe-api/backend/internal/models"
	"github.com/pageza/recipe-api/backend/internal/repository"
)

// MockRepository is a mock implementation of repository.Repository.
// WithTransaction runs the callback against the same mock.
type MockRepository struct {
	mock.Mock
	UserStore       *MockUserStore
	TagStore        *MockLabelStore[models.Tag]
	IngredientStore *MockLabelStore[models.Ingredient]
	RecipeStore     *MockRecipeStore
}

// NewMockRepository returns a repository whose stores are fresh mocks
func NewMockRepository() *MockRepository {
	return &MockRepository{
		UserStore:       &MockUserStore{},
		TagStore:        &MockLabelStore[models.Tag]{},
		IngredientStore: &MockLabelStore[models.Ingredient]{},
		RecipeStore:     &MockRecipeStore{},
	}
}

func (m *MockRepository) Users() repository.UserStore             { return m.UserStore }
func (m *MockRepository) Tags() repository.TagStore               { return m.TagStore }
func (m *MockRepository) Ingredients() repository.IngredientStore { return m.IngredientStore }
func (m *MockRepository) Recipes() repository.RecipeStore         { return m.RecipeStore }

// WithTransaction records the call and then invokes fn with m
func (m *MockRepository) WithTransaction(ctx context.Context, fn func(repo repository.Repository) error) error {
	m.Called(ctx)
	return fn(m)
}

// AssertExpectations asserts the expectations of every store
func (m *MockRepository) AssertExpectations(t mock.TestingT) bool {
	return m.Mock.AssertExpectations(t) &&
		m.UserStore.AssertExpectations(t) &&
		m.TagStore.AssertExpectations(t) &&
		m.IngredientStore.AssertExpectations(t) &&
		m.RecipeStore.AssertExpectations(t)
}

// MockUserStore is a mock implementation of repository.UserStore
type MockUserStore struct {
	mock.Mock
}

func (m *MockUserStore) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserStore) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserStore) Update(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserStore) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockLabelStore is a mock implementation of repository.LabelStore
type MockLabelStore[T models.Label] struct {
	mock.Mock
}

func (m *MockLabelStore[T]) Find(ctx context.Context, userID uuid.UUID, name string) (*T, error) {
	args := m.Called(ctx, userID, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*T), args.Error(1)
}

func (m *MockLabelStore[T]) Get(ctx context.Context, userID, id uuid.UUID) (*T, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*T), args.Error(1)
}

func (m *MockLabelStore[T]) List(ctx context.Context, userID uuid.UUID, opts repository.LabelListOptions) ([]T, error) {
	args := m.Called(ctx, userID, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]T), args.Error(1)
}

func (m *MockLabelStore[T]) Create(ctx context.Context, label *T) error {
	args := m.Called(ctx, label)
	return args.Error(0)
}

func (m *MockLabelStore[T]) Update(ctx context.Context, label *T) error {
	args := m.Called(ctx, label)
	return args.Error(0)
}

func (m *MockLabelStore[T]) Delete(ctx context.Context, label *T) error {
	args := m.Called(ctx, label)
	return args.Error(0)
}

// MockRecipeStore is a mock implementation of repository.RecipeStore
type MockRecipeStore struct {
	mock.Mock
}

func (m *MockRecipeStore) Get(ctx context.Context, userID, id uuid.UUID) (*models.Recipe, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Recipe), args.Error(1)
}

func (m *MockRecipeStore) GetForUpdate(ctx context.Context, userID, id uuid.UUID) (*models.Recipe, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Recipe), args.Error(1)
}

func (m *MockRecipeStore) List(ctx context.Context, userID uuid.UUID, opts repository.RecipeListOptions) ([]models.Recipe, error) {
	args := m.Called(ctx, userID, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Recipe), args.Error(1)
}

func (m *MockRecipeStore) Create(ctx context.Context, recipe *models.Recipe) error {
	args := m.Called(ctx, recipe)
	return args.Error(0)
}

func (m *MockRecipeStore) Update(ctx context.Context, recipe *models.Recipe) error {
	args := m.Called(ctx, recipe)
	return args.Error(0)
}

func (m *MockRecipeStore) Delete(ctx context.Context, recipe *models.Recipe) error {
	args := m.Called(ctx, recipe)
	return args.Error(0)
}

func (m *MockRecipeStore) AttachTags(ctx context.Context, recipe *models.Recipe, tags ...models.Tag) error {
	args := m.Called(ctx, recipe, tags)
	return args.Error(0)
}

func (m *MockRecipeStore) ClearTags(ctx context.Context, recipe *models.Recipe) error {
	args := m.Called(ctx, recipe)
	return args.Error(0)
}

func (m *MockRecipeStore) AttachIngredients(ctx context.Context, recipe *models.Recipe, ingredients ...models.Ingredient) error {
	args := m.Called(ctx, recipe, ingredients)
	return args.Error(0)
}

func (m *MockRecipeStore) ClearIngredients(ctx context.Context, recipe *models.Recipe) error {
	args := m.Called(ctx, recipe)
	return args.Error(0)
}
