package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/pageza/recipe-api/backend/internal/models"
	"github.com/pageza/recipe-api/backend/internal/repository"
	"github.com/pageza/recipe-api/backend/internal/types"
)

// DefaultTokenExpiry is used when the service is built without an expiry.
const DefaultTokenExpiry = 24 * time.Hour

// UserService creates accounts and issues auth tokens
type UserService struct {
	repo        repository.Repository
	jwtSecret   []byte
	tokenExpiry time.Duration
	now         func() time.Time
}

// Ensure UserService implements IUserService
var _ IUserService = (*UserService)(nil)

// NewUserService creates a new UserService instance
func NewUserService(repo repository.Repository, jwtSecret string, tokenExpiry time.Duration) *UserService {
	if tokenExpiry <= 0 {
		tokenExpiry = DefaultTokenExpiry
	}
	return &UserService{
		repo:        repo,
		jwtSecret:   []byte(jwtSecret),
		tokenExpiry: tokenExpiry,
		now:         time.Now,
	}
}

// NormalizeEmail lowercases the domain part of an email address. The local
// part is case sensitive and kept as given. Input without an "@" is
// returned unchanged.
func NormalizeEmail(email string) string {
	trimmed := strings.TrimSpace(email)
	at := strings.LastIndex(trimmed, "@")
	if at < 0 {
		return email
	}
	return trimmed[:at+1] + strings.ToLower(trimmed[at+1:])
}

// CreateUser creates an active account with a hashed password.
func (s *UserService) CreateUser(ctx context.Context, email, password, name string) (*models.User, error) {
	return s.createUser(ctx, email, password, name, false)
}

// CreateSuperuser creates an account with staff and superuser rights.
func (s *UserService) CreateSuperuser(ctx context.Context, email, password string) (*models.User, error) {
	return s.createUser(ctx, email, password, "", true)
}

func (s *UserService) createUser(ctx context.Context, email, password, name string, superuser bool) (*models.User, error) {
	if email == "" {
		return nil, ErrEmailRequired
	}
	email = NormalizeEmail(email)

	_, err := s.repo.Users().FindByEmail(ctx, email)
	switch {
	case err == nil:
		return nil, ErrEmailTaken
	case !errors.Is(err, repository.ErrNotFound):
		return nil, err
	}

	user := &models.User{
		Email:       email,
		Name:        name,
		IsActive:    true,
		IsStaff:     superuser,
		IsSuperuser: superuser,
	}
	if err := user.SetPassword(password); err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	if err := s.repo.Users().Create(ctx, user); err != nil {
		return nil, err
	}

	slog.Info("user created", "user_id", user.ID, "superuser", superuser)
	return user, nil
}

// Authenticate returns the active user matching the credentials. Every
// failure is reported as ErrInvalidCredentials.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.repo.Users().FindByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !user.IsActive || !user.CheckPassword(password) {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// GenerateToken signs an HS256 token for user.
func (s *UserService) GenerateToken(user *models.User) (string, error) {
	now := s.now()
	claims := &types.TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenExpiry)),
		},
		UserID: user.ID,
		Email:  user.Email,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// ValidateToken parses tokenString and returns its claims.
func (s *UserService) ValidateToken(tokenString string) (*types.TokenClaims, error) {
	claims := &types.TokenClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.UserID == uuid.Nil {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// GetUser returns the user with the given ID.
func (s *UserService) GetUser(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	return s.repo.Users().FindByID(ctx, userID)
}

// UpdateUser changes the name and/or password of a user.
func (s *UserService) UpdateUser(ctx context.Context, userID uuid.UUID, req *types.UpdateUserRequest) (*models.User, error) {
	user, err := s.repo.Users().FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		user.Name = strings.TrimSpace(*req.Name)
	}
	if req.Password != nil {
		if *req.Password == "" {
			return nil, NewValidationError("password", "this field may not be blank")
		}
		if err := user.SetPassword(*req.Password); err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
	}
	if err := s.repo.Users().Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
