package api_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/pageza/recipe-api/backend/internal/api"
	"github.com/pageza/recipe-api/backend/internal/models"
	"github.com/pageza/recipe-api/backend/internal/repository"
	"github.com/pageza/recipe-api/backend/internal/service"
	"github.com/pageza/recipe-api/backend/internal/storage"
	"github.com/pageza/recipe-api/backend/internal/testhelpers"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// testServer wires the API over an in-memory database and a temp media dir.
type testServer struct {
	router *gin.Engine
	db     *gorm.DB
	users  *service.UserService
	disk   *storage.LocalDisk
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	db := testhelpers.SetupTestDB(t)
	repo := repository.New(db)
	disk, err := storage.NewLocalDisk(t.TempDir(), "/media")
	require.NoError(t, err)

	users := service.NewUserService(repo, "test-secret", time.Hour)
	router := gin.New()
	api.SetupAPI(router, api.Services{
		Users:   users,
		Recipes: service.NewRecipeService(repo),
		Labels:  service.NewLabelService(repo),
		Images:  service.NewImageService(repo, disk),
	})
	return &testServer{router: router, db: db, users: users, disk: disk}
}

// login creates a user and returns it with a bearer token.
func (s *testServer) login(t *testing.T) (*models.User, string) {
	t.Helper()
	user := testhelpers.CreateTestUser(t, s.db)
	token, err := s.users.GenerateToken(user)
	require.NoError(t, err)
	return user, token
}

func (s *testServer) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		reader = bytes.NewReader(testhelpers.JSONMarshal(t, body))
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *testServer) upload(t *testing.T, path, token, field, filename string, content []byte) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}
