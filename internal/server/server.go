package server

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/pageza/recipe-api/backend/config"
	"github.com/pageza/recipe-api/backend/internal/api"
	"github.com/pageza/recipe-api/backend/internal/database"
	"github.com/pageza/recipe-api/backend/internal/middleware"
	"github.com/pageza/recipe-api/backend/internal/repository"
	"github.com/pageza/recipe-api/backend/internal/service"
	"github.com/pageza/recipe-api/backend/internal/storage"
)

// shutdownTimeout bounds how long in-flight requests may take on shutdown.
const shutdownTimeout = 10 * time.Second

// Server represents the HTTP server
type Server struct {
	cfg    *config.Config
	router *gin.Engine
	http   *http.Server
	db     *gorm.DB
}

// New assembles the router: middleware, API routes, health, metrics and,
// for the local storage driver, the media files. redisClient may be nil,
// which disables rate limiting.
func New(cfg *config.Config, db *gorm.DB, disk storage.Disk, redisClient *redis.Client) *Server {
	if cfg.Environment == config.Production {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger())
	router.Use(middleware.Metrics())
	router.Use(middleware.CORS(cfg.CORSOrigins))

	repo := repository.New(db)
	services := api.Services{
		Users:   service.NewUserService(repo, cfg.JWTSecret, cfg.JWTExpiry),
		Recipes: service.NewRecipeService(repo),
		Labels:  service.NewLabelService(repo),
		Images:  service.NewImageService(repo, disk),
	}
	if redisClient != nil && cfg.RecipeCreateLimit > 0 {
		services.RecipeCreateLimit = middleware.NewRecipeCreationRateLimiter(redisClient, cfg.RecipeCreateLimit)
	}
	api.SetupAPI(router, services)

	s := &Server{cfg: cfg, router: router, db: db}
	router.GET("/health", s.health)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	if local, ok := disk.(*storage.LocalDisk); ok {
		router.Static(cfg.Storage.MediaURL, local.Root())
	}
	return s
}

// Handler exposes the router, e.g. for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if err := database.HealthCheck(ctx, s.db); err != nil {
		slog.Error("health check failed", "error", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "database": "down"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "database": "up"})
}

// Start serves HTTP until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	s.http = &http.Server{
		Addr:              net.JoinHostPort(s.cfg.ServerHost, s.cfg.ServerPort),
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Starting server", "addr", s.http.Addr, "environment", s.cfg.Environment)
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return s.Stop(shutdownCtx)
}

// Stop gracefully stops the HTTP server
func (s *Server) Stop(ctx context.Context) error {
	if s.http != nil {
		return s.http.Shutdown(ctx)
	}
	return nil
}
