// Package api contains the gin handlers of the recipe API.
package api

import (
	"github.com/gin-gonic/gin"

	"github.com/pageza/recipe-api/backend/internal/middleware"
	"github.com/pageza/recipe-api/backend/internal/service"
)

// Services are the dependencies of the API handlers.
type Services struct {
	Users   service.IUserService
	Recipes service.IRecipeService
	Labels  service.ILabelService
	Images  service.IImageService

	// RecipeCreateLimit throttles recipe creation when set.
	RecipeCreateLimit *middleware.RateLimiter
}

// SetupAPI registers every /api/v1 route on router.
func SetupAPI(router *gin.Engine, svc Services) {
	auth := middleware.AuthMiddleware(svc.Users)

	var createLimit gin.HandlerFunc
	if svc.RecipeCreateLimit != nil {
		createLimit = svc.RecipeCreateLimit.RateLimitMiddleware()
	}

	v1 := router.Group("/api/v1")
	{
		NewUserHandler(svc.Users).RegisterRoutes(v1, auth)
		NewRecipeHandler(svc.Recipes, svc.Images).RegisterRoutes(v1, auth, createLimit)
		NewLabelHandler(svc.Labels).RegisterRoutes(v1, auth)
	}
}
