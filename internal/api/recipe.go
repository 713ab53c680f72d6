package api

import (
	"bufio"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pageza/recipe-api/backend/internal/models"
	"github.com/pageza/recipe-api/backend/internal/repository"
	"github.com/pageza/recipe-api/backend/internal/service"
	"github.com/pageza/recipe-api/backend/internal/types"
)

// maxImageSize bounds recipe image uploads.
const maxImageSize = 10 << 20

// RecipeHandler serves the recipe endpoints, including image upload
type RecipeHandler struct {
	recipes service.IRecipeService
	images  service.IImageService
}

func NewRecipeHandler(recipes service.IRecipeService, images service.IImageService) *RecipeHandler {
	return &RecipeHandler{recipes: recipes, images: images}
}

// RegisterRoutes mounts the recipe routes behind auth. createLimit, when not
// nil, runs before recipe creation.
func (h *RecipeHandler) RegisterRoutes(router *gin.RouterGroup, auth gin.HandlerFunc, createLimit gin.HandlerFunc) {
	recipes := router.Group("/recipes", auth)
	{
		recipes.GET("", h.ListRecipes)
		if createLimit != nil {
			recipes.POST("", createLimit, h.CreateRecipe)
		} else {
			recipes.POST("", h.CreateRecipe)
		}
		recipes.GET("/:id", h.GetRecipe)
		recipes.PUT("/:id", h.ReplaceRecipe)
		recipes.PATCH("/:id", h.PatchRecipe)
		recipes.DELETE("/:id", h.DeleteRecipe)
		recipes.POST("/:id/upload-image", h.UploadImage)
	}
}

func (h *RecipeHandler) ListRecipes(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	tagIDs, err := parseIDList(c.Query("tags"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("tags: %v", err)})
		return
	}
	ingredientIDs, err := parseIDList(c.Query("ingredients"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("ingredients: %v", err)})
		return
	}

	recipes, err := h.recipes.ListRecipes(c.Request.Context(), userID, repository.RecipeListOptions{
		TagIDs:        tagIDs,
		IngredientIDs: ingredientIDs,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	resp := make([]types.RecipeResponse, 0, len(recipes))
	for i := range recipes {
		resp = append(resp, types.NewRecipeResponse(&recipes[i]))
	}
	c.JSON(http.StatusOK, resp)
}

func (h *RecipeHandler) CreateRecipe(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req types.CreateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	recipe, err := h.recipes.CreateRecipe(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	h.respondDetail(c, http.StatusCreated, recipe)
}

func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	recipe, err := h.recipes.GetRecipe(c.Request.Context(), userID, id)
	if err != nil {
		respondError(c, err)
		return
	}
	h.respondDetail(c, http.StatusOK, recipe)
}

// ReplaceRecipe handles PUT: title, time_minutes and price are required.
func (h *RecipeHandler) ReplaceRecipe(c *gin.Context) {
	h.updateRecipe(c, true)
}

// PatchRecipe handles PATCH: any subset of fields may be sent.
func (h *RecipeHandler) PatchRecipe(c *gin.Context) {
	h.updateRecipe(c, false)
}

func (h *RecipeHandler) updateRecipe(c *gin.Context, replace bool) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req types.UpdateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	if replace {
		if missing := req.MissingForReplace(); len(missing) > 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "missing required fields: " + strings.Join(missing, ", ")})
			return
		}
	}

	recipe, err := h.recipes.UpdateRecipe(c.Request.Context(), userID, id, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	h.respondDetail(c, http.StatusOK, recipe)
}

func (h *RecipeHandler) DeleteRecipe(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.recipes.DeleteRecipe(c.Request.Context(), userID, id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// UploadImage stores the multipart "image" file for the recipe.
func (h *RecipeHandler) UploadImage(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxImageSize)
	header, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image: no file was submitted"})
		return
	}
	file, err := header.Open()
	if err != nil {
		respondError(c, err)
		return
	}
	defer file.Close()

	// The declared content type is not trusted; sniff the payload.
	reader := bufio.NewReaderSize(file, 512)
	head, _ := reader.Peek(512)
	contentType := http.DetectContentType(head)

	recipe, err := h.images.UploadRecipeImage(c.Request.Context(), userID, id, header.Filename, contentType, reader)
	if err != nil {
		respondError(c, err)
		return
	}
	url, err := h.images.ImageURL(c.Request.Context(), recipe)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, types.RecipeImageResponse{ID: recipe.ID, Image: url})
}

func (h *RecipeHandler) respondDetail(c *gin.Context, status int, recipe *models.Recipe) {
	url, err := h.images.ImageURL(c.Request.Context(), recipe)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(status, types.NewRecipeDetailResponse(recipe, url))
}

// parseIDList parses a comma separated list of IDs, e.g. "?tags=<id>,<id>".
func parseIDList(raw string) ([]uuid.UUID, error) {
	if raw == "" {
		return nil, nil
	}
	var ids []uuid.UUID
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := uuid.Parse(part)
		if err != nil {
			return nil, fmt.Errorf("invalid id %q", part)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
