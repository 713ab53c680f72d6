package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pageza/recipe-api/backend/internal/models"
	"github.com/pageza/recipe-api/backend/internal/service"
	"github.com/pageza/recipe-api/backend/internal/types"
)

// LabelHandler serves the tag and ingredient endpoints
type LabelHandler struct {
	labels service.ILabelService
}

func NewLabelHandler(labels service.ILabelService) *LabelHandler {
	return &LabelHandler{labels: labels}
}

func (h *LabelHandler) RegisterRoutes(router *gin.RouterGroup, auth gin.HandlerFunc) {
	labelRoutes[models.Tag]{
		list:   h.labels.ListTags,
		update: h.labels.UpdateTag,
		delete: h.labels.DeleteTag,
	}.register(router.Group("/tags", auth))

	labelRoutes[models.Ingredient]{
		list:   h.labels.ListIngredients,
		update: h.labels.UpdateIngredient,
		delete: h.labels.DeleteIngredient,
	}.register(router.Group("/ingredients", auth))
}

// labelRoutes binds one kind of label to list, rename and delete handlers.
type labelRoutes[T models.Label] struct {
	list   func(ctx context.Context, userID uuid.UUID, assignedOnly bool) ([]T, error)
	update func(ctx context.Context, userID, id uuid.UUID, name string) (*T, error)
	delete func(ctx context.Context, userID, id uuid.UUID) error
}

func (r labelRoutes[T]) register(group *gin.RouterGroup) {
	group.GET("", r.handleList)
	group.PUT("/:id", r.handleUpdate)
	group.PATCH("/:id", r.handleUpdate)
	group.DELETE("/:id", r.handleDelete)
}

// handleList returns the user's labels; ?assigned_only=1 limits the result
// to labels used by at least one recipe.
func (r labelRoutes[T]) handleList(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	assignedOnly := false
	switch c.Query("assigned_only") {
	case "", "0", "false":
	case "1", "true":
		assignedOnly = true
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "assigned_only must be 0 or 1"})
		return
	}

	labels, err := r.list(c.Request.Context(), userID, assignedOnly)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, types.NewLabelResponses(labels))
}

func (r labelRoutes[T]) handleUpdate(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req types.LabelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	label, err := r.update(c.Request.Context(), userID, id, req.Name)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, types.NewLabelResponse(label))
}

func (r labelRoutes[T]) handleDelete(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := r.delete(c.Request.Context(), userID, id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
