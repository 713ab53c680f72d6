package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/recipe-api/backend/internal/service"
	"github.com/pageza/recipe-api/backend/internal/types"
)

// UserHandler serves registration, login and the current user's account
type UserHandler struct {
	users service.IUserService
}

func NewUserHandler(users service.IUserService) *UserHandler {
	return &UserHandler{users: users}
}

func (h *UserHandler) RegisterRoutes(router *gin.RouterGroup, auth gin.HandlerFunc) {
	user := router.Group("/user")
	{
		user.POST("/create", h.CreateUser)
		user.POST("/token", h.CreateToken)
		user.GET("/me", auth, h.GetMe)
		user.PUT("/me", auth, h.UpdateMe)
		user.PATCH("/me", auth, h.UpdateMe)
	}
}

func (h *UserHandler) CreateUser(c *gin.Context) {
	var req types.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	user, err := h.users.CreateUser(c.Request.Context(), req.Email, req.Password, req.Name)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, types.NewUserResponse(user))
}

func (h *UserHandler) CreateToken(c *gin.Context) {
	var req types.TokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	user, err := h.users.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	token, err := h.users.GenerateToken(user)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, types.TokenResponse{Token: token})
}

func (h *UserHandler) GetMe(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	user, err := h.users.GetUser(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, types.NewUserResponse(user))
}

func (h *UserHandler) UpdateMe(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req types.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	user, err := h.users.UpdateUser(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, types.NewUserResponse(user))
}
