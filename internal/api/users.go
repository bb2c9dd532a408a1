package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/avelina-r/foodgram/backend/config"
	"github.com/avelina-r/foodgram/backend/internal/apperr"
	"github.com/avelina-r/foodgram/backend/internal/middleware"
	"github.com/avelina-r/foodgram/backend/internal/service"
)

// UserHandler serves user profiles and subscriptions
type UserHandler struct {
	userService     *service.UserService
	relationService *service.RelationService
	limits          config.Limits
}

// NewUserHandler creates a new UserHandler instance
func NewUserHandler(userService *service.UserService, relationService *service.RelationService, limits config.Limits) *UserHandler {
	return &UserHandler{
		userService:     userService,
		relationService: relationService,
		limits:          limits,
	}
}

// RegisterRoutes registers the user routes; all require authentication
func (h *UserHandler) RegisterRoutes(router *gin.RouterGroup) {
	users := router.Group("/users")
	{
		users.GET("", h.ListUsers)
		users.GET("/subscriptions", h.ListSubscriptions)
		users.GET("/:id", h.GetUser)
		users.POST("/:id/subscribe", h.Subscribe)
		users.DELETE("/:id/subscribe", h.Unsubscribe)
	}
	router.GET("/me", h.Me)
}

// Me returns the authenticated user's own profile
func (h *UserHandler) Me(c *gin.Context) {
	userID, _ := middleware.UserID(c)
	user, err := h.userService.Get(c.Request.Context(), userID)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, newUserResponse(user, false))
}

// GetUser returns one user's public profile
func (h *UserHandler) GetUser(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		_ = c.Error(apperr.Validation("invalid user id"))
		return
	}

	user, err := h.userService.Get(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}

	viewerID, _ := middleware.UserID(c)
	subscribed, err := h.userService.IsSubscribed(c.Request.Context(), viewerID, user.ID)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, newUserResponse(user, subscribed))
}

// ListUsers returns a paginated user listing
func (h *UserHandler) ListUsers(c *gin.Context) {
	page := parsePageParams(c, h.limits)
	users, total, err := h.userService.List(c.Request.Context(), page.Limit, page.Offset)
	if err != nil {
		_ = c.Error(err)
		return
	}

	results := make([]UserResponse, len(users))
	for i := range users {
		results[i] = newUserResponse(&users[i], false)
	}
	c.JSON(http.StatusOK, PageResponse{Count: total, Results: results})
}

// Subscribe follows an author
func (h *UserHandler) Subscribe(c *gin.Context) {
	authorID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		_ = c.Error(apperr.Validation("invalid user id"))
		return
	}

	userID, _ := middleware.UserID(c)
	if err := h.relationService.Subscribe(c.Request.Context(), userID, authorID); err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "subscribed"})
}

// Unsubscribe stops following an author
func (h *UserHandler) Unsubscribe(c *gin.Context) {
	authorID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		_ = c.Error(apperr.Validation("invalid user id"))
		return
	}

	userID, _ := middleware.UserID(c)
	if err := h.relationService.Unsubscribe(c.Request.Context(), userID, authorID); err != nil {
		_ = c.Error(err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListSubscriptions returns the authors the caller follows, each with
// recipe previews
func (h *UserHandler) ListSubscriptions(c *gin.Context) {
	userID, _ := middleware.UserID(c)
	page := parsePageParams(c, h.limits)

	authors, total, err := h.userService.Subscriptions(
		c.Request.Context(), userID, page.Limit, page.Offset, h.limits.DefaultPageSize)
	if err != nil {
		_ = c.Error(err)
		return
	}

	results := make([]SubscriptionResponse, len(authors))
	for i, author := range authors {
		previews := make([]RecipePreviewResponse, len(author.Recipes))
		for j := range author.Recipes {
			previews[j] = newRecipePreview(&author.Recipes[j])
		}
		results[i] = SubscriptionResponse{
			UserResponse: newUserResponse(&authors[i].Author, true),
			Recipes:      previews,
			RecipesCount: author.RecipesCount,
		}
	}
	c.JSON(http.StatusOK, PageResponse{Count: total, Results: results})
}
