package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/avelina-r/foodgram/backend/config"
	"github.com/avelina-r/foodgram/backend/internal/apperr"
	"github.com/avelina-r/foodgram/backend/internal/service"
)

// ReferenceHandler serves the tag and ingredient reference data, readable
// without authentication
type ReferenceHandler struct {
	referenceService *service.ReferenceService
	limits           config.Limits
}

// NewReferenceHandler creates a new ReferenceHandler instance
func NewReferenceHandler(referenceService *service.ReferenceService, limits config.Limits) *ReferenceHandler {
	return &ReferenceHandler{referenceService: referenceService, limits: limits}
}

// RegisterRoutes registers the tag and ingredient routes
func (h *ReferenceHandler) RegisterRoutes(router *gin.RouterGroup) {
	tags := router.Group("/tags")
	{
		tags.GET("", h.ListTags)
		tags.GET("/:id", h.GetTag)
	}
	ingredients := router.Group("/ingredients")
	{
		ingredients.GET("", h.ListIngredients)
		ingredients.GET("/:id", h.GetIngredient)
	}
}

// ListTags returns every tag
func (h *ReferenceHandler) ListTags(c *gin.Context) {
	tags, err := h.referenceService.ListTags(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, tags)
}

// GetTag returns one tag
func (h *ReferenceHandler) GetTag(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		_ = c.Error(apperr.Validation("invalid tag id"))
		return
	}
	tag, err := h.referenceService.GetTag(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, tag)
}

// ListIngredients returns ingredients, optionally filtered by name prefix
func (h *ReferenceHandler) ListIngredients(c *gin.Context) {
	ingredients, err := h.referenceService.SearchIngredients(
		c.Request.Context(), c.Query(h.limits.QueryName))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, ingredients)
}

// GetIngredient returns one ingredient
func (h *ReferenceHandler) GetIngredient(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		_ = c.Error(apperr.Validation("invalid ingredient id"))
		return
	}
	ingredient, err := h.referenceService.GetIngredient(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, ingredient)
}
