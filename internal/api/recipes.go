package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/avelina-r/foodgram/backend/config"
	"github.com/avelina-r/foodgram/backend/internal/apperr"
	"github.com/avelina-r/foodgram/backend/internal/middleware"
	"github.com/avelina-r/foodgram/backend/internal/service"
)

// RecipeHandler serves recipe CRUD, favorite/cart toggles and the
// shopping-list download
type RecipeHandler struct {
	recipeService   *service.RecipeService
	relationService *service.RelationService
	listService     *service.ShoppingListService
	userService     *service.UserService
	imageService    *service.ImageService
	limits          config.Limits
}

// NewRecipeHandler creates a new RecipeHandler instance. imageService may be
// nil when S3 is not configured; plain image URLs are then stored as-is.
func NewRecipeHandler(
	recipeService *service.RecipeService,
	relationService *service.RelationService,
	listService *service.ShoppingListService,
	userService *service.UserService,
	imageService *service.ImageService,
	limits config.Limits,
) *RecipeHandler {
	return &RecipeHandler{
		recipeService:   recipeService,
		relationService: relationService,
		listService:     listService,
		userService:     userService,
		imageService:    imageService,
		limits:          limits,
	}
}

// RegisterReadRoutes registers the recipe read routes. They are reachable
// anonymously; a bearer token only adds the per-viewer annotations.
func (h *RecipeHandler) RegisterReadRoutes(router *gin.RouterGroup) {
	recipes := router.Group("/recipes")
	{
		recipes.GET("", h.ListRecipes)
		recipes.GET("/:id", h.GetRecipe)
	}
}

// RegisterRoutes registers the recipe write routes and the shopping-list
// download; these require authentication
func (h *RecipeHandler) RegisterRoutes(router *gin.RouterGroup) {
	recipes := router.Group("/recipes")
	{
		recipes.POST("", h.CreateRecipe)
		recipes.GET("/shopping_cart/download", h.DownloadShoppingCart)
		recipes.PATCH("/:id", h.UpdateRecipe)
		recipes.DELETE("/:id", h.DeleteRecipe)
		recipes.POST("/:id/favorite", h.toggleAdd(h.relationService.AddFavorite))
		recipes.DELETE("/:id/favorite", h.toggleRemove(h.relationService.RemoveFavorite))
		recipes.POST("/:id/shopping_cart", h.toggleAdd(h.relationService.AddToCart))
		recipes.DELETE("/:id/shopping_cart", h.toggleRemove(h.relationService.RemoveFromCart))
	}
}

// ListRecipes returns filtered recipes with pagination
func (h *RecipeHandler) ListRecipes(c *gin.Context) {
	viewerID, authed := middleware.UserID(c)
	page := parsePageParams(c, h.limits)

	filters := service.RecipeFilters{
		Limit:  page.Limit,
		Offset: page.Offset,
	}
	if authed {
		filters.Viewer = &viewerID
	}
	if raw := c.Query(h.limits.QueryTags); raw != "" {
		filters.TagSlugs = strings.Split(raw, ",")
	}
	if raw := c.Query(h.limits.QueryAuthor); raw != "" {
		authorID, err := uuid.Parse(raw)
		if err != nil {
			_ = c.Error(apperr.Validation("invalid author id"))
			return
		}
		filters.AuthorID = &authorID
	}
	filters.Favorited = isTruthy(c.Query(h.limits.QueryFavorited))
	filters.InCart = isTruthy(c.Query(h.limits.QueryInCart))

	recipes, total, err := h.recipeService.List(c.Request.Context(), filters)
	if err != nil {
		_ = c.Error(err)
		return
	}

	ids := make([]uuid.UUID, len(recipes))
	for i := range recipes {
		ids[i] = recipes[i].ID
	}
	favorited, inCart, err := h.recipeService.Annotations(c.Request.Context(), viewerID, ids)
	if err != nil {
		_ = c.Error(err)
		return
	}

	results := make([]RecipeResponse, len(recipes))
	for i := range recipes {
		results[i] = newRecipeResponse(&recipes[i], favorited[recipes[i].ID], inCart[recipes[i].ID])
	}
	c.JSON(http.StatusOK, PageResponse{Count: total, Results: results})
}

// GetRecipe returns a single recipe with viewer annotations
func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		_ = c.Error(apperr.Validation("invalid recipe id"))
		return
	}

	recipe, err := h.recipeService.Get(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}

	viewerID, _ := middleware.UserID(c)
	favorited, inCart, err := h.recipeService.Annotations(c.Request.Context(), viewerID, []uuid.UUID{id})
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, newRecipeResponse(recipe, favorited[id], inCart[id]))
}

// CreateRecipe validates the payload and persists the recipe atomically
func (h *RecipeHandler) CreateRecipe(c *gin.Context) {
	var req RecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	input, err := h.buildInput(c, &req)
	if err != nil {
		_ = c.Error(err)
		return
	}

	userID, _ := middleware.UserID(c)
	recipe, err := h.recipeService.Create(c.Request.Context(), userID, *input)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, newRecipeResponse(recipe, false, false))
}

// UpdateRecipe replaces the recipe fields and both association sets
func (h *RecipeHandler) UpdateRecipe(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		_ = c.Error(apperr.Validation("invalid recipe id"))
		return
	}

	var req RecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	input, err := h.buildInput(c, &req)
	if err != nil {
		_ = c.Error(err)
		return
	}

	userID, _ := middleware.UserID(c)
	recipe, err := h.recipeService.Update(c.Request.Context(), id, userID, middleware.IsAdmin(c), *input)
	if err != nil {
		_ = c.Error(err)
		return
	}

	viewerID, _ := middleware.UserID(c)
	favorited, inCart, err := h.recipeService.Annotations(c.Request.Context(), viewerID, []uuid.UUID{id})
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, newRecipeResponse(recipe, favorited[id], inCart[id]))
}

// DeleteRecipe removes a recipe and its dependents
func (h *RecipeHandler) DeleteRecipe(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		_ = c.Error(apperr.Validation("invalid recipe id"))
		return
	}

	userID, _ := middleware.UserID(c)
	if err := h.recipeService.Delete(c.Request.Context(), id, userID, middleware.IsAdmin(c)); err != nil {
		_ = c.Error(err)
		return
	}
	c.Status(http.StatusNoContent)
}

// DownloadShoppingCart renders the aggregated shopping list as an
// attachment, text by default or CSV via ?format=csv
func (h *RecipeHandler) DownloadShoppingCart(c *gin.Context) {
	userID, _ := middleware.UserID(c)
	user, err := h.userService.Get(c.Request.Context(), userID)
	if err != nil {
		_ = c.Error(err)
		return
	}

	format := service.FormatText
	contentType := "text/plain; charset=utf-8"
	filename := "shopping_cart.txt"
	if c.Query("format") == "csv" {
		format = service.FormatCSV
		contentType = "text/csv; charset=utf-8"
		filename = "shopping_cart.csv"
	}

	doc, err := h.listService.Render(c.Request.Context(), user, format)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, contentType, doc)
}

// relationOp is a relation add or remove bound to (user, recipe)
type relationOp func(ctx context.Context, userID, recipeID uuid.UUID) error

// toggleAdd adapts a relation add operation into a handler
func (h *RecipeHandler) toggleAdd(op relationOp) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := uuid.Parse(c.Param("id"))
		if err != nil {
			_ = c.Error(apperr.Validation("invalid recipe id"))
			return
		}
		userID, _ := middleware.UserID(c)
		if err := op(c.Request.Context(), userID, id); err != nil {
			_ = c.Error(err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"message": "added"})
	}
}

// toggleRemove adapts a relation remove operation into a handler
func (h *RecipeHandler) toggleRemove(op relationOp) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := uuid.Parse(c.Param("id"))
		if err != nil {
			_ = c.Error(apperr.Validation("invalid recipe id"))
			return
		}
		userID, _ := middleware.UserID(c)
		if err := op(c.Request.Context(), userID, id); err != nil {
			_ = c.Error(err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

// buildInput converts the request DTO into the service input, uploading a
// data-URL image when S3 is configured
func (h *RecipeHandler) buildInput(c *gin.Context, req *RecipeRequest) (*service.RecipeInput, error) {
	imageURL := req.Image
	if strings.HasPrefix(req.Image, "data:image") {
		if h.imageService == nil {
			return nil, apperr.Validation("image upload is not configured")
		}
		stored, err := h.imageService.StoreDataURL(c.Request.Context(), req.Image)
		if err != nil {
			return nil, err
		}
		imageURL = stored
	}

	ingredients := make([]service.IngredientSpec, len(req.Ingredients))
	for i, spec := range req.Ingredients {
		ingredients[i] = service.IngredientSpec{
			IngredientID: spec.ID,
			Amount:       spec.Amount,
		}
	}

	return &service.RecipeInput{
		Name:        req.Name,
		Text:        req.Text,
		ImageURL:    imageURL,
		CookingTime: req.CookingTime,
		TagIDs:      req.Tags,
		Ingredients: ingredients,
	}, nil
}

// isTruthy matches the 1/true query-flag convention
func isTruthy(v string) bool {
	return v == "1" || strings.EqualFold(v, "true")
}
