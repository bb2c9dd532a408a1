package api

import (
	"time"

	"github.com/google/uuid"

	"github.com/avelina-r/foodgram/backend/internal/models"
)

// RegisterRequest represents the request body for user registration
type RegisterRequest struct {
	Username  string `json:"username" binding:"required"`
	Email     string `json:"email" binding:"required"`
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
	Password  string `json:"password" binding:"required,min=8"`
}

// LoginRequest represents the request body for login
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// TokenResponse carries a freshly issued bearer token
type TokenResponse struct {
	Token string `json:"token"`
}

// IngredientSpecRequest is one ingredient reference inside a recipe payload
type IngredientSpecRequest struct {
	ID     uuid.UUID `json:"id" binding:"required"`
	Amount int       `json:"amount" binding:"required"`
}

// RecipeRequest represents the request body for creating or updating a
// recipe. Image is either a base64 data URL or an already-stored URL.
type RecipeRequest struct {
	Name        string                  `json:"name" binding:"required"`
	Text        string                  `json:"text" binding:"required"`
	Image       string                  `json:"image"`
	CookingTime int                     `json:"cooking_time" binding:"required"`
	Tags        []uuid.UUID             `json:"tags"`
	Ingredients []IngredientSpecRequest `json:"ingredients" binding:"required"`
}

// UserResponse is the public view of a user
type UserResponse struct {
	ID           uuid.UUID `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	IsSubscribed bool      `json:"is_subscribed"`
}

// RecipeIngredientResponse is one ingredient line of a recipe
type RecipeIngredientResponse struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	MeasurementUnit string    `json:"measurement_unit"`
	Amount          int       `json:"amount"`
}

// RecipeResponse is the full view of a recipe
type RecipeResponse struct {
	ID                uuid.UUID                  `json:"id"`
	Author            UserResponse               `json:"author"`
	Name              string                     `json:"name"`
	Image             string                     `json:"image"`
	Text              string                     `json:"text"`
	CookingTime       int                        `json:"cooking_time"`
	Tags              []models.Tag               `json:"tags"`
	Ingredients       []RecipeIngredientResponse `json:"ingredients"`
	IsFavorited       bool                       `json:"is_favorited"`
	IsInShoppingCart  bool                       `json:"is_in_shopping_cart"`
	CreatedAt         time.Time                  `json:"created_at"`
}

// RecipePreviewResponse is the short recipe view used in subscription
// listings
type RecipePreviewResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Image       string    `json:"image"`
	CookingTime int       `json:"cooking_time"`
}

// SubscriptionResponse is one followed author with recipe previews
type SubscriptionResponse struct {
	UserResponse
	Recipes      []RecipePreviewResponse `json:"recipes"`
	RecipesCount int64                   `json:"recipes_count"`
}

// PageResponse wraps a paginated listing
type PageResponse struct {
	Count   int64       `json:"count"`
	Results interface{} `json:"results"`
}

func newUserResponse(u *models.User, isSubscribed bool) UserResponse {
	return UserResponse{
		ID:           u.ID,
		Username:     u.Username,
		Email:        u.Email,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		IsSubscribed: isSubscribed,
	}
}

func newRecipeResponse(r *models.Recipe, isFavorited, isInCart bool) RecipeResponse {
	ingredients := make([]RecipeIngredientResponse, len(r.Ingredients))
	for i, row := range r.Ingredients {
		ingredients[i] = RecipeIngredientResponse{
			ID:              row.IngredientID,
			Name:            row.Ingredient.Name,
			MeasurementUnit: row.Ingredient.MeasurementUnit,
			Amount:          row.Amount,
		}
	}
	tags := r.Tags
	if tags == nil {
		tags = []models.Tag{}
	}
	return RecipeResponse{
		ID:               r.ID,
		Author:           newUserResponse(&r.Author, false),
		Name:             r.Name,
		Image:            r.ImageURL,
		Text:             r.Text,
		CookingTime:      r.CookingTime,
		Tags:             tags,
		Ingredients:      ingredients,
		IsFavorited:      isFavorited,
		IsInShoppingCart: isInCart,
		CreatedAt:        r.CreatedAt,
	}
}

func newRecipePreview(r *models.Recipe) RecipePreviewResponse {
	return RecipePreviewResponse{
		ID:          r.ID,
		Name:        r.Name,
		Image:       r.ImageURL,
		CookingTime: r.CookingTime,
	}
}
