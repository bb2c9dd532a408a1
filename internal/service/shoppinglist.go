package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"log"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/avelina-r/foodgram/backend/internal/apperr"
	"github.com/avelina-r/foodgram/backend/internal/models"
)

// ShoppingListItem is one aggregated line of the shopping list
type ShoppingListItem struct {
	Name   string `json:"name"`
	Unit   string `json:"measurement_unit"`
	Amount int    `json:"amount"`
}

// ListFormat selects the rendered document type
type ListFormat string

const (
	FormatText ListFormat = "txt"
	FormatCSV  ListFormat = "csv"
)

const listCacheTTL = time.Hour

// ShoppingListService computes the deduplicated, summed shopping list for a
// user's cart. Rendered text documents are cached per user and dropped on
// every cart mutation.
type ShoppingListService struct {
	db    *gorm.DB
	redis *redis.Client
}

// NewShoppingListService creates a new ShoppingListService instance. The
// redis client may be nil, in which case caching is disabled.
func NewShoppingListService(db *gorm.DB, redisClient *redis.Client) *ShoppingListService {
	return &ShoppingListService{db: db, redis: redisClient}
}

// Aggregate joins the user's cart to the ingredient rows, sums duplicate
// ingredients and orders the result by name. An empty cart is reported as an
// error rather than an empty document.
func (s *ShoppingListService) Aggregate(ctx context.Context, userID uuid.UUID) ([]ShoppingListItem, error) {
	var items []ShoppingListItem
	err := s.db.WithContext(ctx).
		Model(&models.RecipeIngredient{}).
		Select("ingredients.name AS name, ingredients.measurement_unit AS unit, SUM(recipe_ingredients.amount) AS amount").
		Joins("JOIN ingredients ON ingredients.id = recipe_ingredients.ingredient_id").
		Joins("JOIN shopping_cart_items ON shopping_cart_items.recipe_id = recipe_ingredients.recipe_id").
		Where("shopping_cart_items.user_id = ?", userID).
		Group("ingredients.id, ingredients.name, ingredients.measurement_unit").
		Scan(&items).Error
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if len(items) == 0 {
		return nil, apperr.New(apperr.KindEmptyCart, "your shopping cart is empty, nothing to export")
	}

	// Deterministic byte order, not locale collation
	sort.Slice(items, func(i, j int) bool {
		return items[i].Name < items[j].Name
	})
	return items, nil
}

// Render produces the shopping list document for a user, serving from the
// cache when possible
func (s *ShoppingListService) Render(ctx context.Context, user *models.User, format ListFormat) ([]byte, error) {
	key := s.cacheKey(user.ID, format)
	if s.redis != nil {
		if cached, err := s.redis.Get(ctx, key).Bytes(); err == nil {
			return cached, nil
		}
	}

	items, err := s.Aggregate(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	var doc []byte
	switch format {
	case FormatCSV:
		doc, err = renderCSV(user, items)
	default:
		doc = renderText(user, items)
	}
	if err != nil {
		return nil, apperr.Internal(err)
	}

	if s.redis != nil {
		if err := s.redis.Set(ctx, key, doc, listCacheTTL).Err(); err != nil {
			// Cache failures never block the download
			log.Printf("Failed to cache shopping list for user %s: %v", user.ID, err)
		}
	}
	return doc, nil
}

// Invalidate drops the cached documents after a cart mutation
func (s *ShoppingListService) Invalidate(ctx context.Context, userID uuid.UUID) {
	if s.redis == nil {
		return
	}
	keys := []string{
		s.cacheKey(userID, FormatText),
		s.cacheKey(userID, FormatCSV),
	}
	if err := s.redis.Del(ctx, keys...).Err(); err != nil {
		log.Printf("Failed to invalidate shopping list cache for user %s: %v", userID, err)
	}
}

func (s *ShoppingListService) cacheKey(userID uuid.UUID, format ListFormat) string {
	return fmt.Sprintf("shopping_list:%s:%s", userID, format)
}

func renderText(user *models.User, items []ShoppingListItem) []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "Shopping list for %s\n", user.DisplayName())
	fmt.Fprintf(&buf, "Generated at %s\n\n", time.Now().UTC().Format(time.RFC3339))
	for _, item := range items {
		fmt.Fprintf(&buf, "%s — %d %s\n", item.Name, item.Amount, item.Unit)
	}
	return buf.Bytes()
}

func renderCSV(user *models.User, items []ShoppingListItem) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write([]string{"name", "amount", "measurement_unit"}); err != nil {
		return nil, err
	}
	for _, item := range items {
		if err := w.Write([]string{item.Name, strconv.Itoa(item.Amount), item.Unit}); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
