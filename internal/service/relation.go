package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/avelina-r/foodgram/backend/internal/apperr"
	"github.com/avelina-r/foodgram/backend/internal/models"
)

// relation describes one unique-pair membership table. Favorite, shopping
// cart and subscription all share the same add/remove contract, so each is
// just a parameterization of this struct.
type relation struct {
	targetColumn string
	newRow       func(userID, targetID uuid.UUID) interface{}
	emptyRow     func() interface{}
	alreadyMsg   string
	missingMsg   string
}

var (
	favoriteRelation = relation{
		targetColumn: "recipe_id",
		newRow: func(userID, targetID uuid.UUID) interface{} {
			return &models.Favorite{UserID: userID, RecipeID: targetID}
		},
		emptyRow:   func() interface{} { return &models.Favorite{} },
		alreadyMsg: "recipe is already in your favorites",
		missingMsg: "recipe is not in your favorites",
	}
	cartRelation = relation{
		targetColumn: "recipe_id",
		newRow: func(userID, targetID uuid.UUID) interface{} {
			return &models.ShoppingCartItem{UserID: userID, RecipeID: targetID}
		},
		emptyRow:   func() interface{} { return &models.ShoppingCartItem{} },
		alreadyMsg: "recipe is already in your shopping cart",
		missingMsg: "recipe is not in your shopping cart",
	}
	subscriptionRelation = relation{
		targetColumn: "author_id",
		newRow: func(userID, targetID uuid.UUID) interface{} {
			return &models.Subscription{UserID: userID, AuthorID: targetID}
		},
		emptyRow:   func() interface{} { return &models.Subscription{} },
		alreadyMsg: "you are already subscribed to this author",
		missingMsg: "you are not subscribed to this author",
	}
)

// RelationService handles favorite, shopping cart and subscription
// membership. The existence pre-check only produces the friendly message;
// the composite unique constraint is the real guarantee under concurrent
// adds.
type RelationService struct {
	db    *gorm.DB
	lists *ShoppingListService
}

// NewRelationService creates a new RelationService instance. lists may be
// nil when shopping-list caching is not wired (tests).
func NewRelationService(db *gorm.DB, lists *ShoppingListService) *RelationService {
	return &RelationService{db: db, lists: lists}
}

func (s *RelationService) add(ctx context.Context, rel relation, userID, targetID uuid.UUID) error {
	var count int64
	if err := s.db.WithContext(ctx).Model(rel.emptyRow()).
		Where("user_id = ? AND "+rel.targetColumn+" = ?", userID, targetID).
		Count(&count).Error; err != nil {
		return apperr.Internal(err)
	}
	if count > 0 {
		return apperr.Duplicate(rel.alreadyMsg)
	}

	if err := s.db.WithContext(ctx).Create(rel.newRow(userID, targetID)).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// Lost the race to a concurrent add; same outcome
			return apperr.Duplicate(rel.alreadyMsg)
		}
		return apperr.Internal(err)
	}
	return nil
}

// Repeated removes after the first report an explicit not-found error,
// they are not silently ignored.
func (s *RelationService) remove(ctx context.Context, rel relation, userID, targetID uuid.UUID) error {
	res := s.db.WithContext(ctx).
		Where("user_id = ? AND "+rel.targetColumn+" = ?", userID, targetID).
		Delete(rel.emptyRow())
	if res.Error != nil {
		return apperr.Internal(res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound(rel.missingMsg)
	}
	return nil
}

func (s *RelationService) recipeExists(ctx context.Context, recipeID uuid.UUID) error {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Recipe{}).Where("id = ?", recipeID).Count(&count).Error; err != nil {
		return apperr.Internal(err)
	}
	if count == 0 {
		return apperr.NotFound("recipe not found")
	}
	return nil
}

// AddFavorite bookmarks a recipe for the user
func (s *RelationService) AddFavorite(ctx context.Context, userID, recipeID uuid.UUID) error {
	if err := s.recipeExists(ctx, recipeID); err != nil {
		return err
	}
	return s.add(ctx, favoriteRelation, userID, recipeID)
}

// RemoveFavorite drops a recipe from the user's favorites
func (s *RelationService) RemoveFavorite(ctx context.Context, userID, recipeID uuid.UUID) error {
	if err := s.recipeExists(ctx, recipeID); err != nil {
		return err
	}
	return s.remove(ctx, favoriteRelation, userID, recipeID)
}

// AddToCart stages a recipe for the user's shopping list
func (s *RelationService) AddToCart(ctx context.Context, userID, recipeID uuid.UUID) error {
	if err := s.recipeExists(ctx, recipeID); err != nil {
		return err
	}
	if err := s.add(ctx, cartRelation, userID, recipeID); err != nil {
		return err
	}
	s.invalidateList(ctx, userID)
	return nil
}

// RemoveFromCart drops a recipe from the user's cart
func (s *RelationService) RemoveFromCart(ctx context.Context, userID, recipeID uuid.UUID) error {
	if err := s.recipeExists(ctx, recipeID); err != nil {
		return err
	}
	if err := s.remove(ctx, cartRelation, userID, recipeID); err != nil {
		return err
	}
	s.invalidateList(ctx, userID)
	return nil
}

// Subscribe follows an author. Self-follow is rejected before any lookup.
func (s *RelationService) Subscribe(ctx context.Context, userID, authorID uuid.UUID) error {
	if userID == authorID {
		return apperr.New(apperr.KindSelfReference, "you cannot subscribe to yourself")
	}
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", authorID).Count(&count).Error; err != nil {
		return apperr.Internal(err)
	}
	if count == 0 {
		return apperr.NotFound("author not found")
	}
	return s.add(ctx, subscriptionRelation, userID, authorID)
}

// Unsubscribe stops following an author
func (s *RelationService) Unsubscribe(ctx context.Context, userID, authorID uuid.UUID) error {
	return s.remove(ctx, subscriptionRelation, userID, authorID)
}

func (s *RelationService) invalidateList(ctx context.Context, userID uuid.UUID) {
	if s.lists != nil {
		s.lists.Invalidate(ctx, userID)
	}
}
