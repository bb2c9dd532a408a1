package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avelina-r/foodgram/backend/internal/apperr"
	"github.com/avelina-r/foodgram/backend/internal/models"
)

func TestAddFavoriteTwice(t *testing.T) {
	db := setupDB(t)
	svc := NewRelationService(db, nil)
	ctx := context.Background()

	author := createTestUser(t, db, "author")
	viewer := createTestUser(t, db, "viewer")
	flour := createTestIngredient(t, db, "Flour", "g")
	recipe := createTestRecipe(t, db, author, "Bread", []IngredientSpec{{IngredientID: flour.ID, Amount: 100}})

	require.NoError(t, svc.AddFavorite(ctx, viewer.ID, recipe.ID))

	err := svc.AddFavorite(ctx, viewer.ID, recipe.ID)
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindDuplicate))

	var count int64
	require.NoError(t, db.Model(&models.Favorite{}).
		Where("user_id = ? AND recipe_id = ?", viewer.ID, recipe.ID).
		Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestRemoveFavoriteAbsent(t *testing.T) {
	db := setupDB(t)
	svc := NewRelationService(db, nil)
	ctx := context.Background()

	author := createTestUser(t, db, "author")
	viewer := createTestUser(t, db, "viewer")
	flour := createTestIngredient(t, db, "Flour", "g")
	recipe := createTestRecipe(t, db, author, "Bread", []IngredientSpec{{IngredientID: flour.ID, Amount: 100}})

	err := svc.RemoveFavorite(ctx, viewer.ID, recipe.ID)
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))

	// A remove after a successful remove reports the same error
	require.NoError(t, svc.AddFavorite(ctx, viewer.ID, recipe.ID))
	require.NoError(t, svc.RemoveFavorite(ctx, viewer.ID, recipe.ID))
	err = svc.RemoveFavorite(ctx, viewer.ID, recipe.ID)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}

func TestAddToCartTwice(t *testing.T) {
	db := setupDB(t)
	svc := NewRelationService(db, nil)
	ctx := context.Background()

	author := createTestUser(t, db, "author")
	viewer := createTestUser(t, db, "viewer")
	salt := createTestIngredient(t, db, "Salt", "g")
	recipe := createTestRecipe(t, db, author, "Soup", []IngredientSpec{{IngredientID: salt.ID, Amount: 5}})

	require.NoError(t, svc.AddToCart(ctx, viewer.ID, recipe.ID))

	err := svc.AddToCart(ctx, viewer.ID, recipe.ID)
	assert.True(t, apperr.IsKind(err, apperr.KindDuplicate))

	var count int64
	require.NoError(t, db.Model(&models.ShoppingCartItem{}).
		Where("user_id = ?", viewer.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestFavoriteUnknownRecipe(t *testing.T) {
	db := setupDB(t)
	svc := NewRelationService(db, nil)

	viewer := createTestUser(t, db, "viewer")
	author := createTestUser(t, db, "author")
	flour := createTestIngredient(t, db, "Flour", "g")
	recipe := createTestRecipe(t, db, author, "Bread", []IngredientSpec{{IngredientID: flour.ID, Amount: 100}})
	require.NoError(t, db.Delete(&models.Recipe{}, "id = ?", recipe.ID).Error)

	err := svc.AddFavorite(context.Background(), viewer.ID, recipe.ID)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}

func TestSubscribeSelf(t *testing.T) {
	db := setupDB(t)
	svc := NewRelationService(db, nil)

	user := createTestUser(t, db, "selfish")

	err := svc.Subscribe(context.Background(), user.ID, user.ID)
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindSelfReference))

	var count int64
	require.NoError(t, db.Model(&models.Subscription{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestSubscribeTwiceAndUnsubscribe(t *testing.T) {
	db := setupDB(t)
	svc := NewRelationService(db, nil)
	ctx := context.Background()

	follower := createTestUser(t, db, "follower")
	author := createTestUser(t, db, "author")

	require.NoError(t, svc.Subscribe(ctx, follower.ID, author.ID))

	err := svc.Subscribe(ctx, follower.ID, author.ID)
	assert.True(t, apperr.IsKind(err, apperr.KindDuplicate))

	require.NoError(t, svc.Unsubscribe(ctx, follower.ID, author.ID))
	err = svc.Unsubscribe(ctx, follower.ID, author.ID)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}
