package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avelina-r/foodgram/backend/internal/apperr"
	"github.com/avelina-r/foodgram/backend/internal/models"
)

func TestGetUserNotFound(t *testing.T) {
	db := setupDB(t)
	users := NewUserService(db)

	_, err := users.Get(context.Background(), uuid.New())
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}

func TestListUsersPaginated(t *testing.T) {
	db := setupDB(t)
	users := NewUserService(db)
	ctx := context.Background()

	createTestUser(t, db, "alice")
	createTestUser(t, db, "bob")
	createTestUser(t, db, "carol")

	page, total, err := users.List(ctx, 2, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, page, 2)

	page, total, err = users.List(ctx, 2, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, page, 1)
}

func TestSubscriptionsListing(t *testing.T) {
	db := setupDB(t)
	users := NewUserService(db)
	relations := NewRelationService(db, nil)
	ctx := context.Background()

	reader := createTestUser(t, db, "reader")
	chef := createTestUser(t, db, "chef")
	other := createTestUser(t, db, "other")
	flour := createTestIngredient(t, db, "Flour", "g")

	for _, name := range []string{"Bread", "Buns", "Bagels", "Brioche"} {
		createTestRecipe(t, db, chef, name,
			[]IngredientSpec{{IngredientID: flour.ID, Amount: 100}})
	}
	createTestRecipe(t, db, other, "Soup",
		[]IngredientSpec{{IngredientID: flour.ID, Amount: 10}})

	require.NoError(t, relations.Subscribe(ctx, reader.ID, chef.ID))

	subs, total, err := users.Subscriptions(ctx, reader.ID, 10, 0, 3)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, subs, 1)

	// Previews are capped, the count is not
	assert.Equal(t, chef.ID, subs[0].Author.ID)
	assert.Equal(t, int64(4), subs[0].RecipesCount)
	assert.Len(t, subs[0].Recipes, 3)

	ok, err := users.IsSubscribed(ctx, reader.ID, chef.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = users.IsSubscribed(ctx, reader.ID, other.ID)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestDeleteUserCascades(t *testing.T) {
	db := setupDB(t)
	users := NewUserService(db)
	relations := NewRelationService(db, nil)
	ctx := context.Background()

	chef := createTestUser(t, db, "chef")
	fan := createTestUser(t, db, "fan")
	flour := createTestIngredient(t, db, "Flour", "g")
	bread := createTestRecipe(t, db, chef, "Bread",
		[]IngredientSpec{{IngredientID: flour.ID, Amount: 100}})

	require.NoError(t, relations.Subscribe(ctx, fan.ID, chef.ID))
	require.NoError(t, relations.AddFavorite(ctx, fan.ID, bread.ID))
	require.NoError(t, relations.AddToCart(ctx, fan.ID, bread.ID))

	require.NoError(t, users.Delete(ctx, chef.ID))

	// Everything hanging off the author is gone, the fan survives
	var recipes, rows, favs, cart, subs, remaining int64
	require.NoError(t, db.Model(&models.Recipe{}).Count(&recipes).Error)
	require.NoError(t, db.Model(&models.RecipeIngredient{}).Count(&rows).Error)
	require.NoError(t, db.Model(&models.Favorite{}).Count(&favs).Error)
	require.NoError(t, db.Model(&models.ShoppingCartItem{}).Count(&cart).Error)
	require.NoError(t, db.Model(&models.Subscription{}).Count(&subs).Error)
	require.NoError(t, db.Model(&models.User{}).Count(&remaining).Error)
	assert.Zero(t, recipes)
	assert.Zero(t, rows)
	assert.Zero(t, favs)
	assert.Zero(t, cart)
	assert.Zero(t, subs)
	assert.Equal(t, int64(1), remaining)

	assert.True(t, apperr.IsKind(users.Delete(ctx, chef.ID), apperr.KindNotFound))
}
