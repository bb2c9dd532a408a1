package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/avelina-r/foodgram/backend/internal/database"
	"github.com/avelina-r/foodgram/backend/internal/models"
)

// setupDB opens an isolated in-memory database with foreign keys enforced
func setupDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?_foreign_keys=on"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// A second pooled connection would see its own empty memory database
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.RunMigrations(db))
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	user := &models.User{
		Username:     username,
		Email:        username + "@example.com",
		FirstName:    "Test",
		LastName:     "User",
		PasswordHash: "x",
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createTestIngredient(t *testing.T, db *gorm.DB, name, unit string) *models.Ingredient {
	t.Helper()
	ingredient := &models.Ingredient{Name: name, MeasurementUnit: unit}
	require.NoError(t, db.Create(ingredient).Error)
	return ingredient
}

func createTestTag(t *testing.T, db *gorm.DB, name, color, slug string) *models.Tag {
	t.Helper()
	tag := &models.Tag{Name: name, Color: color, Slug: slug}
	require.NoError(t, db.Create(tag).Error)
	return tag
}

// createTestRecipe persists a recipe through the service so associations
// are written the same way production writes them
func createTestRecipe(t *testing.T, db *gorm.DB, author *models.User, name string, specs []IngredientSpec, tagIDs ...uuid.UUID) *models.Recipe {
	t.Helper()
	recipe, err := NewRecipeService(db).Create(context.Background(), author.ID, RecipeInput{
		Name:        name,
		Text:        "A test recipe description",
		ImageURL:    "http://example.com/image.jpg",
		CookingTime: 10,
		TagIDs:      tagIDs,
		Ingredients: specs,
	})
	require.NoError(t, err)
	return recipe
}
