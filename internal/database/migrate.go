package database

import (
	"log"

	"gorm.io/gorm"

	"github.com/avelina-r/foodgram/backend/internal/models"
)

// RunMigrations applies the schema. Parents are migrated before the join and
// relation tables so the cascade foreign keys can be created.
func RunMigrations(db *gorm.DB) error {
	log.Printf("Running schema migrations")
	return db.AutoMigrate(
		&models.User{},
		&models.Tag{},
		&models.Ingredient{},
		&models.Recipe{},
		&models.RecipeIngredient{},
		&models.Favorite{},
		&models.ShoppingCartItem{},
		&models.Subscription{},
	)
}
