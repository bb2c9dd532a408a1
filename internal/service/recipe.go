package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/avelina-r/foodgram/backend/internal/apperr"
	"github.com/avelina-r/foodgram/backend/internal/models"
	"github.com/avelina-r/foodgram/backend/internal/validation"
)

// IngredientSpec is one ingredient reference with an amount, as submitted
// by the client
type IngredientSpec struct {
	IngredientID uuid.UUID
	Amount       int
}

// RecipeInput carries the validated-on-entry fields for create and update
type RecipeInput struct {
	Name        string
	Text        string
	ImageURL    string
	CookingTime int
	TagIDs      []uuid.UUID
	Ingredients []IngredientSpec
}

// RecipeFilters narrows the recipe list
type RecipeFilters struct {
	TagSlugs  []string
	AuthorID  *uuid.UUID
	Favorited bool
	InCart    bool
	// Viewer is required for Favorited / InCart filtering and annotations
	Viewer *uuid.UUID
	Limit  int
	Offset int
}

// RecipeService handles recipe composition and retrieval
type RecipeService struct {
	db *gorm.DB
}

// NewRecipeService creates a new RecipeService instance
func NewRecipeService(db *gorm.DB) *RecipeService {
	return &RecipeService{db: db}
}

// validateInput runs every field check before any write
func (s *RecipeService) validateInput(in *RecipeInput) error {
	if _, err := validation.ValidateRecipeName(in.Name); err != nil {
		return err
	}
	if _, err := validation.ValidateText(in.Text); err != nil {
		return err
	}
	if _, err := validation.ValidatePositive(in.CookingTime, "cooking_time"); err != nil {
		return err
	}
	if len(in.Ingredients) == 0 {
		return apperr.Validation("recipe must have at least one ingredient")
	}
	seen := make(map[uuid.UUID]struct{}, len(in.Ingredients))
	for _, spec := range in.Ingredients {
		if _, err := validation.ValidatePositive(spec.Amount, "ingredient amount"); err != nil {
			return err
		}
		if _, dup := seen[spec.IngredientID]; dup {
			return apperr.New(apperr.KindDuplicateIngredient, "duplicate ingredient in recipe")
		}
		seen[spec.IngredientID] = struct{}{}
	}
	return nil
}

// resolveTags loads the referenced tags, failing if any id is unknown
func resolveTags(tx *gorm.DB, tagIDs []uuid.UUID) ([]models.Tag, error) {
	var tags []models.Tag
	if len(tagIDs) == 0 {
		return tags, nil
	}
	if err := tx.Where("id IN ?", tagIDs).Find(&tags).Error; err != nil {
		return nil, apperr.Internal(err)
	}
	if len(tags) != len(tagIDs) {
		return nil, apperr.New(apperr.KindUnknownTag, "unknown tag specified")
	}
	return tags, nil
}

// resolveIngredients checks every referenced ingredient exists
func resolveIngredients(tx *gorm.DB, specs []IngredientSpec) error {
	ids := make([]uuid.UUID, len(specs))
	for i, spec := range specs {
		ids[i] = spec.IngredientID
	}
	var count int64
	if err := tx.Model(&models.Ingredient{}).Where("id IN ?", ids).Count(&count).Error; err != nil {
		return apperr.Internal(err)
	}
	if count != int64(len(ids)) {
		return apperr.New(apperr.KindUnknownIngredient, "unknown ingredient specified")
	}
	return nil
}

// Create validates and persists a recipe with its tag associations and
// ingredient rows as a single transaction. A failure at any step leaves no
// partial recipe behind.
func (s *RecipeService) Create(ctx context.Context, authorID uuid.UUID, in RecipeInput) (*models.Recipe, error) {
	if err := s.validateInput(&in); err != nil {
		return nil, err
	}

	var recipe models.Recipe
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		tags, err := resolveTags(tx, in.TagIDs)
		if err != nil {
			return err
		}
		if err := resolveIngredients(tx, in.Ingredients); err != nil {
			return err
		}

		recipe = models.Recipe{
			AuthorID:    authorID,
			Name:        in.Name,
			Text:        in.Text,
			ImageURL:    in.ImageURL,
			CookingTime: in.CookingTime,
		}
		if err := tx.Create(&recipe).Error; err != nil {
			return apperr.Internal(err)
		}
		if len(tags) > 0 {
			if err := tx.Model(&recipe).Association("Tags").Append(&tags); err != nil {
				return apperr.Internal(err)
			}
		}
		return createIngredientRows(tx, recipe.ID, in.Ingredients)
	})
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, recipe.ID)
}

// Update replaces the full set of tag and ingredient associations,
// clear-then-set rather than an incremental merge. Only the author or an
// admin may update.
func (s *RecipeService) Update(ctx context.Context, recipeID, callerID uuid.UUID, isAdmin bool, in RecipeInput) (*models.Recipe, error) {
	if err := s.validateInput(&in); err != nil {
		return nil, err
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var recipe models.Recipe
		if err := tx.First(&recipe, "id = ?", recipeID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("recipe not found")
			}
			return apperr.Internal(err)
		}
		if recipe.AuthorID != callerID && !isAdmin {
			return apperr.Permission("only the author may edit this recipe")
		}

		tags, err := resolveTags(tx, in.TagIDs)
		if err != nil {
			return err
		}
		if err := resolveIngredients(tx, in.Ingredients); err != nil {
			return err
		}

		recipe.Name = in.Name
		recipe.Text = in.Text
		recipe.CookingTime = in.CookingTime
		if in.ImageURL != "" {
			recipe.ImageURL = in.ImageURL
		}
		if err := tx.Save(&recipe).Error; err != nil {
			return apperr.Internal(err)
		}

		if err := tx.Model(&recipe).Association("Tags").Replace(&tags); err != nil {
			return apperr.Internal(err)
		}
		if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&models.RecipeIngredient{}).Error; err != nil {
			return apperr.Internal(err)
		}
		return createIngredientRows(tx, recipe.ID, in.Ingredients)
	})
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, recipeID)
}

func createIngredientRows(tx *gorm.DB, recipeID uuid.UUID, specs []IngredientSpec) error {
	rows := make([]models.RecipeIngredient, len(specs))
	for i, spec := range specs {
		rows[i] = models.RecipeIngredient{
			RecipeID:     recipeID,
			IngredientID: spec.IngredientID,
			Amount:       spec.Amount,
		}
	}
	if err := tx.Create(&rows).Error; err != nil {
		return apperr.Internal(err)
	}
	return nil
}

// Get retrieves a recipe with its associations
func (s *RecipeService) Get(ctx context.Context, id uuid.UUID) (*models.Recipe, error) {
	var recipe models.Recipe
	err := s.db.WithContext(ctx).
		Preload("Tags").
		Preload("Ingredients.Ingredient").
		Preload("Author").
		First(&recipe, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("recipe not found")
		}
		return nil, apperr.Internal(err)
	}
	return &recipe, nil
}

// Delete removes a recipe; the relation and ingredient rows cascade
func (s *RecipeService) Delete(ctx context.Context, recipeID, callerID uuid.UUID, isAdmin bool) error {
	var recipe models.Recipe
	if err := s.db.WithContext(ctx).First(&recipe, "id = ?", recipeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("recipe not found")
		}
		return apperr.Internal(err)
	}
	if recipe.AuthorID != callerID && !isAdmin {
		return apperr.Permission("only the author may delete this recipe")
	}
	if err := s.db.WithContext(ctx).Select("Tags", "Ingredients").Delete(&recipe).Error; err != nil {
		return apperr.Internal(err)
	}
	return nil
}

// List returns filtered recipes, newest first, with the total count before
// pagination
func (s *RecipeService) List(ctx context.Context, f RecipeFilters) ([]models.Recipe, int64, error) {
	query := s.db.WithContext(ctx).Model(&models.Recipe{})

	if len(f.TagSlugs) > 0 {
		query = query.Where(
			"recipes.id IN (?)",
			s.db.Table("recipe_tags").
				Select("recipe_tags.recipe_id").
				Joins("JOIN tags ON tags.id = recipe_tags.tag_id").
				Where("tags.slug IN ?", f.TagSlugs),
		)
	}
	if f.AuthorID != nil {
		query = query.Where("recipes.author_id = ?", *f.AuthorID)
	}
	if f.Favorited && f.Viewer != nil {
		query = query.Where(
			"recipes.id IN (?)",
			s.db.Model(&models.Favorite{}).Select("recipe_id").Where("user_id = ?", *f.Viewer),
		)
	}
	if f.InCart && f.Viewer != nil {
		query = query.Where(
			"recipes.id IN (?)",
			s.db.Model(&models.ShoppingCartItem{}).Select("recipe_id").Where("user_id = ?", *f.Viewer),
		)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperr.Internal(err)
	}

	var recipes []models.Recipe
	err := query.
		Preload("Tags").
		Preload("Ingredients.Ingredient").
		Preload("Author").
		Order("recipes.created_at DESC").
		Limit(f.Limit).
		Offset(f.Offset).
		Find(&recipes).Error
	if err != nil {
		return nil, 0, apperr.Internal(err)
	}
	return recipes, total, nil
}

// Annotations reports which of the given recipes are favorited and carted
// by the viewer
func (s *RecipeService) Annotations(ctx context.Context, viewer uuid.UUID, recipeIDs []uuid.UUID) (favorited, inCart map[uuid.UUID]bool, err error) {
	favorited = make(map[uuid.UUID]bool)
	inCart = make(map[uuid.UUID]bool)
	if len(recipeIDs) == 0 {
		return favorited, inCart, nil
	}

	var favs []models.Favorite
	if err := s.db.WithContext(ctx).
		Where("user_id = ? AND recipe_id IN ?", viewer, recipeIDs).
		Find(&favs).Error; err != nil {
		return nil, nil, apperr.Internal(err)
	}
	for _, f := range favs {
		favorited[f.RecipeID] = true
	}

	var items []models.ShoppingCartItem
	if err := s.db.WithContext(ctx).
		Where("user_id = ? AND recipe_id IN ?", viewer, recipeIDs).
		Find(&items).Error; err != nil {
		return nil, nil, apperr.Internal(err)
	}
	for _, item := range items {
		inCart[item.RecipeID] = true
	}
	return favorited, inCart, nil
}
