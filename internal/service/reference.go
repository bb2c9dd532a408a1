package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/avelina-r/foodgram/backend/internal/apperr"
	"github.com/avelina-r/foodgram/backend/internal/models"
)

// ReferenceService serves the tag and ingredient reference data
type ReferenceService struct {
	db *gorm.DB
}

// NewReferenceService creates a new ReferenceService instance
func NewReferenceService(db *gorm.DB) *ReferenceService {
	return &ReferenceService{db: db}
}

// ListTags returns every tag; the set is small and admin-curated
func (s *ReferenceService) ListTags(ctx context.Context) ([]models.Tag, error) {
	var tags []models.Tag
	if err := s.db.WithContext(ctx).Order("name ASC").Find(&tags).Error; err != nil {
		return nil, apperr.Internal(err)
	}
	return tags, nil
}

// GetTag retrieves one tag
func (s *ReferenceService) GetTag(ctx context.Context, id uuid.UUID) (*models.Tag, error) {
	var tag models.Tag
	if err := s.db.WithContext(ctx).First(&tag, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("tag not found")
		}
		return nil, apperr.Internal(err)
	}
	return &tag, nil
}

// SearchIngredients returns ingredients, optionally narrowed by a
// case-insensitive name prefix
func (s *ReferenceService) SearchIngredients(ctx context.Context, namePrefix string) ([]models.Ingredient, error) {
	query := s.db.WithContext(ctx).Model(&models.Ingredient{})
	if namePrefix != "" {
		query = query.Where("LOWER(name) LIKE LOWER(?)", namePrefix+"%")
	}

	var ingredients []models.Ingredient
	if err := query.Order("name ASC").Find(&ingredients).Error; err != nil {
		return nil, apperr.Internal(err)
	}
	return ingredients, nil
}

// GetIngredient retrieves one ingredient
func (s *ReferenceService) GetIngredient(ctx context.Context, id uuid.UUID) (*models.Ingredient, error) {
	var ingredient models.Ingredient
	if err := s.db.WithContext(ctx).First(&ingredient, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("ingredient not found")
		}
		return nil, apperr.Internal(err)
	}
	return &ingredient, nil
}
