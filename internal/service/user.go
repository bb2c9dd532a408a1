package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/avelina-r/foodgram/backend/internal/apperr"
	"github.com/avelina-r/foodgram/backend/internal/models"
)

// SubscribedAuthor is one followed author with recipe previews
type SubscribedAuthor struct {
	Author       models.User
	Recipes      []models.Recipe
	RecipesCount int64
}

// UserService handles user retrieval and the subscriptions listing
type UserService struct {
	db *gorm.DB
}

// NewUserService creates a new UserService instance
func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

// Get retrieves a user by id
func (s *UserService) Get(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("user not found")
		}
		return nil, apperr.Internal(err)
	}
	return &user, nil
}

// List returns users ordered by registration time
func (s *UserService) List(ctx context.Context, limit, offset int) ([]models.User, int64, error) {
	var total int64
	if err := s.db.WithContext(ctx).Model(&models.User{}).Count(&total).Error; err != nil {
		return nil, 0, apperr.Internal(err)
	}

	var users []models.User
	err := s.db.WithContext(ctx).
		Order("created_at ASC").
		Limit(limit).
		Offset(offset).
		Find(&users).Error
	if err != nil {
		return nil, 0, apperr.Internal(err)
	}
	return users, total, nil
}

// IsSubscribed reports whether user follows author
func (s *UserService) IsSubscribed(ctx context.Context, userID, authorID uuid.UUID) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Subscription{}).
		Where("user_id = ? AND author_id = ?", userID, authorID).
		Count(&count).Error
	if err != nil {
		return false, apperr.Internal(err)
	}
	return count > 0, nil
}

// Subscriptions lists the authors the user follows, each with up to
// previewLimit recent recipes and the total recipe count
func (s *UserService) Subscriptions(ctx context.Context, userID uuid.UUID, limit, offset, previewLimit int) ([]SubscribedAuthor, int64, error) {
	base := s.db.WithContext(ctx).Model(&models.User{}).
		Joins("JOIN subscriptions ON subscriptions.author_id = users.id").
		Where("subscriptions.user_id = ?", userID)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, apperr.Internal(err)
	}

	var authors []models.User
	err := base.
		Order("subscriptions.created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&authors).Error
	if err != nil {
		return nil, 0, apperr.Internal(err)
	}

	result := make([]SubscribedAuthor, 0, len(authors))
	for _, author := range authors {
		var count int64
		if err := s.db.WithContext(ctx).Model(&models.Recipe{}).
			Where("author_id = ?", author.ID).
			Count(&count).Error; err != nil {
			return nil, 0, apperr.Internal(err)
		}

		var recipes []models.Recipe
		if err := s.db.WithContext(ctx).
			Where("author_id = ?", author.ID).
			Order("created_at DESC").
			Limit(previewLimit).
			Find(&recipes).Error; err != nil {
			return nil, 0, apperr.Internal(err)
		}

		result = append(result, SubscribedAuthor{
			Author:       author,
			Recipes:      recipes,
			RecipesCount: count,
		})
	}
	return result, total, nil
}

// Delete removes a user; recipes, favorites, cart items and subscriptions
// cascade at the database level
func (s *UserService) Delete(ctx context.Context, id uuid.UUID) error {
	res := s.db.WithContext(ctx).Delete(&models.User{}, "id = ?", id)
	if res.Error != nil {
		return apperr.Internal(res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("user not found")
	}
	return nil
}
