package service

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/avelina-r/foodgram/backend/internal/apperr"
	"github.com/avelina-r/foodgram/backend/internal/models"
	"github.com/avelina-r/foodgram/backend/internal/types"
	"github.com/avelina-r/foodgram/backend/internal/validation"
)

// AuthService handles registration, login and token validation
type AuthService struct {
	db        *gorm.DB
	jwtSecret string
	tokenTTL  time.Duration
}

// NewAuthService creates a new AuthService instance
func NewAuthService(db *gorm.DB, jwtSecret string) *AuthService {
	return &AuthService{
		db:        db,
		jwtSecret: jwtSecret,
		tokenTTL:  24 * time.Hour,
	}
}

// RegisterInput carries the registration fields
type RegisterInput struct {
	Username  string
	Email     string
	FirstName string
	LastName  string
	Password  string
}

// Register validates the candidate user, persists it and returns a signed
// token. All field validation happens before any write.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*models.User, string, error) {
	if _, err := validation.ValidateUsername(in.Username); err != nil {
		return nil, "", err
	}
	if _, err := validation.ValidateEmail(in.Email); err != nil {
		return nil, "", err
	}
	if _, err := validation.ValidateName(in.FirstName); err != nil {
		return nil, "", err
	}
	if _, err := validation.ValidateName(in.LastName); err != nil {
		return nil, "", err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", apperr.Internal(err)
	}

	user := models.User{
		Username:     in.Username,
		Email:        in.Email,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		PasswordHash: string(hashedPassword),
	}

	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, "", apperr.Duplicate("a user with this username or email already exists")
		}
		return nil, "", apperr.Internal(err)
	}

	token, err := s.generateToken(&user)
	if err != nil {
		return nil, "", apperr.Internal(err)
	}
	return &user, token, nil
}

// Login checks credentials and returns a signed token
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return "", apperr.New(apperr.KindUnauthorized, "invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", apperr.New(apperr.KindUnauthorized, "invalid credentials")
	}

	token, err := s.generateToken(&user)
	if err != nil {
		return "", apperr.Internal(err)
	}
	return token, nil
}

func (s *AuthService) generateToken(user *models.User) (string, error) {
	claims := jwt.MapClaims{
		"user_id":  user.ID.String(),
		"is_admin": user.IsAdmin,
		"exp":      time.Now().Add(s.tokenTTL).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}

// ValidateToken parses and verifies a bearer token
func (s *AuthService) ValidateToken(tokenString string) (*types.TokenClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}

	userIDStr, ok := claims["user_id"].(string)
	if !ok {
		return nil, errors.New("invalid token claims")
	}
	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return nil, err
	}

	isAdmin, _ := claims["is_admin"].(bool)

	return &types.TokenClaims{
		UserID:  userID,
		IsAdmin: isAdmin,
	}, nil
}
