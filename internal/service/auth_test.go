package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avelina-r/foodgram/backend/internal/apperr"
	"github.com/avelina-r/foodgram/backend/internal/models"
)

func validRegisterInput() RegisterInput {
	return RegisterInput{
		Username:  "pavel",
		Email:     "pavel@example.com",
		FirstName: "Pavel",
		LastName:  "Durov",
		Password:  "correct-horse",
	}
}

func TestRegisterAndLogin(t *testing.T) {
	db := setupDB(t)
	auth := NewAuthService(db, "test-secret")
	ctx := context.Background()

	user, token, err := auth.Register(ctx, validRegisterInput())
	require.NoError(t, err)
	require.NotNil(t, user)
	require.NotEmpty(t, token)
	assert.NotEqual(t, "correct-horse", user.PasswordHash)

	claims, err := auth.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.False(t, claims.IsAdmin)

	loginToken, err := auth.Login(ctx, "pavel@example.com", "correct-horse")
	require.NoError(t, err)
	claims, err = auth.ValidateToken(loginToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
}

func TestLoginWrongPassword(t *testing.T) {
	db := setupDB(t)
	auth := NewAuthService(db, "test-secret")
	ctx := context.Background()

	_, _, err := auth.Register(ctx, validRegisterInput())
	require.NoError(t, err)

	_, err = auth.Login(ctx, "pavel@example.com", "wrong")
	assert.True(t, apperr.IsKind(err, apperr.KindUnauthorized))

	_, err = auth.Login(ctx, "nobody@example.com", "correct-horse")
	assert.True(t, apperr.IsKind(err, apperr.KindUnauthorized))
}

func TestRegisterDuplicate(t *testing.T) {
	db := setupDB(t)
	auth := NewAuthService(db, "test-secret")
	ctx := context.Background()

	_, _, err := auth.Register(ctx, validRegisterInput())
	require.NoError(t, err)

	// Same username, different email
	in := validRegisterInput()
	in.Email = "other@example.com"
	_, _, err = auth.Register(ctx, in)
	assert.True(t, apperr.IsKind(err, apperr.KindDuplicate))

	// Same email, different username
	in = validRegisterInput()
	in.Username = "other"
	_, _, err = auth.Register(ctx, in)
	assert.True(t, apperr.IsKind(err, apperr.KindDuplicate))

	var count int64
	require.NoError(t, db.Model(&models.User{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestRegisterRejectsBadFields(t *testing.T) {
	db := setupDB(t)
	auth := NewAuthService(db, "test-secret")
	ctx := context.Background()

	tests := []struct {
		name   string
		mutate func(*RegisterInput)
	}{
		{"username me", func(in *RegisterInput) { in.Username = "me" }},
		{"username too short", func(in *RegisterInput) { in.Username = "a" }},
		{"username with digits", func(in *RegisterInput) { in.Username = "pavel99" }},
		{"bad email", func(in *RegisterInput) { in.Email = "not-an-email" }},
		{"first name me", func(in *RegisterInput) { in.FirstName = "me" }},
		{"profane last name", func(in *RegisterInput) { in.LastName = "Shit" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validRegisterInput()
			tt.mutate(&in)
			_, _, err := auth.Register(ctx, in)
			require.Error(t, err)
			assert.True(t, apperr.IsKind(err, apperr.KindValidation), "got %v", err)
		})
	}

	var count int64
	require.NoError(t, db.Model(&models.User{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestValidateTokenRejectsForgery(t *testing.T) {
	db := setupDB(t)
	auth := NewAuthService(db, "test-secret")
	other := NewAuthService(db, "other-secret")
	ctx := context.Background()

	_, token, err := auth.Register(ctx, validRegisterInput())
	require.NoError(t, err)

	_, err = other.ValidateToken(token)
	assert.Error(t, err)

	_, err = auth.ValidateToken("not.a.token")
	assert.Error(t, err)
}
