package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusMapping(t *testing.T) {
	tests := []struct {
		kind   Kind
		status int
	}{
		{KindValidation, http.StatusBadRequest},
		{KindDuplicate, http.StatusBadRequest},
		{KindSelfReference, http.StatusBadRequest},
		{KindUnknownTag, http.StatusBadRequest},
		{KindUnknownIngredient, http.StatusBadRequest},
		{KindDuplicateIngredient, http.StatusBadRequest},
		{KindEmptyCart, http.StatusBadRequest},
		{KindNotFound, http.StatusNotFound},
		{KindPermission, http.StatusForbidden},
		{KindUnauthorized, http.StatusUnauthorized},
		{KindInternal, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.status, New(tt.kind, "x").Status())
	}
}

func TestInternalHidesCause(t *testing.T) {
	cause := errors.New("pq: connection refused")
	err := Internal(cause)

	// Clients see the message, logs see the chain
	assert.Equal(t, "internal server error", err.Message)
	assert.Contains(t, err.Error(), "connection refused")
	assert.ErrorIs(t, err, cause)
}

func TestAsThroughWrapping(t *testing.T) {
	inner := NotFound("recipe not found")
	outer := fmt.Errorf("listing: %w", inner)

	appErr, ok := As(outer)
	assert.True(t, ok)
	assert.Equal(t, KindNotFound, appErr.Kind)

	assert.True(t, IsKind(outer, KindNotFound))
	assert.False(t, IsKind(outer, KindValidation))
	assert.False(t, IsKind(errors.New("plain"), KindNotFound))
	assert.False(t, IsKind(nil, KindNotFound))
}

func TestNewf(t *testing.T) {
	err := Newf(KindValidation, "%s must be at least %d", "amount", 1)
	assert.Equal(t, "amount must be at least 1", err.Message)
	assert.Equal(t, KindValidation, err.Kind)
}
