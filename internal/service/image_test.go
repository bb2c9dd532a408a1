package service

import (
	"context"
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/avelina-r/foodgram/backend/internal/apperr"
)

func TestDecodeDataURL(t *testing.T) {
	payload := base64.StdEncoding.EncodeToString([]byte{0x89, 0x50, 0x4E, 0x47})

	decoded, err := decodeDataURL("data:image/png;base64," + payload)
	assert.NoError(t, err)
	assert.Equal(t, []byte{0x89, 0x50, 0x4E, 0x47}, decoded)

	tests := []struct {
		name string
		in   string
	}{
		{"no data prefix", "http://example.com/pic.png"},
		{"not base64 marked", "data:image/png," + payload},
		{"bad base64", "data:image/png;base64,!!!!"},
		{"empty payload", "data:image/png;base64,"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := decodeDataURL(tt.in)
			assert.True(t, apperr.IsKind(err, apperr.KindValidation))
		})
	}
}

func TestStoreDataURLRejectsNonImage(t *testing.T) {
	svc := NewImageService(nil)

	// Valid base64, but the sniffed content is plain text
	payload := base64.StdEncoding.EncodeToString([]byte("just some text"))
	_, err := svc.StoreDataURL(context.Background(), "data:image/png;base64,"+payload)
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))
}
