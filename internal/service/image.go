package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"

	"github.com/avelina-r/foodgram/backend/config"
	"github.com/avelina-r/foodgram/backend/internal/apperr"
)

// maxImageSize caps decoded recipe images at 5 MiB
const maxImageSize = 5 << 20

// ImageService stores uploaded recipe images in S3. Clients submit images
// as data URLs ("data:image/png;base64,...") inside the recipe payload.
type ImageService struct {
	s3Config *config.S3Config
}

// NewImageService creates a new ImageService instance
func NewImageService(s3Config *config.S3Config) *ImageService {
	return &ImageService{s3Config: s3Config}
}

// StoreDataURL decodes a base64 data URL, verifies it really is an image
// and uploads it under recipes/<uuid>.<ext>. Returns the public object URL.
func (s *ImageService) StoreDataURL(ctx context.Context, dataURL string) (string, error) {
	payload, err := decodeDataURL(dataURL)
	if err != nil {
		return "", err
	}

	// Sniff the real content type, the data URL prefix is not trusted
	mtype := mimetype.Detect(payload)
	if !strings.HasPrefix(mtype.String(), "image/") {
		return "", apperr.Validation("uploaded file is not an image")
	}

	key := fmt.Sprintf("recipes/%s%s", uuid.New(), mtype.Extension())
	_, err = s.s3Config.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.s3Config.BucketName),
		Key:         aws.String(key),
		Body:        bytes.NewReader(payload),
		ContentType: aws.String(mtype.String()),
	})
	if err != nil {
		return "", apperr.Wrap(apperr.KindInternal, "failed to store image", err)
	}

	return fmt.Sprintf("https://%s.s3.amazonaws.com/%s", s.s3Config.BucketName, key), nil
}

func decodeDataURL(dataURL string) ([]byte, error) {
	if !strings.HasPrefix(dataURL, "data:image") {
		return nil, apperr.Validation("image must be a base64 data URL")
	}
	_, encoded, found := strings.Cut(dataURL, ";base64,")
	if !found {
		return nil, apperr.Validation("image must be base64 encoded")
	}
	payload, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, apperr.Validation("invalid base64 image data")
	}
	if len(payload) == 0 {
		return nil, apperr.Validation("image is empty")
	}
	if len(payload) > maxImageSize {
		return nil, apperr.Validation("image is too large")
	}
	return payload, nil
}
