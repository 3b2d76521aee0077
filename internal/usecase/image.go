package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"

	"airport-api/internal/domain"
	"airport-api/pkg/storage"

	"go.uber.org/zap"
)

// ImageUpload is one multipart image file.
type ImageUpload struct {
	Filename string
	Content  io.Reader
}

// replaceImage stores upload for the named record, points the record at it
// through setImage and removes the previous file. The new file is removed
// again when setImage fails.
func replaceImage(
	ctx context.Context,
	images ImageStore,
	log *zap.Logger,
	resource, name string,
	previous *string,
	upload ImageUpload,
	setImage func(ctx context.Context, url string) error,
) (string, error) {
	if images == nil {
		return "", fmt.Errorf("image storage not configured")
	}

	url, err := images.Save(resource, name, upload.Filename, upload.Content)
	switch {
	case errors.Is(err, storage.ErrUnsupportedType):
		return "", domain.NewValidationError("image", "Unsupported file type, use jpg, jpeg, png, gif or webp")
	case errors.Is(err, storage.ErrTooLarge):
		return "", fmt.Errorf("%w: %s", domain.ErrInvalidImage, err.Error())
	case err != nil:
		log.Error("Failed to store image", zap.Error(err), zap.String("resource", resource))
		return "", err
	}

	if err := setImage(ctx, url); err != nil {
		images.Remove(url)
		return "", err
	}

	if previous != nil && *previous != "" {
		images.Remove(*previous)
	}
	return url, nil
}
