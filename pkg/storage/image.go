package storage

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"airport-api/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrUnsupportedType = errors.New("unsupported image type")
	ErrTooLarge        = errors.New("image is too large")
)

var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// ImageStore writes uploaded images below root and returns the public URL
// under which they are served.
type ImageStore struct {
	root     string
	baseURL  string
	maxBytes int64
	log      *zap.Logger
}

func NewImageStore(cfg utils.MediaConfig, log *zap.Logger) *ImageStore {
	baseURL := cfg.URL
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	return &ImageStore{
		root:     cfg.Root,
		baseURL:  baseURL,
		maxBytes: cfg.MaxUploadMB << 20,
		log:      log.With(zap.String("component", "storage")),
	}
}

func (s *ImageStore) MaxBytes() int64 {
	return s.maxBytes
}

// RelPath builds "uploads/<resource>s/<slug(name)>-<uuid><ext>".
func RelPath(resource, name, filename string, id uuid.UUID) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if !allowedExtensions[ext] {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedType, ext)
	}
	slug := utils.Slugify(name)
	if slug == "" {
		slug = resource
	}
	return path.Join("uploads", resource+"s", slug+"-"+id.String()+ext), nil
}

// Save stores the content of r for the named record. A partially written
// file is removed when the upload fails.
func (s *ImageStore) Save(resource, name, filename string, r io.Reader) (string, error) {
	rel, err := RelPath(resource, name, filename, uuid.New())
	if err != nil {
		return "", err
	}

	full := filepath.Join(s.root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return "", fmt.Errorf("create media dir: %w", err)
	}

	f, err := os.OpenFile(full, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return "", fmt.Errorf("create image file: %w", err)
	}

	// read one byte past the limit to detect oversized uploads
	n, err := io.Copy(f, io.LimitReader(r, s.maxBytes+1))
	closeErr := f.Close()
	switch {
	case err != nil:
		err = fmt.Errorf("write image file: %w", err)
	case n > s.maxBytes:
		err = fmt.Errorf("%w: limit is %d bytes", ErrTooLarge, s.maxBytes)
	case closeErr != nil:
		err = fmt.Errorf("close image file: %w", closeErr)
	}
	if err != nil {
		if rmErr := os.Remove(full); rmErr != nil {
			s.log.Warn("Failed to remove partial upload", zap.Error(rmErr), zap.String("path", full))
		}
		return "", err
	}

	s.log.Info("Image stored", zap.String("path", rel), zap.Int64("bytes", n))
	return s.baseURL + rel, nil
}

// Remove deletes a file previously returned by Save. Unknown URLs are ignored.
func (s *ImageStore) Remove(url string) {
	rel, ok := strings.CutPrefix(url, s.baseURL)
	if !ok || rel == "" || strings.Contains(rel, "..") {
		return
	}
	full := filepath.Join(s.root, filepath.FromSlash(rel))
	if err := os.Remove(full); err != nil && !errors.Is(err, os.ErrNotExist) {
		s.log.Warn("Failed to remove image", zap.Error(err), zap.String("path", full))
	}
}
