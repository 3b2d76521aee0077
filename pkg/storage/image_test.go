package storage

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"airport-api/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func TestRelPath(t *testing.T) {
	t.Parallel()
	id := uuid.MustParse("00000000-0000-0000-0000-000000000001")

	tests := []struct {
		name     string
		resource string
		record   string
		filename string
		want     string
		wantErr  error
	}{
		{"airplane jpg", "airplane", "Boeing 737-800", "photo.JPG", "uploads/airplanes/boeing-737-800-00000000-0000-0000-0000-000000000001.jpg", nil},
		{"crew png", "crew", "John Smith", "me.png", "uploads/crews/john-smith-00000000-0000-0000-0000-000000000001.png", nil},
		{"empty name", "airport", "  ", "a.webp", "uploads/airports/airport-00000000-0000-0000-0000-000000000001.webp", nil},
		{"bad extension", "airport", "Boryspil", "evil.exe", "", ErrUnsupportedType},
		{"no extension", "airport", "Boryspil", "README", "", ErrUnsupportedType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := RelPath(tt.resource, tt.record, tt.filename, id)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestImageStoreSave(t *testing.T) {
	t.Parallel()
	root := t.TempDir()
	store := NewImageStore(utils.MediaConfig{Root: root, URL: "/media", MaxUploadMB: 1}, zap.NewNop())

	url, err := store.Save("airplane", "A320", "x.png", bytes.NewReader([]byte("png-bytes")))
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if !strings.HasPrefix(url, "/media/uploads/airplanes/a320-") || !strings.HasSuffix(url, ".png") {
		t.Fatalf("unexpected url %q", url)
	}

	full := filepath.Join(root, filepath.FromSlash(strings.TrimPrefix(url, "/media/")))
	content, err := os.ReadFile(full)
	if err != nil || string(content) != "png-bytes" {
		t.Fatalf("expected stored content, got %q %v", content, err)
	}

	store.Remove(url)
	if _, err := os.Stat(full); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected file removed, got %v", err)
	}
}

func TestImageStoreRejectsLargeUpload(t *testing.T) {
	t.Parallel()
	root := t.TempDir()
	store := NewImageStore(utils.MediaConfig{Root: root, URL: "/media/", MaxUploadMB: 1}, zap.NewNop())

	big := bytes.Repeat([]byte{'x'}, int(store.MaxBytes())+1)
	_, err := store.Save("crew", "Jane", "big.jpg", bytes.NewReader(big))
	if !errors.Is(err, ErrTooLarge) {
		t.Fatalf("expected ErrTooLarge, got %v", err)
	}

	entries, err := os.ReadDir(filepath.Join(root, "uploads", "crews"))
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected partial upload removed, found %d files", len(entries))
	}
}
