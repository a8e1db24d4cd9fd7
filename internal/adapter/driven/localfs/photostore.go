// Package localfs stores listing photos as files under a single upload
// directory, referenced by URL path from the car record.
package localfs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/automani/automani/internal/domain/port/driven"
)

// URLPrefix is the public path under which stored photos are served.
const URLPrefix = "/uploads/"

// Compile-time interface satisfaction check.
var _ driven.PhotoStore = (*PhotoStore)(nil)

// PhotoStore is the local-filesystem implementation of the PhotoStore port.
// Files are named with a fresh UUID plus the original extension, so
// references never collide and reveal nothing about the upload.
type PhotoStore struct {
	dir string
}

// NewPhotoStore creates the upload directory if needed and returns a store
// rooted there.
func NewPhotoStore(dir string) (*PhotoStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir %q: %w", dir, err)
	}
	return &PhotoStore{dir: dir}, nil
}

// Dir returns the directory photos are written to.
func (s *PhotoStore) Dir() string {
	return s.dir
}

// Save writes the photo to a new file and returns its public reference.
func (s *PhotoStore) Save(_ context.Context, ext string, data io.Reader) (string, error) {
	name := uuid.NewString() + strings.ToLower(ext)
	dst := filepath.Join(s.dir, name)

	f, err := os.Create(dst)
	if err != nil {
		return "", fmt.Errorf("create photo file: %w", err)
	}

	if _, err := io.Copy(f, data); err != nil {
		f.Close()
		os.Remove(dst)
		return "", fmt.Errorf("write photo file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(dst)
		return "", fmt.Errorf("close photo file: %w", err)
	}

	return URLPrefix + name, nil
}

// Remove deletes the file behind the reference. A reference whose file is
// already gone is not an error. Only the base name of the reference is used,
// so a reference can never escape the upload directory.
func (s *PhotoStore) Remove(_ context.Context, ref string) error {
	name := path.Base(ref)
	if name == "." || name == "/" {
		return nil
	}

	err := os.Remove(filepath.Join(s.dir, name))
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("remove photo %q: %w", ref, err)
	}
	return nil
}
