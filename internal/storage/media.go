// Package storage provides the media store collaborator: uploads are
// written under <root>/<kind>/ with a slugged, uuid-suffixed filename and
// a relative reference is returned for persistence on the entity.
package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// MediaStore saves an uploaded image and returns a retrievable reference.
type MediaStore interface {
	Save(kind, base, ext string, src io.Reader) (string, error)
}

// LocalMediaStore implements MediaStore on the local filesystem.
type LocalMediaStore struct {
	root string
}

// NewLocalMediaStore creates a store rooted at the given directory.
func NewLocalMediaStore(root string) *LocalMediaStore {
	return &LocalMediaStore{root: root}
}

// Save writes the upload to <root>/<kind>/<slug(base)>-<uuid><ext> and
// returns the path relative to the store root.
func (s *LocalMediaStore) Save(kind, base, ext string, src io.Reader) (string, error) {
	filename := fmt.Sprintf("%s-%s%s", Slugify(base), uuid.New().String(), ext)
	rel := filepath.Join(kind, filename)
	abs := filepath.Join(s.root, rel)

	if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}

	dst, err := os.Create(abs)
	if err != nil {
		return "", fmt.Errorf("create upload file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(abs)
		return "", fmt.Errorf("write upload: %w", err)
	}
	return rel, nil
}

// Slugify lowercases s and collapses runs of non-alphanumeric characters
// into single dashes.
func Slugify(s string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
			dash = false
		default:
			if !dash && b.Len() > 0 {
				b.WriteByte('-')
				dash = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

var _ MediaStore = (*LocalMediaStore)(nil)
