// File: internal/services/blob/fs_store.go
package blob

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

var ErrMissingFilename = errors.New("filename is required")

// FSStore writes blobs under a root directory and serves them back at
// <baseURL>/uploads/<bucket>/<key>.
type FSStore struct {
	root    string
	baseURL string
	now     func() time.Time
}

func NewFSStore(root, baseURL string) *FSStore {
	return &FSStore{
		root:    root,
		baseURL: strings.TrimRight(baseURL, "/"),
		now:     time.Now,
	}
}

// ObjectKey builds the storage path for an upload: a UTC timestamp prefix
// plus the original filename with spaces replaced by underscores.
func ObjectKey(filename string, at time.Time) string {
	safe := strings.ReplaceAll(filename, " ", "_")
	return fmt.Sprintf("%s_%s", at.UTC().Format("20060102150405"), safe)
}

func (s *FSStore) Store(ctx context.Context, bucket, filename, contentType string, data []byte) (string, error) {
	if filename == "" {
		return "", ErrMissingFilename
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	key := ObjectKey(filename, s.now())
	dir := filepath.Join(s.root, bucket)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating blob bucket %q: %w", bucket, err)
	}
	if err := os.WriteFile(filepath.Join(dir, key), data, 0o644); err != nil {
		return "", fmt.Errorf("writing blob %q: %w", key, err)
	}

	return fmt.Sprintf("%s/uploads/%s/%s", s.baseURL, bucket, key), nil
}
