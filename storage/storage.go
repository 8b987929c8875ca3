// Package storage holds uploaded document blobs. Blobs are write-once and
// path-addressed; there is no versioning and no overwrite.
package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// DocumentStore is the blob backend behind document uploads.
type DocumentStore interface {
	// Put writes the blob under key. Writing to an existing key is an error.
	Put(ctx context.Context, key string, contentType string, r io.Reader) error
	// Get opens the blob at key for reading.
	Get(ctx context.Context, key string) (io.ReadCloser, error)
	// Delete removes the blob at key.
	Delete(ctx context.Context, key string) error
}

// NewStorageKey generates a fresh date-partitioned key for an upload,
// preserving the original extension.
func NewStorageKey(originalName string) string {
	now := time.Now().UTC()
	return fmt.Sprintf("documents/%d/%02d/%s%s",
		now.Year(), int(now.Month()), uuid.NewString(), filepath.Ext(originalName))
}

// LocalStore keeps blobs on the local filesystem under a base directory.
type LocalStore struct {
	baseDir string
}

func NewLocalStore(baseDir string) *LocalStore {
	return &LocalStore{baseDir: baseDir}
}

func (s *LocalStore) Put(_ context.Context, key string, _ string, r io.Reader) error {
	path := filepath.Join(s.baseDir, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	// O_EXCL enforces write-once.
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return err
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func (s *LocalStore) Get(_ context.Context, key string) (io.ReadCloser, error) {
	return os.Open(filepath.Join(s.baseDir, filepath.FromSlash(key)))
}

func (s *LocalStore) Delete(_ context.Context, key string) error {
	return os.Remove(filepath.Join(s.baseDir, filepath.FromSlash(key)))
}
