package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"lingodeck/internal/domain"
)

// LocalBlobStore implements domain.BlobStore on the local filesystem.
// Keys are slash-separated relative paths under the root directory; the
// returned BlobRef is the key itself, so references stay valid across
// process restarts.
type LocalBlobStore struct {
	root string
}

func NewLocalBlobStore(root string) (*LocalBlobStore, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create blob root directory: %w", err)
	}
	return &LocalBlobStore{root: root}, nil
}

func (s *LocalBlobStore) Put(ctx context.Context, key string, data []byte) (domain.BlobRef, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	path, err := s.resolve(key)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("failed to create blob directory: %w", err)
	}

	// Write-then-rename so a crashed write never leaves a half-written blob
	// behind a valid reference.
	tmp, err := os.CreateTemp(filepath.Dir(path), ".tmp-*")
	if err != nil {
		return "", fmt.Errorf("failed to create temp blob file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", fmt.Errorf("failed to write blob: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("failed to close blob file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("failed to finalize blob: %w", err)
	}
	return domain.BlobRef(key), nil
}

func (s *LocalBlobStore) Get(ctx context.Context, ref domain.BlobRef) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	path, err := s.resolve(string(ref))
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read blob %s: %w", ref, err)
	}
	return data, nil
}

func (s *LocalBlobStore) Delete(ctx context.Context, ref domain.BlobRef) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	path, err := s.resolve(string(ref))
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete blob %s: %w", ref, err)
	}
	return nil
}

// resolve maps a key to an absolute path, rejecting keys that would escape
// the root directory.
func (s *LocalBlobStore) resolve(key string) (string, error) {
	if key == "" {
		return "", fmt.Errorf("blob key is empty")
	}
	clean := filepath.Clean(filepath.FromSlash(key))
	if strings.HasPrefix(clean, "..") || filepath.IsAbs(clean) {
		return "", fmt.Errorf("invalid blob key: %s", key)
	}
	return filepath.Join(s.root, clean), nil
}
