// Package storage keeps uploaded images on the local filesystem, below a
// directory that echo serves as static content.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
)

var errBadName = errors.New("invalid upload name")

// LocalImageStore implements ports.ImageStore.
type LocalImageStore struct {
	dir    string
	prefix string
}

// NewLocal stores files under dir and reports them under urlPrefix.
func NewLocal(dir, urlPrefix string) *LocalImageStore {
	return &LocalImageStore{
		dir:    dir,
		prefix: "/" + strings.Trim(urlPrefix, "/"),
	}
}

// Save writes r to name, which may contain sub-directories. Existing files
// are never overwritten.
func (s *LocalImageStore) Save(_ context.Context, name string, r io.Reader) (string, error) {
	rel, err := cleanRel(name)
	if err != nil {
		return "", err
	}
	target := filepath.Join(s.dir, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}

	f, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("create upload: %w", err)
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(target)
		return "", fmt.Errorf("write upload: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(target)
		return "", fmt.Errorf("close upload: %w", err)
	}
	return path.Join(s.prefix, rel), nil
}

// Remove deletes a file previously returned by Save.
func (s *LocalImageStore) Remove(_ context.Context, publicPath string) error {
	rel, err := cleanRel(strings.TrimPrefix(publicPath, s.prefix))
	if err != nil {
		return err
	}
	if err := os.Remove(filepath.Join(s.dir, filepath.FromSlash(rel))); err != nil {
		return fmt.Errorf("remove upload: %w", err)
	}
	return nil
}

// cleanRel rejects names that would escape the upload directory.
func cleanRel(name string) (string, error) {
	rel := path.Clean(strings.TrimPrefix(strings.ReplaceAll(name, "\\", "/"), "/"))
	if rel == "." || rel == ".." || strings.HasPrefix(rel, "../") {
		return "", errBadName
	}
	return rel, nil
}
