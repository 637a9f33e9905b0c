// Package storage keeps uploaded AGS files on local disk.
package storage

import (
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// ErrOutsideStore is returned for file URLs that do not point into the store
var ErrOutsideStore = errors.New("file is outside the upload directory")

// DiskStore writes uploads under Path/<projectID>/
type DiskStore struct {
	Path string
}

// NewDiskStore creates the upload directory if needed
func NewDiskStore(path string) (*DiskStore, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("invalid upload directory %s: %w", path, err)
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &DiskStore{Path: abs}, nil
}

// Save copies r to a new file and returns its file:// URL
func (s *DiskStore) Save(projectID, name string, r io.Reader) (string, error) {
	dir := filepath.Join(s.Path, filepath.Base(projectID))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create project directory: %w", err)
	}

	base := filepath.Base(filepath.Clean("/" + name))
	if base == "/" || base == "." {
		base = "upload.ags"
	}
	path := filepath.Join(dir, uuid.NewString()+"-"+base)

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("failed to create %s: %w", path, err)
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(path)
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return "", err
	}

	return (&url.URL{Scheme: "file", Path: filepath.ToSlash(path)}).String(), nil
}

// Open reads back a file saved by this store
func (s *DiskStore) Open(fileURL string) (io.ReadCloser, error) {
	u, err := url.Parse(fileURL)
	if err != nil {
		return nil, fmt.Errorf("invalid file URL: %w", err)
	}
	if u.Scheme != "file" {
		return nil, fmt.Errorf("unsupported file URL scheme %q", u.Scheme)
	}

	path := filepath.Clean(filepath.FromSlash(u.Path))
	rel, err := filepath.Rel(s.Path, path)
	if err != nil || rel == "." || strings.HasPrefix(rel, "..") {
		return nil, ErrOutsideStore
	}

	return os.Open(path)
}
