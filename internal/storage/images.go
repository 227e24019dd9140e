package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// PlaceholderImagePath is returned for products without a stored image
// reference.
const PlaceholderImagePath = "/images/placeholder.svg"

// ImageStore saves uploaded product images under generated unique names
// and resolves stored references to public URLs.
type ImageStore interface {
	Save(filename string, r io.Reader) (ref string, url string, err error)
	ResolveURL(ref string) string
}

// DiskImageStore keeps images on the local filesystem, served by the API
// under a fixed public prefix.
type DiskImageStore struct {
	dir     string
	baseURL string
}

// NewDiskImageStore creates the image directory if needed
func NewDiskImageStore(dir, baseURL string) (*DiskImageStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create image directory: %w", err)
	}
	return &DiskImageStore{
		dir:     dir,
		baseURL: strings.TrimRight(baseURL, "/"),
	}, nil
}

// Save writes the uploaded file under a generated unique name, preserving
// the original extension, and returns the stored reference and its public
// URL.
func (s *DiskImageStore) Save(filename string, r io.Reader) (string, string, error) {
	ref := uuid.New().String() + strings.ToLower(filepath.Ext(filename))

	f, err := os.Create(filepath.Join(s.dir, ref))
	if err != nil {
		return "", "", fmt.Errorf("failed to store image %s: %w", filename, err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(f.Name())
		return "", "", fmt.Errorf("failed to store image %s: %w", filename, err)
	}

	return ref, s.ResolveURL(ref), nil
}

// ResolveURL maps a stored reference to its public URL, falling back to
// the placeholder path when no reference is stored.
func (s *DiskImageStore) ResolveURL(ref string) string {
	if ref == "" {
		return PlaceholderImagePath
	}
	return s.baseURL + "/" + ref
}

// Dir exposes the backing directory so the server can mount a file
// handler over it.
func (s *DiskImageStore) Dir() string {
	return s.dir
}
