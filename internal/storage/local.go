// Package storage keeps uploaded media on the local disk.
package storage

import (
	"fmt"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/valyala/fasthttp"
)

// PublicPrefix is the URL path uploaded files are served under.
const PublicPrefix = "/storage"

// Local stores uploads below a root directory.
type Local struct {
	root    string
	baseURL string
}

// NewLocal creates the root directory if needed.
func NewLocal(root, baseURL string) (*Local, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage root %s: %w", root, err)
	}
	return &Local{root: root, baseURL: strings.TrimRight(baseURL, "/")}, nil
}

// Root returns the directory files are written to.
func (s *Local) Root() string { return s.root }

// Save writes fh under dir with a generated name and returns the stored
// path relative to the root. The extension comes from the sniffed content.
func (s *Local) Save(dir string, fh *multipart.FileHeader) (string, error) {
	f, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open upload %s: %w", fh.Filename, err)
	}
	mt, err := mimetype.DetectReader(f)
	f.Close()
	if err != nil {
		return "", fmt.Errorf("failed to detect type of upload %s: %w", fh.Filename, err)
	}

	if err := os.MkdirAll(filepath.Join(s.root, dir), 0o755); err != nil {
		return "", fmt.Errorf("failed to create storage directory %s: %w", dir, err)
	}
	rel := path.Join(dir, uuid.New().String()+mt.Extension())
	if err := fasthttp.SaveMultipartFile(fh, filepath.Join(s.root, filepath.FromSlash(rel))); err != nil {
		return "", fmt.Errorf("failed to store upload %s: %w", fh.Filename, err)
	}
	return rel, nil
}

// Delete removes a stored path. A path that is already gone is not an error.
func (s *Local) Delete(rel string) error {
	clean := path.Clean("/" + rel)
	if clean == "/" {
		return fmt.Errorf("refusing to delete storage root")
	}
	err := os.Remove(filepath.Join(s.root, filepath.FromSlash(clean)))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete stored file %s: %w", rel, err)
	}
	return nil
}

// URL returns the public URL of a stored path.
func (s *Local) URL(rel string) string {
	return s.baseURL + PublicPrefix + "/" + strings.TrimLeft(rel, "/")
}
