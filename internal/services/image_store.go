package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"
	"strings"
)

var ErrImageNotFound = errors.New("image not found")

const defaultImageType = "image/jpeg"

// Image is an open screenshot. Callers must close Body.
type Image struct {
	Body        io.ReadCloser
	ContentType string
	Size        int64
}

type ImageStore interface {
	Open(ctx context.Context, filename string) (*Image, error)
	Ping(ctx context.Context) error
}

// validImageName accepts a bare file name only; anything that could walk out
// of the image directory is treated as missing.
func validImageName(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}
	if strings.ContainsAny(name, `/\`) || strings.Contains(name, "..") {
		return false
	}
	return filepath.Base(name) == name
}

func imageContentType(name string) string {
	if t := mime.TypeByExtension(strings.ToLower(filepath.Ext(name))); t != "" {
		return t
	}
	return defaultImageType
}

type localImageStore struct {
	dir string
}

// NewLocalImageStore serves files from dir/subdir on the local filesystem
func NewLocalImageStore(dir, subdir string) ImageStore {
	return &localImageStore{dir: filepath.Join(dir, subdir)}
}

func (s *localImageStore) Open(_ context.Context, filename string) (*Image, error) {
	if !validImageName(filename) {
		return nil, ErrImageNotFound
	}

	path := filepath.Join(s.dir, filename)
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return nil, ErrImageNotFound
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open image: %w", err)
	}
	return &Image{Body: f, ContentType: imageContentType(filename), Size: info.Size()}, nil
}

func (s *localImageStore) Ping(_ context.Context) error {
	info, err := os.Stat(s.dir)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", s.dir)
	}
	return nil
}
