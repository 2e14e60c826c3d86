package media

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/xyz-asif/foundit/internal/pkg/validator"
)

var ErrUnsupportedImage = fmt.Errorf("invalid image file type. Allowed types: %s", strings.Join(validator.AllowedImageTypes, ", "))

// Stager copies images received over HTTP into a local directory so the
// pipeline can treat them like any other local image reference.
type Stager struct {
	dir string
}

func NewStager(dir string) *Stager {
	if dir == "" {
		dir = os.TempDir()
	}
	return &Stager{dir: dir}
}

// Stage writes the uploaded file to disk and returns its path together with a
// cleanup func that removes it. Cleanup is safe to call more than once.
func (s *Stager) Stage(header *multipart.FileHeader) (string, func(), error) {
	noop := func() {}
	if header == nil {
		return "", noop, errors.New("file header is required")
	}

	if header.Size > MaxImageSize {
		return "", noop, ErrImageTooLarge
	}
	if !validator.IsAllowedImageName(header.Filename) {
		return "", noop, ErrUnsupportedImage
	}

	src, err := header.Open()
	if err != nil {
		return "", noop, fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	dst, err := os.CreateTemp(s.dir, "report-*"+ext)
	if err != nil {
		return "", noop, fmt.Errorf("failed to create staging file: %w", err)
	}
	path := dst.Name()
	cleanup := func() { _ = os.Remove(path) }

	// one byte past the limit tells us the declared size was wrong
	n, err := io.Copy(dst, io.LimitReader(src, MaxImageSize+1))
	closeErr := dst.Close()
	if err != nil || closeErr != nil {
		cleanup()
		return "", noop, fmt.Errorf("failed to stage uploaded file: %w", errors.Join(err, closeErr))
	}
	if n > MaxImageSize {
		cleanup()
		return "", noop, ErrImageTooLarge
	}

	return path, cleanup, nil
}
