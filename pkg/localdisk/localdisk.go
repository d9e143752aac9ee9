// Package localdisk stores uploaded files under a root directory on the local
// filesystem.
package localdisk

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
)

// Store writes files beneath a fixed upload root.
type Store struct {
	root   string
	logger zerolog.Logger
}

// New constructs a disk store rooted at the given directory, creating it if absent.
func New(root string, logger zerolog.Logger) (*Store, error) {
	if root == "" {
		return nil, fmt.Errorf("upload root must not be empty")
	}

	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload root: %w", err)
	}

	return &Store{
		root:   root,
		logger: logger.With().Str("component", "localdisk").Logger(),
	}, nil
}

// Upload writes the reader's content to the given path relative to the root and
// returns the stored path. Parent directories are created idempotently.
func (s *Store) Upload(ctx context.Context, name string, reader io.Reader) (string, error) {
	cleaned := filepath.Clean(name)
	if cleaned == "." || strings.HasPrefix(cleaned, "..") || filepath.IsAbs(cleaned) {
		return "", fmt.Errorf("invalid storage path %q", name)
	}

	target := filepath.Join(s.root, cleaned)
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return "", fmt.Errorf("failed to create candidate directory: %w", err)
	}

	out, err := os.Create(target)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer out.Close()

	written, err := io.Copy(out, reader)
	if err != nil {
		return "", fmt.Errorf("failed to write file: %w", err)
	}

	s.logger.Debug().Str("path", target).Int64("bytes", written).Msg("file stored")

	return target, nil
}
