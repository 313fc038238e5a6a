package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// maxExtLen bounds the extension carried over from a client file name.
const maxExtLen = 16

// Local stores uploaded files in a single directory under random names.
type Local struct {
	dir string
}

// NewLocal creates the upload directory if needed.
func NewLocal(dir string) (*Local, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &Local{dir: dir}, nil
}

// Dir returns the upload directory.
func (l *Local) Dir() string {
	return l.dir
}

// Save streams r into a new file named <uuid><ext>, where ext comes from the
// client supplied name, and returns the generated name. Partial files are
// removed on failure.
func (l *Local) Save(ctx context.Context, originalName string, r io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	tmp, err := os.CreateTemp(l.dir, ".upload-*")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op after a successful rename

	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		return "", fmt.Errorf("write upload: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("close upload: %w", err)
	}

	name := uuid.NewString() + Extension(originalName)
	if err := os.Rename(tmpName, filepath.Join(l.dir, name)); err != nil {
		return "", fmt.Errorf("move upload: %w", err)
	}
	return name, nil
}

// Extension returns the lower-cased extension of name including the dot, or
// "" when it is missing or contains anything but letters and digits.
func Extension(name string) string {
	ext := filepath.Ext(filepath.Base(filepath.ToSlash(name)))
	if len(ext) < 2 || len(ext) > maxExtLen {
		return ""
	}
	for _, r := range ext[1:] {
		if !(r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9') {
			return ""
		}
	}
	return strings.ToLower(ext)
}
