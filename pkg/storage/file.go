package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"path/filepath"

	"github.com/spf13/afero"
)

// DefaultDir is used by the file backend when no directory is configured.
const DefaultDir = ".sidenav"

// File stores each key as a JSON document in a directory.
type File struct {
	fs  afero.Fs
	dir string
}

// NewFile creates a file store rooted at dir on fsys. A nil fsys uses the OS
// filesystem. The directory is created when missing.
func NewFile(fsys afero.Fs, dir string) (*File, error) {
	if fsys == nil {
		fsys = afero.NewOsFs()
	}
	if dir == "" {
		dir = DefaultDir
	}

	exists, err := afero.DirExists(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("failed to stat state directory %s: %w", dir, err)
	}
	if !exists {
		if err := fsys.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create state directory %s: %w", dir, err)
		}
	}

	return &File{fs: fsys, dir: dir}, nil
}

func (f *File) path(key string) string {
	return filepath.Join(f.dir, url.PathEscape(key)+".json")
}

// Get reads the file stored for key.
func (f *File) Get(_ context.Context, key string) (string, bool, error) {
	data, err := afero.ReadFile(f.fs, f.path(key))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to read state %s: %w", key, err)
	}
	return string(data), true, nil
}

// Set writes to a temporary file and renames it over the target.
func (f *File) Set(_ context.Context, key, value string) error {
	target := f.path(key)
	tmp := target + ".tmp"

	if err := afero.WriteFile(f.fs, tmp, []byte(value), 0o644); err != nil {
		return fmt.Errorf("failed to write state %s: %w", key, err)
	}

	if err := f.fs.Rename(tmp, target); err != nil {
		_ = f.fs.Remove(tmp)
		return fmt.Errorf("failed to replace state %s: %w", key, err)
	}

	return nil
}
