// Package fs provides file storage with atomic replace semantics.
package fs

import (
	"os"
	"path/filepath"
)

// AtomicFile writes a file through a temporary sibling that replaces the
// target on Commit. Until then the target is left untouched; Abort
// discards the temporary file.
type AtomicFile struct {
	path string
	f    *os.File
}

// NewAtomicFile returns an AtomicFile targeting path.
func NewAtomicFile(path string) *AtomicFile {
	return &AtomicFile{path: path}
}

// TempPath returns the path written before Commit.
func (a *AtomicFile) TempPath() string {
	return a.path + ".tmp"
}

// Create opens the temporary file for writing, creating parent
// directories as needed.
func (a *AtomicFile) Create() (*os.File, error) {
	if dir := filepath.Dir(a.path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, err
		}
	}

	f, err := os.Create(a.TempPath())
	if err != nil {
		return nil, err
	}
	a.f = f
	return f, nil
}

// Commit syncs and closes the temporary file and renames it over the
// target. On failure the temporary file is removed.
func (a *AtomicFile) Commit() error {
	if a.f != nil {
		if err := a.f.Sync(); err != nil {
			_ = a.Abort()
			return err
		}
		if err := a.f.Close(); err != nil {
			a.f = nil
			_ = a.Abort()
			return err
		}
		a.f = nil
	}

	if err := os.Rename(a.TempPath(), a.path); err != nil {
		_ = a.Abort()
		return err
	}
	return nil
}

// Abort closes and removes the temporary file. It is safe to call after
// Commit.
func (a *AtomicFile) Abort() error {
	if a.f != nil {
		_ = a.f.Close()
		a.f = nil
	}
	if err := os.Remove(a.TempPath()); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
