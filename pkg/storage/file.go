package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// ErrFileCorrupted indicates the backing file could not be decoded
var ErrFileCorrupted = errors.New("storage.file_corrupted")

// File implements Storage backed by a single JSON document on disk.
// It is the persistence analog of a browser's local storage for processes
// that restart: every write rewrites the document atomically via a
// temp-file rename, so a killed process leaves either the old or the new
// document, never a torn one.
type File struct {
	mu     sync.Mutex
	path   string
	values map[string]string
	closed bool
}

// NewFile opens (or creates) a file-backed store at path.
// Parent directories are created as needed. A missing file is treated as
// an empty store; a file that cannot be decoded returns ErrFileCorrupted.
func NewFile(path string) (*File, error) {
	if path == "" {
		return nil, errors.New("storage: file path is required")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("storage: create state dir: %w", err)
	}

	f := &File{
		path:   path,
		values: make(map[string]string),
	}

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		return f, nil
	case err != nil:
		return nil, fmt.Errorf("storage: read state file: %w", err)
	}

	if len(data) > 0 {
		if err := json.Unmarshal(data, &f.values); err != nil {
			return nil, errors.Join(ErrFileCorrupted, err)
		}
	}

	return f, nil
}

// DefaultFilePath returns the conventional state file location under the
// user's configuration directory.
func DefaultFilePath(appName string) (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("storage: resolve config dir: %w", err)
	}
	return filepath.Join(dir, appName, "session.json"), nil
}

// Get retrieves the value stored under key.
func (f *File) Get(ctx context.Context, key string) ([]byte, error) {
	if key == "" {
		return nil, ErrEmptyKey
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return nil, ErrStorageClosed
	}

	value, exists := f.values[key]
	if !exists {
		return nil, ErrKeyNotFound
	}

	return []byte(value), nil
}

// Set stores value under key and rewrites the backing file.
func (f *File) Set(ctx context.Context, key string, value []byte) error {
	if key == "" {
		return ErrEmptyKey
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return ErrStorageClosed
	}

	previous, existed := f.values[key]
	f.values[key] = string(value)

	if err := f.flush(); err != nil {
		// Keep the in-memory view consistent with what is on disk.
		if existed {
			f.values[key] = previous
		} else {
			delete(f.values, key)
		}
		return err
	}

	return nil
}

// Delete removes the value stored under key and rewrites the backing file.
func (f *File) Delete(ctx context.Context, key string) error {
	if key == "" {
		return ErrEmptyKey
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return ErrStorageClosed
	}

	previous, existed := f.values[key]
	if !existed {
		return nil
	}

	delete(f.values, key)

	if err := f.flush(); err != nil {
		f.values[key] = previous
		return err
	}

	return nil
}

// Close marks the store as closed; subsequent operations fail.
func (f *File) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.closed = true
	f.values = nil
	return nil
}

// Path returns the location of the backing file.
func (f *File) Path() string {
	return f.path
}

// flush writes the document to a temp file and renames it into place.
// Callers must hold f.mu.
func (f *File) flush() error {
	data, err := json.MarshalIndent(f.values, "", "  ")
	if err != nil {
		return fmt.Errorf("storage: encode state: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(f.path), ".session-*.tmp")
	if err != nil {
		return fmt.Errorf("storage: create temp file: %w", err)
	}

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("storage: write temp file: %w", err)
	}

	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("storage: close temp file: %w", err)
	}

	if err := os.Rename(tmp.Name(), f.path); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("storage: replace state file: %w", err)
	}

	return nil
}
