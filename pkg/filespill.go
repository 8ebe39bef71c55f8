// Package pkg provides utilities shared by the faultline commands.
package pkg

import (
	"encoding/gob"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
)

// ErrReadOnly is returned when appending to a spill opened for reading.
var ErrReadOnly = errors.New("filespill is read-only")

// FileSpill is an append-only sequence of T kept in a gob file on disk.
type FileSpill[T any] interface {
	Len() uint64
	Path() string
	Append(item T) error
	AppendBatch(items []T) error
	Get(index uint64) (T, error)
	Range(f func(index uint64, item T) error) error
	Close() error
}

type fileSpillImpl[T any] struct {
	path    string
	file    *os.File
	encoder *gob.Encoder
	mu      sync.Mutex
	length  uint64
}

// NewFileSpill creates (or truncates) the spill file at path.
func NewFileSpill[T any](path string) (FileSpill[T], error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		slog.Error("failed to create spill directory", "path", path, "error", err)
		return nil, fmt.Errorf("failed to create spill directory: %w", err)
	}

	// #nosec G304 - path is chosen by the caller
	file, err := os.Create(path)
	if err != nil {
		slog.Error("failed to create spill file", "path", path, "error", err)
		return nil, fmt.Errorf("failed to create spill file: %w", err)
	}

	slog.Debug("created filespill", "path", path)

	return &fileSpillImpl[T]{
		path:    path,
		file:    file,
		encoder: gob.NewEncoder(file),
	}, nil
}

// OpenFileSpill opens an existing spill for reading.
func OpenFileSpill[T any](path string) (FileSpill[T], error) {
	f := &fileSpillImpl[T]{path: path}

	err := f.scan(func(uint64, T) (bool, error) {
		f.length++
		return true, nil
	}, true)
	if err != nil {
		return nil, err
	}

	slog.Debug("opened filespill", "path", path, "length", f.length)

	return f, nil
}

// Append implements FileSpill.
func (f *fileSpillImpl[T]) Append(item T) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.encoder == nil {
		return ErrReadOnly
	}

	if err := f.encoder.Encode(item); err != nil {
		slog.Error("failed to encode item", "path", f.path, "index", f.length, "error", err)
		return fmt.Errorf("failed to encode item: %w", err)
	}

	f.length++

	return nil
}

// Path implements FileSpill.
func (f *fileSpillImpl[T]) Path() string {
	return f.path
}

// AppendBatch implements FileSpill.
func (f *fileSpillImpl[T]) AppendBatch(items []T) error {
	for _, item := range items {
		if err := f.Append(item); err != nil {
			return err
		}
	}

	return nil
}

// Close implements FileSpill. The items stay readable after Close.
func (f *fileSpillImpl[T]) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.file == nil {
		return nil
	}

	if err := f.file.Close(); err != nil {
		slog.Error("failed to close file", "path", f.path, "error", err)
		return err
	}

	f.file, f.encoder = nil, nil

	slog.Debug("closed filespill", "path", f.path, "length", f.length)

	return nil
}

// Get implements FileSpill.
func (f *fileSpillImpl[T]) Get(index uint64) (T, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var found T

	if index >= f.length {
		return found, fmt.Errorf("index %d out of bounds (length %d)", index, f.length)
	}

	err := f.scan(func(i uint64, item T) (bool, error) {
		if i < index {
			return true, nil
		}

		found = item

		return false, nil
	}, false)

	return found, err
}

// Len implements FileSpill.
func (f *fileSpillImpl[T]) Len() uint64 {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.length
}

// Range implements FileSpill.
func (f *fileSpillImpl[T]) Range(fn func(index uint64, item T) error) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.scan(func(i uint64, item T) (bool, error) {
		if err := fn(i, item); err != nil {
			return false, err
		}

		return true, nil
	}, false)
}

// scan decodes items in order until visit returns false. With toEOF the
// number of items is unknown and decoding stops at the end of the file;
// otherwise it stops after f.length items.
func (f *fileSpillImpl[T]) scan(visit func(index uint64, item T) (bool, error), toEOF bool) error {
	// #nosec G304 - spill files are created by this package
	file, err := os.Open(f.path)
	if err != nil {
		slog.Error("failed to open spill file", "path", f.path, "error", err)
		return fmt.Errorf("failed to open spill file: %w", err)
	}

	defer func() {
		if err := file.Close(); err != nil {
			slog.Error("failed to close file", "path", f.path, "error", err)
		}
	}()

	decoder := gob.NewDecoder(file)

	for i := uint64(0); toEOF || i < f.length; i++ {
		var item T

		if err := decoder.Decode(&item); err != nil {
			if toEOF && errors.Is(err, io.EOF) {
				return nil
			}

			slog.Error("failed to decode item", "path", f.path, "index", i, "error", err)

			return fmt.Errorf("failed to decode item at index %d: %w", i, err)
		}

		more, err := visit(i, item)
		if err != nil || !more {
			return err
		}
	}

	return nil
}
