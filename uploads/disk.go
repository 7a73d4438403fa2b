// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package uploads

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// DiskStore keeps uploads as files in a single directory
type DiskStore struct {
	dir string
}

// NewDiskStore creates dir if needed
func NewDiskStore(dir string) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &DiskStore{dir: dir}, nil
}

func (s *DiskStore) path(name string) (string, error) {
	if !ValidName(name) {
		return "", ErrNotExist
	}
	return filepath.Join(s.dir, name), nil
}

func (s *DiskStore) Save(ctx context.Context, name string, r io.Reader) error {
	p, err := s.path(name)
	if err != nil {
		return fmt.Errorf("invalid upload name %q", name)
	}

	f, err := os.Create(p)
	if err != nil {
		return fmt.Errorf("failed to create upload: %w", err)
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(p)
		return fmt.Errorf("failed to write upload: %w", err)
	}
	return f.Close()
}

func (s *DiskStore) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	p, err := s.path(name)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(p)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNotExist
	}
	return f, err
}

func (s *DiskStore) Delete(ctx context.Context, name string) error {
	p, err := s.path(name)
	if err != nil {
		return err
	}

	err = os.Remove(p)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}
