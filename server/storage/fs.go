package storage

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/cyclopcam/logs"
)

// StoreFS is a filesystem-based blob store, the default for a self-hosted
// installation.
type StoreFS struct {
	root string
	log  logs.Log
}

func NewStoreFS(log logs.Log, root string) (*StoreFS, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(absRoot, 0755); err != nil {
		return nil, fmt.Errorf("Failed to create storage root %v: %w", absRoot, err)
	}
	return &StoreFS{
		root: absRoot,
		log:  log,
	}, nil
}

func (s *StoreFS) path(name string) (string, error) {
	if strings.Contains(name, "..") {
		return "", fmt.Errorf("Invalid blob name %v", name)
	}
	return filepath.Join(s.root, name), nil
}

func (s *StoreFS) Put(name string, src io.Reader) (int64, error) {
	full, err := s.path(name)
	if err != nil {
		return 0, err
	}
	if err := os.MkdirAll(filepath.Dir(full), 0755); err != nil {
		return 0, err
	}
	f, err := os.OpenFile(full, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return 0, err
	}
	n, err := io.Copy(f, src)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	return n, err
}

func (s *StoreFS) Open(name string) (io.ReadCloser, int64, error) {
	full, err := s.path(name)
	if err != nil {
		return nil, 0, err
	}
	f, err := os.Open(full)
	if errors.Is(err, os.ErrNotExist) {
		return nil, 0, ErrNotFound
	} else if err != nil {
		return nil, 0, err
	}
	st, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, 0, err
	}
	return f, st.Size(), nil
}

func (s *StoreFS) Delete(name string) error {
	full, err := s.path(name)
	if err != nil {
		return err
	}
	err = os.Remove(full)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}
