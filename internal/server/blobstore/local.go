package blobstore

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/dmitrijs2005/filesmanager/internal/common"
	"github.com/dmitrijs2005/filesmanager/internal/filex"
	"github.com/spf13/afero"
)

// LocalStore keeps blobs as files under a root directory.
type LocalStore struct {
	fs   afero.Fs
	root string
}

// NewLocalStore creates root on fsys when missing. Locations are absolute
// paths under root.
func NewLocalStore(fsys afero.Fs, root string) (*LocalStore, error) {
	abs, err := filex.EnsureDir(fsys, root)
	if err != nil {
		return nil, err
	}
	return &LocalStore{fs: fsys, root: abs}, nil
}

func (s *LocalStore) Location(name string) string {
	return filepath.Join(s.root, name)
}

func (s *LocalStore) Write(ctx context.Context, location string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := afero.WriteFile(s.fs, location, data, 0o640); err != nil {
		return fmt.Errorf("write blob: %w", err)
	}
	return nil
}

func (s *LocalStore) Read(ctx context.Context, location string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := afero.ReadFile(s.fs, location)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("read blob: %w", err)
	}
	return data, nil
}

func (s *LocalStore) Remove(_ context.Context, location string) error {
	err := s.fs.Remove(location)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove blob: %w", err)
	}
	return nil
}
