package file

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/njprem/MovieShelf_BackEnd/internal/repository/ports"
)

// FavoritesStore keeps each value in <root>/<profile>/<key>.json and replaces it
// atomically on write.
type FavoritesStore struct {
	root string
}

var storeKeyRE = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

func NewFavoritesStore(root string) (*FavoritesStore, error) {
	root = strings.TrimSpace(root)
	if root == "" {
		return nil, errors.New("file store: empty root directory")
	}
	if err := os.MkdirAll(root, 0o750); err != nil {
		return nil, fmt.Errorf("file store: mkdir root: %w", err)
	}
	return &FavoritesStore{root: filepath.Clean(root)}, nil
}

func (s *FavoritesStore) Get(ctx context.Context, profileID uuid.UUID, key string) ([]byte, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	path, err := s.path(profileID, key)
	if err != nil {
		return nil, false, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("read value: %w", err)
	}
	if len(data) == 0 {
		return nil, false, nil
	}
	return data, true, nil
}

func (s *FavoritesStore) Put(ctx context.Context, profileID uuid.UUID, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	path, err := s.path(profileID, key)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}

	tmp := path + ".tmp"
	f, err := os.OpenFile(tmp, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o600)
	if err != nil {
		return fmt.Errorf("open tmp: %w", err)
	}
	if _, err := f.Write(value); err != nil {
		f.Close()
		_ = os.Remove(tmp)
		return fmt.Errorf("write tmp: %w", err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("close tmp: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("rename tmp: %w", err)
	}
	return nil
}

func (s *FavoritesStore) Delete(ctx context.Context, profileID uuid.UUID, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	path, err := s.path(profileID, key)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove value: %w", err)
	}
	return nil
}

func (s *FavoritesStore) path(profileID uuid.UUID, key string) (string, error) {
	if profileID == uuid.Nil {
		return "", errors.New("file store: nil profile id")
	}
	if !storeKeyRE.MatchString(key) {
		return "", fmt.Errorf("file store: invalid key %q", key)
	}
	return filepath.Join(s.root, profileID.String(), key+".json"), nil
}

var _ ports.FavoritesStore = (*FavoritesStore)(nil)
