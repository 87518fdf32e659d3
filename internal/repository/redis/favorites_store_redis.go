package redis

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/njprem/MovieShelf_BackEnd/internal/repository/ports"
)

const defaultKeyPrefix = "movieshelf"

// FavoritesStore keeps one string key per profile and store key, e.g.
// movieshelf:<profile>:userFavorites.
type FavoritesStore struct {
	client redis.Cmdable
	prefix string
}

func NewFavoritesStore(client redis.Cmdable, prefix string) *FavoritesStore {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		prefix = defaultKeyPrefix
	}
	return &FavoritesStore{client: client, prefix: prefix}
}

func (s *FavoritesStore) Get(ctx context.Context, profileID uuid.UUID, key string) ([]byte, bool, error) {
	data, err := s.client.Get(ctx, s.makeKey(profileID, key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("redis get: %w", err)
	}
	return data, true, nil
}

func (s *FavoritesStore) Put(ctx context.Context, profileID uuid.UUID, key string, value []byte) error {
	if err := s.client.Set(ctx, s.makeKey(profileID, key), value, 0).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

func (s *FavoritesStore) Delete(ctx context.Context, profileID uuid.UUID, key string) error {
	if err := s.client.Del(ctx, s.makeKey(profileID, key)).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}

func (s *FavoritesStore) makeKey(profileID uuid.UUID, key string) string {
	return s.prefix + ":" + profileID.String() + ":" + key
}

var _ ports.FavoritesStore = (*FavoritesStore)(nil)
