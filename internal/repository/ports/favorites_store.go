package ports

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrNotSupported is returned by optional store capabilities a driver lacks.
var ErrNotSupported = errors.New("operation not supported by store driver")

// FavoritesStore is a per-profile key-value store. Values are replaced wholesale.
type FavoritesStore interface {
	Get(ctx context.Context, profileID uuid.UUID, key string) ([]byte, bool, error)
	Put(ctx context.Context, profileID uuid.UUID, key string, value []byte) error
	Delete(ctx context.Context, profileID uuid.UUID, key string) error
}

// PinnedCounter is implemented by stores that can aggregate across profiles.
type PinnedCounter interface {
	CountPinned(ctx context.Context, key string, movieIDs []int64) (map[int64]int64, error)
}
