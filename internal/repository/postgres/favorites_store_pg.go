package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/njprem/MovieShelf_BackEnd/internal/repository/ports"
)

type FavoritesStore struct {
	db *sqlx.DB
}

func NewFavoritesStore(db *sqlx.DB) *FavoritesStore {
	return &FavoritesStore{db: db}
}

func (r *FavoritesStore) Get(ctx context.Context, profileID uuid.UUID, key string) ([]byte, bool, error) {
	const query = `
		SELECT value
		FROM favorites_store
		WHERE profile_id = $1 AND store_key = $2
	`

	var value []byte
	if err := r.db.GetContext(ctx, &value, query, profileID, key); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return value, true, nil
}

func (r *FavoritesStore) Put(ctx context.Context, profileID uuid.UUID, key string, value []byte) error {
	const query = `
		INSERT INTO favorites_store (profile_id, store_key, value, updated_at)
		VALUES ($1, $2, $3::jsonb, $4)
		ON CONFLICT (profile_id, store_key)
		DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at
	`
	_, err := r.db.ExecContext(ctx, query, profileID, key, string(value), time.Now().UTC())
	return err
}

func (r *FavoritesStore) Delete(ctx context.Context, profileID uuid.UUID, key string) error {
	const query = `
		DELETE FROM favorites_store
		WHERE profile_id = $1 AND store_key = $2
	`
	_, err := r.db.ExecContext(ctx, query, profileID, key)
	return err
}

// CountPinned reports, per movie id, how many profiles hold it in the list
// stored under key. Movies nobody pinned are absent from the result.
func (r *FavoritesStore) CountPinned(ctx context.Context, key string, movieIDs []int64) (map[int64]int64, error) {
	result := make(map[int64]int64, len(movieIDs))
	if len(movieIDs) == 0 {
		return result, nil
	}

	// Stored values are not trusted to be arrays of objects with numeric ids;
	// anything else counts as no pins instead of failing the whole query.
	const query = `
		SELECT p.movie_id, COUNT(DISTINCT p.profile_id) AS pinned
		FROM (
			SELECT s.profile_id,
				CASE WHEN jsonb_typeof(elem->'id') = 'number'
					THEN (elem->'id')::numeric::bigint
				END AS movie_id
			FROM favorites_store s
			CROSS JOIN LATERAL jsonb_array_elements(
				CASE WHEN jsonb_typeof(s.value) = 'array' THEN s.value ELSE '[]'::jsonb END
			) AS elem
			WHERE s.store_key = $1
		) p
		WHERE p.movie_id = ANY($2)
		GROUP BY p.movie_id
	`

	rows, err := r.db.QueryxContext(ctx, query, key, pq.Array(movieIDs))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			movieID int64
			pinned  int64
		)
		if err := rows.Scan(&movieID, &pinned); err != nil {
			return nil, err
		}
		result[movieID] = pinned
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

var (
	_ ports.FavoritesStore = (*FavoritesStore)(nil)
	_ ports.PinnedCounter  = (*FavoritesStore)(nil)
)
