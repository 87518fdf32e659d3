package postgres

import (
	"context"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
)

func New(dsn string) (*sqlx.DB, error) {
	return sqlx.Connect("pgx", dsn)
}

const favoritesSchema = `
	CREATE TABLE IF NOT EXISTS favorites_store (
		profile_id UUID NOT NULL,
		store_key TEXT NOT NULL,
		value JSONB NOT NULL DEFAULT '[]'::jsonb,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		PRIMARY KEY (profile_id, store_key)
	);
	CREATE INDEX IF NOT EXISTS favorites_store_key_idx ON favorites_store (store_key);
`

// EnsureSchema creates the favorites table when it does not exist yet.
func EnsureSchema(ctx context.Context, db *sqlx.DB) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	_, err := db.ExecContext(ctx, favoritesSchema)
	return err
}
