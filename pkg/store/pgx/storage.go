// Package pgx implements store.DocumentStorage on a Postgres connection pool.
package pgx

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"lexdoc/pkg/store"
)

// DocumentDBStorage stores documents and chunks in Postgres.
type DocumentDBStorage struct {
	conn *pgxpool.Pool
}

var _ store.DocumentStorage = (*DocumentDBStorage)(nil)

func NewDocumentDBStorage(conn *pgxpool.Pool) *DocumentDBStorage {
	return &DocumentDBStorage{conn: conn}
}
