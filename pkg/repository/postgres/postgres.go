package postgres

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/m-mizutani/goerr/v2"
	"github.com/runsynapse/ghsync/pkg/domain/interfaces"
	"github.com/runsynapse/ghsync/pkg/domain/types"

	_ "github.com/lib/pq"
)

// Client is a Store backed by the Supabase Postgres database. It issues
// plain statements with the service-role DSN; uniqueness of installation_id
// and (installation_id, repo_name) is enforced by the table constraints.
type Client struct {
	db *sqlx.DB
}

var _ interfaces.Store = (*Client)(nil)

// New connects to the database and verifies the connection.
func New(ctx context.Context, dsn types.DatabaseDSN) (*Client, error) {
	db, err := sqlx.ConnectContext(ctx, "postgres", string(dsn))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to connect to database")
	}

	return &Client{db: db}, nil
}

// NewWithDB wraps an existing database handle. Used by tests.
func NewWithDB(db *sqlx.DB) *Client {
	return &Client{db: db}
}

func (x *Client) Close() error {
	return x.db.Close()
}
