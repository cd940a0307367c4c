package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/m-mizutani/goerr/v2"
	"github.com/runsynapse/ghsync/pkg/domain/model"
	"github.com/runsynapse/ghsync/pkg/domain/types"
	"github.com/runsynapse/ghsync/pkg/repository"
)

func (x *Client) CreateConnectionState(ctx context.Context, state *model.ConnectionState) error {
	const q = `
        INSERT INTO github_connection_states (state_token, user_id, expires_at)
        VALUES ($1, $2, $3)`

	if _, err := x.db.ExecContext(ctx, q,
		string(state.Token), string(state.UserID), state.ExpiresAt,
	); err != nil {
		return goerr.Wrap(err, "failed to create connection state")
	}

	return nil
}

// ConsumeConnectionState deletes the token and returns its record, so a
// token can resolve a user at most once. Expiry is checked by the caller.
func (x *Client) ConsumeConnectionState(ctx context.Context, token types.StateToken) (*model.ConnectionState, error) {
	const q = `
        DELETE FROM github_connection_states
        WHERE  state_token = $1
        RETURNING state_token, user_id, expires_at`

	var state model.ConnectionState
	if err := x.db.GetContext(ctx, &state, q, string(token)); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, goerr.Wrap(repository.ErrNotFound, "connection state not found")
		}
		return nil, goerr.Wrap(err, "failed to consume connection state")
	}

	return &state, nil
}
