package model

import (
	"time"

	"github.com/runsynapse/ghsync/pkg/domain/types"
)

// ConnectionState maps a one-time random token to the user who started the
// GitHub App installation flow. The token rides through GitHub's redirect as
// the `state` query parameter and expires shortly after issuance.
type ConnectionState struct {
	Token     types.StateToken `db:"state_token"`
	UserID    types.UserID     `db:"user_id"`
	ExpiresAt time.Time        `db:"expires_at"`
}

func (x *ConnectionState) Expired(now time.Time) bool {
	return now.After(x.ExpiresAt)
}
