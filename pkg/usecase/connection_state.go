package usecase

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/runsynapse/ghsync/pkg/domain/model"
	"github.com/runsynapse/ghsync/pkg/domain/types"
	"github.com/runsynapse/ghsync/pkg/utils/logging"
)

// connectionStateTTL bounds the window between starting the GitHub App
// installation flow and GitHub redirecting back to the setup callback.
const connectionStateTTL = 10 * time.Minute

// IssueConnectionState creates a one-time state token for the given user.
// The token is carried through GitHub's installation redirect so the setup
// callback can attribute the installation to the user who started it.
func (x *UseCase) IssueConnectionState(ctx context.Context, userID types.UserID) (types.StateToken, error) {
	if userID == "" {
		return "", goerr.Wrap(types.ErrValidationFailed, "user ID is empty")
	}

	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", goerr.Wrap(err, "failed to generate state token")
	}
	token := types.StateToken(hex.EncodeToString(buf))

	state := &model.ConnectionState{
		Token:     token,
		UserID:    userID,
		ExpiresAt: logging.CtxTime(ctx).Add(connectionStateTTL),
	}

	if err := x.clients.Store().CreateConnectionState(ctx, state); err != nil {
		return "", goerr.Wrap(err, "failed to store connection state")
	}

	return token, nil
}
