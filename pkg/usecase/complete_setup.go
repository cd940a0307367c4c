package usecase

import (
	"context"
	"log/slog"

	"github.com/m-mizutani/goerr/v2"
	"github.com/runsynapse/ghsync/pkg/domain/model"
	"github.com/runsynapse/ghsync/pkg/domain/types"
	"github.com/runsynapse/ghsync/pkg/utils/logging"
)

// CompleteSetup finishes the GitHub App installation flow after GitHub
// redirects back. It resolves the owning user from the one-time state
// token, fetches the repositories accessible to the installation through
// the GitHub App API, and writes the authoritative installation and
// repository rows.
func (x *UseCase) CompleteSetup(ctx context.Context, input *model.CompleteSetupInput) error {
	if err := input.Validate(); err != nil {
		return err
	}

	state, err := x.clients.Store().ConsumeConnectionState(ctx, input.State)
	if err != nil {
		return goerr.Wrap(err, "failed to resolve connection state",
			goerr.V("installID", input.InstallID),
		)
	}

	now := logging.CtxTime(ctx)
	if state.Expired(now) {
		return goerr.Wrap(types.ErrPreconditionFailed, "connection state expired",
			goerr.V("installID", input.InstallID),
			goerr.V("expiresAt", state.ExpiresAt),
		)
	}

	descs, err := x.clients.GitHubApp().ListInstallationRepos(ctx, input.InstallID)
	if err != nil {
		return goerr.Wrap(err, "failed to list repositories of installation",
			goerr.V("installID", input.InstallID),
		)
	}

	inst := &model.Installation{
		InstallID:   input.InstallID,
		UserID:      state.UserID,
		InstalledAt: now,
	}
	if err := x.clients.Store().SaveInstallation(ctx, inst); err != nil {
		return goerr.Wrap(err, "failed to save installation",
			goerr.V("installID", input.InstallID),
		)
	}

	records := make([]*model.Repository, 0, len(descs))
	for _, desc := range descs {
		records = append(records, &model.Repository{
			InstallID:      input.InstallID,
			RepoID:         desc.RepoID,
			RepoName:       desc.FullName,
			IsPrivate:      desc.Private,
			UserID:         state.UserID,
			DockerfilePath: model.DefaultDockerfilePath,
		})
	}

	if err := x.clients.Store().ReplaceRepositories(ctx, input.InstallID, records); err != nil {
		return goerr.Wrap(err, "failed to replace repositories",
			goerr.V("installID", input.InstallID),
		)
	}

	logging.From(ctx).Info("completed installation setup",
		slog.Int64("installID", int64(input.InstallID)),
		slog.String("userID", string(state.UserID)),
		slog.Int("repos", len(records)),
	)

	return nil
}
