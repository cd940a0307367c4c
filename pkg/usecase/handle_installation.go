package usecase

import (
	"context"
	"log/slog"

	"github.com/google/go-github/v53/github"
	"github.com/m-mizutani/goerr/v2"
	"github.com/runsynapse/ghsync/pkg/domain/model"
	"github.com/runsynapse/ghsync/pkg/domain/types"
	"github.com/runsynapse/ghsync/pkg/utils/logging"
)

// HandleInstallationEvent reconciles an `installation` lifecycle event into
// the store. Every branch is a single idempotent mutation, so a redelivered
// event reaches the same end state.
func (x *UseCase) HandleInstallationEvent(ctx context.Context, ev *github.InstallationEvent) error {
	installID := types.GitHubAppInstallID(ev.GetInstallation().GetID())
	if installID == 0 {
		return goerr.Wrap(types.ErrInvalidGitHubData, "installation event without installation ID")
	}

	logger := logging.From(ctx).With(
		slog.String("action", ev.GetAction()),
		slog.Int64("installID", int64(installID)),
	)

	switch ev.GetAction() {
	case "created":
		// The ownership link is established by the setup callback, which
		// holds the state token. Nothing to do here.
		logger.Info("installation created, handled by setup callback")
		return nil

	case "deleted":
		if err := x.clients.Store().DeleteInstallation(ctx, installID); err != nil {
			return goerr.Wrap(err, "failed to delete installation", goerr.V("installID", installID))
		}
		logger.Info("installation deleted")
		return nil

	case "suspend":
		if err := x.clients.Store().SetInstallationSuspended(ctx, installID, true); err != nil {
			return goerr.Wrap(err, "failed to suspend installation", goerr.V("installID", installID))
		}
		logger.Info("installation suspended")
		return nil

	case "unsuspend":
		if err := x.clients.Store().SetInstallationSuspended(ctx, installID, false); err != nil {
			return goerr.Wrap(err, "failed to resume installation", goerr.V("installID", installID))
		}
		logger.Info("installation resumed")
		return nil

	case "new_permissions_accepted":
		// The event's repository list is everything newly visible to the
		// app, so it goes through the same path as "repositories added".
		return x.addRepositories(ctx, installID, toDescriptors(ev.Repositories))

	default:
		logger.Warn("unhandled installation action")
		return nil
	}
}

func toDescriptors(repos []*github.Repository) []*model.RepoDescriptor {
	descs := make([]*model.RepoDescriptor, 0, len(repos))
	for _, repo := range repos {
		descs = append(descs, &model.RepoDescriptor{
			RepoID:   types.GitHubRepoID(repo.GetID()),
			FullName: repo.GetFullName(),
			Private:  repo.GetPrivate(),
		})
	}
	return descs
}
