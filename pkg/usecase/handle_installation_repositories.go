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

// HandleInstallationRepositoriesEvent reconciles an
// `installation_repositories` event: repositories granted to or revoked from
// an existing installation.
func (x *UseCase) HandleInstallationRepositoriesEvent(ctx context.Context, ev *github.InstallationRepositoriesEvent) error {
	installID := types.GitHubAppInstallID(ev.GetInstallation().GetID())
	if installID == 0 {
		return goerr.Wrap(types.ErrInvalidGitHubData, "installation_repositories event without installation ID")
	}

	switch ev.GetAction() {
	case "added":
		return x.addRepositories(ctx, installID, toDescriptors(ev.RepositoriesAdded))

	case "removed":
		return x.removeRepositories(ctx, installID, toDescriptors(ev.RepositoriesRemoved))

	default:
		logging.From(ctx).Warn("unhandled repository installation action",
			slog.String("action", ev.GetAction()),
			slog.Int64("installID", int64(installID)),
		)
		return nil
	}
}

// addRepositories mirrors newly granted repositories. The installation must
// already be linked to a user; without that there is no owner to copy onto
// the rows, and the whole operation fails instead of guessing.
func (x *UseCase) addRepositories(ctx context.Context, installID types.GitHubAppInstallID, descs []*model.RepoDescriptor) error {
	if len(descs) == 0 {
		return nil
	}

	inst, err := x.clients.Store().GetInstallation(ctx, installID)
	if err != nil {
		return goerr.Wrap(err, "installation for added repositories is not mirrored",
			goerr.V("installID", installID),
		)
	}
	if !inst.Linked() {
		return goerr.Wrap(types.ErrPreconditionFailed, "installation has no linked user",
			goerr.V("installID", installID),
		)
	}

	records := make([]*model.Repository, 0, len(descs))
	for _, desc := range descs {
		records = append(records, &model.Repository{
			InstallID:      installID,
			RepoID:         desc.RepoID,
			RepoName:       desc.FullName,
			IsPrivate:      desc.Private,
			UserID:         inst.UserID,
			DockerfilePath: model.DefaultDockerfilePath,
		})
	}

	if err := x.clients.Store().AddRepositories(ctx, records); err != nil {
		return goerr.Wrap(err, "failed to add repositories",
			goerr.V("installID", installID),
		)
	}

	logging.From(ctx).Info("added repositories",
		slog.Int("count", len(records)),
		slog.Int64("installID", int64(installID)),
	)

	return nil
}

func (x *UseCase) removeRepositories(ctx context.Context, installID types.GitHubAppInstallID, descs []*model.RepoDescriptor) error {
	repoNames := make([]string, 0, len(descs))
	for _, desc := range descs {
		if desc.FullName != "" {
			repoNames = append(repoNames, desc.FullName)
		}
	}
	if len(repoNames) == 0 {
		return nil
	}

	if err := x.clients.Store().RemoveRepositories(ctx, installID, repoNames); err != nil {
		return goerr.Wrap(err, "failed to remove repositories",
			goerr.V("installID", installID),
			goerr.V("repoNames", repoNames),
		)
	}

	logging.From(ctx).Info("removed repositories",
		slog.Int("count", len(repoNames)),
		slog.Int64("installID", int64(installID)),
	)

	return nil
}
