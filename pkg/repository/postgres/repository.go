package postgres

import (
	"context"

	"github.com/lib/pq"
	"github.com/m-mizutani/goerr/v2"
	"github.com/runsynapse/ghsync/pkg/domain/model"
	"github.com/runsynapse/ghsync/pkg/domain/types"
	"github.com/runsynapse/ghsync/pkg/utils/safe"
)

const insertRepositoryQuery = `
        INSERT INTO github_repositories
               (installation_id, repo_id, repo_name, is_private, user_id, dockerfile_path)
        VALUES ($1, $2, $3, $4, $5, $6)
        ON CONFLICT (installation_id, repo_name) DO NOTHING`

// AddRepositories inserts the records in one transaction. A record whose
// (installation_id, repo_name) already exists is skipped, so a redelivered
// "added" event cannot create a second row.
func (x *Client) AddRepositories(ctx context.Context, repos []*model.Repository) error {
	if len(repos) == 0 {
		return nil
	}

	tx, err := x.db.BeginTxx(ctx, nil)
	if err != nil {
		return goerr.Wrap(err, "failed to begin transaction")
	}
	defer safe.Rollback(tx.Tx)

	for _, repo := range repos {
		if _, err := tx.ExecContext(ctx, insertRepositoryQuery,
			repo.InstallID, repo.RepoID, repo.RepoName, repo.IsPrivate,
			string(repo.UserID), repo.DockerfilePath,
		); err != nil {
			return goerr.Wrap(err, "failed to insert repository",
				goerr.V("installID", repo.InstallID),
				goerr.V("repoName", repo.RepoName),
			)
		}
	}

	if err := tx.Commit(); err != nil {
		return goerr.Wrap(err, "failed to commit repository insert")
	}

	return nil
}

// RemoveRepositories deletes the rows matching the installation and any of
// the given repo names. Names without a stored row are skipped.
func (x *Client) RemoveRepositories(ctx context.Context, installID types.GitHubAppInstallID, repoNames []string) error {
	if len(repoNames) == 0 {
		return nil
	}

	const q = `DELETE FROM github_repositories WHERE installation_id = $1 AND repo_name = ANY($2)`

	if _, err := x.db.ExecContext(ctx, q, installID, pq.Array(repoNames)); err != nil {
		return goerr.Wrap(err, "failed to remove repositories",
			goerr.V("installID", installID),
			goerr.V("repoNames", repoNames),
		)
	}

	return nil
}

// ReplaceRepositories swaps the whole repository set of an installation.
// Used by the setup callback, which holds the authoritative list from the
// GitHub API.
func (x *Client) ReplaceRepositories(ctx context.Context, installID types.GitHubAppInstallID, repos []*model.Repository) error {
	tx, err := x.db.BeginTxx(ctx, nil)
	if err != nil {
		return goerr.Wrap(err, "failed to begin transaction")
	}
	defer safe.Rollback(tx.Tx)

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM github_repositories WHERE installation_id = $1`, installID,
	); err != nil {
		return goerr.Wrap(err, "failed to clear repositories",
			goerr.V("installID", installID),
		)
	}

	for _, repo := range repos {
		if _, err := tx.ExecContext(ctx, insertRepositoryQuery,
			repo.InstallID, repo.RepoID, repo.RepoName, repo.IsPrivate,
			string(repo.UserID), repo.DockerfilePath,
		); err != nil {
			return goerr.Wrap(err, "failed to insert repository",
				goerr.V("installID", repo.InstallID),
				goerr.V("repoName", repo.RepoName),
			)
		}
	}

	if err := tx.Commit(); err != nil {
		return goerr.Wrap(err, "failed to commit repository replace")
	}

	return nil
}

func (x *Client) ListRepositories(ctx context.Context, installID types.GitHubAppInstallID) ([]*model.Repository, error) {
	const q = `
        SELECT installation_id, repo_id, repo_name, is_private,
               COALESCE(user_id, '') AS user_id, dockerfile_path
        FROM   github_repositories
        WHERE  installation_id = $1
        ORDER  BY repo_name`

	var repos []*model.Repository
	if err := x.db.SelectContext(ctx, &repos, q, installID); err != nil {
		return nil, goerr.Wrap(err, "failed to list repositories",
			goerr.V("installID", installID),
		)
	}

	return repos, nil
}
