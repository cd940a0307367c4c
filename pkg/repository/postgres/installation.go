package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/m-mizutani/goerr/v2"
	"github.com/runsynapse/ghsync/pkg/domain/model"
	"github.com/runsynapse/ghsync/pkg/domain/types"
	"github.com/runsynapse/ghsync/pkg/repository"
	"github.com/runsynapse/ghsync/pkg/utils/safe"
)

func (x *Client) SaveInstallation(ctx context.Context, inst *model.Installation) error {
	const q = `
        INSERT INTO github_installations (installation_id, user_id, installed_at, suspended)
        VALUES ($1, NULLIF($2, ''), $3, $4)
        ON CONFLICT (installation_id)
        DO UPDATE SET user_id = EXCLUDED.user_id, suspended = EXCLUDED.suspended`

	if _, err := x.db.ExecContext(ctx, q,
		inst.InstallID, string(inst.UserID), inst.InstalledAt, inst.Suspended,
	); err != nil {
		return goerr.Wrap(err, "failed to save installation",
			goerr.V("installID", inst.InstallID),
		)
	}

	return nil
}

func (x *Client) GetInstallation(ctx context.Context, installID types.GitHubAppInstallID) (*model.Installation, error) {
	const q = `
        SELECT installation_id, COALESCE(user_id, '') AS user_id, installed_at, suspended
        FROM   github_installations
        WHERE  installation_id = $1`

	var inst model.Installation
	if err := x.db.GetContext(ctx, &inst, q, installID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, goerr.Wrap(repository.ErrNotFound, "installation not found",
				goerr.V("installID", installID),
			)
		}
		return nil, goerr.Wrap(err, "failed to get installation",
			goerr.V("installID", installID),
		)
	}

	return &inst, nil
}

// DeleteInstallation removes the installation row and its repositories in one
// transaction. Deleting rows that do not exist is a success.
func (x *Client) DeleteInstallation(ctx context.Context, installID types.GitHubAppInstallID) error {
	tx, err := x.db.BeginTxx(ctx, nil)
	if err != nil {
		return goerr.Wrap(err, "failed to begin transaction")
	}
	defer safe.Rollback(tx.Tx)

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM github_repositories WHERE installation_id = $1`, installID,
	); err != nil {
		return goerr.Wrap(err, "failed to delete repositories of installation",
			goerr.V("installID", installID),
		)
	}

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM github_installations WHERE installation_id = $1`, installID,
	); err != nil {
		return goerr.Wrap(err, "failed to delete installation",
			goerr.V("installID", installID),
		)
	}

	if err := tx.Commit(); err != nil {
		return goerr.Wrap(err, "failed to commit installation delete")
	}

	return nil
}

// SetInstallationSuspended flips the suspended flag. An UPDATE matching zero
// rows is a success.
func (x *Client) SetInstallationSuspended(ctx context.Context, installID types.GitHubAppInstallID, suspended bool) error {
	const q = `UPDATE github_installations SET suspended = $2 WHERE installation_id = $1`

	if _, err := x.db.ExecContext(ctx, q, installID, suspended); err != nil {
		return goerr.Wrap(err, "failed to update installation suspension",
			goerr.V("installID", installID),
			goerr.V("suspended", suspended),
		)
	}

	return nil
}
