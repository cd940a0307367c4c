package interfaces

import (
	"context"

	"github.com/runsynapse/ghsync/pkg/domain/model"
	"github.com/runsynapse/ghsync/pkg/domain/types"
)

// Store is the persistent mirror of GitHub App installation state. All
// mutations are idempotent: deleting a missing row, flipping a flag that is
// already set, and re-inserting an existing (installation_id, repo_name)
// pair all succeed without changing the end state.
type Store interface {
	// Installation operations
	SaveInstallation(ctx context.Context, inst *model.Installation) error
	GetInstallation(ctx context.Context, installID types.GitHubAppInstallID) (*model.Installation, error)
	DeleteInstallation(ctx context.Context, installID types.GitHubAppInstallID) error
	SetInstallationSuspended(ctx context.Context, installID types.GitHubAppInstallID, suspended bool) error

	// Repository operations
	AddRepositories(ctx context.Context, repos []*model.Repository) error
	RemoveRepositories(ctx context.Context, installID types.GitHubAppInstallID, repoNames []string) error
	ReplaceRepositories(ctx context.Context, installID types.GitHubAppInstallID, repos []*model.Repository) error
	ListRepositories(ctx context.Context, installID types.GitHubAppInstallID) ([]*model.Repository, error)

	// Connection state operations
	CreateConnectionState(ctx context.Context, state *model.ConnectionState) error
	ConsumeConnectionState(ctx context.Context, token types.StateToken) (*model.ConnectionState, error)
}
