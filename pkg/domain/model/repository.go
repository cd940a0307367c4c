package model

import (
	"github.com/runsynapse/ghsync/pkg/domain/types"
)

// DefaultDockerfilePath is assigned to newly mirrored repositories. Users can
// change it later through the console, which is outside this service.
const DefaultDockerfilePath = "./Dockerfile"

// Repository is a repository connected through an installation. The natural
// key is (installation_id, repo_name) and the store enforces its uniqueness.
type Repository struct {
	InstallID      types.GitHubAppInstallID `db:"installation_id"`
	RepoID         types.GitHubRepoID       `db:"repo_id"`
	RepoName       string                   `db:"repo_name"`
	IsPrivate      bool                     `db:"is_private"`
	UserID         types.UserID             `db:"user_id"`
	DockerfilePath string                   `db:"dockerfile_path"`
}

// RepoDescriptor is the subset of a GitHub repository payload the reconciler
// needs: {id, full_name, private}.
type RepoDescriptor struct {
	RepoID   types.GitHubRepoID
	FullName string
	Private  bool
}
