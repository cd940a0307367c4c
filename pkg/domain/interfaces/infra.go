package interfaces

//go:generate moq -out ../mock/infra.go -pkg mock . GitHubApp

import (
	"context"

	"github.com/runsynapse/ghsync/pkg/domain/model"
	"github.com/runsynapse/ghsync/pkg/domain/types"
)

// GitHubApp accesses the GitHub App installation API with app credentials.
type GitHubApp interface {
	ListInstallationRepos(ctx context.Context, installID types.GitHubAppInstallID) ([]*model.RepoDescriptor, error)
}
