package interfaces

//go:generate moq -out ../mock/usecase.go -pkg mock . UseCase

import (
	"context"

	"github.com/google/go-github/v53/github"
	"github.com/runsynapse/ghsync/pkg/domain/model"
	"github.com/runsynapse/ghsync/pkg/domain/types"
)

type UseCase interface {
	HandleInstallationEvent(ctx context.Context, ev *github.InstallationEvent) error
	HandleInstallationRepositoriesEvent(ctx context.Context, ev *github.InstallationRepositoriesEvent) error
	CompleteSetup(ctx context.Context, input *model.CompleteSetupInput) error
	IssueConnectionState(ctx context.Context, userID types.UserID) (types.StateToken, error)
}
