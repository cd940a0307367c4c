package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/go-github/v53/github"
	"github.com/m-mizutani/gt"
	"github.com/runsynapse/ghsync/pkg/domain/interfaces"
	"github.com/runsynapse/ghsync/pkg/domain/model"
	"github.com/runsynapse/ghsync/pkg/domain/types"
	"github.com/runsynapse/ghsync/pkg/infra"
	"github.com/runsynapse/ghsync/pkg/repository/memory"
	"github.com/runsynapse/ghsync/pkg/usecase"
)

func newTestUseCase(options ...infra.Option) (*usecase.UseCase, interfaces.Store) {
	store := memory.New()
	clients := infra.New(append([]infra.Option{infra.WithStore(store)}, options...)...)
	return usecase.New(clients), store
}

func saveLinkedInstallation(t *testing.T, store interfaces.Store, installID types.GitHubAppInstallID, userID types.UserID) {
	t.Helper()
	gt.NoError(t, store.SaveInstallation(context.Background(), &model.Installation{
		InstallID:   installID,
		UserID:      userID,
		InstalledAt: time.Now().UTC(),
	}))
}

func installationEvent(action string, installID int64) *github.InstallationEvent {
	return &github.InstallationEvent{
		Action: github.String(action),
		Installation: &github.Installation{
			ID: github.Int64(installID),
		},
	}
}

func TestHandleInstallationDeleted(t *testing.T) {
	ctx := context.Background()

	t.Run("deletes installation and its repositories", func(t *testing.T) {
		uc, store := newTestUseCase()
		saveLinkedInstallation(t, store, 42, "u1")
		gt.NoError(t, store.AddRepositories(ctx, []*model.Repository{
			{InstallID: 42, RepoID: 1, RepoName: "o/r1", UserID: "u1", DockerfilePath: model.DefaultDockerfilePath},
		}))

		gt.NoError(t, uc.HandleInstallationEvent(ctx, installationEvent("deleted", 42)))

		_, err := store.GetInstallation(ctx, 42)
		gt.Error(t, err)
		repos := gt.R1(store.ListRepositories(ctx, 42)).NoError(t)
		gt.V(t, len(repos)).Equal(0)
	})

	t.Run("deleting a missing installation succeeds", func(t *testing.T) {
		uc, _ := newTestUseCase()
		gt.NoError(t, uc.HandleInstallationEvent(ctx, installationEvent("deleted", 42)))
		gt.NoError(t, uc.HandleInstallationEvent(ctx, installationEvent("deleted", 42)))
	})
}

func TestHandleInstallationSuspend(t *testing.T) {
	ctx := context.Background()

	t.Run("suspend then unsuspend restores the flag", func(t *testing.T) {
		uc, store := newTestUseCase()
		saveLinkedInstallation(t, store, 42, "u1")

		gt.NoError(t, uc.HandleInstallationEvent(ctx, installationEvent("suspend", 42)))
		inst := gt.R1(store.GetInstallation(ctx, 42)).NoError(t)
		gt.V(t, inst.Suspended).Equal(true)

		gt.NoError(t, uc.HandleInstallationEvent(ctx, installationEvent("unsuspend", 42)))
		inst = gt.R1(store.GetInstallation(ctx, 42)).NoError(t)
		gt.V(t, inst.Suspended).Equal(false)
	})

	t.Run("suspending twice keeps the flag set", func(t *testing.T) {
		uc, store := newTestUseCase()
		saveLinkedInstallation(t, store, 42, "u1")

		gt.NoError(t, uc.HandleInstallationEvent(ctx, installationEvent("suspend", 42)))
		gt.NoError(t, uc.HandleInstallationEvent(ctx, installationEvent("suspend", 42)))

		inst := gt.R1(store.GetInstallation(ctx, 42)).NoError(t)
		gt.V(t, inst.Suspended).Equal(true)
	})
}

func TestHandleInstallationCreated(t *testing.T) {
	// The setup callback owns the "created" path, so the event is a no-op
	uc, store := newTestUseCase()
	ctx := context.Background()

	gt.NoError(t, uc.HandleInstallationEvent(ctx, installationEvent("created", 42)))
	_, err := store.GetInstallation(ctx, 42)
	gt.Error(t, err)
}

func TestHandleInstallationNewPermissions(t *testing.T) {
	uc, store := newTestUseCase()
	ctx := context.Background()
	saveLinkedInstallation(t, store, 42, "u1")

	ev := installationEvent("new_permissions_accepted", 42)
	ev.Repositories = []*github.Repository{
		{
			ID:       github.Int64(7),
			FullName: github.String("o/extra"),
			Private:  github.Bool(true),
		},
	}

	gt.NoError(t, uc.HandleInstallationEvent(ctx, ev))

	repos := gt.R1(store.ListRepositories(ctx, 42)).NoError(t)
	gt.V(t, len(repos)).Equal(1)
	gt.V(t, repos[0].RepoName).Equal("o/extra")
	gt.V(t, repos[0].UserID).Equal(types.UserID("u1"))
	gt.V(t, repos[0].DockerfilePath).Equal(model.DefaultDockerfilePath)
}

func TestHandleInstallationUnknownAction(t *testing.T) {
	uc, _ := newTestUseCase()
	gt.NoError(t, uc.HandleInstallationEvent(context.Background(), installationEvent("renamed", 42)))
}

func TestHandleInstallationWithoutID(t *testing.T) {
	uc, _ := newTestUseCase()
	err := uc.HandleInstallationEvent(context.Background(), &github.InstallationEvent{
		Action: github.String("deleted"),
	})
	gt.Error(t, err)
}
