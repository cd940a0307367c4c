package testhelper

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/m-mizutani/gt"
	"github.com/runsynapse/ghsync/pkg/domain/interfaces"
	"github.com/runsynapse/ghsync/pkg/domain/model"
	"github.com/runsynapse/ghsync/pkg/domain/types"
	"github.com/runsynapse/ghsync/pkg/repository"
)

// TestAll runs the conformance suite against any Store implementation.
func TestAll(t *testing.T, store interfaces.Store) {
	t.Run("InstallationCRUD", func(t *testing.T) {
		TestInstallationCRUD(t, store)
	})
	t.Run("DeleteIsIdempotent", func(t *testing.T) {
		TestDeleteIsIdempotent(t, store)
	})
	t.Run("SuspendFlagFlips", func(t *testing.T) {
		TestSuspendFlagFlips(t, store)
	})
	t.Run("RepositorySetOps", func(t *testing.T) {
		TestRepositorySetOps(t, store)
	})
	t.Run("ReplaceRepositories", func(t *testing.T) {
		TestReplaceRepositories(t, store)
	})
	t.Run("ConnectionState", func(t *testing.T) {
		TestConnectionState(t, store)
	})
}

func newInstallID() types.GitHubAppInstallID {
	return types.GitHubAppInstallID(time.Now().UnixNano() % 1_000_000_000)
}

func newRepo(installID types.GitHubAppInstallID, userID types.UserID, name string) *model.Repository {
	return &model.Repository{
		InstallID:      installID,
		RepoID:         types.GitHubRepoID(len(name) + 100),
		RepoName:       name,
		IsPrivate:      true,
		UserID:         userID,
		DockerfilePath: model.DefaultDockerfilePath,
	}
}

func repoNames(repos []*model.Repository) map[string]bool {
	names := make(map[string]bool, len(repos))
	for _, repo := range repos {
		names[repo.RepoName] = true
	}
	return names
}

func TestInstallationCRUD(t *testing.T, store interfaces.Store) {
	ctx := context.Background()
	installID := newInstallID()
	userID := types.UserID(uuid.NewString())

	inst := &model.Installation{
		InstallID:   installID,
		UserID:      userID,
		InstalledAt: time.Now().UTC().Truncate(time.Second),
	}
	gt.NoError(t, store.SaveInstallation(ctx, inst))

	got := gt.R1(store.GetInstallation(ctx, installID)).NoError(t)
	gt.V(t, got.InstallID).Equal(installID)
	gt.V(t, got.UserID).Equal(userID)
	gt.V(t, got.Suspended).Equal(false)

	// Saving again with a new user relinks the installation
	newUser := types.UserID(uuid.NewString())
	inst.UserID = newUser
	gt.NoError(t, store.SaveInstallation(ctx, inst))
	got = gt.R1(store.GetInstallation(ctx, installID)).NoError(t)
	gt.V(t, got.UserID).Equal(newUser)

	gt.NoError(t, store.DeleteInstallation(ctx, installID))
	_, err := store.GetInstallation(ctx, installID)
	gt.True(t, errors.Is(err, repository.ErrNotFound))
}

func TestDeleteIsIdempotent(t *testing.T, store interfaces.Store) {
	ctx := context.Background()
	installID := newInstallID()

	// Deleting an installation that never existed is a success
	gt.NoError(t, store.DeleteInstallation(ctx, installID))
	gt.NoError(t, store.DeleteInstallation(ctx, installID))
}

func TestSuspendFlagFlips(t *testing.T, store interfaces.Store) {
	ctx := context.Background()
	installID := newInstallID()
	userID := types.UserID(uuid.NewString())

	gt.NoError(t, store.SaveInstallation(ctx, &model.Installation{
		InstallID:   installID,
		UserID:      userID,
		InstalledAt: time.Now().UTC(),
	}))

	gt.NoError(t, store.SetInstallationSuspended(ctx, installID, true))
	got := gt.R1(store.GetInstallation(ctx, installID)).NoError(t)
	gt.V(t, got.Suspended).Equal(true)

	// Suspending twice keeps the flag set
	gt.NoError(t, store.SetInstallationSuspended(ctx, installID, true))
	got = gt.R1(store.GetInstallation(ctx, installID)).NoError(t)
	gt.V(t, got.Suspended).Equal(true)

	gt.NoError(t, store.SetInstallationSuspended(ctx, installID, false))
	got = gt.R1(store.GetInstallation(ctx, installID)).NoError(t)
	gt.V(t, got.Suspended).Equal(false)

	// Missing installation is a zero-row update, not an error
	gt.NoError(t, store.SetInstallationSuspended(ctx, newInstallID()+1, true))

	gt.NoError(t, store.DeleteInstallation(ctx, installID))
}

func TestRepositorySetOps(t *testing.T, store interfaces.Store) {
	ctx := context.Background()
	installID := newInstallID()
	userID := types.UserID(uuid.NewString())

	gt.NoError(t, store.SaveInstallation(ctx, &model.Installation{
		InstallID:   installID,
		UserID:      userID,
		InstalledAt: time.Now().UTC(),
	}))
	defer func() {
		gt.NoError(t, store.DeleteInstallation(ctx, installID))
	}()

	repoA := fmt.Sprintf("o/repo-a-%s", uuid.NewString()[:8])
	repoB := fmt.Sprintf("o/repo-b-%s", uuid.NewString()[:8])
	repoC := fmt.Sprintf("o/repo-c-%s", uuid.NewString()[:8])

	gt.NoError(t, store.AddRepositories(ctx, []*model.Repository{
		newRepo(installID, userID, repoA),
		newRepo(installID, userID, repoB),
	}))

	repos := gt.R1(store.ListRepositories(ctx, installID)).NoError(t)
	gt.V(t, len(repos)).Equal(2)

	// Removing A yields {B}
	gt.NoError(t, store.RemoveRepositories(ctx, installID, []string{repoA}))
	repos = gt.R1(store.ListRepositories(ctx, installID)).NoError(t)
	gt.V(t, repoNames(repos)).Equal(map[string]bool{repoB: true})

	// Removing a name that is not stored changes nothing
	gt.NoError(t, store.RemoveRepositories(ctx, installID, []string{repoC}))
	repos = gt.R1(store.ListRepositories(ctx, installID)).NoError(t)
	gt.V(t, repoNames(repos)).Equal(map[string]bool{repoB: true})

	// Added then removed restores the set
	gt.NoError(t, store.AddRepositories(ctx, []*model.Repository{
		newRepo(installID, userID, repoC),
	}))
	gt.NoError(t, store.RemoveRepositories(ctx, installID, []string{repoC}))
	repos = gt.R1(store.ListRepositories(ctx, installID)).NoError(t)
	gt.V(t, repoNames(repos)).Equal(map[string]bool{repoB: true})

	// Re-adding an existing natural key does not create a second row
	gt.NoError(t, store.AddRepositories(ctx, []*model.Repository{
		newRepo(installID, userID, repoB),
	}))
	repos = gt.R1(store.ListRepositories(ctx, installID)).NoError(t)
	gt.V(t, len(repos)).Equal(1)

	// Empty inputs are no-ops
	gt.NoError(t, store.AddRepositories(ctx, nil))
	gt.NoError(t, store.RemoveRepositories(ctx, installID, nil))
}

func TestReplaceRepositories(t *testing.T, store interfaces.Store) {
	ctx := context.Background()
	installID := newInstallID()
	userID := types.UserID(uuid.NewString())

	gt.NoError(t, store.SaveInstallation(ctx, &model.Installation{
		InstallID:   installID,
		UserID:      userID,
		InstalledAt: time.Now().UTC(),
	}))
	defer func() {
		gt.NoError(t, store.DeleteInstallation(ctx, installID))
	}()

	repoA := fmt.Sprintf("o/repo-a-%s", uuid.NewString()[:8])
	repoB := fmt.Sprintf("o/repo-b-%s", uuid.NewString()[:8])

	gt.NoError(t, store.AddRepositories(ctx, []*model.Repository{
		newRepo(installID, userID, repoA),
	}))

	gt.NoError(t, store.ReplaceRepositories(ctx, installID, []*model.Repository{
		newRepo(installID, userID, repoB),
	}))

	repos := gt.R1(store.ListRepositories(ctx, installID)).NoError(t)
	gt.V(t, repoNames(repos)).Equal(map[string]bool{repoB: true})
}

func TestConnectionState(t *testing.T, store interfaces.Store) {
	ctx := context.Background()
	token := types.StateToken(uuid.NewString())
	userID := types.UserID(uuid.NewString())

	gt.NoError(t, store.CreateConnectionState(ctx, &model.ConnectionState{
		Token:     token,
		UserID:    userID,
		ExpiresAt: time.Now().UTC().Add(10 * time.Minute).Truncate(time.Second),
	}))

	state := gt.R1(store.ConsumeConnectionState(ctx, token)).NoError(t)
	gt.V(t, state.UserID).Equal(userID)

	// Tokens are single-use
	_, err := store.ConsumeConnectionState(ctx, token)
	gt.True(t, errors.Is(err, repository.ErrNotFound))
}
