package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/m-mizutani/goerr/v2"
	"github.com/runsynapse/ghsync/pkg/domain/model"
	"github.com/runsynapse/ghsync/pkg/domain/types"
	"github.com/runsynapse/ghsync/pkg/repository"
)

type installData struct {
	inst  *model.Installation
	repos map[string]*model.Repository // keyed by repo_name
}

type store struct {
	mu            sync.RWMutex
	installations map[int64]*installData
	states        map[string]*model.ConnectionState
}

// Installation operations

func (r *store) SaveInstallation(ctx context.Context, inst *model.Installation) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := int64(inst.InstallID)
	if data, exists := r.installations[key]; exists {
		data.inst = copyInstallation(inst)
	} else {
		r.installations[key] = &installData{
			inst:  copyInstallation(inst),
			repos: make(map[string]*model.Repository),
		}
	}

	return nil
}

func (r *store) GetInstallation(ctx context.Context, installID types.GitHubAppInstallID) (*model.Installation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	data, exists := r.installations[int64(installID)]
	if !exists {
		return nil, goerr.Wrap(repository.ErrNotFound, "installation not found",
			goerr.V("installID", installID),
		)
	}

	return copyInstallation(data.inst), nil
}

// DeleteInstallation removes the installation and all of its repositories.
// Deleting a missing installation is a success.
func (r *store) DeleteInstallation(ctx context.Context, installID types.GitHubAppInstallID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.installations, int64(installID))
	return nil
}

// SetInstallationSuspended flips the suspended flag. A missing installation
// is a zero-row update, which is a success.
func (r *store) SetInstallationSuspended(ctx context.Context, installID types.GitHubAppInstallID, suspended bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if data, exists := r.installations[int64(installID)]; exists {
		data.inst.Suspended = suspended
	}
	return nil
}

// Repository operations

func (r *store) AddRepositories(ctx context.Context, repos []*model.Repository) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, repo := range repos {
		data, exists := r.installations[int64(repo.InstallID)]
		if !exists {
			return goerr.Wrap(repository.ErrNotFound, "installation not found",
				goerr.V("installID", repo.InstallID),
				goerr.V("repoName", repo.RepoName),
			)
		}

		// existing natural key is kept as-is, matching ON CONFLICT DO NOTHING
		if _, exists := data.repos[repo.RepoName]; !exists {
			data.repos[repo.RepoName] = copyRepository(repo)
		}
	}

	return nil
}

func (r *store) RemoveRepositories(ctx context.Context, installID types.GitHubAppInstallID, repoNames []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	data, exists := r.installations[int64(installID)]
	if !exists {
		return nil // nothing to delete
	}

	for _, name := range repoNames {
		delete(data.repos, name)
	}

	return nil
}

func (r *store) ReplaceRepositories(ctx context.Context, installID types.GitHubAppInstallID, repos []*model.Repository) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	data, exists := r.installations[int64(installID)]
	if !exists {
		return goerr.Wrap(repository.ErrNotFound, "installation not found",
			goerr.V("installID", installID),
		)
	}

	data.repos = make(map[string]*model.Repository, len(repos))
	for _, repo := range repos {
		data.repos[repo.RepoName] = copyRepository(repo)
	}

	return nil
}

func (r *store) ListRepositories(ctx context.Context, installID types.GitHubAppInstallID) ([]*model.Repository, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	data, exists := r.installations[int64(installID)]
	if !exists {
		return nil, nil
	}

	var repos []*model.Repository
	for _, repo := range data.repos {
		repos = append(repos, copyRepository(repo))
	}
	sort.Slice(repos, func(i, j int) bool { return repos[i].RepoName < repos[j].RepoName })

	return repos, nil
}

// Connection state operations

func (r *store) CreateConnectionState(ctx context.Context, state *model.ConnectionState) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.states[string(state.Token)]; exists {
		return goerr.Wrap(repository.ErrInvalidInput, "state token already exists")
	}

	r.states[string(state.Token)] = copyConnectionState(state)
	return nil
}

func (r *store) ConsumeConnectionState(ctx context.Context, token types.StateToken) (*model.ConnectionState, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	state, exists := r.states[string(token)]
	if !exists {
		return nil, goerr.Wrap(repository.ErrNotFound, "connection state not found")
	}

	delete(r.states, string(token))
	return copyConnectionState(state), nil
}

// Helper functions for deep copy

func copyInstallation(inst *model.Installation) *model.Installation {
	if inst == nil {
		return nil
	}
	cpy := *inst
	return &cpy
}

func copyRepository(repo *model.Repository) *model.Repository {
	if repo == nil {
		return nil
	}
	cpy := *repo
	return &cpy
}

func copyConnectionState(state *model.ConnectionState) *model.ConnectionState {
	if state == nil {
		return nil
	}
	cpy := *state
	return &cpy
}
