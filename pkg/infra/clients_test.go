package infra_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/runsynapse/ghsync/pkg/domain/mock"
	"github.com/runsynapse/ghsync/pkg/infra"
	"github.com/runsynapse/ghsync/pkg/repository/memory"
)

func TestNew(t *testing.T) {
	t.Run("create new clients without options", func(t *testing.T) {
		clients := infra.New()
		gt.V(t, clients.GitHubApp()).Equal(nil)
		gt.V(t, clients.Store()).Equal(nil)
	})

	t.Run("WithGitHubApp option sets GitHub App client", func(t *testing.T) {
		mockGH := &mock.GitHubAppMock{}
		clients := infra.New(infra.WithGitHubApp(mockGH))
		gt.V(t, clients.GitHubApp()).Equal(mockGH)
	})

	t.Run("WithStore option sets the store", func(t *testing.T) {
		store := memory.New()
		clients := infra.New(infra.WithStore(store))
		gt.V(t, clients.Store()).Equal(store)
	})

	t.Run("multiple options can be combined", func(t *testing.T) {
		mockGH := &mock.GitHubAppMock{}
		store := memory.New()

		clients := infra.New(
			infra.WithGitHubApp(mockGH),
			infra.WithStore(store),
		)

		gt.V(t, clients.GitHubApp()).Equal(mockGH)
		gt.V(t, clients.Store()).Equal(store)
	})
}
