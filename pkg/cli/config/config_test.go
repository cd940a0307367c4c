package config_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/runsynapse/ghsync/pkg/cli/config"
)

func TestGitHubAppFlags(t *testing.T) {
	appConfig := &config.GitHubApp{}
	flags := appConfig.Flags()

	gt.V(t, len(flags)).Equal(3)

	names := make(map[string]bool)
	for _, flag := range flags {
		names[flag.Names()[0]] = true
	}

	gt.True(t, names["github-app-id"])
	gt.True(t, names["github-app-private-key"])
	gt.True(t, names["github-webhook-secret"])
}

func TestDatabaseFlags(t *testing.T) {
	dbConfig := &config.Database{}
	flags := dbConfig.Flags()

	gt.V(t, len(flags)).Equal(1)
	gt.V(t, flags[0].Names()[0]).Equal("database-dsn")
}

func TestSentryFlags(t *testing.T) {
	sentryConfig := &config.Sentry{}
	flags := sentryConfig.Flags()

	gt.V(t, len(flags)).Equal(2)

	names := make(map[string]bool)
	for _, flag := range flags {
		names[flag.Names()[0]] = true
	}

	gt.True(t, names["sentry-dsn"])
	gt.True(t, names["sentry-env"])
}
