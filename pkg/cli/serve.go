package cli

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gots/slice"
	"github.com/runsynapse/ghsync/pkg/cli/config"
	"github.com/runsynapse/ghsync/pkg/controller/server"
	"github.com/runsynapse/ghsync/pkg/infra"
	"github.com/runsynapse/ghsync/pkg/repository/postgres"
	"github.com/runsynapse/ghsync/pkg/usecase"
	"github.com/runsynapse/ghsync/pkg/utils/logging"
	"github.com/runsynapse/ghsync/pkg/utils/safe"

	"github.com/urfave/cli/v3"
)

func serveCommand() *cli.Command {
	var (
		addr    string
		appURL  string
		appSlug string

		githubApp config.GitHubApp
		database  config.Database
		sentry    config.Sentry
	)
	serveFlags := []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "Binding address",
			Value:       "127.0.0.1:8000",
			Sources:     cli.EnvVars("GHSYNC_ADDR"),
			Destination: &addr,
		},
		&cli.StringFlag{
			Name:        "app-url",
			Usage:       "Frontend base URL for setup callback redirects",
			Value:       "http://localhost:3000",
			Sources:     cli.EnvVars("GHSYNC_APP_URL"),
			Destination: &appURL,
		},
		&cli.StringFlag{
			Name:        "github-app-slug",
			Usage:       "GitHub App slug for installation URLs",
			Sources:     cli.EnvVars("GHSYNC_GITHUB_APP_SLUG"),
			Destination: &appSlug,
			Required:    true,
		},
	}

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Server mode",
		Flags: slice.Flatten(
			serveFlags,
			githubApp.Flags(),
			database.Flags(),
			sentry.Flags(),
		),
		Action: func(ctx context.Context, c *cli.Command) error {
			logging.Default().Info("starting serve",
				slog.Any("Addr", addr),
				slog.Any("AppURL", appURL),
				slog.Any("GitHubApp", githubApp),
				slog.Any("Database", database),
				slog.Any("Sentry", sentry),
			)

			if err := sentry.Configure(ctx); err != nil {
				return err
			}

			ghApp, err := githubApp.New()
			if err != nil {
				return err
			}

			store, err := postgres.New(ctx, database.DSN())
			if err != nil {
				return err
			}
			defer safe.Close(store)

			clients := infra.New(
				infra.WithGitHubApp(ghApp),
				infra.WithStore(store),
			)

			uc := usecase.New(clients)
			s := server.New(uc,
				server.WithGitHubSecret(githubApp.Secret()),
				server.WithAppURL(appURL),
				server.WithAppSlug(appSlug),
			)

			serverErr := make(chan error, 1)
			httpServer := &http.Server{
				Addr:    addr,
				Handler: s.Mux(),

				ReadHeaderTimeout: 10 * time.Second,
				ReadTimeout:       30 * time.Second,
				WriteTimeout:      30 * time.Second,
			}

			go func() {
				logging.Default().Info("starting http server", "addr", addr)
				if err := httpServer.ListenAndServe(); err != http.ErrServerClosed {
					serverErr <- goerr.Wrap(err, "failed to listen and serve")
				}
			}()

			quit := make(chan os.Signal, 1)
			signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

			select {
			case err := <-serverErr:
				return err

			case sig := <-quit:
				logging.Default().Info("shutting down server", "signal", sig)

				ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
				defer cancel()

				if err := httpServer.Shutdown(ctx); err != nil {
					return goerr.Wrap(err, "failed to shutdown server")
				}
			}

			return nil
		},
	}
}
