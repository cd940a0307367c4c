package postgres_test

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/m-mizutani/gt"
	"github.com/runsynapse/ghsync/pkg/domain/model"
	"github.com/runsynapse/ghsync/pkg/domain/types"
	"github.com/runsynapse/ghsync/pkg/repository"
	"github.com/runsynapse/ghsync/pkg/repository/postgres"
	"github.com/runsynapse/ghsync/pkg/repository/testhelper"
	"github.com/runsynapse/ghsync/pkg/utils/testutil"
)

func newMockClient(t *testing.T) (*postgres.Client, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	gt.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return postgres.NewWithDB(sqlx.NewDb(db, "sqlmock")), mock
}

func TestSaveInstallation(t *testing.T) {
	client, mock := newMockClient(t)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO github_installations")).
		WithArgs(int64(42), "u1", sqlmock.AnyArg(), false).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := client.SaveInstallation(context.Background(), &model.Installation{
		InstallID:   42,
		UserID:      "u1",
		InstalledAt: time.Now(),
	})
	gt.NoError(t, err)
	gt.NoError(t, mock.ExpectationsWereMet())
}

func TestGetInstallation(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		client, mock := newMockClient(t)

		rows := sqlmock.NewRows([]string{"installation_id", "user_id", "installed_at", "suspended"}).
			AddRow(int64(42), "u1", time.Now(), true)
		mock.ExpectQuery(regexp.QuoteMeta("SELECT installation_id")).
			WithArgs(int64(42)).
			WillReturnRows(rows)

		inst := gt.R1(client.GetInstallation(context.Background(), 42)).NoError(t)
		gt.V(t, inst.InstallID).Equal(types.GitHubAppInstallID(42))
		gt.V(t, inst.UserID).Equal(types.UserID("u1"))
		gt.V(t, inst.Suspended).Equal(true)
		gt.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found maps to ErrNotFound", func(t *testing.T) {
		client, mock := newMockClient(t)

		mock.ExpectQuery(regexp.QuoteMeta("SELECT installation_id")).
			WithArgs(int64(42)).
			WillReturnError(sql.ErrNoRows)

		_, err := client.GetInstallation(context.Background(), 42)
		gt.True(t, errors.Is(err, repository.ErrNotFound))
		gt.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestDeleteInstallation(t *testing.T) {
	t.Run("deletes repositories and installation in one transaction", func(t *testing.T) {
		client, mock := newMockClient(t)

		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta("DELETE FROM github_repositories WHERE installation_id = $1")).
			WithArgs(int64(42)).
			WillReturnResult(sqlmock.NewResult(0, 2))
		mock.ExpectExec(regexp.QuoteMeta("DELETE FROM github_installations WHERE installation_id = $1")).
			WithArgs(int64(42)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		gt.NoError(t, client.DeleteInstallation(context.Background(), 42))
		gt.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("zero deleted rows is a success", func(t *testing.T) {
		client, mock := newMockClient(t)

		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta("DELETE FROM github_repositories")).
			WithArgs(int64(42)).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec(regexp.QuoteMeta("DELETE FROM github_installations")).
			WithArgs(int64(42)).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectCommit()

		gt.NoError(t, client.DeleteInstallation(context.Background(), 42))
		gt.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestSetInstallationSuspended(t *testing.T) {
	t.Run("updates the flag", func(t *testing.T) {
		client, mock := newMockClient(t)

		mock.ExpectExec(regexp.QuoteMeta("UPDATE github_installations SET suspended = $2")).
			WithArgs(int64(42), true).
			WillReturnResult(sqlmock.NewResult(0, 1))

		gt.NoError(t, client.SetInstallationSuspended(context.Background(), 42, true))
		gt.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing installation matches zero rows and succeeds", func(t *testing.T) {
		client, mock := newMockClient(t)

		mock.ExpectExec(regexp.QuoteMeta("UPDATE github_installations SET suspended = $2")).
			WithArgs(int64(42), false).
			WillReturnResult(sqlmock.NewResult(0, 0))

		gt.NoError(t, client.SetInstallationSuspended(context.Background(), 42, false))
		gt.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestAddRepositories(t *testing.T) {
	t.Run("inserts all records in one transaction", func(t *testing.T) {
		client, mock := newMockClient(t)

		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO github_repositories")).
			WithArgs(int64(42), int64(1), "o/r1", true, "u1", "./Dockerfile").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO github_repositories")).
			WithArgs(int64(42), int64(2), "o/r2", false, "u1", "./Dockerfile").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := client.AddRepositories(context.Background(), []*model.Repository{
			{InstallID: 42, RepoID: 1, RepoName: "o/r1", IsPrivate: true, UserID: "u1", DockerfilePath: "./Dockerfile"},
			{InstallID: 42, RepoID: 2, RepoName: "o/r2", IsPrivate: false, UserID: "u1", DockerfilePath: "./Dockerfile"},
		})
		gt.NoError(t, err)
		gt.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("empty input issues no statements", func(t *testing.T) {
		client, mock := newMockClient(t)

		gt.NoError(t, client.AddRepositories(context.Background(), nil))
		gt.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rolls back on insert failure", func(t *testing.T) {
		client, mock := newMockClient(t)

		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO github_repositories")).
			WithArgs(int64(42), int64(1), "o/r1", true, "u1", "./Dockerfile").
			WillReturnError(errors.New("connection reset"))
		mock.ExpectRollback()

		err := client.AddRepositories(context.Background(), []*model.Repository{
			{InstallID: 42, RepoID: 1, RepoName: "o/r1", IsPrivate: true, UserID: "u1", DockerfilePath: "./Dockerfile"},
		})
		gt.Error(t, err)
		gt.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRemoveRepositories(t *testing.T) {
	t.Run("deletes by installation and name set", func(t *testing.T) {
		client, mock := newMockClient(t)

		mock.ExpectExec(regexp.QuoteMeta("DELETE FROM github_repositories WHERE installation_id = $1 AND repo_name = ANY($2)")).
			WithArgs(int64(42), sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))

		gt.NoError(t, client.RemoveRepositories(context.Background(), 42, []string{"o/r1"}))
		gt.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("empty input issues no statements", func(t *testing.T) {
		client, mock := newMockClient(t)

		gt.NoError(t, client.RemoveRepositories(context.Background(), 42, nil))
		gt.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestConsumeConnectionState(t *testing.T) {
	t.Run("returns and deletes the record", func(t *testing.T) {
		client, mock := newMockClient(t)

		rows := sqlmock.NewRows([]string{"state_token", "user_id", "expires_at"}).
			AddRow("tok", "u1", time.Now().Add(time.Minute))
		mock.ExpectQuery(regexp.QuoteMeta("DELETE FROM github_connection_states")).
			WithArgs("tok").
			WillReturnRows(rows)

		state := gt.R1(client.ConsumeConnectionState(context.Background(), "tok")).NoError(t)
		gt.V(t, state.UserID).Equal(types.UserID("u1"))
		gt.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing token maps to ErrNotFound", func(t *testing.T) {
		client, mock := newMockClient(t)

		mock.ExpectQuery(regexp.QuoteMeta("DELETE FROM github_connection_states")).
			WithArgs("tok").
			WillReturnError(sql.ErrNoRows)

		_, err := client.ConsumeConnectionState(context.Background(), "tok")
		gt.True(t, errors.Is(err, repository.ErrNotFound))
		gt.NoError(t, mock.ExpectationsWereMet())
	})
}

// TestPostgresIntegration runs the shared conformance suite against a real
// database. Set GHSYNC_TEST_DATABASE_DSN to enable.
func TestPostgresIntegration(t *testing.T) {
	dsn := testutil.GetEnvOrSkip(t, "GHSYNC_TEST_DATABASE_DSN")

	client, err := postgres.New(context.Background(), types.DatabaseDSN(dsn))
	gt.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	testhelper.TestAll(t, client)
}
