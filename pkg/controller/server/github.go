package server

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/google/go-github/v53/github"
	"github.com/runsynapse/ghsync/pkg/domain/interfaces"
	"github.com/runsynapse/ghsync/pkg/domain/model"
	"github.com/runsynapse/ghsync/pkg/domain/types"
	"github.com/runsynapse/ghsync/pkg/utils/errutil"
	"github.com/runsynapse/ghsync/pkg/utils/logging"
)

// handleGitHubWebhook verifies and dispatches a GitHub App webhook
// delivery. Signature failures return 401 and malformed payloads 400 so
// GitHub does not redeliver them; reconciliation failures return 500 so
// it does. Handlers are idempotent, so redelivered events are safe.
func handleGitHubWebhook(uc interfaces.UseCase, cfg *config, w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	payload, err := github.ValidatePayload(r, []byte(cfg.ghSecret))
	if err != nil {
		errutil.HandleError(ctx, "fail to validate webhook signature", err)
		safeWrite(w, http.StatusUnauthorized, []byte("invalid signature"))
		return
	}

	event, err := github.ParseWebHook(github.WebHookType(r), payload)
	if err != nil {
		errutil.HandleError(ctx, "fail to parse webhook payload", err)
		safeWrite(w, http.StatusBadRequest, []byte("invalid payload"))
		return
	}

	switch ev := event.(type) {
	case *github.PingEvent:
		logging.From(ctx).Info("received ping event", slog.String("zen", ev.GetZen()))

	case *github.PushEvent:
		logging.From(ctx).Info("received push event",
			slog.String("ref", ev.GetRef()),
			slog.String("repo", ev.GetRepo().GetFullName()),
			slog.String("pusher", ev.GetPusher().GetName()),
		)

	case *github.InstallationEvent:
		if err := uc.HandleInstallationEvent(ctx, ev); err != nil {
			errutil.HandleError(ctx, "fail to handle installation event", err)
			safeWrite(w, http.StatusInternalServerError, []byte("reconciliation failed"))
			return
		}

	case *github.InstallationRepositoriesEvent:
		if err := uc.HandleInstallationRepositoriesEvent(ctx, ev); err != nil {
			errutil.HandleError(ctx, "fail to handle installation_repositories event", err)
			safeWrite(w, http.StatusInternalServerError, []byte("reconciliation failed"))
			return
		}

	default:
		logging.From(ctx).Info("ignoring event", slog.String("type", fmt.Sprintf("%T", event)))
	}

	safeWrite(w, http.StatusOK, []byte("ok"))
}

// handleSetupStart begins the installation flow: it issues a one-time state
// token for the user and forwards the browser to GitHub's installation page
// with the token attached, so the callback can attribute the installation.
func handleSetupStart(uc interfaces.UseCase, cfg *config, w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID := types.UserID(r.URL.Query().Get("user_id"))
	if userID == "" {
		safeWrite(w, http.StatusBadRequest, []byte("user_id is required"))
		return
	}

	token, err := uc.IssueConnectionState(ctx, userID)
	if err != nil {
		errutil.HandleError(ctx, "fail to issue connection state", err)
		safeWrite(w, http.StatusInternalServerError, []byte("failed to start setup"))
		return
	}

	dst := "https://github.com/apps/" + url.PathEscape(cfg.appSlug) +
		"/installations/new?state=" + url.QueryEscape(string(token))
	http.Redirect(w, r, dst, http.StatusFound)
}

// handleSetupCallback finishes the installation flow after GitHub
// redirects the user back. The outcome is reported to the frontend via a
// query parameter on the settings page rather than an HTTP error, since
// the requester is a browser.
func handleSetupCallback(uc interfaces.UseCase, cfg *config, w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := r.URL.Query()

	installID, _ := strconv.ParseInt(q.Get("installation_id"), 10, 64)
	input := &model.CompleteSetupInput{
		InstallID:   types.GitHubAppInstallID(installID),
		SetupAction: q.Get("setup_action"),
		State:       types.StateToken(q.Get("state")),
	}

	if err := uc.CompleteSetup(ctx, input); err != nil {
		result := "error"
		if errors.Is(err, types.ErrValidationFailed) {
			result = "cancelled"
		}
		errutil.HandleError(ctx, "fail to complete installation setup", err)
		redirectToSettings(w, r, cfg, result)
		return
	}

	redirectToSettings(w, r, cfg, "connected")
}

func redirectToSettings(w http.ResponseWriter, r *http.Request, cfg *config, result string) {
	dst := cfg.appURL + "/settings?github=" + url.QueryEscape(result)
	http.Redirect(w, r, dst, http.StatusFound)
}
