package server

import (
	"fmt"
	"net/http"

	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/runsynapse/ghsync/pkg/domain/interfaces"
	"github.com/runsynapse/ghsync/pkg/domain/types"
	"github.com/runsynapse/ghsync/pkg/utils/logging"
)

type Server struct {
	mux *chi.Mux
}

func safeWrite(w http.ResponseWriter, code int, body []byte) {
	w.WriteHeader(code)

	// nosemgrep: go.lang.security.audit.xss.no-direct-write-to-responsewriter.no-direct-write-to-responsewriter
	// Why: The response data is not from user input
	if _, err := w.Write(body); err != nil {
		logging.Default().Error("fail to write response", slog.Any("error", err))
	}
}

type config struct {
	ghSecret types.GitHubAppSecret
	appURL   string
	appSlug  string
}

type Option func(*config)

func WithGitHubSecret(secret types.GitHubAppSecret) Option {
	return func(cfg *config) {
		cfg.ghSecret = secret
	}
}

// WithAppURL sets the frontend base URL the setup callback redirects to.
func WithAppURL(appURL string) Option {
	return func(cfg *config) {
		cfg.appURL = appURL
	}
}

// WithAppSlug sets the GitHub App slug used to build the installation URL.
func WithAppSlug(appSlug string) Option {
	return func(cfg *config) {
		cfg.appSlug = appSlug
	}
}

func New(uc interfaces.UseCase, options ...Option) *Server {
	cfg := &config{}
	for _, opt := range options {
		opt(cfg)
	}

	r := chi.NewRouter()
	r.Use(preProcess)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		ts := logging.CtxTime(r.Context()).UTC().Format("2006-01-02T15:04:05.000Z")
		body := fmt.Sprintf(`{"status":"healthy","timestamp":"%s"}`, ts)
		w.Header().Set("Content-Type", "application/json")
		safeWrite(w, http.StatusOK, []byte(body))
	})
	r.Post("/webhook", func(w http.ResponseWriter, r *http.Request) {
		handleGitHubWebhook(uc, cfg, w, r)
	})
	r.Get("/setup/start", func(w http.ResponseWriter, r *http.Request) {
		handleSetupStart(uc, cfg, w, r)
	})
	r.Get("/setup/callback", func(w http.ResponseWriter, r *http.Request) {
		handleSetupCallback(uc, cfg, w, r)
	})

	return &Server{
		mux: r,
	}
}

func (x *Server) Mux() *chi.Mux {
	return x.mux
}
