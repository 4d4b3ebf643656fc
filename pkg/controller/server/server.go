package server

import (
	"net/http"

	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/m-mizutani/repohost/pkg/domain/interfaces"
	"github.com/m-mizutani/repohost/pkg/domain/types"
	"github.com/m-mizutani/repohost/pkg/utils/logging"
)

const defaultMaxBodySize = 32 << 20

type Server struct {
	mux *chi.Mux
}

func safeWrite(w http.ResponseWriter, code int, body []byte) {
	w.WriteHeader(code)

	// nosemgrep: go.lang.security.audit.xss.no-direct-write-to-responsewriter.no-direct-write-to-responsewriter
	// Why: Content-Type is always set by the caller and is never text/html
	if _, err := w.Write(body); err != nil {
		logging.Default().Error("fail to write response", slog.Any("error", err))
	}
}

type config struct {
	webhookSecret types.WebhookSecret
	maxBodySize   int64
}

type Option func(*config)

// WithWebhookSecret sets the Svix signing secret of the identity provider webhook
func WithWebhookSecret(secret types.WebhookSecret) Option {
	return func(cfg *config) {
		cfg.webhookSecret = secret
	}
}

// WithMaxBodySize limits request bodies in bytes
func WithMaxBodySize(size int64) Option {
	return func(cfg *config) {
		if size > 0 {
			cfg.maxBodySize = size
		}
	}
}

func New(uc interfaces.UseCase, options ...Option) *Server {
	cfg := &config{
		maxBodySize: defaultMaxBodySize,
	}
	for _, opt := range options {
		opt(cfg)
	}

	h := &handler{uc: uc, cfg: cfg}

	r := chi.NewRouter()
	r.Use(preProcess)
	r.Use(withIdentity)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		safeWrite(w, http.StatusOK, []byte("ok"))
	})
	r.Route("/webhook", func(r chi.Router) {
		r.Post("/identity", h.identityWebhook)
	})

	r.Route("/repositories", func(r chi.Router) {
		r.With(requireIdentity).Post("/", h.createRepository)
		r.With(requireIdentity).Get("/", h.listOwnRepositories)

		// Anonymous callers may read public repositories
		r.Route("/{owner}/{repo}", func(r chi.Router) {
			r.Get("/", h.getRepository)
			r.Get("/commits", h.listCommits)
			r.With(requireIdentity).Post("/commits", h.submitCommit)
			r.Get("/commits/{hash}", h.getCommit)
			r.Get("/commits/{hash}/diff", h.getCommitDiff)
			r.Get("/commits/{hash}/files/*", h.getFile)
		})
	})
	r.Get("/users/{owner}/repositories", h.listRepositories)
	r.With(requireIdentity).Put("/user/display-name", h.updateDisplayName)

	return &Server{
		mux: r,
	}
}

func (x *Server) Mux() *chi.Mux {
	return x.mux
}

type handler struct {
	uc  interfaces.UseCase
	cfg *config
}
