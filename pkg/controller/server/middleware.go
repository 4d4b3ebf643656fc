package server

import (
	"net/http"
	"time"

	"log/slog"

	"github.com/m-mizutani/repohost/pkg/domain/model"
	"github.com/m-mizutani/repohost/pkg/domain/types"
	"github.com/m-mizutani/repohost/pkg/utils/logging"
)

const (
	HeaderRequestID        = "X-Request-ID"
	HeaderIdentityID       = "X-Identity-ID"
	HeaderIdentityUsername = "X-Identity-Username"
)

func preProcess(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		var reqID types.RequestID
		if id, ok := types.ParseRequestID(r.Header.Get(HeaderRequestID)); ok {
			reqID, ctx = logging.CtxWithRequestID(ctx, id)
		} else {
			reqID, ctx = logging.CtxRequestID(ctx)
		}
		logger := logging.Default().With(slog.String("request_id", reqID.String()))
		ctx = logging.With(ctx, logger)

		w.Header().Set(HeaderRequestID, reqID.String())
		lw := &statusCodeLogger{
			ResponseWriter: w,
			statusCode:     http.StatusOK, // Default to 200 if WriteHeader is not called
		}

		requestedAt := time.Now()
		next.ServeHTTP(lw, r.WithContext(ctx))

		logger.Info("http access",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.String("remote_addr", r.RemoteAddr),
			slog.Int("status_code", lw.statusCode),
			slog.Int64("content_length", r.ContentLength),
			slog.String("user_agent", r.UserAgent()),
			slog.String("identity", r.Header.Get(HeaderIdentityID)),
			slog.Duration("elapsed", time.Since(requestedAt)),
		)
	})
}

type statusCodeLogger struct {
	http.ResponseWriter
	statusCode int
}

func (x *statusCodeLogger) WriteHeader(code int) {
	x.statusCode = code
	x.ResponseWriter.WriteHeader(code)
}

// withIdentity reads the caller identity set by the identity-provider gateway. Credentials are
// verified upstream, so the headers are trusted as-is.
func withIdentity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity := model.Identity{
			ID:       types.UserID(r.Header.Get(HeaderIdentityID)),
			Username: types.Username(r.Header.Get(HeaderIdentityUsername)),
		}
		if identity.IsZero() {
			next.ServeHTTP(w, r)
			return
		}

		ctx := withIdentityContext(r.Context(), identity)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func requireIdentity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if identityFrom(r.Context()).IsZero() {
			writeErrorCode(w, http.StatusUnauthorized, codeUnauthenticated, "caller identity is required")
			return
		}
		next.ServeHTTP(w, r)
	})
}
