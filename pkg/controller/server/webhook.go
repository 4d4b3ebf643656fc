package server

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/repohost/pkg/domain/model"
	"github.com/m-mizutani/repohost/pkg/domain/types"
	"github.com/m-mizutani/repohost/pkg/utils/logging"
	svix "github.com/svix/svix-webhooks/go"
)

const syncUserTimeout = 30 * time.Second

var svixHeaders = []string{"svix-id", "svix-timestamp", "svix-signature"}

// identityWebhook verifies the Svix signature of an identity provider event and upserts the
// user it carries
func (h *handler) identityWebhook(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if h.cfg.webhookSecret == "" {
		writeErrorCode(w, http.StatusInternalServerError, codeInternal, "webhook secret is not configured")
		return
	}

	for _, key := range svixHeaders {
		if r.Header.Get(key) == "" {
			writeErrorCode(w, http.StatusBadRequest, codeValidationFailed, "missing webhook signature headers")
			return
		}
	}

	payload, err := io.ReadAll(http.MaxBytesReader(w, r.Body, h.cfg.maxBodySize))
	if err != nil {
		writeError(ctx, w, "fail to read webhook body", goerr.Wrap(types.ErrValidationFailed, "fail to read body", goerr.V("error", err.Error())))
		return
	}

	wh, err := svix.NewWebhook(string(h.cfg.webhookSecret))
	if err != nil {
		writeError(ctx, w, "invalid webhook secret", goerr.Wrap(err, "fail to create webhook verifier"))
		return
	}
	if err := wh.Verify(payload, r.Header); err != nil {
		logging.From(ctx).Warn("webhook signature verification failed", slog.Any("error", err))
		writeErrorCode(w, http.StatusUnauthorized, codeUnauthenticated, "invalid webhook signature")
		return
	}

	var event model.IdentityEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		writeError(ctx, w, "invalid webhook payload", goerr.Wrap(types.ErrValidationFailed, "payload is not an identity event", goerr.V("error", err.Error())))
		return
	}

	logging.From(ctx).Info("Received identity event", slog.String("type", event.Type), slog.String("user_id", event.Data.ID))

	if !event.IsUserSync() {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ignored", "type": event.Type})
		return
	}

	// The upsert is not bound to the sender's connection so a hang-up does not abort it
	syncCtx, cancel := context.WithTimeout(DetachContext(ctx), syncUserTimeout)
	defer cancel()

	user, err := h.uc.SyncUser(syncCtx, &event)
	if err != nil {
		writeError(ctx, w, "fail to sync user", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "success", "userId": user.ID.String()})
}
