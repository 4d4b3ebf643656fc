package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/m-mizutani/repohost/pkg/domain/types"
	"github.com/m-mizutani/repohost/pkg/utils/errutil"
	"github.com/m-mizutani/repohost/pkg/utils/logging"
)

const (
	codeNotFound           = "not_found"
	codeForbidden          = "forbidden"
	codeConflict           = "conflict"
	codeValidationFailed   = "validation_failed"
	codeUnauthenticated    = "unauthenticated"
	codeTimeout            = "timeout"
	codeUnavailable        = "unavailable"
	codeIntegrityViolation = "integrity_violation"
	codeInternal           = "internal"
)

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		logging.Default().Error("fail to marshal response", slog.Any("error", err))
		w.Header().Set("Content-Type", "application/json")
		safeWrite(w, http.StatusInternalServerError, []byte(`{"error":"internal","message":"fail to marshal response"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	safeWrite(w, code, body)
}

func writeErrorCode(w http.ResponseWriter, status int, code, msg string) {
	writeJSON(w, status, errorResponse{Error: code, Message: msg})
}

// errorStatus maps an error to its HTTP status and error code
func errorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, types.ErrIntegrityViolation):
		return http.StatusInternalServerError, codeIntegrityViolation
	case errors.Is(err, types.ErrNotFound):
		return http.StatusNotFound, codeNotFound
	case errors.Is(err, types.ErrForbidden):
		return http.StatusForbidden, codeForbidden
	case errors.Is(err, types.ErrConflict):
		return http.StatusConflict, codeConflict
	case errors.Is(err, types.ErrValidationFailed):
		return http.StatusBadRequest, codeValidationFailed
	case errors.Is(err, types.ErrUnauthenticated):
		return http.StatusUnauthorized, codeUnauthenticated
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, codeTimeout
	case errors.Is(err, types.ErrUnavailable):
		return http.StatusServiceUnavailable, codeUnavailable
	default:
		return http.StatusInternalServerError, codeInternal
	}
}

// writeError answers with the status of err. Server side failures are reported and their
// details are not exposed.
func writeError(ctx context.Context, w http.ResponseWriter, msg string, err error) {
	status, code := errorStatus(err)

	if status >= http.StatusInternalServerError && status != http.StatusGatewayTimeout {
		errutil.HandleError(ctx, msg, err)
		message := "internal server error"
		switch code {
		case codeIntegrityViolation:
			message = "stored data failed an integrity check"
		case codeUnavailable:
			message = "storage is temporarily unavailable, retry later"
		}
		writeErrorCode(w, status, code, message)
		return
	}

	logging.From(ctx).Info(msg, slog.Int("status", status), slog.Any("error", err))
	writeErrorCode(w, status, code, err.Error())
}
