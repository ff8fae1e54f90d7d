package transport

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/docvault/docvault/internal/core"
	"github.com/docvault/docvault/pkg/logger"
)

// BaseHandler provides the JSON plumbing shared by all HTTP handlers.
type BaseHandler struct {
	Logger *slog.Logger
}

func NewBaseHandler(lg *slog.Logger) *BaseHandler {
	if lg == nil {
		lg = logger.LoggerWrapper()
	}
	return &BaseHandler{Logger: lg}
}

// StatusFor maps a service outcome to an HTTP status. Success uses the
// operation-specific status (200, 201); Fail is a client problem; Error is
// always a bare 500 since the envelope already hides internal detail.
func StatusFor(outcome core.Outcome, successStatus int) int {
	switch outcome {
	case core.OutcomeSuccess:
		return successStatus
	case core.OutcomeFail:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (h *BaseHandler) WriteJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.Logger.Error("failed to encode JSON response", "error", err)
	}
}

func (h *BaseHandler) WriteError(w http.ResponseWriter, status int, message string) {
	h.Logger.Error("http error", "status", status, "message", message)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	errorResp := map[string]any{
		"code":    status,
		"message": message,
	}
	if err := json.NewEncoder(w).Encode(errorResp); err != nil {
		h.Logger.Error("failed to encode error response", "error", err)
	}
}

// ExtractTokenFromHeader extracts a Bearer token from the Authorization
// header, or returns the empty string.
func (h *BaseHandler) ExtractTokenFromHeader(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if len(authHeader) < 7 || authHeader[:7] != "Bearer " {
		return ""
	}
	return authHeader[7:]
}
