package auth

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/docvault/docvault/internal"
	"github.com/docvault/docvault/internal/core"
	"github.com/docvault/docvault/internal/transport"
)

type Handler struct {
	*transport.BaseHandler
	service *Service
}

func NewHandler(service *Service, logger *slog.Logger) *Handler {
	return &Handler{
		BaseHandler: transport.NewBaseHandler(logger),
		service:     service,
	}
}

// Login exchanges credentials for a session token.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var dto SessionDto
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	token, err := h.service.Authenticate(dto)
	if err != nil {
		var vErr ValidationError
		switch {
		case errors.As(err, &vErr):
			h.WriteError(w, http.StatusBadRequest, vErr.Msg)
		case errors.Is(err, ErrInvalidCredentials):
			h.WriteError(w, http.StatusUnauthorized, ErrInvalidCredentials.Error())
		default:
			h.WriteError(w, http.StatusInternalServerError, core.GenericErrorMessage)
		}
		return
	}

	h.WriteJSON(w, http.StatusOK, token)
}

// Middleware verifies the bearer token and places the acting principal in
// the request context. Requests without a valid token are rejected before
// they reach any service.
func (h *Handler) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenString := h.ExtractTokenFromHeader(r)
		if tokenString == "" {
			h.WriteError(w, http.StatusUnauthorized, "missing bearer token")
			return
		}

		claims, err := h.service.ValidateToken(tokenString)
		if err != nil {
			h.WriteError(w, http.StatusUnauthorized, "invalid or expired token")
			return
		}
		userID, err := uuid.Parse(claims.UserID)
		if err != nil {
			h.WriteError(w, http.StatusUnauthorized, "invalid or expired token")
			return
		}

		principal := core.Principal{ID: userID, Role: claims.Role}
		next.ServeHTTP(w, r.WithContext(internal.ContextWithPrincipal(r.Context(), principal)))
	})
}
