package membership

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/google/uuid"

	"github.com/docvault/docvault/internal"
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

func (h *Handler) idRequest(r *http.Request, param string) (Request, bool) {
	id, err := uuid.Parse(chi.URLParam(r, param))
	if err != nil {
		return Request{}, false
	}
	return Request{
		Principal: internal.PrincipalFromContext(r.Context()),
		Id:        &id,
	}, true
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var item MembershipDto
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	res := h.service.Create(Request{
		Principal: internal.PrincipalFromContext(r.Context()),
		Item:      &item,
	})
	h.WriteJSON(w, transport.StatusFor(res.Outcome, http.StatusCreated), res)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	res := h.service.ReadAll(Request{Principal: internal.PrincipalFromContext(r.Context())})
	h.WriteJSON(w, transport.StatusFor(res.Outcome, http.StatusOK), res)
}

func (h *Handler) ListByGroup(w http.ResponseWriter, r *http.Request) {
	req, ok := h.idRequest(r, "groupId")
	if !ok {
		h.WriteError(w, http.StatusBadRequest, "invalid group id")
		return
	}
	res := h.service.ReadByGroupId(req)
	h.WriteJSON(w, transport.StatusFor(res.Outcome, http.StatusOK), res)
}

func (h *Handler) ListByUser(w http.ResponseWriter, r *http.Request) {
	req, ok := h.idRequest(r, "userId")
	if !ok {
		h.WriteError(w, http.StatusBadRequest, "invalid user id")
		return
	}
	res := h.service.ReadByUserId(req)
	h.WriteJSON(w, transport.StatusFor(res.Outcome, http.StatusOK), res)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	req, ok := h.idRequest(r, "id")
	if !ok {
		h.WriteError(w, http.StatusBadRequest, "invalid membership id")
		return
	}
	res := h.service.DeleteById(req)
	h.WriteJSON(w, transport.StatusFor(res.Outcome, http.StatusOK), res)
}

func (h *Handler) DeleteByGroup(w http.ResponseWriter, r *http.Request) {
	req, ok := h.idRequest(r, "groupId")
	if !ok {
		h.WriteError(w, http.StatusBadRequest, "invalid group id")
		return
	}
	res := h.service.DeleteByGroupId(req)
	h.WriteJSON(w, transport.StatusFor(res.Outcome, http.StatusOK), res)
}

func (h *Handler) DeleteByUser(w http.ResponseWriter, r *http.Request) {
	req, ok := h.idRequest(r, "userId")
	if !ok {
		h.WriteError(w, http.StatusBadRequest, "invalid user id")
		return
	}
	res := h.service.DeleteByUserId(req)
	h.WriteJSON(w, transport.StatusFor(res.Outcome, http.StatusOK), res)
}
