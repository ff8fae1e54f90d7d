package group

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

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var item GroupDto
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

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid group id")
		return
	}
	res := h.service.ReadById(Request{
		Principal: internal.PrincipalFromContext(r.Context()),
		Id:        &id,
	})
	h.WriteJSON(w, transport.StatusFor(res.Outcome, http.StatusOK), res)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid group id")
		return
	}
	var item GroupDto
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	item.Id = &id
	res := h.service.UpdateById(Request{
		Principal: internal.PrincipalFromContext(r.Context()),
		Item:      &item,
	})
	h.WriteJSON(w, transport.StatusFor(res.Outcome, http.StatusOK), res)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid group id")
		return
	}
	res := h.service.DeleteById(Request{
		Principal: internal.PrincipalFromContext(r.Context()),
		Id:        &id,
	})
	h.WriteJSON(w, transport.StatusFor(res.Outcome, http.StatusOK), res)
}
