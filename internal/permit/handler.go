package permit

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
	var item PermitDto
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
	req, ok := h.idRequest(r, "id")
	if !ok {
		h.WriteError(w, http.StatusBadRequest, "invalid permit id")
		return
	}
	res := h.service.ReadById(req)
	h.WriteJSON(w, transport.StatusFor(res.Outcome, http.StatusOK), res)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	req, ok := h.idRequest(r, "id")
	if !ok {
		h.WriteError(w, http.StatusBadRequest, "invalid permit id")
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

func (h *Handler) DeleteByDocument(w http.ResponseWriter, r *http.Request) {
	req, ok := h.idRequest(r, "documentId")
	if !ok {
		h.WriteError(w, http.StatusBadRequest, "invalid document id")
		return
	}
	res := h.service.DeleteByDocumentId(req)
	h.WriteJSON(w, transport.StatusFor(res.Outcome, http.StatusOK), res)
}
