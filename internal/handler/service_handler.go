package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/stinex/backend/internal/model"
	"github.com/stinex/backend/internal/service"
)

const serviceNotFound = "Service nicht gefunden."

// ServiceHandler serves the cleaning service catalogue.
type ServiceHandler struct {
	catalog service.CatalogService
}

// NewServiceHandler creates a ServiceHandler.
func NewServiceHandler(catalog service.CatalogService) *ServiceHandler {
	return &ServiceHandler{catalog: catalog}
}

// List handles GET /api/services?active_only=.
func (h *ServiceHandler) List(w http.ResponseWriter, r *http.Request) {
	msgs := errMessages{failure: "Fehler beim Laden der Services."}

	activeOnly, err := boolQuery(r, "active_only", true)
	if err != nil {
		respondError(w, r, err, msgs)
		return
	}
	services, err := h.catalog.List(r.Context(), model.ServiceListOptions{ActiveOnly: activeOnly})
	if err != nil {
		respondError(w, r, err, msgs)
		return
	}
	if services == nil {
		services = []model.Service{}
	}
	respondJSON(w, r, http.StatusOK, services)
}

// Get handles GET /api/services/{id}.
func (h *ServiceHandler) Get(w http.ResponseWriter, r *http.Request) {
	svc, err := h.catalog.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, r, err, errMessages{notFound: serviceNotFound, failure: "Fehler beim Laden des Services."})
		return
	}
	respondJSON(w, r, http.StatusOK, svc)
}

// Create handles POST /api/services (admin).
func (h *ServiceHandler) Create(w http.ResponseWriter, r *http.Request) {
	msgs := errMessages{failure: "Fehler beim Erstellen des Services."}

	var req model.ServiceCreate
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err, msgs)
		return
	}
	svc, err := h.catalog.Create(r.Context(), req)
	if err != nil {
		respondError(w, r, err, msgs)
		return
	}
	respondJSON(w, r, http.StatusCreated, svc)
}

// Update handles PUT /api/services/{id} (admin). Only present fields change.
func (h *ServiceHandler) Update(w http.ResponseWriter, r *http.Request) {
	msgs := errMessages{notFound: serviceNotFound, failure: "Fehler beim Aktualisieren des Services."}

	var patch model.ServicePatch
	if err := decodeJSON(r, &patch); err != nil {
		respondError(w, r, err, msgs)
		return
	}
	svc, err := h.catalog.Update(r.Context(), chi.URLParam(r, "id"), patch)
	if err != nil {
		respondError(w, r, err, msgs)
		return
	}
	respondJSON(w, r, http.StatusOK, svc)
}

// Delete handles DELETE /api/services/{id} (admin).
func (h *ServiceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.catalog.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondError(w, r, err, errMessages{notFound: serviceNotFound, failure: "Fehler beim Löschen des Services."})
		return
	}
	respondJSON(w, r, http.StatusOK, actionResponse{Success: true, Message: "Service erfolgreich gelöscht."})
}
