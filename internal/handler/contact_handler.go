package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/stinex/backend/internal/model"
	"github.com/stinex/backend/internal/service"
)

const (
	contactSubmitted         = "Ihre Nachricht wurde erfolgreich gesendet. Wir melden uns binnen 24 Stunden bei Ihnen."
	contactEstimatedResponse = "24 Stunden"
)

// ContactHandler handles contact form submission and admin listing.
type ContactHandler struct {
	contactService service.ContactService
}

// NewContactHandler creates a ContactHandler with the given service.
func NewContactHandler(contactService service.ContactService) *ContactHandler {
	return &ContactHandler{contactService: contactService}
}

// submitResponse is the JSON response for POST /api/contact.
type submitResponse struct {
	Success           bool                `json:"success"`
	Message           string              `json:"message"`
	SubmissionID      string              `json:"submission_id"`
	Status            model.ContactStatus `json:"status"`
	EstimatedResponse string              `json:"estimated_response"`
}

// Submit handles POST /api/contact.
func (h *ContactHandler) Submit(w http.ResponseWriter, r *http.Request) {
	msgs := errMessages{failure: "Fehler beim Senden der Nachricht. Bitte versuchen Sie es später erneut."}

	var req model.ContactCreate
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err, msgs)
		return
	}

	c, err := h.contactService.Submit(r.Context(), req)
	if err != nil {
		respondError(w, r, err, msgs)
		return
	}

	respondJSON(w, r, http.StatusCreated, submitResponse{
		Success:           true,
		Message:           contactSubmitted,
		SubmissionID:      c.ID,
		Status:            c.Status,
		EstimatedResponse: contactEstimatedResponse,
	})
}

// List handles GET /api/contact?status= (admin).
func (h *ContactHandler) List(w http.ResponseWriter, r *http.Request) {
	opts := model.ContactListOptions{Status: model.ContactStatus(r.URL.Query().Get("status"))}

	contacts, err := h.contactService.List(r.Context(), opts)
	if err != nil {
		respondError(w, r, err, errMessages{failure: "Fehler beim Laden der Kontaktanfragen."})
		return
	}
	// Return [] not null for empty lists
	if contacts == nil {
		contacts = []model.Contact{}
	}
	respondJSON(w, r, http.StatusOK, contacts)
}

// UpdateStatus handles PUT /api/contact/{id}/status (admin).
func (h *ContactHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	msgs := errMessages{
		notFound: "Kontaktanfrage nicht gefunden.",
		failure:  "Fehler beim Aktualisieren der Kontaktanfrage.",
	}

	var req model.ContactStatusUpdate
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err, msgs)
		return
	}

	c, err := h.contactService.UpdateStatus(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		respondError(w, r, err, msgs)
		return
	}
	respondJSON(w, r, http.StatusOK, c)
}
