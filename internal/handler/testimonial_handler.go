package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/stinex/backend/internal/model"
	"github.com/stinex/backend/internal/service"
)

const testimonialNotFound = "Bewertung nicht gefunden."

// TestimonialHandler はお客様の声の API ハンドラ
type TestimonialHandler struct {
	testimonials service.TestimonialService
}

// NewTestimonialHandler は TestimonialHandler を生成する
func NewTestimonialHandler(testimonials service.TestimonialService) *TestimonialHandler {
	return &TestimonialHandler{testimonials: testimonials}
}

// List は GET /api/testimonials?approved_only= を処理する
func (h *TestimonialHandler) List(w http.ResponseWriter, r *http.Request) {
	msgs := errMessages{failure: "Fehler beim Laden der Kundenbewertungen."}

	approvedOnly, err := boolQuery(r, "approved_only", true)
	if err != nil {
		respondError(w, r, err, msgs)
		return
	}
	list, err := h.testimonials.List(r.Context(), model.TestimonialListOptions{ApprovedOnly: approvedOnly})
	if err != nil {
		respondError(w, r, err, msgs)
		return
	}
	if list == nil {
		list = []model.Testimonial{}
	}
	respondJSON(w, r, http.StatusOK, list)
}

// Get は GET /api/testimonials/{id} を処理する
func (h *TestimonialHandler) Get(w http.ResponseWriter, r *http.Request) {
	t, err := h.testimonials.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, r, err, errMessages{notFound: testimonialNotFound, failure: "Fehler beim Laden der Bewertung."})
		return
	}
	respondJSON(w, r, http.StatusOK, t)
}

// Create は POST /api/testimonials を処理する。承認前のため一覧には出ない。
func (h *TestimonialHandler) Create(w http.ResponseWriter, r *http.Request) {
	msgs := errMessages{failure: "Fehler beim Erstellen der Bewertung."}

	var req model.TestimonialCreate
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err, msgs)
		return
	}
	t, err := h.testimonials.Create(r.Context(), req)
	if err != nil {
		respondError(w, r, err, msgs)
		return
	}
	respondJSON(w, r, http.StatusCreated, t)
}

// Update は PUT /api/testimonials/{id} を処理する（管理者）
func (h *TestimonialHandler) Update(w http.ResponseWriter, r *http.Request) {
	msgs := errMessages{notFound: testimonialNotFound, failure: "Fehler beim Aktualisieren der Bewertung."}

	var patch model.TestimonialPatch
	if err := decodeJSON(r, &patch); err != nil {
		respondError(w, r, err, msgs)
		return
	}
	t, err := h.testimonials.Update(r.Context(), chi.URLParam(r, "id"), patch)
	if err != nil {
		respondError(w, r, err, msgs)
		return
	}
	respondJSON(w, r, http.StatusOK, t)
}

// Approve は PUT /api/testimonials/{id}/approve を処理する（管理者）
func (h *TestimonialHandler) Approve(w http.ResponseWriter, r *http.Request) {
	if err := h.testimonials.Approve(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondError(w, r, err, errMessages{notFound: testimonialNotFound, failure: "Fehler beim Genehmigen der Bewertung."})
		return
	}
	respondJSON(w, r, http.StatusOK, actionResponse{Success: true, Message: "Bewertung erfolgreich genehmigt."})
}

// Delete は DELETE /api/testimonials/{id} を処理する（管理者）
func (h *TestimonialHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.testimonials.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondError(w, r, err, errMessages{notFound: testimonialNotFound, failure: "Fehler beim Löschen der Bewertung."})
		return
	}
	respondJSON(w, r, http.StatusOK, actionResponse{Success: true, Message: "Bewertung erfolgreich gelöscht."})
}
