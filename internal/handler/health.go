package handler

import (
	"log/slog"
	"net/http"
	"time"
)

type rootResponse struct {
	Message string `json:"message"`
	Version string `json:"version"`
	Status  string `json:"status"`
}

type healthResponse struct {
	Status    string `json:"status"`
	Database  string `json:"database"`
	Timestamp string `json:"timestamp"`
}

// Root handles GET /api/.
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, r, http.StatusOK, rootResponse{
		Message: "Stinex API is running!",
		Version: APIVersion,
		Status:  "healthy",
	})
}

// Health handles GET /api/health by pinging the store.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if err := h.db.Ping(r.Context()); err != nil {
		slog.ErrorContext(r.Context(), "health check failed", "error", err)
		respondFail(w, r, http.StatusServiceUnavailable, kindStoreUnavailable, "Datenbankverbindung fehlgeschlagen.", "")
		return
	}
	respondJSON(w, r, http.StatusOK, healthResponse{
		Status:    "healthy",
		Database:  "connected",
		Timestamp: h.now().UTC().Format(time.RFC3339),
	})
}
