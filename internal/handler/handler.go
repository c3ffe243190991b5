package handler

import (
	"net/http"
	"time"

	"github.com/stinex/backend/internal/repository"
)

// APIVersion is reported by the root endpoint.
const APIVersion = "1.0.0"

type Handler struct {
	db          repository.DB
	frontendURL string
	now         func() time.Time
}

func New(db repository.DB, frontendURL string) *Handler {
	return &Handler{db: db, frontendURL: frontendURL, now: time.Now}
}

func (h *Handler) CORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", h.frontendURL)
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Admin-Key, X-Request-Id")
		// Browsers reject credentials with a wildcard origin.
		if h.frontendURL != "*" {
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Add("Vary", "Origin")
		}

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// NotFound answers unknown routes with the failure envelope.
func NotFound(w http.ResponseWriter, r *http.Request) {
	respondFail(w, r, http.StatusNotFound, kindNotFound, "Ressource nicht gefunden.", "")
}

// MethodNotAllowed answers known paths requested with the wrong method.
func MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	respondFail(w, r, http.StatusMethodNotAllowed, "method_not_allowed", "Methode nicht erlaubt.", "")
}
