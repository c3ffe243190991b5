package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/render"

	"github.com/stinex/backend/internal/repository"
	"github.com/stinex/backend/internal/service"
	"github.com/stinex/backend/internal/validation"
)

// Error kinds in failure envelopes.
const (
	kindValidation       = "validation_error"
	kindNoFields         = "no_fields_provided"
	kindNotFound         = "not_found"
	kindStoreUnavailable = "store_unavailable"
	kindInternal         = "internal_error"
	kindRateLimited      = "rate_limited"
)

const (
	msgNoFields = "Keine Daten zum Aktualisieren bereitgestellt."
	msgInternal = "Ein unerwarteter Fehler ist aufgetreten."
)

// errorResponse is the failure envelope.
type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

// actionResponse acknowledges approve and delete actions.
type actionResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// errMessages are the German texts for one operation.
type errMessages struct {
	notFound string
	failure  string
}

func respondJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	render.Status(r, status)
	render.JSON(w, r, v)
}

func respondFail(w http.ResponseWriter, r *http.Request, status int, kind, message, field string) {
	respondJSON(w, r, status, errorResponse{Error: kind, Message: message, Field: field})
}

// respondError classifies err and writes the matching envelope. Store and
// internal faults are logged in full and answered with msgs.failure only.
func respondError(w http.ResponseWriter, r *http.Request, err error, msgs errMessages) {
	var ve *validation.ValidationError
	switch {
	case errors.As(err, &ve):
		respondFail(w, r, http.StatusBadRequest, kindValidation, ve.Message, ve.Field)
	case errors.Is(err, service.ErrNoFieldsProvided):
		respondFail(w, r, http.StatusBadRequest, kindNoFields, msgNoFields, "")
	case errors.Is(err, repository.ErrNotFound):
		respondFail(w, r, http.StatusNotFound, kindNotFound, msgs.notFound, "")
	case errors.Is(err, repository.ErrStoreUnavailable):
		slog.ErrorContext(r.Context(), "store unavailable", "method", r.Method, "path", r.URL.Path, "error", err)
		respondFail(w, r, http.StatusInternalServerError, kindStoreUnavailable, msgs.failure, "")
	default:
		slog.ErrorContext(r.Context(), "internal error", "method", r.Method, "path", r.URL.Path, "error", err)
		message := msgs.failure
		if message == "" {
			message = msgInternal
		}
		respondFail(w, r, http.StatusInternalServerError, kindInternal, message, "")
	}
}

// decodeJSON reads the request body into dst. Malformed JSON becomes a
// validation error on "body"; a wrong value type names the field.
func decodeJSON(r *http.Request, dst any) error {
	err := render.DecodeJSON(r.Body, dst)
	if err == nil {
		return nil
	}
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		field := typeErr.Field
		if i := strings.LastIndex(field, "."); i >= 0 {
			field = field[i+1:]
		}
		return validation.NewError(field, fmt.Sprintf("Ungültiger Datentyp für das Feld '%s'.", field))
	}
	if errors.Is(err, io.EOF) {
		return validation.NewError("body", "Der Anfragekörper darf nicht leer sein.")
	}
	return validation.NewError("body", "Ungültiges JSON im Anfragekörper.")
}

// boolQuery parses an optional boolean query parameter.
func boolQuery(r *http.Request, name string, def bool) (bool, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, validation.NewError(name, fmt.Sprintf("Ungültiger Wert für '%s'. Erlaubt sind: true, false.", name))
	}
	return v, nil
}
