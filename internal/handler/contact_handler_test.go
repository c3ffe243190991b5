package handler

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stinex/backend/internal/model"
	"github.com/stinex/backend/internal/repository"
	"github.com/stinex/backend/internal/validation"
)

// ---------------------------------------------------------------------------
// POST /api/contact tests
// ---------------------------------------------------------------------------

func TestContactHandler_Submit_Success(t *testing.T) {
	var captured model.ContactCreate
	mock := &mockContactService{
		submitFunc: func(ctx context.Context, in model.ContactCreate) (*model.Contact, error) {
			captured = in
			return &model.Contact{ID: "abc-123", Status: model.ContactStatusNew}, nil
		},
	}
	router := newTestRouter(mock, nil, nil)

	rec := doRequest(router, http.MethodPost, "/api/contact",
		`{"name":"Alice","email":"alice@example.de","phone":"0176","message":"Hallo!"}`)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, "Alice", captured.Name)
	require.NotNil(t, captured.Phone)
	assert.Equal(t, "0176", *captured.Phone)
	assert.Nil(t, captured.Service)

	resp := decodeBody[submitResponse](t, rec)
	assert.True(t, resp.Success)
	assert.Equal(t, "abc-123", resp.SubmissionID)
	assert.Equal(t, model.ContactStatusNew, resp.Status)
	assert.Equal(t, "Ihre Nachricht wurde erfolgreich gesendet. Wir melden uns binnen 24 Stunden bei Ihnen.", resp.Message)
	assert.Equal(t, "24 Stunden", resp.EstimatedResponse)
}

func TestContactHandler_Submit_InvalidJSON(t *testing.T) {
	called := false
	mock := &mockContactService{
		submitFunc: func(context.Context, model.ContactCreate) (*model.Contact, error) {
			called = true
			return nil, nil
		},
	}
	rec := doRequest(newTestRouter(mock, nil, nil), http.MethodPost, "/api/contact", `{"name":`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeBody[errorResponse](t, rec)
	assert.False(t, resp.Success)
	assert.Equal(t, "validation_error", resp.Error)
	assert.Equal(t, "body", resp.Field)
	assert.False(t, called)
}

func TestContactHandler_Submit_WrongFieldType(t *testing.T) {
	rec := doRequest(newTestRouter(nil, nil, nil), http.MethodPost, "/api/contact",
		`{"name":"A","email":"a@b.de","message":42}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "message", decodeBody[errorResponse](t, rec).Field)
}

func TestContactHandler_Submit_ValidationError(t *testing.T) {
	mock := &mockContactService{
		submitFunc: func(context.Context, model.ContactCreate) (*model.Contact, error) {
			return nil, validation.NewError("email", "Bitte geben Sie eine gültige E-Mail-Adresse ein.")
		},
	}
	rec := doRequest(newTestRouter(mock, nil, nil), http.MethodPost, "/api/contact",
		`{"name":"A","email":"kaputt","message":"x"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeBody[errorResponse](t, rec)
	assert.Equal(t, "email", resp.Field)
	assert.Equal(t, "Bitte geben Sie eine gültige E-Mail-Adresse ein.", resp.Message)
}

func TestContactHandler_Submit_StoreUnavailable(t *testing.T) {
	mock := &mockContactService{
		submitFunc: func(context.Context, model.ContactCreate) (*model.Contact, error) {
			return nil, fmt.Errorf("insert contact: %w", repository.ErrStoreUnavailable)
		},
	}
	rec := doRequest(newTestRouter(mock, nil, nil), http.MethodPost, "/api/contact",
		`{"name":"A","email":"a@b.de","message":"x"}`)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	resp := decodeBody[errorResponse](t, rec)
	assert.Equal(t, "store_unavailable", resp.Error)
	assert.NotContains(t, resp.Message, "store unavailable", "driver detail must not leak")
}

// ---------------------------------------------------------------------------
// GET /api/contact tests
// ---------------------------------------------------------------------------

func TestContactHandler_List_EmptyReturnsArray(t *testing.T) {
	rec := doRequest(newTestRouter(nil, nil, nil), http.MethodGet, "/api/contact", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestContactHandler_List_PassesStatus(t *testing.T) {
	var got model.ContactListOptions
	mock := &mockContactService{
		listFunc: func(_ context.Context, opts model.ContactListOptions) ([]model.Contact, error) {
			got = opts
			return []model.Contact{{ID: "c1", Status: model.ContactStatusNew}}, nil
		},
	}
	rec := doRequest(newTestRouter(mock, nil, nil), http.MethodGet, "/api/contact?status=new", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, model.ContactStatusNew, got.Status)
	list := decodeBody[[]model.Contact](t, rec)
	require.Len(t, list, 1)
	assert.Equal(t, "c1", list[0].ID)
}

// ---------------------------------------------------------------------------
// PUT /api/contact/{id}/status tests
// ---------------------------------------------------------------------------

func TestContactHandler_UpdateStatus_Success(t *testing.T) {
	var gotID string
	mock := &mockContactService{
		updateStatusFunc: func(_ context.Context, id string, in model.ContactStatusUpdate) (*model.Contact, error) {
			gotID = id
			return &model.Contact{ID: id, Status: in.Status}, nil
		},
	}
	rec := doRequest(newTestRouter(mock, nil, nil), http.MethodPut, "/api/contact/c-9/status", `{"status":"completed"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "c-9", gotID)
	assert.Equal(t, model.ContactStatusCompleted, decodeBody[model.Contact](t, rec).Status)
}

func TestContactHandler_UpdateStatus_NotFound(t *testing.T) {
	mock := &mockContactService{
		updateStatusFunc: func(context.Context, string, model.ContactStatusUpdate) (*model.Contact, error) {
			return nil, fmt.Errorf("update contact x: %w", repository.ErrNotFound)
		},
	}
	rec := doRequest(newTestRouter(mock, nil, nil), http.MethodPut, "/api/contact/x/status", `{"status":"completed"}`)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	resp := decodeBody[errorResponse](t, rec)
	assert.Equal(t, "not_found", resp.Error)
	assert.Equal(t, "Kontaktanfrage nicht gefunden.", resp.Message)
}

func TestContactHandler_NoDeleteRoute(t *testing.T) {
	rec := doRequest(newTestRouter(nil, nil, nil), http.MethodDelete, "/api/contact/c1", "")
	assert.GreaterOrEqual(t, rec.Code, 400)
	assert.Less(t, rec.Code, 500)
}
