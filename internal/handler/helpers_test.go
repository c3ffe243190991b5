package handler

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// newTestRouter mounts the given services behind the real router with no
// admin gate and no rate limit.
func newTestRouter(contacts *mockContactService, catalog *mockCatalogService, testimonials *mockTestimonialService) http.Handler {
	if contacts == nil {
		contacts = &mockContactService{}
	}
	if catalog == nil {
		catalog = &mockCatalogService{}
	}
	if testimonials == nil {
		testimonials = &mockTestimonialService{}
	}
	return NewRouter(Routes{
		Handler:      New(&mockDB{}, "*"),
		Contacts:     NewContactHandler(contacts),
		Services:     NewServiceHandler(catalog),
		Testimonials: NewTestimonialHandler(testimonials),
	})
}

func doRequest(h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), "body: %s", rec.Body.String())
	return v
}
