package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/stinex/backend/internal/metrics"
)

// Routes bundles the handlers and route-level middleware mounted by NewRouter.
type Routes struct {
	Handler      *Handler
	Contacts     *ContactHandler
	Services     *ServiceHandler
	Testimonials *TestimonialHandler

	// AdminGate guards admin routes.
	AdminGate func(http.Handler) http.Handler
	// RateLimit guards the public write routes.
	RateLimit func(http.Handler) http.Handler
}

func passThrough(next http.Handler) http.Handler { return next }

// NewRouter builds the API router.
func NewRouter(rt Routes) http.Handler {
	admin := rt.AdminGate
	if admin == nil {
		admin = passThrough
	}
	limit := rt.RateLimit
	if limit == nil {
		limit = passThrough
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(RequestLogger)
	r.Use(middleware.Recoverer)
	r.Use(metrics.Middleware)
	r.Use(SecurityHeaders)
	r.Use(rt.Handler.CORS)
	r.NotFound(NotFound)
	r.MethodNotAllowed(MethodNotAllowed)

	r.Handle("/metrics", metrics.Exposer())

	r.Route("/api", func(r chi.Router) {
		r.Get("/", rt.Handler.Root)
		r.Get("/health", rt.Handler.Health)

		r.Route("/contact", func(r chi.Router) {
			r.With(limit).Post("/", rt.Contacts.Submit)
			r.With(admin).Get("/", rt.Contacts.List)
			r.With(admin).Put("/{id}/status", rt.Contacts.UpdateStatus)
		})

		r.Route("/services", func(r chi.Router) {
			r.Get("/", rt.Services.List)
			r.Get("/{id}", rt.Services.Get)
			r.Group(func(r chi.Router) {
				r.Use(admin)
				r.Post("/", rt.Services.Create)
				r.Put("/{id}", rt.Services.Update)
				r.Delete("/{id}", rt.Services.Delete)
			})
		})

		r.Route("/testimonials", func(r chi.Router) {
			r.Get("/", rt.Testimonials.List)
			r.Get("/{id}", rt.Testimonials.Get)
			r.With(limit).Post("/", rt.Testimonials.Create)
			r.Group(func(r chi.Router) {
				r.Use(admin)
				r.Put("/{id}", rt.Testimonials.Update)
				r.Put("/{id}/approve", rt.Testimonials.Approve)
				r.Delete("/{id}", rt.Testimonials.Delete)
			})
		})
	})
	return r
}
