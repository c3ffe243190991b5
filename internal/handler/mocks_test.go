package handler

import (
	"context"
	"time"

	"github.com/stinex/backend/internal/model"
)

// ---------------------------------------------------------------------------
// Mock services use func fields; nil means "succeed with zero value"
// ---------------------------------------------------------------------------

type mockDB struct {
	pingFunc func(ctx context.Context) error
}

func (m *mockDB) Ping(ctx context.Context) error {
	if m.pingFunc != nil {
		return m.pingFunc(ctx)
	}
	return nil
}

type mockContactService struct {
	submitFunc       func(ctx context.Context, in model.ContactCreate) (*model.Contact, error)
	listFunc         func(ctx context.Context, opts model.ContactListOptions) ([]model.Contact, error)
	updateStatusFunc func(ctx context.Context, id string, in model.ContactStatusUpdate) (*model.Contact, error)
}

func (m *mockContactService) Submit(ctx context.Context, in model.ContactCreate) (*model.Contact, error) {
	if m.submitFunc != nil {
		return m.submitFunc(ctx, in)
	}
	return &model.Contact{ID: "c1", Status: model.ContactStatusNew}, nil
}

func (m *mockContactService) List(ctx context.Context, opts model.ContactListOptions) ([]model.Contact, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, opts)
	}
	return nil, nil
}

func (m *mockContactService) UpdateStatus(ctx context.Context, id string, in model.ContactStatusUpdate) (*model.Contact, error) {
	if m.updateStatusFunc != nil {
		return m.updateStatusFunc(ctx, id, in)
	}
	return &model.Contact{ID: id, Status: in.Status}, nil
}

func (m *mockContactService) SetClock(func() time.Time, func() string) {}

type mockCatalogService struct {
	listFunc   func(ctx context.Context, opts model.ServiceListOptions) ([]model.Service, error)
	getFunc    func(ctx context.Context, id string) (*model.Service, error)
	createFunc func(ctx context.Context, in model.ServiceCreate) (*model.Service, error)
	updateFunc func(ctx context.Context, id string, patch model.ServicePatch) (*model.Service, error)
	deleteFunc func(ctx context.Context, id string) error
}

func (m *mockCatalogService) List(ctx context.Context, opts model.ServiceListOptions) ([]model.Service, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, opts)
	}
	return nil, nil
}

func (m *mockCatalogService) Get(ctx context.Context, id string) (*model.Service, error) {
	if m.getFunc != nil {
		return m.getFunc(ctx, id)
	}
	return &model.Service{ID: id}, nil
}

func (m *mockCatalogService) Create(ctx context.Context, in model.ServiceCreate) (*model.Service, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, in)
	}
	return &model.Service{ID: "s1", Title: in.Title}, nil
}

func (m *mockCatalogService) Update(ctx context.Context, id string, patch model.ServicePatch) (*model.Service, error) {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, id, patch)
	}
	return &model.Service{ID: id}, nil
}

func (m *mockCatalogService) Delete(ctx context.Context, id string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return nil
}

func (m *mockCatalogService) SetClock(func() time.Time, func() string) {}

type mockTestimonialService struct {
	listFunc    func(ctx context.Context, opts model.TestimonialListOptions) ([]model.Testimonial, error)
	getFunc     func(ctx context.Context, id string) (*model.Testimonial, error)
	createFunc  func(ctx context.Context, in model.TestimonialCreate) (*model.Testimonial, error)
	updateFunc  func(ctx context.Context, id string, patch model.TestimonialPatch) (*model.Testimonial, error)
	approveFunc func(ctx context.Context, id string) error
	deleteFunc  func(ctx context.Context, id string) error
}

func (m *mockTestimonialService) List(ctx context.Context, opts model.TestimonialListOptions) ([]model.Testimonial, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, opts)
	}
	return nil, nil
}

func (m *mockTestimonialService) Get(ctx context.Context, id string) (*model.Testimonial, error) {
	if m.getFunc != nil {
		return m.getFunc(ctx, id)
	}
	return &model.Testimonial{ID: id}, nil
}

func (m *mockTestimonialService) Create(ctx context.Context, in model.TestimonialCreate) (*model.Testimonial, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, in)
	}
	return &model.Testimonial{ID: "t1", Name: in.Name}, nil
}

func (m *mockTestimonialService) Update(ctx context.Context, id string, patch model.TestimonialPatch) (*model.Testimonial, error) {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, id, patch)
	}
	return &model.Testimonial{ID: id}, nil
}

func (m *mockTestimonialService) Approve(ctx context.Context, id string) error {
	if m.approveFunc != nil {
		return m.approveFunc(ctx, id)
	}
	return nil
}

func (m *mockTestimonialService) Delete(ctx context.Context, id string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return nil
}

func (m *mockTestimonialService) SetClock(func() time.Time, func() string) {}
