package service

import (
	"context"
	"fmt"
	"time"

	"github.com/stinex/backend/internal/model"
	"github.com/stinex/backend/internal/repository"
	"github.com/stinex/backend/internal/validation"
)

// CatalogService manages the cleaning services shown on the website.
type CatalogService interface {
	List(ctx context.Context, opts model.ServiceListOptions) ([]model.Service, error)
	Get(ctx context.Context, id string) (*model.Service, error)
	Create(ctx context.Context, in model.ServiceCreate) (*model.Service, error)
	Update(ctx context.Context, id string, patch model.ServicePatch) (*model.Service, error)
	Delete(ctx context.Context, id string) error
	SetClock(now func() time.Time, newID func() string)
}

// CatalogServiceImpl is the CatalogService implementation.
type CatalogServiceImpl struct {
	repo     repository.Collection[model.Service]
	validate *validation.Validator
	clock    clock
}

// NewCatalogService creates a CatalogService backed by the given collection.
func NewCatalogService(repo repository.Collection[model.Service]) CatalogService {
	return &CatalogServiceImpl{
		repo:     repo,
		validate: validation.New(),
		clock:    defaultClock(),
	}
}

func (s *CatalogServiceImpl) SetClock(now func() time.Time, newID func() string) {
	s.clock = clock{now: now, newID: newID}
}

// List returns services oldest first; inactive ones only when ActiveOnly is false.
func (s *CatalogServiceImpl) List(ctx context.Context, opts model.ServiceListOptions) ([]model.Service, error) {
	q := repository.Query{Sort: repository.Sort{Field: "created_at"}}
	if opts.ActiveOnly {
		q.Filter = repository.Filter{"active": true}
	}
	services, err := s.repo.FindMany(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list services: %w", err)
	}
	return services, nil
}

func (s *CatalogServiceImpl) Get(ctx context.Context, id string) (*model.Service, error) {
	svc, err := s.repo.FindOne(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get service %s: %w", id, err)
	}
	return &svc, nil
}

// Create stores a new service. Active defaults to true.
func (s *CatalogServiceImpl) Create(ctx context.Context, in model.ServiceCreate) (*model.Service, error) {
	ctx = detach(ctx)
	if err := s.validate.Struct(in); err != nil {
		return nil, err
	}
	active := true
	if in.Active != nil {
		active = *in.Active
	}

	now := s.clock.now()
	svc := model.Service{
		ID:          s.clock.newID(),
		Title:       in.Title,
		Description: in.Description,
		Pricing:     *in.Pricing,
		Features:    in.Features,
		Category:    in.Category,
		Active:      active,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.Insert(ctx, svc); err != nil {
		return nil, fmt.Errorf("insert service: %w", err)
	}
	return &svc, nil
}

// Update applies the present fields of patch. An empty patch fails with
// ErrNoFieldsProvided before anything is validated or written.
func (s *CatalogServiceImpl) Update(ctx context.Context, id string, patch model.ServicePatch) (*model.Service, error) {
	ctx = detach(ctx)
	fields := patch.Fields()
	if len(fields) == 0 {
		return nil, ErrNoFieldsProvided
	}
	if err := s.validate.Patch(patch); err != nil {
		return nil, err
	}
	return updateAndReload(ctx, s.repo, "service", id, fields)
}

func (s *CatalogServiceImpl) Delete(ctx context.Context, id string) error {
	ctx = detach(ctx)
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete service %s: %w", id, err)
	}
	return nil
}
