package service

import (
	"context"
	"fmt"
	"time"

	"github.com/stinex/backend/internal/model"
	"github.com/stinex/backend/internal/repository"
	"github.com/stinex/backend/internal/validation"
)

// TestimonialService はお客様の声（レビュー）のビジネスロジック
type TestimonialService interface {
	List(ctx context.Context, opts model.TestimonialListOptions) ([]model.Testimonial, error)
	Get(ctx context.Context, id string) (*model.Testimonial, error)
	Create(ctx context.Context, in model.TestimonialCreate) (*model.Testimonial, error)
	Update(ctx context.Context, id string, patch model.TestimonialPatch) (*model.Testimonial, error)
	Approve(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
	SetClock(now func() time.Time, newID func() string)
}

// TestimonialServiceImpl は TestimonialService の実装
type TestimonialServiceImpl struct {
	repo     repository.Collection[model.Testimonial]
	validate *validation.Validator
	clock    clock
}

// NewTestimonialService は TestimonialServiceImpl を生成する
func NewTestimonialService(repo repository.Collection[model.Testimonial]) TestimonialService {
	return &TestimonialServiceImpl{
		repo:     repo,
		validate: validation.New(),
		clock:    defaultClock(),
	}
}

func (s *TestimonialServiceImpl) SetClock(now func() time.Time, newID func() string) {
	s.clock = clock{now: now, newID: newID}
}

// List は新しい順に返す。ApprovedOnly のときは承認済みのみ。
func (s *TestimonialServiceImpl) List(ctx context.Context, opts model.TestimonialListOptions) ([]model.Testimonial, error) {
	q := repository.Query{Sort: repository.Sort{Field: "created_at", Desc: true}}
	if opts.ApprovedOnly {
		q.Filter = repository.Filter{"approved": true}
	}
	list, err := s.repo.FindMany(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list testimonials: %w", err)
	}
	return list, nil
}

func (s *TestimonialServiceImpl) Get(ctx context.Context, id string) (*model.Testimonial, error) {
	t, err := s.repo.FindOne(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get testimonial %s: %w", id, err)
	}
	return &t, nil
}

// Create は未承認（approved=false）で保存する
func (s *TestimonialServiceImpl) Create(ctx context.Context, in model.TestimonialCreate) (*model.Testimonial, error) {
	ctx = detach(ctx)
	if err := s.validate.Struct(in); err != nil {
		return nil, err
	}
	now := s.clock.now()
	t := model.Testimonial{
		ID:        s.clock.newID(),
		Name:      in.Name,
		Company:   in.Company,
		Text:      in.Text,
		Rating:    in.Rating,
		Approved:  false,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Insert(ctx, t); err != nil {
		return nil, fmt.Errorf("insert testimonial: %w", err)
	}
	return &t, nil
}

func (s *TestimonialServiceImpl) Update(ctx context.Context, id string, patch model.TestimonialPatch) (*model.Testimonial, error) {
	ctx = detach(ctx)
	fields := patch.Fields()
	if len(fields) == 0 {
		return nil, ErrNoFieldsProvided
	}
	if err := s.validate.Patch(patch); err != nil {
		return nil, err
	}
	return updateAndReload(ctx, s.repo, "testimonial", id, fields)
}

// Approve は冪等。承認済みでも updated_at は更新される。
func (s *TestimonialServiceImpl) Approve(ctx context.Context, id string) error {
	ctx = detach(ctx)
	if err := s.repo.Update(ctx, id, repository.Fields{"approved": true}); err != nil {
		return fmt.Errorf("approve testimonial %s: %w", id, err)
	}
	return nil
}

func (s *TestimonialServiceImpl) Delete(ctx context.Context, id string) error {
	ctx = detach(ctx)
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete testimonial %s: %w", id, err)
	}
	return nil
}
