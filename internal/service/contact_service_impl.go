package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/stinex/backend/internal/events"
	"github.com/stinex/backend/internal/metrics"
	"github.com/stinex/backend/internal/model"
	"github.com/stinex/backend/internal/repository"
	"github.com/stinex/backend/internal/validation"
)

// contactServiceImpl is the production implementation of ContactService.
type contactServiceImpl struct {
	repo      repository.Collection[model.Contact]
	publisher events.Publisher
	validate  *validation.Validator
	clock     clock
}

// NewContactService creates a ContactService backed by the given collection.
// publisher may be nil, in which case no events are emitted.
func NewContactService(repo repository.Collection[model.Contact], publisher events.Publisher) ContactService {
	return &contactServiceImpl{
		repo:      repo,
		publisher: publisher,
		validate:  validation.New(),
		clock:     defaultClock(),
	}
}

func (s *contactServiceImpl) SetClock(now func() time.Time, newID func() string) {
	s.clock = clock{now: now, newID: newID}
}

// Submit stores a new contact request. A failed publish is logged and does
// not fail the submission.
func (s *contactServiceImpl) Submit(ctx context.Context, in model.ContactCreate) (*model.Contact, error) {
	ctx = detach(ctx)
	if err := s.validate.Struct(in); err != nil {
		return nil, err
	}

	now := s.clock.now()
	c := model.Contact{
		ID:        s.clock.newID(),
		Name:      in.Name,
		Email:     in.Email,
		Phone:     in.Phone,
		Service:   in.Service,
		Message:   in.Message,
		Status:    model.ContactStatusNew,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Insert(ctx, c); err != nil {
		return nil, fmt.Errorf("insert contact: %w", err)
	}
	metrics.ContactsSubmitted.Inc()

	if s.publisher != nil {
		ev := events.ContactSubmitted{Contact: c, SubmittedAt: now}
		if err := s.publisher.Publish(ctx, ev); err != nil {
			slog.WarnContext(ctx, "contact event not published", "contact_id", c.ID, "error", err)
		}
	}
	return &c, nil
}

func (s *contactServiceImpl) List(ctx context.Context, opts model.ContactListOptions) ([]model.Contact, error) {
	if err := s.validate.Struct(opts); err != nil {
		return nil, err
	}
	q := repository.Query{Sort: repository.Sort{Field: "created_at"}}
	if opts.Status != "" {
		q.Filter = repository.Filter{"status": opts.Status}
	}
	contacts, err := s.repo.FindMany(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list contacts: %w", err)
	}
	return contacts, nil
}

func (s *contactServiceImpl) UpdateStatus(ctx context.Context, id string, in model.ContactStatusUpdate) (*model.Contact, error) {
	ctx = detach(ctx)
	if err := s.validate.Struct(in); err != nil {
		return nil, err
	}
	return updateAndReload(ctx, s.repo, "contact", id, repository.Fields{"status": in.Status})
}
