package service

import (
	"context"
	"time"

	"github.com/stinex/backend/internal/model"
)

// ContactService defines the business logic for contact form submissions.
type ContactService interface {
	// Submit validates and stores a new contact request with status "new",
	// then publishes a contact.submitted event.
	Submit(ctx context.Context, in model.ContactCreate) (*model.Contact, error)

	// List returns contact requests oldest first, optionally filtered by status.
	List(ctx context.Context, opts model.ContactListOptions) ([]model.Contact, error)

	// UpdateStatus changes the status of a contact request and returns it.
	UpdateStatus(ctx context.Context, id string, in model.ContactStatusUpdate) (*model.Contact, error)

	// SetClock overrides the time source and id generator.
	SetClock(now func() time.Time, newID func() string)
}
