package model

import "time"

// ContactStatus is the processing state of a contact request.
type ContactStatus string

const (
	ContactStatusNew        ContactStatus = "new"
	ContactStatusInProgress ContactStatus = "in_progress"
	ContactStatusCompleted  ContactStatus = "completed"
)

// Contact represents a message submitted via the contact form.
type Contact struct {
	ID        string        `json:"id" bson:"id"`
	Name      string        `json:"name" bson:"name"`
	Email     string        `json:"email" bson:"email"`
	Phone     *string       `json:"phone" bson:"phone"`
	Service   *string       `json:"service" bson:"service"`
	Message   string        `json:"message" bson:"message"`
	Status    ContactStatus `json:"status" bson:"status"`
	CreatedAt time.Time     `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time     `json:"updated_at" bson:"updated_at"`
}

func (c Contact) DocumentID() string { return c.ID }

// ContactCreate is the expected JSON body for POST /api/contact.
// phone and service are optional.
type ContactCreate struct {
	Name    string  `json:"name" validate:"required,max=100"`
	Email   string  `json:"email" validate:"required,email"`
	Phone   *string `json:"phone" validate:"omitempty,max=20"`
	Service *string `json:"service" validate:"omitempty,max=50"`
	Message string  `json:"message" validate:"required,max=2000"`
}

// ContactStatusUpdate is the body for PUT /api/contact/{id}/status.
type ContactStatusUpdate struct {
	Status ContactStatus `json:"status" validate:"required,oneof=new in_progress completed"`
}

// ContactListOptions carries filter parameters for listing contacts.
// An empty Status returns all contacts.
type ContactListOptions struct {
	Status ContactStatus `json:"status" validate:"omitempty,oneof=new in_progress completed"`
}
