package model

import "time"

// Testimonial is a customer review shown on the website once approved.
type Testimonial struct {
	ID        string    `json:"id" bson:"id" yaml:"-"`
	Name      string    `json:"name" bson:"name" yaml:"name"`
	Company   string    `json:"company" bson:"company" yaml:"company"`
	Text      string    `json:"text" bson:"text" yaml:"text"`
	Rating    int       `json:"rating" bson:"rating" yaml:"rating"`
	Approved  bool      `json:"approved" bson:"approved" yaml:"approved"`
	CreatedAt time.Time `json:"created_at" bson:"created_at" yaml:"-"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at" yaml:"-"`
}

func (t Testimonial) DocumentID() string { return t.ID }

// TestimonialCreate is the body for POST /api/testimonials. Any approved
// flag sent by the client is ignored.
type TestimonialCreate struct {
	Name    string `json:"name" validate:"required,max=100"`
	Company string `json:"company" validate:"required,max=100"`
	Text    string `json:"text" validate:"required,max=1000"`
	Rating  int    `json:"rating" validate:"min=1,max=5"`
}

// TestimonialPatch is the body for PUT /api/testimonials/{id}.
type TestimonialPatch struct {
	Name     Optional[string] `json:"name" validate:"min=1,max=100"`
	Company  Optional[string] `json:"company" validate:"min=1,max=100"`
	Text     Optional[string] `json:"text" validate:"min=1,max=1000"`
	Rating   Optional[int]    `json:"rating" validate:"min=1,max=5"`
	Approved Optional[bool]   `json:"approved"`
}

// Fields returns the present patch entries keyed by document field name.
func (p TestimonialPatch) Fields() map[string]any {
	return presentFields(p)
}

// TestimonialListOptions filters the testimonial listing.
type TestimonialListOptions struct {
	ApprovedOnly bool
}
