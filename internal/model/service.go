package model

import "time"

// ServiceCategory groups cleaning services on the website.
type ServiceCategory string

const (
	ServiceCategoryCommercial  ServiceCategory = "commercial"
	ServiceCategoryResidential ServiceCategory = "residential"
	ServiceCategoryIndustrial  ServiceCategory = "industrial"
)

// Service is a cleaning service offered on the website.
type Service struct {
	ID          string          `json:"id" bson:"id" yaml:"-"`
	Title       string          `json:"title" bson:"title" yaml:"title"`
	Description string          `json:"description" bson:"description" yaml:"description"`
	Pricing     string          `json:"pricing" bson:"pricing" yaml:"pricing"`
	Features    []string        `json:"features" bson:"features" yaml:"features"`
	Category    ServiceCategory `json:"category" bson:"category" yaml:"category"`
	Active      bool            `json:"active" bson:"active" yaml:"active"`
	CreatedAt   time.Time       `json:"created_at" bson:"created_at" yaml:"-"`
	UpdatedAt   time.Time       `json:"updated_at" bson:"updated_at" yaml:"-"`
}

func (s Service) DocumentID() string { return s.ID }

// ServiceCreate is the body for POST /api/services.
// Pricing must be present but may be empty; Active defaults to true.
type ServiceCreate struct {
	Title       string          `json:"title" validate:"required,max=100"`
	Description string          `json:"description" validate:"required,max=500"`
	Pricing     *string         `json:"pricing" validate:"required,max=50"`
	Features    []string        `json:"features" validate:"required,min=1"`
	Category    ServiceCategory `json:"category" validate:"required,oneof=commercial residential industrial"`
	Active      *bool           `json:"active"`
}

// ServicePatch is the body for PUT /api/services/{id}. Only present fields
// are applied.
type ServicePatch struct {
	Title       Optional[string]          `json:"title" validate:"min=1,max=100"`
	Description Optional[string]          `json:"description" validate:"min=1,max=500"`
	Pricing     Optional[string]          `json:"pricing" validate:"max=50"`
	Features    Optional[[]string]        `json:"features" validate:"min=1"`
	Category    Optional[ServiceCategory] `json:"category" validate:"oneof=commercial residential industrial"`
	Active      Optional[bool]            `json:"active"`
}

// Fields returns the present patch entries keyed by document field name.
func (p ServicePatch) Fields() map[string]any {
	return presentFields(p)
}

// ServiceListOptions filters the service listing.
type ServiceListOptions struct {
	ActiveOnly bool
}
