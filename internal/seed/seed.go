// Package seed inserts the initial services and testimonials.
package seed

import (
	"context"
	_ "embed"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/stinex/backend/internal/model"
	"github.com/stinex/backend/internal/repository"
	"github.com/stinex/backend/internal/validation"
)

//go:embed fixtures.yaml
var fixturesYAML []byte

// Fixtures is the content of fixtures.yaml.
type Fixtures struct {
	Services     []model.Service     `yaml:"services"`
	Testimonials []model.Testimonial `yaml:"testimonials"`
}

// Result counts the documents inserted by Run.
type Result struct {
	Services     int
	Testimonials int
}

// Load parses the embedded fixtures and checks them against the create rules.
func Load() (*Fixtures, error) {
	var f Fixtures
	if err := yaml.Unmarshal(fixturesYAML, &f); err != nil {
		return nil, fmt.Errorf("parse fixtures: %w", err)
	}
	v := validation.New()
	for _, s := range f.Services {
		pricing := s.Pricing
		if err := v.Struct(model.ServiceCreate{
			Title: s.Title, Description: s.Description, Pricing: &pricing,
			Features: s.Features, Category: s.Category,
		}); err != nil {
			return nil, fmt.Errorf("fixture service %q: %w", s.Title, err)
		}
	}
	for _, t := range f.Testimonials {
		if err := v.Struct(model.TestimonialCreate{
			Name: t.Name, Company: t.Company, Text: t.Text, Rating: t.Rating,
		}); err != nil {
			return nil, fmt.Errorf("fixture testimonial %q: %w", t.Name, err)
		}
	}
	return &f, nil
}

// Run inserts each fixture set whose collection is still empty. Fixtures get
// fresh ids and creation times one millisecond apart in file order.
func Run(ctx context.Context, store *repository.Store) (Result, error) {
	var res Result
	f, err := Load()
	if err != nil {
		return res, err
	}
	now := time.Now().UTC().Truncate(time.Millisecond)

	n, err := store.Services.Count(ctx, nil)
	if err != nil {
		return res, fmt.Errorf("count services: %w", err)
	}
	if n == 0 {
		for i, s := range f.Services {
			s.ID = uuid.NewString()
			s.CreatedAt = now.Add(time.Duration(i) * time.Millisecond)
			s.UpdatedAt = s.CreatedAt
			if err := store.Services.Insert(ctx, s); err != nil {
				return res, fmt.Errorf("seed service %q: %w", s.Title, err)
			}
			res.Services++
		}
		slog.InfoContext(ctx, "seeded services", "count", res.Services)
	} else {
		slog.InfoContext(ctx, "services already exist, skipping seed", "count", n)
	}

	n, err = store.Testimonials.Count(ctx, nil)
	if err != nil {
		return res, fmt.Errorf("count testimonials: %w", err)
	}
	if n == 0 {
		for i, t := range f.Testimonials {
			t.ID = uuid.NewString()
			t.CreatedAt = now.Add(time.Duration(i) * time.Millisecond)
			t.UpdatedAt = t.CreatedAt
			if err := store.Testimonials.Insert(ctx, t); err != nil {
				return res, fmt.Errorf("seed testimonial %q: %w", t.Name, err)
			}
			res.Testimonials++
		}
		slog.InfoContext(ctx, "seeded testimonials", "count", res.Testimonials)
	} else {
		slog.InfoContext(ctx, "testimonials already exist, skipping seed", "count", n)
	}
	return res, nil
}
