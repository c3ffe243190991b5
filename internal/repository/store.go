package repository

import (
	"context"
	"fmt"

	"github.com/stinex/backend/internal/model"
)

// Store drivers accepted by Open.
const (
	DriverMongo    = "mongo"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// backend owns the connection behind a Store.
type backend interface {
	Ping(ctx context.Context) error
	Migrate(ctx context.Context) error
	Drop(ctx context.Context) error
	Close(ctx context.Context) error
}

// Store groups the three collections over one connection.
type Store struct {
	Contacts     Collection[model.Contact]
	Services     Collection[model.Service]
	Testimonials Collection[model.Testimonial]

	backend backend
}

// Store satisfies the health check's DB interface.
var _ DB = (*Store)(nil)

// Ping checks that the backing store answers.
func (s *Store) Ping(ctx context.Context) error {
	return s.backend.Ping(ctx)
}

// Migrate creates tables and indexes. It is idempotent.
func (s *Store) Migrate(ctx context.Context) error {
	return s.backend.Migrate(ctx)
}

// Reset drops every collection and recreates the schema.
func (s *Store) Reset(ctx context.Context) error {
	if err := s.backend.Drop(ctx); err != nil {
		return err
	}
	return s.backend.Migrate(ctx)
}

// Close releases the connection.
func (s *Store) Close(ctx context.Context) error {
	return s.backend.Close(ctx)
}

type memoryBackend struct {
	contacts     *MemoryCollection[model.Contact]
	services     *MemoryCollection[model.Service]
	testimonials *MemoryCollection[model.Testimonial]
}

func (memoryBackend) Ping(context.Context) error    { return nil }
func (memoryBackend) Migrate(context.Context) error { return nil }
func (memoryBackend) Close(context.Context) error   { return nil }

func (b memoryBackend) Drop(context.Context) error {
	b.contacts.reset()
	b.services.reset()
	b.testimonials.reset()
	return nil
}

// NewMemoryStore returns a Store kept entirely in process memory.
func NewMemoryStore() *Store {
	b := memoryBackend{
		contacts:     NewMemoryCollection[model.Contact](),
		services:     NewMemoryCollection[model.Service](),
		testimonials: NewMemoryCollection[model.Testimonial](),
	}
	return &Store{
		Contacts:     b.contacts,
		Services:     b.services,
		Testimonials: b.testimonials,
		backend:      b,
	}
}

// Options selects and addresses the backing store.
type Options struct {
	Driver      string
	MongoURL    string
	DBName      string
	PostgresURL string
}

// Open connects to the store named by opts.Driver.
func Open(ctx context.Context, opts Options) (*Store, error) {
	switch opts.Driver {
	case DriverMongo:
		return OpenMongo(ctx, opts.MongoURL, opts.DBName)
	case DriverPostgres:
		return OpenPostgres(ctx, opts.PostgresURL)
	case DriverMemory:
		return NewMemoryStore(), nil
	}
	return nil, fmt.Errorf("unknown store driver %q", opts.Driver)
}
