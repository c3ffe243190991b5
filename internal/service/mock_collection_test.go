package service

import (
	"context"
	"fmt"
	"time"

	"github.com/stinex/backend/internal/repository"
)

// ---------------------------------------------------------------------------
// mockCollection is a func-field stub of repository.Collection
// ---------------------------------------------------------------------------

type mockCollection[T repository.Document] struct {
	findManyFunc func(ctx context.Context, q repository.Query) ([]T, error)
	findOneFunc  func(ctx context.Context, id string) (T, error)
	insertFunc   func(ctx context.Context, doc T) error
	updateFunc   func(ctx context.Context, id string, fields repository.Fields) error
	deleteFunc   func(ctx context.Context, id string) error
	calls        int
}

func (m *mockCollection[T]) FindMany(ctx context.Context, q repository.Query) ([]T, error) {
	m.calls++
	if m.findManyFunc != nil {
		return m.findManyFunc(ctx, q)
	}
	return []T{}, nil
}

func (m *mockCollection[T]) FindOne(ctx context.Context, id string) (T, error) {
	m.calls++
	if m.findOneFunc != nil {
		return m.findOneFunc(ctx, id)
	}
	var zero T
	return zero, repository.ErrNotFound
}

func (m *mockCollection[T]) Insert(ctx context.Context, doc T) error {
	m.calls++
	if m.insertFunc != nil {
		return m.insertFunc(ctx, doc)
	}
	return nil
}

func (m *mockCollection[T]) Update(ctx context.Context, id string, fields repository.Fields) error {
	m.calls++
	if m.updateFunc != nil {
		return m.updateFunc(ctx, id, fields)
	}
	return nil
}

func (m *mockCollection[T]) Delete(ctx context.Context, id string) error {
	m.calls++
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return nil
}

func (m *mockCollection[T]) Count(ctx context.Context, filter repository.Filter) (int64, error) {
	m.calls++
	return 0, nil
}

// unavailable mimics a driver fault wrapped by the repository layer.
var unavailable = fmt.Errorf("%w: find: connection refused", repository.ErrStoreUnavailable)

// fixedClock returns a clock that ticks one second per call and numbered ids.
func fixedClock() (func() time.Time, func() string) {
	t := time.Date(2025, 4, 1, 8, 0, 0, 0, time.UTC)
	n := 0
	return func() time.Time {
			t = t.Add(time.Second)
			return t
		}, func() string {
			n++
			return fmt.Sprintf("id-%d", n)
		}
}

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }
