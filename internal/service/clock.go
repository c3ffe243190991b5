package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/stinex/backend/internal/repository"
)

// clock supplies timestamps and ids to the services. Tests replace it with
// SetClock. Timestamps are kept to the millisecond, the precision MongoDB
// stores.
type clock struct {
	now   func() time.Time
	newID func() string
}

func defaultClock() clock {
	return clock{
		now:   func() time.Time { return time.Now().UTC().Truncate(time.Millisecond) },
		newID: uuid.NewString,
	}
}

// detach drops the caller's cancellation but keeps its values (request id).
// A write that has started runs to completion even if the client goes away.
func detach(ctx context.Context) context.Context {
	return context.WithoutCancel(ctx)
}

// updateAndReload applies fields to id and returns the refreshed document.
func updateAndReload[T repository.Document](ctx context.Context, repo repository.Collection[T], kind, id string, fields repository.Fields) (*T, error) {
	if err := repo.Update(ctx, id, fields); err != nil {
		return nil, fmt.Errorf("update %s %s: %w", kind, id, err)
	}
	doc, err := repo.FindOne(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("reload %s %s: %w", kind, id, err)
	}
	return &doc, nil
}
