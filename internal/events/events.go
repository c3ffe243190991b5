// Package events carries domain events from the write path to background
// consumers.
package events

import (
	"context"
	"errors"
	"time"

	"github.com/stinex/backend/internal/model"
)

// Redis stream and consumer group for new contact requests.
const (
	ContactSubmittedStream = "stinex:contact.submitted"
	NotifyGroup            = "stinex-notify"
)

// ErrBusFull is returned by ChannelBus.Publish when the buffer is full.
var ErrBusFull = errors.New("event bus full")

// ContactSubmitted is published after a contact request has been stored.
type ContactSubmitted struct {
	Contact     model.Contact `json:"contact"`
	SubmittedAt time.Time     `json:"submitted_at"`
}

// Publisher publishes events. Implementations must not block the caller
// on a slow consumer.
type Publisher interface {
	Publish(ctx context.Context, ev ContactSubmitted) error
}

// Subscriber delivers events until ctx is cancelled, then closes the
// returned channel.
type Subscriber interface {
	Subscribe(ctx context.Context) (<-chan ContactSubmitted, error)
}

// Bus is both ends of an event transport.
type Bus interface {
	Publisher
	Subscriber
	Close() error
}

// ChannelBus is an in-process Bus over a buffered channel. It supports a
// single subscriber.
type ChannelBus struct {
	ch chan ContactSubmitted
}

// NewChannelBus creates a ChannelBus holding up to size pending events.
func NewChannelBus(size int) *ChannelBus {
	if size <= 0 {
		size = 1
	}
	return &ChannelBus{ch: make(chan ContactSubmitted, size)}
}

var _ Bus = (*ChannelBus)(nil)

// Publish enqueues ev or returns ErrBusFull without blocking. ctx is
// ignored.
func (b *ChannelBus) Publish(_ context.Context, ev ContactSubmitted) error {
	select {
	case b.ch <- ev:
		return nil
	default:
		return ErrBusFull
	}
}

// Subscribe forwards queued events to the returned channel until ctx is done.
func (b *ChannelBus) Subscribe(ctx context.Context) (<-chan ContactSubmitted, error) {
	out := make(chan ContactSubmitted)
	go func() {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				return
			case ev := <-b.ch:
				select {
				case out <- ev:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out, nil
}

// Close is a no-op; pending events are dropped with the bus.
func (b *ChannelBus) Close() error { return nil }
