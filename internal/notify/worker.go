package notify

import (
	"context"
	"log/slog"

	"github.com/stinex/backend/internal/events"
	"github.com/stinex/backend/internal/metrics"
)

// Worker consumes contact.submitted events and notifies about each.
type Worker struct {
	sub      events.Subscriber
	notifier Notifier
}

// NewWorker creates a Worker.
func NewWorker(sub events.Subscriber, notifier Notifier) *Worker {
	return &Worker{sub: sub, notifier: notifier}
}

// Run blocks until ctx is cancelled or the subscription ends. Notification
// failures are counted and logged, never returned.
func (w *Worker) Run(ctx context.Context) error {
	ch, err := w.sub.Subscribe(ctx)
	if err != nil {
		return err
	}
	slog.Info("notification worker started", "smtp_enabled", w.notifier.Enabled())
	for ev := range ch {
		w.handle(ctx, ev)
	}
	slog.Info("notification worker stopped")
	return nil
}

func (w *Worker) handle(ctx context.Context, ev events.ContactSubmitted) {
	sent := w.notifier.NotifyContact(ctx, ev.Contact)
	switch {
	case sent:
		metrics.ContactNotifications.WithLabelValues(metrics.ResultSent).Inc()
	case !w.notifier.Enabled():
		metrics.ContactNotifications.WithLabelValues(metrics.ResultSkipped).Inc()
	default:
		metrics.ContactNotifications.WithLabelValues(metrics.ResultFailed).Inc()
		slog.WarnContext(ctx, "contact notification failed", "contact_id", ev.Contact.ID)
	}
}
