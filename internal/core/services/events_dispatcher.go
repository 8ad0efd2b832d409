package services

import (
	"context"
	"log/slog"

	"github.com/oakhost/oakhost_backend/internal/core/domain"
	portsgw "github.com/oakhost/oakhost_backend/internal/core/ports/gateways"
)

// EventDispatcher drains post-commit domain events to the notifier. Delivery
// is best-effort: a failed publish is logged and never propagated, so event
// plumbing can never roll back or fail the state change that produced it.
type EventDispatcher struct {
	notifier portsgw.Notifier
	logger   *slog.Logger
}

// NewEventDispatcher creates a new EventDispatcher.
func NewEventDispatcher(notifier portsgw.Notifier, logger *slog.Logger) *EventDispatcher {
	return &EventDispatcher{notifier: notifier, logger: logger}
}

// Dispatch publishes the given events in order.
func (d *EventDispatcher) Dispatch(ctx context.Context, events []domain.Event) {
	for _, ev := range events {
		if err := d.notifier.Publish(ctx, ev); err != nil {
			d.logger.Warn("failed to publish event",
				slog.String("event", ev.Name),
				slog.String("subjectID", ev.SubjectID),
				slog.String("error", err.Error()))
		}
	}
}
