package notify

import (
	"context"
	"log/slog"

	"github.com/oakhost/oakhost_backend/internal/core/domain"
	"github.com/oakhost/oakhost_backend/internal/utils"
)

// PosthogNotifier implements the Notifier port by capturing audit events with
// PostHog and mirroring them to the structured log. Both sinks are best-effort.
type PosthogNotifier struct {
	client *utils.PosthogClientWrapper
	logger *slog.Logger
}

func NewPosthogNotifier(client *utils.PosthogClientWrapper, logger *slog.Logger) *PosthogNotifier {
	return &PosthogNotifier{client: client, logger: logger}
}

// Publish records one domain event. It never returns a non-nil error today;
// the error return keeps the port honest for future transports.
func (n *PosthogNotifier) Publish(_ context.Context, event domain.Event) error {
	n.logger.Info("Audit event",
		slog.String("event", event.Name),
		slog.String("subject_id", event.SubjectID),
		slog.Time("occurred_at", event.OccurredAt),
		slog.Any("properties", event.Properties),
	)
	n.client.Enqueue(event.SubjectID, event.Name, event.Properties)
	return nil
}
