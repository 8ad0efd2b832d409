package gateways

import (
	"context"

	"github.com/oakhost/oakhost_backend/internal/core/domain"
)

// Notifier is the notification/audit collaborator. Delivery is best-effort:
// callers log a returned error and move on, it never fails the core flow.
type Notifier interface {
	Publish(ctx context.Context, event domain.Event) error
}

// Provisioner performs the downstream activation (registrar registration,
// hosting account creation) requested by the provisioning dispatcher.
type Provisioner interface {
	Activate(ctx context.Context, ref string, kind domain.ProvisioningKind) error
}
