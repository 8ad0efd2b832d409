package gateways

import (
	"context"

	"github.com/oakhost/oakhost_backend/internal/core/domain"
)

// RegistrarGateway is the adapter over the external domain-registrar API.
// Implementations must surface three outcomes distinctly: domain taken
// (Available=false), domain available (Available=true), and API error or
// unparseable payload (apperrors.ErrRegistrarUnavailable). The caller decides
// the fallback: quote paths may assume available, purchase paths fail closed.
type RegistrarGateway interface {
	CheckAvailability(ctx context.Context, sld, tld string) (*domain.DomainAvailability, error)
}
