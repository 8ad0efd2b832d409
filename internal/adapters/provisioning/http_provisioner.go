package provisioning

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/oakhost/oakhost_backend/internal/core/domain"
)

// HTTPProvisioner implements the Provisioner port by posting activation
// requests to the internal provisioning endpoint. When no endpoint is
// configured it logs the request and reports success, which keeps local
// development working without the provisioning stack.
type HTTPProvisioner struct {
	endpoint   string
	httpClient *http.Client
	logger     *slog.Logger
}

func NewHTTPProvisioner(endpoint string, timeout time.Duration, logger *slog.Logger) *HTTPProvisioner {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &HTTPProvisioner{
		endpoint:   endpoint,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

type activationRequest struct {
	Ref  string `json:"ref"`
	Kind string `json:"kind"`
}

// Activate requests the downstream activation for one order line.
func (p *HTTPProvisioner) Activate(ctx context.Context, ref string, kind domain.ProvisioningKind) error {
	if p.endpoint == "" {
		p.logger.Warn("Provisioning endpoint not configured, skipping activation",
			slog.String("ref", ref), slog.String("kind", string(kind)))
		return nil
	}

	body, err := json.Marshal(activationRequest{Ref: ref, Kind: string(kind)})
	if err != nil {
		return fmt.Errorf("failed to encode activation request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build activation request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("activation request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("provisioning endpoint returned status %d", resp.StatusCode)
	}
	return nil
}
