package registrar

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/oakhost/oakhost_backend/internal/apperrors"
	"github.com/oakhost/oakhost_backend/internal/core/domain"
	"golang.org/x/oauth2/clientcredentials"
)

// Config holds the registrar API connection settings.
type Config struct {
	BaseURL string
	// OAuth2 client-credentials flow; used when TokenURL is set.
	ClientID     string
	ClientSecret string
	TokenURL     string
	// Legacy API-key auth, sent as query parameters when TokenURL is empty.
	APIUser string
	APIKey  string
	// Timeout bounds every registrar call; these sit on a user-facing path.
	Timeout time.Duration
}

// Client is the HTTP adapter over the external registrar API. It isolates the
// rest of the system from the API's quirks: the only outcomes it produces are
// a definite availability answer or apperrors.ErrRegistrarUnavailable.
type Client struct {
	baseURL    string
	apiUser    string
	apiKey     string
	httpClient *http.Client
}

// NewClient builds a registrar client. When cfg.TokenURL is set the underlying
// http.Client injects OAuth2 client-credentials bearer tokens; otherwise the
// api_user/api_key query parameters authenticate each call.
func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	httpClient := &http.Client{Timeout: timeout}
	if cfg.TokenURL != "" {
		ccCfg := clientcredentials.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			TokenURL:     cfg.TokenURL,
		}
		httpClient = ccCfg.Client(context.Background())
		httpClient.Timeout = timeout
	}

	return &Client{
		baseURL:    cfg.BaseURL,
		apiUser:    cfg.APIUser,
		apiKey:     cfg.APIKey,
		httpClient: httpClient,
	}
}

// checkResponse is the registrar's availability payload.
type checkResponse struct {
	Result  string `json:"result"` // "available" or "taken"
	Premium bool   `json:"premium"`
}

// CheckAvailability asks the registrar whether sld.tld can be registered.
// Any transport error, non-2xx status or unparseable payload is surfaced as
// apperrors.ErrRegistrarUnavailable; the caller owns the fallback policy.
func (c *Client) CheckAvailability(ctx context.Context, sld, tld string) (*domain.DomainAvailability, error) {
	endpoint, err := url.Parse(c.baseURL + "/v1/domains/check")
	if err != nil {
		return nil, fmt.Errorf("%w: invalid registrar base url: %v", apperrors.ErrRegistrarUnavailable, err)
	}

	q := endpoint.Query()
	q.Set("sld", sld)
	q.Set("tld", tld)
	if c.apiUser != "" {
		q.Set("api_user", c.apiUser)
		q.Set("api_key", c.apiKey)
	}
	endpoint.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrRegistrarUnavailable, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrRegistrarUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: registrar returned status %d", apperrors.ErrRegistrarUnavailable, resp.StatusCode)
	}

	var payload checkResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: unparseable registrar payload: %v", apperrors.ErrRegistrarUnavailable, err)
	}

	switch payload.Result {
	case "available":
		return &domain.DomainAvailability{Available: true, Premium: payload.Premium}, nil
	case "taken":
		return &domain.DomainAvailability{Available: false, Premium: payload.Premium}, nil
	default:
		return nil, fmt.Errorf("%w: unknown registrar result %q", apperrors.ErrRegistrarUnavailable, payload.Result)
	}
}
