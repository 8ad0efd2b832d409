package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DomainQuote is the price for registering a domain for a number of years,
// locked at quote time. It is ephemeral: produced fresh per request and never
// persisted beyond the Order metadata it ends up on.
type DomainQuote struct {
	Domain       string          `json:"domain"` // full name, e.g. "example.co.uk"
	Sld          string          `json:"sld"`
	Tld          string          `json:"tld"`
	Years        int             `json:"years"`
	IDProtection bool            `json:"idProtection"`
	UnitPrice    decimal.Decimal `json:"unitPrice"`  // 1-year registration price
	AddonPrice   decimal.Decimal `json:"addonPrice"` // ID protection total over the term
	TotalPrice   decimal.Decimal `json:"totalPrice"`
	CurrencyCode string          `json:"currencyCode"`
	Available    bool            `json:"available"`
	Premium      bool            `json:"premium"`
	QuotedAt     time.Time       `json:"quotedAt"`
}

// SplitDomainName splits a full domain name into SLD and TLD. Multi-label TLDs
// like "co.uk" are everything after the first dot.
func SplitDomainName(name string) (sld, tld string, err error) {
	name = strings.ToLower(strings.TrimSpace(name))
	idx := strings.Index(name, ".")
	if idx <= 0 || idx == len(name)-1 {
		return "", "", fmt.Errorf("invalid domain name %q", name)
	}
	return name[:idx], name[idx+1:], nil
}
