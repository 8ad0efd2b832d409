package pgsql

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/oakhost/oakhost_backend/internal/apperrors"
	"github.com/oakhost/oakhost_backend/internal/core/domain"
	"github.com/oakhost/oakhost_backend/internal/models"
	"github.com/oakhost/oakhost_backend/internal/utils/mapping"
)

// PgxTldPricingRepository implements the TldPricingReader port using pgxpool.
// Rows are bulk-imported from the registrar price sync; read-only here.
type PgxTldPricingRepository struct {
	BaseRepository
}

func newPgxTldPricingRepository(db *pgxpool.Pool) *PgxTldPricingRepository {
	return &PgxTldPricingRepository{
		BaseRepository: BaseRepository{Pool: db},
	}
}

// FindTldPricing retrieves the price table row for a TLD.
func (r *PgxTldPricingRepository) FindTldPricing(ctx context.Context, tld string) (*domain.TldPriceEntry, error) {
	tld = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(tld), "."))

	query := `
		SELECT
			tld, category, registration_price_by_term, renewal_price, transfer_price,
			currency_code, source, updated_at
		FROM domain_tld_pricing
		WHERE tld = $1;
	`

	var modelEntry models.TldPricing
	var pricesJSON []byte
	err := r.Pool.QueryRow(ctx, query, tld).Scan(
		&modelEntry.Tld, &modelEntry.Category, &pricesJSON, &modelEntry.RenewalPrice,
		&modelEntry.TransferPrice, &modelEntry.CurrencyCode, &modelEntry.Source, &modelEntry.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("no pricing found for tld " + tld)
		}
		return nil, apperrors.NewAppError(500, "failed to find tld pricing", err)
	}

	if err := json.Unmarshal(pricesJSON, &modelEntry.RegistrationPriceByTerm); err != nil {
		return nil, apperrors.NewAppError(500, "failed to decode registration prices for tld "+tld, err)
	}

	domainEntry := mapping.ToDomainTldPricing(modelEntry)
	return &domainEntry, nil
}
