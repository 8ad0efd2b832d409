package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"
	portsrepo "github.com/oakhost/oakhost_backend/internal/core/ports/repositories"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		ExchangeRateRepo:       newPgxExchangeRateRepository(dbPool),
		TldPricingRepo:         newPgxTldPricingRepository(dbPool),
		OrderRepo:              newPgxOrderRepository(dbPool),
		InvoiceRepo:            newPgxInvoiceRepository(dbPool),
		PendingDomainOrderRepo: newPgxPendingDomainOrderRepository(dbPool),
	}
}
