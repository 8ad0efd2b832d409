package services

import (
	"log/slog"
	"time"

	"github.com/oakhost/oakhost_backend/internal/core/domain"
	portsgw "github.com/oakhost/oakhost_backend/internal/core/ports/gateways"
	portsrepo "github.com/oakhost/oakhost_backend/internal/core/ports/repositories"
	portssvc "github.com/oakhost/oakhost_backend/internal/core/ports/services"
	"github.com/oakhost/oakhost_backend/internal/platform/config"
)

// NewServiceContainer wires the application services with their repositories
// and gateways and returns them behind the port facades.
func NewServiceContainer(
	cfg *config.Config,
	repos *portsrepo.RepositoryProvider,
	registrar portsgw.RegistrarGateway,
	payments portsgw.PaymentGateway,
	provisioner portsgw.Provisioner,
	notifier portsgw.Notifier,
	logger *slog.Logger,
) *portssvc.ServiceContainer {
	dispatcher := NewEventDispatcher(notifier, logger)

	fallbackRate := domain.ExchangeRate{
		FromCurrencyCode: "USD",
		ToCurrencyCode:   cfg.SettlementCurrency,
		Rate:             cfg.DefaultUSDRate,
		Margin:           cfg.DefaultRateMargin,
		FetchedAt:        time.Now(),
	}
	rates := NewRatesService(repos.ExchangeRateRepo, repos.TldPricingRepo, fallbackRate)

	quote := NewQuoteService(rates, registrar, cfg.SettlementCurrency, cfg.IDProtectionPriceUSD, cfg.QuoteMaxAge)

	checkout := NewCheckoutService(
		repos.OrderRepo, repos.InvoiceRepo, quote, payments, dispatcher,
		cfg.HostingPlans, cfg.SettlementCurrency,
		cfg.CheckoutSuccessURL, cfg.CheckoutCancelURL, logger,
	)

	provisioning := NewProvisioningService(repos.OrderRepo, provisioner, dispatcher, logger)

	reconciliation := NewReconciliationService(
		repos.OrderRepo, repos.InvoiceRepo, payments, provisioning, dispatcher,
		cfg.VerifyMaxAttempts, cfg.VerifyBaseDelay, logger,
	)

	pendingDomainOrders := NewPendingDomainOrderService(repos.PendingDomainOrderRepo, quote, dispatcher, logger)

	return &portssvc.ServiceContainer{
		Rates:              rates,
		Quote:              quote,
		Checkout:           checkout,
		Reconciliation:     reconciliation,
		Provisioning:       provisioning,
		PendingDomainOrder: pendingDomainOrders,
	}
}
