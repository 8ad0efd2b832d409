package repositories

import (
	"context"
	"time"

	"github.com/oakhost/oakhost_backend/internal/core/domain"
)

// InvoiceReader defines read operations for invoice data
type InvoiceReader interface {
	// FindInvoiceByOrderID retrieves the invoice settling a given order.
	FindInvoiceByOrderID(ctx context.Context, orderID string) (*domain.Invoice, error)
}

// InvoiceWriter defines write operations for invoice data
type InvoiceWriter interface {
	// SaveInvoice persists a new invoice in status pending.
	SaveInvoice(ctx context.Context, invoice domain.Invoice) error

	// MarkInvoicePaidIfPending transitions pending -> paid. Returns true when
	// this call performed the transition; re-marking a paid invoice is a no-op.
	MarkInvoicePaidIfPending(ctx context.Context, invoiceID string, paidAt time.Time, updatedBy string) (bool, error)
}

// InvoiceRepositoryFacade combines all invoice-related repository interfaces
type InvoiceRepositoryFacade interface {
	InvoiceReader
	InvoiceWriter
}
