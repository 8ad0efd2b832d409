package pgsql

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/oakhost/oakhost_backend/internal/apperrors"
	"github.com/oakhost/oakhost_backend/internal/core/domain"
	"github.com/oakhost/oakhost_backend/internal/models"
	"github.com/oakhost/oakhost_backend/internal/utils/mapping"
)

// PgxInvoiceRepository implements the InvoiceRepositoryFacade port using pgxpool.
type PgxInvoiceRepository struct {
	BaseRepository
}

func newPgxInvoiceRepository(db *pgxpool.Pool) *PgxInvoiceRepository {
	return &PgxInvoiceRepository{
		BaseRepository: BaseRepository{Pool: db},
	}
}

const invoiceColumns = `
	invoice_id, customer_id, order_id, invoice_number, amount, currency_code,
	status, stripe_session_id, paid_at, created_at, created_by, last_updated_at, last_updated_by`

// SaveInvoice inserts a new invoice row. A duplicate invoice number maps to
// apperrors.ErrDuplicate.
func (r *PgxInvoiceRepository) SaveInvoice(ctx context.Context, invoice domain.Invoice) error {
	modelInvoice := mapping.ToModelInvoice(invoice)

	_, err := r.Pool.Exec(ctx, `
		INSERT INTO invoices (
			invoice_id, customer_id, order_id, invoice_number, amount, currency_code,
			status, stripe_session_id, paid_at, created_at, created_by, last_updated_at, last_updated_by
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		modelInvoice.InvoiceID, modelInvoice.CustomerID, modelInvoice.OrderID, modelInvoice.InvoiceNumber,
		modelInvoice.Amount, modelInvoice.CurrencyCode, modelInvoice.Status, modelInvoice.StripeSessionID,
		modelInvoice.PaidAt, modelInvoice.CreatedAt, modelInvoice.CreatedBy, modelInvoice.LastUpdatedAt,
		modelInvoice.LastUpdatedBy,
	)
	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return apperrors.NewAppError(409, "invoice number already exists", apperrors.ErrDuplicate)
		}
		return apperrors.NewAppError(500, "failed to save invoice", err)
	}
	return nil
}

// FindInvoiceByOrderID retrieves the invoice settling an order.
func (r *PgxInvoiceRepository) FindInvoiceByOrderID(ctx context.Context, orderID string) (*domain.Invoice, error) {
	return r.findInvoice(ctx, "order_id = $1", orderID)
}

func (r *PgxInvoiceRepository) findInvoice(ctx context.Context, where string, arg any) (*domain.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE ` + where + `;`

	var modelInvoice models.Invoice
	err := r.Pool.QueryRow(ctx, query, arg).Scan(
		&modelInvoice.InvoiceID, &modelInvoice.CustomerID, &modelInvoice.OrderID, &modelInvoice.InvoiceNumber,
		&modelInvoice.Amount, &modelInvoice.CurrencyCode, &modelInvoice.Status, &modelInvoice.StripeSessionID,
		&modelInvoice.PaidAt, &modelInvoice.CreatedAt, &modelInvoice.CreatedBy, &modelInvoice.LastUpdatedAt,
		&modelInvoice.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("invoice not found")
		}
		return nil, apperrors.NewAppError(500, "failed to find invoice", err)
	}

	domainInvoice := mapping.ToDomainInvoice(modelInvoice)
	return &domainInvoice, nil
}

// MarkInvoicePaidIfPending is the compare-and-set pending -> paid transition.
// Returns false without error when the invoice was already settled, so
// re-marking a paid invoice stays a no-op.
func (r *PgxInvoiceRepository) MarkInvoicePaidIfPending(ctx context.Context, invoiceID string, paidAt time.Time, updatedBy string) (bool, error) {
	tag, err := r.Pool.Exec(ctx, `
		UPDATE invoices
		SET status = $1, paid_at = $2, last_updated_at = $3, last_updated_by = $4
		WHERE invoice_id = $5 AND status = $6`,
		string(domain.InvoiceStatusPaid), paidAt, time.Now(), updatedBy,
		invoiceID, string(domain.InvoiceStatusPending),
	)
	if err != nil {
		return false, apperrors.NewAppError(500, "failed to mark invoice paid", err)
	}
	return tag.RowsAffected() > 0, nil
}
