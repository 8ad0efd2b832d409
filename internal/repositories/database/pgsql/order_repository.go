package pgsql

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/oakhost/oakhost_backend/internal/apperrors"
	"github.com/oakhost/oakhost_backend/internal/core/domain"
	"github.com/oakhost/oakhost_backend/internal/models"
	"github.com/oakhost/oakhost_backend/internal/utils/mapping"
)

// PgxOrderRepository implements the OrderRepositoryFacade port using pgxpool.
// Status transitions are conditional UPDATEs keyed on the expected current
// status, so concurrent reconciliation attempts converge without double-firing.
type PgxOrderRepository struct {
	BaseRepository
}

func newPgxOrderRepository(db *pgxpool.Pool) *PgxOrderRepository {
	return &PgxOrderRepository{
		BaseRepository: BaseRepository{Pool: db},
	}
}

const orderColumns = `
	order_id, customer_id, items, total_amount, currency_code, status,
	stripe_session_id, paid_at, created_at, created_by, last_updated_at, last_updated_by`

// SaveOrder inserts a new order row.
func (r *PgxOrderRepository) SaveOrder(ctx context.Context, order domain.Order) error {
	modelOrder := mapping.ToModelOrder(order)

	itemsJSON, err := json.Marshal(modelOrder.Items)
	if err != nil {
		return apperrors.NewAppError(500, "failed to encode order items", err)
	}

	_, err = r.Pool.Exec(ctx, `
		INSERT INTO orders (
			order_id, customer_id, items, total_amount, currency_code, status,
			stripe_session_id, paid_at, created_at, created_by, last_updated_at, last_updated_by
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		modelOrder.OrderID, modelOrder.CustomerID, itemsJSON, modelOrder.TotalAmount,
		modelOrder.CurrencyCode, modelOrder.Status, modelOrder.StripeSessionID, modelOrder.PaidAt,
		modelOrder.CreatedAt, modelOrder.CreatedBy, modelOrder.LastUpdatedAt, modelOrder.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to save order", err)
	}
	return nil
}

// FindOrderByID retrieves an order by its ID.
func (r *PgxOrderRepository) FindOrderByID(ctx context.Context, orderID string) (*domain.Order, error) {
	return r.findOrder(ctx, "order_id = $1", orderID)
}

func (r *PgxOrderRepository) findOrder(ctx context.Context, where string, arg any) (*domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE ` + where + `;`

	var modelOrder models.Order
	var itemsJSON []byte
	err := r.Pool.QueryRow(ctx, query, arg).Scan(
		&modelOrder.OrderID, &modelOrder.CustomerID, &itemsJSON, &modelOrder.TotalAmount,
		&modelOrder.CurrencyCode, &modelOrder.Status, &modelOrder.StripeSessionID, &modelOrder.PaidAt,
		&modelOrder.CreatedAt, &modelOrder.CreatedBy, &modelOrder.LastUpdatedAt, &modelOrder.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("order not found")
		}
		return nil, apperrors.NewAppError(500, "failed to find order", err)
	}

	if err := json.Unmarshal(itemsJSON, &modelOrder.Items); err != nil {
		return nil, apperrors.NewAppError(500, "failed to decode order items", err)
	}

	domainOrder := mapping.ToDomainOrder(modelOrder)
	return &domainOrder, nil
}

// SetOrderSessionID records the provider session on a still-pending order.
func (r *PgxOrderRepository) SetOrderSessionID(ctx context.Context, orderID, sessionID string, updatedBy string) error {
	tag, err := r.Pool.Exec(ctx, `
		UPDATE orders
		SET stripe_session_id = $1, last_updated_at = $2, last_updated_by = $3
		WHERE order_id = $4 AND status = $5`,
		sessionID, time.Now(), updatedBy, orderID, string(domain.OrderStatusPending),
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to set order session id", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("pending order not found")
	}
	return nil
}

// MarkOrderPaidIfPending is the compare-and-set pending -> paid transition.
func (r *PgxOrderRepository) MarkOrderPaidIfPending(ctx context.Context, orderID string, paidAt time.Time, updatedBy string) (bool, error) {
	return r.transition(ctx, orderID,
		domain.OrderStatusPending, domain.OrderStatusPaid, &paidAt, updatedBy)
}

// MarkOrderCancelledIfPending is the compare-and-set pending -> cancelled transition.
func (r *PgxOrderRepository) MarkOrderCancelledIfPending(ctx context.Context, orderID string, updatedBy string) (bool, error) {
	return r.transition(ctx, orderID,
		domain.OrderStatusPending, domain.OrderStatusCancelled, nil, updatedBy)
}

// MarkOrderProvisioningRequestedIfPaid is the compare-and-set paid -> provisioning_requested transition.
func (r *PgxOrderRepository) MarkOrderProvisioningRequestedIfPaid(ctx context.Context, orderID string, updatedBy string) (bool, error) {
	return r.transition(ctx, orderID,
		domain.OrderStatusPaid, domain.OrderStatusProvisioningRequested, nil, updatedBy)
}

func (r *PgxOrderRepository) transition(ctx context.Context, orderID string, from, to domain.OrderStatus, paidAt *time.Time, updatedBy string) (bool, error) {
	now := time.Now()
	var err error
	var affected int64
	if paidAt != nil {
		t, execErr := r.Pool.Exec(ctx, `
			UPDATE orders
			SET status = $1, paid_at = $2, last_updated_at = $3, last_updated_by = $4
			WHERE order_id = $5 AND status = $6`,
			string(to), *paidAt, now, updatedBy, orderID, string(from),
		)
		err = execErr
		affected = t.RowsAffected()
	} else {
		t, execErr := r.Pool.Exec(ctx, `
			UPDATE orders
			SET status = $1, last_updated_at = $2, last_updated_by = $3
			WHERE order_id = $4 AND status = $5`,
			string(to), now, updatedBy, orderID, string(from),
		)
		err = execErr
		affected = t.RowsAffected()
	}
	if err != nil {
		return false, apperrors.NewAppError(500, "failed to transition order status", err)
	}
	return affected > 0, nil
}
