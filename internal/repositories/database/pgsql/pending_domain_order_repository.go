package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/oakhost/oakhost_backend/internal/apperrors"
	"github.com/oakhost/oakhost_backend/internal/core/domain"
	"github.com/oakhost/oakhost_backend/internal/models"
	"github.com/oakhost/oakhost_backend/internal/utils/mapping"
)

// PgxPendingDomainOrderRepository implements the PendingDomainOrderRepositoryFacade
// port using pgxpool.
type PgxPendingDomainOrderRepository struct {
	BaseRepository
}

func newPgxPendingDomainOrderRepository(db *pgxpool.Pool) *PgxPendingDomainOrderRepository {
	return &PgxPendingDomainOrderRepository{
		BaseRepository: BaseRepository{Pool: db},
	}
}

const pendingDomainOrderColumns = `
	pending_order_id, user_id, domain_name, years, total_estimate, currency_code,
	hosting_package_ref, status, admin_notes, created_at, created_by, last_updated_at, last_updated_by`

// SavePendingDomainOrder inserts a new manual-review order row.
func (r *PgxPendingDomainOrderRepository) SavePendingDomainOrder(ctx context.Context, order domain.PendingDomainOrder) error {
	modelOrder := mapping.ToModelPendingDomainOrder(order)

	_, err := r.Pool.Exec(ctx, `
		INSERT INTO pending_domain_orders (
			pending_order_id, user_id, domain_name, years, total_estimate, currency_code,
			hosting_package_ref, status, admin_notes, created_at, created_by, last_updated_at, last_updated_by
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		modelOrder.PendingOrderID, modelOrder.UserID, modelOrder.DomainName, modelOrder.Years,
		modelOrder.TotalEstimate, modelOrder.CurrencyCode, modelOrder.HostingPackageRef,
		modelOrder.Status, modelOrder.AdminNotes, modelOrder.CreatedAt, modelOrder.CreatedBy,
		modelOrder.LastUpdatedAt, modelOrder.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to save pending domain order", err)
	}
	return nil
}

// FindPendingDomainOrderByID retrieves a manual-review order by its ID.
func (r *PgxPendingDomainOrderRepository) FindPendingDomainOrderByID(ctx context.Context, pendingOrderID string) (*domain.PendingDomainOrder, error) {
	query := `SELECT ` + pendingDomainOrderColumns + ` FROM pending_domain_orders WHERE pending_order_id = $1;`

	modelOrder, err := r.scanRow(r.Pool.QueryRow(ctx, query, pendingOrderID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("pending domain order not found")
		}
		return nil, apperrors.NewAppError(500, "failed to find pending domain order", err)
	}

	domainOrder := mapping.ToDomainPendingDomainOrder(*modelOrder)
	return &domainOrder, nil
}

// ListPendingDomainOrders lists manual-review orders with optional status
// filter. Count and page are read inside one transaction so the total matches
// the rows returned.
func (r *PgxPendingDomainOrderRepository) ListPendingDomainOrders(ctx context.Context, status *domain.PendingDomainOrderStatus, page, pageSize int) ([]domain.PendingDomainOrder, int, error) {
	baseQuery := `FROM pending_domain_orders WHERE 1=1`
	args := []interface{}{}
	argNum := 1

	if status != nil {
		baseQuery += fmt.Sprintf(" AND status = $%d", argNum)
		args = append(args, string(*status))
		argNum++
	}

	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, 0, err
	}
	defer r.Rollback(ctx, tx)

	var total int
	if err := tx.QueryRow(ctx, "SELECT COUNT(*) "+baseQuery, args...).Scan(&total); err != nil {
		return nil, 0, apperrors.NewAppError(500, "failed to count pending domain orders", err)
	}
	if total == 0 {
		return []domain.PendingDomainOrder{}, 0, nil
	}

	baseQuery += " ORDER BY created_at DESC"
	if pageSize > 0 {
		if page < 1 {
			page = 1
		}
		offset := (page - 1) * pageSize
		baseQuery += fmt.Sprintf(" LIMIT $%d OFFSET $%d", argNum, argNum+1)
		args = append(args, pageSize, offset)
	}

	rows, err := tx.Query(ctx, "SELECT "+pendingDomainOrderColumns+" "+baseQuery, args...)
	if err != nil {
		return nil, 0, apperrors.NewAppError(500, "failed to list pending domain orders", err)
	}
	defer rows.Close()

	var orders []domain.PendingDomainOrder
	for rows.Next() {
		modelOrder, err := r.scanRow(rows)
		if err != nil {
			return nil, 0, apperrors.NewAppError(500, "failed to scan pending domain order", err)
		}
		orders = append(orders, mapping.ToDomainPendingDomainOrder(*modelOrder))
	}
	if err := rows.Err(); err != nil {
		return nil, 0, apperrors.NewAppError(500, "error iterating pending domain orders", err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

// UpdatePendingDomainOrderStatus performs the compare-and-set from -> to
// transition, appending the reviewer's notes.
func (r *PgxPendingDomainOrderRepository) UpdatePendingDomainOrderStatus(ctx context.Context, pendingOrderID string, from, to domain.PendingDomainOrderStatus, adminNotes string, updatedBy string) (bool, error) {
	tag, err := r.Pool.Exec(ctx, `
		UPDATE pending_domain_orders
		SET status = $1, admin_notes = $2, last_updated_at = $3, last_updated_by = $4
		WHERE pending_order_id = $5 AND status = $6`,
		string(to), adminNotes, time.Now(), updatedBy, pendingOrderID, string(from),
	)
	if err != nil {
		return false, apperrors.NewAppError(500, "failed to update pending domain order status", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *PgxPendingDomainOrderRepository) scanRow(row pgx.Row) (*models.PendingDomainOrder, error) {
	var m models.PendingDomainOrder
	err := row.Scan(
		&m.PendingOrderID, &m.UserID, &m.DomainName, &m.Years, &m.TotalEstimate,
		&m.CurrencyCode, &m.HostingPackageRef, &m.Status, &m.AdminNotes,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}
