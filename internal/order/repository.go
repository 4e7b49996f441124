// AngelaMos | 2026
// repository.go

package order

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/carterperez-dev/ntandostore/internal/core"
)

type Repository interface {
	Create(ctx context.Context, order *Order) error
	GetByID(ctx context.Context, id string) (*Order, error)
	GetByTrackingNumber(ctx context.Context, trackingNumber string) (*Order, error)
	UpdateStatus(ctx context.Context, order *Order) error
	List(ctx context.Context, params ListOrdersParams) ([]Order, int, error)
	Stats(ctx context.Context) (*Stats, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, order *Order) error {
	query := `
		INSERT INTO orders (
			id, service, service_id, customer_name, customer_email,
			customer_phone, details, amount, status, tracking_number,
			payment_status
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING created_at, updated_at`

	err := r.db.GetContext(ctx, order, query,
		order.ID,
		order.Service,
		order.ServiceID,
		order.CustomerName,
		order.CustomerEmail,
		order.CustomerPhone,
		order.Details,
		order.Amount,
		order.Status,
		order.TrackingNumber,
		order.PaymentStatus,
	)
	if err != nil {
		if core.IsUniqueViolation(err) {
			return fmt.Errorf("create order: %w", core.ErrDuplicateKey)
		}
		return fmt.Errorf("create order: %w", err)
	}

	return nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*Order, error) {
	query := `
		SELECT id, service, service_id, customer_name, customer_email,
		       customer_phone, details, amount, status, tracking_number,
		       payment_status, completed_date, created_at, updated_at
		FROM orders
		WHERE id = $1`

	var order Order
	err := r.db.GetContext(ctx, &order, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get order: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get order: %w", err)
	}

	return &order, nil
}

func (r *repository) GetByTrackingNumber(
	ctx context.Context,
	trackingNumber string,
) (*Order, error) {
	query := `
		SELECT id, service, service_id, customer_name, customer_email,
		       customer_phone, details, amount, status, tracking_number,
		       payment_status, completed_date, created_at, updated_at
		FROM orders
		WHERE tracking_number = $1`

	var order Order
	err := r.db.GetContext(ctx, &order, query, trackingNumber)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get order by tracking number: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get order by tracking number: %w", err)
	}

	return &order, nil
}

func (r *repository) UpdateStatus(ctx context.Context, order *Order) error {
	query := `
		UPDATE orders
		SET status = $2, completed_date = $3, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	err := r.db.GetContext(ctx, &order.UpdatedAt, query,
		order.ID,
		order.Status,
		order.CompletedDate,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("update order status: %w", core.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}

	return nil
}

func (r *repository) List(
	ctx context.Context,
	params ListOrdersParams,
) ([]Order, int, error) {
	params.Normalize()

	var conditions []string
	var args []any
	argIdx := 1

	if params.Status != "" {
		conditions = append(conditions, fmt.Sprintf("status = $%d", argIdx))
		args = append(args, params.Status)
		argIdx++
	}

	whereClause := "TRUE"
	if len(conditions) > 0 {
		whereClause = strings.Join(conditions, " AND ")
	}

	countQuery := fmt.Sprintf(
		"SELECT COUNT(*) FROM orders WHERE %s",
		whereClause,
	)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count orders: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT id, service, service_id, customer_name, customer_email,
		       customer_phone, details, amount, status, tracking_number,
		       payment_status, completed_date, created_at, updated_at
		FROM orders
		WHERE %s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d`,
		whereClause, argIdx, argIdx+1)

	args = append(args, params.PageSize, params.Offset())

	var orders []Order
	if err := r.db.SelectContext(ctx, &orders, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list orders: %w", err)
	}

	return orders, total, nil
}

func (r *repository) Stats(ctx context.Context) (*Stats, error) {
	query := `
		SELECT COUNT(*) AS total_orders,
		       COUNT(*) FILTER (WHERE status = 'pending') AS pending_orders,
		       COUNT(*) FILTER (WHERE status = 'completed') AS completed_orders,
		       COALESCE(SUM(amount) FILTER (WHERE status = 'completed'), 0) AS revenue
		FROM orders`

	var stats Stats
	if err := r.db.GetContext(ctx, &stats, query); err != nil {
		return nil, fmt.Errorf("order stats: %w", err)
	}

	return &stats, nil
}
