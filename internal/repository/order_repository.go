package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"instudio/internal/domain"
	"instudio/pkg/logger"
)

const (
	orderColumns = `id, order_code, order_date, visit_schedule, visit_address, order_amount, status, user_id, created_at, updated_at`

	orderCodeSequence = "order_code"
)

type OrderRepository struct {
	db     DBTX
	logger logger.Logger
}

func NewOrderRepository(db DBTX, logger logger.Logger) domain.OrderRepository {
	return &OrderRepository{
		db:     db,
		logger: logger,
	}
}

func scanOrder(row rowScanner) (*domain.Order, error) {
	var o domain.Order
	err := row.Scan(
		&o.ID,
		&o.Code,
		&o.OrderDate,
		&o.VisitSchedule,
		&o.VisitAddress,
		&o.Amount,
		&o.Status,
		&o.UserID,
		&o.CreatedAt,
		&o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *OrderRepository) FindByID(ctx context.Context, id string) (*domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`

	o, err := scanOrder(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		r.logger.ErrorContext(ctx, "Failed to load order", map[string]interface{}{"id": id, "error": err.Error()})
		return nil, fmt.Errorf("failed to load order: %w", err)
	}
	return o, nil
}

func (r *OrderRepository) query(ctx context.Context, query string, args ...interface{}) ([]*domain.Order, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to list orders", map[string]interface{}{"error": err.Error()})
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	defer rows.Close()

	orders := make([]*domain.Order, 0)
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate orders: %w", err)
	}
	return orders, nil
}

func (r *OrderRepository) FindByUserID(ctx context.Context, userID string) ([]*domain.Order, error) {
	return r.query(ctx, `SELECT `+orderColumns+` FROM orders WHERE user_id = $1 ORDER BY created_at, id`, userID)
}

func (r *OrderRepository) FindAll(ctx context.Context) ([]*domain.Order, error) {
	return r.query(ctx, `SELECT `+orderColumns+` FROM orders ORDER BY created_at, id`)
}

func (r *OrderRepository) FindPage(ctx context.Context, page, size int) ([]*domain.Order, int64, error) {
	total, err := countRows(ctx, r.db, `SELECT COUNT(*) FROM orders`)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to count orders", map[string]interface{}{"error": err.Error()})
		return nil, 0, fmt.Errorf("failed to count orders: %w", err)
	}

	orders, err := r.query(ctx,
		`SELECT `+orderColumns+` FROM orders ORDER BY created_at, id LIMIT $1 OFFSET $2`,
		size, domain.Offset(page, size),
	)
	if err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

// NextCode must run in the same transaction as the insert that uses the
// code; the row lock on the sequence serializes concurrent creators.
func (r *OrderRepository) NextCode(ctx context.Context) (int64, error) {
	var next int64
	err := r.db.QueryRowContext(ctx,
		`UPDATE sequences SET value = value + 1 WHERE name = $1 RETURNING value`,
		orderCodeSequence,
	).Scan(&next)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to advance order code sequence", map[string]interface{}{"error": err.Error()})
		return 0, fmt.Errorf("failed to advance order code sequence: %w", err)
	}
	return next, nil
}

func (r *OrderRepository) Create(ctx context.Context, o *domain.Order) error {
	query := `
		INSERT INTO orders (` + orderColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	now := time.Now().UTC()
	o.CreatedAt = now
	o.UpdatedAt = now

	_, err := r.db.ExecContext(ctx, query,
		o.ID,
		o.Code,
		o.OrderDate,
		o.VisitSchedule,
		o.VisitAddress,
		o.Amount,
		int(o.Status),
		o.UserID,
		o.CreatedAt,
		o.UpdatedAt,
	)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to create order", map[string]interface{}{"code": o.Code, "error": err.Error()})
		return fmt.Errorf("failed to create order: %w", err)
	}
	return nil
}

func (r *OrderRepository) AddAmount(ctx context.Context, id string, delta decimal.Decimal) (decimal.Decimal, error) {
	query := `
		UPDATE orders
		SET order_amount = order_amount + $1, updated_at = $2
		WHERE id = $3
		RETURNING order_amount
	`

	var amount decimal.Decimal
	err := r.db.QueryRowContext(ctx, query, delta, time.Now().UTC(), id).Scan(&amount)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return decimal.Zero, fmt.Errorf("order %s not found: %w", id, err)
		}
		r.logger.ErrorContext(ctx, "Failed to add order amount", map[string]interface{}{
			"id":    id,
			"delta": delta.String(),
			"error": err.Error(),
		})
		return decimal.Zero, fmt.Errorf("failed to add order amount: %w", err)
	}
	return amount, nil
}
