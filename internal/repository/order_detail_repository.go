package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"instudio/internal/domain"
	"instudio/pkg/logger"
)

type OrderDetailRepository struct {
	db     DBTX
	logger logger.Logger
}

func NewOrderDetailRepository(db DBTX, logger logger.Logger) domain.OrderDetailRepository {
	return &OrderDetailRepository{
		db:     db,
		logger: logger,
	}
}

func (r *OrderDetailRepository) Create(ctx context.Context, d *domain.OrderDetail) error {
	query := `
		INSERT INTO order_details (id, time_estimation, subtotal, product_size, product_theme, order_id, product_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	d.CreatedAt = time.Now().UTC()

	var productID sql.NullString
	if d.ProductID != nil {
		productID = sql.NullString{String: *d.ProductID, Valid: true}
	}

	_, err := r.db.ExecContext(ctx, query,
		d.ID,
		d.TimeEstimation,
		d.Subtotal,
		d.ProductSize,
		d.ProductTheme,
		d.OrderID,
		productID,
		d.CreatedAt,
	)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to create order detail", map[string]interface{}{"order_id": d.OrderID, "error": err.Error()})
		return fmt.Errorf("failed to create order detail: %w", err)
	}
	return nil
}

func (r *OrderDetailRepository) FindByOrderID(ctx context.Context, orderID string) ([]*domain.OrderDetail, error) {
	query := `
		SELECT id, time_estimation, subtotal, product_size, product_theme, order_id, product_id, created_at
		FROM order_details
		WHERE order_id = $1
		ORDER BY created_at, id
	`

	rows, err := r.db.QueryContext(ctx, query, orderID)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to list order details", map[string]interface{}{"order_id": orderID, "error": err.Error()})
		return nil, fmt.Errorf("failed to list order details: %w", err)
	}
	defer rows.Close()

	details := make([]*domain.OrderDetail, 0)
	for rows.Next() {
		var (
			d         domain.OrderDetail
			productID sql.NullString
		)
		if err := rows.Scan(
			&d.ID,
			&d.TimeEstimation,
			&d.Subtotal,
			&d.ProductSize,
			&d.ProductTheme,
			&d.OrderID,
			&productID,
			&d.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan order detail: %w", err)
		}
		if productID.Valid {
			id := productID.String
			d.ProductID = &id
		}
		details = append(details, &d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate order details: %w", err)
	}
	return details, nil
}
