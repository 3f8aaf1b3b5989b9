package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"instudio/internal/domain"
	"instudio/pkg/logger"
)

type PaymentRepository struct {
	db     DBTX
	logger logger.Logger
}

func NewPaymentRepository(db DBTX, logger logger.Logger) domain.PaymentRepository {
	return &PaymentRepository{
		db:     db,
		logger: logger,
	}
}

func (r *PaymentRepository) Create(ctx context.Context, p *domain.Payment) error {
	query := `
		INSERT INTO payments (id, payment_date, payment_amount, payment_method, payment_detail, account_number, order_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	p.CreatedAt = time.Now().UTC()

	var account sql.NullString
	if p.AccountNumber != nil {
		account = sql.NullString{String: *p.AccountNumber, Valid: true}
	}

	_, err := r.db.ExecContext(ctx, query,
		p.ID,
		p.PaymentDate,
		p.Amount,
		p.Method,
		p.Detail,
		account,
		p.OrderID,
		p.CreatedAt,
	)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to create payment", map[string]interface{}{"order_id": p.OrderID, "error": err.Error()})
		return fmt.Errorf("failed to create payment: %w", err)
	}
	return nil
}

func (r *PaymentRepository) FindByOrderID(ctx context.Context, orderID string) ([]*domain.Payment, error) {
	query := `
		SELECT id, payment_date, payment_amount, payment_method, payment_detail, account_number, order_id, created_at
		FROM payments
		WHERE order_id = $1
		ORDER BY created_at, id
	`

	rows, err := r.db.QueryContext(ctx, query, orderID)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to list payments", map[string]interface{}{"order_id": orderID, "error": err.Error()})
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	defer rows.Close()

	payments := make([]*domain.Payment, 0)
	for rows.Next() {
		var (
			p       domain.Payment
			account sql.NullString
		)
		if err := rows.Scan(
			&p.ID,
			&p.PaymentDate,
			&p.Amount,
			&p.Method,
			&p.Detail,
			&account,
			&p.OrderID,
			&p.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan payment: %w", err)
		}
		if account.Valid {
			a := account.String
			p.AccountNumber = &a
		}
		payments = append(payments, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate payments: %w", err)
	}
	return payments, nil
}
