package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"instudio/internal/domain"
	"instudio/pkg/logger"
)

const productColumns = `id, product_name, product_model, cost_estimation, status, user_id, created_at, updated_at`

type ProductRepository struct {
	db     DBTX
	logger logger.Logger
}

func NewProductRepository(db DBTX, logger logger.Logger) domain.ProductRepository {
	return &ProductRepository{
		db:     db,
		logger: logger,
	}
}

func scanProduct(row rowScanner) (*domain.Product, error) {
	var (
		p      domain.Product
		userID sql.NullString
	)
	err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Model,
		&p.CostEstimation,
		&p.Status,
		&userID,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	p.UserID = userID.String
	return &p, nil
}

func (r *ProductRepository) findOne(ctx context.Context, where string, arg interface{}) (*domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE ` + where

	p, err := scanProduct(r.db.QueryRowContext(ctx, query, arg))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		r.logger.ErrorContext(ctx, "Failed to load product", map[string]interface{}{"where": where, "error": err.Error()})
		return nil, fmt.Errorf("failed to load product: %w", err)
	}
	return p, nil
}

func (r *ProductRepository) FindByID(ctx context.Context, id string) (*domain.Product, error) {
	return r.findOne(ctx, "id = $1", id)
}

func (r *ProductRepository) FindByName(ctx context.Context, name string) (*domain.Product, error) {
	return r.findOne(ctx, "product_name = $1", name)
}

func (r *ProductRepository) query(ctx context.Context, query string, args ...interface{}) ([]*domain.Product, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to list products", map[string]interface{}{"error": err.Error()})
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	products := make([]*domain.Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate products: %w", err)
	}
	return products, nil
}

func (r *ProductRepository) FindActive(ctx context.Context) ([]*domain.Product, error) {
	return r.query(ctx, `SELECT `+productColumns+` FROM products WHERE status <> 0 ORDER BY created_at, id`)
}

func (r *ProductRepository) FindActivePage(ctx context.Context, page, size int) ([]*domain.Product, int64, error) {
	total, err := countRows(ctx, r.db, `SELECT COUNT(*) FROM products WHERE status <> 0`)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to count products", map[string]interface{}{"error": err.Error()})
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	products, err := r.query(ctx,
		`SELECT `+productColumns+` FROM products WHERE status <> 0 ORDER BY created_at, id LIMIT $1 OFFSET $2`,
		size, domain.Offset(page, size),
	)
	if err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

func (r *ProductRepository) Create(ctx context.Context, p *domain.Product) error {
	query := `
		INSERT INTO products (` + productColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now

	_, err := r.db.ExecContext(ctx, query,
		p.ID,
		p.Name,
		p.Model,
		p.CostEstimation,
		int(p.Status),
		nullString(p.UserID),
		p.CreatedAt,
		p.UpdatedAt,
	)
	if isUniqueViolation(err) {
		return domain.NewConflictError(domain.MsgProductNameTaken)
	}
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to create product", map[string]interface{}{"name": p.Name, "error": err.Error()})
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

func (r *ProductRepository) Update(ctx context.Context, p *domain.Product) error {
	query := `
		UPDATE products
		SET product_name = $1, product_model = $2, cost_estimation = $3, status = $4, updated_at = $5
		WHERE id = $6
	`

	p.UpdatedAt = time.Now().UTC()

	result, err := r.db.ExecContext(ctx, query,
		p.Name,
		p.Model,
		p.CostEstimation,
		int(p.Status),
		p.UpdatedAt,
		p.ID,
	)
	if isUniqueViolation(err) {
		return domain.NewConflictError(domain.MsgProductNameTaken)
	}
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to update product", map[string]interface{}{"id": p.ID, "error": err.Error()})
		return fmt.Errorf("failed to update product: %w", err)
	}
	return requireAffected(result, "product", p.ID)
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
