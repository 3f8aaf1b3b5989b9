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

const imageColumns = `id, image_alt, image_path, status, product_id, user_id, created_at, updated_at`

type ImageRepository struct {
	db     DBTX
	logger logger.Logger
}

func NewImageRepository(db DBTX, logger logger.Logger) domain.ImageRepository {
	return &ImageRepository{
		db:     db,
		logger: logger,
	}
}

func scanImage(row rowScanner) (*domain.Image, error) {
	var (
		img               domain.Image
		productID, userID sql.NullString
	)
	err := row.Scan(
		&img.ID,
		&img.Alt,
		&img.Path,
		&img.Status,
		&productID,
		&userID,
		&img.CreatedAt,
		&img.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	img.ProductID = productID.String
	img.UserID = userID.String
	return &img, nil
}

func (r *ImageRepository) FindByID(ctx context.Context, id string) (*domain.Image, error) {
	query := `SELECT ` + imageColumns + ` FROM images WHERE id = $1`

	img, err := scanImage(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		r.logger.ErrorContext(ctx, "Failed to load image", map[string]interface{}{"id": id, "error": err.Error()})
		return nil, fmt.Errorf("failed to load image: %w", err)
	}
	return img, nil
}

func (r *ImageRepository) query(ctx context.Context, query string, args ...interface{}) ([]*domain.Image, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to list images", map[string]interface{}{"error": err.Error()})
		return nil, fmt.Errorf("failed to list images: %w", err)
	}
	defer rows.Close()

	images := make([]*domain.Image, 0)
	for rows.Next() {
		img, err := scanImage(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan image: %w", err)
		}
		images = append(images, img)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate images: %w", err)
	}
	return images, nil
}

func (r *ImageRepository) FindActive(ctx context.Context) ([]*domain.Image, error) {
	return r.query(ctx, `SELECT `+imageColumns+` FROM images WHERE status <> 0 ORDER BY created_at, id`)
}

func (r *ImageRepository) FindActivePage(ctx context.Context, page, size int) ([]*domain.Image, int64, error) {
	total, err := countRows(ctx, r.db, `SELECT COUNT(*) FROM images WHERE status <> 0`)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to count images", map[string]interface{}{"error": err.Error()})
		return nil, 0, fmt.Errorf("failed to count images: %w", err)
	}

	images, err := r.query(ctx,
		`SELECT `+imageColumns+` FROM images WHERE status <> 0 ORDER BY created_at, id LIMIT $1 OFFSET $2`,
		size, domain.Offset(page, size),
	)
	if err != nil {
		return nil, 0, err
	}
	return images, total, nil
}

func (r *ImageRepository) Create(ctx context.Context, img *domain.Image) error {
	query := `
		INSERT INTO images (` + imageColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	now := time.Now().UTC()
	img.CreatedAt = now
	img.UpdatedAt = now

	_, err := r.db.ExecContext(ctx, query,
		img.ID,
		img.Alt,
		img.Path,
		int(img.Status),
		nullString(img.ProductID),
		nullString(img.UserID),
		img.CreatedAt,
		img.UpdatedAt,
	)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to create image", map[string]interface{}{"error": err.Error()})
		return fmt.Errorf("failed to create image: %w", err)
	}
	return nil
}

func (r *ImageRepository) Update(ctx context.Context, img *domain.Image) error {
	query := `UPDATE images SET image_alt = $1, image_path = $2, status = $3, updated_at = $4 WHERE id = $5`

	img.UpdatedAt = time.Now().UTC()

	result, err := r.db.ExecContext(ctx, query, img.Alt, img.Path, int(img.Status), img.UpdatedAt, img.ID)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to update image", map[string]interface{}{"id": img.ID, "error": err.Error()})
		return fmt.Errorf("failed to update image: %w", err)
	}
	return requireAffected(result, "image", img.ID)
}
