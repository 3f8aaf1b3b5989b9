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

const userColumns = `id, username, password_hash, role, name, email, phone, address, status, created_at, updated_at`

type UserRepository struct {
	db     DBTX
	logger logger.Logger
}

func NewUserRepository(db DBTX, logger logger.Logger) domain.UserRepository {
	return &UserRepository{
		db:     db,
		logger: logger,
	}
}

func scanUser(row rowScanner) (*domain.User, error) {
	var user domain.User
	err := row.Scan(
		&user.ID,
		&user.Username,
		&user.PasswordHash,
		&user.Role,
		&user.Name,
		&user.Email,
		&user.Phone,
		&user.Address,
		&user.Status,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) findOne(ctx context.Context, where string, arg interface{}) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE ` + where

	user, err := scanUser(r.db.QueryRowContext(ctx, query, arg))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		r.logger.ErrorContext(ctx, "Failed to load user", map[string]interface{}{"where": where, "error": err.Error()})
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	return user, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	return r.findOne(ctx, "id = $1", id)
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.findOne(ctx, "username = $1", username)
}

func (r *UserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	total, err := countRows(ctx, r.db, `SELECT COUNT(*) FROM users WHERE username = $1`, username)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to check username", map[string]interface{}{"error": err.Error()})
		return false, fmt.Errorf("failed to check username: %w", err)
	}
	return total > 0, nil
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	query := `
		INSERT INTO users (` + userColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now

	_, err := r.db.ExecContext(ctx, query,
		user.ID,
		user.Username,
		user.PasswordHash,
		string(user.Role),
		user.Name,
		user.Email,
		user.Phone,
		user.Address,
		int(user.Status),
		user.CreatedAt,
		user.UpdatedAt,
	)
	if isUniqueViolation(err) {
		return domain.NewConflictError(domain.MsgUsernameTaken)
	}
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to create user", map[string]interface{}{"username": user.Username, "error": err.Error()})
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (r *UserRepository) Update(ctx context.Context, user *domain.User) error {
	query := `
		UPDATE users
		SET name = $1, email = $2, phone = $3, address = $4, status = $5, updated_at = $6
		WHERE id = $7
	`

	user.UpdatedAt = time.Now().UTC()

	result, err := r.db.ExecContext(ctx, query,
		user.Name,
		user.Email,
		user.Phone,
		user.Address,
		int(user.Status),
		user.UpdatedAt,
		user.ID,
	)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to update user", map[string]interface{}{"id": user.ID, "error": err.Error()})
		return fmt.Errorf("failed to update user: %w", err)
	}
	return requireAffected(result, "user", user.ID)
}

func requireAffected(result sql.Result, entity, id string) error {
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%s %s was not updated: %w", entity, id, sql.ErrNoRows)
	}
	return nil
}
