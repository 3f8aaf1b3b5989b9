package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"instudio/internal/domain"
	"instudio/pkg/logger"
)

const auditLogColumns = `id, entity_type, entity_id, action, actor_id, details, created_at`

type AuditLogRepository struct {
	db     DBTX
	logger logger.Logger
}

func NewAuditLogRepository(db DBTX, logger logger.Logger) domain.AuditLogRepository {
	return &AuditLogRepository{
		db:     db,
		logger: logger,
	}
}

func (r *AuditLogRepository) Create(ctx context.Context, log *domain.AuditLog) error {
	query := `
		INSERT INTO audit_logs (entity_type, entity_id, action, actor_id, details, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	log.CreatedAt = time.Now().UTC()

	err := r.db.QueryRowContext(ctx, query,
		string(log.EntityType),
		log.EntityID,
		string(log.Action),
		log.ActorID,
		nullString(log.Details),
		log.CreatedAt,
	).Scan(&log.ID)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to create audit log", map[string]interface{}{
			"entity_type": log.EntityType,
			"entity_id":   log.EntityID,
			"error":       err.Error(),
		})
		return fmt.Errorf("failed to create audit log: %w", err)
	}
	return nil
}

func (r *AuditLogRepository) FindByEntityID(ctx context.Context, entityType domain.EntityType, entityID string) ([]*domain.AuditLog, error) {
	return r.query(ctx,
		`SELECT `+auditLogColumns+` FROM audit_logs WHERE entity_type = $1 AND entity_id = $2 ORDER BY created_at DESC, id DESC`,
		string(entityType), entityID,
	)
}

func (r *AuditLogRepository) FindPage(ctx context.Context, page, size int) ([]*domain.AuditLog, int64, error) {
	total, err := countRows(ctx, r.db, `SELECT COUNT(*) FROM audit_logs`)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to count audit logs", map[string]interface{}{"error": err.Error()})
		return nil, 0, fmt.Errorf("failed to count audit logs: %w", err)
	}

	logs, err := r.query(ctx,
		`SELECT `+auditLogColumns+` FROM audit_logs ORDER BY created_at DESC, id DESC LIMIT $1 OFFSET $2`,
		size, domain.Offset(page, size),
	)
	if err != nil {
		return nil, 0, err
	}
	return logs, total, nil
}

func (r *AuditLogRepository) query(ctx context.Context, query string, args ...interface{}) ([]*domain.AuditLog, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to list audit logs", map[string]interface{}{"error": err.Error()})
		return nil, fmt.Errorf("failed to list audit logs: %w", err)
	}
	defer rows.Close()

	logs := make([]*domain.AuditLog, 0)
	for rows.Next() {
		var (
			log                domain.AuditLog
			entityType, action string
			details            sql.NullString
		)
		if err := rows.Scan(
			&log.ID,
			&entityType,
			&log.EntityID,
			&action,
			&log.ActorID,
			&details,
			&log.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan audit log: %w", err)
		}
		log.EntityType = domain.EntityType(entityType)
		log.Action = domain.ActionType(action)
		log.Details = details.String
		logs = append(logs, &log)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate audit logs: %w", err)
	}
	return logs, nil
}
