package domain

import (
	"context"
	"time"
)

type EntityType string
type ActionType string

const (
	EntityTypeUser        EntityType = "user"
	EntityTypeProduct     EntityType = "product"
	EntityTypeImage       EntityType = "image"
	EntityTypeOrder       EntityType = "order"
	EntityTypeOrderDetail EntityType = "order_detail"
	EntityTypePayment     EntityType = "payment"

	ActionTypeCreate ActionType = "create"
	ActionTypeUpdate ActionType = "update"
	ActionTypeDelete ActionType = "delete"
)

func (t EntityType) Valid() bool {
	switch t {
	case EntityTypeUser, EntityTypeProduct, EntityTypeImage, EntityTypeOrder, EntityTypeOrderDetail, EntityTypePayment:
		return true
	}
	return false
}

type AuditLog struct {
	ID         int64      `json:"id"`
	EntityType EntityType `json:"entityType"`
	EntityID   string     `json:"entityId"`
	Action     ActionType `json:"action"`
	ActorID    string     `json:"actorId,omitempty"`
	Details    string     `json:"details,omitempty"`
	CreatedAt  time.Time  `json:"createdAt"`
}

type AuditLogRepository interface {
	Create(ctx context.Context, log *AuditLog) error
	FindByEntityID(ctx context.Context, entityType EntityType, entityID string) ([]*AuditLog, error)
	FindPage(ctx context.Context, page, size int) ([]*AuditLog, int64, error)
}

type AuditLogService interface {
	GetEntityLogs(ctx context.Context, userID string, entityType EntityType, entityID string) ([]*AuditLog, error)
	GetAllLogs(ctx context.Context, userID string, page, size int) (*Page[*AuditLog], error)
}
