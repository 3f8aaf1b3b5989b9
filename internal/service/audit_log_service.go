package service

import (
	"context"

	"instudio/internal/domain"
	"instudio/pkg/logger"
)

type AuditLogService struct {
	base
}

func NewAuditLogService(uow domain.UnitOfWork, logger logger.Logger, opts ...Option) *AuditLogService {
	return &AuditLogService{base: newBase(uow, nil, logger, opts)}
}

func (s *AuditLogService) GetEntityLogs(ctx context.Context, userID string, entityType domain.EntityType, entityID string) ([]*domain.AuditLog, error) {
	if !entityType.Valid() {
		return nil, domain.NewValidationError("unknown entity type %q", entityType)
	}

	var logs []*domain.AuditLog
	err := s.uow.ReadOnly(ctx, func(ctx context.Context, repos domain.Repositories) error {
		if _, err := s.authorize(ctx, repos, userID, domain.CanReadAuditLogs); err != nil {
			return err
		}
		var err error
		logs, err = repos.AuditLogs().FindByEntityID(ctx, entityType, entityID)
		return err
	})
	if err != nil {
		return nil, err
	}
	if len(logs) == 0 {
		return nil, domain.NewEmptyResultError(msgEmpty)
	}
	return logs, nil
}

func (s *AuditLogService) GetAllLogs(ctx context.Context, userID string, page, size int) (*domain.Page[*domain.AuditLog], error) {
	if err := domain.ValidatePage(page, size); err != nil {
		return nil, err
	}

	var (
		logs  []*domain.AuditLog
		total int64
	)
	err := s.uow.ReadOnly(ctx, func(ctx context.Context, repos domain.Repositories) error {
		if _, err := s.authorize(ctx, repos, userID, domain.CanReadAuditLogs); err != nil {
			return err
		}
		var err error
		logs, total, err = repos.AuditLogs().FindPage(ctx, page, size)
		return err
	})
	if err != nil {
		return nil, err
	}
	return buildPage(logs, page, size, total, func(l *domain.AuditLog) *domain.AuditLog { return l })
}
