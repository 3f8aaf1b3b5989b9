package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"instudio/internal/domain"
	"instudio/pkg/logger"
)

const (
	msgUserNotFound    = "User not found"
	msgProductNotFound = "Product not found"
	msgImageNotFound   = "Image not found"
	msgOrderNotFound   = "Order not found"
	msgEmpty           = "Data is empty."
)

// Option adjusts the collaborators shared by every service.
type Option func(*base)

func WithClock(now func() time.Time) Option {
	return func(b *base) { b.now = now }
}

func WithIDGenerator(newID func() string) Option {
	return func(b *base) { b.newID = newID }
}

type base struct {
	uow      domain.UnitOfWork
	validate domain.Validator
	logger   logger.Logger
	now      func() time.Time
	newID    func() string
}

func newBase(uow domain.UnitOfWork, validate domain.Validator, log logger.Logger, opts []Option) base {
	b := base{
		uow:      uow,
		validate: validate,
		logger:   log,
		now:      time.Now,
		newID:    uuid.NewString,
	}
	for _, opt := range opts {
		opt(&b)
	}
	return b
}

func (b *base) timestamp() string {
	return b.now().Format(domain.DateTimeLayout)
}

func (b *base) loadUser(ctx context.Context, repos domain.Repositories, id string) (*domain.User, error) {
	user, err := repos.Users().FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.NewNotFoundError(msgUserNotFound)
	}
	return user, nil
}

// authorize loads the acting user and checks it against p.
func (b *base) authorize(ctx context.Context, repos domain.Repositories, userID string, p domain.Policy) (*domain.User, error) {
	user, err := b.loadUser(ctx, repos, userID)
	if err != nil {
		return nil, err
	}
	if err := p.Check(user); err != nil {
		b.logger.WarnContext(ctx, "Permission denied", map[string]interface{}{
			"user_id": userID,
			"policy":  p.Name,
		})
		return nil, err
	}
	return user, nil
}

func (b *base) audit(ctx context.Context, repos domain.Repositories, entityType domain.EntityType, entityID string, action domain.ActionType, actorID, details string) error {
	log := &domain.AuditLog{
		EntityType: entityType,
		EntityID:   entityID,
		Action:     action,
		ActorID:    actorID,
		Details:    details,
	}
	if err := repos.AuditLogs().Create(ctx, log); err != nil {
		return fmt.Errorf("failed to write audit log: %w", err)
	}
	return nil
}

func buildPage[E any, R any](items []E, page, size int, total int64, project func(E) R) (*domain.Page[R], error) {
	if len(items) == 0 {
		return nil, domain.NewEmptyResultError(msgEmpty)
	}
	out := make([]R, 0, len(items))
	for _, item := range items {
		out = append(out, project(item))
	}
	return &domain.Page[R]{Items: out, Number: page, Size: size, Total: total}, nil
}

func project[E any, R any](items []E, fn func(E) R) ([]R, error) {
	if len(items) == 0 {
		return nil, domain.NewEmptyResultError(msgEmpty)
	}
	out := make([]R, 0, len(items))
	for _, item := range items {
		out = append(out, fn(item))
	}
	return out, nil
}
