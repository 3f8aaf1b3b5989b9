package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"instudio/internal/domain"
	"instudio/pkg/logger"
	"instudio/pkg/metrics"
	"instudio/pkg/tracing"
)

type repositories struct {
	users        domain.UserRepository
	products     domain.ProductRepository
	images       domain.ImageRepository
	orders       domain.OrderRepository
	orderDetails domain.OrderDetailRepository
	payments     domain.PaymentRepository
	auditLogs    domain.AuditLogRepository
}

func newRepositories(db DBTX, log logger.Logger) *repositories {
	return &repositories{
		users:        NewUserRepository(db, log),
		products:     NewProductRepository(db, log),
		images:       NewImageRepository(db, log),
		orders:       NewOrderRepository(db, log),
		orderDetails: NewOrderDetailRepository(db, log),
		payments:     NewPaymentRepository(db, log),
		auditLogs:    NewAuditLogRepository(db, log),
	}
}

func (r *repositories) Users() domain.UserRepository               { return r.users }
func (r *repositories) Products() domain.ProductRepository         { return r.products }
func (r *repositories) Images() domain.ImageRepository             { return r.images }
func (r *repositories) Orders() domain.OrderRepository             { return r.orders }
func (r *repositories) OrderDetails() domain.OrderDetailRepository { return r.orderDetails }
func (r *repositories) Payments() domain.PaymentRepository         { return r.payments }
func (r *repositories) AuditLogs() domain.AuditLogRepository       { return r.auditLogs }

// Store is the SQL UnitOfWork. Each call opens one transaction and hands
// fn a set of repositories bound to it.
type Store struct {
	db     *sql.DB
	logger logger.Logger
}

func NewStore(db *sql.DB, logger logger.Logger) *Store {
	return &Store{db: db, logger: logger}
}

func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context, repos domain.Repositories) error) error {
	return s.run(ctx, "read_write", nil, fn)
}

func (s *Store) ReadOnly(ctx context.Context, fn func(ctx context.Context, repos domain.Repositories) error) error {
	return s.run(ctx, "read_only", &sql.TxOptions{ReadOnly: true}, fn)
}

func (s *Store) run(ctx context.Context, mode string, opts *sql.TxOptions, fn func(ctx context.Context, repos domain.Repositories) error) (err error) {
	ctx, span := tracing.StartSpan(ctx, "store."+mode)
	defer span.End()

	start := time.Now()
	outcome := "commit"
	defer func() {
		metrics.RecordTransaction(mode, outcome, time.Since(start))
	}()

	tx, err := s.db.BeginTx(ctx, opts)
	if err != nil {
		outcome = "error"
		s.logger.ErrorContext(ctx, "Failed to begin transaction", map[string]interface{}{"mode": mode, "error": err.Error()})
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			outcome = "rollback"
			panic(p)
		}
	}()

	if err = fn(ctx, newRepositories(tx, s.logger)); err != nil {
		outcome = "rollback"
		if rbErr := tx.Rollback(); rbErr != nil {
			s.logger.ErrorContext(ctx, "Failed to roll back transaction", map[string]interface{}{"error": rbErr.Error()})
		}
		span.RecordError(err)
		return err
	}

	if err = tx.Commit(); err != nil {
		outcome = "error"
		s.logger.ErrorContext(ctx, "Failed to commit transaction", map[string]interface{}{"mode": mode, "error": err.Error()})
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
