package domain

import "context"

type Repositories interface {
	Users() UserRepository
	Products() ProductRepository
	Images() ImageRepository
	Orders() OrderRepository
	OrderDetails() OrderDetailRepository
	Payments() PaymentRepository
	AuditLogs() AuditLogRepository
}

// UnitOfWork runs fn against repositories bound to a single transaction.
// A non-nil error from fn rolls every write back.
type UnitOfWork interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context, repos Repositories) error) error
	ReadOnly(ctx context.Context, fn func(ctx context.Context, repos Repositories) error) error
}
