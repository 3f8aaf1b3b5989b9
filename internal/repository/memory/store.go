package memory

import (
	"context"
	"sync"
	"time"

	"instudio/internal/domain"
)

// table keeps rows in insertion order, which stands in for the
// ORDER BY created_at, id of the SQL repositories.
type table[T any] struct {
	rows  map[string]T
	order []string
}

func newTable[T any]() *table[T] {
	return &table[T]{rows: make(map[string]T)}
}

func (t *table[T]) clone() *table[T] {
	c := &table[T]{
		rows:  make(map[string]T, len(t.rows)),
		order: append([]string(nil), t.order...),
	}
	for k, v := range t.rows {
		c.rows[k] = v
	}
	return c
}

func (t *table[T]) get(id string) (T, bool) {
	v, ok := t.rows[id]
	return v, ok
}

func (t *table[T]) insert(id string, v T) {
	if _, ok := t.rows[id]; !ok {
		t.order = append(t.order, id)
	}
	t.rows[id] = v
}

func (t *table[T]) put(id string, v T) bool {
	if _, ok := t.rows[id]; !ok {
		return false
	}
	t.rows[id] = v
	return true
}

func (t *table[T]) each(fn func(v T)) {
	for _, id := range t.order {
		fn(t.rows[id])
	}
}

type state struct {
	users        *table[domain.User]
	products     *table[domain.Product]
	images       *table[domain.Image]
	orders       *table[domain.Order]
	orderDetails *table[domain.OrderDetail]
	payments     *table[domain.Payment]
	auditLogs    []domain.AuditLog
	orderCode    int64
	auditSeq     int64
}

func newState() *state {
	return &state{
		users:        newTable[domain.User](),
		products:     newTable[domain.Product](),
		images:       newTable[domain.Image](),
		orders:       newTable[domain.Order](),
		orderDetails: newTable[domain.OrderDetail](),
		payments:     newTable[domain.Payment](),
	}
}

func (s *state) clone() *state {
	return &state{
		users:        s.users.clone(),
		products:     s.products.clone(),
		images:       s.images.clone(),
		orders:       s.orders.clone(),
		orderDetails: s.orderDetails.clone(),
		payments:     s.payments.clone(),
		auditLogs:    append([]domain.AuditLog(nil), s.auditLogs...),
		orderCode:    s.orderCode,
		auditSeq:     s.auditSeq,
	}
}

// Store is an in-memory UnitOfWork. Transactions are serialized and work
// on a copy of the state that replaces the live one only on success.
type Store struct {
	mu    sync.Mutex
	state *state
	now   func() time.Time
}

func NewStore() *Store {
	return &Store{state: newState(), now: func() time.Time { return time.Now().UTC() }}
}

func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context, repos domain.Repositories) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	working := s.state.clone()
	if err := fn(ctx, &repositories{st: working, now: s.now}); err != nil {
		return err
	}
	s.state = working
	return nil
}

func (s *Store) ReadOnly(ctx context.Context, fn func(ctx context.Context, repos domain.Repositories) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return fn(ctx, &repositories{st: s.state.clone(), now: s.now})
}

type repositories struct {
	st  *state
	now func() time.Time
}

func (r *repositories) Users() domain.UserRepository               { return &userRepository{r} }
func (r *repositories) Products() domain.ProductRepository         { return &productRepository{r} }
func (r *repositories) Images() domain.ImageRepository             { return &imageRepository{r} }
func (r *repositories) Orders() domain.OrderRepository             { return &orderRepository{r} }
func (r *repositories) OrderDetails() domain.OrderDetailRepository { return &orderDetailRepository{r} }
func (r *repositories) Payments() domain.PaymentRepository         { return &paymentRepository{r} }
func (r *repositories) AuditLogs() domain.AuditLogRepository       { return &auditLogRepository{r} }

func pageOf[T any](items []T, page, size int) []T {
	start := domain.Offset(page, size)
	if start >= len(items) {
		return []T{}
	}
	end := start + size
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}
