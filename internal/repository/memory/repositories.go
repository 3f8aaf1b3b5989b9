package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"instudio/internal/domain"
)

type userRepository struct{ *repositories }

func (r *userRepository) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.st.users.get(id)
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r *userRepository) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	var found *domain.User
	r.st.users.each(func(u domain.User) {
		if found == nil && u.Username == username {
			found = &u
		}
	})
	return found, nil
}

func (r *userRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	u, _ := r.FindByUsername(ctx, username)
	return u != nil, nil
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	if exists, _ := r.ExistsByUsername(ctx, user.Username); exists {
		return fmt.Errorf("duplicate username %q", user.Username)
	}
	now := r.now()
	user.CreatedAt, user.UpdatedAt = now, now
	r.st.users.insert(user.ID, *user)
	return nil
}

func (r *userRepository) Update(_ context.Context, user *domain.User) error {
	stored, ok := r.st.users.get(user.ID)
	if !ok {
		return fmt.Errorf("user %s was not updated", user.ID)
	}
	stored.Name, stored.Email, stored.Phone, stored.Address = user.Name, user.Email, user.Phone, user.Address
	stored.Status = user.Status
	stored.UpdatedAt = r.now()
	user.UpdatedAt = stored.UpdatedAt
	r.st.users.put(user.ID, stored)
	return nil
}

type productRepository struct{ *repositories }

func (r *productRepository) FindByID(_ context.Context, id string) (*domain.Product, error) {
	p, ok := r.st.products.get(id)
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (r *productRepository) FindByName(_ context.Context, name string) (*domain.Product, error) {
	var found *domain.Product
	r.st.products.each(func(p domain.Product) {
		if found == nil && p.Name == name {
			found = &p
		}
	})
	return found, nil
}

func (r *productRepository) FindActive(_ context.Context) ([]*domain.Product, error) {
	products := make([]*domain.Product, 0)
	r.st.products.each(func(p domain.Product) {
		if p.Status.IsActive() {
			products = append(products, &p)
		}
	})
	return products, nil
}

func (r *productRepository) FindActivePage(ctx context.Context, page, size int) ([]*domain.Product, int64, error) {
	all, _ := r.FindActive(ctx)
	return pageOf(all, page, size), int64(len(all)), nil
}

func (r *productRepository) Create(ctx context.Context, p *domain.Product) error {
	if existing, _ := r.FindByName(ctx, p.Name); existing != nil {
		return fmt.Errorf("duplicate product name %q", p.Name)
	}
	now := r.now()
	p.CreatedAt, p.UpdatedAt = now, now
	r.st.products.insert(p.ID, *p)
	return nil
}

func (r *productRepository) Update(_ context.Context, p *domain.Product) error {
	stored, ok := r.st.products.get(p.ID)
	if !ok {
		return fmt.Errorf("product %s was not updated", p.ID)
	}
	p.UserID = stored.UserID
	p.CreatedAt = stored.CreatedAt
	p.UpdatedAt = r.now()
	r.st.products.put(p.ID, *p)
	return nil
}

type imageRepository struct{ *repositories }

func (r *imageRepository) FindByID(_ context.Context, id string) (*domain.Image, error) {
	img, ok := r.st.images.get(id)
	if !ok {
		return nil, nil
	}
	return &img, nil
}

func (r *imageRepository) FindActive(_ context.Context) ([]*domain.Image, error) {
	images := make([]*domain.Image, 0)
	r.st.images.each(func(img domain.Image) {
		if img.Status.IsActive() {
			images = append(images, &img)
		}
	})
	return images, nil
}

func (r *imageRepository) FindActivePage(ctx context.Context, page, size int) ([]*domain.Image, int64, error) {
	all, _ := r.FindActive(ctx)
	return pageOf(all, page, size), int64(len(all)), nil
}

func (r *imageRepository) Create(_ context.Context, img *domain.Image) error {
	now := r.now()
	img.CreatedAt, img.UpdatedAt = now, now
	r.st.images.insert(img.ID, *img)
	return nil
}

func (r *imageRepository) Update(_ context.Context, img *domain.Image) error {
	stored, ok := r.st.images.get(img.ID)
	if !ok {
		return fmt.Errorf("image %s was not updated", img.ID)
	}
	stored.Alt, stored.Path, stored.Status = img.Alt, img.Path, img.Status
	stored.UpdatedAt = r.now()
	img.UpdatedAt = stored.UpdatedAt
	r.st.images.put(img.ID, stored)
	return nil
}

type orderRepository struct{ *repositories }

func (r *orderRepository) FindByID(_ context.Context, id string) (*domain.Order, error) {
	o, ok := r.st.orders.get(id)
	if !ok {
		return nil, nil
	}
	return &o, nil
}

func (r *orderRepository) FindByUserID(_ context.Context, userID string) ([]*domain.Order, error) {
	orders := make([]*domain.Order, 0)
	r.st.orders.each(func(o domain.Order) {
		if o.UserID == userID {
			orders = append(orders, &o)
		}
	})
	return orders, nil
}

func (r *orderRepository) FindAll(_ context.Context) ([]*domain.Order, error) {
	orders := make([]*domain.Order, 0)
	r.st.orders.each(func(o domain.Order) {
		orders = append(orders, &o)
	})
	return orders, nil
}

func (r *orderRepository) FindPage(ctx context.Context, page, size int) ([]*domain.Order, int64, error) {
	all, _ := r.FindAll(ctx)
	return pageOf(all, page, size), int64(len(all)), nil
}

func (r *orderRepository) NextCode(_ context.Context) (int64, error) {
	r.st.orderCode++
	return r.st.orderCode, nil
}

func (r *orderRepository) Create(_ context.Context, o *domain.Order) error {
	now := r.now()
	o.CreatedAt, o.UpdatedAt = now, now
	r.st.orders.insert(o.ID, *o)
	return nil
}

func (r *orderRepository) AddAmount(_ context.Context, id string, delta decimal.Decimal) (decimal.Decimal, error) {
	o, ok := r.st.orders.get(id)
	if !ok {
		return decimal.Zero, fmt.Errorf("order %s not found", id)
	}
	o.Amount = o.Amount.Add(delta)
	o.UpdatedAt = r.now()
	r.st.orders.put(id, o)
	return o.Amount, nil
}

type orderDetailRepository struct{ *repositories }

func (r *orderDetailRepository) Create(_ context.Context, d *domain.OrderDetail) error {
	d.CreatedAt = r.now()
	r.st.orderDetails.insert(d.ID, *d)
	return nil
}

func (r *orderDetailRepository) FindByOrderID(_ context.Context, orderID string) ([]*domain.OrderDetail, error) {
	details := make([]*domain.OrderDetail, 0)
	r.st.orderDetails.each(func(d domain.OrderDetail) {
		if d.OrderID == orderID {
			details = append(details, &d)
		}
	})
	return details, nil
}

type paymentRepository struct{ *repositories }

func (r *paymentRepository) Create(_ context.Context, p *domain.Payment) error {
	p.CreatedAt = r.now()
	r.st.payments.insert(p.ID, *p)
	return nil
}

func (r *paymentRepository) FindByOrderID(_ context.Context, orderID string) ([]*domain.Payment, error) {
	payments := make([]*domain.Payment, 0)
	r.st.payments.each(func(p domain.Payment) {
		if p.OrderID == orderID {
			payments = append(payments, &p)
		}
	})
	return payments, nil
}

type auditLogRepository struct{ *repositories }

func (r *auditLogRepository) Create(_ context.Context, log *domain.AuditLog) error {
	r.st.auditSeq++
	log.ID = r.st.auditSeq
	log.CreatedAt = r.now()
	r.st.auditLogs = append(r.st.auditLogs, *log)
	return nil
}

// newestFirst matches ORDER BY created_at DESC, id DESC.
func (r *auditLogRepository) newestFirst(keep func(l domain.AuditLog) bool) []*domain.AuditLog {
	logs := make([]*domain.AuditLog, 0)
	for _, l := range r.st.auditLogs {
		if keep(l) {
			l := l
			logs = append(logs, &l)
		}
	}
	sort.SliceStable(logs, func(i, j int) bool { return logs[i].ID > logs[j].ID })
	return logs
}

func (r *auditLogRepository) FindByEntityID(_ context.Context, entityType domain.EntityType, entityID string) ([]*domain.AuditLog, error) {
	return r.newestFirst(func(l domain.AuditLog) bool {
		return l.EntityType == entityType && l.EntityID == entityID
	}), nil
}

func (r *auditLogRepository) FindPage(_ context.Context, page, size int) ([]*domain.AuditLog, int64, error) {
	all := r.newestFirst(func(domain.AuditLog) bool { return true })
	return pageOf(all, page, size), int64(len(all)), nil
}
