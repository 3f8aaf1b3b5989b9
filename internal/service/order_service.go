package service

import (
	"context"
	"strconv"

	"github.com/shopspring/decimal"

	"instudio/internal/domain"
	"instudio/pkg/logger"
	"instudio/pkg/metrics"
)

type OrderService struct {
	base
}

func NewOrderService(uow domain.UnitOfWork, validate domain.Validator, logger logger.Logger, opts ...Option) *OrderService {
	return &OrderService{base: newBase(uow, validate, logger, opts)}
}

func (s *OrderService) Create(ctx context.Context, userID string, req domain.CreateOrderRequest) (*domain.OrderResponse, error) {
	var order *domain.Order
	err := s.uow.WithinTx(ctx, func(ctx context.Context, repos domain.Repositories) error {
		if _, err := s.authorize(ctx, repos, userID, domain.CanPlaceOrder); err != nil {
			return err
		}
		if err := s.validate.Validate(&req); err != nil {
			return err
		}

		seq, err := repos.Orders().NextCode(ctx)
		if err != nil {
			return err
		}

		order = &domain.Order{
			ID:            s.newID(),
			Code:          domain.OrderCodePrefix + strconv.FormatInt(seq, 10),
			OrderDate:     s.timestamp(),
			VisitSchedule: req.VisitSchedule,
			VisitAddress:  req.VisitAddress,
			Amount:        decimal.Zero,
			Status:        domain.OrderStatusOpen,
			UserID:        userID,
		}
		if err := repos.Orders().Create(ctx, order); err != nil {
			return err
		}
		return s.audit(ctx, repos, domain.EntityTypeOrder, order.ID, domain.ActionTypeCreate, userID, order.Code)
	})
	if err != nil {
		return nil, err
	}

	metrics.RecordOrderCreated()
	s.logger.InfoContext(ctx, "Order created", map[string]interface{}{"order_id": order.ID, "code": order.Code})
	return domain.NewOrderResponse(order, nil, nil), nil
}

func (s *OrderService) GetOrderByUser(ctx context.Context, userID string) ([]*domain.OrderResponse, error) {
	return s.list(ctx, userID, func(ctx context.Context, repos domain.Repositories) ([]*domain.Order, error) {
		return repos.Orders().FindByUserID(ctx, userID)
	})
}

// Get does not check that userID owns the order; any active user may read it.
func (s *OrderService) Get(ctx context.Context, userID, orderID string) (*domain.OrderResponse, error) {
	var resp *domain.OrderResponse
	err := s.uow.ReadOnly(ctx, func(ctx context.Context, repos domain.Repositories) error {
		if _, err := s.authorize(ctx, repos, userID, domain.CanReadOrders); err != nil {
			return err
		}
		order, err := loadOrder(ctx, repos, orderID)
		if err != nil {
			return err
		}
		resp, err = orderProjection(ctx, repos, order)
		return err
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

func (s *OrderService) GetOrders(ctx context.Context, userID string) ([]*domain.OrderResponse, error) {
	return s.list(ctx, userID, func(ctx context.Context, repos domain.Repositories) ([]*domain.Order, error) {
		return repos.Orders().FindAll(ctx)
	})
}

func (s *OrderService) GetOrdersByPage(ctx context.Context, userID string, page, size int) (*domain.Page[*domain.OrderResponse], error) {
	if err := domain.ValidatePage(page, size); err != nil {
		return nil, err
	}

	var result *domain.Page[*domain.OrderResponse]
	err := s.uow.ReadOnly(ctx, func(ctx context.Context, repos domain.Repositories) error {
		if _, err := s.authorize(ctx, repos, userID, domain.CanReadOrders); err != nil {
			return err
		}
		orders, total, err := repos.Orders().FindPage(ctx, page, size)
		if err != nil {
			return err
		}
		if len(orders) == 0 {
			return domain.NewEmptyResultError(msgEmpty)
		}
		items, err := orderProjections(ctx, repos, orders)
		if err != nil {
			return err
		}
		result = &domain.Page[*domain.OrderResponse]{Items: items, Number: page, Size: size, Total: total}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *OrderService) list(ctx context.Context, userID string, find func(context.Context, domain.Repositories) ([]*domain.Order, error)) ([]*domain.OrderResponse, error) {
	var result []*domain.OrderResponse
	err := s.uow.ReadOnly(ctx, func(ctx context.Context, repos domain.Repositories) error {
		if _, err := s.authorize(ctx, repos, userID, domain.CanReadOrders); err != nil {
			return err
		}
		orders, err := find(ctx, repos)
		if err != nil {
			return err
		}
		if len(orders) == 0 {
			return domain.NewEmptyResultError(msgEmpty)
		}
		result, err = orderProjections(ctx, repos, orders)
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func loadOrder(ctx context.Context, repos domain.Repositories, id string) (*domain.Order, error) {
	order, err := repos.Orders().FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.NewNotFoundError(msgOrderNotFound)
	}
	return order, nil
}

// orderProjection looks up the order's details and payments by order id.
func orderProjection(ctx context.Context, repos domain.Repositories, order *domain.Order) (*domain.OrderResponse, error) {
	details, err := repos.OrderDetails().FindByOrderID(ctx, order.ID)
	if err != nil {
		return nil, err
	}
	payments, err := repos.Payments().FindByOrderID(ctx, order.ID)
	if err != nil {
		return nil, err
	}
	return domain.NewOrderResponse(order, details, payments), nil
}

func orderProjections(ctx context.Context, repos domain.Repositories, orders []*domain.Order) ([]*domain.OrderResponse, error) {
	out := make([]*domain.OrderResponse, 0, len(orders))
	for _, o := range orders {
		resp, err := orderProjection(ctx, repos, o)
		if err != nil {
			return nil, err
		}
		out = append(out, resp)
	}
	return out, nil
}
