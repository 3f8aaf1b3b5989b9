package service

import (
	"context"

	"instudio/internal/domain"
	"instudio/pkg/logger"
	"instudio/pkg/metrics"
)

type OrderDetailService struct {
	base
}

func NewOrderDetailService(uow domain.UnitOfWork, validate domain.Validator, logger logger.Logger, opts ...Option) *OrderDetailService {
	return &OrderDetailService{base: newBase(uow, validate, logger, opts)}
}

// Create adds a line item and raises the order amount by its cost in the
// same transaction. An unknown product name leaves the product reference empty.
func (s *OrderDetailService) Create(ctx context.Context, userID, orderID string, req domain.CreateOrderDetailRequest) (*domain.OrderResponse, error) {
	var resp *domain.OrderResponse
	err := s.uow.WithinTx(ctx, func(ctx context.Context, repos domain.Repositories) error {
		if _, err := s.authorize(ctx, repos, userID, domain.CanAddOrderDetail); err != nil {
			return err
		}
		if err := s.validate.Validate(&req); err != nil {
			return err
		}

		var productID *string
		product, err := repos.Products().FindByName(ctx, req.ProductName)
		if err != nil {
			return err
		}
		if product != nil {
			productID = &product.ID
		}

		order, err := loadOrder(ctx, repos, orderID)
		if err != nil {
			return err
		}

		if order.Amount, err = repos.Orders().AddAmount(ctx, order.ID, req.ProductCost); err != nil {
			return err
		}

		detail := &domain.OrderDetail{
			ID:             s.newID(),
			TimeEstimation: req.TimeEstimation,
			Subtotal:       req.ProductCost,
			ProductSize:    req.ProductSize,
			ProductTheme:   req.ProductTheme,
			OrderID:        order.ID,
			ProductID:      productID,
		}
		if err := repos.OrderDetails().Create(ctx, detail); err != nil {
			return err
		}
		if err := s.audit(ctx, repos, domain.EntityTypeOrderDetail, detail.ID, domain.ActionTypeCreate, userID, "order "+order.ID); err != nil {
			return err
		}

		resp, err = orderProjection(ctx, repos, order)
		return err
	})
	if err != nil {
		return nil, err
	}

	metrics.RecordOrderDetailCreated()
	s.logger.InfoContext(ctx, "Order detail created", map[string]interface{}{
		"order_id": orderID,
		"amount":   resp.Amount.String(),
	})
	return resp, nil
}
