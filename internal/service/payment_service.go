package service

import (
	"context"

	"instudio/internal/domain"
	"instudio/pkg/logger"
	"instudio/pkg/metrics"
)

type PaymentService struct {
	base
}

func NewPaymentService(uow domain.UnitOfWork, validate domain.Validator, logger logger.Logger, opts ...Option) *PaymentService {
	return &PaymentService{base: newBase(uow, validate, logger, opts)}
}

// Create records a payment. Payments are not reconciled against the order amount.
func (s *PaymentService) Create(ctx context.Context, userID, orderID string, req domain.CreatePaymentRequest) (*domain.PaymentResponse, error) {
	var payment *domain.Payment
	err := s.uow.WithinTx(ctx, func(ctx context.Context, repos domain.Repositories) error {
		if _, err := s.authorize(ctx, repos, userID, domain.CanPay); err != nil {
			return err
		}
		if err := s.validate.Validate(&req); err != nil {
			return err
		}
		order, err := loadOrder(ctx, repos, orderID)
		if err != nil {
			return err
		}

		payment = &domain.Payment{
			ID:            s.newID(),
			PaymentDate:   s.timestamp(),
			Amount:        req.Amount,
			Method:        req.Method,
			Detail:        req.Detail,
			AccountNumber: req.AccountNumber,
			OrderID:       order.ID,
		}
		if err := repos.Payments().Create(ctx, payment); err != nil {
			return err
		}
		return s.audit(ctx, repos, domain.EntityTypePayment, payment.ID, domain.ActionTypeCreate, userID, "order "+order.ID)
	})
	if err != nil {
		return nil, err
	}

	metrics.RecordPayment(payment.Method)
	s.logger.InfoContext(ctx, "Payment recorded", map[string]interface{}{
		"payment_id": payment.ID,
		"order_id":   orderID,
		"amount":     payment.Amount.String(),
	})
	return domain.NewPaymentResponse(payment), nil
}
