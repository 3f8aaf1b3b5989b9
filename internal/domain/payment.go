package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type Payment struct {
	ID            string          `json:"paymentId"`
	PaymentDate   string          `json:"paymentDate"`
	Amount        decimal.Decimal `json:"paymentAmount"`
	Method        string          `json:"paymentMethod"`
	Detail        string          `json:"paymentDetail"`
	AccountNumber *string         `json:"accountNumber"`
	OrderID       string          `json:"orderId"`
	CreatedAt     time.Time       `json:"createdAt"`
}

type CreatePaymentRequest struct {
	Amount        decimal.Decimal `json:"paymentAmount" validate:"gte=1,money"`
	Method        string          `json:"paymentMethod" validate:"required"`
	Detail        string          `json:"paymentDetail" validate:"required"`
	AccountNumber *string         `json:"accountNumber" validate:"omitempty,max=50"`
}

type PaymentResponse struct {
	ID            string          `json:"paymentId"`
	PaymentDate   string          `json:"paymentDate"`
	Amount        decimal.Decimal `json:"paymentAmount"`
	Method        string          `json:"paymentMethod"`
	Detail        string          `json:"paymentDetail"`
	AccountNumber *string         `json:"accountNumber"`
}

func NewPaymentResponse(p *Payment) *PaymentResponse {
	return &PaymentResponse{
		ID:            p.ID,
		PaymentDate:   p.PaymentDate,
		Amount:        p.Amount,
		Method:        p.Method,
		Detail:        p.Detail,
		AccountNumber: p.AccountNumber,
	}
}

type PaymentRepository interface {
	Create(ctx context.Context, payment *Payment) error
	FindByOrderID(ctx context.Context, orderID string) ([]*Payment, error)
}

type PaymentService interface {
	Create(ctx context.Context, userID, orderID string, req CreatePaymentRequest) (*PaymentResponse, error)
}
