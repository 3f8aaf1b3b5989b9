package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type OrderDetail struct {
	ID             string          `json:"orderDetId"`
	TimeEstimation int64           `json:"timeEstimation"`
	Subtotal       decimal.Decimal `json:"subtotal"`
	ProductSize    float64         `json:"productSize"`
	ProductTheme   string          `json:"productTheme"`
	OrderID        string          `json:"orderId"`
	ProductID      *string         `json:"productId"`
	CreatedAt      time.Time       `json:"createdAt"`
}

type CreateOrderDetailRequest struct {
	ProductName    string          `json:"productName" validate:"required"`
	ProductSize    float64         `json:"productSize" validate:"gte=1"`
	ProductTheme   string          `json:"productTheme" validate:"required"`
	ProductCost    decimal.Decimal `json:"productCost" validate:"gte=1,money"`
	TimeEstimation int64           `json:"timeEstimation" validate:"gte=1"`
}

type OrderDetailResponse struct {
	ID             string          `json:"orderDetId"`
	ProductSize    float64         `json:"productSize"`
	ProductTheme   string          `json:"productTheme"`
	TimeEstimation int64           `json:"timeEstimation"`
	Subtotal       decimal.Decimal `json:"subtotal"`
	ProductID      *string         `json:"productId"`
}

func NewOrderDetailResponse(d *OrderDetail) *OrderDetailResponse {
	return &OrderDetailResponse{
		ID:             d.ID,
		ProductSize:    d.ProductSize,
		ProductTheme:   d.ProductTheme,
		TimeEstimation: d.TimeEstimation,
		Subtotal:       d.Subtotal,
		ProductID:      d.ProductID,
	}
}

type OrderDetailRepository interface {
	Create(ctx context.Context, detail *OrderDetail) error
	FindByOrderID(ctx context.Context, orderID string) ([]*OrderDetail, error)
}

type OrderDetailService interface {
	Create(ctx context.Context, userID, orderID string, req CreateOrderDetailRequest) (*OrderResponse, error)
}
