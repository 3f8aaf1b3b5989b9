package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// OrderCodePrefix precedes the sequence number in an order code, e.g. TR12.
const OrderCodePrefix = "TR"

type Order struct {
	ID            string          `json:"orderId"`
	Code          string          `json:"orderCode"`
	OrderDate     string          `json:"orderDate"`
	VisitSchedule string          `json:"visitSchedule"`
	VisitAddress  string          `json:"visitAddress"`
	Amount        decimal.Decimal `json:"orderAmount"`
	Status        OrderStatus     `json:"orderStatus"`
	UserID        string          `json:"userId"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

type CreateOrderRequest struct {
	VisitSchedule string `json:"visitSchedule" validate:"required"`
	VisitAddress  string `json:"visitAddress" validate:"required,max=200"`
}

type OrderResponse struct {
	ID            string                 `json:"orderId"`
	Code          string                 `json:"orderCode"`
	OrderDate     string                 `json:"orderDate"`
	VisitSchedule string                 `json:"visitSchedule"`
	VisitAddress  string                 `json:"visitAddress"`
	Amount        decimal.Decimal        `json:"orderAmount"`
	Status        OrderStatus            `json:"orderStatus"`
	UserID        string                 `json:"userId"`
	Details       []*OrderDetailResponse `json:"orderDetailList"`
	Payments      []*PaymentResponse     `json:"paymentList"`
}

// NewOrderResponse projects an order together with its children. The
// children are looked up by order id; they never point back at the order.
func NewOrderResponse(o *Order, details []*OrderDetail, payments []*Payment) *OrderResponse {
	resp := &OrderResponse{
		ID:            o.ID,
		Code:          o.Code,
		OrderDate:     o.OrderDate,
		VisitSchedule: o.VisitSchedule,
		VisitAddress:  o.VisitAddress,
		Amount:        o.Amount,
		Status:        o.Status,
		UserID:        o.UserID,
		Details:       make([]*OrderDetailResponse, 0, len(details)),
		Payments:      make([]*PaymentResponse, 0, len(payments)),
	}
	for _, d := range details {
		resp.Details = append(resp.Details, NewOrderDetailResponse(d))
	}
	for _, p := range payments {
		resp.Payments = append(resp.Payments, NewPaymentResponse(p))
	}
	return resp
}

type OrderRepository interface {
	FindByID(ctx context.Context, id string) (*Order, error)
	FindByUserID(ctx context.Context, userID string) ([]*Order, error)
	FindAll(ctx context.Context) ([]*Order, error)
	FindPage(ctx context.Context, page, size int) ([]*Order, int64, error)
	// NextCode atomically advances the order-code sequence and returns the new value.
	NextCode(ctx context.Context) (int64, error)
	Create(ctx context.Context, order *Order) error
	// AddAmount adds delta to the stored amount in one statement and returns the result.
	AddAmount(ctx context.Context, id string, delta decimal.Decimal) (decimal.Decimal, error)
}

type OrderService interface {
	Create(ctx context.Context, userID string, req CreateOrderRequest) (*OrderResponse, error)
	GetOrderByUser(ctx context.Context, userID string) ([]*OrderResponse, error)
	Get(ctx context.Context, userID, orderID string) (*OrderResponse, error)
	GetOrders(ctx context.Context, userID string) ([]*OrderResponse, error)
	GetOrdersByPage(ctx context.Context, userID string, page, size int) (*Page[*OrderResponse], error)
}
