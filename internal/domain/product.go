package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

const MsgProductNameTaken = "Product name has been already used."

type Product struct {
	ID             string          `json:"productId"`
	Name           string          `json:"productName"`
	Model          string          `json:"productModel"`
	CostEstimation decimal.Decimal `json:"costEstimation"`
	Status         Status          `json:"productStatus"`
	UserID         string          `json:"userId"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
}

type CreateProductRequest struct {
	Name           string          `json:"productName" validate:"required,max=100"`
	Model          string          `json:"productModel" validate:"max=100"`
	CostEstimation decimal.Decimal `json:"costEstimation" validate:"gte=0,money"`
}

type UpdateProductRequest struct {
	Name           *string          `json:"productName" validate:"omitempty,min=1,max=100"`
	Model          *string          `json:"productModel" validate:"omitempty,max=100"`
	CostEstimation *decimal.Decimal `json:"costEstimation" validate:"omitempty,gte=0,money"`
}

type ProductResponse struct {
	ID             string          `json:"productId"`
	Name           string          `json:"productName"`
	Model          string          `json:"productModel"`
	CostEstimation decimal.Decimal `json:"costEstimation"`
	Status         Status          `json:"productStatus"`
	UserID         string          `json:"userId"`
}

func NewProductResponse(p *Product) *ProductResponse {
	return &ProductResponse{
		ID:             p.ID,
		Name:           p.Name,
		Model:          p.Model,
		CostEstimation: p.CostEstimation,
		Status:         p.Status,
		UserID:         p.UserID,
	}
}

type ProductRepository interface {
	FindByID(ctx context.Context, id string) (*Product, error)
	FindByName(ctx context.Context, name string) (*Product, error)
	FindActive(ctx context.Context) ([]*Product, error)
	FindActivePage(ctx context.Context, page, size int) ([]*Product, int64, error)
	Create(ctx context.Context, product *Product) error
	Update(ctx context.Context, product *Product) error
}

type ProductService interface {
	GetList(ctx context.Context) ([]*ProductResponse, error)
	Get(ctx context.Context, id string) (*ProductResponse, error)
	Create(ctx context.Context, userID string, req CreateProductRequest) (*ProductResponse, error)
	Update(ctx context.Context, productID, userID string, req UpdateProductRequest) (*ProductResponse, error)
	Delete(ctx context.Context, productID, userID string) error
	GetByPage(ctx context.Context, page, size int) (*Page[*ProductResponse], error)
}
