package domain

import (
	"context"
	"time"
)

type Image struct {
	ID        string    `json:"imageId"`
	Alt       string    `json:"imageAlt"`
	Path      string    `json:"imagePath"`
	Status    Status    `json:"imageStatus"`
	ProductID string    `json:"productId"`
	UserID    string    `json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type UploadImageRequest struct {
	Alt         string `json:"imageAlt" validate:"max=100"`
	Path        string `json:"imagePath" validate:"required,max=250"`
	ProductName string `json:"productName" validate:"max=100"`
}

type ImageResponse struct {
	ID        string `json:"imageId"`
	Alt       string `json:"imageAlt"`
	Path      string `json:"imagePath"`
	Status    Status `json:"imageStatus"`
	ProductID string `json:"productId"`
	UserID    string `json:"userId"`
}

func NewImageResponse(i *Image) *ImageResponse {
	return &ImageResponse{
		ID:        i.ID,
		Alt:       i.Alt,
		Path:      i.Path,
		Status:    i.Status,
		ProductID: i.ProductID,
		UserID:    i.UserID,
	}
}

type ImageRepository interface {
	FindByID(ctx context.Context, id string) (*Image, error)
	FindActive(ctx context.Context) ([]*Image, error)
	FindActivePage(ctx context.Context, page, size int) ([]*Image, int64, error)
	Create(ctx context.Context, image *Image) error
	Update(ctx context.Context, image *Image) error
}

type ImageService interface {
	Upload(ctx context.Context, userID string, req UploadImageRequest) (*ImageResponse, error)
	Delete(ctx context.Context, imageID, userID string) error
	Get(ctx context.Context, imageID string) (*ImageResponse, error)
	GetList(ctx context.Context) ([]*ImageResponse, error)
	GetByPage(ctx context.Context, page, size int) (*Page[*ImageResponse], error)
}
