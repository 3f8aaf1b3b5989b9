package service

import (
	"context"

	"instudio/internal/domain"
	"instudio/pkg/logger"
)

type ImageService struct {
	base
}

func NewImageService(uow domain.UnitOfWork, validate domain.Validator, logger logger.Logger, opts ...Option) *ImageService {
	return &ImageService{base: newBase(uow, validate, logger, opts)}
}

func (s *ImageService) Upload(ctx context.Context, userID string, req domain.UploadImageRequest) (*domain.ImageResponse, error) {
	var image *domain.Image
	err := s.uow.WithinTx(ctx, func(ctx context.Context, repos domain.Repositories) error {
		if _, err := s.authorize(ctx, repos, userID, domain.CanUploadImage); err != nil {
			return err
		}
		if err := s.validate.Validate(&req); err != nil {
			return err
		}

		product, err := repos.Products().FindByName(ctx, req.ProductName)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.NewNotFoundError(msgProductNotFound)
		}

		image = &domain.Image{
			ID:        s.newID(),
			Alt:       req.Alt,
			Path:      req.Path,
			Status:    domain.StatusActive,
			ProductID: product.ID,
			UserID:    userID,
		}
		if err := repos.Images().Create(ctx, image); err != nil {
			return err
		}
		return s.audit(ctx, repos, domain.EntityTypeImage, image.ID, domain.ActionTypeCreate, userID, "for product "+product.ID)
	})
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "Image uploaded", map[string]interface{}{"image_id": image.ID, "product_id": image.ProductID})
	return domain.NewImageResponse(image), nil
}

func (s *ImageService) Delete(ctx context.Context, imageID, userID string) error {
	err := s.uow.WithinTx(ctx, func(ctx context.Context, repos domain.Repositories) error {
		if _, err := s.authorize(ctx, repos, userID, domain.CanDeleteImage); err != nil {
			return err
		}
		image, err := loadImage(ctx, repos, imageID)
		if err != nil {
			return err
		}
		image.Status = domain.StatusInactive
		if err := repos.Images().Update(ctx, image); err != nil {
			return err
		}
		return s.audit(ctx, repos, domain.EntityTypeImage, image.ID, domain.ActionTypeDelete, userID, "")
	})
	if err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "Image deactivated", map[string]interface{}{"image_id": imageID, "user_id": userID})
	return nil
}

func (s *ImageService) Get(ctx context.Context, imageID string) (*domain.ImageResponse, error) {
	var image *domain.Image
	err := s.uow.ReadOnly(ctx, func(ctx context.Context, repos domain.Repositories) error {
		var err error
		image, err = loadImage(ctx, repos, imageID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return domain.NewImageResponse(image), nil
}

func (s *ImageService) GetList(ctx context.Context) ([]*domain.ImageResponse, error) {
	var images []*domain.Image
	err := s.uow.ReadOnly(ctx, func(ctx context.Context, repos domain.Repositories) error {
		var err error
		images, err = repos.Images().FindActive(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return project(images, domain.NewImageResponse)
}

func (s *ImageService) GetByPage(ctx context.Context, page, size int) (*domain.Page[*domain.ImageResponse], error) {
	if err := domain.ValidatePage(page, size); err != nil {
		return nil, err
	}

	var (
		images []*domain.Image
		total  int64
	)
	err := s.uow.ReadOnly(ctx, func(ctx context.Context, repos domain.Repositories) error {
		var err error
		images, total, err = repos.Images().FindActivePage(ctx, page, size)
		return err
	})
	if err != nil {
		return nil, err
	}
	return buildPage(images, page, size, total, domain.NewImageResponse)
}

func loadImage(ctx context.Context, repos domain.Repositories, id string) (*domain.Image, error) {
	image, err := repos.Images().FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if image == nil {
		return nil, domain.NewNotFoundError(msgImageNotFound)
	}
	return image, nil
}
