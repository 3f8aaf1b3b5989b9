package service

import (
	"context"
	"fmt"

	"instudio/internal/domain"
	"instudio/pkg/logger"
)

type ProductService struct {
	base
}

func NewProductService(uow domain.UnitOfWork, validate domain.Validator, logger logger.Logger, opts ...Option) *ProductService {
	return &ProductService{base: newBase(uow, validate, logger, opts)}
}

func (s *ProductService) GetList(ctx context.Context) ([]*domain.ProductResponse, error) {
	var products []*domain.Product
	err := s.uow.ReadOnly(ctx, func(ctx context.Context, repos domain.Repositories) error {
		var err error
		products, err = repos.Products().FindActive(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return project(products, domain.NewProductResponse)
}

// Get is a direct lookup: inactive products are returned too.
func (s *ProductService) Get(ctx context.Context, id string) (*domain.ProductResponse, error) {
	var product *domain.Product
	err := s.uow.ReadOnly(ctx, func(ctx context.Context, repos domain.Repositories) error {
		var err error
		product, err = loadProduct(ctx, repos, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return domain.NewProductResponse(product), nil
}

func (s *ProductService) GetByPage(ctx context.Context, page, size int) (*domain.Page[*domain.ProductResponse], error) {
	if err := domain.ValidatePage(page, size); err != nil {
		return nil, err
	}

	var (
		products []*domain.Product
		total    int64
	)
	err := s.uow.ReadOnly(ctx, func(ctx context.Context, repos domain.Repositories) error {
		var err error
		products, total, err = repos.Products().FindActivePage(ctx, page, size)
		return err
	})
	if err != nil {
		return nil, err
	}
	return buildPage(products, page, size, total, domain.NewProductResponse)
}

func (s *ProductService) Create(ctx context.Context, userID string, req domain.CreateProductRequest) (*domain.ProductResponse, error) {
	var product *domain.Product
	err := s.uow.WithinTx(ctx, func(ctx context.Context, repos domain.Repositories) error {
		if _, err := s.authorize(ctx, repos, userID, domain.CanManageProducts); err != nil {
			return err
		}
		if err := s.validate.Validate(&req); err != nil {
			return err
		}
		if err := ensureProductNameFree(ctx, repos, req.Name, ""); err != nil {
			return err
		}

		product = &domain.Product{
			ID:             s.newID(),
			Name:           req.Name,
			Model:          req.Model,
			CostEstimation: req.CostEstimation,
			Status:         domain.StatusActive,
			UserID:         userID,
		}
		if err := repos.Products().Create(ctx, product); err != nil {
			return err
		}
		return s.audit(ctx, repos, domain.EntityTypeProduct, product.ID, domain.ActionTypeCreate, userID,
			fmt.Sprintf("product %q created", product.Name))
	})
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "Product created", map[string]interface{}{"product_id": product.ID, "user_id": userID})
	return domain.NewProductResponse(product), nil
}

func (s *ProductService) Update(ctx context.Context, productID, userID string, req domain.UpdateProductRequest) (*domain.ProductResponse, error) {
	var product *domain.Product
	err := s.uow.WithinTx(ctx, func(ctx context.Context, repos domain.Repositories) error {
		if _, err := s.authorize(ctx, repos, userID, domain.CanManageProducts); err != nil {
			return err
		}
		if err := s.validate.Validate(&req); err != nil {
			return err
		}

		var err error
		if product, err = loadProduct(ctx, repos, productID); err != nil {
			return err
		}

		if req.Name != nil && *req.Name != product.Name {
			if err := ensureProductNameFree(ctx, repos, *req.Name, product.ID); err != nil {
				return err
			}
			product.Name = *req.Name
		}
		if req.Model != nil {
			product.Model = *req.Model
		}
		if req.CostEstimation != nil {
			product.CostEstimation = *req.CostEstimation
		}

		if err := repos.Products().Update(ctx, product); err != nil {
			return err
		}
		return s.audit(ctx, repos, domain.EntityTypeProduct, product.ID, domain.ActionTypeUpdate, userID, "")
	})
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "Product updated", map[string]interface{}{"product_id": productID, "user_id": userID})
	return domain.NewProductResponse(product), nil
}

func (s *ProductService) Delete(ctx context.Context, productID, userID string) error {
	err := s.uow.WithinTx(ctx, func(ctx context.Context, repos domain.Repositories) error {
		if _, err := s.authorize(ctx, repos, userID, domain.CanManageProducts); err != nil {
			return err
		}
		product, err := loadProduct(ctx, repos, productID)
		if err != nil {
			return err
		}
		product.Status = domain.StatusInactive
		if err := repos.Products().Update(ctx, product); err != nil {
			return err
		}
		return s.audit(ctx, repos, domain.EntityTypeProduct, product.ID, domain.ActionTypeDelete, userID, "")
	})
	if err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "Product deactivated", map[string]interface{}{"product_id": productID, "user_id": userID})
	return nil
}

func loadProduct(ctx context.Context, repos domain.Repositories, id string) (*domain.Product, error) {
	product, err := repos.Products().FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.NewNotFoundError(msgProductNotFound)
	}
	return product, nil
}

// ensureProductNameFree fails with Conflict when another product, active or
// not, already carries name.
func ensureProductNameFree(ctx context.Context, repos domain.Repositories, name, selfID string) error {
	existing, err := repos.Products().FindByName(ctx, name)
	if err != nil {
		return err
	}
	if existing != nil && existing.ID != selfID {
		return domain.NewConflictError(domain.MsgProductNameTaken)
	}
	return nil
}
