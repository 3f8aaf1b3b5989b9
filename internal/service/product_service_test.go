package service

import (
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"instudio/internal/domain"
	"instudio/pkg/cache"
	"instudio/pkg/logger"
)

type ProductServiceSuite struct {
	ServiceSuite
	admin string
}

func TestProductServiceSuite(t *testing.T) {
	suite.Run(t, new(ProductServiceSuite))
}

func (s *ProductServiceSuite) SetupTest() {
	s.ServiceSuite.SetupTest()
	s.admin = s.register("admin1", domain.RoleAdmin)
}

func (s *ProductServiceSuite) TestCreateSetsActiveStatus() {
	p := s.createProduct(s.admin, "Kitchen Set A")
	s.Equal(domain.StatusActive, p.Status)
	s.Equal(s.admin, p.UserID)
}

func (s *ProductServiceSuite) TestCreateRequiresKnownUser() {
	_, err := s.products.Create(s.ctx, "missing", domain.CreateProductRequest{Name: "X"})
	s.ErrorIs(err, domain.ErrNotFound)
	s.EqualError(err, msgUserNotFound)
}

func (s *ProductServiceSuite) TestActiveCustomerMayManageProducts() {
	customer := s.register("carol", domain.RoleCustomer)
	s.createProduct(customer, "Wardrobe")
}

func (s *ProductServiceSuite) TestInactiveNonAdminIsForbidden() {
	customer := s.register("carol", domain.RoleCustomer)
	s.deactivate(customer)

	_, err := s.products.Create(s.ctx, customer, domain.CreateProductRequest{Name: "Wardrobe"})
	s.ErrorIs(err, domain.ErrForbidden)
}

func (s *ProductServiceSuite) TestInactiveAdminStillPasses() {
	s.deactivate(s.admin)
	s.createProduct(s.admin, "Wardrobe")
}

func (s *ProductServiceSuite) TestDuplicateNameConflicts() {
	s.createProduct(s.admin, "Wardrobe")
	_, err := s.products.Create(s.ctx, s.admin, domain.CreateProductRequest{Name: "Wardrobe"})
	s.ErrorIs(err, domain.ErrConflict)
}

func (s *ProductServiceSuite) TestUpdateAppliesOnlySuppliedFields() {
	p := s.createProduct(s.admin, "Wardrobe")
	cost := decimal.NewFromInt(250)

	updated, err := s.products.Update(s.ctx, p.ID, s.admin, domain.UpdateProductRequest{CostEstimation: &cost})
	s.Require().NoError(err)
	s.Equal("Wardrobe", updated.Name)
	s.Equal("standard", updated.Model)
	s.True(updated.CostEstimation.Equal(cost))
}

func (s *ProductServiceSuite) TestUpdateUnknownProduct() {
	name := "x"
	_, err := s.products.Update(s.ctx, "missing", s.admin, domain.UpdateProductRequest{Name: &name})
	s.EqualError(err, msgProductNotFound)
}

func (s *ProductServiceSuite) TestSoftDeleteHidesFromListsOnly() {
	keep := s.createProduct(s.admin, "Keep")
	gone := s.createProduct(s.admin, "Gone")

	s.Require().NoError(s.products.Delete(s.ctx, gone.ID, s.admin))

	list, err := s.products.GetList(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(list, 1)
	s.Equal(keep.ID, list[0].ID)

	page, err := s.products.GetByPage(s.ctx, 0, 10)
	s.Require().NoError(err)
	s.Len(page.Items, 1)

	got, err := s.products.Get(s.ctx, gone.ID)
	s.Require().NoError(err)
	s.Equal(domain.StatusInactive, got.Status)
}

func (s *ProductServiceSuite) TestEmptyListSignalsEmptyResult() {
	_, err := s.products.GetList(s.ctx)
	s.ErrorIs(err, domain.ErrEmptyResult)
}

func (s *ProductServiceSuite) TestPagingFifteenProducts() {
	for i := 1; i <= 15; i++ {
		s.createProduct(s.admin, fmt.Sprintf("Product %02d", i))
	}

	first, err := s.products.GetByPage(s.ctx, 0, 10)
	s.Require().NoError(err)
	s.Len(first.Items, 10)
	s.Equal(&domain.Paging{Size: 10, TotalPage: 2, CurrentPage: 0}, first.Paging())

	second, err := s.products.GetByPage(s.ctx, 1, 10)
	s.Require().NoError(err)
	s.Len(second.Items, 5)
	s.Equal(1, second.Paging().CurrentPage)

	_, err = s.products.GetByPage(s.ctx, 2, 10)
	s.ErrorIs(err, domain.ErrEmptyResult)

	_, err = s.products.GetByPage(s.ctx, -1, 10)
	s.ErrorIs(err, domain.ErrValidation)

	_, err = s.products.GetByPage(s.ctx, 1<<62, 2)
	s.ErrorIs(err, domain.ErrValidation)
}

func (s *ProductServiceSuite) TestCachedGetIsInvalidatedOnUpdate() {
	c := cache.NewMemoryCache()
	cached := NewCachedProductService(s.products, c, cache.NewCacheManager(c, logger.NewNop()), logger.NewNop())

	p := s.createProduct(s.admin, "Wardrobe")
	first, err := cached.Get(s.ctx, p.ID)
	s.Require().NoError(err)
	s.Equal("Wardrobe", first.Name)

	exists, _ := c.Exists(s.ctx, cache.ProductCacheKey(p.ID))
	s.True(exists)

	name := "Wardrobe XL"
	_, err = cached.Update(s.ctx, p.ID, s.admin, domain.UpdateProductRequest{Name: &name})
	s.Require().NoError(err)

	second, err := cached.Get(s.ctx, p.ID)
	s.Require().NoError(err)
	s.Equal("Wardrobe XL", second.Name)

	_, err = cached.Get(s.ctx, "missing")
	s.ErrorIs(err, domain.ErrNotFound)
}
