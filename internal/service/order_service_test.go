package service

import (
	"strconv"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"instudio/internal/domain"
)

type OrderServiceSuite struct {
	ServiceSuite
	admin    string
	customer string
}

func TestOrderServiceSuite(t *testing.T) {
	suite.Run(t, new(OrderServiceSuite))
}

func (s *OrderServiceSuite) SetupTest() {
	s.ServiceSuite.SetupTest()
	s.admin = s.register("admin1", domain.RoleAdmin)
	s.customer = s.register("carol", domain.RoleCustomer)
}

func (s *OrderServiceSuite) TestCreateDefaults() {
	order := s.createOrder(s.customer)

	s.Equal("TR1", order.Code)
	s.True(order.Amount.IsZero())
	s.Equal(domain.OrderStatusOpen, order.Status)
	s.Equal("2024-03-09 14:05:07", order.OrderDate)
	s.Equal(s.customer, order.UserID)
	s.Empty(order.Details)
	s.Empty(order.Payments)
}

func (s *OrderServiceSuite) TestCodesFollowOrderCount() {
	for n := 1; n <= 3; n++ {
		order := s.createOrder(s.customer)
		s.Equal("TR"+strconv.Itoa(n), order.Code)
	}
}

func (s *OrderServiceSuite) TestCreateForbiddenForAdminAndInactive() {
	_, err := s.orders.Create(s.ctx, s.admin, domain.CreateOrderRequest{VisitSchedule: "x", VisitAddress: "y"})
	s.ErrorIs(err, domain.ErrForbidden)

	s.deactivate(s.customer)
	_, err = s.orders.Create(s.ctx, s.customer, domain.CreateOrderRequest{VisitSchedule: "x", VisitAddress: "y"})
	s.ErrorIs(err, domain.ErrForbidden)
}

func (s *OrderServiceSuite) TestFailedCreateDoesNotConsumeCode() {
	_, err := s.orders.Create(s.ctx, s.customer, domain.CreateOrderRequest{})
	s.ErrorIs(err, domain.ErrValidation)

	s.Equal("TR1", s.createOrder(s.customer).Code)
}

func (s *OrderServiceSuite) TestReadsRequireActiveUser() {
	order := s.createOrder(s.customer)
	other := s.register("dave1", domain.RoleCustomer)

	got, err := s.orders.Get(s.ctx, other, order.ID)
	s.Require().NoError(err)
	s.Equal(order.ID, got.ID)

	s.deactivate(other)
	_, err = s.orders.Get(s.ctx, other, order.ID)
	s.ErrorIs(err, domain.ErrForbidden)

	_, err = s.orders.Get(s.ctx, s.customer, "missing")
	s.EqualError(err, msgOrderNotFound)
}

func (s *OrderServiceSuite) TestListings() {
	_, err := s.orders.GetOrderByUser(s.ctx, s.customer)
	s.ErrorIs(err, domain.ErrEmptyResult)

	s.createOrder(s.customer)
	s.createOrder(s.customer)

	mine, err := s.orders.GetOrderByUser(s.ctx, s.customer)
	s.Require().NoError(err)
	s.Len(mine, 2)

	all, err := s.orders.GetOrders(s.ctx, s.admin)
	s.Require().NoError(err)
	s.Len(all, 2)

	page, err := s.orders.GetOrdersByPage(s.ctx, s.admin, 0, 1)
	s.Require().NoError(err)
	s.Len(page.Items, 1)
	s.Equal(2, page.TotalPages())
}

func (s *OrderServiceSuite) TestDetailsAccumulateAmount() {
	s.createProduct(s.admin, "Kitchen Set A")
	order := s.createOrder(s.customer)

	_, err := s.addDetail(s.admin, order.ID, 10)
	s.Require().NoError(err)
	resp, err := s.addDetail(s.admin, order.ID, 15)
	s.Require().NoError(err)

	s.True(resp.Amount.Equal(decimal.NewFromInt(25)))
	s.Len(resp.Details, 2)
	s.Require().NotNil(resp.Details[0].ProductID)
}

func (s *OrderServiceSuite) TestDetailsAccumulateInReverseOrder() {
	order := s.createOrder(s.customer)

	_, err := s.addDetail(s.admin, order.ID, 15)
	s.Require().NoError(err)
	resp, err := s.addDetail(s.admin, order.ID, 10)
	s.Require().NoError(err)

	s.True(resp.Amount.Equal(decimal.NewFromInt(25)))
}

func (s *OrderServiceSuite) TestDetailWithUnknownProductFlowsThrough() {
	order := s.createOrder(s.customer)

	resp, err := s.addDetail(s.admin, order.ID, 10)
	s.Require().NoError(err)
	s.Require().Len(resp.Details, 1)
	s.Nil(resp.Details[0].ProductID)
}

func (s *OrderServiceSuite) TestDetailForbiddenForCustomer() {
	order := s.createOrder(s.customer)

	_, err := s.addDetail(s.customer, order.ID, 10)
	s.ErrorIs(err, domain.ErrForbidden)

	_, err = s.addDetail(s.admin, "missing", 10)
	s.EqualError(err, msgOrderNotFound)
}

func (s *OrderServiceSuite) TestPaymentRules() {
	order := s.createOrder(s.customer)
	req := domain.CreatePaymentRequest{Amount: decimal.NewFromInt(5), Method: "transfer", Detail: "down payment"}

	payment, err := s.payments.Create(s.ctx, s.customer, order.ID, req)
	s.Require().NoError(err)
	s.Equal("2024-03-09 14:05:07", payment.PaymentDate)

	_, err = s.payments.Create(s.ctx, s.admin, order.ID, req)
	s.ErrorIs(err, domain.ErrForbidden)

	_, err = s.payments.Create(s.ctx, s.customer, "missing", req)
	s.ErrorIs(err, domain.ErrNotFound)

	got, err := s.orders.Get(s.ctx, s.customer, order.ID)
	s.Require().NoError(err)
	s.Len(got.Payments, 1)
	s.True(got.Amount.IsZero())
}

func (s *OrderServiceSuite) TestMoneyFinerThanCentsRejected() {
	order := s.createOrder(s.customer)

	_, err := s.orderDetails.Create(s.ctx, s.admin, order.ID, domain.CreateOrderDetailRequest{
		ProductName:    "Kitchen Set A",
		ProductSize:    2,
		ProductTheme:   "minimalist",
		ProductCost:    decimal.RequireFromString("10.005"),
		TimeEstimation: 14,
	})
	s.ErrorIs(err, domain.ErrValidation)

	_, err = s.payments.Create(s.ctx, s.customer, order.ID, domain.CreatePaymentRequest{
		Amount: decimal.RequireFromString("5.125"),
		Method: "transfer",
		Detail: "down payment",
	})
	s.ErrorIs(err, domain.ErrValidation)

	got, err := s.orders.Get(s.ctx, s.customer, order.ID)
	s.Require().NoError(err)
	s.True(got.Amount.IsZero())
	s.Empty(got.Details)
	s.Empty(got.Payments)
}

func (s *OrderServiceSuite) TestConcurrentCreatesAndDetails() {
	const n = 20

	var (
		wg    sync.WaitGroup
		mu    sync.Mutex
		codes = make(map[string]bool)
		ids   []string
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			o, err := s.orders.Create(s.ctx, s.customer, domain.CreateOrderRequest{
				VisitSchedule: "2024-03-10 09:00",
				VisitAddress:  "Jl. Sudirman 1",
			})
			if !s.NoError(err) {
				return
			}
			mu.Lock()
			codes[o.Code] = true
			ids = append(ids, o.ID)
			mu.Unlock()
		}()
	}
	wg.Wait()
	s.Require().Len(codes, n)
	for i := 1; i <= n; i++ {
		s.True(codes["TR"+strconv.Itoa(i)], "TR%d", i)
	}

	target := ids[0]
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.addDetail(s.admin, target, 1)
			s.NoError(err)
		}()
	}
	wg.Wait()

	got, err := s.orders.Get(s.ctx, s.customer, target)
	s.Require().NoError(err)
	s.Equal("20", got.Amount.String())
}

func (s *OrderServiceSuite) TestEndToEndScenario() {
	s.createProduct(s.admin, "Kitchen Set A")

	_, err := s.images.Upload(s.ctx, s.admin, domain.UploadImageRequest{
		Alt:         "front",
		Path:        "https://cdn.example.com/kitchen-a.jpg",
		ProductName: "Kitchen Set A",
	})
	s.Require().NoError(err)

	order := s.createOrder(s.customer)

	_, err = s.addDetail(s.admin, order.ID, 10_000_000)
	s.Require().NoError(err)

	_, err = s.payments.Create(s.ctx, s.customer, order.ID, domain.CreatePaymentRequest{
		Amount: decimal.NewFromInt(5_000_000),
		Method: "transfer",
		Detail: "down payment",
	})
	s.Require().NoError(err)

	got, err := s.orders.Get(s.ctx, s.customer, order.ID)
	s.Require().NoError(err)
	s.True(got.Amount.Equal(decimal.NewFromInt(10_000_000)))

	logs, err := s.auditLogs.GetEntityLogs(s.ctx, s.admin, domain.EntityTypeOrder, order.ID)
	s.Require().NoError(err)
	s.Len(logs, 1)
}
