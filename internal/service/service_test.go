package service

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"

	"instudio/internal/domain"
	"instudio/internal/repository/memory"
	"instudio/pkg/cache"
	"instudio/pkg/logger"
	"instudio/pkg/password"
	"instudio/pkg/token"
	"instudio/pkg/validation"
)

var fixedNow = time.Date(2024, 3, 9, 14, 5, 7, 0, time.UTC)

type ServiceSuite struct {
	suite.Suite
	ctx    context.Context
	store  *memory.Store
	tokens *token.Manager
	seq    atomic.Int64

	auth         *AuthService
	users        *UserService
	products     *ProductService
	images       *ImageService
	orders       *OrderService
	orderDetails *OrderDetailService
	payments     *PaymentService
	auditLogs    *AuditLogService
}

func (s *ServiceSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = memory.NewStore()
	s.seq.Store(0)

	log := logger.NewNop()
	v := validation.New()
	s.tokens = token.NewManager(token.Options{Secret: "test", Issuer: "instudio", TTL: time.Hour}, cache.NewMemoryCache())

	opts := []Option{
		WithClock(func() time.Time { return fixedNow }),
		WithIDGenerator(func() string {
			return fmt.Sprintf("id-%03d", s.seq.Add(1))
		}),
	}

	s.auth = NewAuthService(s.store, v, password.NewBcryptHasher(bcrypt.MinCost), s.tokens, log, opts...)
	s.users = NewUserService(s.store, v, log, opts...)
	s.products = NewProductService(s.store, v, log, opts...)
	s.images = NewImageService(s.store, v, log, opts...)
	s.orders = NewOrderService(s.store, v, log, opts...)
	s.orderDetails = NewOrderDetailService(s.store, v, log, opts...)
	s.payments = NewPaymentService(s.store, v, log, opts...)
	s.auditLogs = NewAuditLogService(s.store, log, opts...)
}

func (s *ServiceSuite) register(username string, role domain.Role) string {
	resp, err := s.auth.Register(s.ctx, domain.RegisterUserRequest{
		Username: username,
		Password: "secret1",
		Name:     "Test " + username,
		Role:     string(role),
	})
	s.Require().NoError(err)
	return resp.ID
}

func (s *ServiceSuite) deactivate(userID string) {
	s.Require().NoError(s.users.Delete(s.ctx, userID))
}

func (s *ServiceSuite) createProduct(userID, name string) *domain.ProductResponse {
	p, err := s.products.Create(s.ctx, userID, domain.CreateProductRequest{
		Name:           name,
		Model:          "standard",
		CostEstimation: decimal.NewFromInt(100),
	})
	s.Require().NoError(err)
	return p
}

func (s *ServiceSuite) createOrder(customerID string) *domain.OrderResponse {
	o, err := s.orders.Create(s.ctx, customerID, domain.CreateOrderRequest{
		VisitSchedule: "2024-03-10 09:00",
		VisitAddress:  "Jl. Sudirman 1",
	})
	s.Require().NoError(err)
	return o
}

func (s *ServiceSuite) addDetail(staffID, orderID string, cost int64) (*domain.OrderResponse, error) {
	return s.orderDetails.Create(s.ctx, staffID, orderID, domain.CreateOrderDetailRequest{
		ProductName:    "Kitchen Set A",
		ProductSize:    2,
		ProductTheme:   "minimalist",
		ProductCost:    decimal.NewFromInt(cost),
		TimeEstimation: 14,
	})
}
