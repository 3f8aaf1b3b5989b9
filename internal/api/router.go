package api

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"instudio/internal/api/middleware"
	"instudio/internal/domain"
	"instudio/pkg/logger"
)

// Services groups what the handlers serve.
type Services struct {
	Auth         domain.AuthService
	Users        domain.UserService
	Products     domain.ProductService
	Images       domain.ImageService
	Orders       domain.OrderService
	OrderDetails domain.OrderDetailService
	Payments     domain.PaymentService
	AuditLogs    domain.AuditLogService
}

// NewRouter registers every route on one mux and wraps it with the request
// middlewares.
func NewRouter(svc Services, tokens domain.TokenManager, log logger.Logger, probes ...Probe) http.Handler {
	mux := http.NewServeMux()
	auth := middleware.NewAuthenticator(tokens, log)

	NewAuthHandler(svc.Auth, log).RegisterRoutes(mux, auth)
	NewUserHandler(svc.Users, log).RegisterRoutes(mux, auth)
	NewProductHandler(svc.Products, log).RegisterRoutes(mux, auth)
	NewImageHandler(svc.Images, log).RegisterRoutes(mux, auth)
	NewOrderHandler(svc.Orders, svc.OrderDetails, svc.Payments, log).RegisterRoutes(mux, auth)
	NewAuditLogHandler(svc.AuditLogs, log).RegisterRoutes(mux, auth)
	NewHealthHandler(log, probes...).RegisterRoutes(mux)

	mux.Handle("GET /metrics", promhttp.Handler())

	return middleware.Chain(mux,
		middleware.RequestID,
		middleware.Logging(log),
		middleware.Tracing,
		middleware.Metrics,
	)
}
