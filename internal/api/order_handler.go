package api

import (
	"net/http"

	"instudio/internal/api/middleware"
	"instudio/internal/domain"
	"instudio/pkg/logger"
)

type OrderHandler struct {
	orders   domain.OrderService
	details  domain.OrderDetailService
	payments domain.PaymentService
	logger   logger.Logger
}

func NewOrderHandler(orders domain.OrderService, details domain.OrderDetailService, payments domain.PaymentService, logger logger.Logger) *OrderHandler {
	return &OrderHandler{
		orders:   orders,
		details:  details,
		payments: payments,
		logger:   logger,
	}
}

func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, err := actingUser(r)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	var req domain.CreateOrderRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	order, err := h.orders.Create(r.Context(), userID, req)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeData(w, http.StatusOK, order)
}

func (h *OrderHandler) GetByUser(w http.ResponseWriter, r *http.Request) {
	userID, err := actingUser(r)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	orders, err := h.orders.GetOrderByUser(r.Context(), userID)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeData(w, http.StatusOK, orders)
}

func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, err := actingUser(r)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	order, err := h.orders.Get(r.Context(), userID, r.PathValue("orderId"))
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeData(w, http.StatusOK, order)
}

func (h *OrderHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	userID, err := actingUser(r)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	orders, err := h.orders.GetOrders(r.Context(), userID)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeData(w, http.StatusOK, orders)
}

func (h *OrderHandler) GetByPage(w http.ResponseWriter, r *http.Request) {
	userID, err := actingUser(r)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	page, size, err := pageParams(r)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	result, err := h.orders.GetOrdersByPage(r.Context(), userID, page, size)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writePage(w, result)
}

func (h *OrderHandler) AddDetail(w http.ResponseWriter, r *http.Request) {
	userID, err := actingUser(r)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	var req domain.CreateOrderDetailRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	order, err := h.details.Create(r.Context(), userID, r.PathValue("orderId"), req)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeData(w, http.StatusOK, order)
}

func (h *OrderHandler) Pay(w http.ResponseWriter, r *http.Request) {
	userID, err := actingUser(r)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	var req domain.CreatePaymentRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	payment, err := h.payments.Create(r.Context(), userID, r.PathValue("orderId"), req)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeData(w, http.StatusOK, payment)
}

func (h *OrderHandler) RegisterRoutes(mux *http.ServeMux, auth *middleware.Authenticator) {
	mux.Handle("POST /api/orders/users/{userId}", auth.Require(h.Create))
	mux.Handle("GET /api/orders/users/{userId}", auth.Require(h.GetByUser))
	mux.Handle("GET /api/orders/{orderId}/users/{userId}", auth.Require(h.Get))
	mux.Handle("GET /api/orders/all/users/{userId}", auth.Require(h.GetAll))
	mux.Handle("GET /api/orders/pageable/users/{userId}", auth.Require(h.GetByPage))
	mux.Handle("POST /api/orders/{orderId}/users/{userId}", auth.Require(h.AddDetail))
	mux.Handle("POST /api/payments/orders/{orderId}/users/{userId}", auth.Require(h.Pay))
}
