package api

import (
	"net/http"

	"instudio/internal/api/middleware"
	"instudio/internal/domain"
	"instudio/pkg/logger"
)

type ProductHandler struct {
	service domain.ProductService
	logger  logger.Logger
}

func NewProductHandler(service domain.ProductService, logger logger.Logger) *ProductHandler {
	return &ProductHandler{
		service: service,
		logger:  logger,
	}
}

func (h *ProductHandler) GetList(w http.ResponseWriter, r *http.Request) {
	products, err := h.service.GetList(r.Context())
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeData(w, http.StatusOK, products)
}

func (h *ProductHandler) GetByPage(w http.ResponseWriter, r *http.Request) {
	page, size, err := pageParams(r)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	result, err := h.service.GetByPage(r.Context(), page, size)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writePage(w, result)
}

func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	product, err := h.service.Get(r.Context(), r.PathValue("productId"))
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeData(w, http.StatusOK, product)
}

func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, err := actingUser(r)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	var req domain.CreateProductRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	product, err := h.service.Create(r.Context(), userID, req)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeData(w, http.StatusOK, product)
}

func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, err := actingUser(r)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	var req domain.UpdateProductRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	product, err := h.service.Update(r.Context(), r.PathValue("productId"), userID, req)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeData(w, http.StatusOK, product)
}

func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, err := actingUser(r)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	if err := h.service.Delete(r.Context(), r.PathValue("productId"), userID); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeData(w, http.StatusOK, deletedMessage)
}

func (h *ProductHandler) RegisterRoutes(mux *http.ServeMux, auth *middleware.Authenticator) {
	mux.Handle("GET /api/products/list", auth.Require(h.GetList))
	mux.Handle("GET /api/products", auth.Require(h.GetByPage))
	mux.Handle("GET /api/products/{productId}", auth.Require(h.Get))
	mux.Handle("POST /api/products/users/{userId}", auth.Require(h.Create))
	mux.Handle("PUT /api/products/{productId}/users/{userId}", auth.Require(h.Update))
	mux.Handle("PATCH /api/products/{productId}/users/{userId}", auth.Require(h.Delete))
}
