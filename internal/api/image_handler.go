package api

import (
	"net/http"

	"instudio/internal/api/middleware"
	"instudio/internal/domain"
	"instudio/pkg/logger"
)

type ImageHandler struct {
	service domain.ImageService
	logger  logger.Logger
}

func NewImageHandler(service domain.ImageService, logger logger.Logger) *ImageHandler {
	return &ImageHandler{
		service: service,
		logger:  logger,
	}
}

func (h *ImageHandler) Upload(w http.ResponseWriter, r *http.Request) {
	userID, err := actingUser(r)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	var req domain.UploadImageRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	image, err := h.service.Upload(r.Context(), userID, req)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeData(w, http.StatusOK, image)
}

func (h *ImageHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, err := actingUser(r)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	if err := h.service.Delete(r.Context(), r.PathValue("imageId"), userID); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeData(w, http.StatusOK, deletedMessage)
}

func (h *ImageHandler) Get(w http.ResponseWriter, r *http.Request) {
	image, err := h.service.Get(r.Context(), r.PathValue("imageId"))
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeData(w, http.StatusOK, image)
}

func (h *ImageHandler) GetList(w http.ResponseWriter, r *http.Request) {
	images, err := h.service.GetList(r.Context())
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeData(w, http.StatusOK, images)
}

func (h *ImageHandler) GetByPage(w http.ResponseWriter, r *http.Request) {
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

func (h *ImageHandler) RegisterRoutes(mux *http.ServeMux, auth *middleware.Authenticator) {
	mux.Handle("POST /api/images/users/{userId}", auth.Require(h.Upload))
	mux.Handle("PATCH /api/images/{imageId}/users/{userId}", auth.Require(h.Delete))
	mux.Handle("GET /api/images/list", auth.Require(h.GetList))
	mux.Handle("GET /api/images/{imageId}", auth.Require(h.Get))
	mux.Handle("GET /api/images", auth.Require(h.GetByPage))
}
