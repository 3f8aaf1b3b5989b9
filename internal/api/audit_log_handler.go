package api

import (
	"net/http"

	"instudio/internal/api/middleware"
	"instudio/internal/domain"
	"instudio/pkg/logger"
)

type AuditLogHandler struct {
	service domain.AuditLogService
	logger  logger.Logger
}

func NewAuditLogHandler(service domain.AuditLogService, logger logger.Logger) *AuditLogHandler {
	return &AuditLogHandler{
		service: service,
		logger:  logger,
	}
}

func (h *AuditLogHandler) GetAllLogs(w http.ResponseWriter, r *http.Request) {
	claims, _ := middleware.ClaimsFromContext(r.Context())

	page, size, err := pageParams(r)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	logs, err := h.service.GetAllLogs(r.Context(), claims.UserID, page, size)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writePage(w, logs)
}

func (h *AuditLogHandler) GetEntityLogs(w http.ResponseWriter, r *http.Request) {
	claims, _ := middleware.ClaimsFromContext(r.Context())
	entityType := domain.EntityType(r.PathValue("entityType"))

	logs, err := h.service.GetEntityLogs(r.Context(), claims.UserID, entityType, r.PathValue("entityId"))
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeData(w, http.StatusOK, logs)
}

func (h *AuditLogHandler) RegisterRoutes(mux *http.ServeMux, auth *middleware.Authenticator) {
	mux.Handle("GET /api/audit-logs", auth.Require(h.GetAllLogs))
	mux.Handle("GET /api/audit-logs/{entityType}/{entityId}", auth.Require(h.GetEntityLogs))
}
