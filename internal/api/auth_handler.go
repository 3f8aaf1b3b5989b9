package api

import (
	"net/http"

	"instudio/internal/api/middleware"
	"instudio/internal/domain"
	"instudio/pkg/logger"
)

type AuthHandler struct {
	service domain.AuthService
	logger  logger.Logger
}

func NewAuthHandler(service domain.AuthService, logger logger.Logger) *AuthHandler {
	return &AuthHandler{
		service: service,
		logger:  logger,
	}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req domain.RegisterUserRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	user, err := h.service.Register(r.Context(), req)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeData(w, http.StatusOK, user)
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req domain.LoginUserRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	token, err := h.service.Login(r.Context(), req)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeData(w, http.StatusOK, token)
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Logout(r.Context(), middleware.BearerToken(r)); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeData(w, http.StatusOK, "Logout success")
}

func (h *AuthHandler) RegisterRoutes(mux *http.ServeMux, _ *middleware.Authenticator) {
	mux.HandleFunc("POST /api/users", h.Register)
	mux.HandleFunc("POST /api/auth/login", h.Login)
	// Logout accepts any supplied token, including revoked or expired ones.
	mux.HandleFunc("POST /api/auth/logout", h.Logout)
}
