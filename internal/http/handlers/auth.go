package handlers

import (
	"net/http"

	"amabackend/internal/services"

	"github.com/gin-gonic/gin"
)

// POST /api/authorization/login
func (h Handler) Login(c *gin.Context) {
	var req services.LoginRequest
	if !bindJSON(c, &req) {
		return
	}
	token, err := h.authService(c).Login(c.Request.Context(), req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	respondResult(c, http.StatusOK, token)
}

// POST /api/authorization/register
func (h Handler) Register(c *gin.Context) {
	var req services.RegisterRequest
	if !bindJSON(c, &req) {
		return
	}
	id, err := h.authService(c).Register(c.Request.Context(), req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	respondResult(c, http.StatusCreated, gin.H{"id": id})
}

// POST /api/authorization/forget-password
func (h Handler) ForgetPassword(c *gin.Context) {
	var req services.ForgetPasswordRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := h.authService(c).ForgetPassword(c.Request.Context(), req); err != nil {
		RespondDomainError(c, err)
		return
	}
	respondResult(c, http.StatusOK, "Ok")
}

// POST /api/authorization/reset-password
func (h Handler) ResetPassword(c *gin.Context) {
	var req services.ResetPasswordRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := h.authService(c).ResetPassword(c.Request.Context(), req); err != nil {
		RespondDomainError(c, err)
		return
	}
	respondResult(c, http.StatusOK, "Ok")
}
