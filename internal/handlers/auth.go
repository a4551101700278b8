package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/sithub/sithub/internal/middleware"
	"github.com/sithub/sithub/internal/services"
	"github.com/sithub/sithub/pkg/response"
)

type AuthHandler struct {
	authService *services.AuthService
}

func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Register handles POST /api/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req services.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Username, email and password are required")
		return
	}

	result, err := h.authService.Register(&req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.CreatedMessage(c, "User registered successfully", result)
}

// Login handles POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req services.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Email and password are required")
		return
	}

	result, err := h.authService.Login(&req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OKMessage(c, "Login successful", result)
}

// ChangePassword handles POST /api/auth/change-password
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	var req services.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Old and new password are required")
		return
	}

	userID := middleware.GetUserID(c)
	if err := h.authService.ChangePassword(userID, &req); err != nil {
		response.Error(c, err)
		return
	}

	response.OKMessage(c, "Password changed successfully", nil)
}
