package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sithub/sithub/internal/middleware"
	"github.com/sithub/sithub/internal/services"
	"github.com/sithub/sithub/pkg/response"
)

type UserHandler struct {
	userService *services.UserService
}

func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// Profile handles GET /api/users/profile
func (h *UserHandler) Profile(c *gin.Context) {
	user, err := h.userService.GetByID(middleware.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, user)
}

// UpdateProfile handles PUT /api/users/profile. Role changes are not allowed
// here, only on the admin route.
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	var req services.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	req.Role = nil

	user, err := h.userService.Update(middleware.GetUserID(c), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OKMessage(c, "Profile updated successfully", user)
}

// List handles GET /api/users (admin only)
func (h *UserHandler) List(c *gin.Context) {
	var req services.UserListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	result, err := h.userService.List(&req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, result)
}

// Update handles PUT /api/users/:id (admin only)
func (h *UserHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req services.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	user, err := h.userService.Update(id, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OKMessage(c, "User updated successfully", user)
}

// Delete handles DELETE /api/users/:id (admin only)
func (h *UserHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.userService.Delete(id); err != nil {
		response.Error(c, err)
		return
	}
	response.OKMessage(c, "User deleted successfully", nil)
}

// parseIDParam reads a numeric path parameter, responding 400 on garbage.
func parseIDParam(c *gin.Context, name string) (uint, bool) {
	v, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		response.BadRequest(c, "Invalid "+name+" parameter")
		return 0, false
	}
	return uint(v), true
}
