package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/sithub/sithub/internal/services"
	"github.com/sithub/sithub/pkg/response"
)

type AuditLogHandler struct {
	auditService *services.AuditService
}

func NewAuditLogHandler(auditService *services.AuditService) *AuditLogHandler {
	return &AuditLogHandler{auditService: auditService}
}

// List handles GET /api/audit-logs (admin only)
func (h *AuditLogHandler) List(c *gin.Context) {
	var req services.AuditListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	result, err := h.auditService.List(&req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, result)
}
