package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/sithub/sithub/internal/models"
	"github.com/sithub/sithub/internal/services"
	"github.com/sithub/sithub/pkg/response"
)

type ProjectMemberHandler struct {
	projectService *services.ProjectService
}

func NewProjectMemberHandler(projectService *services.ProjectService) *ProjectMemberHandler {
	return &ProjectMemberHandler{projectService: projectService}
}

type addMemberRequest struct {
	UserID uint   `json:"userId" binding:"required"`
	Role   string `json:"role"`
}

// List handles GET /api/projects/:id/members
func (h *ProjectMemberHandler) List(c *gin.Context) {
	projectID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	members, err := h.projectService.Members(projectID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, members)
}

// Add handles POST /api/projects/:id/members. Role defaults to DEVELOPER.
// Only the creator or a project ADMIN member may grant membership.
func (h *ProjectMemberHandler) Add(c *gin.Context) {
	projectID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if !requireProjectModify(c, h.projectService, projectID) {
		return
	}

	var req addMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "userId is required")
		return
	}
	if req.Role == "" {
		req.Role = models.RoleDeveloper
	}

	member, err := h.projectService.AddMember(projectID, req.UserID, req.Role)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.CreatedMessage(c, "Member added successfully", member)
}
