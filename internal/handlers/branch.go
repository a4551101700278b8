package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/sithub/sithub/internal/services"
	"github.com/sithub/sithub/pkg/response"
)

type BranchHandler struct {
	branchService  *services.BranchService
	projectService *services.ProjectService
}

func NewBranchHandler(branchService *services.BranchService, projectService *services.ProjectService) *BranchHandler {
	return &BranchHandler{branchService: branchService, projectService: projectService}
}

// List handles GET /api/projects/:id/branches
func (h *BranchHandler) List(c *gin.Context) {
	projectID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	branches, err := h.branchService.List(projectID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, branches)
}

// Create handles POST /api/projects/:id/branches. Members only.
func (h *BranchHandler) Create(c *gin.Context) {
	projectID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if !requireProjectParticipant(c, h.projectService, projectID) {
		return
	}

	var req services.CreateBranchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Branch name is required")
		return
	}

	branch, err := h.branchService.Create(projectID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.CreatedMessage(c, "Branch created successfully", branch)
}
