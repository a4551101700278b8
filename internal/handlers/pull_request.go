package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/sithub/sithub/internal/middleware"
	"github.com/sithub/sithub/internal/services"
	"github.com/sithub/sithub/pkg/response"
)

type PullRequestHandler struct {
	prService      *services.PullRequestService
	projectService *services.ProjectService
}

func NewPullRequestHandler(prService *services.PullRequestService, projectService *services.ProjectService) *PullRequestHandler {
	return &PullRequestHandler{prService: prService, projectService: projectService}
}

// List handles GET /api/projects/:id/pulls
func (h *PullRequestHandler) List(c *gin.Context) {
	projectID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	pulls, err := h.prService.List(projectID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, pulls)
}

// Get handles GET /api/projects/:id/pulls/:prId
func (h *PullRequestHandler) Get(c *gin.Context) {
	projectID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	prID, ok := parseIDParam(c, "prId")
	if !ok {
		return
	}

	pr, err := h.prService.Get(projectID, prID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, pr)
}

// Create handles POST /api/projects/:id/pulls. Members only.
func (h *PullRequestHandler) Create(c *gin.Context) {
	projectID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if !requireProjectParticipant(c, h.projectService, projectID) {
		return
	}

	var req services.CreatePullRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Title, source_branch and target_branch are required")
		return
	}

	pr, err := h.prService.Create(projectID, middleware.GetUserID(c), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.CreatedMessage(c, "Pull request opened successfully", pr)
}

// UpdateStatus handles PUT /api/projects/:id/pulls/:prId. Members only.
func (h *PullRequestHandler) UpdateStatus(c *gin.Context) {
	projectID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	prID, ok := parseIDParam(c, "prId")
	if !ok {
		return
	}
	if !requireProjectParticipant(c, h.projectService, projectID) {
		return
	}

	var req services.UpdatePullRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Status is required")
		return
	}

	pr, err := h.prService.UpdateStatus(projectID, prID, req.Status)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OKMessage(c, "Pull request updated successfully", pr)
}
