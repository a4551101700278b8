package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sithub/sithub/internal/middleware"
	"github.com/sithub/sithub/internal/models"
	"github.com/sithub/sithub/internal/services"
	"github.com/sithub/sithub/pkg/response"
)

type ProjectHandler struct {
	projectService *services.ProjectService
}

func NewProjectHandler(projectService *services.ProjectService) *ProjectHandler {
	return &ProjectHandler{projectService: projectService}
}

// List handles GET /api/projects. Returns the projects the caller created
// or is a member of.
func (h *ProjectHandler) List(c *gin.Context) {
	skip, _ := strconv.Atoi(c.DefaultQuery("skip", "0"))
	take, _ := strconv.Atoi(c.DefaultQuery("take", "10"))

	projects, err := h.projectService.ListForUser(middleware.GetUserID(c), skip, take)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, projects)
}

// Get handles GET /api/projects/:id
func (h *ProjectHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	project, err := h.projectService.GetByID(id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, project)
}

// Create handles POST /api/projects
func (h *ProjectHandler) Create(c *gin.Context) {
	var req services.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Name and repo_path are required")
		return
	}

	project, err := h.projectService.Create(&req, middleware.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.CreatedMessage(c, "Project created successfully", project)
}

// Update handles PUT /api/projects/:id. Only the creator or a project
// ADMIN member may update.
func (h *ProjectHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if !requireProjectModify(c, h.projectService, id) {
		return
	}

	var req services.UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	project, err := h.projectService.Update(id, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OKMessage(c, "Project updated successfully", project)
}

// Delete handles DELETE /api/projects/:id
func (h *ProjectHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if !requireProjectModify(c, h.projectService, id) {
		return
	}

	if err := h.projectService.Delete(id); err != nil {
		response.Error(c, err)
		return
	}
	response.OKMessage(c, "Project deleted successfully", nil)
}

// requireProjectModify enforces project mutation rights: the creator, a
// project ADMIN member, or a global ADMIN. Writes the error response on
// failure.
func requireProjectModify(c *gin.Context, projectService *services.ProjectService, projectID uint) bool {
	if middleware.GetRole(c) == models.RoleAdmin {
		return true
	}

	ok, err := projectService.CanModify(projectID, middleware.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return false
	}
	if !ok {
		response.Forbidden(c, "You do not have permission to modify this project")
		return false
	}
	return true
}

// requireProjectParticipant enforces project write access for child records
// (branches, pull requests, scans): the creator, any member, or a global
// ADMIN. Writes the error response on failure.
func requireProjectParticipant(c *gin.Context, projectService *services.ProjectService, projectID uint) bool {
	if middleware.GetRole(c) == models.RoleAdmin {
		return true
	}

	ok, err := projectService.IsParticipant(projectID, middleware.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return false
	}
	if !ok {
		response.Forbidden(c, "You are not a member of this project")
		return false
	}
	return true
}
