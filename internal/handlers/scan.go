package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/sithub/sithub/internal/services"
	"github.com/sithub/sithub/pkg/response"
)

type ScanHandler struct {
	scanService    *services.ScanService
	projectService *services.ProjectService
}

func NewScanHandler(scanService *services.ScanService, projectService *services.ProjectService) *ScanHandler {
	return &ScanHandler{scanService: scanService, projectService: projectService}
}

// List handles GET /api/projects/:id/scans
func (h *ScanHandler) List(c *gin.Context) {
	projectID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	scans, err := h.scanService.List(projectID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, scans)
}

// Get handles GET /api/projects/:id/scans/:scanId
func (h *ScanHandler) Get(c *gin.Context) {
	projectID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	scanID, ok := parseIDParam(c, "scanId")
	if !ok {
		return
	}

	scan, err := h.scanService.Get(projectID, scanID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, scan)
}

// Create handles POST /api/projects/:id/scans. Members only. The scan runs
// in the background, the PENDING record is returned immediately.
func (h *ScanHandler) Create(c *gin.Context) {
	projectID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if !requireProjectParticipant(c, h.projectService, projectID) {
		return
	}

	var req services.CreateScanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		// commit_hash is optional, an empty body is fine
		req = services.CreateScanRequest{}
	}

	scan, err := h.scanService.Create(projectID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.CreatedMessage(c, "Scan queued successfully", scan)
}
