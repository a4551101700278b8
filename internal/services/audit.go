package services

import (
	"encoding/json"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sithub/sithub/internal/models"
	"github.com/sithub/sithub/pkg/logger"
	"gorm.io/gorm"
)

// Audited actions.
const (
	ActionUserRegistered    = "USER_REGISTERED"
	ActionUserLogin         = "USER_LOGIN"
	ActionUserUpdated       = "USER_UPDATED"
	ActionUserDeleted       = "USER_DELETED"
	ActionPasswordChanged   = "PASSWORD_CHANGED"
	ActionProjectCreated    = "PROJECT_CREATED"
	ActionProjectUpdated    = "PROJECT_UPDATED"
	ActionProjectDeleted    = "PROJECT_DELETED"
	ActionMemberAdded       = "MEMBER_ADDED"
	ActionBranchCreated     = "BRANCH_CREATED"
	ActionPullRequestOpened = "PULL_REQUEST_OPENED"
	ActionPullRequestUpdate = "PULL_REQUEST_UPDATED"
	ActionScanTriggered     = "SCAN_TRIGGERED"
)

type AuditService struct {
	db *gorm.DB
}

func NewAuditService(db *gorm.DB) *AuditService {
	return &AuditService{db: db}
}

// Record writes one audit entry. Failures are logged, never propagated:
// auditing must not fail the request it describes.
func (s *AuditService) Record(action string, details interface{}, userID, projectID *uint, ip string) {
	var detailStr string
	if details != nil {
		if b, err := json.Marshal(details); err == nil {
			detailStr = string(b)
		}
	}

	entry := models.AuditLog{
		Action:    action,
		Details:   detailStr,
		UserID:    userID,
		ProjectID: projectID,
		IP:        ip,
	}
	if err := s.db.Create(&entry).Error; err != nil {
		logger.Error().Err(err).Str("action", action).Msg("failed to write audit log")
	}
}

type AuditListRequest struct {
	Page      int    `form:"page"`
	PageSize  int    `form:"page_size"`
	Action    string `form:"action"`
	UserID    *uint  `form:"user_id"`
	ProjectID *uint  `form:"project_id"`
	StartDate string `form:"start_date"`
	EndDate   string `form:"end_date"`
}

type AuditListResponse struct {
	Total    int64             `json:"total"`
	Page     int               `json:"page"`
	PageSize int               `json:"page_size"`
	Items    []models.AuditLog `json:"items"`
}

func (s *AuditService) List(req *AuditListRequest) (*AuditListResponse, error) {
	if req.Page <= 0 {
		req.Page = 1
	}
	if req.PageSize <= 0 || req.PageSize > 100 {
		req.PageSize = 20
	}

	var logs []models.AuditLog
	var total int64

	query := s.db.Model(&models.AuditLog{})

	if req.Action != "" {
		query = query.Where("action = ?", req.Action)
	}
	if req.UserID != nil {
		query = query.Where("user_id = ?", *req.UserID)
	}
	if req.ProjectID != nil {
		query = query.Where("project_id = ?", *req.ProjectID)
	}
	if req.StartDate != "" {
		query = query.Where("created_at >= ?", req.StartDate)
	}
	if req.EndDate != "" {
		query = query.Where("created_at <= ?", req.EndDate+" 23:59:59")
	}

	query.Count(&total)

	offset := (req.Page - 1) * req.PageSize
	if err := query.Offset(offset).Limit(req.PageSize).Order("created_at DESC").Find(&logs).Error; err != nil {
		return nil, err
	}

	return &AuditListResponse{
		Total:    total,
		Page:     req.Page,
		PageSize: req.PageSize,
		Items:    logs,
	}, nil
}

// CleanupOld deletes audit entries older than retentionDays and returns the
// number of deleted records.
func (s *AuditService) CleanupOld(retentionDays int) (int64, error) {
	cutoff := time.Now().AddDate(0, 0, -retentionDays)
	result := s.db.Where("created_at < ?", cutoff).Delete(&models.AuditLog{})
	return result.RowsAffected, result.Error
}

// StartRetentionScheduler runs CleanupOld nightly at 03:00. The returned
// cron must be stopped on shutdown.
func (s *AuditService) StartRetentionScheduler(retentionDays int) *cron.Cron {
	c := cron.New()
	c.AddFunc("0 3 * * *", func() {
		deleted, err := s.CleanupOld(retentionDays)
		if err != nil {
			logger.Error().Err(err).Msg("audit log cleanup failed")
			return
		}
		if deleted > 0 {
			logger.Infof("audit log cleanup removed %d entries older than %d days", deleted, retentionDays)
		}
	})
	c.Start()
	return c
}
