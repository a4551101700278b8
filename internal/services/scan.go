package services

import (
	"context"
	"encoding/json"
	"errors"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/sithub/sithub/internal/config"
	"github.com/sithub/sithub/internal/models"
	"github.com/sithub/sithub/pkg/logger"
	"github.com/sithub/sithub/pkg/response"
	"gorm.io/gorm"
)

const scanTimeout = 10 * time.Minute

type ScanService struct {
	db    *gorm.DB
	cfg   *config.ScannerConfig
	queue TaskQueue
}

func NewScanService(db *gorm.DB, cfg *config.ScannerConfig, queue TaskQueue) *ScanService {
	return &ScanService{db: db, cfg: cfg, queue: queue}
}

type CreateScanRequest struct {
	CommitHash string `json:"commit_hash"`
}

// trivyReport mirrors the fields we read from `trivy fs --format json`.
type trivyReport struct {
	Results []struct {
		Target          string `json:"Target"`
		Vulnerabilities []struct {
			VulnerabilityID  string `json:"VulnerabilityID"`
			PkgName          string `json:"PkgName"`
			InstalledVersion string `json:"InstalledVersion"`
			FixedVersion     string `json:"FixedVersion"`
			Severity         string `json:"Severity"`
			Title            string `json:"Title"`
		} `json:"Vulnerabilities"`
	} `json:"Results"`
}

func (s *ScanService) List(projectID uint) ([]models.TrivyScan, error) {
	if err := s.projectExists(projectID); err != nil {
		return nil, err
	}

	var scans []models.TrivyScan
	if err := s.db.Where("project_id = ?", projectID).
		Order("created_at DESC").
		Find(&scans).Error; err != nil {
		return nil, err
	}
	return scans, nil
}

func (s *ScanService) Get(projectID, scanID uint) (*models.TrivyScan, error) {
	var scan models.TrivyScan
	if err := s.db.Where("project_id = ?", projectID).
		First(&scan, scanID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("Scan not found")
		}
		return nil, err
	}
	return &scan, nil
}

// Create records a PENDING scan and enqueues it for processing. The scan
// record is returned immediately, the result arrives asynchronously.
func (s *ScanService) Create(projectID uint, req *CreateScanRequest) (*models.TrivyScan, error) {
	var project models.Project
	if err := s.db.First(&project, projectID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("Project not found")
		}
		return nil, err
	}

	scan := models.TrivyScan{
		ProjectID:  projectID,
		CommitHash: req.CommitHash,
		Status:     models.ScanStatusPending,
	}
	if err := s.db.Create(&scan).Error; err != nil {
		return nil, err
	}

	task := &ScanTask{
		ScanID:     scan.ID,
		ProjectID:  projectID,
		RepoPath:   project.RepoPath,
		CommitHash: req.CommitHash,
	}
	if err := s.queue.Enqueue(task); err != nil {
		logger.Errorf("scan service: enqueue failed scan_id=%d: %v", scan.ID, err)
		s.db.Model(&scan).Updates(map[string]interface{}{
			"status":        models.ScanStatusFailed,
			"error_message": "Failed to enqueue scan task",
		})
		return nil, response.NewServerError("Failed to enqueue scan")
	}

	return &scan, nil
}

// ProcessScanTask runs trivy against the project's repository and stores the
// outcome on the scan record. It satisfies ScanProcessor.
func (s *ScanService) ProcessScanTask(ctx context.Context, task *ScanTask) error {
	var scan models.TrivyScan
	if err := s.db.First(&scan, task.ScanID).Error; err != nil {
		return err
	}

	if err := s.db.Model(&scan).Update("status", models.ScanStatusRunning).Error; err != nil {
		return err
	}

	target := filepath.Join(s.cfg.RepoRoot, task.RepoPath)
	output, err := s.runTrivy(ctx, target)
	if err != nil {
		logger.Errorf("scan service: trivy failed scan_id=%d target=%s: %v", task.ScanID, target, err)
		return s.db.Model(&scan).Updates(map[string]interface{}{
			"status":        models.ScanStatusFailed,
			"error_message": err.Error(),
		}).Error
	}

	counts, err := summarizeSeverities(output)
	if err != nil {
		logger.Errorf("scan service: failed to parse trivy output scan_id=%d: %v", task.ScanID, err)
		return s.db.Model(&scan).Updates(map[string]interface{}{
			"status":        models.ScanStatusFailed,
			"error_message": "Failed to parse scanner output",
		}).Error
	}

	countsJSON, _ := json.Marshal(counts)

	logger.Infof("scan service: scan completed scan_id=%d project_id=%d", task.ScanID, task.ProjectID)
	return s.db.Model(&scan).Updates(map[string]interface{}{
		"status":          models.ScanStatusCompleted,
		"scan_results":    string(output),
		"severity_counts": string(countsJSON),
		"error_message":   "",
	}).Error
}

func (s *ScanService) runTrivy(ctx context.Context, target string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, scanTimeout)
	defer cancel()

	trivyPath := s.cfg.TrivyPath
	if trivyPath == "" {
		trivyPath = "trivy"
	}

	cmd := exec.CommandContext(ctx, trivyPath, "fs", "--format", "json", "--quiet", target)
	output, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			logger.Errorf("scan service: trivy stderr: %s", string(exitErr.Stderr))
		}
		return nil, err
	}
	return output, nil
}

// summarizeSeverities tallies vulnerabilities per severity level across all
// scan targets.
func summarizeSeverities(raw []byte) (map[string]int, error) {
	var report trivyReport
	if err := json.Unmarshal(raw, &report); err != nil {
		return nil, err
	}

	counts := map[string]int{
		"CRITICAL": 0,
		"HIGH":     0,
		"MEDIUM":   0,
		"LOW":      0,
		"UNKNOWN":  0,
	}
	for _, result := range report.Results {
		for _, vuln := range result.Vulnerabilities {
			if _, ok := counts[vuln.Severity]; ok {
				counts[vuln.Severity]++
			} else {
				counts["UNKNOWN"]++
			}
		}
	}
	return counts, nil
}

func (s *ScanService) projectExists(projectID uint) error {
	var project models.Project
	if err := s.db.First(&project, projectID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NewNotFound("Project not found")
		}
		return err
	}
	return nil
}
