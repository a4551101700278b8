package services

import (
	"testing"

	"github.com/sithub/sithub/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	glogger "gorm.io/gorm/logger"
)

// newTestDB opens a fresh in-memory database with the full schema.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: glogger.Default.LogMode(glogger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Project{},
		&models.ProjectMember{},
		&models.Branch{},
		&models.PullRequest{},
		&models.TrivyScan{},
		&models.AuditLog{},
	)
	if err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

func createTestUser(t *testing.T, db *gorm.DB, username, email, role string) *models.User {
	t.Helper()

	user := models.User{
		Username:     username,
		Email:        email,
		PasswordHash: "not-a-real-hash",
		Role:         role,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return &user
}

func createTestProject(t *testing.T, db *gorm.DB, name string, creatorID uint) *models.Project {
	t.Helper()

	project := models.Project{
		Name:        name,
		RepoPath:    name + ".git",
		CreatedByID: creatorID,
	}
	if err := db.Create(&project).Error; err != nil {
		t.Fatalf("failed to create test project: %v", err)
	}
	return &project
}
