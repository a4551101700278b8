package handlers

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sithub/sithub/internal/middleware"
	"github.com/sithub/sithub/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	glogger "gorm.io/gorm/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
}

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

// asUser returns a middleware that attaches the given identity to the
// request context, standing in for the bearer guard.
func asUser(user *models.User) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.ContextUserID, user.ID)
		c.Set(middleware.ContextEmail, user.Email)
		c.Set(middleware.ContextRole, user.Role)
		c.Next()
	}
}

func performRequest(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	return w
}
