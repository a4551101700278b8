package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/sithub/sithub/internal/services"
	"github.com/sithub/sithub/pkg/response"
	"gorm.io/gorm"
)

type HealthHandler struct {
	db    *gorm.DB
	queue services.TaskQueue
}

func NewHealthHandler(db *gorm.DB, queue services.TaskQueue) *HealthHandler {
	return &HealthHandler{db: db, queue: queue}
}

// Check handles GET /api/health
func (h *HealthHandler) Check(c *gin.Context) {
	dbStatus := "ok"
	if sqlDB, err := h.db.DB(); err != nil || sqlDB.Ping() != nil {
		dbStatus = "unavailable"
	}

	queueMode := "sync"
	if h.queue.IsAsync() {
		queueMode = "async"
	}

	response.OK(c, gin.H{
		"status":     "ok",
		"database":   dbStatus,
		"queue_mode": queueMode,
	})
}
