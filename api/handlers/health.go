package handlers

import (
	"net/http"

	"admarket-api/internal/database"
	"admarket-api/pkg/logger"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type HealthHandler struct {
	db     *gorm.DB
	logger *logger.Logger
}

func NewHealthHandler(db *gorm.DB, logger *logger.Logger) *HealthHandler {
	return &HealthHandler{
		db:     db,
		logger: logger,
	}
}

// Check performs a trivial database round trip and reports connectivity. A
// failed check is reported, never retried, and never fatal to the process.
func (h *HealthHandler) Check(c *gin.Context) {
	if err := database.HealthCheck(h.db); err != nil {
		h.logger.Error("Database health check failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "ERROR",
			"message": "Database connection failed",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   "OK",
		"message":  "Server and database are up",
		"database": "PostgreSQL Connected",
	})
}
