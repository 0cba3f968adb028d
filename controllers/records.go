package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/bellapacxx/tambola-backend/services"
)

const defaultRecordLimit = 50

// RecordController serves persisted game-history rows.
type RecordController struct {
	history *services.History
}

func NewRecordController(history *services.History) *RecordController {
	return &RecordController{history: history}
}

// ListRecords returns recent finished games, newest first.
func (rc *RecordController) ListRecords(c *gin.Context) {
	if rc.history == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Game history is not enabled"})
		return
	}

	limit := defaultRecordLimit
	if raw := c.Query("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 && n <= 500 {
			limit = n
		}
	}

	records, err := rc.history.Recent(limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load records"})
		return
	}
	c.JSON(http.StatusOK, records)
}
