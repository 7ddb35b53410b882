package handlers

import (
	"log"

	"github.com/gin-gonic/gin"

	"chatquestbot/internal/errors"
)

// Broadcaster is the outbound side the trigger endpoints drive: the same
// two operations the scheduler fires on its own.
type Broadcaster interface {
	SendRandomTask() error
	SendWeekResults() error
}

// CronHandler exposes the scheduled operations as HTTP triggers so an
// external timer can drive them.
type CronHandler struct {
	broadcaster Broadcaster
}

// NewCronHandler creates a new CronHandler
func NewCronHandler(broadcaster Broadcaster) *CronHandler {
	return &CronHandler{broadcaster: broadcaster}
}

// SendTask broadcasts a random active task now.
func (h *CronHandler) SendTask(c *gin.Context) {
	if err := h.broadcaster.SendRandomTask(); err != nil {
		log.Printf("Trigger send task failed: %v", err)
		errors.InternalError(c, "Failed to send task")
		return
	}
	c.JSON(200, gin.H{"status": "ok"})
}

// SendWeekEnd publishes the week results now.
func (h *CronHandler) SendWeekEnd(c *gin.Context) {
	if err := h.broadcaster.SendWeekResults(); err != nil {
		log.Printf("Trigger week end failed: %v", err)
		errors.InternalError(c, "Failed to send week results")
		return
	}
	c.JSON(200, gin.H{"status": "ok"})
}
