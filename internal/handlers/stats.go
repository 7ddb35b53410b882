package handlers

import (
	"log"
	"strconv"

	"github.com/gin-gonic/gin"

	"chatquestbot/internal/errors"
	"chatquestbot/internal/services"
)

// StatsHandler serves the operator stats view over HTTP.
type StatsHandler struct {
	stats *services.StatsService
}

// NewStatsHandler creates a new StatsHandler
func NewStatsHandler(stats *services.StatsService) *StatsHandler {
	return &StatsHandler{stats: stats}
}

// GetStats returns every user with their weekly total. Accepts optional
// week and year query params; defaults to the current week.
func (h *StatsHandler) GetStats(c *gin.Context) {
	weekParam := c.Query("week")
	yearParam := c.Query("year")

	var (
		rows interface{}
		err  error
	)
	if weekParam != "" && yearParam != "" {
		week, werr := strconv.Atoi(weekParam)
		year, yerr := strconv.Atoi(yearParam)
		if werr != nil || yerr != nil {
			errors.BadRequest(c, "week and year must be integers")
			return
		}
		rows, err = h.stats.AllUsersStatsForWeek(week, year)
	} else {
		rows, err = h.stats.AllUsersStats()
	}
	if err != nil {
		log.Printf("Stats query failed: %v", err)
		errors.InternalError(c, "Failed to load stats")
		return
	}

	c.JSON(200, gin.H{"users": rows})
}
