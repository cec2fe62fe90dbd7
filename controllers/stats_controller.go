package controllers

import (
	"net/http"
	"time"

	"hotel-pms/services"
	"hotel-pms/utils"

	"github.com/gin-gonic/gin"
)

type StatsController struct {
	Service *services.StatsService
}

func NewStatsController(service *services.StatsService) *StatsController {
	return &StatsController{Service: service}
}

// GetDailyStats returns the dashboard numbers for ?date=YYYY-MM-DD,
// defaulting to today.
func (sc *StatsController) GetDailyStats(c *gin.Context) {
	day := time.Now().UTC()
	if raw := c.Query("date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
			return
		}
		day = parsed
	}

	stats, err := sc.Service.DailyStats(c.Request.Context(), day)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to compute stats")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, stats)
}
