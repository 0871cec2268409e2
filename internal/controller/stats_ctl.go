package controller

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"ad_generator_v1/internal/repository"
)

// defaultStatsWindow 默认统计最近 24 小时
const defaultStatsWindow = 24 * time.Hour

// CallStatsReader 上游调用统计
type CallStatsReader interface {
	GetStatsByService(ctx context.Context, since time.Time) ([]repository.ServiceCallStats, error)
}

type StatsController struct {
	stats CallStatsReader
	now   func() time.Time
}

// NewStatsController stats 为 nil 表示未启用调用日志
func NewStatsController(stats CallStatsReader) *StatsController {
	return &StatsController{stats: stats, now: time.Now}
}

// Upstream 按服务统计上游调用
// @Summary 上游调用统计
// @Tags Stats
// @Produce json
// @Param window query string false "统计窗口，例如 1h、30m，默认 24h"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{} "窗口参数错误"
// @Failure 404 {object} map[string]interface{} "未启用调用日志"
// @Router /stats/upstream [get]
func (h *StatsController) Upstream(c *gin.Context) {
	if h.stats == nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Upstream call log disabled"})
		return
	}

	window := defaultStatsWindow
	if raw := c.Query("window"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil || d <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid window"})
			return
		}
		window = d
	}

	since := h.now().Add(-window)
	stats, err := h.stats.GetStatsByService(c.Request.Context(), since)
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to load stats"})
		return
	}
	if stats == nil {
		stats = []repository.ServiceCallStats{}
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"since":    since.UTC(),
			"services": stats,
		},
	})
}
