package controller

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"ad_generator_v1/internal/model"
)

// HealthChecker 实时探测依赖
type HealthChecker interface {
	Check(ctx context.Context) *model.HealthReport
}

// LastHealthReporter 巡检任务缓存的最近一次报告
type LastHealthReporter interface {
	Last() (*model.HealthReport, bool)
}

type HealthController struct {
	checker HealthChecker
	monitor LastHealthReporter
}

// NewHealthController monitor 可以为 nil，此时 /health/last 恒为 404
func NewHealthController(checker HealthChecker, monitor LastHealthReporter) *HealthController {
	return &HealthController{checker: checker, monitor: monitor}
}

// Check 实时健康检查
// @Summary 依赖健康检查
// @Tags Health
// @Produce json
// @Success 200 {object} model.HealthReport
// @Failure 503 {object} model.HealthReport
// @Router /health [get]
func (h *HealthController) Check(c *gin.Context) {
	report := h.checker.Check(c.Request.Context())
	c.JSON(healthStatus(report), report)
}

// Last 最近一次巡检结果
// @Summary 最近一次巡检结果
// @Tags Health
// @Produce json
// @Success 200 {object} model.HealthReport
// @Failure 404 {object} map[string]interface{} "尚未巡检"
// @Router /health/last [get]
func (h *HealthController) Last(c *gin.Context) {
	if h.monitor == nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Health monitor disabled"})
		return
	}

	report, ok := h.monitor.Last()
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "No health report yet"})
		return
	}
	c.JSON(healthStatus(report), report)
}

func healthStatus(report *model.HealthReport) int {
	if report.Success {
		return http.StatusOK
	}
	return http.StatusServiceUnavailable
}
