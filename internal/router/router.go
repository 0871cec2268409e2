package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"ad_generator_v1/internal/controller"
	"ad_generator_v1/internal/middleware"
)

// Controllers 路由依赖的所有控制器
type Controllers struct {
	Ad     *controller.AdController
	Health *controller.HealthController
	Stats  *controller.StatsController
}

// NewEngine 创建带全局中间件的 gin 引擎
func NewEngine(log *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(
		middleware.Recovery(log),
		middleware.RequestLogger(log),
		middleware.CORS(),
	)
	return r
}

// InitRoutes 注册所有路由
func InitRoutes(r *gin.Engine, ctl Controllers) {
	// POST /generate-ads
	r.POST("/generate-ads", ctl.Ad.Generate)

	// health 依赖健康
	health := r.Group("/health")
	{
		// GET /health 实时探测
		health.GET("", ctl.Health.Check)
		// GET /health/last 最近一次巡检
		health.GET("/last", ctl.Health.Last)
	}

	// GET /stats/upstream
	r.GET("/stats/upstream", ctl.Stats.Upstream)

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Not found"})
	})
}
