package main

import (
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"ad_generator_v1/internal/config"
	"ad_generator_v1/internal/controller"
	"ad_generator_v1/internal/model"
	"ad_generator_v1/internal/repository"
	"ad_generator_v1/internal/router"
	"ad_generator_v1/internal/service"
	"ad_generator_v1/pkg/database"
	"ad_generator_v1/pkg/net"
)

// ==================== 依赖容器 ====================

// Dependencies 依赖容器
type Dependencies struct {
	Config   *config.Config
	Log      *zap.Logger
	DB       *gorm.DB
	CallLogs repository.CallLogRepository
	Clients  *Clients
	Services *Services
}

// Clients 三个上游生成服务
type Clients struct {
	Persona *service.PersonaClient
	Image   *service.ImageClient
	Text    *service.TextClient
}

// Services 服务集合
type Services struct {
	Ads    *service.AdService
	Health *service.HealthService
}

// ==================== 初始化函数 ====================

// initDependencies 初始化所有依赖
func initDependencies(cfg *config.Config, log *zap.Logger) (*Dependencies, error) {
	deps := &Dependencies{Config: cfg, Log: log}

	// -------- 调用日志 --------
	var recorder service.CallRecorder = service.NopCallRecorder{}
	if cfg.Database.Enabled {
		db, err := database.Open(database.Options{
			Driver: cfg.Database.Driver,
			DSN:    cfg.Database.DSN,
			Debug:  cfg.Database.Debug,
		}, &model.UpstreamCallLog{})
		if err != nil {
			return nil, fmt.Errorf("初始化调用日志数据库失败: %w", err)
		}
		deps.DB = db
		deps.CallLogs = repository.NewCallLogRepository(db)
		recorder = service.NewRepoCallRecorder(deps.CallLogs, log)
		log.Info("上游调用日志已启用", zap.String("driver", cfg.Database.Driver))
	}

	// -------- 上游客户端 --------
	up := cfg.Upstream
	deps.Clients = &Clients{
		Persona: service.NewPersonaClient(net.NewServiceClient(net.ClientOptions{
			BaseURL: up.Persona.BaseURL, Timeout: up.Persona.Timeout,
		}), recorder),
		Image: service.NewImageClient(net.NewServiceClient(net.ClientOptions{
			BaseURL: up.Image.BaseURL, Timeout: up.Image.Timeout,
		}), recorder),
		Text: service.NewTextClient(net.NewServiceClient(net.ClientOptions{
			BaseURL: up.Text.BaseURL, Timeout: up.Text.Timeout,
		}), recorder),
	}

	// -------- 业务服务 --------
	c := deps.Clients
	deps.Services = &Services{
		Ads: service.NewAdService(c.Persona, c.Image, c.Text, service.TemplatePromptBuilder{}, cfg.Ads, log),
		Health: service.NewHealthService(c.Persona, c.Image, c.Text,
			up.Image.ProbeMode, cfg.Health.ProbeTimeout, log),
	}

	return deps, nil
}

// initControllers 初始化所有控制器
// monitor 为 nil 时 /health/last 返回 404
func initControllers(deps *Dependencies, monitor controller.LastHealthReporter) router.Controllers {
	var stats controller.CallStatsReader
	if deps.CallLogs != nil {
		stats = deps.CallLogs
	}

	return router.Controllers{
		Ad:     controller.NewAdController(deps.Services.Ads),
		Health: controller.NewHealthController(deps.Services.Health, monitor),
		Stats:  controller.NewStatsController(stats),
	}
}

// Close 释放数据库连接
func (d *Dependencies) Close() {
	if d.DB != nil {
		if err := database.Close(d.DB); err != nil {
			d.Log.Warn("关闭数据库失败", zap.Error(err))
		}
	}
	_ = d.Log.Sync()
}
