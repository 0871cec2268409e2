package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"ad_generator_v1/internal/controller"
	"ad_generator_v1/internal/router"
	"ad_generator_v1/internal/task"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "启动 HTTP 服务",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, log, err := bootstrap()
	if err != nil {
		return err
	}

	// 1. 初始化依赖
	deps, err := initDependencies(cfg, log)
	if err != nil {
		return err
	}
	defer deps.Close()

	// 2. 启动巡检任务
	var monitor controller.LastHealthReporter
	if cfg.Health.MonitorEnabled {
		m := task.NewHealthMonitor(deps.Services.Health, cfg.Health.Cron, cfg.Health.ProbeTimeout*2, log)
		if err := m.Start(); err != nil {
			return err
		}
		defer m.Stop()
		monitor = m
	}

	// 3. 初始化路由
	gin.SetMode(gin.ReleaseMode)
	r := router.NewEngine(log)
	router.InitRoutes(r, initControllers(deps, monitor))

	// 4. 启动服务
	return startServer(r, deps)
}

// startServer 启动服务并在收到退出信号后优雅关闭
func startServer(r *gin.Engine, deps *Dependencies) error {
	cfg, log := deps.Config, deps.Log

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: r,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("服务启动", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	// 等待退出信号
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-errCh:
		if err != nil {
			log.Error("服务启动失败", zap.Error(err))
			return err
		}
		return nil
	case sig := <-quit:
		log.Info("正在关闭服务...", zap.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("服务强制关闭", zap.Error(err))
		return err
	}

	log.Info("服务已退出")
	return nil
}
