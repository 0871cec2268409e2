package task

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"ad_generator_v1/internal/model"
)

// HealthChecker 依赖健康检查
type HealthChecker interface {
	Check(ctx context.Context) *model.HealthReport
}

// HealthMonitor 依赖服务巡检任务
// 定时执行健康检查，缓存最近一次报告，并记录状态翻转
type HealthMonitor struct {
	checker HealthChecker
	spec    string
	timeout time.Duration
	log     *zap.Logger
	Cron    *cron.Cron

	mu   sync.RWMutex
	last *model.HealthReport

	wg sync.WaitGroup
}

// NewHealthMonitor spec 为秒级 cron 表达式
func NewHealthMonitor(checker HealthChecker, spec string, timeout time.Duration, log *zap.Logger) *HealthMonitor {
	return &HealthMonitor{
		checker: checker,
		spec:    spec,
		timeout: timeout,
		log:     log,
		Cron:    cron.New(cron.WithSeconds()), // 支持秒级控制
	}
}

// Start 启动巡检，启动时立即执行一次
func (m *HealthMonitor) Start() error {
	if _, err := m.Cron.AddFunc(m.spec, m.run); err != nil {
		return fmt.Errorf("无法启动 HealthMonitor: %w", err)
	}

	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		m.log.Info("[HealthMonitor] 服务启动，正在执行首次巡检...")
		m.run()
	}()

	m.Cron.Start()
	m.log.Info("[HealthMonitor] 巡检任务已启动", zap.String("cron", m.spec))
	return nil
}

// Stop 停止巡检，等待正在执行的检查结束
func (m *HealthMonitor) Stop() {
	ctx := m.Cron.Stop()
	<-ctx.Done()
	m.wg.Wait()
	m.log.Info("[HealthMonitor] 已停止")
}

// Last 最近一次报告，尚未执行过时返回 false
func (m *HealthMonitor) Last() (*model.HealthReport, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.last, m.last != nil
}

func (m *HealthMonitor) run() {
	// 单次巡检上限：三个探测并发执行，各自还有自己的超时
	timeout := m.timeout
	if timeout <= 0 {
		timeout = time.Minute
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	m.Execute(ctx)
}

// Execute 执行一次巡检
func (m *HealthMonitor) Execute(ctx context.Context) *model.HealthReport {
	report := m.checker.Check(ctx)
	if report == nil {
		return nil
	}

	m.mu.Lock()
	prev := m.last
	m.last = report
	m.mu.Unlock()

	for _, name := range flipped(prev, report) {
		if report.Data.Services[name] {
			m.log.Info("[HealthMonitor] 依赖恢复", zap.String("service", name))
		} else {
			m.log.Warn("[HealthMonitor] 依赖不可用", zap.String("service", name))
		}
	}

	if !report.Success {
		m.log.Warn("[HealthMonitor] 巡检完成，存在不可用依赖", zap.Strings("failing", report.Failing()))
	} else {
		m.log.Debug("[HealthMonitor] 巡检完成，全部健康")
	}
	return report
}

// flipped 返回状态发生变化的服务；首次巡检时返回所有不健康的服务
func flipped(prev, cur *model.HealthReport) []string {
	var names []string
	for _, name := range []string{model.ServicePersona, model.ServiceImage, model.ServiceText} {
		now, ok := cur.Data.Services[name]
		if !ok {
			continue
		}
		if prev == nil {
			if !now {
				names = append(names, name)
			}
			continue
		}
		if before, had := prev.Data.Services[name]; !had || before != now {
			names = append(names, name)
		}
	}
	return names
}
