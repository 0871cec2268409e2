package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"ad_generator_v1/internal/model"
)

// ==================== 仓储接口 ====================

// CallLogRepository 上游调用日志仓储接口
type CallLogRepository interface {
	Create(ctx context.Context, log *model.UpstreamCallLog) error
	ListByRequest(ctx context.Context, requestID string) ([]model.UpstreamCallLog, error)

	// 统计查询
	GetStatsByService(ctx context.Context, since time.Time) ([]ServiceCallStats, error)
}

// ==================== 统计结构 ====================

// ServiceCallStats 单个依赖服务的调用统计
type ServiceCallStats struct {
	Service       string  `json:"service"`
	TotalCalls    int64   `json:"total_calls"`
	SuccessCount  int64   `json:"success_count"`
	FailedCount   int64   `json:"failed_count"`
	TotalItems    int64   `json:"total_items"`
	AvgDurationMs float64 `json:"avg_duration_ms"`
	MaxDurationMs int64   `json:"max_duration_ms"`
}

// ==================== 仓储实现 ====================

type callLogRepo struct {
	db *gorm.DB
}

// NewCallLogRepository 创建调用日志仓储
func NewCallLogRepository(db *gorm.DB) CallLogRepository {
	return &callLogRepo{db: db}
}

func (r *callLogRepo) Create(ctx context.Context, log *model.UpstreamCallLog) error {
	return r.db.WithContext(ctx).Create(log).Error
}

func (r *callLogRepo) ListByRequest(ctx context.Context, requestID string) ([]model.UpstreamCallLog, error) {
	var logs []model.UpstreamCallLog
	err := r.db.WithContext(ctx).
		Where("request_id = ?", requestID).
		Order("id ASC").
		Find(&logs).Error
	return logs, err
}

func (r *callLogRepo) GetStatsByService(ctx context.Context, since time.Time) ([]ServiceCallStats, error) {
	var stats []ServiceCallStats

	query := r.db.WithContext(ctx).Model(&model.UpstreamCallLog{})
	if !since.IsZero() {
		query = query.Where("created_at >= ?", since)
	}

	err := query.Select(`
		service,
		COUNT(*) as total_calls,
		SUM(CASE WHEN status = 'success' THEN 1 ELSE 0 END) as success_count,
		SUM(CASE WHEN status = 'failed' THEN 1 ELSE 0 END) as failed_count,
		COALESCE(SUM(item_count), 0) as total_items,
		COALESCE(AVG(duration_ms), 0) as avg_duration_ms,
		COALESCE(MAX(duration_ms), 0) as max_duration_ms
	`).
		Group("service").
		Order("service ASC").
		Scan(&stats).Error

	return stats, err
}
