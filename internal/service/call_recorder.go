package service

import (
	"context"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"ad_generator_v1/internal/model"
	"ad_generator_v1/internal/repository"
)

const (
	// recordTimeout 单次写日志的最长时间
	recordTimeout = 2 * time.Second
	// maxErrorMsgLen 与 error_msg 列宽一致
	maxErrorMsgLen = 1024
)

// RepoCallRecorder 基于仓储的调用日志记录器
type RepoCallRecorder struct {
	repo repository.CallLogRepository
	log  *zap.Logger
}

func NewRepoCallRecorder(repo repository.CallLogRepository, log *zap.Logger) *RepoCallRecorder {
	return &RepoCallRecorder{repo: repo, log: log}
}

// Record 写入失败只记日志；请求被取消后仍然落库
func (r *RepoCallRecorder) Record(ctx context.Context, entry *model.UpstreamCallLog) {
	wctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), recordTimeout)
	defer cancel()

	if err := r.repo.Create(wctx, entry); err != nil {
		r.log.Warn("写入上游调用日志失败",
			zap.String("request_id", entry.RequestID),
			zap.String("service", entry.Service),
			zap.Error(err))
	}
}

// NopCallRecorder 未启用数据库时使用
type NopCallRecorder struct{}

func (NopCallRecorder) Record(context.Context, *model.UpstreamCallLog) {}

// recordCall 组装并写入一条调用日志
func recordCall(ctx context.Context, rec CallRecorder, service, operation string, start time.Time, items int, err error) {
	if rec == nil {
		return
	}

	entry := &model.UpstreamCallLog{
		RequestID:  RequestIDFrom(ctx),
		Service:    service,
		Operation:  operation,
		ItemCount:  items,
		DurationMs: time.Since(start).Milliseconds(),
		Status:     model.CallStatusSuccess,
	}
	if err != nil {
		entry.Status = model.CallStatusFailed
		msg := err.Error()
		if len(msg) > maxErrorMsgLen {
			msg = msg[:maxErrorMsgLen]
			// 不截断半个字符
			for !utf8.ValidString(msg) {
				msg = msg[:len(msg)-1]
			}
		}
		entry.ErrorMsg = msg
	}

	rec.Record(ctx, entry)
}
