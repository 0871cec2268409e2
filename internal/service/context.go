package service

import "context"

// ==================== 请求上下文 ====================

type requestIDKey struct{}

// WithRequestID 把编排请求ID注入 context，供调用日志关联
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, requestID)
}

// RequestIDFrom 从 context 获取编排请求ID，没有时返回空串
func RequestIDFrom(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey{}).(string); ok {
		return id
	}
	return ""
}
