package service

import "errors"

// ==================== 错误定义 ====================

var (
	// ErrImageGeneration 图片服务报告失败或没有返回可用图片
	ErrImageGeneration = errors.New("image generation failed")
	// ErrNoTextVariants 文案服务没有返回任何可用文案
	ErrNoTextVariants = errors.New("no text variants")
	// ErrUnrecognizedShape 上游响应结构无法识别
	ErrUnrecognizedShape = errors.New("unrecognized upstream response shape")
	// ErrNoPersonas 批量与逐个兜底都没有拿到画像
	ErrNoPersonas = errors.New("persona acquisition failed")
	// ErrUpstreamStatus 上游返回非 2xx
	ErrUpstreamStatus = errors.New("upstream returned error status")
)

// errTextUnhealthy 文案服务探活返回 success=false
var errTextUnhealthy = errors.New("text generator reported unhealthy")
