package service

import (
	"context"
	"encoding/json"

	"ad_generator_v1/internal/model"
)

// ==================== 上游依赖 ====================

// PersonaGenerator 画像生成服务
type PersonaGenerator interface {
	GenerateMultiple(ctx context.Context, count int, opts model.PersonaOptions) (*model.PersonaBatch, error)
	GenerateSingle(ctx context.Context, opts model.PersonaOptions) (*model.Persona, error)
	// GetInfo 仅用于探活
	GetInfo(ctx context.Context) (json.RawMessage, error)
}

// ImageGenerator 图片生成服务
// GenerateImage 返回原始响应体，由 NormalizeImageResponse 统一解析
type ImageGenerator interface {
	GenerateImage(ctx context.Context, prompt string, opts model.ImageOptions) (json.RawMessage, error)
	HealthCheck(ctx context.Context) error
}

// TextGenerator 文案生成服务
// Generate 返回原始响应体，由 NormalizeTextResponse 统一解析
type TextGenerator interface {
	Generate(ctx context.Context, req model.TextRequest) (json.RawMessage, error)
	Health(ctx context.Context) (bool, error)
}

// PromptBuilder 根据需求与画像构造生成提示词
type PromptBuilder interface {
	ImagePrompt(brief string, persona model.PersonaData, country string) string
	TextPrompt(brief string, persona model.PersonaData, country, language string) string
}

// CallRecorder 记录上游调用，实现方必须尽力而为、不能阻断主流程
type CallRecorder interface {
	Record(ctx context.Context, entry *model.UpstreamCallLog)
}
