package model

import "time"

// ==================== 请求 ====================

// GenerationRequest 广告生成请求
// prompt / language / country 由边界层校验，核心流程不再重复校验
type GenerationRequest struct {
	Prompt       string `json:"prompt" binding:"required"`
	Language     string `json:"language" binding:"required"`
	Country      string `json:"country" binding:"required"`
	Count        int    `json:"count,omitempty"`
	ImageStyle   string `json:"imageStyle,omitempty"`
	ImageQuality string `json:"imageQuality,omitempty"`
}

// ==================== 图片 ====================

// ImageOptions 图片生成参数
type ImageOptions struct {
	Count   int    `json:"count"`
	Size    string `json:"size,omitempty"`
	Style   string `json:"style,omitempty"`
	Quality string `json:"quality,omitempty"`
}

// GeneratedImage 单张生成图片，生成后不可变
type GeneratedImage struct {
	URL      string `json:"url"`
	Prompt   string `json:"prompt"`
	Size     string `json:"size"`
	Provider string `json:"provider"`
}

// ==================== 文案 ====================

// 文案策略
const (
	VariantUrgency = "urgency"
	VariantBenefit = "benefit"
	VariantEase    = "ease"
)

// TextRequest 文案生成参数
type TextRequest struct {
	Prompt       string `json:"prompt"`
	AdTitleLimit int    `json:"adTitleLimit"`
	AdTextLimit  int    `json:"adTextLimit"`
}

// TextVariant 一条候选文案
type TextVariant struct {
	Variant         string  `json:"variant"`
	AdTitle         string  `json:"adTitle"`
	AdText          string  `json:"adText"`
	QualityScore    float64 `json:"qualityScore"`
	HasCallToAction bool    `json:"hasCallToAction"`
}

// ==================== 广告 ====================

// Targeting 单条广告的投放描述
type Targeting struct {
	Country        string `json:"country"`
	Language       string `json:"language"`
	Demographics   string `json:"demographics"`
	Psychographics string `json:"psychographics,omitempty"`
}

// GeneratedAd 一个画像对应的一条完整广告
type GeneratedAd struct {
	ID           string         `json:"id"`
	Persona      Persona        `json:"persona"`
	Image        GeneratedImage `json:"image"`
	Text         TextVariant    `json:"text"`
	TextVariants []TextVariant  `json:"textVariants,omitempty"`
	Targeting    Targeting      `json:"targeting"`
	QualityScore int            `json:"qualityScore"`
	GeneratedAt  time.Time      `json:"generatedAt"`
}

// ==================== 响应 ====================

// TargetingEcho 响应中回显的投放参数
type TargetingEcho struct {
	Country        string `json:"country"`
	Language       string `json:"language"`
	OriginalPrompt string `json:"originalPrompt"`
}

// GenerationData 响应数据体
type GenerationData struct {
	Ads         []GeneratedAd `json:"ads"`
	TotalCount  int           `json:"totalCount"`
	GeneratedAt time.Time     `json:"generatedAt"`
	RequestID   string        `json:"requestId"`
	Targeting   TargetingEcho `json:"targeting"`
}

// GenerationResult 广告生成结果
// TotalCount 恒等于 len(Ads)；部分成功仍是 Success=true
type GenerationResult struct {
	Success bool           `json:"success"`
	Data    GenerationData `json:"data"`
	Error   string         `json:"error,omitempty"`
}
