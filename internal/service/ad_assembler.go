package service

import (
	"context"
	"fmt"
	"time"

	"ad_generator_v1/internal/config"
	"ad_generator_v1/internal/model"
)

// 文案长度限制
const (
	adTitleLimit = 30
	adTextLimit  = 90
)

// AdAssembler 为单个画像组装一条广告
type AdAssembler struct {
	images  ImageGenerator
	texts   TextGenerator
	prompts PromptBuilder

	imageSize      string
	defaultStyle   string
	defaultQuality string

	now func() time.Time
}

func NewAdAssembler(images ImageGenerator, texts TextGenerator, prompts PromptBuilder, cfg config.AdsConfig) *AdAssembler {
	if prompts == nil {
		prompts = TemplatePromptBuilder{}
	}
	return &AdAssembler{
		images:         images,
		texts:          texts,
		prompts:        prompts,
		imageSize:      cfg.ImageSize,
		defaultStyle:   cfg.DefaultImageStyle,
		defaultQuality: cfg.DefaultImageQuality,
		now:            time.Now,
	}
}

// Assemble 图片和文案任一没有可用结果时返回错误，由调用方决定是否跳过
func (a *AdAssembler) Assemble(ctx context.Context, persona model.Persona, req model.GenerationRequest, requestID string) (*model.GeneratedAd, error) {
	imagePrompt := a.prompts.ImagePrompt(req.Prompt, persona.Persona, req.Country)
	textPrompt := a.prompts.TextPrompt(req.Prompt, persona.Persona, req.Country, req.Language)

	// 1. 图片
	image, err := a.generateImage(ctx, imagePrompt, req)
	if err != nil {
		return nil, err
	}

	// 2. 文案
	rawText, err := a.texts.Generate(ctx, model.TextRequest{
		Prompt:       textPrompt,
		AdTitleLimit: adTitleLimit,
		AdTextLimit:  adTextLimit,
	})
	if err != nil {
		return nil, fmt.Errorf("文案生成失败: %w", err)
	}
	variants, err := NormalizeTextResponse(rawText)
	if err != nil {
		return nil, err
	}
	best, _ := SelectBestVariant(variants)

	// 3. 评分与投放信息
	score := ScoreQuality(persona.Persona, best.AdText, ScoreExtras{
		ImagePrompt:    imagePrompt,
		OriginalPrompt: req.Prompt,
	})

	return &model.GeneratedAd{
		ID:           AdID(requestID, persona.ID),
		Persona:      persona,
		Image:        image,
		Text:         best,
		TextVariants: variants,
		Targeting:    buildTargeting(persona.Persona, req.Country, req.Language),
		QualityScore: score,
		GeneratedAt:  a.now().UTC(),
	}, nil
}

func (a *AdAssembler) generateImage(ctx context.Context, prompt string, req model.GenerationRequest) (model.GeneratedImage, error) {
	raw, err := a.images.GenerateImage(ctx, prompt, model.ImageOptions{
		Count:   1,
		Size:    a.imageSize,
		Style:   firstNonEmpty(req.ImageStyle, a.defaultStyle),
		Quality: firstNonEmpty(req.ImageQuality, a.defaultQuality),
	})
	if err != nil {
		return model.GeneratedImage{}, fmt.Errorf("%w: %w", ErrImageGeneration, err)
	}

	images, err := NormalizeImageResponse(raw, prompt, a.imageSize)
	if err != nil {
		return model.GeneratedImage{}, err
	}
	return images[0], nil
}

// AdID 广告ID = 请求ID-画像ID
func AdID(requestID string, personaID model.PersonaID) string {
	return requestID + "-" + personaID.String()
}
