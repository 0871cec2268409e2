package service

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"ad_generator_v1/internal/model"
)

// ==================== 响应形态 ====================

// textShape 文案服务已知的返回形态
type textShape int

const (
	textShapeUnknown  textShape = iota
	textShapeList               // [ {...}, ... ]
	textShapeBare               // {variants: [...]}
	textShapeEnvelope           // {data: {variants: [...]}}
	textShapeNested             // {data: {data: {variants: [...]}}}
)

func (s textShape) String() string {
	switch s {
	case textShapeList:
		return "list"
	case textShapeBare:
		return "bare"
	case textShapeEnvelope:
		return "envelope"
	case textShapeNested:
		return "nested"
	default:
		return "unknown"
	}
}

// imageShape 图片服务已知的返回形态
type imageShape int

const (
	imageShapeUnknown imageShape = iota
	imageShapeBare               // {images: [...]}
	imageShapeEnvelope           // {data: {images: [...]}}
	imageShapeDataList           // {data: [...]}
)

// envelope 上游通用外壳
type envelope struct {
	Success  *bool           `json:"success"`
	Error    string          `json:"error"`
	Message  string          `json:"message"`
	Data     json.RawMessage `json:"data"`
	Variants json.RawMessage `json:"variants"`
	Images   json.RawMessage `json:"images"`
}

func (e envelope) failed() bool {
	return e.Success != nil && !*e.Success
}

func (e envelope) reason() string {
	if e.Error != "" {
		return e.Error
	}
	if e.Message != "" {
		return e.Message
	}
	return "success=false"
}

// ==================== 文案 ====================

// rawTextVariant 文案候选的所有已知字段别名
type rawTextVariant struct {
	Variant         string          `json:"variant"`
	Type            string          `json:"type"`
	AdTitle         string          `json:"adTitle"`
	Title           string          `json:"title"`
	AdText          string          `json:"adText"`
	Text            string          `json:"text"`
	Body            string          `json:"body"`
	QualityScore    json.RawMessage `json:"qualityScore"`
	Score           json.RawMessage `json:"score"`
	HasCallToAction *bool           `json:"hasCallToAction"`
	HasCTA          *bool           `json:"hasCTA"`
}

func (r rawTextVariant) canonical() model.TextVariant {
	v := model.TextVariant{
		Variant:         firstNonEmpty(r.Variant, r.Type),
		AdTitle:         firstNonEmpty(r.AdTitle, r.Title),
		AdText:          firstNonEmpty(r.AdText, r.Text, r.Body),
		QualityScore:    parseScore(r.QualityScore),
		HasCallToAction: true,
	}
	if v.QualityScore == 0 {
		v.QualityScore = parseScore(r.Score)
	}
	switch {
	case r.HasCallToAction != nil:
		v.HasCallToAction = *r.HasCallToAction
	case r.HasCTA != nil:
		v.HasCallToAction = *r.HasCTA
	}
	return v
}

// NormalizeTextResponse 把文案服务的各种返回形态统一成 []model.TextVariant
// 无法识别的形态返回 ErrUnrecognizedShape，没有可用候选返回 ErrNoTextVariants
func NormalizeTextResponse(raw json.RawMessage) ([]model.TextVariant, error) {
	shape, list, err := detectTextShape(raw)
	if err != nil {
		return nil, err
	}

	var items []rawTextVariant
	if err := json.Unmarshal(list, &items); err != nil {
		return nil, fmt.Errorf("%w: 文案候选解析失败(%s): %v", ErrUnrecognizedShape, shape, err)
	}

	variants := make([]model.TextVariant, 0, len(items))
	for _, item := range items {
		v := item.canonical()
		// 标题和正文都为空的候选没有意义
		if v.AdTitle == "" && v.AdText == "" {
			continue
		}
		variants = append(variants, v)
	}

	if len(variants) == 0 {
		return nil, ErrNoTextVariants
	}
	return variants, nil
}

// detectTextShape 识别返回形态并取出候选数组
func detectTextShape(raw json.RawMessage) (textShape, json.RawMessage, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return textShapeUnknown, nil, fmt.Errorf("%w: 空的文案响应", ErrUnrecognizedShape)
	}
	if raw[0] == '[' {
		return textShapeList, raw, nil
	}

	var top envelope
	if err := json.Unmarshal(raw, &top); err != nil {
		return textShapeUnknown, nil, fmt.Errorf("%w: 文案响应不是对象: %v", ErrUnrecognizedShape, err)
	}
	if top.failed() {
		return textShapeUnknown, nil, fmt.Errorf("%w: %s", ErrNoTextVariants, top.reason())
	}
	if isArray(top.Variants) {
		return textShapeBare, top.Variants, nil
	}

	if isObject(top.Data) {
		var mid envelope
		if err := json.Unmarshal(top.Data, &mid); err == nil {
			if isArray(mid.Variants) {
				return textShapeEnvelope, mid.Variants, nil
			}
			if isObject(mid.Data) {
				var inner envelope
				if err := json.Unmarshal(mid.Data, &inner); err == nil && isArray(inner.Variants) {
					return textShapeNested, inner.Variants, nil
				}
			}
		}
	}

	return textShapeUnknown, nil, fmt.Errorf("%w: 文案响应中找不到 variants", ErrUnrecognizedShape)
}

// SelectBestVariant 选出 qualityScore 最高的候选，分数相同时取先出现的
func SelectBestVariant(variants []model.TextVariant) (model.TextVariant, bool) {
	if len(variants) == 0 {
		return model.TextVariant{}, false
	}
	best := variants[0]
	for _, v := range variants[1:] {
		if v.QualityScore > best.QualityScore {
			best = v
		}
	}
	return best, true
}

// ==================== 图片 ====================

type rawImage struct {
	URL           string `json:"url"`
	ImageURL      string `json:"imageUrl"`
	ImageURLSnake string `json:"image_url"`
	Prompt        string `json:"prompt"`
	RevisedPrompt string `json:"revisedPrompt"`
	Size          string `json:"size"`
	Resolution    string `json:"resolution"`
	Provider      string `json:"provider"`
	Model         string `json:"model"`
}

// NormalizeImageResponse 把图片服务的返回统一成 []model.GeneratedImage
// prompt / size 用于补齐上游没有回传的字段
func NormalizeImageResponse(raw json.RawMessage, prompt, size string) ([]model.GeneratedImage, error) {
	raw = bytes.TrimSpace(raw)

	var top envelope
	if err := json.Unmarshal(raw, &top); err != nil {
		return nil, fmt.Errorf("%w: 图片响应不是对象: %v", ErrUnrecognizedShape, err)
	}
	if top.failed() {
		return nil, fmt.Errorf("%w: %s", ErrImageGeneration, top.reason())
	}

	shape, list := detectImageShape(top)
	if shape == imageShapeUnknown {
		return nil, fmt.Errorf("%w: 图片响应中找不到 images", ErrUnrecognizedShape)
	}

	var items []rawImage
	if err := json.Unmarshal(list, &items); err != nil {
		return nil, fmt.Errorf("%w: 图片列表解析失败: %v", ErrUnrecognizedShape, err)
	}

	images := make([]model.GeneratedImage, 0, len(items))
	for _, item := range items {
		url := firstNonEmpty(item.URL, item.ImageURL, item.ImageURLSnake)
		if url == "" {
			continue
		}
		images = append(images, model.GeneratedImage{
			URL:      url,
			Prompt:   firstNonEmpty(item.Prompt, item.RevisedPrompt, prompt),
			Size:     firstNonEmpty(item.Size, item.Resolution, size),
			Provider: firstNonEmpty(item.Provider, item.Model, "unknown"),
		})
	}

	if len(images) == 0 {
		return nil, fmt.Errorf("%w: 没有返回图片", ErrImageGeneration)
	}
	return images, nil
}

func detectImageShape(top envelope) (imageShape, json.RawMessage) {
	if isArray(top.Images) {
		return imageShapeBare, top.Images
	}
	if isArray(top.Data) {
		return imageShapeDataList, top.Data
	}
	if isObject(top.Data) {
		var mid envelope
		if err := json.Unmarshal(top.Data, &mid); err == nil && isArray(mid.Images) {
			return imageShapeEnvelope, mid.Images
		}
	}
	return imageShapeUnknown, nil
}

// ==================== 工具函数 ====================

func isArray(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) > 0 && raw[0] == '['
}

func isObject(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) > 0 && raw[0] == '{'
}

// parseScore 分数可能是数字也可能是数字字符串
func parseScore(raw json.RawMessage) float64 {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return 0
	}

	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return f
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if f, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
			return f
		}
	}
	return 0
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
