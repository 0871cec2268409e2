package service

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ad_generator_v1/internal/model"
)

func TestNormalizeTextResponse_Shapes(t *testing.T) {
	variants := `[{"variant":"urgency","adTitle":"T1","adText":"Body one","qualityScore":6},{"variant":"benefit","adTitle":"T2","adText":"Body two","qualityScore":8}]`

	tests := []struct {
		name  string
		raw   string
		shape textShape
	}{
		{"裸数组", variants, textShapeList},
		{"顶层 variants", `{"variants":` + variants + `}`, textShapeBare},
		{"data 包一层", `{"success":true,"data":{"variants":` + variants + `}}`, textShapeEnvelope},
		{"data 包两层", `{"success":true,"data":{"data":{"variants":` + variants + `}}}`, textShapeNested},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			shape, _, err := detectTextShape(json.RawMessage(tt.raw))
			require.NoError(t, err)
			assert.Equal(t, tt.shape, shape)

			got, err := NormalizeTextResponse(json.RawMessage(tt.raw))
			require.NoError(t, err)
			require.Len(t, got, 2)
			assert.Equal(t, "T2", got[1].AdTitle)
			assert.Equal(t, 8.0, got[1].QualityScore)
		})
	}
}

func TestNormalizeTextResponse_NestedEqualsEnvelope(t *testing.T) {
	inner := `{"variants":[{"title":"Go","text":"Run faster today!","score":"7.5","hasCTA":false}]}`

	envelope, err := NormalizeTextResponse(json.RawMessage(`{"data":` + inner + `}`))
	require.NoError(t, err)
	nested, err := NormalizeTextResponse(json.RawMessage(`{"data":{"data":` + inner + `}}`))
	require.NoError(t, err)

	assert.Equal(t, envelope, nested)
}

func TestNormalizeTextResponse_Aliases(t *testing.T) {
	raw := `{"data":{"variants":[
		{"type":"ease","title":"Easy","body":"Just one tap.","score":"6.5"},
		{"variant":"benefit","adTitle":"Better","text":"Feel better every day","qualityScore":8,"hasCTA":false}
	]}}`

	got, err := NormalizeTextResponse(json.RawMessage(raw))
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, model.TextVariant{
		Variant:         model.VariantEase,
		AdTitle:         "Easy",
		AdText:          "Just one tap.",
		QualityScore:    6.5,
		HasCallToAction: true,
	}, got[0])
	assert.Equal(t, "Feel better every day", got[1].AdText)
	assert.False(t, got[1].HasCallToAction)
}

func TestNormalizeTextResponse_SkipsEmptyVariants(t *testing.T) {
	raw := `{"variants":[{"variant":"urgency","qualityScore":9},{"variant":"ease","adTitle":"Only title"}]}`

	got, err := NormalizeTextResponse(json.RawMessage(raw))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Only title", got[0].AdTitle)
}

func TestNormalizeTextResponse_Errors(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want error
	}{
		{"空响应", ``, ErrUnrecognizedShape},
		{"不是 JSON", `oops`, ErrUnrecognizedShape},
		{"没有 variants", `{"data":{"items":[]}}`, ErrUnrecognizedShape},
		{"variants 不是数组", `{"variants":{"a":1}}`, ErrUnrecognizedShape},
		{"上游报告失败", `{"success":false,"error":"quota exceeded"}`, ErrNoTextVariants},
		{"候选为空", `{"data":{"variants":[]}}`, ErrNoTextVariants},
		{"候选全部无内容", `[{"variant":"ease"}]`, ErrNoTextVariants},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeTextResponse(json.RawMessage(tt.raw))
			assert.ErrorIs(t, err, tt.want)
			assert.Nil(t, got)
		})
	}
}

func TestSelectBestVariant(t *testing.T) {
	variants := []model.TextVariant{
		{Variant: "a", QualityScore: 3},
		{Variant: "b", QualityScore: 7},
		{Variant: "c", QualityScore: 7},
		{Variant: "d", QualityScore: 2},
	}

	best, ok := SelectBestVariant(variants)
	require.True(t, ok)
	assert.Equal(t, "b", best.Variant)

	_, ok = SelectBestVariant(nil)
	assert.False(t, ok)
}

func TestNormalizeImageResponse_Shapes(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"顶层 images", `{"success":true,"images":[{"url":"https://img/1.png","prompt":"p","size":"512x512","provider":"dalle"}]}`},
		{"data.images", `{"data":{"images":[{"imageUrl":"https://img/1.png","revisedPrompt":"p","resolution":"512x512","model":"dalle"}]}}`},
		{"data 数组", `{"data":[{"image_url":"https://img/1.png","prompt":"p","size":"512x512","provider":"dalle"}]}`},
	}

	want := model.GeneratedImage{URL: "https://img/1.png", Prompt: "p", Size: "512x512", Provider: "dalle"}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeImageResponse(json.RawMessage(tt.raw), "fallback", "1024x1024")
			require.NoError(t, err)
			require.Len(t, got, 1)
			assert.Equal(t, want, got[0])
		})
	}
}

func TestNormalizeImageResponse_Fallbacks(t *testing.T) {
	raw := `{"images":[{"prompt":"no url"},{"url":"https://img/2.png"}]}`

	got, err := NormalizeImageResponse(json.RawMessage(raw), "requested prompt", "1024x1024")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, model.GeneratedImage{
		URL:      "https://img/2.png",
		Prompt:   "requested prompt",
		Size:     "1024x1024",
		Provider: "unknown",
	}, got[0])
}

func TestNormalizeImageResponse_Errors(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want error
	}{
		{"上游报告失败", `{"success":false,"error":"nsfw"}`, ErrImageGeneration},
		{"零张图片", `{"success":true,"images":[]}`, ErrImageGeneration},
		{"没有可用 url", `{"images":[{"prompt":"x"}]}`, ErrImageGeneration},
		{"无法识别", `{"success":true,"result":"ok"}`, ErrUnrecognizedShape},
		{"不是对象", `[1,2]`, ErrUnrecognizedShape},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NormalizeImageResponse(json.RawMessage(tt.raw), "p", "1024x1024")
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestParseScore(t *testing.T) {
	assert.Equal(t, 7.0, parseScore(json.RawMessage(`7`)))
	assert.Equal(t, 8.5, parseScore(json.RawMessage(`"8.5"`)))
	assert.Equal(t, 0.0, parseScore(json.RawMessage(`"high"`)))
	assert.Equal(t, 0.0, parseScore(json.RawMessage(`null`)))
	assert.Equal(t, 0.0, parseScore(nil))
}
