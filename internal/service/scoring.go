package service

import (
	"strings"
	"unicode/utf8"

	"ad_generator_v1/internal/model"
)

const (
	baseQualityScore = 5
	minQualityScore  = 1
	maxQualityScore  = 10
)

// ScoreExtras 可选的评分输入，两项都提供时才计算附加分
type ScoreExtras struct {
	ImagePrompt    string
	OriginalPrompt string
}

// ScoreQuality 计算广告质量分，结果在 [1,10]
// 纯函数：相同输入总是得到相同分数
func ScoreQuality(persona model.PersonaData, adText string, extras ScoreExtras) int {
	score := baseQualityScore

	if persona.Profession != "" && persona.AgeRange != "" {
		score++
	}
	if persona.PrimaryInterest != "" && persona.Values != "" {
		score++
	}
	if n := utf8.RuneCountInString(adText); n > 20 && n < 200 {
		score++
	}
	if strings.ContainsAny(adText, "!?") {
		score++
	}

	if extras.ImagePrompt != "" && extras.OriginalPrompt != "" {
		imagePrompt := strings.ToLower(extras.ImagePrompt)
		if utf8.RuneCountInString(extras.ImagePrompt) > 50 &&
			strings.Contains(imagePrompt, strings.ToLower(extras.OriginalPrompt)) {
			score++
		}
		if strings.Contains(imagePrompt, "quality") || strings.Contains(imagePrompt, "professional") {
			score++
		}
		if persona.IncomeLevel != "" && persona.Lifestyle != "" {
			score++
		}
	}

	return clampScore(score)
}

func clampScore(score int) int {
	if score < minQualityScore {
		return minQualityScore
	}
	if score > maxQualityScore {
		return maxQualityScore
	}
	return score
}
