package service

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"ad_generator_v1/internal/model"
)

// TemplatePromptBuilder 基于模板的默认提示词构造器
type TemplatePromptBuilder struct{}

var _ PromptBuilder = TemplatePromptBuilder{}

var (
	nonWordPattern = regexp.MustCompile(`[^\w\s]`)
	benefitPattern = regexp.MustCompile(`(ing|ed|ize|ify|en|ate|fy|ise|ive|al|ful|less|able|ible|ous|ious|ent|ant|ic|ical|er|est|ier|iest)$`)
)

var promptStopWords = map[string]struct{}{
	"for": {}, "with": {}, "that": {}, "this": {}, "they": {}, "them": {}, "their": {},
	"help": {}, "make": {}, "create": {}, "build": {}, "app": {}, "service": {}, "product": {},
	"the": {}, "and": {}, "or": {}, "but": {}, "in": {}, "on": {}, "at": {}, "to": {}, "of": {},
	"by": {}, "from": {}, "up": {}, "about": {}, "into": {}, "through": {}, "during": {},
	"before": {}, "after": {}, "above": {}, "below": {}, "between": {}, "among": {}, "under": {},
	"over": {}, "within": {}, "without": {}, "against": {}, "across": {}, "behind": {},
	"beyond": {}, "inside": {}, "outside": {},
}

// ImagePrompt 图片提示词
func (TemplatePromptBuilder) ImagePrompt(brief string, persona model.PersonaData, country string) string {
	return fmt.Sprintf(`Create a professional advertisement image for: %s

Product/Service: %s
Target Audience: %s
Visual Style: Professional, high-quality, %s market aesthetic
Keywords: %s
Setting: %s with %s lifestyle elements`,
		brief,
		productType(brief),
		targetAudience(persona),
		country,
		extractKeywords(brief),
		professionContext(persona.Profession),
		persona.Lifestyle,
	)
}

// TextPrompt 文案提示词
func (TemplatePromptBuilder) TextPrompt(brief string, persona model.PersonaData, country, language string) string {
	return fmt.Sprintf(`Create compelling advertisement text for: %s

Product/Service: %s
Key Benefits: %s
Target Market: %s (%s)
Target Audience: %s

Demographics:
- Age: %s
- Gender: %s
- Profession: %s
- Location: %s
- Income: %s

Psychographics:
- Lifestyle: %s
- Values: %s
- Interests: %s
- Communication Style: %s
- Technology Comfort: %s

Generate engaging ad copy that resonates with this specific persona using natural %s appropriate for %s market.`,
		brief,
		productType(brief),
		keyBenefits(brief),
		country, language,
		targetAudience(persona),
		persona.AgeRange, persona.Gender, persona.Profession, persona.Location, persona.IncomeLevel,
		persona.Lifestyle, persona.Values, persona.PrimaryInterest, persona.CommunicationStyle, persona.TechnologyComfort,
		language, country,
	)
}

// ==================== 关键词提取 ====================

// promptWords 小写、去标点后长度大于 3 的词
func promptWords(brief string) []string {
	cleaned := nonWordPattern.ReplaceAllString(strings.ToLower(brief), " ")
	var words []string
	for _, w := range strings.Fields(cleaned) {
		if len(w) > 3 {
			words = append(words, w)
		}
	}
	return words
}

func extractKeywords(brief string) string {
	var keywords []string
	for _, w := range promptWords(brief) {
		if _, stop := promptStopWords[w]; stop {
			continue
		}
		keywords = append(keywords, w)
		if len(keywords) == 5 {
			break
		}
	}
	if len(keywords) == 0 {
		return "key, features, benefits"
	}
	return strings.Join(keywords, ", ")
}

func productType(brief string) string {
	words := promptWords(brief)
	if len(words) == 0 {
		return "Product/Service"
	}
	if len(words) > 3 {
		words = words[:3]
	}
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

func keyBenefits(brief string) string {
	var benefits []string
	for _, w := range promptWords(brief) {
		if benefitPattern.MatchString(w) {
			benefits = append(benefits, w)
			if len(benefits) == 3 {
				break
			}
		}
	}
	if len(benefits) == 0 {
		return "value, quality, convenience"
	}
	return strings.Join(benefits, ", ")
}

func targetAudience(p model.PersonaData) string {
	return fmt.Sprintf("%s %s %s in %s, %s income, %s lifestyle",
		p.AgeRange, p.Gender, p.Profession, p.Location, p.IncomeLevel, p.Lifestyle)
}

// professionContext 取职业里最长的词(长度 > 4)作为场景
func professionContext(profession string) string {
	words := strings.Fields(strings.ToLower(profession))
	if len(words) == 0 {
		return "professional work environment"
	}

	var long []string
	for _, w := range words {
		if len(w) > 4 {
			long = append(long, w)
		}
	}
	descriptive := words[0]
	if len(long) > 0 {
		sort.SliceStable(long, func(i, j int) bool { return len(long[i]) > len(long[j]) })
		descriptive = long[0]
	}
	return descriptive + " professional environment"
}
