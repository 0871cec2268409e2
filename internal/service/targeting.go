package service

import (
	"fmt"
	"strings"

	"ad_generator_v1/internal/model"
)

// DescribeDemographics 人口统计描述
func DescribeDemographics(p model.PersonaData) string {
	return fmt.Sprintf("%s %s %s in %s, %s income, %s lifestyle.",
		p.AgeRange, p.Gender, p.Profession, p.Location, p.IncomeLevel, p.Lifestyle)
}

// DescribePsychographics 心理特征描述，全部为空时返回空串
func DescribePsychographics(p model.PersonaData) string {
	var parts []string
	if p.Values != "" {
		parts = append(parts, "values "+p.Values)
	}
	if p.PrimaryInterest != "" {
		parts = append(parts, "interested in "+p.PrimaryInterest)
	}
	if p.CommunicationStyle != "" {
		parts = append(parts, p.CommunicationStyle+" communication style")
	}
	if p.TechnologyComfort != "" {
		parts = append(parts, p.TechnologyComfort+" technology comfort")
	}
	if len(parts) == 0 {
		return ""
	}

	s := strings.Join(parts, ", ")
	return strings.ToUpper(s[:1]) + s[1:] + "."
}

// buildTargeting 组装单条广告的投放信息
func buildTargeting(p model.PersonaData, country, language string) model.Targeting {
	return model.Targeting{
		Country:        country,
		Language:       language,
		Demographics:   DescribeDemographics(p),
		Psychographics: DescribePsychographics(p),
	}
}
