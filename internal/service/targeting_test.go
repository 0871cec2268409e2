package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"ad_generator_v1/internal/model"
)

func TestDescribeDemographics(t *testing.T) {
	p := testPersona("1", "Nurse").Persona
	assert.Equal(t, "25-34 female Nurse in Austin, middle income, active lifestyle.", DescribeDemographics(p))
}

func TestDescribePsychographics(t *testing.T) {
	p := testPersona("1", "Nurse").Persona
	assert.Equal(t,
		"Values health, interested in fitness, direct communication style, high technology comfort.",
		DescribePsychographics(p))

	assert.Equal(t, "", DescribePsychographics(model.PersonaData{}))
	assert.Equal(t, "Interested in chess.", DescribePsychographics(model.PersonaData{PrimaryInterest: "chess"}))
}
