package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/profile-optimizer/internal/sections"
)

func TestParseResultHeadline(t *testing.T) {
	payload := `{"options":["Staff Engineer | Go & Distributed Systems"],"suggestions":[{"rationale":"stronger","before":"Engineer","after":"Staff Engineer"}]}`

	result := ParseResult(sections.SectionHeadline, payload)

	require.NotNil(t, result.Headline)
	assert.False(t, result.IsFallback())
	assert.Equal(t, sections.SectionHeadline, result.Section)
	assert.Equal(t, []string{"Staff Engineer | Go & Distributed Systems"}, result.Headline.Options)
	require.Len(t, result.Suggestions(), 1)
	assert.Equal(t, "stronger", result.Suggestions()[0].Rationale)
}

func TestParseResultExperience(t *testing.T) {
	payload := `{"title":"Software Engineer","company":"Acme","description":"Built billing systems","highlights":["Cut latency 40%"],"suggestions":[]}`

	result := ParseResult(sections.SectionExperience, payload)

	require.NotNil(t, result.Experience)
	assert.Equal(t, "Acme", result.Experience.Company)
	assert.Equal(t, []string{"Cut latency 40%"}, result.Experience.Highlights)
}

func TestParseResultFallback(t *testing.T) {
	tests := []struct {
		name    string
		section sections.SectionType
		payload string
	}{
		{"Invalid JSON", sections.SectionAbout, "not json at all"},
		{"JSON array instead of object", sections.SectionSkills, `["go","python"]`},
		{"Wrong field types", sections.SectionHeadline, `{"options":"should be a list"}`},
		{"Missing required content", sections.SectionHeadline, `{"options":[],"suggestions":[]}`},
		{"Empty optimized text", sections.SectionAbout, `{"optimized":"  ","suggestions":[]}`},
		{"Empty object for experience", sections.SectionExperience, `{}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ParseResult(tt.section, tt.payload)

			require.NotNil(t, result.Fallback)
			assert.True(t, result.IsFallback())
			assert.True(t, result.Fallback.Fallback, "fallback marker must be set")
			assert.Equal(t, tt.payload, result.Fallback.Text, "raw content must be preserved")
			assert.Equal(t, tt.section, result.Section)
			assert.Nil(t, result.Suggestions())
		})
	}
}

func TestParseResultEveryVariant(t *testing.T) {
	tests := []struct {
		section sections.SectionType
		payload string
	}{
		{sections.SectionGeneral, `{"optimized":"Better text","suggestions":[]}`},
		{sections.SectionAbout, `{"optimized":"Better about","suggestions":[]}`},
		{sections.SectionEducation, `{"school":"State University","degree":"BSc","suggestions":[]}`},
		{sections.SectionLicenses, `{"certifications":[{"name":"AWS SA","issuer":"Amazon"}],"suggestions":[]}`},
		{sections.SectionSkills, `{"skills":["Go","SQL"],"suggestions":[]}`},
		{sections.SectionProjects, `{"name":"CLI","description":"A tool","suggestions":[]}`},
		{sections.SectionPublications, `{"optimized":"Paper list","suggestions":[]}`},
		{sections.SectionHonors, `{"honors":["Dean's list"],"suggestions":[]}`},
		{sections.SectionVolunteering, `{"role":"Mentor","organization":"Org","description":"Mentored students","suggestions":[]}`},
	}

	for _, tt := range tests {
		t.Run(string(tt.section), func(t *testing.T) {
			result := ParseResult(tt.section, tt.payload)
			assert.False(t, result.IsFallback(), "expected structured variant for %s", tt.section)
			assert.Equal(t, tt.section, result.Section)
		})
	}
}

func TestNewFallback(t *testing.T) {
	result := NewFallback(sections.SectionSkills, "raw model text")
	assert.True(t, result.IsFallback())
	assert.Equal(t, "raw model text", result.Fallback.Text)
}
