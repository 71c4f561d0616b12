package vision

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/profile-optimizer/internal/sections"
)

func TestNormalizeKey(t *testing.T) {
	tests := []struct {
		name string
		key  string
		want string
	}{
		{"lowercase passthrough", "about", "about"},
		{"mixed case", "Work Experience", "workexperience"},
		{"ampersand spelled out", "Licenses & Certifications", "licensesandcertifications"},
		{"punctuation stripped", "honors-awards!", "honorsawards"},
		{"digits stripped", "skills2024", "skills"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeKey(tt.key))
		})
	}
}

func TestNormalizeMapsSurfaceForms(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		section sections.SectionType
	}{
		{"headline", "Headline", sections.SectionHeadline},
		{"summary alias", "Professional Summary", sections.SectionAbout},
		{"work history alias", "Work History", sections.SectionExperience},
		{"education", "Education", sections.SectionEducation},
		{"certifications alias", "Certifications", sections.SectionLicenses},
		{"top skills alias", "Top Skills", sections.SectionSkills},
		{"awards alias", "Awards", sections.SectionHonors},
		{"volunteering", "Volunteer Experience", sections.SectionVolunteering},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Normalize(map[string]any{tt.key: "Some content"})
			require.NoError(t, err)
			require.Contains(t, got, tt.section)
			assert.Equal(t, []string{"Some content"}, got[tt.section])
		})
	}
}

func TestNormalizeEquivalentKeysAgree(t *testing.T) {
	// The model sometimes echoes the rendered heading and sometimes a
	// collapsed form; both must land in the same section.
	rendered, err := Normalize(map[string]any{"Licenses & Certifications": "AWS SAA"})
	require.NoError(t, err)
	collapsed, err := Normalize(map[string]any{"licensescertifications": "AWS SAA"})
	require.NoError(t, err)

	assert.Equal(t, rendered, collapsed)
}

func TestNormalizeDuplicateSectionKeysKeepFirst(t *testing.T) {
	// "Certifications" sorts before "Licenses"; both land on the same
	// section and the payload must still yield a single entry.
	got, err := Normalize(map[string]any{
		"Certifications": "AWS SAA",
		"Licenses":       "Drone Pilot",
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"AWS SAA"}, got[sections.SectionLicenses])
}

func TestNormalizeDuplicateKeyWithEmptyFirstValueYields(t *testing.T) {
	// An empty first key must not shadow a later usable one.
	got, err := Normalize(map[string]any{
		"Certifications": "",
		"Licenses":       "Drone Pilot",
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"Drone Pilot"}, got[sections.SectionLicenses])
}

func TestNormalizeDropsUnrecognizedKeys(t *testing.T) {
	got, err := Normalize(map[string]any{
		"About":     "I build things.",
		"Followers": "512",
		"Activity":  "Posted 3 days ago",
	})
	require.NoError(t, err)

	assert.Len(t, got, 1)
	assert.Equal(t, []string{"I build things."}, got[sections.SectionAbout])
}

func TestNormalizeNonStringValuesBecomeEmpty(t *testing.T) {
	_, err := Normalize(map[string]any{
		"About":  42,
		"Skills": []any{"Go", "SQL"},
	})

	var noContent *NoContentError
	require.ErrorAs(t, err, &noContent)
	assert.Equal(t, 2, noContent.KeyCount)
}

func TestNormalizeEmptyPayloadIsHardFailure(t *testing.T) {
	_, err := Normalize(map[string]any{})

	var noContent *NoContentError
	assert.ErrorAs(t, err, &noContent)
}

func TestNormalizeCleansSkillsNoise(t *testing.T) {
	got, err := Normalize(map[string]any{
		"Skills": "Skills\nAll filters\nIndustry Knowledge\nGo\nTools & Technologies\nPostgreSQL\nInterpersonal Skills",
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"Go\nPostgreSQL"}, got[sections.SectionSkills])
}

func TestNormalizeSkillsReducedToNothingIsDropped(t *testing.T) {
	_, err := Normalize(map[string]any{
		"Skills": "Skills\nAll filters",
	})

	var noContent *NoContentError
	assert.ErrorAs(t, err, &noContent)
}

func TestParseAndNormalize(t *testing.T) {
	got, err := ParseAndNormalize(`{"Headline": "Staff Engineer", "About": "I build things."}`)
	require.NoError(t, err)

	assert.Equal(t, []string{"Staff Engineer"}, got[sections.SectionHeadline])
	assert.Equal(t, []string{"I build things."}, got[sections.SectionAbout])
}

func TestParseAndNormalizeRejectsNonObject(t *testing.T) {
	_, err := ParseAndNormalize(`["About"]`)

	var analysisErr *AnalysisError
	assert.ErrorAs(t, err, &analysisErr)
}
