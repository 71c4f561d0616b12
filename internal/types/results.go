// Package types provides type definitions for structured data used
// throughout the profile-optimizer system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/jonathan/profile-optimizer/internal/sections"
)

// Suggestion is a single improvement proposal produced by an
// optimization call.
type Suggestion struct {
	Rationale string `json:"rationale"`
	Before    string `json:"before"`
	After     string `json:"after"`
}

// HeadlineResult holds optimization output for the headline section.
type HeadlineResult struct {
	Options     []string     `json:"options"`
	Suggestions []Suggestion `json:"suggestions"`
}

// AboutResult holds optimization output for the about section.
type AboutResult struct {
	Optimized   string       `json:"optimized"`
	Suggestions []Suggestion `json:"suggestions"`
}

// ExperienceResult holds optimization output for one experience entry.
type ExperienceResult struct {
	Title       string       `json:"title"`
	Company     string       `json:"company"`
	Description string       `json:"description"`
	Highlights  []string     `json:"highlights,omitempty"`
	Suggestions []Suggestion `json:"suggestions"`
}

// EducationResult holds optimization output for one education entry.
type EducationResult struct {
	School      string       `json:"school"`
	Degree      string       `json:"degree"`
	Field       string       `json:"field,omitempty"`
	Notes       string       `json:"notes,omitempty"`
	Suggestions []Suggestion `json:"suggestions"`
}

// Certification is a single license or certification item.
type Certification struct {
	Name   string `json:"name"`
	Issuer string `json:"issuer,omitempty"`
}

// LicensesResult holds optimization output for the licenses and
// certifications section.
type LicensesResult struct {
	Certifications []Certification `json:"certifications"`
	Suggestions    []Suggestion    `json:"suggestions"`
}

// SkillsResult holds optimization output for the skills section.
type SkillsResult struct {
	Skills      []string     `json:"skills"`
	Suggestions []Suggestion `json:"suggestions"`
}

// ProjectsResult holds optimization output for one project entry.
type ProjectsResult struct {
	Name         string       `json:"name"`
	Description  string       `json:"description"`
	Technologies []string     `json:"technologies,omitempty"`
	Suggestions  []Suggestion `json:"suggestions"`
}

// PublicationsResult holds optimization output for the publications
// section.
type PublicationsResult struct {
	Optimized   string       `json:"optimized"`
	Suggestions []Suggestion `json:"suggestions"`
}

// HonorsResult holds optimization output for the honors and awards
// section.
type HonorsResult struct {
	Honors      []string     `json:"honors"`
	Suggestions []Suggestion `json:"suggestions"`
}

// VolunteeringResult holds optimization output for one volunteer entry.
type VolunteeringResult struct {
	Role         string       `json:"role"`
	Organization string       `json:"organization"`
	Description  string       `json:"description"`
	Suggestions  []Suggestion `json:"suggestions"`
}

// GeneralResult holds optimization output for general profile content.
type GeneralResult struct {
	Optimized   string       `json:"optimized"`
	Suggestions []Suggestion `json:"suggestions"`
}

// FallbackResult carries raw model output when the structured response
// could not be parsed for the requested section. The Fallback marker lets
// callers warn the user without losing the content.
type FallbackResult struct {
	Text     string `json:"text"`
	Fallback bool   `json:"_fallback"`
}

// StructuredResult is a tagged union over the per-section optimization
// result shapes. Exactly one variant pointer is non-nil; Section names
// the variant. Parse failures populate the Fallback variant instead of
// returning an error.
type StructuredResult struct {
	Section sections.SectionType `json:"section"`

	General      *GeneralResult      `json:"general,omitempty"`
	Headline     *HeadlineResult     `json:"headline,omitempty"`
	About        *AboutResult        `json:"about,omitempty"`
	Experience   *ExperienceResult   `json:"experience,omitempty"`
	Education    *EducationResult    `json:"education,omitempty"`
	Licenses     *LicensesResult     `json:"licenses,omitempty"`
	Skills       *SkillsResult       `json:"skills,omitempty"`
	Projects     *ProjectsResult     `json:"projects,omitempty"`
	Publications *PublicationsResult `json:"publications,omitempty"`
	Honors       *HonorsResult       `json:"honors,omitempty"`
	Volunteering *VolunteeringResult `json:"volunteering,omitempty"`
	Fallback     *FallbackResult     `json:"fallback,omitempty"`
}

// IsFallback reports whether the result is the plain-text fallback
// variant.
func (r *StructuredResult) IsFallback() bool {
	return r != nil && r.Fallback != nil
}

// Suggestions returns the suggestion list of whichever variant is set.
// The fallback variant has none.
func (r *StructuredResult) Suggestions() []Suggestion {
	if r == nil {
		return nil
	}
	switch {
	case r.General != nil:
		return r.General.Suggestions
	case r.Headline != nil:
		return r.Headline.Suggestions
	case r.About != nil:
		return r.About.Suggestions
	case r.Experience != nil:
		return r.Experience.Suggestions
	case r.Education != nil:
		return r.Education.Suggestions
	case r.Licenses != nil:
		return r.Licenses.Suggestions
	case r.Skills != nil:
		return r.Skills.Suggestions
	case r.Projects != nil:
		return r.Projects.Suggestions
	case r.Publications != nil:
		return r.Publications.Suggestions
	case r.Honors != nil:
		return r.Honors.Suggestions
	case r.Volunteering != nil:
		return r.Volunteering.Suggestions
	}
	return nil
}

// NewFallback builds the fallback variant around raw model output.
func NewFallback(section sections.SectionType, raw string) *StructuredResult {
	return &StructuredResult{
		Section:  section,
		Fallback: &FallbackResult{Text: raw, Fallback: true},
	}
}

// ParseResult decodes a model JSON payload into the variant expected for
// section. Invalid JSON, a shape mismatch, or missing required content
// all degrade to the fallback variant; ParseResult never returns an
// error and never panics.
func ParseResult(section sections.SectionType, jsonText string) *StructuredResult {
	result := &StructuredResult{Section: section}

	switch section {
	case sections.SectionHeadline:
		var v HeadlineResult
		if decodeStrict(jsonText, &v) != nil || len(v.Options) == 0 {
			return NewFallback(section, jsonText)
		}
		result.Headline = &v
	case sections.SectionAbout:
		var v AboutResult
		if decodeStrict(jsonText, &v) != nil || strings.TrimSpace(v.Optimized) == "" {
			return NewFallback(section, jsonText)
		}
		result.About = &v
	case sections.SectionExperience:
		var v ExperienceResult
		if decodeStrict(jsonText, &v) != nil || strings.TrimSpace(v.Description) == "" {
			return NewFallback(section, jsonText)
		}
		result.Experience = &v
	case sections.SectionEducation:
		var v EducationResult
		if decodeStrict(jsonText, &v) != nil || strings.TrimSpace(v.School) == "" {
			return NewFallback(section, jsonText)
		}
		result.Education = &v
	case sections.SectionLicenses:
		var v LicensesResult
		if decodeStrict(jsonText, &v) != nil || len(v.Certifications) == 0 {
			return NewFallback(section, jsonText)
		}
		result.Licenses = &v
	case sections.SectionSkills:
		var v SkillsResult
		if decodeStrict(jsonText, &v) != nil || len(v.Skills) == 0 {
			return NewFallback(section, jsonText)
		}
		result.Skills = &v
	case sections.SectionProjects:
		var v ProjectsResult
		if decodeStrict(jsonText, &v) != nil || strings.TrimSpace(v.Description) == "" {
			return NewFallback(section, jsonText)
		}
		result.Projects = &v
	case sections.SectionPublications:
		var v PublicationsResult
		if decodeStrict(jsonText, &v) != nil || strings.TrimSpace(v.Optimized) == "" {
			return NewFallback(section, jsonText)
		}
		result.Publications = &v
	case sections.SectionHonors:
		var v HonorsResult
		if decodeStrict(jsonText, &v) != nil || len(v.Honors) == 0 {
			return NewFallback(section, jsonText)
		}
		result.Honors = &v
	case sections.SectionVolunteering:
		var v VolunteeringResult
		if decodeStrict(jsonText, &v) != nil || strings.TrimSpace(v.Description) == "" {
			return NewFallback(section, jsonText)
		}
		result.Volunteering = &v
	default:
		var v GeneralResult
		if decodeStrict(jsonText, &v) != nil || strings.TrimSpace(v.Optimized) == "" {
			return NewFallback(section, jsonText)
		}
		result.General = &v
	}

	return result
}

// errNotObject rejects payloads that are valid JSON but not an object.
var errNotObject = errors.New("payload is not a JSON object")

// decodeStrict unmarshals jsonText into v, rejecting payloads that are
// not a JSON object.
func decodeStrict(jsonText string, v any) error {
	trimmed := strings.TrimSpace(jsonText)
	if !strings.HasPrefix(trimmed, "{") {
		return errNotObject
	}
	return json.Unmarshal([]byte(trimmed), v)
}
