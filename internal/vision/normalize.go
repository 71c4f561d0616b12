// Package vision turns AI vision analysis of profile screenshots into
// the same section taxonomy the rest of the pipeline uses.
package vision

import (
	"encoding/json"
	"log/slog"
	"sort"
	"strings"
	"unicode"

	"github.com/jonathan/profile-optimizer/internal/sections"
)

// keyTable maps normalized vision payload keys onto section types. The
// vision model echoes section names as rendered on the page, so several
// surface forms collapse onto each section.
var keyTable = map[string]sections.SectionType{
	"general":                   sections.SectionGeneral,
	"headline":                  sections.SectionHeadline,
	"title":                     sections.SectionHeadline,
	"about":                     sections.SectionAbout,
	"aboutme":                   sections.SectionAbout,
	"summary":                   sections.SectionAbout,
	"professionalsummary":       sections.SectionAbout,
	"profile":                   sections.SectionAbout,
	"experience":                sections.SectionExperience,
	"workexperience":            sections.SectionExperience,
	"professionalexperience":    sections.SectionExperience,
	"employment":                sections.SectionExperience,
	"workhistory":               sections.SectionExperience,
	"education":                 sections.SectionEducation,
	"licenses":                  sections.SectionLicenses,
	"certifications":            sections.SectionLicenses,
	"licensesandcertifications": sections.SectionLicenses,
	"licensescertifications":    sections.SectionLicenses,
	"skills":                    sections.SectionSkills,
	"topskills":                 sections.SectionSkills,
	"projects":                  sections.SectionProjects,
	"publications":              sections.SectionPublications,
	"honors":                    sections.SectionHonors,
	"awards":                    sections.SectionHonors,
	"honorsandawards":           sections.SectionHonors,
	"honorsawards":              sections.SectionHonors,
	"accomplishments":           sections.SectionHonors,
	"volunteer":                 sections.SectionVolunteering,
	"volunteering":              sections.SectionVolunteering,
	"volunteerexperience":       sections.SectionVolunteering,
}

// skillsNoisePhrases are category labels the page renders inside the
// skills section that carry no skill content.
var skillsNoisePhrases = []string{
	"industry knowledge",
	"tools & technologies",
	"interpersonal skills",
}

// Normalize maps a decoded vision payload onto a SectionEntriesMap with
// at most one entry per section; when several payload keys collapse onto
// the same section, the first in sorted key order wins. Unrecognized
// keys are logged and dropped. When no key yields usable content,
// NoContentError is returned: an empty screenshot analysis is a hard
// failure, not an empty-but-valid map.
func Normalize(payload map[string]any) (sections.EntriesMap, error) {
	result := make(sections.EntriesMap)

	// Map iteration order is random; sort keys so repeats of the same
	// analysis produce identical entry ordering.
	keys := make([]string, 0, len(payload))
	for key := range payload {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		section, ok := keyTable[NormalizeKey(key)]
		if !ok {
			slog.Debug("dropping unrecognized vision payload key", "key", key)
			continue
		}

		if _, seen := result[section]; seen {
			slog.Debug("dropping duplicate vision payload key", "key", key, "section", section)
			continue
		}

		text, _ := payload[key].(string)
		content := strings.TrimSpace(text)
		if section == sections.SectionSkills {
			content = cleanSkillsContent(content)
		}
		if content == "" {
			continue
		}

		result[section] = []string{content}
	}

	if len(result) == 0 {
		return nil, &NoContentError{KeyCount: len(payload)}
	}
	return result, nil
}

// ParseAndNormalize decodes a raw vision JSON payload and normalizes it.
func ParseAndNormalize(jsonText string) (sections.EntriesMap, error) {
	var payload map[string]any
	if err := json.Unmarshal([]byte(jsonText), &payload); err != nil {
		return nil, &AnalysisError{Message: "vision response is not a JSON object", Cause: err}
	}
	return Normalize(payload)
}

// NormalizeKey reduces a vision payload key to its lookup form:
// lowercase, "&" spelled out as "and", every non-letter removed.
func NormalizeKey(key string) string {
	key = strings.ToLower(key)
	key = strings.ReplaceAll(key, "&", "and")

	var b strings.Builder
	b.Grow(len(key))
	for _, r := range key {
		if unicode.IsLetter(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// cleanSkillsContent removes category noise the vision model copies out
// of the skills section: the heading echoed as a line, "All ..." filter
// chips, and known category labels.
func cleanSkillsContent(content string) string {
	var kept []string
	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		lower := strings.ToLower(trimmed)
		if trimmed == "" {
			continue
		}
		if lower == "skills" {
			continue
		}
		if strings.HasPrefix(lower, "all ") {
			continue
		}
		if isNoisePhrase(lower) {
			continue
		}
		kept = append(kept, trimmed)
	}
	return strings.Join(kept, "\n")
}

func isNoisePhrase(lower string) bool {
	for _, phrase := range skillsNoisePhrases {
		if lower == phrase {
			return true
		}
	}
	return false
}
