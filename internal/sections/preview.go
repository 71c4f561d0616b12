package sections

import "strings"

// DefaultPreviewLength is the maximum length (in runes) of an entry
// preview label.
const DefaultPreviewLength = 35

// Preview derives a short human-readable label for an entry, suitable for
// selection chips. Section-specific heuristics pick the most identifying
// line; the result is truncated to DefaultPreviewLength runes.
func Preview(section SectionType, content string) string {
	return PreviewN(section, content, DefaultPreviewLength)
}

// PreviewN is Preview with a caller-chosen maximum length.
func PreviewN(section SectionType, content string, maxLen int) string {
	lines := nonEmptyLines(content)
	if len(lines) == 0 {
		return "Empty entry"
	}

	var label string
	switch section {
	case SectionExperience:
		label = experiencePreview(lines)
	case SectionEducation, SectionProjects, SectionLicenses,
		SectionHonors, SectionVolunteering, SectionSkills:
		label = lines[0]
	default:
		label = lines[0]
		if label == "" {
			label = "Entry"
		}
	}

	return truncate(label, maxLen)
}

// experiencePreview extracts a job title from "Title at Company" first
// lines, falling back to the second line (candidate company name) and
// then the first line.
func experiencePreview(lines []string) string {
	first := lines[0]
	if idx := indexFold(first, " at "); idx >= 0 {
		if title := strings.TrimSpace(first[:idx]); title != "" {
			return title
		}
	}
	if len(lines) > 1 {
		return lines[1]
	}
	return first
}

// indexFold finds the first case-insensitive occurrence of the ASCII
// separator in s and returns its byte offset. Lowercasing the haystack
// and indexing into the original would mis-slice when case folding
// changes byte widths, so the scan compares windows of s directly.
func indexFold(s, sep string) int {
	for i := 0; i+len(sep) <= len(s); i++ {
		if strings.EqualFold(s[i:i+len(sep)], sep) {
			return i
		}
	}
	return -1
}

// nonEmptyLines returns the trimmed non-empty lines of content.
func nonEmptyLines(content string) []string {
	var lines []string
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// truncate limits s to maxLen runes.
func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if maxLen <= 0 || len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen])
}
