package sections

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// maxHeadingLength is the longest line (in runes) treated as a heading
// candidate. Real section headings are short; anything longer is prose.
const maxHeadingLength = 80

// sentencePunctuation marks a line as prose rather than a heading.
// Covers both ASCII and full-width CJK sentence enders.
const sentencePunctuation = ".;!?！？。"

// Classify maps a single line of text to a section type. The second
// return value is false when the line is not recognized as a heading.
//
// The keyword table is checked in declaration order and the first match
// wins; see KeywordTable.
func Classify(line string) (SectionType, bool) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return "", false
	}
	if utf8.RuneCountInString(trimmed) > maxHeadingLength {
		return "", false
	}
	if strings.ContainsAny(trimmed, sentencePunctuation) {
		return "", false
	}

	normalized := NormalizeHeading(trimmed)
	if normalized == "" {
		return "", false
	}

	for _, row := range KeywordTable {
		for _, keyword := range row.Keywords {
			if matchesKeyword(normalized, keyword) {
				return row.Section, true
			}
		}
	}

	return "", false
}

// matchesKeyword reports whether a normalized heading line matches a
// single keyword: exact match, prefix match, or, for multi-word keywords
// only, substring match.
func matchesKeyword(normalized, keyword string) bool {
	if normalized == keyword {
		return true
	}
	if strings.HasPrefix(normalized, keyword) {
		return true
	}
	if strings.Contains(keyword, " ") && strings.Contains(normalized, keyword) {
		return true
	}
	return false
}

// NormalizeHeading lowercases a heading candidate and reduces it to the
// alphabet the keyword table is written in: ASCII letters, CJK ideographs,
// '&', '-', and single spaces. Everything else becomes a space, then
// whitespace is collapsed and trimmed.
func NormalizeHeading(line string) string {
	lower := strings.ToLower(line)

	var b strings.Builder
	b.Grow(len(lower))
	for _, r := range lower {
		switch {
		case r >= 'a' && r <= 'z':
			b.WriteRune(r)
		case unicode.Is(unicode.Han, r):
			b.WriteRune(r)
		case r == '&' || r == '-':
			b.WriteRune(r)
		default:
			b.WriteRune(' ')
		}
	}

	return strings.Join(strings.Fields(b.String()), " ")
}
