package sections

import "strings"

// Split partitions the full raw text of a document into per-section entry
// lists. Lines recognized by Classify start a new section; within a
// section, two consecutive blank lines separate entries, while a single
// blank line is preserved as an intra-entry paragraph break. Content that
// appears before the first recognized heading is dropped, so preamble and
// contact-info text is never attributed to an arbitrary section.
func Split(raw string) EntriesMap {
	result := make(EntriesMap)
	if strings.TrimSpace(raw) == "" {
		return result
	}

	raw = strings.ReplaceAll(raw, "\r\n", "\n")
	raw = strings.ReplaceAll(raw, "\r", "\n")

	var (
		current    SectionType
		hasCurrent bool
		buffer     []string
		blankRun   int
	)

	flush := func() {
		if !hasCurrent || len(buffer) == 0 {
			buffer = nil
			return
		}
		content := strings.TrimSpace(strings.Join(buffer, "\n"))
		buffer = nil
		if content == "" {
			return
		}
		result[current] = append(result[current], content)
	}

	for _, line := range strings.Split(raw, "\n") {
		if section, ok := Classify(line); ok {
			flush()
			current = section
			hasCurrent = true
			blankRun = 0
			continue
		}

		if !hasCurrent {
			continue
		}

		if strings.TrimSpace(line) == "" {
			blankRun++
			if blankRun >= 2 {
				// Two consecutive blank lines end the current entry.
				flush()
				blankRun = 0
				continue
			}
			// A single blank line is an intra-entry paragraph break.
			if len(buffer) > 0 && buffer[len(buffer)-1] != "" {
				buffer = append(buffer, "")
			}
			continue
		}

		blankRun = 0
		buffer = append(buffer, line)
	}

	flush()
	return result
}
