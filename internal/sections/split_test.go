package sections

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplit(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want EntriesMap
	}{
		{
			name: "Single section single entry",
			raw:  "Experience\nSoftware Engineer at Acme\nBuilt things",
			want: EntriesMap{
				SectionExperience: {"Software Engineer at Acme\nBuilt things"},
			},
		},
		{
			name: "Double blank line starts a new entry",
			raw:  "Experience\nJob A\n\n\nJob B",
			want: EntriesMap{
				SectionExperience: {"Job A", "Job B"},
			},
		},
		{
			name: "Single blank line preserved inside entry",
			raw:  "About\nLine1\n\nLine2",
			want: EntriesMap{
				SectionAbout: {"Line1\n\nLine2"},
			},
		},
		{
			name: "Multiple sections",
			raw:  "About\nSeasoned engineer\nExperience\nJob A\nEducation\nState University",
			want: EntriesMap{
				SectionAbout:      {"Seasoned engineer"},
				SectionExperience: {"Job A"},
				SectionEducation:  {"State University"},
			},
		},
		{
			name: "Preamble before first heading is dropped",
			raw:  "Jane Doe\njane@example\nExperience\nJob A",
			want: EntriesMap{
				SectionExperience: {"Job A"},
			},
		},
		{
			name: "CRLF input",
			raw:  "Experience\r\nJob A\r\n\r\n\r\nJob B",
			want: EntriesMap{
				SectionExperience: {"Job A", "Job B"},
			},
		},
		{
			name: "Empty entries are dropped",
			raw:  "Experience\n\n\n\nEducation\nState University",
			want: EntriesMap{
				SectionEducation: {"State University"},
			},
		},
		{
			name: "Heading flushes previous section buffer",
			raw:  "Experience\nJob A\nSkills\nGo, Python",
			want: EntriesMap{
				SectionExperience: {"Job A"},
				SectionSkills:     {"Go, Python"},
			},
		},
		{
			name: "Empty input",
			raw:  "",
			want: EntriesMap{},
		},
		{
			name: "No recognized headings",
			raw:  "just some text\nwith no headings",
			want: EntriesMap{},
		},
		{
			name: "Three jobs under one heading",
			raw:  "Work Experience\nJob A\nDetail A\n\n\nJob B\n\n\nJob C",
			want: EntriesMap{
				SectionExperience: {"Job A\nDetail A", "Job B", "Job C"},
			},
		},
		{
			name: "Redundant blank lines do not accumulate",
			raw:  "About\nLine1\n\n\n\nLine2",
			want: EntriesMap{
				SectionAbout: {"Line1", "Line2"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Split(tt.raw))
		})
	}
}

func TestSplitEntriesNeverContainHeadings(t *testing.T) {
	raw := "Experience\nJob A\n\n\nJob B\nEducation\nState University\nSkills\nGo"
	entries := Split(raw)

	for section, list := range entries {
		for _, entry := range list {
			assert.NotEmpty(t, entry, "entries must be non-empty for %s", section)
			for _, line := range nonEmptyLines(entry) {
				_, isHeading := Classify(line)
				assert.False(t, isHeading, "entry for %s contains heading line %q", section, line)
			}
		}
	}
}

func TestSplitTrailingBufferFlushed(t *testing.T) {
	entries := Split("Skills\nGo\nDistributed systems")
	assert.Equal(t, EntriesMap{SectionSkills: {"Go\nDistributed systems"}}, entries)
}
