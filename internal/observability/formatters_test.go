package observability

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/profile-optimizer/internal/sections"
	"github.com/jonathan/profile-optimizer/internal/types"
)

func TestPrintSectionMap(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintSectionMap(sections.EntriesMap{
		sections.SectionExperience: {"Engineer at Acme\nAcme Corp", "Analyst at Initech"},
		sections.SectionSkills:     {"Go\nSQL"},
	})

	out := buf.String()
	assert.Contains(t, out, "SECTION MAP")
	assert.Contains(t, out, "2 sections, 3 entries")
	assert.Contains(t, out, "Experience (2)")
	assert.Contains(t, out, "Engineer")
	assert.Contains(t, out, "Skills (1)")
}

func TestPrintSectionMapEmpty(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintSectionMap(sections.EntriesMap{})

	assert.Empty(t, buf.String())
}

func TestPrintOptimization(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintOptimization(&types.StructuredResult{
		Section: sections.SectionHeadline,
		Headline: &types.HeadlineResult{
			Options: []string{"Staff Engineer | Distributed Systems"},
			Suggestions: []types.Suggestion{
				{Rationale: "Lead with seniority"},
			},
		},
	})

	out := buf.String()
	assert.Contains(t, out, "OPTIMIZATION RESULT")
	assert.Contains(t, out, "Headline")
	assert.Contains(t, out, "Staff Engineer")
	assert.Contains(t, out, "Suggestions: 1")
}

func TestPrintOptimizationFallback(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintOptimization(types.NewFallback(sections.SectionAbout, "raw model text"))

	out := buf.String()
	assert.Contains(t, out, "fallback")
	assert.Contains(t, out, "raw model text")
}

func TestPrintOptimizationNil(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintOptimization(nil)

	assert.Empty(t, buf.String())
}

func TestPrintExtraction(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintExtraction("profile.pdf", 2, 1500)

	out := buf.String()
	assert.Contains(t, out, "EXTRACTED DOCUMENT")
	assert.Contains(t, out, "profile.pdf")
	assert.Contains(t, out, "Pages:  2")
}

func TestPrintWarning(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintWarning("quota exhausted")

	assert.Contains(t, buf.String(), "quota exhausted")
}
