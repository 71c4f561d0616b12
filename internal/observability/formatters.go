// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/profile-optimizer/internal/sections"
	"github.com/jonathan/profile-optimizer/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintSectionMap outputs a summary of a split document: every section
// found, its entry count, and entry previews.
func (p *Printer) PrintSectionMap(entries sections.EntriesMap) {
	if len(entries) == 0 {
		return
	}

	var sb strings.Builder
	total := 0
	for _, list := range entries {
		total += len(list)
	}
	sb.WriteString(fmt.Sprintf("%d sections, %d entries\n\n", len(entries), total))

	for _, section := range sections.All() {
		list := entries[section]
		if len(list) == 0 {
			continue
		}

		sb.WriteString(fmt.Sprintf("%s (%d)\n", section.DisplayName(), len(list)))
		count := min(len(list), maxItemsToShow)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s\n", sections.Preview(section, list[i])))
		}
		if len(list) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(list)-maxItemsToShow))
		}
	}

	p.printBox("SECTION MAP", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintOptimization outputs a summary of one optimization result.
func (p *Printer) PrintOptimization(result *types.StructuredResult) {
	if result == nil {
		return
	}

	if result.IsFallback() {
		text := result.Fallback.Text
		if len(text) > 45 {
			text = text[:42] + "..."
		}
		var sb strings.Builder
		sb.WriteString("⚠ Response did not match the expected shape\n")
		sb.WriteString("  Raw text preserved:\n")
		sb.WriteString(fmt.Sprintf("  %s", text))
		p.printBox("OPTIMIZATION (fallback)", sb.String())
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Section:  %s\n", result.Section.DisplayName()))

	if result.Headline != nil && len(result.Headline.Options) > 0 {
		sb.WriteString("\nHeadline options:\n")
		count := min(len(result.Headline.Options), 3)
		for i := 0; i < count; i++ {
			option := result.Headline.Options[i]
			if len(option) > 50 {
				option = option[:47] + "..."
			}
			sb.WriteString(fmt.Sprintf("  • %s\n", option))
		}
	}

	suggestions := result.Suggestions()
	if len(suggestions) > 0 {
		sb.WriteString(fmt.Sprintf("\nSuggestions: %d\n", len(suggestions)))
		count := min(len(suggestions), 3)
		for i := 0; i < count; i++ {
			rationale := suggestions[i].Rationale
			if len(rationale) > 50 {
				rationale = rationale[:47] + "..."
			}
			sb.WriteString(fmt.Sprintf("  • %s\n", rationale))
		}
		if len(suggestions) > 3 {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(suggestions)-3))
		}
	}

	p.printBox("OPTIMIZATION RESULT", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintExtraction outputs a summary of a parsed document.
func (p *Printer) PrintExtraction(fileName string, pageCount, chars int) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("File:   %s\n", fileName))
	sb.WriteString(fmt.Sprintf("Pages:  %d\n", pageCount))
	sb.WriteString(fmt.Sprintf("Chars:  %d", chars))

	p.printBox("EXTRACTED DOCUMENT", sb.String())
}

// PrintWarning outputs a boxed warning message.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintWarning(message string) {
	if message == "" {
		return
	}
	fmt.Fprintf(p.out, "┌%s┐\n", strings.Repeat("─", boxWidth-2))
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, "⚠ "+message)
	fmt.Fprintf(p.out, "└%s┘\n", strings.Repeat("─", boxWidth-2))
}
