// Package extraction pulls plain text out of uploaded profile exports
// (PDF) so the section splitter can work on them.
package extraction

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// MaxFileSize caps accepted uploads at 10 MB.
const MaxFileSize = 10 << 20

// Document is the extracted text of a profile export.
type Document struct {
	Text      string
	PageCount int
	FileName  string
}

// ProgressFunc reports per-page extraction progress. page is 1-based.
type ProgressFunc func(page, total int)

// Parse extracts text from the PDF at path. onProgress may be nil.
// Line structure is preserved so headings stay on their own lines.
func Parse(path string, onProgress ProgressFunc) (*Document, error) {
	if !strings.EqualFold(filepath.Ext(path), ".pdf") {
		return nil, &ParseError{Message: fmt.Sprintf("unsupported file type %q, expected .pdf", filepath.Ext(path))}
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, &ParseError{Message: "failed to stat file", Cause: err}
	}
	if info.Size() > MaxFileSize {
		return nil, &ParseError{Message: fmt.Sprintf("file is %d bytes, limit is %d", info.Size(), MaxFileSize)}
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, &ParseError{Message: "failed to open file", Cause: err}
	}
	defer f.Close()

	conf := model.NewDefaultConfiguration()
	ctx, err := api.ReadValidateAndOptimize(f, conf)
	if err != nil {
		return nil, &ParseError{Message: "failed to read PDF", Cause: err}
	}

	var all strings.Builder
	for pageNr := 1; pageNr <= ctx.PageCount; pageNr++ {
		pageText := extractPageText(ctx, pageNr)
		if onProgress != nil {
			onProgress(pageNr, ctx.PageCount)
		}
		if pageText == "" {
			continue
		}
		if all.Len() > 0 {
			all.WriteString("\n\n")
		}
		all.WriteString(pageText)
	}

	if all.Len() == 0 {
		return nil, &ParseError{Message: "no text content found in PDF"}
	}

	return &Document{
		Text:      all.String(),
		PageCount: ctx.PageCount,
		FileName:  filepath.Base(path),
	}, nil
}

// extractPageText reads one page's content stream and decodes its text
// operators.
func extractPageText(ctx *model.Context, pageNr int) string {
	r, err := pdfcpu.ExtractPageContent(ctx, pageNr)
	if err != nil {
		return ""
	}
	data, err := io.ReadAll(r)
	if err != nil || len(data) == 0 {
		return ""
	}
	return extractTextFromStream(data)
}

// pdfStringRe matches PDF string literals in parentheses: (text here)
var pdfStringRe = regexp.MustCompile(`\(([^)]*)\)`)

// extractTextFromStream parses PDF content stream operators for text.
// Tj/TJ show text in place, ' and T* start new lines, Td/TD reposition.
func extractTextFromStream(data []byte) string {
	var sb strings.Builder

	for _, line := range bytes.Split(data, []byte{'\n'}) {
		line = bytes.TrimSpace(line)
		if len(line) == 0 {
			continue
		}

		switch {
		case bytes.HasSuffix(line, []byte("Tj")), bytes.HasSuffix(line, []byte("TJ")):
			for _, m := range pdfStringRe.FindAllSubmatch(line, -1) {
				sb.WriteString(decodePDFString(m[1]))
			}
		case bytes.HasSuffix(line, []byte("'")) && bytes.Contains(line, []byte("(")):
			for _, m := range pdfStringRe.FindAllSubmatch(line, -1) {
				sb.WriteByte('\n')
				sb.WriteString(decodePDFString(m[1]))
			}
		case bytes.HasSuffix(line, []byte("Td")), bytes.HasSuffix(line, []byte("TD")):
			// Repositioning usually means a new visual line.
			if sb.Len() > 0 {
				sb.WriteByte('\n')
			}
		case bytes.Equal(line, []byte("T*")):
			sb.WriteByte('\n')
		}
	}

	return cleanPageText(sb.String())
}

// decodePDFString handles basic PDF escape sequences.
func decodePDFString(raw []byte) string {
	var sb strings.Builder
	for i := 0; i < len(raw); i++ {
		if raw[i] == '\\' && i+1 < len(raw) {
			i++
			switch raw[i] {
			case 'n':
				sb.WriteByte('\n')
			case 'r':
				sb.WriteByte('\r')
			case 't':
				sb.WriteByte('\t')
			case '\\', '(', ')':
				sb.WriteByte(raw[i])
			default:
				// Octal escape (e.g. \040 for space).
				if raw[i] >= '0' && raw[i] <= '7' {
					val := int(raw[i] - '0')
					for n := 0; n < 2 && i+1 < len(raw) && raw[i+1] >= '0' && raw[i+1] <= '7'; n++ {
						i++
						val = val*8 + int(raw[i]-'0')
					}
					sb.WriteByte(byte(val))
				} else {
					sb.WriteByte(raw[i])
				}
			}
		} else {
			sb.WriteByte(raw[i])
		}
	}
	return sb.String()
}

// cleanPageText collapses horizontal whitespace within lines but keeps
// the line breaks. The downstream heading classifier depends on line
// structure, so this must not flatten the page to one line.
func cleanPageText(text string) string {
	lines := strings.Split(text, "\n")
	cleaned := make([]string, 0, len(lines))
	blankRun := 0
	for _, line := range lines {
		line = strings.Join(strings.Fields(line), " ")
		if line == "" {
			blankRun++
			if blankRun > 2 {
				continue
			}
		} else {
			blankRun = 0
		}
		cleaned = append(cleaned, line)
	}
	return strings.TrimSpace(strings.Join(cleaned, "\n"))
}

// ParseError reports a failed extraction.
type ParseError struct {
	Message string
	Cause   error
}

func (e *ParseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("extraction failed: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("extraction failed: %s", e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}
