package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/profile-optimizer/internal/extraction"
	"github.com/jonathan/profile-optimizer/internal/observability"
	"github.com/jonathan/profile-optimizer/internal/sections"
)

var splitCmd = &cobra.Command{
	Use:   "split",
	Short: "Split a profile document into a section map",
	Long:  "Split a profile export (PDF or plain text) into sections and entries, printed as JSON.",
	RunE:  runSplit,
}

var (
	splitInputFile  string
	splitOutputFile string
)

func init() {
	splitCmd.Flags().StringVarP(&splitInputFile, "in", "i", "", "Path to profile document (.pdf or text file)")
	splitCmd.Flags().StringVarP(&splitOutputFile, "out", "o", "", "Path to output JSON file (default: stdout)")
	_ = splitCmd.MarkFlagRequired("in")

	rootCmd.AddCommand(splitCmd)
}

func runSplit(_ *cobra.Command, _ []string) error {
	text, err := readDocument(splitInputFile)
	if err != nil {
		return err
	}

	entries := sections.Split(text)
	if len(entries) == 0 {
		return fmt.Errorf("no sections recognized in %s", splitInputFile)
	}

	if rootVerbose {
		observability.NewPrinter(os.Stderr).PrintSectionMap(entries)
	}

	jsonBytes, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	jsonBytes = append(jsonBytes, '\n')

	if splitOutputFile == "" {
		_, err = os.Stdout.Write(jsonBytes)
		return err
	}
	if err := os.WriteFile(splitOutputFile, jsonBytes, 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}

// readDocument loads the document text, extracting it first when the
// input is a PDF.
func readDocument(path string) (string, error) {
	if strings.EqualFold(filepath.Ext(path), ".pdf") {
		var progress extraction.ProgressFunc
		if rootVerbose {
			progress = func(page, total int) {
				fmt.Fprintf(os.Stderr, "Extracting page %d/%d\n", page, total)
			}
		}

		doc, err := extraction.Parse(path, progress)
		if err != nil {
			return "", err
		}
		if rootVerbose {
			observability.NewPrinter(os.Stderr).PrintExtraction(doc.FileName, doc.PageCount, len(doc.Text))
		}
		return doc.Text, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read input file: %w", err)
	}
	return string(data), nil
}
