package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/profile-optimizer/internal/observability"
	"github.com/jonathan/profile-optimizer/internal/optimizer"
	"github.com/jonathan/profile-optimizer/internal/sections"
	"github.com/jonathan/profile-optimizer/internal/types"
)

var optimizeCmd = &cobra.Command{
	Use:   "optimize",
	Short: "Optimize profile sections with AI suggestions",
	Long:  "Split a profile document into sections and run each requested section through the AI optimizer, producing structured rewrite suggestions as JSON.",
	RunE:  runOptimize,
}

var (
	optimizeInputFile  string
	optimizeOutputFile string
	optimizeSection    string
	optimizeAll        bool
	optimizeJobFile    string
	optimizeConfigPath string
	optimizeWorkers    int
)

func init() {
	optimizeCmd.Flags().StringVarP(&optimizeInputFile, "in", "i", "", "Path to profile document (.pdf or text file)")
	optimizeCmd.Flags().StringVarP(&optimizeOutputFile, "out", "o", "", "Path to output JSON file (default: stdout)")
	optimizeCmd.Flags().StringVarP(&optimizeSection, "section", "s", "", "Section to optimize (e.g. experience)")
	optimizeCmd.Flags().BoolVar(&optimizeAll, "all", false, "Optimize every recognized section")
	optimizeCmd.Flags().StringVar(&optimizeJobFile, "job", "", "Path to a target job description text file")
	optimizeCmd.Flags().StringVar(&optimizeConfigPath, "config", "", "Path to JSON config file")
	optimizeCmd.Flags().IntVar(&optimizeWorkers, "workers", 3, "Concurrent optimizations with --all")
	_ = optimizeCmd.MarkFlagRequired("in")

	rootCmd.AddCommand(optimizeCmd)
}

func runOptimize(_ *cobra.Command, _ []string) error {
	if optimizeAll == (optimizeSection != "") {
		return fmt.Errorf("provide exactly one of --section or --all")
	}

	cfg, err := loadMergedConfig(optimizeConfigPath)
	if err != nil {
		return err
	}

	jobDescription, err := readJobDescription(optimizeJobFile, cfg)
	if err != nil {
		return err
	}

	text, err := readDocument(optimizeInputFile)
	if err != nil {
		return err
	}

	entries := sections.Split(text)
	if len(entries) == 0 {
		return fmt.Errorf("no sections recognized in %s", optimizeInputFile)
	}
	if rootVerbose {
		observability.NewPrinter(os.Stderr).PrintSectionMap(entries)
	}

	ctx := context.Background()
	client, err := newClient(ctx, cfg)
	if err != nil {
		return err
	}
	defer client.Close()

	opt := optimizer.New(client)

	targets, err := optimizeTargets(entries)
	if err != nil {
		return err
	}

	results, err := optimizeSections(ctx, opt, entries, targets, text, jobDescription)
	if err != nil {
		return err
	}

	if rootVerbose {
		printer := observability.NewPrinter(os.Stderr)
		for _, section := range targets {
			printer.PrintOptimization(results[section])
		}
	}

	jsonBytes, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	jsonBytes = append(jsonBytes, '\n')

	if optimizeOutputFile == "" {
		_, err = os.Stdout.Write(jsonBytes)
		return err
	}
	if err := os.WriteFile(optimizeOutputFile, jsonBytes, 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}

// optimizeTargets resolves which sections to run: the explicit one, or
// every populated section in canonical order with --all.
func optimizeTargets(entries sections.EntriesMap) ([]sections.SectionType, error) {
	if !optimizeAll {
		section := sections.SectionType(optimizeSection)
		if !sections.IsValid(section) {
			return nil, fmt.Errorf("unknown section: %s", optimizeSection)
		}
		return []sections.SectionType{section}, nil
	}

	var targets []sections.SectionType
	for _, section := range sections.All() {
		if len(entries[section]) > 0 {
			targets = append(targets, section)
		}
	}
	return targets, nil
}

// optimizeSections runs the targets through the optimizer, concurrently
// when several are requested.
func optimizeSections(ctx context.Context, opt *optimizer.Optimizer, entries sections.EntriesMap, targets []sections.SectionType, fullText, jobDescription string) (map[sections.SectionType]*types.StructuredResult, error) {
	var mu sync.Mutex
	results := make(map[sections.SectionType]*types.StructuredResult, len(targets))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(optimizeWorkers)

	for _, section := range targets {
		g.Go(func() error {
			content := ""
			if list := entries[section]; len(list) > 0 {
				content = list[0]
			}

			outcome := opt.Optimize(gctx, optimizer.Request{
				Section:          section,
				EditableContent:  content,
				FullTextFallback: fullText,
				SourceExtracted:  true,
				JobDescription:   jobDescription,
			})
			if outcome.Result == nil {
				return fmt.Errorf("%s: %s", section, outcome.Message)
			}

			mu.Lock()
			results[section] = outcome.Result
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
