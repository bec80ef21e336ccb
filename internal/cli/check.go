// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/cobra"

	"github.com/api2spec/api2model/internal/output"
)

// Exit codes for check command
const (
	ExitCodeMatch      = 0 // Generated files are up to date
	ExitCodeDifference = 1 // Generated files differ
	ExitCodeCheckError = 2 // Error during generation
)

var (
	checkIgnore []string
	checkCI     bool
)

var checkCmd = &cobra.Command{
	Use:   "check [input]",
	Short: "Check that generated files are up to date",
	Long: `Check validates that the files in the output directory match what
generate would write now.

Nothing is written. Every artifact is generated in memory and compared with
the file on disk; missing and differing files are reported. It's useful for
CI pipelines to ensure generated code is always in sync with the API
description.

Exit codes:
  0  Generated files are up to date
  1  Generated files differ or are missing
  2  Error during generation

Example:
  api2model check                        # Basic validation
  api2model check --ci                   # CI mode with exit codes
  api2model check --ignore "docs/**"     # Ignore documentation drift`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().StringSliceVar(&checkIgnore, "ignore", nil, "glob patterns of output paths to ignore in comparison")
	checkCmd.Flags().BoolVar(&checkCI, "ci", false, "CI mode: use exit codes for status")
}

func runCheck(cmd *cobra.Command, args []string) error {
	code, err := check(args)
	if checkCI && code != ExitCodeMatch {
		if err != nil {
			printError("%v", err)
		}
		os.Exit(code)
	}
	return err
}

// check generates in check mode and returns the exit code of the outcome.
func check(args []string) (int, error) {
	cfg, err := loadConfig(args)
	if err != nil {
		return ExitCodeCheckError, err
	}

	log := cliLogger()
	sink := output.NewFileSink(cfg.Output, log)
	sink.Check = true
	if err := runGeneration(cfg, sink, log); err != nil {
		return ExitCodeCheckError, fmt.Errorf("generation failed: %w", err)
	}

	changes := outdated(cfg.Output, sink.Results(), checkIgnore)
	if len(changes) == 0 {
		printInfo("Generated files are up to date")
		return ExitCodeMatch, nil
	}

	printInfo("Generated files differ from %s:", cfg.Output)
	for _, c := range changes {
		printInfo("  %s %s", getChangeSymbol(c.Status), c.Path)
	}
	printInfo("")
	printInfo("Run 'api2model generate' to update them")

	return ExitCodeDifference, fmt.Errorf("%d generated file(s) out of date", len(changes))
}

// outdated returns the results that are not unchanged, with paths relative
// to root in slash form, minus those matching an ignore pattern.
func outdated(root string, results []output.Result, patterns []string) []output.Result {
	var out []output.Result
	for _, r := range results {
		if r.Status == output.Unchanged {
			continue
		}
		rel, err := filepath.Rel(root, r.Path)
		if err != nil {
			rel = r.Path
		}
		rel = filepath.ToSlash(rel)
		if matchesAnyPattern(rel, patterns) {
			continue
		}
		out = append(out, output.Result{Path: rel, Status: r.Status})
	}
	return out
}

// matchesAnyPattern checks if a path matches any of the given doublestar
// patterns. Malformed patterns never match.
func matchesAnyPattern(s string, patterns []string) bool {
	for _, pattern := range patterns {
		if matched, err := doublestar.Match(pattern, s); err == nil && matched {
			return true
		}
	}
	return false
}

// getChangeSymbol returns a symbol for the write status.
func getChangeSymbol(s output.Status) string {
	switch s {
	case output.Created:
		return "+"
	case output.Updated:
		return "~"
	default:
		return " "
	}
}
