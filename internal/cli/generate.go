// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/api2spec/api2model/internal/output"
)

var (
	generateMerge   bool
	generateDryRun  bool
	generateExclude []string
)

var generateCmd = &cobra.Command{
	Use:   "generate [input]",
	Short: "Generate artifacts from an API description",
	Long: `Generate code and documentation from parsed API descriptions.

The input is a document, a directory searched recursively, or a glob such
as "api/**/*.yaml". Every selected backend writes below its own directory
of the output directory. With several input documents each one gets its own
directory named after the file.

Backends:
  java        Java model classes, JAX-RS resources and delegators
  typescript  TypeScript models and Angular services
  openapi     OpenAPI 3.0/3.1 document
  docs        Markdown reference documentation

Example:
  api2model generate                          # Generate from the configured input
  api2model generate api/users.yaml           # Generate from a specific document
  api2model generate -b openapi --merge       # Merge with the existing OpenAPI file
  api2model generate --dry-run -v             # Preview without writing`,
	Args: cobra.MaximumNArgs(1),
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().BoolVar(&generateMerge, "merge", false, "merge with the previously generated OpenAPI document")
	generateCmd.Flags().BoolVar(&generateDryRun, "dry-run", false, "preview output without writing files")
	generateCmd.Flags().StringSliceVarP(&generateExclude, "exclude", "e", nil, "glob patterns of inputs to exclude")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(args)
	if err != nil {
		return err
	}

	// Apply command-line overrides
	if generateMerge {
		cfg.OpenAPI.Merge = true
	}
	if len(generateExclude) > 0 {
		cfg.Exclude = generateExclude
	}

	printVerbose("Configuration:")
	printVerbose("  Input: %s", cfg.Input)
	printVerbose("  Output: %s", cfg.Output)
	printVerbose("  Backends: %s", strings.Join(cfg.Backends, ", "))

	if generateDryRun {
		printInfo("Dry run mode - no files will be written")
	}

	log := cliLogger()
	sink := output.NewFileSink(cfg.Output, log)
	sink.DryRun = generateDryRun
	if err := runGeneration(cfg, sink, log); err != nil {
		return fmt.Errorf("generation failed: %w", err)
	}

	counts := map[output.Status]int{}
	for _, r := range sink.Results() {
		counts[r.Status]++
	}
	printInfo("Generated %d file(s) in %s: %d created, %d updated, %d unchanged",
		len(sink.Results()), cfg.Output, counts[output.Created], counts[output.Updated], counts[output.Unchanged])

	return nil
}
