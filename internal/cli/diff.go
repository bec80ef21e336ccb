// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package cli

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/api2spec/api2model/internal/backend/openapi"
	"github.com/api2spec/api2model/internal/loader"
	"github.com/api2spec/api2model/internal/model"
	"github.com/api2spec/api2model/pkg/types"
)

var (
	diffSummary        bool
	diffFailOnBreaking bool
)

var diffCmd = &cobra.Command{
	Use:   "diff [file1] [file2]",
	Short: "Compare two OpenAPI documents",
	Long: `Compare two OpenAPI documents and show the differences.

If only one file is provided, it is compared against the document generated
from the configured input.

If no files are provided, the previously generated document in the output
directory is compared against a freshly generated one.

Example:
  api2model diff                           # Compare written vs generated
  api2model diff openapi.yaml              # Compare file vs generated
  api2model diff old.yaml new.yaml         # Compare two files
  api2model diff --fail-on-breaking        # Exit non-zero on removals`,
	Args: cobra.MaximumNArgs(2),
	RunE: runDiff,
}

func init() {
	diffCmd.Flags().BoolVar(&diffSummary, "summary", false, "print only the one-line summary")
	diffCmd.Flags().BoolVar(&diffFailOnBreaking, "fail-on-breaking", false, "fail when an operation or schema was removed")
}

func runDiff(cmd *cobra.Command, args []string) error {
	var oldDoc, newDoc *types.OpenAPI
	var err error

	switch len(args) {
	case 2:
		printVerbose("Comparing %s against %s...", args[0], args[1])
		if oldDoc, err = readSpec(args[0]); err != nil {
			return err
		}
		if newDoc, err = readSpec(args[1]); err != nil {
			return err
		}
	default:
		path := ""
		if len(args) == 1 {
			path = args[0]
		}
		oldDoc, newDoc, err = againstGenerated(path)
		if err != nil {
			return err
		}
	}

	result := openapi.Diff(oldDoc, newDoc)
	out := cmd.OutOrStdout()
	if diffSummary {
		fmt.Fprintln(out, result.Summary())
	} else {
		fmt.Fprint(out, result.Format())
	}

	if diffFailOnBreaking && result.Breaking() {
		return fmt.Errorf("breaking changes detected")
	}
	return nil
}

// againstGenerated reads the document at path, defaulting to the written
// OpenAPI artifact, and generates the current one from the configured input.
func againstGenerated(path string) (*types.OpenAPI, *types.OpenAPI, error) {
	cfg, err := loadConfig(nil)
	if err != nil {
		return nil, nil, err
	}
	if path == "" {
		path = filepath.Join(cfg.Output, "openapi", cfg.OpenAPI.File)
	}
	printVerbose("Comparing %s against generated...", path)

	oldDoc, err := readSpec(path)
	if err != nil {
		return nil, nil, err
	}

	sources, err := discover(cfg)
	if err != nil {
		return nil, nil, err
	}
	if len(sources) != 1 {
		return nil, nil, errors.New("diff against generated output needs exactly one input document")
	}
	doc, err := loader.Parse(sources[0].Content)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", sources[0].Path, err)
	}
	m, err := model.New(doc)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", sources[0].Path, err)
	}

	opts := openAPIOptions(cfg, cliLogger())
	opts.Existing = ""
	newDoc, err := openapi.New(opts).Document(m)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to generate OpenAPI document: %w", err)
	}
	return oldDoc, newDoc, nil
}

func readSpec(path string) (*types.OpenAPI, error) {
	doc, err := openapi.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read spec file %s: %w", path, err)
	}
	return doc, nil
}
