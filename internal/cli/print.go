// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/api2spec/api2model/internal/output"
)

var printOnly string

var printCmd = &cobra.Command{
	Use:   "print [input]",
	Short: "Print generated artifacts to stdout",
	Long: `Print the generated artifacts to standard output instead of writing them.

Every artifact is preceded by a header line naming its path. With --only a
single artifact is printed without header, which is useful for piping the
output to other tools.

Example:
  api2model print                                   # Print every artifact
  api2model print -b openapi                        # Print the OpenAPI document
  api2model print --only openapi/openapi.yaml | yq  # Pipe one artifact`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPrint,
}

func init() {
	printCmd.Flags().StringVar(&printOnly, "only", "", "print only the artifact at this path")
}

func runPrint(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(args)
	if err != nil {
		return err
	}

	sink := output.NewMemorySink()
	if err := runGeneration(cfg, sink, cliLogger()); err != nil {
		return fmt.Errorf("generation failed: %w", err)
	}

	out := cmd.OutOrStdout()
	if printOnly != "" {
		content, ok := sink.Get(printOnly)
		if !ok {
			return fmt.Errorf("no artifact %s (generated: %v)", printOnly, sink.Paths())
		}
		fmt.Fprint(out, content)
		return nil
	}

	for _, path := range sink.Paths() {
		content, _ := sink.Get(path)
		fmt.Fprintf(out, "==> %s <==\n%s\n", path, content)
	}
	return nil
}
