// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

// Package cli provides the command-line interface for api2model.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/api2spec/api2model/internal/logging"
)

// Global flags
var (
	cfgFile     string
	outputDir   string
	backends    []string
	templateDir string
	verbose     bool
	quiet       bool
)

// logger is built from the verbosity flags before any subcommand runs.
var logger *zap.Logger

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "api2model",
	Short: "Code generator for parsed API descriptions",
	Long: `api2model turns a parsed API description into client and server
artifacts: Java model classes and JAX-RS resource interfaces, TypeScript
models and Angular services, an OpenAPI 3 document and Markdown reference
documentation.

Example:
  api2model generate                   # Generate from api.yaml into ./generated
  api2model generate api/ -b java      # Generate Java sources for every document in api/
  api2model init                       # Initialize a new config file
  api2model check                      # Fail if generated files are out of date
  api2model watch                      # Watch for changes and regenerate`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger = logging.New(verbose, quiet)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default: api2model.yaml)")
	rootCmd.PersistentFlags().StringVarP(&outputDir, "output", "o", "", "output directory (default: generated)")
	rootCmd.PersistentFlags().StringSliceVarP(&backends, "backend", "b", nil, "backends to run: java, typescript, openapi, docs (default: all)")
	rootCmd.PersistentFlags().StringVar(&templateDir, "template-dir", "", "directory of template overrides, laid out as <backend>/<id>.tmpl")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress non-error output")

	// Add subcommands
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(diffCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(printCmd)
}

// GetConfigFile returns the config file path from the flag.
func GetConfigFile() string {
	return cfgFile
}

// GetOutputDir returns the output directory from the flag.
func GetOutputDir() string {
	return outputDir
}

// GetBackends returns the backends selected on the command line.
func GetBackends() []string {
	return backends
}

// IsVerbose returns whether verbose output is enabled.
func IsVerbose() bool {
	return verbose
}

// IsQuiet returns whether quiet mode is enabled.
func IsQuiet() bool {
	return quiet
}

// cliLogger returns the command logger, or a no-op logger when a command
// runs without the root command.
func cliLogger() *zap.Logger {
	return logging.OrNop(logger)
}

// printInfo prints a message if not in quiet mode.
func printInfo(format string, args ...interface{}) {
	if !quiet {
		fmt.Fprintf(os.Stdout, format+"\n", args...)
	}
}

// printVerbose prints a message if verbose mode is enabled.
func printVerbose(format string, args ...interface{}) {
	if verbose && !quiet {
		fmt.Fprintf(os.Stdout, format+"\n", args...)
	}
}

// printError prints an error message.
func printError(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
}
