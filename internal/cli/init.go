// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/api2spec/api2model/internal/config"
)

var (
	initForce       bool
	initInteractive bool
	initInput       string
	initPackage     string
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a new api2model configuration file",
	Long: `Initialize a new api2model configuration file in the current directory.

This command creates an api2model.yaml file with sensible defaults
that you can customize for your project.

Features:
  - Finds the API description (api.yaml, api/, spec/, ...)
  - Selects backends from project files (pom.xml, package.json, ...)
  - Sets up appropriate exclude patterns

Example:
  api2model init                            # Detect input and backends
  api2model init --input api/               # Use a specific input
  api2model init --package org.acme.shop    # Set the Java root package
  api2model init --force                    # Overwrite existing config
  api2model init --interactive              # Interactive mode with prompts`,
	RunE: runInit,
}

func init() {
	initCmd.Flags().BoolVar(&initForce, "force", false, "overwrite existing config file")
	initCmd.Flags().BoolVarP(&initInteractive, "interactive", "i", false, "interactive mode with prompts")
	initCmd.Flags().StringVar(&initInput, "input", "", "API description file, directory or glob. If not specified, detected from project files")
	initCmd.Flags().StringVar(&initPackage, "package", "", "root package of generated Java sources")
}

func runInit(cmd *cobra.Command, args []string) error {
	configFile := "api2model.yaml"

	// Check if config file already exists
	if _, err := os.Stat(configFile); err == nil && !initForce {
		return fmt.Errorf("config file %s already exists, use --force to overwrite", configFile)
	}

	// Determine project root
	projectRoot, err := filepath.Abs(".")
	if err != nil {
		return fmt.Errorf("failed to determine project root: %w", err)
	}

	// Create config with sensible defaults
	cfg := config.Default()

	switch {
	case initInput != "":
		cfg.Input = initInput
	default:
		if input := detectInput(projectRoot); input != "" {
			cfg.Input = input
			printInfo("Detected input: %s", input)
		} else {
			printInfo("No API description found. Using %s.", cfg.Input)
		}
	}

	if detected := detectBackends(projectRoot); len(detected) > 0 {
		cfg.Backends = detected
		printVerbose("Detected backends: %s", strings.Join(detected, ", "))
	}
	if len(backends) > 0 {
		cfg.Backends = backends
	}
	if outputDir != "" {
		cfg.Output = outputDir
	}
	if initPackage != "" {
		cfg.Java.Package = initPackage
	}

	// Interactive mode
	if initInteractive && isTerminal() {
		cfg, err = interactiveInit(cfg, os.Stdin, os.Stdout)
		if err != nil {
			return fmt.Errorf("interactive init failed: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	// Build YAML with comments
	data, err := buildConfigYAML(cfg)
	if err != nil {
		return err
	}

	// Write config file
	if err := os.WriteFile(configFile, []byte(data), 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	printInfo("Created %s", configFile)
	printVerbose("Input: %s", cfg.Input)
	printVerbose("Output: %s", cfg.Output)
	printVerbose("Backends: %s", strings.Join(cfg.Backends, ", "))

	return nil
}

// inputCandidates are checked in order; the first one present wins.
var inputCandidates = []string{
	"api.yaml",
	"api.yml",
	"api.json",
	"api",
	"spec",
	"specs",
}

// detectInput returns the first input candidate present below projectRoot.
func detectInput(projectRoot string) string {
	for _, c := range inputCandidates {
		if _, err := os.Stat(filepath.Join(projectRoot, c)); err == nil {
			return c
		}
	}
	return ""
}

// backendMarkers map project files to the backend they call for.
var backendMarkers = []struct {
	file    string
	backend string
}{
	{"pom.xml", "java"},
	{"build.gradle", "java"},
	{"build.gradle.kts", "java"},
	{"package.json", "typescript"},
	{"angular.json", "typescript"},
}

// detectBackends selects the code backends whose marker files exist, plus
// the openapi and docs backends. It returns nil when no marker is found.
func detectBackends(projectRoot string) []string {
	var found []string
	for _, m := range backendMarkers {
		if _, err := os.Stat(filepath.Join(projectRoot, m.file)); err != nil {
			continue
		}
		if !contains(found, m.backend) {
			found = append(found, m.backend)
		}
	}
	if len(found) == 0 {
		return nil
	}
	return append(found, "openapi", "docs")
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// isTerminal checks if stdin is a terminal.
func isTerminal() bool {
	fileInfo, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (fileInfo.Mode() & os.ModeCharDevice) != 0
}

// interactiveInit prompts for the main options, keeping the current value
// on an empty answer.
func interactiveInit(cfg *config.Config, in io.Reader, out io.Writer) (*config.Config, error) {
	reader := bufio.NewReader(in)

	ask := func(prompt string, current *string) error {
		fmt.Fprintf(out, "%s [%s]: ", prompt, *current)
		answer, err := reader.ReadString('\n')
		if err != nil && err != io.EOF {
			return err
		}
		if answer = strings.TrimSpace(answer); answer != "" {
			*current = answer
		}
		return nil
	}

	if err := ask("Input", &cfg.Input); err != nil {
		return nil, err
	}
	if err := ask("Output directory", &cfg.Output); err != nil {
		return nil, err
	}

	selected := strings.Join(cfg.Backends, ",")
	if err := ask("Backends", &selected); err != nil {
		return nil, err
	}
	cfg.Backends = nil
	for _, b := range strings.Split(selected, ",") {
		if b = strings.TrimSpace(b); b != "" {
			cfg.Backends = append(cfg.Backends, b)
		}
	}

	if contains(cfg.Backends, "java") {
		if err := ask("Java package", &cfg.Java.Package); err != nil {
			return nil, err
		}
	}
	if contains(cfg.Backends, "openapi") {
		if err := ask("OpenAPI version", &cfg.OpenAPI.Version); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

// buildConfigYAML builds a YAML config with a header comment.
func buildConfigYAML(cfg *config.Config) (string, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return "", fmt.Errorf("failed to encode config: %w", err)
	}

	header := `# api2model configuration file
# https://github.com/api2spec/api2model

`
	return header + string(data), nil
}
