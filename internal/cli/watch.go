// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/api2spec/api2model/internal/config"
	"github.com/api2spec/api2model/internal/output"
)

var watchDebounce int

var watchCmd = &cobra.Command{
	Use:   "watch [input]",
	Short: "Watch for file changes and regenerate artifacts",
	Long: `Watch for file changes and automatically regenerate artifacts.

This command generates once, then monitors the input documents and the
config file, and regenerates when they change. Bursts of changes are
coalesced: generation runs once the files have been quiet for the debounce
period. It's useful during development to keep generated code in sync with
the API description.

Example:
  api2model watch                          # Watch the configured input
  api2model watch api/                     # Watch a directory of documents
  api2model watch --debounce 1000          # Wait 1s before regenerating`,
	Args: cobra.MaximumNArgs(1),
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().IntVar(&watchDebounce, "debounce", 0, "debounce duration in milliseconds (default: from config, 500)")
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(args)
	if err != nil {
		return err
	}
	if watchDebounce > 0 {
		cfg.Watch.Debounce = watchDebounce
	}

	log := cliLogger()
	sources, err := discover(cfg)
	if err != nil {
		return err
	}

	configFile := cfgFile
	if configFile == "" {
		configFile = config.ConfigFilePath()
	}
	dirs := watchDirs(sources, configFile)

	printVerbose("Watch configuration:")
	printVerbose("  Debounce: %dms", cfg.Watch.Debounce)
	printVerbose("  Directories: %s", strings.Join(dirs, ", "))

	regenerate := func() error {
		// The config may have changed too.
		current, err := loadConfig(args)
		if err != nil {
			return err
		}
		sink := output.NewFileSink(current.Output, log)
		if err := runGeneration(current, sink, log); err != nil {
			return err
		}
		log.Info("regenerated", zap.Int("artifacts", len(sink.Results())), zap.Int("changed", len(sink.Drift())))
		return nil
	}

	if err := regenerate(); err != nil {
		return fmt.Errorf("generation failed: %w", err)
	}

	w, err := newWatcher(dirs, time.Duration(cfg.Watch.Debounce)*time.Millisecond, log)
	if err != nil {
		return err
	}
	w.relevant = func(path string) bool { return isRelevant(path, configFile, cfg.Output) }
	w.onChange = regenerate

	ctx, stop := signal.NotifyContext(watchContext(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()

	printInfo("Watching for changes in: %s", strings.Join(dirs, ", "))
	printInfo("Press Ctrl+C to stop")

	return w.run(ctx)
}

// watchContext returns the context used when a command runs without one.
func watchContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
