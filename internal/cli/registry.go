// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package cli

import (
	"fmt"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/api2spec/api2model/internal/backend/docs"
	"github.com/api2spec/api2model/internal/backend/java"
	"github.com/api2spec/api2model/internal/backend/openapi"
	"github.com/api2spec/api2model/internal/backend/typescript"
	"github.com/api2spec/api2model/internal/config"
	"github.com/api2spec/api2model/internal/generator"
	"github.com/api2spec/api2model/internal/loader"
	"github.com/api2spec/api2model/internal/output"
	"github.com/api2spec/api2model/pkg/types"
)

// loadConfig loads the configuration, applies the command-line overrides
// and validates the result. A positional argument replaces the input.
func loadConfig(args []string) (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if len(args) > 0 {
		cfg.Input = args[0]
	}
	if outputDir != "" {
		cfg.Output = outputDir
	}
	if len(backends) > 0 {
		cfg.Backends = backends
	}
	if templateDir != "" {
		cfg.TemplateDir = templateDir
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// newRegistry registers every backend, configured from cfg.
func newRegistry(cfg *config.Config, logger *zap.Logger) *generator.Registry {
	r := generator.NewRegistry()
	r.MustRegister(java.New(java.Options{
		Package:           cfg.Java.Package,
		ModelPackage:      cfg.Java.ModelPackage,
		ResourcePackage:   cfg.Java.ResourcePackage,
		ResourceSuffix:    cfg.Java.ResourceSuffix,
		DelegatorPackage:  cfg.Java.DelegatorPackage,
		DelegatorSuffix:   cfg.Java.DelegatorSuffix,
		DelegateFieldName: cfg.Java.DelegateFieldName,
		Delegators:        cfg.Java.Delegators,
		TemplateDir:       cfg.TemplateDir,
		Logger:            logger,
	}))
	r.MustRegister(typescript.New(typescript.Options{
		ServiceNameSuffix: cfg.TypeScript.ServiceNameSuffix,
		BaseURLToken:      cfg.TypeScript.BaseURLToken,
		TemplateDir:       cfg.TemplateDir,
		Logger:            logger,
	}))
	r.MustRegister(openapi.New(openAPIOptions(cfg, logger)))
	r.MustRegister(docs.New(docs.Options{
		File:        cfg.Docs.File,
		TemplateDir: cfg.TemplateDir,
		Logger:      logger,
	}))
	return r
}

// openAPIOptions maps the openapi section of cfg to backend options. With
// merge enabled the previously generated document is folded in.
func openAPIOptions(cfg *config.Config, logger *zap.Logger) openapi.Options {
	opts := openapi.Options{
		Version: cfg.OpenAPI.Version,
		Format:  cfg.OpenAPI.Format,
		File:    cfg.OpenAPI.File,
		Logger:  logger,
	}
	for _, s := range cfg.OpenAPI.Servers {
		opts.Servers = append(opts.Servers, types.Server{URL: s.URL, Description: s.Description})
	}
	if cfg.OpenAPI.Merge {
		opts.Existing = filepath.Join(cfg.Output, "openapi", cfg.OpenAPI.File)
		opts.Merge = openapi.DefaultMergeOptions()
	}
	return opts
}

// newGenerator returns a generator running the configured backends in order.
func newGenerator(cfg *config.Config, logger *zap.Logger) (*generator.Generator, error) {
	selected, err := newRegistry(cfg, logger).Select(cfg.Backends)
	if err != nil {
		return nil, err
	}
	return generator.New(logger, selected...), nil
}

// discover reads the configured input documents.
func discover(cfg *config.Config) ([]loader.Source, error) {
	return loader.Discover(cfg.Input, loader.DiscoverConfig{ExcludePatterns: cfg.Exclude})
}

// runGeneration discovers the inputs and generates them into sink.
func runGeneration(cfg *config.Config, sink output.Sink, logger *zap.Logger) error {
	gen, err := newGenerator(cfg, logger)
	if err != nil {
		return err
	}
	sources, err := discover(cfg)
	if err != nil {
		return err
	}
	printVerbose("Found %d input document(s)", len(sources))
	return gen.Run(sources, sink)
}
