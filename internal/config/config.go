// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

// Package config provides configuration loading and validation for api2model.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/spf13/viper"

	"github.com/api2spec/api2model/internal/naming"
)

// Config represents the api2model configuration.
type Config struct {
	// Input is the API description file, directory or glob to read
	Input string `mapstructure:"input" yaml:"input" json:"input"`

	// Exclude is a list of glob patterns of inputs to skip
	Exclude []string `mapstructure:"exclude" yaml:"exclude" json:"exclude"`

	// Output is the directory generated artifacts are written to
	Output string `mapstructure:"output" yaml:"output" json:"output"`

	// Backends are the backends to run, in order
	Backends []string `mapstructure:"backends" yaml:"backends" json:"backends"`

	// TemplateDir holds template overrides as <dir>/<backend>/<id>.tmpl
	TemplateDir string `mapstructure:"templateDir" yaml:"templateDir" json:"templateDir"`

	// Java contains Java backend configuration
	Java JavaConfig `mapstructure:"java" yaml:"java" json:"java"`

	// TypeScript contains TypeScript backend configuration
	TypeScript TypeScriptConfig `mapstructure:"typescript" yaml:"typescript" json:"typescript"`

	// OpenAPI contains OpenAPI backend configuration
	OpenAPI OpenAPIConfig `mapstructure:"openapi" yaml:"openapi" json:"openapi"`

	// Docs contains documentation backend configuration
	Docs DocsConfig `mapstructure:"docs" yaml:"docs" json:"docs"`

	// Watch contains file watching configuration
	Watch WatchConfig `mapstructure:"watch" yaml:"watch" json:"watch"`
}

// JavaConfig contains Java backend configuration.
type JavaConfig struct {
	// Package is the root package of the generated sources
	Package string `mapstructure:"package" yaml:"package" json:"package"`

	// ModelPackage is the package of model classes, relative to Package
	ModelPackage string `mapstructure:"modelPackage" yaml:"modelPackage" json:"modelPackage"`

	// ResourcePackage is the package of resource interfaces, relative to Package
	ResourcePackage string `mapstructure:"resourcePackage" yaml:"resourcePackage" json:"resourcePackage"`

	// ResourceSuffix is appended to resource interface names
	ResourceSuffix string `mapstructure:"resourceSuffix" yaml:"resourceSuffix" json:"resourceSuffix"`

	// DelegatorPackage is the package of delegators, relative to Package
	DelegatorPackage string `mapstructure:"delegatorPackage" yaml:"delegatorPackage" json:"delegatorPackage"`

	// DelegatorSuffix is appended to delegator class names
	DelegatorSuffix string `mapstructure:"delegatorSuffix" yaml:"delegatorSuffix" json:"delegatorSuffix"`

	// DelegateFieldName names the wrapped instance
	DelegateFieldName string `mapstructure:"delegateFieldName" yaml:"delegateFieldName" json:"delegateFieldName"`

	// Delegators enables delegator generation
	Delegators bool `mapstructure:"delegators" yaml:"delegators" json:"delegators"`
}

// TypeScriptConfig contains TypeScript backend configuration.
type TypeScriptConfig struct {
	// ServiceNameSuffix is appended to service class names
	ServiceNameSuffix string `mapstructure:"serviceNameSuffix" yaml:"serviceNameSuffix" json:"serviceNameSuffix"`

	// BaseURLToken names the injection token of the API base URL
	BaseURLToken string `mapstructure:"baseUrlToken" yaml:"baseUrlToken" json:"baseUrlToken"`
}

// OpenAPIConfig contains OpenAPI backend configuration.
type OpenAPIConfig struct {
	// Version is the OpenAPI version to generate (3.0.x, 3.1.x)
	Version string `mapstructure:"version" yaml:"version" json:"version"`

	// Format is the output format (yaml, json)
	Format string `mapstructure:"format" yaml:"format" json:"format"`

	// File is the output file name
	File string `mapstructure:"file" yaml:"file" json:"file"`

	// Merge determines whether to merge with the previously generated document
	Merge bool `mapstructure:"merge" yaml:"merge" json:"merge"`

	// Servers is a list of server configurations
	Servers []ServerConfig `mapstructure:"servers" yaml:"servers" json:"servers"`
}

// ServerConfig contains server configuration.
type ServerConfig struct {
	// URL is the server URL
	URL string `mapstructure:"url" yaml:"url" json:"url"`

	// Description is the server description
	Description string `mapstructure:"description" yaml:"description" json:"description"`
}

// DocsConfig contains documentation backend configuration.
type DocsConfig struct {
	// File is the output file name
	File string `mapstructure:"file" yaml:"file" json:"file"`
}

// WatchConfig contains file watching configuration.
type WatchConfig struct {
	// Debounce is the debounce duration in milliseconds
	Debounce int `mapstructure:"debounce" yaml:"debounce" json:"debounce"`
}

// configFileNames is the list of config file names to search for (in order).
var configFileNames = []string{
	"api2model.yaml",
	"api2model.json",
	".api2model.yaml",
	".api2model.json",
}

// SupportedBackends is the list of backend names.
var SupportedBackends = []string{
	"java",
	"typescript",
	"openapi",
	"docs",
}

// supportedFormats is the list of supported OpenAPI output formats.
var supportedFormats = []string{
	"yaml",
	"json",
}

// openAPIVersions constrains the OpenAPI versions the generator writes.
const openAPIVersions = ">= 3.0.0, < 3.2.0"

// ErrConfigNotFound is returned when no config file is found.
var ErrConfigNotFound = errors.New("config file not found")

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("config validation error: %s: %s", e.Field, e.Message)
}

// ValidationErrors represents multiple validation errors.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	if len(e) == 1 {
		return e[0].Error()
	}
	var sb strings.Builder
	sb.WriteString("config validation errors:\n")
	for _, err := range e {
		sb.WriteString("  - ")
		sb.WriteString(err.Field)
		sb.WriteString(": ")
		sb.WriteString(err.Message)
		sb.WriteString("\n")
	}
	return sb.String()
}

// Default returns a Config with default values.
func Default() *Config {
	return &Config{
		Input:    "api.yaml",
		Exclude:  []string{"**/testdata/**", "node_modules/**", ".git/**"},
		Output:   "generated",
		Backends: append([]string(nil), SupportedBackends...),
		Java: JavaConfig{
			Package:           "com.example.api",
			ModelPackage:      "model",
			ResourcePackage:   "resource",
			ResourceSuffix:    "Resource",
			DelegatorPackage:  "delegator",
			DelegatorSuffix:   "Delegator",
			DelegateFieldName: "delegate",
			Delegators:        true,
		},
		TypeScript: TypeScriptConfig{
			ServiceNameSuffix: "Service",
			BaseURLToken:      "BASE_URL",
		},
		OpenAPI: OpenAPIConfig{
			Version: "3.0.3",
			Format:  "yaml",
			File:    "openapi.yaml",
		},
		Docs: DocsConfig{
			File: "index.md",
		},
		Watch: WatchConfig{
			Debounce: 500,
		},
	}
}

// Load loads the configuration from a file.
// It searches for config files in the following order:
// 1. api2model.yaml
// 2. api2model.json
// 3. .api2model.yaml
// 4. .api2model.json
//
// If configPath is provided, it will use that path instead.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		found := false
		for _, name := range configFileNames {
			if _, err := os.Stat(name); err == nil {
				v.SetConfigFile(name)
				found = true
				break
			}
		}
		if !found {
			return Default(), nil
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if errors.As(err, &configFileNotFoundError) {
			return Default(), nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// LoadFromPath loads the configuration from a specific directory.
func LoadFromPath(dir string) (*Config, error) {
	for _, name := range configFileNames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return Load(path)
		}
	}
	return Default(), nil
}

// setDefaults sets the default values for viper.
func setDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("input", d.Input)
	v.SetDefault("exclude", d.Exclude)
	v.SetDefault("output", d.Output)
	v.SetDefault("backends", d.Backends)
	v.SetDefault("templateDir", "")
	v.SetDefault("java.package", d.Java.Package)
	v.SetDefault("java.modelPackage", d.Java.ModelPackage)
	v.SetDefault("java.resourcePackage", d.Java.ResourcePackage)
	v.SetDefault("java.resourceSuffix", d.Java.ResourceSuffix)
	v.SetDefault("java.delegatorPackage", d.Java.DelegatorPackage)
	v.SetDefault("java.delegatorSuffix", d.Java.DelegatorSuffix)
	v.SetDefault("java.delegateFieldName", d.Java.DelegateFieldName)
	v.SetDefault("java.delegators", d.Java.Delegators)
	v.SetDefault("typescript.serviceNameSuffix", d.TypeScript.ServiceNameSuffix)
	v.SetDefault("typescript.baseUrlToken", d.TypeScript.BaseURLToken)
	v.SetDefault("openapi.version", d.OpenAPI.Version)
	v.SetDefault("openapi.format", d.OpenAPI.Format)
	v.SetDefault("openapi.file", d.OpenAPI.File)
	v.SetDefault("openapi.merge", false)
	v.SetDefault("docs.file", d.Docs.File)
	v.SetDefault("watch.debounce", d.Watch.Debounce)
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	var errs ValidationErrors

	if c.Input == "" {
		errs = append(errs, ValidationError{
			Field:   "input",
			Message: "input is required",
		})
	}

	if c.Output == "" {
		errs = append(errs, ValidationError{
			Field:   "output",
			Message: "output is required",
		})
	}

	// Validate backends
	if len(c.Backends) == 0 {
		errs = append(errs, ValidationError{
			Field:   "backends",
			Message: "at least one backend is required",
		})
	}
	for _, b := range c.Backends {
		if !contains(SupportedBackends, b) {
			errs = append(errs, ValidationError{
				Field:   "backends",
				Message: fmt.Sprintf("unsupported backend %q, must be one of: %s", b, strings.Join(SupportedBackends, ", ")),
			})
		}
	}

	// Validate Java package names
	if c.Java.Package != "" && !isPackageName(c.Java.Package) {
		errs = append(errs, ValidationError{
			Field:   "java.package",
			Message: fmt.Sprintf("invalid package name %q", c.Java.Package),
		})
	}
	for _, p := range []struct{ field, pkg string }{
		{"java.modelPackage", c.Java.ModelPackage},
		{"java.resourcePackage", c.Java.ResourcePackage},
		{"java.delegatorPackage", c.Java.DelegatorPackage},
	} {
		if p.pkg != "" && !isPackageName(p.pkg) {
			errs = append(errs, ValidationError{
				Field:   p.field,
				Message: fmt.Sprintf("invalid package name %q", p.pkg),
			})
		}
	}

	// Validate format
	if c.OpenAPI.Format != "" && !contains(supportedFormats, c.OpenAPI.Format) {
		errs = append(errs, ValidationError{
			Field:   "openapi.format",
			Message: fmt.Sprintf("unsupported format %q, must be one of: %s", c.OpenAPI.Format, strings.Join(supportedFormats, ", ")),
		})
	}

	// Validate OpenAPI version
	if c.OpenAPI.Version != "" {
		if err := checkOpenAPIVersion(c.OpenAPI.Version); err != nil {
			errs = append(errs, ValidationError{
				Field:   "openapi.version",
				Message: err.Error(),
			})
		}
	}

	for i, s := range c.OpenAPI.Servers {
		if s.URL == "" {
			errs = append(errs, ValidationError{
				Field:   fmt.Sprintf("openapi.servers[%d].url", i),
				Message: "url is required",
			})
		}
	}

	// Validate watch debounce
	if c.Watch.Debounce < 0 {
		errs = append(errs, ValidationError{
			Field:   "watch.debounce",
			Message: "debounce must be non-negative",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

func checkOpenAPIVersion(version string) error {
	v, err := semver.StrictNewVersion(version)
	if err != nil {
		return fmt.Errorf("invalid OpenAPI version %q: %w", version, err)
	}
	constraint, err := semver.NewConstraint(openAPIVersions)
	if err != nil {
		return err
	}
	if !constraint.Check(v) {
		return fmt.Errorf("unsupported OpenAPI version %q, must satisfy %s", version, openAPIVersions)
	}
	return nil
}

// isPackageName reports whether s is a dotted sequence of identifiers.
func isPackageName(s string) bool {
	for _, part := range strings.Split(s, ".") {
		if !naming.IsIdentifier(part) {
			return false
		}
	}
	return true
}

// ConfigFilePath returns the path of the loaded config file, if any.
func ConfigFilePath() string {
	for _, name := range configFileNames {
		if _, err := os.Stat(name); err == nil {
			return name
		}
	}
	return ""
}

// contains checks if a slice contains a string.
func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
