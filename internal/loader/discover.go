// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package loader

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// DefaultExtensions are the file extensions of API description documents.
var DefaultExtensions = []string{".yaml", ".yml", ".json", ".raml"}

// DiscoverConfig controls input discovery.
type DiscoverConfig struct {
	// ExcludePatterns are glob patterns of paths to skip (e.g., "testdata/**")
	ExcludePatterns []string

	// Extensions filters directory entries by extension; defaults to DefaultExtensions
	Extensions []string
}

// Source is a discovered input document.
type Source struct {
	// Path is the absolute path of the document
	Path string

	// Content is the raw document
	Content []byte
}

// Discover resolves input into document sources. input may name a file, a
// directory (walked recursively) or a doublestar glob such as "api/**/*.yaml".
// Sources are returned sorted by path, each path once.
func Discover(input string, cfg DiscoverConfig) ([]Source, error) {
	if len(cfg.Extensions) == 0 {
		cfg.Extensions = DefaultExtensions
	}

	paths, err := expand(input, cfg)
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no input documents match %q", input)
	}

	sources := make([]Source, 0, len(paths))
	for _, p := range paths {
		content, err := os.ReadFile(p)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", p, err)
		}
		sources = append(sources, Source{Path: p, Content: content})
	}
	return sources, nil
}

func expand(input string, cfg DiscoverConfig) ([]string, error) {
	var paths []string
	if isGlob(input) {
		matches, err := doublestar.FilepathGlob(input, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("invalid input pattern %q: %w", input, err)
		}
		paths = matches
	} else {
		info, err := os.Stat(input)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("input does not exist: %s", input)
			}
			return nil, fmt.Errorf("failed to stat input: %w", err)
		}
		if info.IsDir() {
			paths, err = walk(input, cfg)
			if err != nil {
				return nil, err
			}
		} else {
			paths = []string{input}
		}
	}

	seen := make(map[string]bool, len(paths))
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve path: %w", err)
		}
		if seen[abs] || excluded(filepath.ToSlash(p), cfg.ExcludePatterns) {
			continue
		}
		seen[abs] = true
		out = append(out, abs)
	}
	sort.Strings(out)
	return out, nil
}

func walk(root string, cfg DiscoverConfig) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		rel, _ := filepath.Rel(root, p)
		rel = filepath.ToSlash(rel)
		if d.IsDir() {
			if rel != "." && excluded(rel+"/", cfg.ExcludePatterns) {
				return filepath.SkipDir
			}
			return nil
		}
		if hasExtension(p, cfg.Extensions) && !excluded(rel, cfg.ExcludePatterns) {
			paths = append(paths, p)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk directory: %w", err)
	}
	return paths, nil
}

func isGlob(s string) bool {
	return strings.ContainsAny(s, "*?[{")
}

func hasExtension(p string, exts []string) bool {
	ext := strings.ToLower(filepath.Ext(p))
	for _, e := range exts {
		if strings.ToLower(e) == ext {
			return true
		}
	}
	return false
}

// excluded matches path against the patterns. A directory path ends in "/"
// and is excluded when a pattern such as "vendor/**" covers its contents.
func excluded(path string, patterns []string) bool {
	for _, pattern := range patterns {
		if strings.HasSuffix(path, "/") {
			if m, _ := doublestar.Match(pattern, path+"x"); m {
				return true
			}
			continue
		}
		if m, _ := doublestar.Match(pattern, path); m {
			return true
		}
	}
	return false
}
