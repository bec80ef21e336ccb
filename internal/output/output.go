// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

// Package output receives generated artifacts and writes them out.
package output

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"go.uber.org/zap"
)

// Artifact is one generated file.
type Artifact struct {
	// Path is the file path relative to the output root
	Path string

	// Content is the complete file content
	Content []byte
}

// Sink receives completed artifacts. A backend hands over each artifact as
// soon as it is complete, so artifacts of earlier types survive a later
// failure.
type Sink interface {
	Write(a Artifact) error
}

// Status describes what writing an artifact did.
type Status string

const (
	// Unchanged means the file already had the generated content.
	Unchanged Status = "unchanged"

	// Created means the file did not exist.
	Created Status = "created"

	// Updated means the file existed with different content.
	Updated Status = "updated"
)

// Result records the outcome of one artifact.
type Result struct {
	Path   string
	Status Status
}

// FileSink writes artifacts below Root. In check mode nothing is written and
// differing files are recorded as drift; in dry-run mode the outcome is
// computed and logged without writing.
type FileSink struct {
	Root   string
	Check  bool
	DryRun bool
	Logger *zap.Logger

	results []Result
}

// NewFileSink returns a sink writing below root.
func NewFileSink(root string, logger *zap.Logger) *FileSink {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FileSink{Root: root, Logger: logger}
}

// Write writes a, replacing any existing file atomically.
func (s *FileSink) Write(a Artifact) error {
	path := filepath.Join(s.Root, filepath.FromSlash(a.Path))

	status, err := compare(path, a.Content)
	if err != nil {
		return err
	}
	s.results = append(s.results, Result{Path: path, Status: status})

	log := s.logger().With(zap.String("path", path), zap.String("status", string(status)))
	if status == Unchanged || s.Check || s.DryRun {
		log.Debug("artifact not written", zap.Bool("check", s.Check), zap.Bool("dryRun", s.DryRun))
		return nil
	}

	if err := writeAtomic(path, a.Content); err != nil {
		return err
	}
	log.Debug("artifact written", zap.Int("bytes", len(a.Content)))
	return nil
}

// Results returns the outcome of every artifact in write order.
func (s *FileSink) Results() []Result {
	return s.results
}

// Drift returns the paths whose content differs from the generated one.
func (s *FileSink) Drift() []string {
	var drift []string
	for _, r := range s.results {
		if r.Status != Unchanged {
			drift = append(drift, r.Path)
		}
	}
	return drift
}

func (s *FileSink) logger() *zap.Logger {
	if s.Logger == nil {
		return zap.NewNop()
	}
	return s.Logger
}

func compare(path string, data []byte) (Status, error) {
	existing, err := os.ReadFile(path)
	switch {
	case err == nil && bytes.Equal(existing, data):
		return Unchanged, nil
	case err == nil:
		return Updated, nil
	case os.IsNotExist(err):
		return Created, nil
	default:
		return "", fmt.Errorf("failed to read existing %s: %w", path, err)
	}
}

func writeAtomic(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to rename %s: %w", tmp, err)
	}
	return nil
}

// MemorySink keeps artifacts in memory.
type MemorySink struct {
	artifacts map[string][]byte
	order     []string
}

// NewMemorySink returns an empty MemorySink.
func NewMemorySink() *MemorySink {
	return &MemorySink{artifacts: make(map[string][]byte)}
}

// Write stores a. Writing the same path twice is an error: every artifact
// is generated exactly once.
func (s *MemorySink) Write(a Artifact) error {
	if _, dup := s.artifacts[a.Path]; dup {
		return fmt.Errorf("artifact %s written twice", a.Path)
	}
	s.artifacts[a.Path] = a.Content
	s.order = append(s.order, a.Path)
	return nil
}

// Get returns the content of the artifact at path.
func (s *MemorySink) Get(path string) (string, bool) {
	c, ok := s.artifacts[path]
	return string(c), ok
}

// Paths returns the artifact paths in write order.
func (s *MemorySink) Paths() []string {
	return append([]string(nil), s.order...)
}

// Sorted returns the artifacts sorted by path.
func (s *MemorySink) Sorted() []Artifact {
	paths := s.Paths()
	sort.Strings(paths)
	out := make([]Artifact, 0, len(paths))
	for _, p := range paths {
		out = append(out, Artifact{Path: p, Content: s.artifacts[p]})
	}
	return out
}

// Prefixed wraps a sink, placing every artifact below dir.
type Prefixed struct {
	Dir  string
	Sink Sink
}

// Write forwards a with its path joined to Dir.
func (p Prefixed) Write(a Artifact) error {
	if p.Dir != "" {
		a.Path = p.Dir + "/" + a.Path
	}
	return p.Sink.Write(a)
}
