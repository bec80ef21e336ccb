// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package openapi

import (
	"github.com/api2spec/api2model/pkg/types"
)

// MergeOptions selects what an existing document contributes to a
// regenerated one.
type MergeOptions struct {
	// PreserveInfo keeps the existing info block.
	PreserveInfo bool

	// PreserveServers keeps the existing servers.
	PreserveServers bool

	// PreserveTags keeps existing tags and their descriptions; generated
	// tags missing from the existing list are appended.
	PreserveTags bool

	// KeepExtraPaths keeps paths that only exist in the existing document.
	KeepExtraPaths bool

	// KeepExtraSchemas keeps component schemas that only exist in the
	// existing document.
	KeepExtraSchemas bool

	// PreserveDescriptions copies hand-written operation descriptions and
	// summaries onto generated operations that have none.
	PreserveDescriptions bool
}

// DefaultMergeOptions returns the options used by generate --merge.
func DefaultMergeOptions() MergeOptions {
	return MergeOptions{
		PreserveInfo:         true,
		PreserveServers:      true,
		PreserveTags:         true,
		KeepExtraPaths:       false,
		KeepExtraSchemas:     false,
		PreserveDescriptions: true,
	}
}

// Merge folds an existing document into a generated one and returns the
// generated document. The generated document wins on every conflict the
// options do not name.
func Merge(existing, generated *types.OpenAPI, opts MergeOptions) *types.OpenAPI {
	if existing == nil {
		return generated
	}

	if opts.PreserveInfo && existing.Info.Title != "" {
		generated.Info = existing.Info
	}
	if opts.PreserveServers && len(existing.Servers) > 0 {
		generated.Servers = existing.Servers
	}
	if opts.PreserveTags && len(existing.Tags) > 0 {
		generated.Tags = mergeTags(existing.Tags, generated.Tags)
	}

	if existing.Paths != nil {
		for pair := existing.Paths.Oldest(); pair != nil; pair = pair.Next() {
			item, ok := generated.Paths.Get(pair.Key)
			switch {
			case !ok && opts.KeepExtraPaths:
				generated.Paths.Set(pair.Key, pair.Value)
			case ok && opts.PreserveDescriptions:
				mergeDescriptions(pair.Value, item)
			}
		}
	}

	if opts.KeepExtraSchemas && existing.Components != nil && existing.Components.Schemas != nil {
		for pair := existing.Components.Schemas.Oldest(); pair != nil; pair = pair.Next() {
			if _, ok := generated.Components.Schemas.Get(pair.Key); !ok {
				generated.Components.Schemas.Set(pair.Key, pair.Value)
			}
		}
	}
	return generated
}

func mergeTags(existing, generated []types.Tag) []types.Tag {
	out := append([]types.Tag{}, existing...)
	seen := map[string]bool{}
	for _, t := range existing {
		seen[t.Name] = true
	}
	for _, t := range generated {
		if !seen[t.Name] {
			out = append(out, t)
		}
	}
	return out
}

func mergeDescriptions(existing, generated *types.PathItem) {
	before := operations(existing)
	for _, op := range generated.Operations() {
		old, ok := before[op.Verb]
		if !ok {
			continue
		}
		if op.Operation.Summary == "" {
			op.Operation.Summary = old.Summary
		}
		if op.Operation.Description == "" {
			op.Operation.Description = old.Description
		}
	}
	if generated.Summary == "" {
		generated.Summary = existing.Summary
	}
	if generated.Description == "" {
		generated.Description = existing.Description
	}
}
