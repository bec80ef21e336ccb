// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package openapi

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/api2spec/api2model/pkg/types"
)

func TestMerge_NilExisting(t *testing.T) {
	generated := types.NewOpenAPI("3.0.3")

	assert.Same(t, generated, Merge(nil, generated, DefaultMergeOptions()))
}

func TestMerge_PreservesHeader(t *testing.T) {
	existing := types.NewOpenAPI("3.0.3")
	existing.Info = types.Info{Title: "Hand written", Version: "2.0.0"}
	existing.Servers = []types.Server{{URL: "https://prod.example.com"}}
	existing.Tags = []types.Tag{{Name: "Users", Description: "Curated"}}

	generated := types.NewOpenAPI("3.0.3")
	generated.Info = types.Info{Title: "Generated", Version: "1.0.0"}
	generated.Tags = []types.Tag{{Name: "Users"}, {Name: "Orders"}}

	merged := Merge(existing, generated, DefaultMergeOptions())

	assert.Equal(t, "Hand written", merged.Info.Title)
	assert.Equal(t, existing.Servers, merged.Servers)
	assert.Equal(t, []types.Tag{
		{Name: "Users", Description: "Curated"},
		{Name: "Orders"},
	}, merged.Tags)
}

func TestMerge_Descriptions(t *testing.T) {
	existing := types.NewOpenAPI("3.0.3")
	existing.Paths.Set("/users", &types.PathItem{
		Get: &types.Operation{Summary: "List users", Description: "Paged listing"},
	})
	generated := types.NewOpenAPI("3.0.3")
	generated.Paths.Set("/users", &types.PathItem{
		Get:  &types.Operation{OperationID: "listUsers"},
		Post: &types.Operation{OperationID: "createUser"},
	})

	merged := Merge(existing, generated, DefaultMergeOptions())

	item, _ := merged.Paths.Get("/users")
	assert.Equal(t, "List users", item.Get.Summary)
	assert.Equal(t, "Paged listing", item.Get.Description)
	assert.Equal(t, "listUsers", item.Get.OperationID)
	assert.Empty(t, item.Post.Summary)
}

func TestMerge_ExtraPathsAndSchemas(t *testing.T) {
	existing := types.NewOpenAPI("3.0.3")
	existing.Paths.Set("/legacy", &types.PathItem{Get: &types.Operation{}})
	existing.Components.Schemas.Set("Legacy", &types.Schema{Type: "object"})

	t.Run("dropped by default", func(t *testing.T) {
		merged := Merge(existing, types.NewOpenAPI("3.0.3"), DefaultMergeOptions())

		_, ok := merged.Paths.Get("/legacy")
		assert.False(t, ok)
		_, ok = merged.Components.Schemas.Get("Legacy")
		assert.False(t, ok)
	})

	t.Run("kept on request", func(t *testing.T) {
		opts := DefaultMergeOptions()
		opts.KeepExtraPaths = true
		opts.KeepExtraSchemas = true
		merged := Merge(existing, types.NewOpenAPI("3.0.3"), opts)

		_, ok := merged.Paths.Get("/legacy")
		assert.True(t, ok)
		_, ok = merged.Components.Schemas.Get("Legacy")
		assert.True(t, ok)
	})
}
