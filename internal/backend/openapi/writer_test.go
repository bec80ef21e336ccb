// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package openapi

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/api2spec/api2model/pkg/types"
)

func sampleDocument() *types.OpenAPI {
	doc := types.NewOpenAPI("3.0.3")
	doc.Info = types.Info{Title: "Test API", Version: "1.0.0"}
	doc.Paths.Set("/users", &types.PathItem{Get: &types.Operation{OperationID: "listUsers"}})
	doc.Paths.Set("/accounts", &types.PathItem{Get: &types.Operation{OperationID: "listAccounts"}})
	doc.Components.Schemas.Set("User", &types.Schema{Type: "object"})
	return doc
}

func TestFormatFor(t *testing.T) {
	assert.Equal(t, FormatJSON, FormatFor("api.json"))
	assert.Equal(t, FormatJSON, FormatFor("API.JSON"))
	assert.Equal(t, FormatYAML, FormatFor("api.yaml"))
	assert.Equal(t, FormatYAML, FormatFor("api"))
}

func TestEncodeDecode_KeepsPathOrder(t *testing.T) {
	for _, format := range []string{FormatYAML, FormatJSON} {
		t.Run(format, func(t *testing.T) {
			data, err := Encode(sampleDocument(), format)
			require.NoError(t, err)

			doc, err := Decode(data, format)
			require.NoError(t, err)
			assert.Equal(t, "Test API", doc.Info.Title)
			assert.Equal(t, []string{"/users", "/accounts"}, pathsOf(doc))
			assert.Equal(t, []string{"User"}, schemaNamesOf(doc))
		})
	}
}

func TestEncode_UnsupportedFormat(t *testing.T) {
	_, err := Encode(sampleDocument(), "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported format")
}

func TestDecode_GuessesFormat(t *testing.T) {
	doc, err := Decode([]byte(`{"openapi": "3.1.0", "info": {"title": "T", "version": "1"}}`), "")
	require.NoError(t, err)
	assert.Equal(t, "3.1.0", doc.OpenAPI)
}

func TestReadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "openapi.json")
	data, err := Encode(sampleDocument(), FormatJSON)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0o644))

	doc, err := ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "1.0.0", doc.Info.Version)

	_, err = ReadFile(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}
