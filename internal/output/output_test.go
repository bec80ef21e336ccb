// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package output

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestFileSink_WritesAndReportsStatus(t *testing.T) {
	root := t.TempDir()
	sink := NewFileSink(root, zap.NewNop())

	require.NoError(t, sink.Write(Artifact{Path: "model/user.ts", Content: []byte("a")}))
	require.NoError(t, sink.Write(Artifact{Path: "model/user.ts", Content: []byte("a")}))
	require.NoError(t, sink.Write(Artifact{Path: "model/user.ts", Content: []byte("b")}))

	data, err := os.ReadFile(filepath.Join(root, "model", "user.ts"))
	require.NoError(t, err)
	assert.Equal(t, "b", string(data))

	var statuses []Status
	for _, r := range sink.Results() {
		statuses = append(statuses, r.Status)
	}
	assert.Equal(t, []Status{Created, Unchanged, Updated}, statuses)

	_, err = os.Stat(filepath.Join(root, "model", "user.ts.tmp"))
	assert.True(t, os.IsNotExist(err))
}

func TestFileSink_CheckMode(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "same.md"), []byte("same"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "old.md"), []byte("old"), 0o644))

	sink := NewFileSink(root, nil)
	sink.Check = true

	require.NoError(t, sink.Write(Artifact{Path: "same.md", Content: []byte("same")}))
	require.NoError(t, sink.Write(Artifact{Path: "old.md", Content: []byte("new")}))
	require.NoError(t, sink.Write(Artifact{Path: "missing.md", Content: []byte("x")}))

	assert.Equal(t, []string{filepath.Join(root, "old.md"), filepath.Join(root, "missing.md")}, sink.Drift())

	data, err := os.ReadFile(filepath.Join(root, "old.md"))
	require.NoError(t, err)
	assert.Equal(t, "old", string(data))
	_, err = os.Stat(filepath.Join(root, "missing.md"))
	assert.True(t, os.IsNotExist(err))
}

func TestFileSink_DryRun(t *testing.T) {
	root := t.TempDir()
	sink := NewFileSink(root, nil)
	sink.DryRun = true

	require.NoError(t, sink.Write(Artifact{Path: "a.ts", Content: []byte("x")}))

	_, err := os.Stat(filepath.Join(root, "a.ts"))
	assert.True(t, os.IsNotExist(err))
	assert.Equal(t, Created, sink.Results()[0].Status)
}

func TestMemorySink(t *testing.T) {
	sink := NewMemorySink()

	require.NoError(t, sink.Write(Artifact{Path: "b.ts", Content: []byte("b")}))
	require.NoError(t, sink.Write(Artifact{Path: "a.ts", Content: []byte("a")}))
	assert.Error(t, sink.Write(Artifact{Path: "a.ts", Content: []byte("again")}))

	assert.Equal(t, []string{"b.ts", "a.ts"}, sink.Paths())
	got, ok := sink.Get("a.ts")
	assert.True(t, ok)
	assert.Equal(t, "a", got)

	sorted := sink.Sorted()
	require.Len(t, sorted, 2)
	assert.Equal(t, "a.ts", sorted[0].Path)
}

func TestPrefixed(t *testing.T) {
	sink := NewMemorySink()
	p := Prefixed{Dir: "typescript", Sink: sink}

	require.NoError(t, p.Write(Artifact{Path: "user.ts"}))
	require.NoError(t, Prefixed{Sink: sink}.Write(Artifact{Path: "top.ts"}))

	assert.Equal(t, []string{"typescript/user.ts", "top.ts"}, sink.Paths())
}
