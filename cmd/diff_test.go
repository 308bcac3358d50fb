package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"tree-reconciler/feature/render/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestDiffCommand(t *testing.T) {
	dir := t.TempDir()
	prev := writeFile(t, dir, "prev.yaml", "tag: ul\nflag: keyed_children\nchildren:\n  - {tag: li, key: a, text: a}\n  - {tag: li, key: b, text: b}\n")
	next := writeFile(t, dir, "next.json", `{"tag": "ul", "flag": "keyed_children", "children": [{"tag": "li", "key": "b", "text": "b"}]}`)

	var out bytes.Buffer
	RootCmd.SetOut(&out)
	RootCmd.SetArgs([]string{"diff", "--prev", prev, "--next", next, "--json"})
	t.Cleanup(func() {
		RootCmd.SetOut(nil)
		RootCmd.SetArgs(nil)
		diffPrevPath, diffNextPath, diffJSON = "", "", false
	})

	require.NoError(t, RootCmd.Execute())

	var result models.DiffResult
	require.NoError(t, json.Unmarshal(out.Bytes(), &result))
	assert.Equal(t, `<ul><li data-key="b">b</li></ul>`, result.After)
	assert.Equal(t, 1, result.Summary.Removes)
	assert.True(t, result.Converged)
}

func TestReadTree(t *testing.T) {
	dir := t.TempDir()

	_, err := readTree(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)

	bad := writeFile(t, dir, "bad.yaml", "tag: ul\nflag: diagonal\n")
	_, err = readTree(bad)
	assert.Error(t, err)

	good := writeFile(t, dir, "good.yml", "tag: p\ntext: hi\n")
	n, err := readTree(good)
	require.NoError(t, err)
	assert.Equal(t, "hi", n.Text)
}
