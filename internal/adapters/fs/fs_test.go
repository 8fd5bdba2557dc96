package fs_test

import (
	"os"
	"path/filepath"
	"slices"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/cjsguard/internal/adapters/fs"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func collect(t *testing.T, root string, ignores []string) []string {
	t.Helper()
	var files []string
	for path := range fs.NewWalker().WalkFiles(root, ignores) {
		rel, err := filepath.Rel(root, path)
		require.NoError(t, err)
		files = append(files, filepath.ToSlash(rel))
	}
	slices.Sort(files)
	return files
}

func TestWalker_WalkFiles(t *testing.T) {
	// tmp/
	//   .git/config
	//   .jj/repo
	//   node_modules/dep/index.js
	//   dist-esm/out.js
	//   src/index.ts
	//   package.json
	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, ".git", "config"), "git config")
	writeFile(t, filepath.Join(tmpDir, ".jj", "repo"), "jj")
	writeFile(t, filepath.Join(tmpDir, "node_modules", "dep", "index.js"), "module.exports = {}")
	writeFile(t, filepath.Join(tmpDir, "dist-esm", "out.js"), "export {}")
	writeFile(t, filepath.Join(tmpDir, "src", "index.ts"), "export {}")
	writeFile(t, filepath.Join(tmpDir, "package.json"), "{}")

	files := collect(t, tmpDir, []string{"node_modules", "dist-*"})

	assert.Equal(t, []string{"package.json", "src/index.ts"}, files)
}

func TestWalker_RootIsNeverSkipped(t *testing.T) {
	tmpDir := t.TempDir()
	root := filepath.Join(tmpDir, "node_modules")
	writeFile(t, filepath.Join(root, "index.js"), "")

	assert.Equal(t, []string{"index.js"}, collect(t, root, []string{"node_modules"}))
}

func TestWalker_RootIsFile(t *testing.T) {
	tmpDir := t.TempDir()
	file := filepath.Join(tmpDir, "index.ts")
	writeFile(t, file, "")

	var files []string
	for path := range fs.NewWalker().WalkFiles(file, nil) {
		files = append(files, path)
	}

	assert.Equal(t, []string{file}, files)
}

func TestWalker_StopsEarly(t *testing.T) {
	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, "a.ts"), "")
	writeFile(t, filepath.Join(tmpDir, "b.ts"), "")

	count := 0
	for range fs.NewWalker().WalkFiles(tmpDir, nil) {
		count++
		break
	}

	assert.Equal(t, 1, count)
}

func TestWalker_MissingRoot(t *testing.T) {
	files := collect(t, filepath.Join(t.TempDir(), "missing"), nil)
	assert.Empty(t, files)
}

func TestHasher_HashContent(t *testing.T) {
	h := fs.NewHasher()

	first := h.HashContent([]byte("import x from 'y';"))
	second := h.HashContent([]byte("import x from 'y';"))
	other := h.HashContent([]byte("import { x } from 'y';"))

	assert.Equal(t, first, second)
	assert.NotEqual(t, first, other)
	assert.Len(t, first, 16)
}

func TestOSFS(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "package.json")
	writeFile(t, path, `{"type":"module"}`)

	fsys := fs.NewOSFS()

	info, err := fsys.Stat(path)
	require.NoError(t, err)
	assert.False(t, info.IsDir())

	data, err := fsys.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"module"}`, string(data))

	_, err = fsys.Stat(filepath.Join(tmpDir, "missing"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestMapFSAdapter(t *testing.T) {
	root := filepath.Join(string(filepath.Separator), "repo")
	fsys := fs.NewMapFSAdapter(root, fstest.MapFS{
		"package.json":     {Data: []byte(`{}`)},
		"src/index.ts":     {Data: []byte("export {}")},
		"src/lib/util.mts": {Data: []byte("")},
	})

	t.Run("root", func(t *testing.T) {
		info, err := fsys.Stat(root)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	})

	t.Run("nested file", func(t *testing.T) {
		data, err := fsys.ReadFile(filepath.Join(root, "src", "index.ts"))
		require.NoError(t, err)
		assert.Equal(t, "export {}", string(data))
	})

	t.Run("implicit directory", func(t *testing.T) {
		info, err := fsys.Stat(filepath.Join(root, "src", "lib"))
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := fsys.Stat(filepath.Join(root, "src", "missing.ts"))
		require.Error(t, err)
	})

	t.Run("outside root", func(t *testing.T) {
		_, err := fsys.Stat(filepath.Join(string(filepath.Separator), "other", "package.json"))
		require.Error(t, err)
	})
}
