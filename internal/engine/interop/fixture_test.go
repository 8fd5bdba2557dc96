package interop_test

import (
	"io/fs"
	"path/filepath"
	"sync/atomic"
	"testing"
	"testing/fstest"

	fsadapter "go.trai.ch/cjsguard/internal/adapters/fs"
	"go.trai.ch/cjsguard/internal/core/ports"
)

const root = "/repo"

func abs(rel string) string {
	return filepath.Join(root, filepath.FromSlash(rel))
}

// newFixture returns the shared package layout used across the interop tests.
func newFixture() fstest.MapFS {
	return fstest.MapFS{
		"esm-package/package.json": {Data: []byte(`{"name":"esm","type":"module"}`)},
		"esm-package/esm.ts":       {Data: []byte("export {}")},
		"esm-package/other.ts":     {Data: []byte("export const other = 1")},
		"esm-package/helper.js":    {Data: []byte("export const h = 1")},
		"esm-package/nested/deep/file.ts": {Data: []byte("export {}")},

		"esm-package/node_modules/cjs-dep/package.json": {Data: []byte(`{"main":"index.ts"}`)},
		"esm-package/node_modules/cjs-dep/index.ts":     {Data: []byte("export = {}")},
		"esm-package/node_modules/esm-dep/package.json": {Data: []byte(`{"type":"module","main":"index.ts"}`)},
		"esm-package/node_modules/esm-dep/index.ts":     {Data: []byte("export {}")},
		"esm-package/node_modules/pkg/sub.js":           {Data: []byte("module.exports = {}")},

		"cjs-package/package.json": {Data: []byte(`{"name":"cjs"}`)},
		"cjs-package/cjs.ts":       {Data: []byte("export function doThing() {}")},
		"cjs-package/legacy.js":    {Data: []byte("module.exports = {}")},
		"cjs-package/data.json":    {Data: []byte("{}")},
		"cjs-package/typed.cts":    {Data: []byte("export {}")},

		"lib-both/package.json": {Data: []byte(`{"type":"module","module":"esm.ts","main":"cjs.cts"}`)},
		"lib-both/esm.ts":       {Data: []byte("export {}")},
		"lib-both/cjs.cts":      {Data: []byte("export {}")},

		"lib-main/package.json": {Data: []byte(`{"main":"./lib/main.ts"}`)},
		"lib-main/lib/main.ts":  {Data: []byte("export {}")},

		"lib-none/package.json":    {Data: []byte(`{"name":"none"}`)},
		"lib-missing/package.json": {Data: []byte(`{"main":"gone.ts"}`)},
		"lib-nomanifest/index.ts":  {Data: []byte("export {}")},

		"broken/package.json": {Data: []byte(`{"type": "module",`)},
		"broken/file.ts":      {Data: []byte("export {}")},

		"loose/file.ts": {Data: []byte("export {}")},
	}
}

// countingFS records how often the wrapped file system is touched.
type countingFS struct {
	ports.FileSystem
	stats atomic.Int64
	reads atomic.Int64
}

func newCountingFS(t *testing.T, mapFS fstest.MapFS) *countingFS {
	t.Helper()
	return &countingFS{FileSystem: fsadapter.NewMapFSAdapter(root, mapFS)}
}

func (c *countingFS) Stat(path string) (fs.FileInfo, error) {
	c.stats.Add(1)
	return c.FileSystem.Stat(path)
}

func (c *countingFS) ReadFile(path string) ([]byte, error) {
	c.reads.Add(1)
	return c.FileSystem.ReadFile(path)
}

func (c *countingFS) reset() {
	c.stats.Store(0)
	c.reads.Store(0)
}

func (c *countingFS) total() int64 {
	return c.stats.Load() + c.reads.Load()
}
