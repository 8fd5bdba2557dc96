package app_test

import (
	"context"
	"iter"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/cjsguard/internal/app"
	"go.trai.ch/cjsguard/internal/core/domain"
	"go.trai.ch/cjsguard/internal/core/ports"
)

// fakeWatcher is a ports.Watcher driven by the test.
type fakeWatcher struct {
	events   chan ports.WatchEvent
	stopOnce sync.Once

	mu     sync.Mutex
	roots  []string
	ignore []string
}

func newFakeWatcher() *fakeWatcher {
	return &fakeWatcher{events: make(chan ports.WatchEvent, 16)}
}

func (w *fakeWatcher) factory(ignore []string) (ports.Watcher, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.ignore = ignore
	return w, nil
}

func (w *fakeWatcher) Start(_ context.Context, root string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.roots = append(w.roots, root)
	return nil
}

func (w *fakeWatcher) Stop() error {
	w.stopOnce.Do(func() { close(w.events) })
	return nil
}

func (w *fakeWatcher) Events() iter.Seq[ports.WatchEvent] {
	return func(yield func(ports.WatchEvent) bool) {
		for event := range w.events {
			if !yield(event) {
				return
			}
		}
	}
}

func (w *fakeWatcher) startedRoots() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]string(nil), w.roots...)
}

// startWatch runs Watch in the background and returns a function that stops it
// and returns its error.
func startWatch(t *testing.T, ta *testApp, paths []string) func() error {
	t.Helper()
	ctx, cancel := context.WithCancel(t.Context())
	done := make(chan error, 1)
	go func() {
		done <- ta.app.Watch(ctx, paths, app.LintOptions{Format: domain.FormatJSON, Jobs: 1})
	}()

	return func() error {
		cancel()
		select {
		case err := <-done:
			return err
		case <-time.After(5 * time.Second):
			t.Fatal("watch did not stop")
			return nil
		}
	}
}

func reportCount(out string) int {
	return strings.Count(out, `"plugin"`)
}

func TestApp_Watch_RelintsOnChange(t *testing.T) {
	dir := newProject(t, badImports)
	fw := newFakeWatcher()
	ta := newTestApp(t, dir, fw.factory)
	ta.app.WithDebounceWindow(10 * time.Millisecond)

	stop := startWatch(t, ta, nil)

	require.Eventually(t, func() bool {
		return reportCount(ta.out.String()) == 1
	}, 5*time.Second, 10*time.Millisecond)
	assert.Contains(t, ta.out.String(), string(domain.MsgBadDestructure))
	assert.Equal(t, []string{dir}, fw.startedRoots())
	assert.Contains(t, fw.ignore, domain.NodeModulesDirName)

	index := filepath.Join(dir, "app", "src", "index.ts")
	writeFile(t, dir, "app/src/index.ts", goodImports)
	fw.events <- ports.WatchEvent{Path: index, Operation: ports.OpWrite}

	require.Eventually(t, func() bool {
		return reportCount(ta.out.String()) == 2
	}, 5*time.Second, 10*time.Millisecond)
	assert.Contains(t, ta.out.String(), `"violations": []`)

	require.NoError(t, stop())
}

func TestApp_Watch_ManifestChangeDropsStoredResults(t *testing.T) {
	dir := newProject(t, badImports)
	fw := newFakeWatcher()
	ta := newTestApp(t, dir, fw.factory)
	ta.app.WithDebounceWindow(10 * time.Millisecond)

	stop := startWatch(t, ta, nil)

	require.Eventually(t, func() bool {
		return reportCount(ta.out.String()) == 1
	}, 5*time.Second, 10*time.Millisecond)

	// The importing package turns CJS; index.ts itself is unchanged.
	manifest := filepath.Join(dir, "app", "package.json")
	writeFile(t, dir, "app/package.json", `{"name":"app"}`)
	fw.events <- ports.WatchEvent{Path: manifest, Operation: ports.OpWrite}

	require.Eventually(t, func() bool {
		return reportCount(ta.out.String()) == 2
	}, 5*time.Second, 10*time.Millisecond)
	assert.Contains(t, ta.out.String(), `"violations": []`)

	require.NoError(t, stop())
}

func TestApp_Watch_IgnoresUnrelatedWrites(t *testing.T) {
	dir := newProject(t, goodImports)
	fw := newFakeWatcher()
	ta := newTestApp(t, dir, fw.factory)
	ta.app.WithDebounceWindow(10 * time.Millisecond)

	stop := startWatch(t, ta, []string{"app"})

	require.Eventually(t, func() bool {
		return reportCount(ta.out.String()) == 1
	}, 5*time.Second, 10*time.Millisecond)
	assert.Equal(t, []string{filepath.Join(dir, "app")}, fw.startedRoots())

	fw.events <- ports.WatchEvent{Path: filepath.Join(dir, "app", "README.md"), Operation: ports.OpWrite}
	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, 1, reportCount(ta.out.String()))

	require.NoError(t, stop())
}

func TestApp_Watch_FileRootWatchesParent(t *testing.T) {
	dir := newProject(t, goodImports)
	fw := newFakeWatcher()
	ta := newTestApp(t, dir, fw.factory)

	stop := startWatch(t, ta, []string{"app/src/index.ts"})

	require.Eventually(t, func() bool {
		return reportCount(ta.out.String()) == 1
	}, 5*time.Second, 10*time.Millisecond)
	assert.Equal(t, []string{filepath.Join(dir, "app", "src")}, fw.startedRoots())

	require.NoError(t, stop())
}
