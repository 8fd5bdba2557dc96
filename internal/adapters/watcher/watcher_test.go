package watcher_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/cjsguard/internal/adapters/watcher"
	"go.trai.ch/cjsguard/internal/core/ports"
	"go.trai.ch/cjsguard/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func TestConvertEvent(t *testing.T) {
	tests := []struct {
		name   string
		op     fsnotify.Op
		want   ports.WatchOp
		wantOK bool
	}{
		{name: "write", op: fsnotify.Write, want: ports.OpWrite, wantOK: true},
		{name: "create", op: fsnotify.Create, want: ports.OpCreate, wantOK: true},
		{name: "remove", op: fsnotify.Remove, want: ports.OpRemove, wantOK: true},
		{name: "rename", op: fsnotify.Rename, want: ports.OpRename, wantOK: true},
		{name: "write wins over chmod", op: fsnotify.Write | fsnotify.Chmod, want: ports.OpWrite, wantOK: true},
		{name: "chmod only", op: fsnotify.Chmod, wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := watcher.ConvertEvent(fsnotify.Event{Name: "/p/a.ts", Op: tt.op})
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, ports.WatchEvent{Path: "/p/a.ts", Operation: tt.want}, got)
			}
		})
	}
}

func TestWatcher_ReportsChanges(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Warn(gomock.Any()).AnyTimes()

	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "src"), 0o750))

	w, err := watcher.NewWatcher(mockLogger, []string{"node_modules"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Stop() })

	ctx, cancel := context.WithCancel(t.Context())
	defer cancel()
	require.NoError(t, w.Start(ctx, root))

	target := filepath.Join(root, "src", "index.ts")
	require.NoError(t, os.WriteFile(target, []byte("export {}"), 0o600))

	seen := make(chan ports.WatchEvent, 1)
	go func() {
		for event := range w.Events() {
			if event.Path == target {
				seen <- event
				return
			}
		}
	}()

	select {
	case event := <-seen:
		assert.Contains(t, []ports.WatchOp{ports.OpCreate, ports.OpWrite}, event.Operation)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for watch event")
	}
}
