package app

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"go.trai.ch/cjsguard/internal/adapters/watcher"
	"go.trai.ch/cjsguard/internal/core/domain"
	"go.trai.ch/cjsguard/internal/core/ports"
	"go.trai.ch/zerr"
)

// Watch lints paths once and then again after every batch of relevant file
// changes, until ctx is canceled. Findings and analysis failures of a pass are
// reported without ending the watch.
func (a *App) Watch(ctx context.Context, paths []string, opts LintOptions) error {
	opts.WriteBaseline = ""
	r, err := a.prepare(paths, opts)
	if err != nil {
		return err
	}

	w, err := a.newWatcher(r.cfg.Ignore)
	if err != nil {
		return zerr.Wrap(err, domain.ErrWatcherFailed.Error())
	}
	defer func() {
		_ = w.Stop()
	}()

	for _, dir := range watchDirs(a.fsys, r.roots) {
		if err := w.Start(ctx, dir); err != nil {
			return zerr.With(zerr.Wrap(err, domain.ErrWatcherFailed.Error()), "path", dir)
		}
	}

	a.store.Reset()
	a.logPass(a.lint(ctx, r))
	a.logger.Info("watching for changes...")

	batches := make(chan []ports.WatchEvent, 1)
	debouncer := watcher.NewDebouncer(a.debounceWindow(), func(events []ports.WatchEvent) {
		select {
		case batches <- events:
		case <-ctx.Done():
		}
	})

	go func() {
		for event := range w.Events() {
			if a.relevant(r.cfg, event) {
				debouncer.Add(event)
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case events := <-batches:
			a.applyChanges(events)
			a.logger.Info(fmt.Sprintf("%s changed, linting...", describeBatch(events)))
			a.logPass(a.lint(ctx, r))
		}
	}
}

func (a *App) debounceWindow() time.Duration {
	if a.debounce > 0 {
		return a.debounce
	}
	return watcher.DefaultDebounceWindow
}

// relevant reports whether event can change a lint result.
func (a *App) relevant(cfg *domain.Config, event ports.WatchEvent) bool {
	if event.Operation != ports.OpWrite {
		return true
	}
	base := filepath.Base(event.Path)
	return base == domain.ManifestFileName || cfg.HasExtension(filepath.Ext(base))
}

// applyChanges drops stored results that may be stale after events. A manifest
// edit or a change to the file set can alter any classification, so every
// result is dropped; plain content edits only invalidate the edited files.
func (a *App) applyChanges(events []ports.WatchEvent) {
	paths := make([]string, 0, len(events))
	for _, event := range events {
		if event.Operation != ports.OpWrite || filepath.Base(event.Path) == domain.ManifestFileName {
			a.store.Reset()
			return
		}
		paths = append(paths, event.Path)
	}
	a.store.Invalidate(paths)
}

// logPass reports the outcome of a lint pass in watch mode.
func (a *App) logPass(err error) {
	switch {
	case err == nil:
	case errors.Is(err, context.Canceled):
	case errors.Is(err, domain.ErrViolationsFound):
	default:
		a.logger.Error(err)
	}
}

// watchDirs returns the directories to watch for the lint roots. File roots are
// watched through their parent directory.
func watchDirs(fsys ports.FileSystem, roots []string) []string {
	seen := make(map[string]struct{})
	var dirs []string
	for _, root := range roots {
		dir := root
		if info, err := fsys.Stat(root); err == nil && !info.IsDir() {
			dir = filepath.Dir(root)
		}
		if _, ok := seen[dir]; ok {
			continue
		}
		seen[dir] = struct{}{}
		dirs = append(dirs, dir)
	}
	return dirs
}

func describeBatch(events []ports.WatchEvent) string {
	if len(events) == 1 {
		return filepath.Base(events[0].Path)
	}
	return fmt.Sprintf("%d files", len(events))
}
