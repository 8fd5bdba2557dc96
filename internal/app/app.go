// Package app implements the application layer for cjsguard.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"sync"
	"time"

	"go.trai.ch/cjsguard/internal/adapters/baseline"
	"go.trai.ch/cjsguard/internal/adapters/report"
	"go.trai.ch/cjsguard/internal/core/domain"
	"go.trai.ch/cjsguard/internal/core/ports"
	"go.trai.ch/cjsguard/internal/engine/interop"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	logger       ports.Logger
	fsys         ports.FileSystem
	walker       ports.Walker
	hasher       ports.Hasher
	parser       ports.SourceParser
	store        ports.ResultStore
	newWatcher   ports.WatcherFactory

	stdout   io.Writer
	workDir  string
	debounce time.Duration
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	log ports.Logger,
	fsys ports.FileSystem,
	walker ports.Walker,
	hasher ports.Hasher,
	parser ports.SourceParser,
	store ports.ResultStore,
	newWatcher ports.WatcherFactory,
) *App {
	return &App{
		configLoader: loader,
		logger:       log,
		fsys:         fsys,
		walker:       walker,
		hasher:       hasher,
		parser:       parser,
		store:        store,
		newWatcher:   newWatcher,
		stdout:       os.Stdout,
	}
}

// WithOutput sets the writer reports are rendered to.
func (a *App) WithOutput(w io.Writer) *App {
	a.stdout = w
	return a
}

// WithWorkingDir overrides the directory relative paths are resolved against.
// The process working directory is used otherwise.
func (a *App) WithWorkingDir(dir string) *App {
	a.workDir = dir
	return a
}

// WithDebounceWindow sets how long Watch waits for file changes to settle.
func (a *App) WithDebounceWindow(d time.Duration) *App {
	a.debounce = d
	return a
}

// SetJSONLogs switches the logger to JSON output when it supports it.
func (a *App) SetJSONLogs(enable bool) {
	if l, ok := a.logger.(interface{ SetJSON(bool) }); ok {
		l.SetJSON(enable)
	}
}

// LintOptions configuration for the Lint and Watch methods.
type LintOptions struct {
	// ConfigPath is an explicit config file. The nearest .cjsguard.yaml is used otherwise.
	ConfigPath string
	// Format overrides the configured report format.
	Format string
	// Baseline overrides the configured baseline file.
	Baseline string
	// WriteBaseline records every current finding to this file instead of reporting.
	WriteBaseline string
	// Jobs limits the number of files linted in parallel. Defaults to the CPU count.
	Jobs int
}

// run is the resolved input of one lint pass.
type run struct {
	cfg   *domain.Config
	cwd   string
	roots []string
	opts  LintOptions
}

// Lint checks every source file below paths and reports the findings.
// It returns domain.ErrViolationsFound when unsuppressed findings remain.
func (a *App) Lint(ctx context.Context, paths []string, opts LintOptions) error {
	r, err := a.prepare(paths, opts)
	if err != nil {
		return err
	}
	return a.lint(ctx, r)
}

func (a *App) prepare(paths []string, opts LintOptions) (*run, error) {
	cwd, err := a.workingDir()
	if err != nil {
		return nil, err
	}

	// 1. Load the configuration
	var cfg *domain.Config
	if opts.ConfigPath != "" {
		cfg, err = a.configLoader.LoadFile(absPath(cwd, opts.ConfigPath))
	} else {
		cfg, err = a.configLoader.Load(cwd)
	}
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load configuration")
	}

	// 2. Apply command line overrides
	if opts.Format != "" {
		cfg.Format = opts.Format
	}
	if opts.Baseline != "" {
		cfg.Baseline = absPath(cwd, opts.Baseline)
	}
	if opts.WriteBaseline != "" {
		opts.WriteBaseline = absPath(cwd, opts.WriteBaseline)
	}
	if opts.Jobs <= 0 {
		opts.Jobs = runtime.NumCPU()
	}

	// 3. Resolve the lint roots
	if len(paths) == 0 {
		paths = []string{cwd}
	}
	roots := make([]string, 0, len(paths))
	for _, p := range paths {
		root := absPath(cwd, p)
		if _, err := a.fsys.Stat(root); err != nil {
			return nil, zerr.With(zerr.Wrap(err, domain.ErrWalkFailed.Error()), "path", root)
		}
		roots = append(roots, root)
	}

	return &run{cfg: cfg, cwd: cwd, roots: roots, opts: opts}, nil
}

func (a *App) lint(ctx context.Context, r *run) error {
	reporter, err := report.New(r.cfg.Format, a.stdout, r.cwd)
	if err != nil {
		return err
	}

	files := a.collectFiles(r)
	results, lintErr := a.lintFiles(ctx, r, files)
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	if lintErr != nil && r.opts.WriteBaseline != "" {
		return lintErr
	}

	if r.opts.WriteBaseline != "" {
		n, err := baseline.Write(r.opts.WriteBaseline, results)
		if err != nil {
			return err
		}
		a.logger.Info(fmt.Sprintf("wrote %d findings to %s", n, r.opts.WriteBaseline))
		return nil
	}

	if r.cfg.Baseline != "" {
		known, err := baseline.Load(r.cfg.Baseline)
		if err != nil {
			return err
		}
		var suppressed int
		results, suppressed = known.Filter(results)
		if suppressed > 0 {
			a.logger.Info(fmt.Sprintf("%d known findings suppressed by %s", suppressed, r.cfg.Baseline))
		}
	}

	if err := reporter.Report(results); err != nil {
		return zerr.Wrap(err, domain.ErrReportFailed.Error())
	}

	if lintErr != nil {
		return lintErr
	}

	if n := countViolations(results); n > 0 {
		return zerr.With(zerr.Wrap(domain.ErrViolationsFound, ""), "count", n)
	}
	return nil
}

// collectFiles returns the sorted, de-duplicated source files below the roots.
func (a *App) collectFiles(r *run) []string {
	seen := make(map[string]struct{})
	var files []string
	for _, root := range r.roots {
		for path := range a.walker.WalkFiles(root, r.cfg.Ignore) {
			if !r.cfg.HasExtension(filepath.Ext(path)) {
				continue
			}
			if _, ok := seen[path]; ok {
				continue
			}
			seen[path] = struct{}{}
			files = append(files, path)
		}
	}
	slices.Sort(files)
	return files
}

// lintFiles lints files in parallel with a fresh classification session.
// Unreadable files are left out of the results. Files with malformed or
// unresolvable imports keep the violations of their other imports. All errors
// are joined.
func (a *App) lintFiles(ctx context.Context, r *run, files []string) ([]domain.FileResult, error) {
	session := interop.NewSession(a.fsys, a.logger,
		interop.WithWorkingDir(r.cwd),
		interop.WithTypedExtensions(r.cfg.TypedExtensions...),
		interop.WithExempt(r.cfg.Exempt...),
	)

	results := make([]domain.FileResult, len(files))
	ok := make([]bool, len(files))

	var mu sync.Mutex
	var errs []error

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.opts.Jobs)
	for i, path := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res, err := a.lintFile(session, path)
			if err != nil {
				mu.Lock()
				errs = append(errs, err)
				mu.Unlock()
			}
			if res.Path != "" {
				results[i] = res
				ok[i] = true
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make([]domain.FileResult, 0, len(files))
	for i, res := range results {
		if ok[i] {
			out = append(out, res)
		}
	}

	if len(errs) > 0 {
		return out, errors.Join(domain.ErrAnalysisFailed, errors.Join(errs...))
	}
	return out, nil
}

// lintFile analyzes a single file, reusing the stored result when the content
// is unchanged. When some imports fail, the result still carries the
// violations of the others and is returned alongside the error, uncached.
func (a *App) lintFile(session *interop.Session, path string) (domain.FileResult, error) {
	data, err := a.fsys.ReadFile(path)
	if err != nil {
		return domain.FileResult{}, zerr.With(zerr.Wrap(err, domain.ErrSourceReadFailed.Error()), "path", path)
	}

	hash := a.hasher.HashContent(data)
	if cached, ok := a.store.Get(path); ok && cached.ContentHash == hash {
		return cached, nil
	}

	decls, parseErr := a.parser.Parse(path, data)
	violations, err := session.AnalyzeFile(path, decls)
	res := domain.FileResult{Path: path, ContentHash: hash, Violations: violations}
	if err = errors.Join(parseErr, err); err != nil {
		return res, err
	}

	a.store.Put(res)
	return res, nil
}

func (a *App) workingDir() (string, error) {
	if a.workDir != "" {
		return filepath.Abs(a.workDir)
	}
	return os.Getwd()
}

func absPath(cwd, path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(cwd, path)
}

func countViolations(results []domain.FileResult) int {
	n := 0
	for _, res := range results {
		n += len(res.Violations)
	}
	return n
}
