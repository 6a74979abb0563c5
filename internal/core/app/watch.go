package app

import (
	"context"
	"log/slog"
	"os"
	"sort"
	"time"

	"typeonly/internal/core/watcher"

	"github.com/google/uuid"
)

// watchState is the project-wide view a watch session keeps between
// batches. It is only touched by the initial run and the watcher's
// serialized change callback.
type watchState struct {
	discovered map[string]struct{}
	files      map[string]FileResult
	errors     map[string]FileError
}

func newWatchState(files []string, initial RunResult) *watchState {
	s := &watchState{
		discovered: make(map[string]struct{}, len(files)),
		files:      make(map[string]FileResult, len(initial.Files)),
		errors:     make(map[string]FileError, len(initial.Errors)),
	}
	for _, path := range files {
		s.discovered[path] = struct{}{}
	}
	s.apply(nil, initial)
	return s
}

// forget drops path and everything recorded for it.
func (s *watchState) forget(path string) {
	delete(s.discovered, path)
	delete(s.files, path)
	delete(s.errors, path)
}

// apply replaces the entries for rechecked with the outcome of batch.
func (s *watchState) apply(rechecked []string, batch RunResult) {
	for _, path := range rechecked {
		delete(s.files, path)
		delete(s.errors, path)
	}
	for _, f := range batch.Files {
		s.files[f.Path] = f
	}
	for _, e := range batch.Errors {
		s.errors[e.Path] = e
	}
}

// snapshot builds a project-wide result carrying batch's timing.
func (s *watchState) snapshot(batch RunResult) RunResult {
	result := RunResult{
		RunID:           batch.RunID,
		StartedAt:       batch.StartedAt,
		Duration:        batch.Duration,
		FilesDiscovered: len(s.discovered),
	}
	if result.RunID == "" {
		result.RunID = uuid.NewString()
	}
	for _, f := range s.files {
		result.Files = append(result.Files, f)
	}
	for _, e := range s.errors {
		result.Errors = append(result.Errors, e)
	}
	sort.Slice(result.Files, func(i, j int) bool { return result.Files[i].Path < result.Files[j].Path })
	sort.Slice(result.Errors, func(i, j int) bool { return result.Errors[i].Path < result.Errors[j].Path })
	return result
}

// Watch runs an initial check over paths, then re-checks changed files
// after each debounced batch until ctx is done. Every result handed to
// onResult covers the whole project: a batch replaces the entries of the
// files it re-checked and drops deleted files. onResult is called
// serially, initial run included.
func (c *Checker) Watch(ctx context.Context, paths []string, onResult func(RunResult)) error {
	if len(paths) == 0 {
		paths = c.cfg.Scan.Paths
	}

	started := time.Now()
	files, err := c.Discover(paths)
	if err != nil {
		return err
	}
	initial, err := c.runFiles(ctx, started, files)
	if err != nil {
		return err
	}
	state := newWatchState(files, initial)
	onResult(initial)

	w, err := watcher.NewWatcher(
		c.cfg.Watch.Debounce,
		c.cfg.Scan.ExcludeDirs,
		c.cfg.Scan.ExcludeFiles,
		nil,
		func(changed []string) { c.handleChanges(ctx, state, changed, onResult) },
	)
	if err != nil {
		return err
	}
	defer w.Close()

	if err := w.Watch(paths); err != nil {
		return err
	}
	slog.Info("watching for changes", "paths", paths, "debounce", c.cfg.Watch.Debounce)

	<-ctx.Done()
	return nil
}

func (c *Checker) handleChanges(ctx context.Context, state *watchState, changed []string, onResult func(RunResult)) {
	if ctx.Err() != nil {
		return
	}
	var present []string
	removed := 0
	for _, path := range changed {
		info, err := os.Stat(path)
		if err != nil {
			if c.policy.InScope(path) {
				removed++
			}
			state.forget(path)
			continue
		}
		if info.IsDir() {
			continue
		}
		state.discovered[path] = struct{}{}
		if c.policy.InScope(path) {
			present = append(present, path)
		}
	}
	if len(present) == 0 && removed == 0 {
		return
	}
	sort.Strings(present)
	slog.Debug("re-checking changed files", "count", len(present), "removed", removed)

	batch, err := c.runFiles(ctx, time.Now(), present)
	if err != nil {
		slog.Warn("re-check failed", "error", err)
		return
	}
	state.apply(present, batch)
	onResult(state.snapshot(batch))
}
