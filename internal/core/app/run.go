package app

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"typeonly/internal/engine/policy"
	"typeonly/internal/shared/observability"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"
)

// FileError records a file that could not be checked.
type FileError struct {
	Path string
	Err  error
}

// RunResult aggregates one pass over a set of scan paths.
type RunResult struct {
	RunID           string
	StartedAt       time.Time
	Duration        time.Duration
	FilesDiscovered int
	// Files holds only in-scope files, sorted by path.
	Files  []FileResult
	Errors []FileError
}

// Diagnostics flattens every file's diagnostics in file then source order.
func (r RunResult) Diagnostics() []policy.Diagnostic {
	var out []policy.Diagnostic
	for _, f := range r.Files {
		out = append(out, f.Diagnostics...)
	}
	return out
}

func (r RunResult) ViolationCount() int {
	n := 0
	for _, f := range r.Files {
		n += len(f.Diagnostics)
	}
	return n
}

// Failed reports whether the run found violations or unreadable files.
func (r RunResult) Failed() bool {
	return r.ViolationCount() > 0 || len(r.Errors) > 0
}

type fileOutcome struct {
	result  FileResult
	inScope bool
	err     error
}

// Run discovers files under paths and checks them with a bounded worker
// pool. Per-file failures are collected in RunResult.Errors; only a
// discovery failure or cancellation aborts the run.
func (c *Checker) Run(ctx context.Context, paths []string) (RunResult, error) {
	if len(paths) == 0 {
		paths = c.cfg.Scan.Paths
	}
	ctx, span := observability.Tracer.Start(ctx, "Checker.Run")
	defer span.End()

	started := time.Now()
	files, err := c.Discover(paths)
	if err != nil {
		return RunResult{}, err
	}
	span.SetAttributes(attribute.Int("files.discovered", len(files)))
	return c.runFiles(ctx, started, files)
}

// runFiles checks an already discovered file list.
func (c *Checker) runFiles(ctx context.Context, started time.Time, files []string) (RunResult, error) {
	result, err := c.checkAll(ctx, files)
	if err != nil {
		return RunResult{}, err
	}
	result.StartedAt = started
	result.FilesDiscovered = len(files)
	result.Duration = time.Since(started)
	observability.RunDuration.Observe(result.Duration.Seconds())

	slog.Info("check complete",
		"run_id", result.RunID,
		"discovered", result.FilesDiscovered,
		"in_scope", len(result.Files),
		"violations", result.ViolationCount(),
		"errors", len(result.Errors),
		"duration", result.Duration)
	return result, nil
}

func (c *Checker) checkAll(ctx context.Context, files []string) (RunResult, error) {
	outcomes := make([]fileOutcome, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.cfg.Scan.Workers())
	for i, path := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res, inScope, err := c.CheckFile(gctx, path)
			outcomes[i] = fileOutcome{result: res, inScope: inScope, err: err}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return RunResult{}, err
	}
	if err := ctx.Err(); err != nil {
		return RunResult{}, err
	}

	result := RunResult{RunID: uuid.NewString()}
	for i, o := range outcomes {
		switch {
		case o.err != nil:
			slog.Warn("failed to check file", "path", files[i], "error", o.err)
			result.Errors = append(result.Errors, FileError{Path: files[i], Err: o.err})
		case o.inScope:
			result.Files = append(result.Files, o.result)
		}
	}
	sort.Slice(result.Files, func(i, j int) bool { return result.Files[i].Path < result.Files[j].Path })
	return result, nil
}
