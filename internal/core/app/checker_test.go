package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"typeonly/internal/core/config"
	"typeonly/internal/core/errors"
	"typeonly/internal/engine/policy"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func newChecker(t *testing.T, mutate func(*config.Config)) *Checker {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Scan.Concurrency = 2
	if mutate != nil {
		mutate(cfg)
	}
	c, err := New(cfg)
	require.NoError(t, err)
	return c
}

func TestNew_InvalidFilePattern(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Rule.FilePattern = "(["
	_, err := New(cfg)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.CodeConfigError))
}

func TestCheckFile_OutOfScopeIsNotRead(t *testing.T) {
	c := newChecker(t, nil)
	res, inScope, err := c.CheckFile(context.Background(), filepath.Join(t.TempDir(), "missing.ts"))
	require.NoError(t, err)
	assert.False(t, inScope)
	assert.Empty(t, res.Diagnostics)
}

func TestCheckFile_ReportsViolations(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "shapes.types.ts", `import type { A } from "./a";
export type B = A;
export const c = 1;
`)

	c := newChecker(t, nil)
	res, inScope, err := c.CheckFile(context.Background(), path)
	require.NoError(t, err)
	require.True(t, inScope)
	assert.Equal(t, 3, res.Statements)
	require.Len(t, res.Diagnostics, 1)

	d := res.Diagnostics[0]
	assert.Equal(t, policy.BadExport, d.Verdict)
	assert.Equal(t, policy.MessageExportTypes, d.MessageID)
	assert.Equal(t, 3, d.Span.StartLine)
	assert.Equal(t, "Type-only files should only export types, interfaces, or enums.", d.Message)
}

func TestCheckFile_MissingInScopeFile(t *testing.T) {
	c := newChecker(t, nil)
	_, inScope, err := c.CheckFile(context.Background(), filepath.Join(t.TempDir(), "gone.types.ts"))
	require.Error(t, err)
	assert.True(t, inScope)
	assert.True(t, errors.IsCode(err, errors.CodeNotFound))
}

func TestCheckFile_BanEnums(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "colors.types.ts", "enum Color { Red }\n")

	res, _, err := newChecker(t, nil).CheckFile(context.Background(), path)
	require.NoError(t, err)
	assert.Empty(t, res.Diagnostics)

	banning := newChecker(t, func(cfg *config.Config) { cfg.Rule.BanEnums = true })
	res, _, err = banning.CheckFile(context.Background(), path)
	require.NoError(t, err)
	require.Len(t, res.Diagnostics, 1)
	assert.Equal(t, policy.BadEnum, res.Diagnostics[0].Verdict)
	assert.Equal(t, "Enums are not allowed by your type-only-files configuration.", res.Diagnostics[0].Message)
}

func TestDiscover_ExcludesAndSorts(t *testing.T) {
	dir := t.TempDir()
	b := writeFile(t, dir, "b.types.ts", "type B = 1;\n")
	a := writeFile(t, dir, "src/a.types.ts", "type A = 1;\n")
	writeFile(t, dir, "node_modules/pkg/index.types.ts", "export const x = 1;\n")
	writeFile(t, dir, "src/skip.gen.types.ts", "export const x = 1;\n")

	c := newChecker(t, func(cfg *config.Config) {
		cfg.Scan.ExcludeFiles = []string{"*.gen.*"}
	})
	files, err := c.Discover([]string{dir, b})
	require.NoError(t, err)
	assert.Equal(t, []string{b, a}, files)
}

func TestDiscover_MissingPath(t *testing.T) {
	c := newChecker(t, nil)
	_, err := c.Discover([]string{filepath.Join(t.TempDir(), "nope")})
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.CodeNotFound))
}

func TestRun_AggregatesInScopeFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "ok.types.ts", "export interface Ok { id: string }\n")
	writeFile(t, dir, "bad.types.ts", "import { x } from \"./x\";\nfunction f() {}\n")
	writeFile(t, dir, "runtime.ts", "export const y = 2;\n")

	c := newChecker(t, nil)
	result, err := c.Run(context.Background(), []string{dir})
	require.NoError(t, err)

	assert.NotEmpty(t, result.RunID)
	assert.Equal(t, 3, result.FilesDiscovered)
	require.Len(t, result.Files, 2)
	assert.Equal(t, filepath.Join(dir, "bad.types.ts"), result.Files[0].Path)
	assert.Equal(t, filepath.Join(dir, "ok.types.ts"), result.Files[1].Path)
	assert.Empty(t, result.Errors)

	diags := result.Diagnostics()
	require.Len(t, diags, 2)
	assert.Equal(t, policy.BadImport, diags[0].Verdict)
	assert.Equal(t, policy.BadOther, diags[1].Verdict)
	assert.Equal(t, "FunctionDeclaration", diags[1].Data["type"])
	assert.Equal(t, 2, result.ViolationCount())
	assert.True(t, result.Failed())
}

func TestRun_CustomPattern(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "contracts/api.ts", "export const bad = 1;\n")
	writeFile(t, dir, "other.types.ts", "export const ignored = 1;\n")

	c := newChecker(t, func(cfg *config.Config) { cfg.Rule.FilePattern = `contracts/` })
	result, err := c.Run(context.Background(), []string{dir})
	require.NoError(t, err)
	require.Len(t, result.Files, 1)
	assert.Equal(t, 1, result.ViolationCount())
}

func TestRun_Cancelled(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.types.ts", "type A = 1;\n")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := newChecker(t, nil).Run(ctx, []string{dir})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestWatch_RechecksChangedFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "live.types.ts", "type A = 1;\n")

	c := newChecker(t, func(cfg *config.Config) { cfg.Watch.Debounce = 20 * time.Millisecond })
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	results := make(chan RunResult, 8)
	done := make(chan error, 1)
	go func() {
		done <- c.Watch(ctx, []string{dir}, func(r RunResult) { results <- r })
	}()

	select {
	case initial := <-results:
		assert.Equal(t, 0, initial.ViolationCount())
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for initial run")
	}

	// Give the watcher a moment to register directories.
	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(path, []byte("export const a = 1;\n"), 0o644))

	select {
	case next := <-results:
		assert.Equal(t, 1, next.ViolationCount())
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for re-check")
	}

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop")
	}
}

func TestCheckSource_TypeOnlyReexports(t *testing.T) {
	c := newChecker(t, func(cfg *config.Config) { cfg.Rule.BanEnums = true })
	src := []byte("export type * from './a';\nexport type * as ns from './b';\n")
	res, inScope, err := c.CheckSource(context.Background(), "barrel.types.ts", src)
	require.NoError(t, err)
	require.True(t, inScope)
	assert.Equal(t, 2, res.Statements)
	assert.Empty(t, res.Diagnostics)
}

func watchFixture(t *testing.T, c *Checker, dir string) *watchState {
	t.Helper()
	files, err := c.Discover([]string{dir})
	require.NoError(t, err)
	initial, err := c.runFiles(context.Background(), time.Now(), files)
	require.NoError(t, err)
	require.Equal(t, 2, initial.ViolationCount())
	return newWatchState(files, initial)
}

func TestWatch_BatchKeepsUntouchedFiles(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.types.ts", "export const a = 1;\n")
	b := writeFile(t, dir, "b.types.ts", "export const b = 1;\n")
	writeFile(t, dir, "main.ts", "console.log(1);\n")

	c := newChecker(t, nil)
	state := watchFixture(t, c, dir)

	var got []RunResult
	require.NoError(t, os.WriteFile(b, []byte("export const b = 2;\n"), 0o644))
	c.handleChanges(context.Background(), state, []string{b}, func(r RunResult) { got = append(got, r) })

	require.Len(t, got, 1)
	assert.Equal(t, 3, got[0].FilesDiscovered)
	require.Len(t, got[0].Files, 2)
	assert.Equal(t, a, got[0].Files[0].Path)
	assert.Equal(t, b, got[0].Files[1].Path)
	assert.Equal(t, 2, got[0].ViolationCount())

	require.NoError(t, os.WriteFile(b, []byte("export type B = 1;\n"), 0o644))
	c.handleChanges(context.Background(), state, []string{b}, func(r RunResult) { got = append(got, r) })

	require.Len(t, got, 2)
	assert.Equal(t, 1, got[1].ViolationCount())
	assert.Equal(t, a, got[1].Diagnostics()[0].File)
}

func TestWatch_BatchDropsDeletedFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.types.ts", "export const a = 1;\n")
	b := writeFile(t, dir, "b.types.ts", "export const b = 1;\n")

	c := newChecker(t, nil)
	state := watchFixture(t, c, dir)

	require.NoError(t, os.Remove(b))
	var got []RunResult
	c.handleChanges(context.Background(), state, []string{b}, func(r RunResult) { got = append(got, r) })

	require.Len(t, got, 1)
	assert.Equal(t, 1, got[0].FilesDiscovered)
	require.Len(t, got[0].Files, 1)
	assert.Equal(t, 1, got[0].ViolationCount())
	assert.Empty(t, got[0].Errors)
}

func TestWatch_OutOfScopeChangeIsIgnored(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.types.ts", "export const a = 1;\n")
	writeFile(t, dir, "b.types.ts", "export const b = 1;\n")
	entry := writeFile(t, dir, "main.ts", "console.log(1);\n")

	c := newChecker(t, nil)
	state := watchFixture(t, c, dir)

	called := false
	c.handleChanges(context.Background(), state, []string{entry}, func(RunResult) { called = true })
	assert.False(t, called)
}
