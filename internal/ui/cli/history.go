package cli

import (
	"log/slog"
	"path/filepath"

	coreapp "typeonly/internal/core/app"
	"typeonly/internal/data/history"
	"typeonly/internal/engine/policy"
)

// runRecorder saves every run to the history database and reports the
// change against the previous run of the same project.
type runRecorder struct {
	store      *history.Store
	projectKey string
}

func openRecorder(path, projectRoot string) *runRecorder {
	if !filepath.IsAbs(path) {
		path = filepath.Join(projectRoot, path)
	}
	store, err := history.Open(path)
	if err != nil {
		if history.IsCorruptError(err) {
			slog.Warn("history database is corrupt; history disabled", "path", path, "error", err)
		} else {
			slog.Warn("history disabled", "path", path, "error", err)
		}
		return nil
	}
	return &runRecorder{store: store, projectKey: projectRoot}
}

func (r *runRecorder) Close() {
	if r == nil {
		return
	}
	if err := r.store.Close(); err != nil {
		slog.Warn("failed to close history database", "error", err)
	}
}

// Record stores result and returns its change against the previous run,
// if there was one.
func (r *runRecorder) Record(result coreapp.RunResult) *history.Delta {
	if r == nil {
		return nil
	}
	previous, ok, err := r.store.Latest(r.projectKey)
	if err != nil {
		slog.Warn("failed to load previous run", "error", err)
		ok = false
	}

	current := snapshotOf(result)
	if err := r.store.SaveRun(r.projectKey, current); err != nil {
		slog.Warn("failed to save run history", "error", err)
	}
	if !ok {
		return nil
	}
	delta := history.Compare(previous, current)
	return &delta
}

func snapshotOf(result coreapp.RunResult) history.Snapshot {
	s := history.Snapshot{
		RunID:           result.RunID,
		Timestamp:       result.StartedAt.UTC(),
		FilesDiscovered: result.FilesDiscovered,
		FilesInScope:    len(result.Files),
		FilesFailed:     len(result.Errors),
		DurationMS:      result.Duration.Milliseconds(),
	}
	for _, d := range result.Diagnostics() {
		s.Violations++
		switch d.MessageID {
		case policy.MessageExportTypes:
			s.ExportViolations++
		case policy.MessageImportTypes:
			s.ImportViolations++
		case policy.MessageNoEnums:
			s.EnumViolations++
		case policy.MessageNoNonTypes:
			s.NonTypeViolations++
		}
	}
	return s
}
