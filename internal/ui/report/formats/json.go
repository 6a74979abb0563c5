package formats

import (
	"encoding/json"
	"time"

	"typeonly/internal/core/app"
	"typeonly/internal/shared/util"
	"typeonly/internal/shared/version"
)

type jsonReport struct {
	Tool        string           `json:"tool"`
	Version     string           `json:"version"`
	RunID       string           `json:"runId"`
	StartedAt   time.Time        `json:"startedAt"`
	DurationMS  int64            `json:"durationMs"`
	Files       jsonFileTotals   `json:"files"`
	Violations  int              `json:"violations"`
	Diagnostics []jsonDiagnostic `json:"diagnostics"`
	Errors      []jsonFileError  `json:"errors,omitempty"`
}

type jsonFileTotals struct {
	Discovered int `json:"discovered"`
	InScope    int `json:"inScope"`
	Failed     int `json:"failed"`
}

type jsonDiagnostic struct {
	File      string            `json:"file"`
	Line      int               `json:"line"`
	Column    int               `json:"column"`
	EndLine   int               `json:"endLine"`
	EndColumn int               `json:"endColumn"`
	Verdict   string            `json:"verdict"`
	MessageID string            `json:"messageId"`
	Message   string            `json:"message"`
	Data      map[string]string `json:"data,omitempty"`
}

type jsonFileError struct {
	File  string `json:"file"`
	Error string `json:"error"`
}

// GenerateJSON renders a run as an indented JSON document. Paths are made
// relative to projectRoot.
func GenerateJSON(projectRoot string, result app.RunResult) ([]byte, error) {
	diags := result.Diagnostics()
	report := jsonReport{
		Tool:       toolName,
		Version:    version.Version,
		RunID:      result.RunID,
		StartedAt:  result.StartedAt.UTC(),
		DurationMS: result.Duration.Milliseconds(),
		Files: jsonFileTotals{
			Discovered: result.FilesDiscovered,
			InScope:    len(result.Files),
			Failed:     len(result.Errors),
		},
		Violations:  len(diags),
		Diagnostics: make([]jsonDiagnostic, 0, len(diags)),
	}
	for _, d := range diags {
		report.Diagnostics = append(report.Diagnostics, jsonDiagnostic{
			File:      util.RelativeSlashPath(projectRoot, d.File),
			Line:      d.Span.StartLine,
			Column:    d.Span.StartColumn,
			EndLine:   d.Span.EndLine,
			EndColumn: d.Span.EndColumn,
			Verdict:   d.Verdict.String(),
			MessageID: string(d.MessageID),
			Message:   d.Message,
			Data:      d.Data,
		})
	}
	for _, fe := range result.Errors {
		report.Errors = append(report.Errors, jsonFileError{
			File:  util.RelativeSlashPath(projectRoot, fe.Path),
			Error: fe.Err.Error(),
		})
	}
	return json.MarshalIndent(report, "", "  ")
}
