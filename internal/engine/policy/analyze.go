package policy

import (
	"context"
	"sync"
)

// Diagnostic is one reported violation, positioned at its statement.
type Diagnostic struct {
	File      string
	Span      Span
	Verdict   Verdict
	MessageID MessageID
	Data      map[string]string
	Message   string
}

// Reporter receives diagnostics in source order.
type Reporter interface {
	Report(Diagnostic)
}

type ReporterFunc func(Diagnostic)

func (f ReporterFunc) Report(d Diagnostic) { f(d) }

// Collector accumulates diagnostics. Safe for concurrent use.
type Collector struct {
	mu    sync.Mutex
	diags []Diagnostic
}

func (c *Collector) Report(d Diagnostic) {
	c.mu.Lock()
	c.diags = append(c.diags, d)
	c.mu.Unlock()
}

// Diagnostics returns a copy of everything reported so far.
func (c *Collector) Diagnostics() []Diagnostic {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Diagnostic, len(c.diags))
	copy(out, c.diags)
	return out
}

// NewDiagnostic builds the diagnostic for a non-allowed outcome.
func NewDiagnostic(path string, stmt Statement, outcome Outcome, cfg *Config) Diagnostic {
	data := outcome.MessageData(cfg)
	id := outcome.MessageID()
	var span Span
	if stmt != nil {
		span = stmt.Location()
	}
	return Diagnostic{
		File:      path,
		Span:      span,
		Verdict:   outcome.Verdict,
		MessageID: id,
		Data:      data,
		Message:   FormatMessage(id, data),
	}
}

// Analyze judges every top-level statement of one file. Files outside the
// configured pattern produce nothing. Each statement is classified on its
// own; a cancelled ctx stops the walk and its error is returned.
func Analyze(ctx context.Context, path string, stmts []Statement, cfg *Config, reporter Reporter) error {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if !cfg.InScope(path) {
		return nil
	}
	for _, stmt := range stmts {
		if err := ctx.Err(); err != nil {
			return err
		}
		outcome := Classify(stmt, cfg)
		if outcome.Allowed() {
			continue
		}
		if reporter != nil {
			reporter.Report(NewDiagnostic(path, stmt, outcome, cfg))
		}
	}
	return nil
}
