package app

import (
	"context"
	"log/slog"
	"os"
	"strconv"

	"typeonly/internal/core/config"
	"typeonly/internal/core/errors"
	"typeonly/internal/engine/parser"
	"typeonly/internal/engine/policy"
	"typeonly/internal/shared/observability"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Checker applies the type-only-files policy to files on disk.
type Checker struct {
	cfg    *config.Config
	policy *policy.Config
	parser *parser.Parser
}

// FileResult is the outcome of checking one in-scope file.
type FileResult struct {
	Path         string
	Language     string
	Statements   int
	SyntaxErrors int
	Diagnostics  []policy.Diagnostic
}

func New(cfg *config.Config) (*Checker, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	pc, err := cfg.PolicyConfig()
	if err != nil {
		return nil, err
	}
	return &Checker{
		cfg:    cfg,
		policy: pc,
		parser: parser.NewParser(parser.NewGrammarLoader()),
	}, nil
}

// SupportedExtensions lists the extensions the parser has a dedicated
// grammar for.
func (c *Checker) SupportedExtensions() []string {
	return c.parser.SupportedExtensions()
}

// CheckFile reads, parses and analyzes path. It returns ok=false without
// touching the file when path is outside the configured file pattern.
func (c *Checker) CheckFile(ctx context.Context, path string) (FileResult, bool, error) {
	inScope := c.policy.InScope(path)
	observability.FilesCheckedTotal.WithLabelValues(strconv.FormatBool(inScope)).Inc()
	if !inScope {
		return FileResult{}, false, nil
	}

	ctx, span := observability.Tracer.Start(ctx, "Checker.CheckFile",
		trace.WithAttributes(attribute.String("path", path)))
	defer span.End()

	content, err := os.ReadFile(path)
	if err != nil {
		observability.FileErrorsTotal.WithLabelValues("read").Inc()
		code := errors.CodeInternal
		if os.IsNotExist(err) {
			code = errors.CodeNotFound
		}
		return FileResult{}, true, errors.AddContext(errors.Wrap(err, code, "read file"), errors.CtxPath, path)
	}
	return c.CheckSource(ctx, path, content)
}

// CheckSource is CheckFile for content already in memory.
func (c *Checker) CheckSource(ctx context.Context, path string, content []byte) (FileResult, bool, error) {
	if !c.policy.InScope(path) {
		return FileResult{}, false, nil
	}

	file, err := c.parser.ParseFile(path, content)
	if err != nil {
		observability.FileErrorsTotal.WithLabelValues("parse").Inc()
		return FileResult{}, true, errors.AddContext(err, errors.CtxPath, path)
	}
	if file.HasSyntaxErrors() {
		first := file.SyntaxErrors[0]
		slog.Warn("syntax errors in file; unparsable statements are reported as InvalidSyntax",
			"path", path, "count", len(file.SyntaxErrors), "line", first.StartLine)
	}

	var collector policy.Collector
	if err := policy.Analyze(ctx, path, file.Statements, c.policy, &collector); err != nil {
		return FileResult{}, true, err
	}
	diags := collector.Diagnostics()
	recordVerdicts(len(file.Statements), diags)

	return FileResult{
		Path:         path,
		Language:     file.Language,
		Statements:   len(file.Statements),
		SyntaxErrors: len(file.SyntaxErrors),
		Diagnostics:  diags,
	}, true, nil
}

func recordVerdicts(statements int, diags []policy.Diagnostic) {
	allowed := statements - len(diags)
	if allowed > 0 {
		observability.StatementsClassifiedTotal.WithLabelValues(policy.Allowed.String()).Add(float64(allowed))
	}
	for _, d := range diags {
		observability.StatementsClassifiedTotal.WithLabelValues(d.Verdict.String()).Inc()
	}
}
