package parser

import (
	"time"

	"typeonly/internal/engine/policy"
)

// File is the host view of one parsed source file: its top-level
// statements in source order.
type File struct {
	Path         string
	Language     string
	Statements   []policy.Statement
	SyntaxErrors []policy.Span
	ParsedAt     time.Time
}

// HasSyntaxErrors reports whether the grammar had to recover from errors.
func (f *File) HasSyntaxErrors() bool {
	return len(f.SyntaxErrors) > 0
}

const (
	LangTypeScript = "typescript"
	LangTSX        = "tsx"
)
