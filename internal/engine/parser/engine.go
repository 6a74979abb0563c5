package parser

import (
	"strings"
	"unicode/utf8"

	"typeonly/internal/engine/policy"

	sitter "github.com/tree-sitter/go-tree-sitter"
)

// ExtractionContext carries the source and output file through extraction.
type ExtractionContext struct {
	Source []byte
	File   *File
}

func (c *ExtractionContext) Text(node *sitter.Node) string {
	if node == nil {
		return ""
	}
	return string(c.Source[node.StartByte():node.EndByte()])
}

// Span converts tree-sitter's 0-based points to a 1-based policy.Span.
// Tree-sitter columns are byte offsets; Span columns count UTF-16 code
// units, the unit editors and SARIF's default columnKind use.
func (c *ExtractionContext) Span(node *sitter.Node) policy.Span {
	start := node.StartPosition()
	end := node.EndPosition()
	return policy.Span{
		StartLine:   int(start.Row) + 1,
		StartColumn: c.column(node.StartByte(), start.Column) + 1,
		EndLine:     int(end.Row) + 1,
		EndColumn:   c.column(node.EndByte(), end.Column) + 1,
	}
}

// column converts the byte column of the point at offset into UTF-16 code
// units.
func (c *ExtractionContext) column(offset, byteColumn uint) int {
	if offset > uint(len(c.Source)) || byteColumn > offset {
		return int(byteColumn)
	}
	line := c.Source[offset-byteColumn : offset]
	n := 0
	for len(line) > 0 {
		r, size := utf8.DecodeRune(line)
		line = line[size:]
		if r >= 0x10000 {
			n += 2
		} else {
			n++
		}
	}
	return n
}

// recordErrors notes every ERROR or MISSING node below node.
func (c *ExtractionContext) recordErrors(node *sitter.Node) {
	if node == nil || !node.HasError() {
		return
	}
	if node.IsError() || node.IsMissing() {
		c.File.SyntaxErrors = append(c.File.SyntaxErrors, c.Span(node))
		return
	}
	for i := uint(0); i < node.ChildCount(); i++ {
		c.recordErrors(node.Child(i))
	}
}

// hasToken reports whether node has a direct anonymous child spelled token.
func hasToken(node *sitter.Node, token string) bool {
	if node == nil {
		return false
	}
	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		if child != nil && !child.IsNamed() && child.Kind() == token {
			return true
		}
	}
	return false
}

// namedChildren returns node's named children, skipping comments.
func namedChildren(node *sitter.Node) []*sitter.Node {
	if node == nil {
		return nil
	}
	out := make([]*sitter.Node, 0, node.NamedChildCount())
	for i := uint(0); i < node.NamedChildCount(); i++ {
		child := node.NamedChild(i)
		if child == nil || isTrivia(child) {
			continue
		}
		out = append(out, child)
	}
	return out
}

func firstNamedChild(node *sitter.Node, kinds ...string) *sitter.Node {
	for _, child := range namedChildren(node) {
		if len(kinds) == 0 {
			return child
		}
		for _, kind := range kinds {
			if child.Kind() == kind {
				return child
			}
		}
	}
	return nil
}

func isTrivia(node *sitter.Node) bool {
	switch node.Kind() {
	case "comment", "hash_bang_line", "html_comment":
		return true
	}
	return false
}

func trimQuoted(value string) string {
	value = strings.TrimSpace(value)
	return strings.Trim(value, "\"'`")
}
