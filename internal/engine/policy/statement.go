package policy

// Kind distinguishes type-kind from value-kind imports, exports and specifiers.
type Kind int

const (
	KindValue Kind = iota
	KindType
)

func (k Kind) String() string {
	if k == KindType {
		return "type"
	}
	return "value"
}

// Span is a 1-based source range used only for diagnostic placement.
type Span struct {
	StartLine   int
	StartColumn int
	EndLine     int
	EndColumn   int
}

// Statement is one top-level statement of a file. The set of variants is
// closed: every implementation embeds Base.
type Statement interface {
	Location() Span
	isStatement()
}

// Base carries the source position shared by every statement variant.
type Base struct {
	Loc Span
}

func (b Base) Location() Span { return b.Loc }

func (Base) isStatement() {}

type TypeAliasDecl struct {
	Base
}

type InterfaceDecl struct {
	Base
}

type EnumDecl struct {
	Base
}

type ImportDecl struct {
	Base
	ImportKind Kind
	Specifiers []Kind
	Source     string
}

type ExportAllDecl struct {
	Base
	ExportKind Kind
	Source     string
}

type ExportDefaultDecl struct {
	Base
}

// ExportNamedDecl covers both `export <declaration>` and `export { ... }`.
// Declaration is nil for specifier lists.
type ExportNamedDecl struct {
	Base
	ExportKind  Kind
	Declaration Statement
	Specifiers  []Kind
	Source      string
}

// Other is every statement kind the policy does not name. NodeType is the
// syntactic kind reported back to the user.
type Other struct {
	Base
	NodeType string
}

// allType reports whether every specifier is type-kind. An empty list is
// never all-type: a side-effect import or an empty export list names no
// types at all.
func allType(specifiers []Kind) bool {
	if len(specifiers) == 0 {
		return false
	}
	for _, k := range specifiers {
		if k != KindType {
			return false
		}
	}
	return true
}
