package policy

import (
	"fmt"
	"strings"
)

// Classify decides the outcome for one top-level statement. It is pure:
// the result depends only on stmt and cfg.
func Classify(stmt Statement, cfg *Config) Outcome {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	switch s := stmt.(type) {
	case *TypeAliasDecl, *InterfaceDecl:
		return Outcome{Verdict: Allowed}
	case *EnumDecl:
		if cfg.banEnums {
			return Outcome{Verdict: BadEnum}
		}
		return Outcome{Verdict: Allowed}
	case *ImportDecl:
		if s.ImportKind == KindType || allType(s.Specifiers) {
			return Outcome{Verdict: Allowed}
		}
		return Outcome{Verdict: BadImport}
	case *ExportAllDecl:
		// export type * cannot tell whether the source module holds enums.
		if s.ExportKind == KindType {
			return Outcome{Verdict: Allowed}
		}
		return Outcome{Verdict: BadExport}
	case *ExportDefaultDecl:
		return Outcome{Verdict: BadExport}
	case *ExportNamedDecl:
		if s.ExportKind == KindType {
			return Outcome{Verdict: Allowed}
		}
		if !cfg.banEnums {
			if _, ok := s.Declaration.(*EnumDecl); ok {
				return Outcome{Verdict: Allowed}
			}
		}
		if allType(s.Specifiers) {
			return Outcome{Verdict: Allowed}
		}
		return Outcome{Verdict: BadExport}
	case *Other:
		return Outcome{Verdict: BadOther, StatementType: StatementType(s)}
	default:
		return Outcome{Verdict: BadOther, StatementType: StatementType(stmt)}
	}
}

// StatementType names the syntactic kind of stmt as shown in messages.
func StatementType(stmt Statement) string {
	switch s := stmt.(type) {
	case nil:
		return "Unknown"
	case *TypeAliasDecl:
		return "TSTypeAliasDeclaration"
	case *InterfaceDecl:
		return "TSInterfaceDeclaration"
	case *EnumDecl:
		return "TSEnumDeclaration"
	case *ImportDecl:
		return "ImportDeclaration"
	case *ExportAllDecl:
		return "ExportAllDeclaration"
	case *ExportDefaultDecl:
		return "ExportDefaultDeclaration"
	case *ExportNamedDecl:
		return "ExportNamedDeclaration"
	case *Other:
		if s.NodeType == "" {
			return "Unknown"
		}
		return s.NodeType
	default:
		name := fmt.Sprintf("%T", stmt)
		if idx := strings.LastIndex(name, "."); idx >= 0 {
			name = name[idx+1:]
		}
		return name
	}
}
