package parser

import (
	"strings"
	"unicode"

	"typeonly/internal/engine/policy"

	sitter "github.com/tree-sitter/go-tree-sitter"
)

// estreeNames maps tree-sitter node kinds to the node type names that
// TypeScript tooling reports, so messages read "Found a VariableDeclaration".
var estreeNames = map[string]string{
	"lexical_declaration":            "VariableDeclaration",
	"variable_declaration":           "VariableDeclaration",
	"function_declaration":           "FunctionDeclaration",
	"generator_function_declaration": "FunctionDeclaration",
	"function_signature":             "TSDeclareFunction",
	"class_declaration":              "ClassDeclaration",
	"abstract_class_declaration":     "ClassDeclaration",
	"expression_statement":           "ExpressionStatement",
	"module":                         "TSModuleDeclaration",
	"internal_module":                "TSModuleDeclaration",
	"import_alias":                   "TSImportEqualsDeclaration",
	"statement_block":                "BlockStatement",
	"if_statement":                   "IfStatement",
	"for_statement":                  "ForStatement",
	"for_in_statement":               "ForInStatement",
	"while_statement":                "WhileStatement",
	"do_statement":                   "DoWhileStatement",
	"try_statement":                  "TryStatement",
	"switch_statement":               "SwitchStatement",
	"throw_statement":                "ThrowStatement",
	"return_statement":               "ReturnStatement",
	"break_statement":                "BreakStatement",
	"continue_statement":             "ContinueStatement",
	"debugger_statement":             "DebuggerStatement",
	"labeled_statement":              "LabeledStatement",
	"with_statement":                 "WithStatement",
	"empty_statement":                "EmptyStatement",
	"type_alias_declaration":         "TSTypeAliasDeclaration",
	"interface_declaration":          "TSInterfaceDeclaration",
	"enum_declaration":               "TSEnumDeclaration",
	"ERROR":                          "InvalidSyntax",
}

// extractStatements maps the children of the program node. Nested
// statement lists are never visited.
func extractStatements(ctx *ExtractionContext, root *sitter.Node) {
	if root == nil {
		return
	}
	ctx.recordErrors(root)
	for _, node := range namedChildren(root) {
		ctx.File.Statements = append(ctx.File.Statements, mapStatement(ctx, node))
	}
}

func mapStatement(ctx *ExtractionContext, node *sitter.Node) policy.Statement {
	base := policy.Base{Loc: ctx.Span(node)}
	switch node.Kind() {
	case "type_alias_declaration":
		return &policy.TypeAliasDecl{Base: base}
	case "interface_declaration":
		return &policy.InterfaceDecl{Base: base}
	case "enum_declaration":
		return &policy.EnumDecl{Base: base}
	case "ambient_declaration":
		return mapAmbient(node, base)
	case "import_statement":
		return mapImport(ctx, node, base)
	case "export_statement":
		return mapExport(ctx, node, base)
	case "expression_statement":
		if firstNamedChild(node, "internal_module") != nil {
			return &policy.Other{Base: base, NodeType: "TSModuleDeclaration"}
		}
	}
	return &policy.Other{Base: base, NodeType: nodeTypeName(node.Kind())}
}

// mapAmbient unwraps `declare type|interface|enum`; every other ambient
// form is a value-level declaration.
func mapAmbient(node *sitter.Node, base policy.Base) policy.Statement {
	inner := firstNamedChild(node)
	if inner == nil {
		// declare global { ... }
		return &policy.Other{Base: base, NodeType: "TSModuleDeclaration"}
	}
	switch inner.Kind() {
	case "type_alias_declaration":
		return &policy.TypeAliasDecl{Base: base}
	case "interface_declaration":
		return &policy.InterfaceDecl{Base: base}
	case "enum_declaration":
		return &policy.EnumDecl{Base: base}
	case "statement_block":
		return &policy.Other{Base: base, NodeType: "TSModuleDeclaration"}
	}
	return &policy.Other{Base: base, NodeType: nodeTypeName(inner.Kind())}
}

func mapImport(ctx *ExtractionContext, node *sitter.Node, base policy.Base) policy.Statement {
	stmt := &policy.ImportDecl{Base: base, ImportKind: policy.KindValue}
	if hasToken(node, "type") {
		stmt.ImportKind = policy.KindType
	}
	for _, child := range namedChildren(node) {
		switch child.Kind() {
		case "import_require_clause":
			return &policy.Other{Base: base, NodeType: "TSImportEqualsDeclaration"}
		case "import_clause":
			stmt.Specifiers = importSpecifiers(child)
		}
	}
	stmt.Source = trimQuoted(ctx.Text(node.ChildByFieldName("source")))
	return stmt
}

// importSpecifiers lists the kind of every binding in an import clause.
// Default and namespace bindings cannot carry a type marker of their own.
func importSpecifiers(clause *sitter.Node) []policy.Kind {
	var kinds []policy.Kind
	for _, child := range namedChildren(clause) {
		switch child.Kind() {
		case "identifier", "namespace_import":
			kinds = append(kinds, policy.KindValue)
		case "named_imports":
			kinds = append(kinds, specifierKinds(child, "import_specifier")...)
		}
	}
	return kinds
}

func specifierKinds(list *sitter.Node, kind string) []policy.Kind {
	var kinds []policy.Kind
	for _, spec := range namedChildren(list) {
		if spec.Kind() != kind {
			continue
		}
		if hasToken(spec, "type") {
			kinds = append(kinds, policy.KindType)
		} else {
			kinds = append(kinds, policy.KindValue)
		}
	}
	return kinds
}

func mapExport(ctx *ExtractionContext, node *sitter.Node, base policy.Base) policy.Statement {
	source := trimQuoted(ctx.Text(node.ChildByFieldName("source")))
	kind := policy.KindValue
	if hasToken(node, "type") {
		kind = policy.KindType
	}

	switch {
	case hasToken(node, "default"):
		return &policy.ExportDefaultDecl{Base: base}
	case hasToken(node, "="):
		return &policy.Other{Base: base, NodeType: "TSExportAssignment"}
	case hasToken(node, "namespace") && hasToken(node, "as"):
		return &policy.Other{Base: base, NodeType: "TSNamespaceExportDeclaration"}
	case hasToken(node, "*") || firstNamedChild(node, "namespace_export") != nil:
		if recoveredToken(ctx, node, "type") {
			kind = policy.KindType
		}
		return &policy.ExportAllDecl{Base: base, ExportKind: kind, Source: source}
	}

	if decl := node.ChildByFieldName("declaration"); decl != nil {
		return mapExportedDeclaration(ctx, decl, base)
	}

	stmt := &policy.ExportNamedDecl{Base: base, ExportKind: kind, Source: source}
	if clause := firstNamedChild(node, "export_clause"); clause != nil {
		stmt.Specifiers = specifierKinds(clause, "export_specifier")
	}
	return stmt
}

// recoveredToken reports whether node has an ERROR child spelling token.
// tree-sitter-typescript 0.23 has no rule for `export type *` and wraps the
// `type` keyword in an ERROR node.
func recoveredToken(ctx *ExtractionContext, node *sitter.Node, token string) bool {
	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		if child != nil && child.IsError() && strings.TrimSpace(ctx.Text(child)) == token {
			return true
		}
	}
	return false
}

// mapExportedDeclaration follows the TypeScript AST: exported type aliases
// and interfaces are type-kind exports, everything else is value-kind.
func mapExportedDeclaration(ctx *ExtractionContext, decl *sitter.Node, base policy.Base) policy.Statement {
	inner := mapStatement(ctx, decl)
	if other, ok := inner.(*policy.Other); ok && other.NodeType == "TSImportEqualsDeclaration" {
		return &policy.Other{Base: base, NodeType: other.NodeType}
	}
	kind := policy.KindValue
	switch inner.(type) {
	case *policy.TypeAliasDecl, *policy.InterfaceDecl:
		kind = policy.KindType
	}
	return &policy.ExportNamedDecl{Base: base, ExportKind: kind, Declaration: inner}
}

func nodeTypeName(kind string) string {
	if name, ok := estreeNames[kind]; ok {
		return name
	}
	return pascalCase(kind)
}

func pascalCase(kind string) string {
	var b strings.Builder
	for _, part := range strings.Split(kind, "_") {
		if part == "" {
			continue
		}
		runes := []rune(part)
		runes[0] = unicode.ToUpper(runes[0])
		b.WriteString(string(runes))
	}
	if b.Len() == 0 {
		return "Unknown"
	}
	return b.String()
}
