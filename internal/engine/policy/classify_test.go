package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func bannedEnums(t *testing.T) *Config {
	t.Helper()
	cfg, err := NewConfig(true, nil)
	if err != nil {
		t.Fatal(err)
	}
	return cfg
}

func TestClassify_DecisionTable(t *testing.T) {
	def := DefaultConfig()
	banned := bannedEnums(t)

	tests := []struct {
		name   string
		stmt   Statement
		cfg    *Config
		want   Verdict
		wantTy string
	}{
		{name: "type alias", stmt: &TypeAliasDecl{}, cfg: def, want: Allowed},
		{name: "type alias with enums banned", stmt: &TypeAliasDecl{}, cfg: banned, want: Allowed},
		{name: "interface", stmt: &InterfaceDecl{}, cfg: def, want: Allowed},
		{name: "interface with enums banned", stmt: &InterfaceDecl{}, cfg: banned, want: Allowed},
		{name: "enum", stmt: &EnumDecl{}, cfg: def, want: Allowed},
		{name: "enum banned", stmt: &EnumDecl{}, cfg: banned, want: BadEnum},

		{name: "import type", stmt: &ImportDecl{ImportKind: KindType, Specifiers: []Kind{KindValue}}, cfg: def, want: Allowed},
		{name: "import type without specifiers", stmt: &ImportDecl{ImportKind: KindType}, cfg: def, want: Allowed},
		{name: "side effect import", stmt: &ImportDecl{ImportKind: KindValue}, cfg: def, want: BadImport},
		{name: "all type specifiers", stmt: &ImportDecl{Specifiers: []Kind{KindType, KindType}}, cfg: def, want: Allowed},
		{name: "mixed specifiers", stmt: &ImportDecl{Specifiers: []Kind{KindType, KindValue}}, cfg: def, want: BadImport},
		{name: "value specifier", stmt: &ImportDecl{Specifiers: []Kind{KindValue}}, cfg: def, want: BadImport},

		{name: "export type star", stmt: &ExportAllDecl{ExportKind: KindType}, cfg: def, want: Allowed},
		{name: "export star", stmt: &ExportAllDecl{ExportKind: KindValue}, cfg: def, want: BadExport},

		{name: "export default", stmt: &ExportDefaultDecl{}, cfg: def, want: BadExport},
		{name: "export default with enums banned", stmt: &ExportDefaultDecl{}, cfg: banned, want: BadExport},

		{name: "export type alias", stmt: &ExportNamedDecl{ExportKind: KindType, Declaration: &TypeAliasDecl{}}, cfg: def, want: Allowed},
		{name: "export type list", stmt: &ExportNamedDecl{ExportKind: KindType, Specifiers: []Kind{KindValue}}, cfg: def, want: Allowed},
		{name: "export enum", stmt: &ExportNamedDecl{Declaration: &EnumDecl{}}, cfg: def, want: Allowed},
		{name: "export enum banned", stmt: &ExportNamedDecl{Declaration: &EnumDecl{}}, cfg: banned, want: BadExport},
		{name: "export const", stmt: &ExportNamedDecl{Declaration: &Other{NodeType: "VariableDeclaration"}}, cfg: def, want: BadExport},
		{name: "export all type specifiers", stmt: &ExportNamedDecl{Specifiers: []Kind{KindType, KindType}}, cfg: def, want: Allowed},
		{name: "export mixed specifiers", stmt: &ExportNamedDecl{Specifiers: []Kind{KindType, KindValue}}, cfg: def, want: BadExport},
		{name: "export empty list", stmt: &ExportNamedDecl{}, cfg: def, want: BadExport},
		{name: "export identifier naming an enum", stmt: &ExportNamedDecl{Specifiers: []Kind{KindValue}}, cfg: def, want: BadExport},

		{name: "variable", stmt: &Other{NodeType: "VariableDeclaration"}, cfg: def, want: BadOther, wantTy: "VariableDeclaration"},
		{name: "unnamed other", stmt: &Other{}, cfg: def, want: BadOther, wantTy: "Unknown"},
		{name: "nil statement", stmt: nil, cfg: def, want: BadOther, wantTy: "Unknown"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Classify(tc.stmt, tc.cfg)
			assert.Equal(t, tc.want, got.Verdict)
			if tc.want == BadOther {
				assert.Equal(t, tc.wantTy, got.StatementType)
			} else {
				assert.Empty(t, got.StatementType)
			}
		})
	}
}

type decoratorStatement struct {
	Base
}

func TestClassify_UnlistedVariantFailsClosed(t *testing.T) {
	got := Classify(&decoratorStatement{}, DefaultConfig())
	assert.Equal(t, BadOther, got.Verdict)
	assert.Equal(t, "decoratorStatement", got.StatementType)
}

func TestClassify_NilConfigUsesDefaults(t *testing.T) {
	assert.Equal(t, Allowed, Classify(&EnumDecl{}, nil).Verdict)
}

func TestClassify_Idempotent(t *testing.T) {
	cfg := bannedEnums(t)
	stmts := []Statement{
		&ImportDecl{Specifiers: []Kind{KindType, KindValue}},
		&ExportNamedDecl{Declaration: &EnumDecl{}},
		&EnumDecl{},
		&Other{NodeType: "ExpressionStatement"},
	}
	for _, stmt := range stmts {
		first := Classify(stmt, cfg)
		second := Classify(stmt, cfg)
		assert.Equal(t, first, second)
	}
}

func TestClassify_SpecifierSliceNotMutated(t *testing.T) {
	specs := []Kind{KindType, KindValue}
	Classify(&ImportDecl{Specifiers: specs}, DefaultConfig())
	assert.Equal(t, []Kind{KindType, KindValue}, specs)
}

func TestOutcome_MessageID(t *testing.T) {
	assert.Equal(t, MessageID(""), Outcome{Verdict: Allowed}.MessageID())
	assert.Equal(t, MessageImportTypes, Outcome{Verdict: BadImport}.MessageID())
	assert.Equal(t, MessageExportTypes, Outcome{Verdict: BadExport}.MessageID())
	assert.Equal(t, MessageNoEnums, Outcome{Verdict: BadEnum}.MessageID())
	assert.Equal(t, MessageNoNonTypes, Outcome{Verdict: BadOther}.MessageID())
}

func TestStatementType(t *testing.T) {
	assert.Equal(t, "ImportDeclaration", StatementType(&ImportDecl{}))
	assert.Equal(t, "ExportNamedDeclaration", StatementType(&ExportNamedDecl{}))
	assert.Equal(t, "ClassDeclaration", StatementType(&Other{NodeType: "ClassDeclaration"}))
}
