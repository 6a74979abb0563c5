package policy

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(line int) Base {
	return Base{Loc: Span{StartLine: line, StartColumn: 1, EndLine: line, EndColumn: 20}}
}

func analyze(t *testing.T, path string, cfg *Config, stmts ...Statement) []Diagnostic {
	t.Helper()
	var c Collector
	require.NoError(t, Analyze(context.Background(), path, stmts, cfg, &c))
	return c.Diagnostics()
}

func TestAnalyze_ExportedTypeAliasIsAllowed(t *testing.T) {
	diags := analyze(t, "api.types.ts", DefaultConfig(),
		&ExportNamedDecl{Base: at(1), ExportKind: KindType, Declaration: &TypeAliasDecl{Base: at(1)}},
	)
	assert.Empty(t, diags)
}

func TestAnalyze_ExportedConstIsBadExport(t *testing.T) {
	diags := analyze(t, "api.types.ts", DefaultConfig(),
		&ExportNamedDecl{Base: at(3), Declaration: &Other{Base: at(3), NodeType: "VariableDeclaration"}},
	)
	require.Len(t, diags, 1)
	d := diags[0]
	assert.Equal(t, BadExport, d.Verdict)
	assert.Equal(t, MessageExportTypes, d.MessageID)
	assert.Equal(t, "Type-only files should only export types, interfaces, or enums.", d.Message)
	assert.Equal(t, "api.types.ts", d.File)
	assert.Equal(t, 3, d.Span.StartLine)
}

func TestAnalyze_BannedEnum(t *testing.T) {
	cfg, err := NewConfig(true, nil)
	require.NoError(t, err)
	diags := analyze(t, "api.types.ts", cfg, &EnumDecl{Base: at(1)})
	require.Len(t, diags, 1)
	assert.Equal(t, MessageNoEnums, diags[0].MessageID)
	assert.Equal(t, "Enums are not allowed by your type-only-files configuration.", diags[0].Message)
}

func TestAnalyze_OutOfScopeFileReportsNothing(t *testing.T) {
	diags := analyze(t, "helpers.ts", DefaultConfig(),
		&Other{NodeType: "VariableDeclaration"},
		&ExportDefaultDecl{},
		&ImportDecl{},
	)
	assert.Empty(t, diags)
}

func TestAnalyze_MixedImportSpecifiers(t *testing.T) {
	diags := analyze(t, "x.types.ts", DefaultConfig(),
		&ImportDecl{Base: at(1), Specifiers: []Kind{KindType, KindValue}, Source: "mod"},
	)
	require.Len(t, diags, 1)
	assert.Equal(t, BadImport, diags[0].Verdict)
	assert.Equal(t, "Type-only files should only use type imports (e.g. `import type { }`).", diags[0].Message)
}

func TestAnalyze_SideEffectImport(t *testing.T) {
	diags := analyze(t, "x.types.ts", DefaultConfig(),
		&ImportDecl{Base: at(1), Source: "sideEffect"},
	)
	require.Len(t, diags, 1)
	assert.Equal(t, BadImport, diags[0].Verdict)
}

func TestAnalyze_OtherStatementMessage(t *testing.T) {
	cfg, err := NewConfig(true, nil)
	require.NoError(t, err)
	diags := analyze(t, "x.types.ts", cfg, &Other{Base: at(2), NodeType: "FunctionDeclaration"})
	require.Len(t, diags, 1)
	assert.Equal(t, "Type-only files should only declare types or interfaces. Found a FunctionDeclaration.", diags[0].Message)
	assert.Equal(t, map[string]string{"allowed": "types or interfaces", "type": "FunctionDeclaration"}, diags[0].Data)
}

func TestAnalyze_EveryStatementJudgedIndependently(t *testing.T) {
	diags := analyze(t, "x.types.ts", DefaultConfig(),
		&Other{Base: at(1), NodeType: "VariableDeclaration"},
		&Other{Base: at(1), NodeType: "ExpressionStatement"},
		&TypeAliasDecl{Base: at(2)},
		&ExportDefaultDecl{Base: at(3)},
	)
	require.Len(t, diags, 3)
	assert.Equal(t, "VariableDeclaration", diags[0].Data["type"])
	assert.Equal(t, "ExpressionStatement", diags[1].Data["type"])
	assert.Equal(t, BadExport, diags[2].Verdict)
}

func TestAnalyze_CancelledContextStopsWalk(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	count := 0
	reporter := ReporterFunc(func(Diagnostic) {
		count++
		cancel()
	})
	err := Analyze(ctx, "x.types.ts", []Statement{
		&Other{NodeType: "A"},
		&Other{NodeType: "B"},
	}, DefaultConfig(), reporter)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, count)
}

func TestAnalyze_NilReporter(t *testing.T) {
	err := Analyze(context.Background(), "x.types.ts", []Statement{&Other{}}, DefaultConfig(), nil)
	assert.NoError(t, err)
}

func TestFormatMessage(t *testing.T) {
	assert.Equal(t, "Type-only files should only export types or interfaces.",
		FormatMessage(MessageExportTypes, map[string]string{"allowed": AllowedPhrase(true)}))
	assert.Equal(t, "Type-only files should only export {allowed}.", FormatMessage(MessageExportTypes, nil))
	assert.Equal(t, "missing", FormatMessage(MessageID("missing"), nil))
	for _, id := range MessageIDs() {
		assert.NotEqual(t, string(id), FormatMessage(id, nil), "template for %s", id)
	}
}
