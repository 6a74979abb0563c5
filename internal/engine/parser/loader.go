package parser

import (
	"strings"

	"typeonly/internal/shared/util"

	sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_typescript "github.com/tree-sitter/tree-sitter-typescript/bindings/go"
)

// GrammarLoader owns the compiled grammars and one parser pool per grammar.
type GrammarLoader struct {
	languages  map[string]*sitter.Language
	pools      map[string]*ParserPool
	extensions map[string]string
}

func NewGrammarLoader() *GrammarLoader {
	gl := &GrammarLoader{
		languages: map[string]*sitter.Language{
			LangTypeScript: sitter.NewLanguage(tree_sitter_typescript.LanguageTypescript()),
			LangTSX:        sitter.NewLanguage(tree_sitter_typescript.LanguageTSX()),
		},
		pools: make(map[string]*ParserPool),
		extensions: map[string]string{
			".ts":  LangTypeScript,
			".mts": LangTypeScript,
			".cts": LangTypeScript,
			".tsx": LangTSX,
		},
	}
	for _, lang := range util.SortedStringKeys(gl.languages) {
		gl.pools[lang] = NewParserPool(gl.languages[lang])
	}
	return gl
}

func (gl *GrammarLoader) Pool(lang string) *ParserPool {
	return gl.pools[lang]
}

// LanguageForExtension maps a lower-cased extension to a grammar. Unknown
// extensions fall back to TypeScript, the widest grammar available.
func (gl *GrammarLoader) LanguageForExtension(ext string) string {
	if lang, ok := gl.extensions[strings.ToLower(ext)]; ok {
		return lang
	}
	return LangTypeScript
}

func (gl *GrammarLoader) SupportedExtensions() []string {
	return util.SortedStringKeys(gl.extensions)
}
