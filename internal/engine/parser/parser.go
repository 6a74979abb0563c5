package parser

import (
	"fmt"
	"path/filepath"
	"time"

	"typeonly/internal/core/errors"
	"typeonly/internal/shared/observability"
)

type Parser struct {
	loader *GrammarLoader
}

func NewParser(loader *GrammarLoader) *Parser {
	if loader == nil {
		loader = NewGrammarLoader()
	}
	return &Parser{loader: loader}
}

// ParseFile parses content and returns its top-level statements. Syntax
// errors do not fail the parse; they are recorded on the File and the
// offending nodes surface as statements of their own.
func (p *Parser) ParseFile(path string, content []byte) (*File, error) {
	lang := p.GetLanguage(path)
	pool := p.loader.Pool(lang)
	if pool == nil {
		return nil, errors.New(errors.CodeNotSupported, fmt.Sprintf("grammar not loaded: %s", lang))
	}

	start := time.Now()
	defer func() {
		observability.ParsingDuration.WithLabelValues(lang).Observe(time.Since(start).Seconds())
	}()

	sp := pool.Get()
	defer pool.Put(sp)

	tree := sp.Parse(content, nil)
	if tree == nil {
		return nil, errors.AddContext(errors.New(errors.CodeParseError, "parse failed"), errors.CtxPath, path)
	}
	defer tree.Close()

	file := &File{
		Path:     path,
		Language: lang,
		ParsedAt: time.Now(),
	}
	ctx := &ExtractionContext{Source: content, File: file}
	extractStatements(ctx, tree.RootNode())
	return file, nil
}

func (p *Parser) GetLanguage(path string) string {
	return p.loader.LanguageForExtension(filepath.Ext(path))
}

func (p *Parser) SupportedExtensions() []string {
	return p.loader.SupportedExtensions()
}
