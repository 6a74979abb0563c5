package parser

import (
	"sync"
	"testing"
)

func TestParserPool_GetPutTracksLeases(t *testing.T) {
	loader := NewGrammarLoader()
	pool := loader.Pool(LangTypeScript)
	if pool == nil {
		t.Fatal("expected typescript pool")
	}

	a := pool.Get()
	b := pool.Get()
	if got := pool.Leased(); got != 2 {
		t.Fatalf("expected 2 leased parsers, got %d", got)
	}
	pool.Put(a)
	pool.Put(b)
	pool.Put(nil)
	if got := pool.Leased(); got != 0 {
		t.Fatalf("expected 0 leased parsers, got %d", got)
	}
}

func TestParserPool_ConcurrentParse(t *testing.T) {
	loader := NewGrammarLoader()
	pool := loader.Pool(LangTSX)
	src := []byte("export type Props = { id: string }\n")

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			sp := pool.Get()
			defer pool.Put(sp)
			tree := sp.Parse(src, nil)
			if tree == nil {
				t.Error("parse returned nil tree")
				return
			}
			defer tree.Close()
			if tree.RootNode().HasError() {
				t.Error("unexpected syntax error")
			}
		}()
	}
	wg.Wait()
	if got := pool.Leased(); got != 0 {
		t.Fatalf("expected all parsers returned, got %d leased", got)
	}
}
