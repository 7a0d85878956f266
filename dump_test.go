package main

import (
	"testing"

	"lox/lexer"
	"lox/parser"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestLeveledProgram(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lox.cli")
	defer teardown()
	//
	tokens, errs := lexer.Scan("", "class B < A { m(x) { return x + 1; } } print B().m(2);")
	if len(errs) != 0 {
		t.Fatalf("lexer errors: %v", errs)
	}
	p := parser.New("", tokens)
	ll := leveledProgram(p.Parse())
	expected := []struct {
		level int
		text  string
	}{
		{0, "class B < A"},
		{1, "fun m(x)"},
		{2, "return"},
		{3, "+"},
		{4, "x"},
		{4, "1"},
		{0, "print"},
		{1, "call"},
		{2, ". m"},
		{3, "call"},
		{4, "B"},
		{2, "2"},
	}
	if len(ll) != len(expected) {
		t.Fatalf("expected %d items, got %d: %v", len(expected), len(ll), ll)
	}
	for i, e := range expected {
		if ll[i].Level != e.level || ll[i].Text != e.text {
			t.Errorf("items[%d]: expected (%d, %q), got (%d, %q)", i, e.level, e.text, ll[i].Level, ll[i].Text)
		}
	}
}

func TestLeveledFailedStatement(t *testing.T) {
	ll := leveledProgram([]parser.Stmt{nil})
	if len(ll) != 1 || ll[0].Text != "<error>" {
		t.Errorf("unexpected list %v", ll)
	}
}
