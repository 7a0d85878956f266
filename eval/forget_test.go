package eval

import (
	"bytes"
	"testing"

	"lox/lexer"

	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestTopLevelLocalsAreForgotten(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lox.eval")
	defer teardown()
	//
	var out bytes.Buffer
	s := NewSession("", &out, func(err error) { t.Errorf("unexpected error %v", err) })
	s.Run("{ var a = 1; while (a < 3) { a = a + 1; } print a; }")
	if n := len(s.interp.locals); n != 0 {
		t.Errorf("expected no resolved nodes after a block, got %d", n)
	}
	s.Run("fun makeCounter() { var i = 0; fun count() { i = i + 1; return i; } return count; }")
	kept := len(s.interp.locals)
	if kept == 0 {
		t.Fatalf("expected function bodies to keep their resolved nodes")
	}
	s.Run("{ var c = makeCounter(); c(); print c(); }")
	if n := len(s.interp.locals); n != kept {
		t.Errorf("expected %d resolved nodes, got %d", kept, n)
	}
	s.Run("var c = makeCounter(); print c();")
	if got := out.String(); got != "3\n2\n1\n" {
		t.Errorf("unexpected output %q", got)
	}
}

func TestForgetAfterRuntimeError(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lox.eval")
	defer teardown()
	//
	var out bytes.Buffer
	var errs []error
	s := NewSession("", &out, func(err error) { errs = append(errs, err) })
	s.Run("{ var a = 1; print a + nil; }")
	if len(errs) != 1 {
		t.Fatalf("expected one runtime error, got %v", errs)
	}
	if n := len(s.interp.locals); n != 0 {
		t.Errorf("expected no resolved nodes, got %d", n)
	}
}

func TestProgramFingerprintOnlyWhenDebugging(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lox.eval")
	defer teardown()
	//
	s := NewSession("", &bytes.Buffer{}, func(error) {})
	tokens, _ := lexer.Scan("", "print 1;")
	tracer().SetTraceLevel(tracing.LevelInfo)
	if s.traceProgram(tokens, nil) {
		t.Errorf("expected no fingerprint at level Info")
	}
	tracer().SetTraceLevel(tracing.LevelDebug)
	if !s.traceProgram(tokens, nil) {
		t.Errorf("expected a fingerprint at level Debug")
	}
}
