package parser_test

import (
	"testing"

	"lox/lexer"
	"lox/parser"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestParserValid(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lox.parser")
	defer teardown()
	//
	tests := []struct {
		input    string
		expected string
	}{
		{"abcdef = 2;", "(; (= abcdef 2))"},
		{"a + b + c;", "(; (+ (+ a b) c))"},
		{"1 + 2 * 3;", "(; (+ 1 (* 2 3)))"},
		{"a + b * c;", "(; (+ a (* b c)))"},
		{"a + b >= c == true;", "(; (== (>= (+ a b) c) true))"},
		{"a + !b or x;", "(; (or (+ a (! b)) x))"},
		{"a and b or c;", "(; (or (and a b) c))"},
		{"a or b and c;", "(; (or a (and b c)))"},
		{"a + -b * c / d;", "(; (+ a (/ (* (- b) c) d)))"},
		{"a / (c - f) / d + e;", "(; (+ (/ (/ a (group (- c f))) d) e))"},
		{"a = b = c;", "(; (= a (= b c)))"},
		{"!!a;", "(; (! (! a)))"},
		{"-a.b(1, 2);", "(; (- (call (. a b) 1 2)))"},
		{"a.b.c = 1;", "(; (= (. (. a b) c) 1))"},
		{"f()(x)();", "(; (call (call (call f) x)))"},
		{`print "hi";`, `(print "hi")`},
		{"var x;", "(var x)"},
		{"var x = nil;", "(var x nil)"},
		{"{ var x = 1; print x; }", "(block (var x 1) (print x))"},
		{"if (a) print 1; else print 2;", "(if a (print 1) (print 2))"},
		{"if (a) if (b) x; else y;", "(if a (if b (; x) (; y)))"},
		{"while (true) x = x - 1;", "(while true (; (= x (- x 1))))"},
		{"for (;;) x;", "(while true (; x))"},
		{"for (var i = 0; i < 3; i = i + 1) print i;",
			"(block (var i 0) (while (< i 3) (block (print i) (; (= i (+ i 1))))))"},
		{"for (i = 0; i < 3;) print i;", "(block (; (= i 0)) (while (< i 3) (print i)))"},
		{"fun f(a, b) { return a + b; }", "(fun f(a b) (return (+ a b)))"},
		{"fun f() { return; }", "(fun f() (return))"},
		{"class A { init(x) { this.x = x; } }", "(class A (fun init(x) (; (= (. this x) x))))"},
		{"class B < A { m() { return super.m(); } }", "(class B < A (fun m() (return (call (super m)))))"},
		{"print 1.5 + 10;", "(print (+ 1.5 10))"},
	}
	for i, test := range tests {
		tokens := scan(t, test.input)
		if tokens == nil {
			t.Errorf("tests[%d] (%q) failed", i, test.input)
			continue
		}
		p := parser.New("", tokens)
		stmts := p.Parse()
		if len(p.Errors) != 0 {
			t.Errorf("tests[%d] (%q)", i, test.input)
			t.Error("parser errors:")
			for _, err := range p.Errors {
				t.Error(err.String())
			}
			continue
		}
		if got := parser.Program(stmts); got != test.expected {
			t.Errorf("tests[%d] (%q)", i, test.input)
			t.Errorf("expected=%q, got=%q", test.expected, got)
			continue
		}
	}
}

func TestParserInvalid(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lox.parser")
	defer teardown()
	//
	tests := []struct {
		input   string
		numErrs int
		stmts   int // statements parsed, including failed ones
	}{
		{"1 = 2; x;", 1, 2},        // reported, but the statement survives
		{"a + b = c;", 1, 1},       // not a variable or property
		{"print 1 print 2;", 1, 1}, // synchronize skips to the ';'
		{"var; print 1;", 1, 2},    // synchronize stops before 'print'
		{"(1 + 2;", 1, 1},          // unclosed paren
		{"fun (a) {}", 1, 1},       // missing name
		{"x.1;", 1, 1},             // property name must be an identifier
		{"super;", 1, 1},           // super without method
		{"print;", 1, 1},           // missing expression
		{"{ var a = 1;", 1, 1},     // unclosed block
		{"class A < {}", 1, 1},     // missing superclass name
		{"if x) print 1; var y = ; print 3;", 2, 4},
	}
	for i, test := range tests {
		tokens := scan(t, test.input)
		if tokens == nil {
			t.Errorf("tests[%d] (%q) failed", i, test.input)
			continue
		}
		p := parser.New("", tokens)
		stmts := p.Parse()
		if len(p.Errors) != test.numErrs {
			t.Errorf("tests[%d] (%q)", i, test.input)
			t.Errorf("expected=%d errors, got=%d", test.numErrs, len(p.Errors))
			t.Errorf("%+v\n", p.Errors)
		}
		if len(stmts) != test.stmts {
			t.Errorf("tests[%d] (%q): expected %d statements, got %d", i, test.input, test.stmts, len(stmts))
		}
	}
}

func TestErrorLocation(t *testing.T) {
	p := parser.New("", scan(t, "var x = 1"))
	p.Parse()
	if len(p.Errors) != 1 {
		t.Fatalf("expected one error, got %v", p.Errors)
	}
	if got := p.Errors[0].Error(); got != "[line 1] Error at end: Expect ';' after variable declaration." {
		t.Errorf("unexpected message %q", got)
	}
	p = parser.New("", scan(t, "\n1 = 2;"))
	p.Parse()
	if got := p.Errors[0].Error(); got != "[line 2] Error at '=': Invalid assignment target." {
		t.Errorf("unexpected message %q", got)
	}
}

func TestFailedStatementIsNil(t *testing.T) {
	p := parser.New("", scan(t, "print 1; var = 2; print 3;"))
	stmts := p.Parse()
	if len(stmts) != 3 || stmts[1] != nil || stmts[0] == nil || stmts[2] == nil {
		t.Errorf("expected the middle statement to be dropped, got %v", stmts)
	}
}

func TestTooManyArguments(t *testing.T) {
	const maxArgs = 255
	src := "f(0"
	for i := 1; i <= maxArgs; i++ { // one more than allowed
		src += ", 0"
	}
	src += ");"
	p := parser.New("", scan(t, src))
	stmts := p.Parse()
	if len(p.Errors) != 1 {
		t.Fatalf("expected one error, got %d", len(p.Errors))
	}
	if stmts[0] == nil {
		t.Errorf("call should still be parsed")
	}
}

func TestFingerprintIsStable(t *testing.T) {
	src := `class A { m() { return 1; } } var a = A(); print a.m() + 2 * 3;`
	tokA, tokB := scan(t, src), scan(t, src)
	fpA, err := parser.Fingerprint(tokA, parser.New("", tokA).Parse())
	if err != nil {
		t.Fatal(err)
	}
	fpB, err := parser.Fingerprint(tokB, parser.New("", tokB).Parse())
	if err != nil {
		t.Fatal(err)
	}
	if fpA != fpB {
		t.Errorf("fingerprints differ: %s vs %s", fpA, fpB)
	}
	tokC := scan(t, `print 1 + 2 * 3;`)
	fpC, _ := parser.Fingerprint(tokC, parser.New("", tokC).Parse())
	if fpC == fpA {
		t.Errorf("different programs must not share a fingerprint")
	}
}

func scan(t *testing.T, input string) []lexer.Token {
	l := lexer.New("", input)
	l.ScanTokens()
	if len(l.Errors) != 0 {
		t.Error("lexer errors:")
		for _, err := range l.Errors {
			t.Error(err.String())
		}
		return nil
	}
	return l.Tokens
}
