package lexer_test

import (
	"reflect"
	"testing"

	"lox/lexer"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestSingleTokens(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lox.lexer")
	defer teardown()
	//
	tests := []struct {
		input string
		typ   lexer.TokenType
	}{
		{"(", lexer.LEFT_PAREN},
		{")", lexer.RIGHT_PAREN},
		{"{", lexer.LEFT_BRACE},
		{"}", lexer.RIGHT_BRACE},
		{",", lexer.COMMA},
		{".", lexer.DOT},
		{"-", lexer.MINUS},
		{"+", lexer.PLUS},
		{";", lexer.SEMICOLON},
		{"/", lexer.SLASH},
		{"*", lexer.STAR},
		{"!", lexer.BANG},
		{"!=", lexer.BANG_EQUAL},
		{"=", lexer.EQUAL},
		{"==", lexer.EQUAL_EQUAL},
		{">", lexer.GREATER},
		{">=", lexer.GREATER_EQUAL},
		{"<", lexer.LESS},
		{"<=", lexer.LESS_EQUAL},
		{"myVar", lexer.IDENTIFIER},
		{"_myVar", lexer.IDENTIFIER},
		{"my_Var", lexer.IDENTIFIER},
		{"myVar_1", lexer.IDENTIFIER},
		{"_", lexer.IDENTIFIER},
		{"Class", lexer.IDENTIFIER},
		{"123", lexer.NUMBER},
		{"123.123", lexer.NUMBER},
		{"and", lexer.AND},
		{"class", lexer.CLASS},
		{"else", lexer.ELSE},
		{"false", lexer.FALSE},
		{"fun", lexer.FUN},
		{"for", lexer.FOR},
		{"if", lexer.IF},
		{"nil", lexer.NIL},
		{"or", lexer.OR},
		{"print", lexer.PRINT},
		{"return", lexer.RETURN},
		{"super", lexer.SUPER},
		{"this", lexer.THIS},
		{"true", lexer.TRUE},
		{"var", lexer.VAR},
		{"while", lexer.WHILE},
	}
	for i, test := range tests {
		tokens, errs := lexer.Scan("<test>", test.input)
		if len(errs) != 0 {
			t.Errorf("tests[%d] (%q): unexpected errors %v", i, test.input, errs)
			continue
		}
		if len(tokens) != 2 {
			t.Errorf("tests[%d] (%q): expected one token plus EOF, got %v", i, test.input, tokens)
			continue
		}
		if tokens[0].Type != test.typ {
			t.Errorf("tests[%d] (%q): expected type=%s, got=%s", i, test.input, test.typ, tokens[0].Type)
		}
		if tokens[0].Lexeme != test.input {
			t.Errorf("tests[%d] (%q): expected lexeme=%q, got=%q", i, test.input, test.input, tokens[0].Lexeme)
		}
		if tokens[1].Type != lexer.EOF {
			t.Errorf("tests[%d] (%q): expected EOF, got=%s", i, test.input, tokens[1].Type)
		}
	}
}

func TestLiterals(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lox.lexer")
	defer teardown()
	//
	tests := []struct {
		input   string
		lexeme  string
		literal interface{}
	}{
		{`"abc"`, `"abc"`, "abc"},
		{`""`, `""`, ""},
		{`"oh boy 1.2.3.4"`, `"oh boy 1.2.3.4"`, "oh boy 1.2.3.4"},
		{"42", "42", 42.0},
		{"3.25", "3.25", 3.25},
	}
	for i, test := range tests {
		tokens, errs := lexer.Scan("<test>", test.input)
		if len(errs) != 0 || len(tokens) != 2 {
			t.Errorf("tests[%d] (%q): got tokens=%v errors=%v", i, test.input, tokens, errs)
			continue
		}
		if tokens[0].Lexeme != test.lexeme {
			t.Errorf("tests[%d]: expected lexeme=%q, got=%q", i, test.lexeme, tokens[0].Lexeme)
		}
		if tokens[0].Literal != test.literal {
			t.Errorf("tests[%d]: expected literal=%#v, got=%#v", i, test.literal, tokens[0].Literal)
		}
	}
}

func TestLexerSequence(t *testing.T) {
	input := `var a = 1.5; // a comment
print a >= 2 and !nil;
123.foo`
	tokens, errs := lexer.Scan("<test>", input)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	expected := []lexer.TokenType{
		lexer.VAR, lexer.IDENTIFIER, lexer.EQUAL, lexer.NUMBER, lexer.SEMICOLON,
		lexer.PRINT, lexer.IDENTIFIER, lexer.GREATER_EQUAL, lexer.NUMBER, lexer.AND,
		lexer.BANG, lexer.NIL, lexer.SEMICOLON,
		lexer.NUMBER, lexer.DOT, lexer.IDENTIFIER,
		lexer.EOF,
	}
	if len(tokens) != len(expected) {
		t.Fatalf("expected %d tokens, got %d: %v", len(expected), len(tokens), tokens)
	}
	for i, typ := range expected {
		if tokens[i].Type != typ {
			t.Errorf("tokens[%d]: expected=%s, got=%s", i, typ, tokens[i].Type)
		}
	}
	if tokens[5].Line != 2 || tokens[13].Line != 3 {
		t.Errorf("wrong line numbers: %d, %d", tokens[5].Line, tokens[13].Line)
	}
}

func TestMultilineString(t *testing.T) {
	tokens, errs := lexer.Scan("<test>", "\"one\ntwo\" x")
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if tokens[0].Literal != "one\ntwo" || tokens[0].Line != 1 {
		t.Errorf("unexpected string token %v at line %d", tokens[0], tokens[0].Line)
	}
	if tokens[1].Line != 2 {
		t.Errorf("expected identifier on line 2, got %d", tokens[1].Line)
	}
}

func TestLexerBad(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lox.lexer")
	defer teardown()
	//
	tests := []struct {
		input  string
		errors int
		types  []lexer.TokenType
	}{
		{"\"abc", 1, []lexer.TokenType{lexer.EOF}},
		{"a @ b", 1, []lexer.TokenType{lexer.IDENTIFIER, lexer.IDENTIFIER, lexer.EOF}},
		{"# $ ;", 2, []lexer.TokenType{lexer.SEMICOLON, lexer.EOF}},
		{"a | b & c", 2, []lexer.TokenType{lexer.IDENTIFIER, lexer.IDENTIFIER, lexer.IDENTIFIER, lexer.EOF}},
		{"x \xc3\x28 y", 1, []lexer.TokenType{lexer.IDENTIFIER, lexer.LEFT_PAREN, lexer.IDENTIFIER, lexer.EOF}},
	}
	for i, test := range tests {
		tokens, errs := lexer.Scan("<test>", test.input)
		if len(errs) != test.errors {
			t.Errorf("tests[%d] (%q): expected %d errors, got %v", i, test.input, test.errors, errs)
		}
		types := []lexer.TokenType{}
		for _, tok := range tokens {
			types = append(types, tok.Type)
		}
		if !reflect.DeepEqual(types, test.types) {
			t.Errorf("tests[%d] (%q): expected=%v, got=%v", i, test.input, test.types, types)
		}
		for _, x := range errs {
			t.Logf("%s", x.String())
		}
	}
}

func TestErrorFormat(t *testing.T) {
	_, errs := lexer.Scan("<test>", "\n\n@")
	if len(errs) != 1 {
		t.Fatalf("expected one error, got %v", errs)
	}
	if got := errs[0].Error(); got != "[line 3] Error: Unexpected character." {
		t.Errorf("unexpected message %q", got)
	}
}

func TestScanIsRepeatable(t *testing.T) {
	src := "class A < B { init(x) { this.x = x; } }"
	a, _ := lexer.Scan("", src)
	b, _ := lexer.Scan("", src)
	if !reflect.DeepEqual(a, b) {
		t.Errorf("scanning twice gave different tokens:\n%v\n%v", a, b)
	}
}
