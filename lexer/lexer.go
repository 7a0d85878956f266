package lexer

import (
	"fmt"
	"strconv"
	"unicode/utf8"

	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'lox.lexer'
func tracer() tracing.Trace {
	return tracing.Select("lox.lexer")
}

//go:generate stringer -type=TokenType

type TokenType uint8

const (
	_ = TokenType(iota)
	// single-character tokens
	LEFT_PAREN
	RIGHT_PAREN
	LEFT_BRACE
	RIGHT_BRACE
	COMMA
	DOT
	MINUS
	PLUS
	SEMICOLON
	SLASH
	STAR
	// one or two-character tokens
	BANG
	BANG_EQUAL
	EQUAL
	EQUAL_EQUAL
	GREATER
	GREATER_EQUAL
	LESS
	LESS_EQUAL
	// literals
	IDENTIFIER
	STRING
	NUMBER
	// keywords
	AND
	CLASS
	ELSE
	FALSE
	FUN
	FOR
	IF
	NIL
	OR
	PRINT
	RETURN
	SUPER
	THIS
	TRUE
	VAR
	WHILE
	// meta
	EOF
)

var keywords = map[string]TokenType{
	"and":    AND,
	"class":  CLASS,
	"else":   ELSE,
	"false":  FALSE,
	"fun":    FUN,
	"for":    FOR,
	"if":     IF,
	"nil":    NIL,
	"or":     OR,
	"print":  PRINT,
	"return": RETURN,
	"super":  SUPER,
	"this":   THIS,
	"true":   TRUE,
	"var":    VAR,
	"while":  WHILE,
}

type Token struct {
	Type    TokenType
	Lexeme  string      // exact source text, quotes included for strings.
	Literal interface{} // float64 for NUMBER, string for STRING, nil otherwise
	Line    int
	Column  int
}

func (t Token) String() string {
	if t.Literal != nil {
		return fmt.Sprintf("%s %s %v", t.Type, t.Lexeme, t.Literal)
	}
	return fmt.Sprintf("%s %s", t.Type, t.Lexeme)
}

// Error is a lexical error. Scanning continues after one is recorded.
type Error struct {
	Filename string
	Line     int
	Column   int
	Message  string
}

func (e *Error) Error() string { return e.String() }
func (e *Error) String() string {
	return fmt.Sprintf("[line %d] Error: %s", e.Line, e.Message)
}

type Lexer struct {
	Filename string  // filename
	source   string  // the complete source code
	Tokens   []Token // list of tokens produced
	Errors   []Error // list of lexer errors
	current  int     // where are we in the input?
	line     int     // line and column positions
	column   int     // NB: column position is in terms of runes
	start    int     // the first char of the lexeme being scanned
	startLn  int     // starting line number
	startCol int     // starting col number
}

func New(filename string, source string) *Lexer {
	return &Lexer{
		Filename: filename,
		source:   source,
		Tokens:   []Token{},
		line:     1,
		column:   1,
		startLn:  1,
		startCol: 1,
	}
}

// Scan is a shortcut for scanning a complete source text.
func Scan(filename string, source string) ([]Token, []Error) {
	l := New(filename, source)
	l.ScanTokens()
	return l.Tokens, l.Errors
}

// utils

// isAtEnd lets us know if we've reached the end of the input.
func (l *Lexer) isAtEnd() bool { return l.current >= len(l.source) }

// advance consumes one rune and returns the consumed rune.
// current is incremented by the width of the returned rune.
func (l *Lexer) advance() rune {
	r, w := utf8.DecodeRuneInString(l.source[l.current:])
	if r == utf8.RuneError && w <= 1 {
		l.error("Invalid UTF-8 input at byte %d.", l.current)
		w = 1
	}
	l.current += w
	if r == '\n' {
		l.line++
		l.column = 1
	} else {
		l.column++
	}
	return r
}

// peek is the same as advance, but does not advance .current.
func (l *Lexer) peek() rune {
	if l.isAtEnd() {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.source[l.current:])
	return r
}

// peekNext peeks two runes in advance.
func (l *Lexer) peekNext() rune {
	if l.isAtEnd() {
		return 0
	}
	_, w := utf8.DecodeRuneInString(l.source[l.current:])
	if l.current+w >= len(l.source) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.source[l.current+w:])
	return r
}

func (l *Lexer) match(ch rune) bool {
	if l.isAtEnd() || l.peek() != ch {
		return false
	}
	l.advance()
	return true
}

// public api, actual lexing

// ScanTokens scans the whole input. The token list always ends with
// exactly one EOF token, whatever errors were found on the way.
func (l *Lexer) ScanTokens() []Token {
	for !l.isAtEnd() {
		l.start = l.current
		l.scanToken()
	}
	l.Tokens = append(l.Tokens, Token{EOF, "", nil, l.line, l.column})
	tracer().Debugf("%s: scanned %d tokens, %d errors", l.Filename, len(l.Tokens), len(l.Errors))
	return l.Tokens
}

// punctuation always scanned as a single rune
var punctuation = map[rune]TokenType{
	'(': LEFT_PAREN,
	')': RIGHT_PAREN,
	'{': LEFT_BRACE,
	'}': RIGHT_BRACE,
	',': COMMA,
	'.': DOT,
	'-': MINUS,
	'+': PLUS,
	';': SEMICOLON,
	'*': STAR,
}

// operators which take a different type when followed by '='
var operators = map[rune][2]TokenType{
	'!': {BANG, BANG_EQUAL},
	'=': {EQUAL, EQUAL_EQUAL},
	'<': {LESS, LESS_EQUAL},
	'>': {GREATER, GREATER_EQUAL},
}

func (l *Lexer) scanToken() {
	ch := l.advance()
	if typ, ok := punctuation[ch]; ok {
		l.emit(typ)
		return
	}
	if types, ok := operators[ch]; ok {
		if l.match('=') {
			l.emit(types[1])
		} else {
			l.emit(types[0])
		}
		return
	}
	switch {
	case isWhiteSpace(ch):
		for isWhiteSpace(l.peek()) {
			l.advance()
		}
		l.ignore()
	case ch == '/' && l.match('/'):
		// line comment
		for l.peek() != '\n' && !l.isAtEnd() {
			l.advance()
		}
		l.ignore()
	case ch == '/':
		l.emit(SLASH)
	case ch == '"':
		l.lexString()
	case isDigit(ch):
		l.lexNumber()
	case isAlpha(ch):
		l.lexIdentifier()
	case ch == utf8.RuneError && l.current-l.start == 1:
		// invalid encoding, already reported by advance
		l.ignore()
	default:
		l.error("Unexpected character.")
		l.ignore()
	}
}

func (l *Lexer) lexIdentifier() {
	for isIdentifier(l.peek()) {
		l.advance()
	}
	word := l.source[l.start:l.current]
	if typ, ok := keywords[word]; ok {
		l.emit(typ)
	} else {
		l.emit(IDENTIFIER)
	}
}

func (l *Lexer) lexNumber() {
	// match a run of digits
	for isDigit(l.peek()) {
		l.advance()
	}
	if l.peek() == '.' && isDigit(l.peekNext()) {
		l.advance() // consume '.'
		for isDigit(l.peek()) {
			l.advance()
		}
	}
	num, err := strconv.ParseFloat(l.source[l.start:l.current], 64)
	if err != nil {
		l.error("%s", err)
	}
	l.emitLiteral(NUMBER, num)
}

func (l *Lexer) lexString() {
	// we've already eaten the opening '"'. Strings may span lines.
	for l.peek() != '"' && !l.isAtEnd() {
		l.advance()
	}
	if l.isAtEnd() {
		l.error("Unterminated string.")
		l.ignore()
		return
	}
	l.advance() // the closing '"'
	l.emitLiteral(STRING, l.source[l.start+1:l.current-1])
}

// ignore ignores the currently scanned lexeme
func (l *Lexer) ignore() {
	l.start = l.current
	l.startLn = l.line
	l.startCol = l.column
}

func (l *Lexer) emit(typ TokenType) { l.emitLiteral(typ, nil) }
func (l *Lexer) emitLiteral(typ TokenType, lit interface{}) {
	l.Tokens = append(l.Tokens, Token{
		Type:    typ,
		Lexeme:  l.source[l.start:l.current],
		Literal: lit,
		Line:    l.startLn,
		Column:  l.startCol,
	})
	l.start = l.current
	l.startLn = l.line
	l.startCol = l.column
}

func (l *Lexer) error(s string, args ...interface{}) {
	l.Errors = append(l.Errors, Error{
		Filename: l.Filename,
		Line:     l.line,
		Column:   l.column,
		Message:  fmt.Sprintf(s, args...),
	})
}

func isWhiteSpace(ch rune) bool { return ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r' }
func isIdentifier(ch rune) bool { return isAlpha(ch) || isDigit(ch) }
func isAlpha(ch rune) bool      { return ch == '_' || ('a' <= ch && ch <= 'z') || ('A' <= ch && ch <= 'Z') }
func isDigit(ch rune) bool      { return '0' <= ch && ch <= '9' }
