package parser

import (
	"fmt"

	"lox/lexer"
)

// Represents a parsing error. We use this internally to signal
// that we cannot continue parsing some expression/statement --
// as opposed to minor errors like an invalid assignment target,
// which are recorded and parsing goes on.
type ParserError struct {
	Filename string
	Token    lexer.Token
	Message  string
}

func (pe ParserError) Error() string { return pe.String() }
func (pe ParserError) String() string {
	if pe.Token.Type == lexer.EOF {
		return fmt.Sprintf("[line %d] Error at end: %s", pe.Token.Line, pe.Message)
	}
	return fmt.Sprintf("[line %d] Error at '%s': %s", pe.Token.Line, pe.Token.Lexeme, pe.Message)
}

// report records an error without unwinding.
func (p *Parser) report(tok lexer.Token, s string, args ...interface{}) ParserError {
	err := ParserError{
		Filename: p.filename,
		Token:    tok,
		Message:  fmt.Sprintf(s, args...),
	}
	p.Errors = append(p.Errors, err)
	tracer().Debugf("%s", err)
	return err
}

// error records an error and unwinds to the enclosing declaration.
func (p *Parser) error(tok lexer.Token, s string, args ...interface{}) {
	panic(p.report(tok, s, args...))
}

func (p *Parser) expect(typ lexer.TokenType, s string, args ...interface{}) lexer.Token {
	if p.check(typ) {
		return p.consume()
	}
	p.error(p.peek(), s, args...)
	return lexer.Token{} // not reached
}

// synchronize synchronizes the parser by discarding tokens
// until we reach a token which starts a statement. This means
// that cascading errors are discarded, and we still report as
// many errors as possible.
func (p *Parser) synchronize() {
	p.consume()
	for !p.isAtEnd() {
		if p.previous().Type == lexer.SEMICOLON {
			return
		}
		switch p.peek().Type {
		case lexer.CLASS, lexer.FUN, lexer.VAR, lexer.FOR,
			lexer.IF, lexer.WHILE, lexer.PRINT, lexer.RETURN:
			return
		}
		p.consume()
	}
}
