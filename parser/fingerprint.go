package parser

import (
	"lox/lexer"

	"github.com/cnf/structhash"
)

const fingerprintVersion = 1

type tokenPrint struct {
	Type   int
	Lexeme string
	Line   int
}

type programPrint struct {
	Tokens []tokenPrint
	Stmts  []string
}

// Fingerprint returns a structural hash of a token sequence and the
// statements parsed from it. Scanning and parsing the same source twice
// yields the same fingerprint; either argument may be nil.
func Fingerprint(tokens []lexer.Token, program []Stmt) (string, error) {
	p := programPrint{
		Tokens: make([]tokenPrint, len(tokens)),
		Stmts:  stmts(program),
	}
	for i, tok := range tokens {
		p.Tokens[i] = tokenPrint{Type: int(tok.Type), Lexeme: tok.Lexeme, Line: tok.Line}
	}
	return structhash.Hash(p, fingerprintVersion)
}
