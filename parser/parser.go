package parser

import (
	"lox/lexer"

	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'lox.parser'
func tracer() tracing.Trace {
	return tracing.Select("lox.parser")
}

type (
	unaryParser  func() Expr
	binaryParser func(Expr) Expr
)

// maxArgs bounds the number of call arguments and function parameters.
const maxArgs = 255

type Parser struct {
	filename      string
	tokens        []lexer.Token
	Errors        []ParserError
	curr          int // how many we have consumed.
	unaryParsers  map[lexer.TokenType]unaryParser
	binaryParsers map[lexer.TokenType]binaryParser
	precedences   map[lexer.TokenType]int
}

const (
	PREC_LOWEST  = iota
	PREC_ASSIGN  // =
	PREC_OR      // or
	PREC_AND     // and
	PREC_EQ      // ==, !=
	PREC_CMP     // <=, <, >, >=
	PREC_SUM     // +, -
	PREC_PRODUCT // *, /
	PREC_UNARY   // !, -
	PREC_CALL    // (), .
)

// ====
// init
// ====

// New creates a parser for a token sequence, as produced by the lexer.
// The sequence has to be terminated by an EOF token.
func New(fn string, tokens []lexer.Token) *Parser {
	p := &Parser{
		filename: fn,
		tokens:   tokens,
		Errors:   []ParserError{},
		curr:     0,
	}
	p.unaryParsers = map[lexer.TokenType]unaryParser{
		lexer.LEFT_PAREN: p.grouping,
		lexer.IDENTIFIER: p.variable,
		lexer.NUMBER:     p.literal,
		lexer.STRING:     p.literal,
		lexer.TRUE:       p.literal,
		lexer.FALSE:      p.literal,
		lexer.NIL:        p.literal,
		lexer.BANG:       p.unary,
		lexer.MINUS:      p.unary,
		lexer.THIS:       p.this,
		lexer.SUPER:      p.super,
	}
	// note: need to make sure that every entry in binaryParsers
	// has a corresponding entry in precedences.
	p.binaryParsers = map[lexer.TokenType]binaryParser{
		lexer.EQUAL:         p.assign,
		lexer.OR:            p.logical,
		lexer.AND:           p.logical,
		lexer.EQUAL_EQUAL:   p.binary,
		lexer.BANG_EQUAL:    p.binary,
		lexer.GREATER:       p.binary,
		lexer.GREATER_EQUAL: p.binary,
		lexer.LESS:          p.binary,
		lexer.LESS_EQUAL:    p.binary,
		lexer.PLUS:          p.binary,
		lexer.MINUS:         p.binary,
		lexer.STAR:          p.binary,
		lexer.SLASH:         p.binary,
		lexer.LEFT_PAREN:    p.call,
		lexer.DOT:           p.get,
	}
	p.precedences = map[lexer.TokenType]int{
		lexer.EQUAL:         PREC_ASSIGN,
		lexer.OR:            PREC_OR,
		lexer.AND:           PREC_AND,
		lexer.EQUAL_EQUAL:   PREC_EQ,
		lexer.BANG_EQUAL:    PREC_EQ,
		lexer.GREATER:       PREC_CMP,
		lexer.GREATER_EQUAL: PREC_CMP,
		lexer.LESS:          PREC_CMP,
		lexer.LESS_EQUAL:    PREC_CMP,
		lexer.PLUS:          PREC_SUM,
		lexer.MINUS:         PREC_SUM,
		lexer.STAR:          PREC_PRODUCT,
		lexer.SLASH:         PREC_PRODUCT,
		lexer.LEFT_PAREN:    PREC_CALL,
		lexer.DOT:           PREC_CALL,
	}
	return p
}

// =====
// utils
// =====

// consume consumes one token
func (p *Parser) consume() lexer.Token {
	if !p.isAtEnd() {
		p.curr++
	}
	return p.previous()
}

// previous returns the most recently consumed token
func (p *Parser) previous() lexer.Token { return p.tokens[p.curr-1] }

// peek returns the token to be consumed
func (p *Parser) peek() lexer.Token { return p.tokens[p.curr] }

// isAtEnd returns true if the current token is an EOF token
func (p *Parser) isAtEnd() bool { return p.peek().Type == lexer.EOF }

// check returns if the peek token matches the given type
func (p *Parser) check(t lexer.TokenType) bool {
	return !p.isAtEnd() && p.peek().Type == t
}

// match consumes the token if it matches any of the given types
func (p *Parser) match(types ...lexer.TokenType) bool {
	for _, t := range types {
		if p.check(t) {
			p.consume()
			return true
		}
	}
	return false
}

// ===========
// entry point
// ===========

// program → declaration* EOF

// Parse parses the complete token sequence. A nil entry in the result
// marks a declaration which failed to parse and was skipped; the
// errors are found in p.Errors.
func (p *Parser) Parse() []Stmt {
	stmts := []Stmt{}
	for !p.isAtEnd() {
		stmts = append(stmts, p.declaration())
	}
	tracer().Debugf("%s: parsed %d statements, %d errors", p.filename, len(stmts), len(p.Errors))
	return stmts
}

// =================
// statement parsing
// =================
//
// the main entry point is the declaration rule:
//
//   declaration → classDecl | funDecl | varDecl | statement
//   classDecl   → "class" IDENT ( "<" IDENT )? "{" function* "}"
//   funDecl     → "fun" function
//   function    → IDENT "(" parameters? ")" block
//   varDecl     → "var" IDENT ( "=" expression )? ";"
//   statement   → for | if | print | return | while | block | exprStmt
//   for         → "for" "(" ( varDecl | exprStmt | ";" ) expression? ";" expression? ")" statement
//   if          → "if" "(" expression ")" statement ( "else" statement )?
//   print       → "print" expression ";"
//   return      → "return" expression? ";"
//   while       → "while" "(" expression ")" statement
//   block       → "{" declaration* "}"
//   exprStmt    → expression ";"

func (p *Parser) declaration() (stmt Stmt) {
	defer func() {
		// This will be called repeatedly as we parse statements, so
		// this is a good place to synchronize(). We have to make
		// sure that all top-level calls to parse statements/expressions
		// have a recover.
		if rv := recover(); rv != nil {
			if _, ok := rv.(ParserError); ok {
				p.synchronize()
				stmt = nil
				return
			}
			panic(rv)
		}
	}()
	switch {
	case p.match(lexer.CLASS):
		stmt = p.classDecl()
	case p.match(lexer.FUN):
		stmt = p.function("function")
	case p.match(lexer.VAR):
		stmt = p.varDecl()
	default:
		stmt = p.statement()
	}
	return
}

func (p *Parser) statement() Stmt {
	switch {
	case p.check(lexer.FOR):
		return p.forStmt()
	case p.check(lexer.IF):
		return p.ifStmt()
	case p.check(lexer.PRINT):
		return p.printStmt()
	case p.check(lexer.RETURN):
		return p.returnStmt()
	case p.check(lexer.WHILE):
		return p.whileStmt()
	case p.check(lexer.LEFT_BRACE):
		p.consume()
		return &Block{Stmts: p.block()}
	}
	return p.exprStmt()
}

func (p *Parser) classDecl() Stmt {
	name := p.expect(lexer.IDENTIFIER, "Expect class name.")
	var superclass *Variable
	if p.match(lexer.LESS) {
		superclass = &Variable{Name: p.expect(lexer.IDENTIFIER, "Expect superclass name.")}
	}
	p.expect(lexer.LEFT_BRACE, "Expect '{' before class body.")
	methods := []*Function{}
	for !p.check(lexer.RIGHT_BRACE) && !p.isAtEnd() {
		methods = append(methods, p.function("method"))
	}
	p.expect(lexer.RIGHT_BRACE, "Expect '}' after class body.")
	return &Class{Name: name, Superclass: superclass, Methods: methods}
}

// function parses the rest of a function or method declaration; kind
// is used in error messages only.
func (p *Parser) function(kind string) *Function {
	name := p.expect(lexer.IDENTIFIER, "Expect %s name.", kind)
	p.expect(lexer.LEFT_PAREN, "Expect '(' after %s name.", kind)
	params := []lexer.Token{}
	if !p.check(lexer.RIGHT_PAREN) {
		for {
			if len(params) >= maxArgs {
				p.report(p.peek(), "Can't have more than %d parameters.", maxArgs)
			}
			params = append(params, p.expect(lexer.IDENTIFIER, "Expect parameter name."))
			if !p.match(lexer.COMMA) {
				break
			}
		}
	}
	p.expect(lexer.RIGHT_PAREN, "Expect ')' after parameters.")
	p.expect(lexer.LEFT_BRACE, "Expect '{' before %s body.", kind)
	return &Function{Name: name, Params: params, Body: p.block()}
}

func (p *Parser) varDecl() Stmt {
	name := p.expect(lexer.IDENTIFIER, "Expect variable name.")
	var init Expr
	if p.match(lexer.EQUAL) {
		init = p.expression()
	}
	p.expect(lexer.SEMICOLON, "Expect ';' after variable declaration.")
	return &Var{Name: name, Init: init}
}

// forStmt desugars a C-style for loop into
//
//	{ init; while (cond) { body; incr; } }
//
// leaving out the parts which are not present. A missing condition
// becomes the literal true.
func (p *Parser) forStmt() Stmt {
	p.consume() // the 'for' token
	p.expect(lexer.LEFT_PAREN, "Expect '(' after 'for'.")
	var init Stmt
	switch {
	case p.match(lexer.SEMICOLON):
	case p.match(lexer.VAR):
		init = p.varDecl()
	default:
		init = p.exprStmt()
	}
	var cond Expr
	if !p.check(lexer.SEMICOLON) {
		cond = p.expression()
	}
	p.expect(lexer.SEMICOLON, "Expect ';' after loop condition.")
	var incr Expr
	if !p.check(lexer.RIGHT_PAREN) {
		incr = p.expression()
	}
	p.expect(lexer.RIGHT_PAREN, "Expect ')' after for clauses.")
	body := p.statement()
	if incr != nil {
		body = &Block{Stmts: []Stmt{body, &ExprStmt{Expr: incr}}}
	}
	if cond == nil {
		cond = &Literal{Value: true}
	}
	body = &While{Cond: cond, Body: body}
	if init != nil {
		body = &Block{Stmts: []Stmt{init, body}}
	}
	return body
}

func (p *Parser) ifStmt() Stmt {
	p.consume()
	p.expect(lexer.LEFT_PAREN, "Expect '(' after 'if'.")
	cond := p.expression()
	p.expect(lexer.RIGHT_PAREN, "Expect ')' after if condition.")
	then := p.statement()
	var elseStmt Stmt
	if p.match(lexer.ELSE) {
		elseStmt = p.statement()
	}
	return &If{Cond: cond, Then: then, Else: elseStmt}
}

func (p *Parser) printStmt() Stmt {
	p.consume()
	value := p.expression()
	p.expect(lexer.SEMICOLON, "Expect ';' after value.")
	return &Print{Expr: value}
}

func (p *Parser) returnStmt() Stmt {
	keyword := p.consume()
	var value Expr
	if !p.check(lexer.SEMICOLON) {
		value = p.expression()
	}
	p.expect(lexer.SEMICOLON, "Expect ';' after return value.")
	return &Return{Keyword: keyword, Value: value}
}

func (p *Parser) whileStmt() Stmt {
	p.consume()
	p.expect(lexer.LEFT_PAREN, "Expect '(' after 'while'.")
	cond := p.expression()
	p.expect(lexer.RIGHT_PAREN, "Expect ')' after condition.")
	return &While{Cond: cond, Body: p.statement()}
}

// block parses the declarations up to and including the closing brace;
// the opening brace has already been consumed.
func (p *Parser) block() []Stmt {
	stmts := []Stmt{}
	for !p.check(lexer.RIGHT_BRACE) && !p.isAtEnd() {
		stmts = append(stmts, p.declaration())
	}
	p.expect(lexer.RIGHT_BRACE, "Expect '}' after block.")
	return stmts
}

func (p *Parser) exprStmt() Stmt {
	expr := p.expression()
	p.expect(lexer.SEMICOLON, "Expect ';' after expression.")
	return &ExprStmt{Expr: expr}
}

// ==================
// expression parsing
// ==================
//
// Pratt parser over the following precedence levels, lowest first:
//
//   assignment → ( call "." )? IDENT "=" assignment | logic_or
//   logic_or   → logic_and ( "or" logic_and )*
//   logic_and  → equality ( "and" equality )*
//   equality   → comparison ( ( "!=" | "==" ) comparison )*
//   comparison → term ( ( ">" | ">=" | "<" | "<=" ) term )*
//   term       → factor ( ( "-" | "+" ) factor )*
//   factor     → unary ( ( "/" | "*" ) unary )*
//   unary      → ( "!" | "-" ) unary | call
//   call       → primary ( "(" arguments? ")" | "." IDENT )*
//   primary    → literal | IDENT | "(" expression ")" | "this" | "super" "." IDENT

// expression matches a single expression.
func (p *Parser) expression() Expr { return p.precedence(PREC_LOWEST) }
func (p *Parser) precedence(prec int) Expr {
	unary, ok := p.unaryParsers[p.peek().Type]
	if !ok {
		p.error(p.peek(), "Expect expression.")
	}
	expr := unary()
	for prec < p.peekPrecedence() {
		expr = p.binaryParsers[p.peek().Type](expr)
	}
	return expr
}

func (p *Parser) peekPrecedence() int {
	if prec, ok := p.precedences[p.peek().Type]; ok {
		return prec
	}
	return PREC_LOWEST
}

func (p *Parser) unary() Expr {
	tok := p.consume()
	return &Unary{Op: tok, Right: p.precedence(PREC_UNARY - 1)}
}

func (p *Parser) grouping() Expr {
	p.consume()
	expr := p.expression()
	p.expect(lexer.RIGHT_PAREN, "Expect ')' after expression.")
	return &Grouping{Inner: expr}
}

func (p *Parser) assign(left Expr) Expr {
	tok := p.consume()
	right := p.precedence(PREC_ASSIGN - 1)
	switch left := left.(type) {
	case *Variable:
		return &Assign{Name: left.Name, Value: right}
	case *Get:
		return &Set{Object: left.Object, Name: left.Name, Value: right}
	}
	// this is not an error worth panicking over.
	// just move along -- we will put it in `.Errors'.
	p.report(tok, "Invalid assignment target.")
	return left
}

func (p *Parser) get(left Expr) Expr {
	p.consume()
	name := p.expect(lexer.IDENTIFIER, "Expect property name after '.'.")
	return &Get{Object: left, Name: name}
}

func (p *Parser) call(left Expr) Expr {
	p.consume()
	args := []Expr{}
	if !p.check(lexer.RIGHT_PAREN) {
		for {
			if len(args) >= maxArgs {
				p.report(p.peek(), "Can't have more than %d arguments.", maxArgs)
			}
			args = append(args, p.expression())
			if !p.match(lexer.COMMA) {
				break
			}
		}
	}
	paren := p.expect(lexer.RIGHT_PAREN, "Expect ')' after arguments.")
	return &Call{Callee: left, Paren: paren, Args: args}
}

func (p *Parser) binary(left Expr) Expr {
	tok := p.consume()
	return &Binary{Left: left, Op: tok, Right: p.precedence(p.precedences[tok.Type])}
}

func (p *Parser) logical(left Expr) Expr {
	tok := p.consume()
	return &Logical{Left: left, Op: tok, Right: p.precedence(p.precedences[tok.Type])}
}

func (p *Parser) variable() Expr {
	return &Variable{Name: p.consume()}
}

func (p *Parser) this() Expr {
	return &This{Keyword: p.consume()}
}

func (p *Parser) super() Expr {
	keyword := p.consume()
	p.expect(lexer.DOT, "Expect '.' after 'super'.")
	method := p.expect(lexer.IDENTIFIER, "Expect superclass method name.")
	return &Super{Keyword: keyword, Method: method}
}

func (p *Parser) literal() Expr {
	tok := p.consume()
	switch tok.Type {
	case lexer.TRUE:
		return &Literal{Value: true}
	case lexer.FALSE:
		return &Literal{Value: false}
	case lexer.NIL:
		return &Literal{Value: nil}
	}
	return &Literal{Value: tok.Literal}
}
