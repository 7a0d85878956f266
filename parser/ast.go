package parser

import "lox/lexer"

// Node is implemented by every AST node. The expr/stmt marker methods
// close the two node families: passes switch over the concrete types
// and treat anything else as a programming error.
//
// Nodes are created once by the parser and never mutated afterwards.
// Expression nodes are always handled through pointers, so their
// identity can key side tables (see resolver and eval).
type Node interface {
	String() string
	node()
}

type Expr interface {
	Node
	expr()
}

type Stmt interface {
	Node
	stmt()
}

// ===========
// Expressions
// ===========

// Literal holds nil, a bool, a float64 or a string.
type Literal struct {
	Value interface{}
}

type Grouping struct {
	Inner Expr
}

type Unary struct {
	Op    lexer.Token
	Right Expr
}

type Binary struct {
	Left  Expr
	Op    lexer.Token
	Right Expr
}

// Logical is a short-circuiting 'and' or 'or'.
type Logical struct {
	Left  Expr
	Op    lexer.Token
	Right Expr
}

type Variable struct {
	Name lexer.Token
}

type Assign struct {
	Name  lexer.Token
	Value Expr
}

type Call struct {
	Callee Expr
	Paren  lexer.Token // closing paren, used for error locations
	Args   []Expr
}

// Get is a property read.
type Get struct {
	Object Expr
	Name   lexer.Token
}

// Set is a property write.
type Set struct {
	Object Expr
	Name   lexer.Token
	Value  Expr
}

type This struct {
	Keyword lexer.Token
}

type Super struct {
	Keyword lexer.Token
	Method  lexer.Token
}

func (*Literal) node()  {}
func (*Grouping) node() {}
func (*Unary) node()    {}
func (*Binary) node()   {}
func (*Logical) node()  {}
func (*Variable) node() {}
func (*Assign) node()   {}
func (*Call) node()     {}
func (*Get) node()      {}
func (*Set) node()      {}
func (*This) node()     {}
func (*Super) node()    {}

func (*Literal) expr()  {}
func (*Grouping) expr() {}
func (*Unary) expr()    {}
func (*Binary) expr()   {}
func (*Logical) expr()  {}
func (*Variable) expr() {}
func (*Assign) expr()   {}
func (*Call) expr()     {}
func (*Get) expr()      {}
func (*Set) expr()      {}
func (*This) expr()     {}
func (*Super) expr()    {}

// ==========
// Statements
// ==========

type ExprStmt struct {
	Expr Expr
}

type Print struct {
	Expr Expr
}

// Var declares a variable. Init is nil if there is no initializer.
type Var struct {
	Name lexer.Token
	Init Expr
}

type Block struct {
	Stmts []Stmt
}

type If struct {
	Cond Expr
	Then Stmt
	Else Stmt // may be nil
}

// While is also the target of the 'for' desugaring.
type While struct {
	Cond Expr
	Body Stmt
}

type Function struct {
	Name   lexer.Token
	Params []lexer.Token
	Body   []Stmt
}

type Return struct {
	Keyword lexer.Token
	Value   Expr // may be nil
}

type Class struct {
	Name       lexer.Token
	Superclass *Variable // may be nil
	Methods    []*Function
}

func (*ExprStmt) node() {}
func (*Print) node()    {}
func (*Var) node()      {}
func (*Block) node()    {}
func (*If) node()       {}
func (*While) node()    {}
func (*Function) node() {}
func (*Return) node()   {}
func (*Class) node()    {}

func (*ExprStmt) stmt() {}
func (*Print) stmt()    {}
func (*Var) stmt()      {}
func (*Block) stmt()    {}
func (*If) stmt()       {}
func (*While) stmt()    {}
func (*Function) stmt() {}
func (*Return) stmt()   {}
func (*Class) stmt()    {}
