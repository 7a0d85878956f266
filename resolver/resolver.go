// Package resolver implements identifier resolution semantic analysis,
// as well as some context checks (e.g. ensuring that returns are within
// a function and that 'this' is within a class). Identifier resolution
// works by recording the distance from the current environment where an
// identifier can be found.
package resolver

import (
	"fmt"

	"lox/lexer"
	"lox/parser"

	"github.com/emirpasic/gods/lists/arraylist"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'lox.resolver'
func tracer() tracing.Trace {
	return tracing.Select("lox.resolver")
}

type ResolverError struct {
	Filename string
	Token    lexer.Token
	Message  string
}

func (re ResolverError) Error() string { return re.String() }
func (re ResolverError) String() string {
	if re.Token.Type == lexer.EOF {
		return fmt.Sprintf("[line %d] Error at end: %s", re.Token.Line, re.Message)
	}
	return fmt.Sprintf("[line %d] Error at '%s': %s", re.Token.Line, re.Token.Lexeme, re.Message)
}

// Binder receives the distances found by the resolver. The interpreter
// implements it and keeps them in a side table keyed by node.
// IsGlobal reports names already bound in the global environment.
type Binder interface {
	Resolve(expr parser.Expr, depth int)
	IsGlobal(name string) bool
}

// Scope maps a variable name to whether its initializer has completed.
type Scope map[string]bool

type functionType uint8

const (
	FN_NONE functionType = iota
	FN_FUNCTION
	FN_METHOD
	FN_INITIALIZER
)

type classType uint8

const (
	CLASS_NONE classType = iota
	CLASS_CLASS
	CLASS_SUBCLASS
)

type Resolver struct {
	filename string
	binder   Binder
	// innermost scope is the last element. The global scope is
	// not tracked: unresolved names are looked up as globals.
	scopes *arraylist.List
	// names declared at the top level so far.
	globals map[string]bool
	Errors  []error
	fnType  functionType
	clsType classType
}

func New(filename string, binder Binder) *Resolver {
	return &Resolver{
		filename: filename,
		binder:   binder,
		scopes:   arraylist.New(),
		globals:  map[string]bool{},
		Errors:   []error{},
	}
}

// Resolve resolves a list of statements. It may be called repeatedly,
// e.g. for successive REPL lines; errors accumulate in r.Errors.
func (r *Resolver) Resolve(stmts []parser.Stmt) {
	for _, stmt := range stmts {
		if stmt == nil {
			continue
		}
		r.resolve(stmt)
	}
	if r.scopes.Size() != 0 || r.fnType != FN_NONE || r.clsType != CLASS_NONE {
		panic("resolver: unbalanced scopes")
	}
}

func (r *Resolver) err(tok lexer.Token, msg string) {
	err := ResolverError{
		Filename: r.filename,
		Token:    tok,
		Message:  msg,
	}
	tracer().Debugf("%s", err)
	r.Errors = append(r.Errors, err)
}

func (r *Resolver) push() {
	r.scopes.Add(Scope{})
	tracer().Debugf("push scope, depth=%d", r.scopes.Size())
}

func (r *Resolver) pop() {
	r.scopes.Remove(r.scopes.Size() - 1)
	tracer().Debugf("pop scope, depth=%d", r.scopes.Size())
}

// scope returns the i-th scope counting from the innermost one.
func (r *Resolver) scope(i int) Scope {
	s, _ := r.scopes.Get(r.scopes.Size() - 1 - i)
	return s.(Scope)
}

func (r *Resolver) declare(name lexer.Token) {
	if r.scopes.Empty() {
		r.globals[name.Lexeme] = true
		return
	}
	scope := r.scope(0)
	if _, ok := scope[name.Lexeme]; ok {
		r.err(name, "Already a variable with this name in this scope.")
	}
	scope[name.Lexeme] = false
}

func (r *Resolver) define(name lexer.Token) {
	if r.scopes.Empty() {
		return
	}
	r.scope(0)[name.Lexeme] = true
}

// resolveLocal records how many scopes out the name is found. Names
// not found in any scope are left for the global environment.
func (r *Resolver) resolveLocal(expr parser.Expr, name lexer.Token) {
	r.resolveFrom(expr, name, 0)
}

// resolveFrom is resolveLocal skipping the innermost skip scopes.
func (r *Resolver) resolveFrom(expr parser.Expr, name lexer.Token, skip int) {
	for i := skip; i < r.scopes.Size(); i++ {
		if _, ok := r.scope(i)[name.Lexeme]; ok {
			tracer().Debugf("%s:%d: '%s' at distance %d", r.filename, name.Line, name.Lexeme, i)
			r.binder.Resolve(expr, i)
			return
		}
	}
}

func (r *Resolver) resolveAll(stmts []parser.Stmt) {
	for _, stmt := range stmts {
		if stmt != nil {
			r.resolve(stmt)
		}
	}
}

func (r *Resolver) resolve(node parser.Node) {
	switch node := node.(type) {
	// Statements
	case *parser.Block:
		r.push()
		r.resolveAll(node.Stmts)
		r.pop()
	case *parser.Var:
		r.resolveVar(node)
	case *parser.Function:
		r.declare(node.Name)
		r.define(node.Name)
		r.resolveFunction(node, FN_FUNCTION)
	case *parser.Class:
		r.resolveClass(node)
	case *parser.ExprStmt:
		r.resolve(node.Expr)
	case *parser.Print:
		r.resolve(node.Expr)
	case *parser.If:
		r.resolve(node.Cond)
		r.resolve(node.Then)
		if node.Else != nil {
			r.resolve(node.Else)
		}
	case *parser.While:
		r.resolve(node.Cond)
		r.resolve(node.Body)
	case *parser.Return:
		r.resolveReturn(node)
	// Expressions
	case *parser.Variable:
		r.resolveVariable(node)
	case *parser.Assign:
		r.resolve(node.Value)
		r.resolveLocal(node, node.Name)
	case *parser.Binary:
		r.resolve(node.Left)
		r.resolve(node.Right)
	case *parser.Logical:
		r.resolve(node.Left)
		r.resolve(node.Right)
	case *parser.Unary:
		r.resolve(node.Right)
	case *parser.Grouping:
		r.resolve(node.Inner)
	case *parser.Call:
		r.resolve(node.Callee)
		for _, arg := range node.Args {
			r.resolve(arg)
		}
	case *parser.Get:
		r.resolve(node.Object)
	case *parser.Set:
		r.resolve(node.Value)
		r.resolve(node.Object)
	case *parser.This:
		if r.clsType == CLASS_NONE {
			r.err(node.Keyword, "Can't use 'this' outside of a class.")
			return
		}
		r.resolveLocal(node, node.Keyword)
	case *parser.Super:
		r.resolveSuper(node)
	case *parser.Literal:
		return
	default:
		panic(fmt.Sprintf("resolver: unknown node %T", node))
	}
}

func (r *Resolver) resolveVar(node *parser.Var) {
	r.declare(node.Name)
	if node.Init != nil {
		r.resolve(node.Init)
	}
	r.define(node.Name)
}

// resolveVariable: a variable read inside its own initializer refers to
// the binding it shadows, e.g. `var a = 1; { var a = a + 1; }`. With
// nothing to shadow it is an error.
func (r *Resolver) resolveVariable(node *parser.Variable) {
	name := node.Name.Lexeme
	if !r.scopes.Empty() {
		if initialized, ok := r.scope(0)[name]; ok && !initialized {
			if r.bound(name, 1) {
				r.resolveFrom(node, node.Name, 1)
				return
			}
			r.err(node.Name, "Can't read local variable in its own initializer.")
		}
	}
	r.resolveLocal(node, node.Name)
}

// bound reports whether name is visible outside the innermost skip scopes.
func (r *Resolver) bound(name string, skip int) bool {
	for i := skip; i < r.scopes.Size(); i++ {
		if _, ok := r.scope(i)[name]; ok {
			return true
		}
	}
	return r.globals[name] || r.binder.IsGlobal(name)
}

func (r *Resolver) resolveFunction(node *parser.Function, typ functionType) {
	enclosing := r.fnType
	r.fnType = typ
	defer func() { r.fnType = enclosing }()
	r.push()
	for _, param := range node.Params {
		r.declare(param)
		r.define(param)
	}
	r.resolveAll(node.Body)
	r.pop()
}

func (r *Resolver) resolveReturn(node *parser.Return) {
	if r.fnType == FN_NONE {
		r.err(node.Keyword, "Can't return from top-level code.")
	}
	if node.Value != nil {
		if r.fnType == FN_INITIALIZER {
			r.err(node.Keyword, "Can't return a value from an initializer.")
		}
		r.resolve(node.Value)
	}
}

func (r *Resolver) resolveClass(node *parser.Class) {
	enclosing := r.clsType
	r.clsType = CLASS_CLASS
	defer func() { r.clsType = enclosing }()

	r.declare(node.Name)
	r.define(node.Name)

	if node.Superclass != nil {
		if node.Superclass.Name.Lexeme == node.Name.Lexeme {
			r.err(node.Superclass.Name, "A class can't inherit from itself.")
		}
		r.clsType = CLASS_SUBCLASS
		r.resolve(node.Superclass)
		r.push()
		r.scope(0)["super"] = true
	}

	r.push()
	r.scope(0)["this"] = true
	for _, method := range node.Methods {
		typ := FN_METHOD
		if method.Name.Lexeme == "init" {
			typ = FN_INITIALIZER
		}
		r.resolveFunction(method, typ)
	}
	r.pop()

	if node.Superclass != nil {
		r.pop()
	}
}

func (r *Resolver) resolveSuper(node *parser.Super) {
	switch r.clsType {
	case CLASS_NONE:
		r.err(node.Keyword, "Can't use 'super' outside of a class.")
		return
	case CLASS_CLASS:
		r.err(node.Keyword, "Can't use 'super' in a class with no superclass.")
		return
	}
	r.resolveLocal(node, node.Keyword)
}
