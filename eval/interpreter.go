// Package eval implements the tree-walking evaluator: environments,
// the function/class/instance object model and the pipeline session
// used by the command line front end.
package eval

import (
	"fmt"
	"io"

	"lox/lexer"
	"lox/parser"

	"github.com/emirpasic/gods/stacks/arraystack"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'lox.eval'
func tracer() tracing.Trace {
	return tracing.Select("lox.eval")
}

// DefaultMaxDepth bounds the number of nested calls.
const DefaultMaxDepth = 10000

type Interpreter struct {
	globals *Environment
	// the current environment we're executing.
	env *Environment
	// distances recorded by the resolver, keyed by node.
	locals map[parser.Expr]int
	// print output goes here.
	out io.Writer
	// active calls, innermost on top.
	frames   *arraystack.Stack
	MaxDepth int
}

// New creates an interpreter writing print output to out. The global
// environment is seeded with the native functions.
func New(out io.Writer) *Interpreter {
	globals := NewEnvironment(nil)
	in := &Interpreter{
		globals:  globals,
		env:      globals,
		locals:   map[parser.Expr]int{},
		out:      out,
		frames:   arraystack.New(),
		MaxDepth: DefaultMaxDepth,
	}
	setupBuiltins(in)
	return in
}

// Resolve records the resolution distance of a variable reference.
func (in *Interpreter) Resolve(expr parser.Expr, depth int) {
	in.locals[expr] = depth
}

// IsGlobal reports whether name is bound in the global environment.
func (in *Interpreter) IsGlobal(name string) bool {
	_, ok := in.globals.store[name]
	return ok
}

// Interpret executes statements in order. A runtime error aborts the
// remaining statements and is returned as a *RuntimeError.
func (in *Interpreter) Interpret(stmts []parser.Stmt) error {
	for _, stmt := range stmts {
		if stmt == nil {
			continue
		}
		if _, err := in.execute(stmt); err != nil {
			return err
		}
	}
	return nil
}

// Evaluate evaluates a single expression in the current environment.
func (in *Interpreter) Evaluate(expr parser.Expr) (Value, error) {
	return in.evaluate(expr)
}

// ==========
// Statements
// ==========

func (in *Interpreter) execute(node parser.Stmt) (*Return, error) {
	switch node := node.(type) {
	case *parser.ExprStmt:
		_, err := in.evaluate(node.Expr)
		return nil, err
	case *parser.Print:
		v, err := in.evaluate(node.Expr)
		if err != nil {
			return nil, err
		}
		fmt.Fprintln(in.out, v.String())
		return nil, nil
	case *parser.Var:
		return nil, in.executeVar(node)
	case *parser.Block:
		return in.executeBlock(node.Stmts, NewEnvironment(in.env))
	case *parser.If:
		return in.executeIf(node)
	case *parser.While:
		return in.executeWhile(node)
	case *parser.Function:
		in.env.Define(node.Name.Lexeme, newFunction(node, in.env, false))
		return nil, nil
	case *parser.Return:
		var value Value = NIL
		if node.Value != nil {
			v, err := in.evaluate(node.Value)
			if err != nil {
				return nil, err
			}
			value = v
		}
		return &Return{Value: value}, nil
	case *parser.Class:
		return nil, in.executeClass(node)
	}
	panic(fmt.Sprintf("eval: unhandled node %#+v", node))
}

func (in *Interpreter) executeVar(node *parser.Var) error {
	var value Value = NIL
	if node.Init != nil {
		v, err := in.evaluate(node.Init)
		if err != nil {
			return err
		}
		value = v
	}
	in.env.Define(node.Name.Lexeme, value)
	return nil
}

// executeBlock runs stmts in env, restoring the current environment
// on every exit path.
func (in *Interpreter) executeBlock(stmts []parser.Stmt, env *Environment) (*Return, error) {
	prev := in.env
	in.env = env
	defer func() { in.env = prev }()
	for _, stmt := range stmts {
		if stmt == nil {
			continue
		}
		if ret, err := in.execute(stmt); ret != nil || err != nil {
			return ret, err
		}
	}
	return nil, nil
}

func (in *Interpreter) executeIf(node *parser.If) (*Return, error) {
	cond, err := in.evaluate(node.Cond)
	if err != nil {
		return nil, err
	}
	if isTruthy(cond) {
		return in.execute(node.Then)
	}
	if node.Else != nil {
		return in.execute(node.Else)
	}
	return nil, nil
}

func (in *Interpreter) executeWhile(node *parser.While) (*Return, error) {
	for {
		cond, err := in.evaluate(node.Cond)
		if err != nil {
			return nil, err
		}
		if !isTruthy(cond) {
			return nil, nil
		}
		if ret, err := in.execute(node.Body); ret != nil || err != nil {
			return ret, err
		}
	}
}

// executeClass declares the class name before building the methods and
// assigns it afterwards, so that methods may refer to their class.
func (in *Interpreter) executeClass(node *parser.Class) error {
	var superclass *Class
	if node.Superclass != nil {
		v, err := in.evaluate(node.Superclass)
		if err != nil {
			return err
		}
		sc, ok := v.(*Class)
		if !ok {
			return in.err(node.Superclass.Name, "Superclass must be a class.")
		}
		superclass = sc
	}
	in.env.Define(node.Name.Lexeme, NIL)
	env := in.env
	if superclass != nil {
		env = NewEnvironment(env)
		env.Define("super", superclass)
	}
	methods := make(map[string]*Function, len(node.Methods))
	for _, method := range node.Methods {
		methods[method.Name.Lexeme] = newFunction(method, env, method.Name.Lexeme == "init")
	}
	class := &Class{
		Name:       node.Name.Lexeme,
		superclass: superclass,
		methods:    methods,
	}
	in.env.Assign(node.Name.Lexeme, class)
	return nil
}

// ===========
// Expressions
// ===========

func (in *Interpreter) evaluate(node parser.Expr) (Value, error) {
	switch node := node.(type) {
	case *parser.Literal:
		return fromLiteral(node.Value), nil
	case *parser.Grouping:
		return in.evaluate(node.Inner)
	case *parser.Unary:
		return in.evalUnary(node)
	case *parser.Binary:
		return in.evalBinary(node)
	case *parser.Logical:
		return in.evalLogical(node)
	case *parser.Variable:
		return in.lookupVariable(node.Name, node)
	case *parser.Assign:
		return in.evalAssign(node)
	case *parser.Call:
		return in.evalCall(node)
	case *parser.Get:
		return in.evalGet(node)
	case *parser.Set:
		return in.evalSet(node)
	case *parser.This:
		return in.lookupVariable(node.Keyword, node)
	case *parser.Super:
		return in.evalSuper(node)
	}
	panic(fmt.Sprintf("eval: unhandled node %#+v", node))
}

func (in *Interpreter) lookupVariable(name lexer.Token, expr parser.Expr) (Value, error) {
	if distance, ok := in.locals[expr]; ok {
		return in.env.GetAt(distance, name.Lexeme), nil
	}
	if v, ok := in.globals.Get(name.Lexeme); ok {
		return v, nil
	}
	return nil, in.err(name, "Undefined variable '%s'.", name.Lexeme)
}

func (in *Interpreter) evalAssign(node *parser.Assign) (Value, error) {
	value, err := in.evaluate(node.Value)
	if err != nil {
		return nil, err
	}
	if distance, ok := in.locals[node]; ok {
		in.env.AssignAt(distance, node.Name.Lexeme, value)
		return value, nil
	}
	if !in.globals.Assign(node.Name.Lexeme, value) {
		return nil, in.err(node.Name, "Undefined variable '%s'.", node.Name.Lexeme)
	}
	return value, nil
}

func (in *Interpreter) evalUnary(node *parser.Unary) (Value, error) {
	right, err := in.evaluate(node.Right)
	if err != nil {
		return nil, err
	}
	switch node.Op.Type {
	case lexer.BANG:
		return Boolean(!isTruthy(right)), nil
	case lexer.MINUS:
		n, ok := right.(Number)
		if !ok {
			return nil, in.err(node.Op, "Operand must be a number.")
		}
		return -n, nil
	}
	panic(fmt.Sprintf("eval: unknown unary operator %s", node.Op.Lexeme))
}

func (in *Interpreter) evalLogical(node *parser.Logical) (Value, error) {
	left, err := in.evaluate(node.Left)
	if err != nil {
		return nil, err
	}
	if node.Op.Type == lexer.OR {
		if isTruthy(left) {
			return left, nil
		}
	} else if !isTruthy(left) {
		return left, nil
	}
	return in.evaluate(node.Right)
}

func (in *Interpreter) evalBinary(node *parser.Binary) (Value, error) {
	left, err := in.evaluate(node.Left)
	if err != nil {
		return nil, err
	}
	right, err := in.evaluate(node.Right)
	if err != nil {
		return nil, err
	}
	switch node.Op.Type {
	case lexer.EQUAL_EQUAL:
		return Boolean(isEqual(left, right)), nil
	case lexer.BANG_EQUAL:
		return Boolean(!isEqual(left, right)), nil
	case lexer.PLUS:
		switch l := left.(type) {
		case Number:
			if r, ok := right.(Number); ok {
				return l + r, nil
			}
		case String:
			if r, ok := right.(String); ok {
				return l + r, nil
			}
		}
		return nil, in.err(node.Op, "Operands must be two numbers or two strings.")
	}
	l, lok := left.(Number)
	r, rok := right.(Number)
	if !lok || !rok {
		return nil, in.err(node.Op, "Operands must be numbers.")
	}
	switch node.Op.Type {
	case lexer.MINUS:
		return l - r, nil
	case lexer.STAR:
		return l * r, nil
	case lexer.SLASH:
		return l / r, nil
	case lexer.GREATER:
		return Boolean(l > r), nil
	case lexer.GREATER_EQUAL:
		return Boolean(l >= r), nil
	case lexer.LESS:
		return Boolean(l < r), nil
	case lexer.LESS_EQUAL:
		return Boolean(l <= r), nil
	}
	panic(fmt.Sprintf("eval: unknown binary operator %s", node.Op.Lexeme))
}

func (in *Interpreter) evalCall(node *parser.Call) (Value, error) {
	callee, err := in.evaluate(node.Callee)
	if err != nil {
		return nil, err
	}
	args := make([]Value, 0, len(node.Args))
	for _, arg := range node.Args {
		v, err := in.evaluate(arg)
		if err != nil {
			return nil, err
		}
		args = append(args, v)
	}
	fn, ok := callee.(Callable)
	if !ok {
		return nil, in.err(node.Paren, "Can only call functions and classes.")
	}
	if len(args) != fn.Arity() {
		return nil, in.err(node.Paren, "Expected %d arguments but got %d.", fn.Arity(), len(args))
	}
	return in.call(fn, node.Paren, args)
}

// call invokes fn with a new frame on the call stack.
func (in *Interpreter) call(fn Callable, paren lexer.Token, args []Value) (Value, error) {
	if in.frames.Size() >= in.MaxDepth {
		return nil, in.err(paren, "Stack overflow.")
	}
	in.frames.Push(fn)
	defer in.frames.Pop()
	tracer().Debugf("call %s, depth=%d", fn, in.frames.Size())
	v, err := fn.call(in, args)
	if err != nil {
		if _, ok := err.(*RuntimeError); !ok {
			return nil, in.err(paren, "%s", err)
		}
		return nil, err
	}
	return v, nil
}

func (in *Interpreter) evalGet(node *parser.Get) (Value, error) {
	obj, err := in.evaluate(node.Object)
	if err != nil {
		return nil, err
	}
	instance, ok := obj.(*Instance)
	if !ok {
		return nil, in.err(node.Name, "Only instances have properties.")
	}
	v, ok := instance.Get(node.Name.Lexeme)
	if !ok {
		return nil, in.err(node.Name, "Undefined property '%s'.", node.Name.Lexeme)
	}
	return v, nil
}

func (in *Interpreter) evalSet(node *parser.Set) (Value, error) {
	obj, err := in.evaluate(node.Object)
	if err != nil {
		return nil, err
	}
	instance, ok := obj.(*Instance)
	if !ok {
		return nil, in.err(node.Name, "Only instances have fields.")
	}
	value, err := in.evaluate(node.Value)
	if err != nil {
		return nil, err
	}
	instance.Set(node.Name.Lexeme, value)
	return value, nil
}

// evalSuper finds the method on the superclass bound in the 'super'
// scope, and binds it to the 'this' of the scope just inside.
func (in *Interpreter) evalSuper(node *parser.Super) (Value, error) {
	distance := in.locals[node]
	superclass := in.env.GetAt(distance, "super").(*Class)
	instance := in.env.GetAt(distance-1, "this").(*Instance)
	method := superclass.FindMethod(node.Method.Lexeme)
	if method == nil {
		return nil, in.err(node.Method, "Undefined property '%s'.", node.Method.Lexeme)
	}
	return method.bind(instance), nil
}
