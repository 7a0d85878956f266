package parser

import (
	"bytes"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// The String() methods render nodes as fully parenthesized prefix
// expressions, e.g. `(+ 1 (* 2 3))`. Statements use the same style,
// `(print x)`, `(var a 1)`, and so on.

func parenthesize(name string, parts ...string) string {
	var buf bytes.Buffer
	buf.WriteString("(")
	buf.WriteString(name)
	for _, part := range parts {
		buf.WriteString(" ")
		buf.WriteString(part)
	}
	buf.WriteString(")")
	return buf.String()
}

func exprs(es []Expr) []string {
	parts := make([]string, len(es))
	for i, e := range es {
		parts[i] = e.String()
	}
	return parts
}

func stmts(ss []Stmt) []string {
	parts := make([]string, len(ss))
	for i, s := range ss {
		if s == nil {
			parts[i] = "<error>"
			continue
		}
		parts[i] = s.String()
	}
	return parts
}

// Program renders a list of statements one per line.
func Program(ss []Stmt) string {
	return strings.Join(stmts(ss), "\n")
}

// Statements

func (node *ExprStmt) String() string { return parenthesize(";", node.Expr.String()) }
func (node *Print) String() string    { return parenthesize("print", node.Expr.String()) }

func (node *Var) String() string {
	if node.Init == nil {
		return parenthesize("var", node.Name.Lexeme)
	}
	return parenthesize("var", node.Name.Lexeme, node.Init.String())
}

func (node *Block) String() string { return parenthesize("block", stmts(node.Stmts)...) }

func (node *If) String() string {
	if node.Else == nil {
		return parenthesize("if", node.Cond.String(), node.Then.String())
	}
	return parenthesize("if", node.Cond.String(), node.Then.String(), node.Else.String())
}

func (node *While) String() string {
	return parenthesize("while", node.Cond.String(), node.Body.String())
}

func (node *Function) String() string {
	params := make([]string, len(node.Params))
	for i, p := range node.Params {
		params[i] = p.Lexeme
	}
	head := node.Name.Lexeme + "(" + strings.Join(params, " ") + ")"
	return parenthesize("fun", append([]string{head}, stmts(node.Body)...)...)
}

func (node *Return) String() string {
	if node.Value == nil {
		return "(return)"
	}
	return parenthesize("return", node.Value.String())
}

func (node *Class) String() string {
	parts := []string{node.Name.Lexeme}
	if node.Superclass != nil {
		parts = append(parts, "<", node.Superclass.String())
	}
	for _, m := range node.Methods {
		parts = append(parts, m.String())
	}
	return parenthesize("class", parts...)
}

// Expressions

func (node *Literal) String() string {
	switch v := node.Value.(type) {
	case nil:
		return "nil"
	case bool:
		return strconv.FormatBool(v)
	case float64:
		return FormatNumber(v)
	case string:
		return strconv.Quote(v)
	}
	return fmt.Sprintf("%v", node.Value)
}

func (node *Grouping) String() string { return parenthesize("group", node.Inner.String()) }
func (node *Unary) String() string    { return parenthesize(node.Op.Lexeme, node.Right.String()) }

func (node *Binary) String() string {
	return parenthesize(node.Op.Lexeme, node.Left.String(), node.Right.String())
}

func (node *Logical) String() string {
	return parenthesize(node.Op.Lexeme, node.Left.String(), node.Right.String())
}

func (node *Variable) String() string { return node.Name.Lexeme }

func (node *Assign) String() string {
	return parenthesize("=", node.Name.Lexeme, node.Value.String())
}

func (node *Call) String() string {
	return parenthesize("call", append([]string{node.Callee.String()}, exprs(node.Args)...)...)
}

func (node *Get) String() string { return parenthesize(".", node.Object.String(), node.Name.Lexeme) }

func (node *Set) String() string {
	return parenthesize("=", parenthesize(".", node.Object.String(), node.Name.Lexeme), node.Value.String())
}

func (node *This) String() string  { return "this" }
func (node *Super) String() string { return parenthesize("super", node.Method.Lexeme) }

// FormatNumber prints a number the way the language displays it:
// integral values without a fractional part.
func FormatNumber(v float64) string {
	switch {
	case math.IsInf(v, 1):
		return "Infinity"
	case math.IsInf(v, -1):
		return "-Infinity"
	case math.IsNaN(v):
		return "NaN"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
