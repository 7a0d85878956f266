package main

import (
	"strings"

	"lox/parser"

	"github.com/pterm/pterm"
)

// leveledProgram flattens a program into a pterm leveled list, one item
// per node, children one level deeper than their parent.
func leveledProgram(stmts []parser.Stmt) pterm.LeveledList {
	ll := pterm.LeveledList{}
	for _, stmt := range stmts {
		ll = leveled(stmt, ll, 0)
	}
	return ll
}

func leveled(node parser.Node, ll pterm.LeveledList, level int) pterm.LeveledList {
	ll = append(ll, pterm.LeveledListItem{Level: level, Text: label(node)})
	for _, child := range children(node) {
		ll = leveled(child, ll, level+1)
	}
	return ll
}

func label(node parser.Node) string {
	switch n := node.(type) {
	case nil:
		return "<error>"
	case *parser.ExprStmt:
		return ";"
	case *parser.Print:
		return "print"
	case *parser.Var:
		return "var " + n.Name.Lexeme
	case *parser.Block:
		return "block"
	case *parser.If:
		return "if"
	case *parser.While:
		return "while"
	case *parser.Function:
		params := make([]string, len(n.Params))
		for i, p := range n.Params {
			params[i] = p.Lexeme
		}
		return "fun " + n.Name.Lexeme + "(" + strings.Join(params, ", ") + ")"
	case *parser.Return:
		return "return"
	case *parser.Class:
		if n.Superclass != nil {
			return "class " + n.Name.Lexeme + " < " + n.Superclass.Name.Lexeme
		}
		return "class " + n.Name.Lexeme
	case *parser.Grouping:
		return "group"
	case *parser.Unary:
		return n.Op.Lexeme
	case *parser.Binary:
		return n.Op.Lexeme
	case *parser.Logical:
		return n.Op.Lexeme
	case *parser.Assign:
		return "= " + n.Name.Lexeme
	case *parser.Call:
		return "call"
	case *parser.Get:
		return ". " + n.Name.Lexeme
	case *parser.Set:
		return ".= " + n.Name.Lexeme
	}
	// literals, variables, this and super are leaves
	return node.String()
}

func children(node parser.Node) []parser.Node {
	switch n := node.(type) {
	case *parser.ExprStmt:
		return []parser.Node{n.Expr}
	case *parser.Print:
		return []parser.Node{n.Expr}
	case *parser.Var:
		if n.Init != nil {
			return []parser.Node{n.Init}
		}
	case *parser.Block:
		return stmtNodes(n.Stmts)
	case *parser.If:
		if n.Else != nil {
			return []parser.Node{n.Cond, n.Then, n.Else}
		}
		return []parser.Node{n.Cond, n.Then}
	case *parser.While:
		return []parser.Node{n.Cond, n.Body}
	case *parser.Function:
		return stmtNodes(n.Body)
	case *parser.Return:
		if n.Value != nil {
			return []parser.Node{n.Value}
		}
	case *parser.Class:
		nodes := make([]parser.Node, len(n.Methods))
		for i, m := range n.Methods {
			nodes[i] = m
		}
		return nodes
	case *parser.Grouping:
		return []parser.Node{n.Inner}
	case *parser.Unary:
		return []parser.Node{n.Right}
	case *parser.Binary:
		return []parser.Node{n.Left, n.Right}
	case *parser.Logical:
		return []parser.Node{n.Left, n.Right}
	case *parser.Assign:
		return []parser.Node{n.Value}
	case *parser.Call:
		nodes := []parser.Node{n.Callee}
		for _, arg := range n.Args {
			nodes = append(nodes, arg)
		}
		return nodes
	case *parser.Get:
		return []parser.Node{n.Object}
	case *parser.Set:
		return []parser.Node{n.Object, n.Value}
	}
	return nil
}

func stmtNodes(stmts []parser.Stmt) []parser.Node {
	nodes := make([]parser.Node, len(stmts))
	for i, s := range stmts {
		if s != nil {
			nodes[i] = s
		}
	}
	return nodes
}
