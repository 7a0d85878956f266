package eval

import "lox/parser"

// forget drops the resolved distances of nodes which cannot run again
// once stmts have been executed. Function bodies and methods are kept,
// as closures created from them may be called by later runs.
func (in *Interpreter) forget(stmts []parser.Stmt) {
	n := len(in.locals)
	for _, stmt := range stmts {
		in.forgetStmt(stmt)
	}
	tracer().Debugf("forgot %d resolved nodes", n-len(in.locals))
}

func (in *Interpreter) forgetStmt(node parser.Stmt) {
	switch node := node.(type) {
	case nil:
	case *parser.ExprStmt:
		in.forgetExpr(node.Expr)
	case *parser.Print:
		in.forgetExpr(node.Expr)
	case *parser.Var:
		if node.Init != nil {
			in.forgetExpr(node.Init)
		}
	case *parser.Block:
		for _, stmt := range node.Stmts {
			in.forgetStmt(stmt)
		}
	case *parser.If:
		in.forgetExpr(node.Cond)
		in.forgetStmt(node.Then)
		if node.Else != nil {
			in.forgetStmt(node.Else)
		}
	case *parser.While:
		in.forgetExpr(node.Cond)
		in.forgetStmt(node.Body)
	case *parser.Return:
		if node.Value != nil {
			in.forgetExpr(node.Value)
		}
	case *parser.Class:
		if node.Superclass != nil {
			in.forgetExpr(node.Superclass)
		}
	case *parser.Function:
	}
}

func (in *Interpreter) forgetExpr(node parser.Expr) {
	delete(in.locals, node)
	switch node := node.(type) {
	case *parser.Grouping:
		in.forgetExpr(node.Inner)
	case *parser.Unary:
		in.forgetExpr(node.Right)
	case *parser.Binary:
		in.forgetExpr(node.Left)
		in.forgetExpr(node.Right)
	case *parser.Logical:
		in.forgetExpr(node.Left)
		in.forgetExpr(node.Right)
	case *parser.Assign:
		in.forgetExpr(node.Value)
	case *parser.Call:
		in.forgetExpr(node.Callee)
		for _, arg := range node.Args {
			in.forgetExpr(arg)
		}
	case *parser.Get:
		in.forgetExpr(node.Object)
	case *parser.Set:
		in.forgetExpr(node.Object)
		in.forgetExpr(node.Value)
	}
}
