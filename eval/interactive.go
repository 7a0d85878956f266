package eval

import (
	"fmt"
	"io"

	"lox/lexer"
	"lox/parser"
	"lox/resolver"

	"github.com/npillmayer/schuko/tracing"
)

type Status uint8

const (
	STATUS_OK Status = iota
	STATUS_STATIC_ERROR
	STATUS_RUNTIME_ERROR
)

// Session runs source text through the whole pipeline against one
// interpreter, so that globals survive between runs (e.g. REPL lines).
// Errors of every stage are handed to the report function; a run with
// static errors is not executed, but later runs are unaffected.
type Session struct {
	Filename string
	// Echo prints the value of a run consisting of exactly one
	// expression statement.
	Echo bool
	// Dump, if set, receives every successfully parsed program.
	Dump   func([]parser.Stmt)
	interp *Interpreter
	out    io.Writer
	report func(error)
}

func NewSession(filename string, out io.Writer, report func(error)) *Session {
	return &Session{
		Filename: filename,
		interp:   New(out),
		out:      out,
		report:   report,
	}
}

// Interpreter returns the interpreter shared by all runs.
func (s *Session) Interpreter() *Interpreter { return s.interp }

func (s *Session) Run(source string) Status {
	l := lexer.New(s.Filename, source)
	l.ScanTokens()
	for i := range l.Errors {
		s.report(&l.Errors[i])
	}
	p := parser.New(s.Filename, l.Tokens)
	stmts := p.Parse()
	for _, err := range p.Errors {
		s.report(err)
	}
	if len(l.Errors) != 0 || len(p.Errors) != 0 {
		tracer().Infof("%s: %d scan and %d parse errors", s.Filename, len(l.Errors), len(p.Errors))
		return STATUS_STATIC_ERROR
	}
	s.traceProgram(l.Tokens, stmts)
	if s.Dump != nil {
		s.Dump(stmts)
	}
	defer s.interp.forget(stmts)
	r := resolver.New(s.Filename, s.interp)
	r.Resolve(stmts)
	if len(r.Errors) != 0 {
		for _, err := range r.Errors {
			s.report(err)
		}
		tracer().Infof("%s: %d resolver errors", s.Filename, len(r.Errors))
		return STATUS_STATIC_ERROR
	}
	if s.Echo && len(stmts) == 1 {
		if stmt, ok := stmts[0].(*parser.ExprStmt); ok {
			v, err := s.interp.Evaluate(stmt.Expr)
			if err != nil {
				s.report(err)
				return STATUS_RUNTIME_ERROR
			}
			fmt.Fprintln(s.out, v.String())
			return STATUS_OK
		}
	}
	if err := s.interp.Interpret(stmts); err != nil {
		s.report(err)
		return STATUS_RUNTIME_ERROR
	}
	return STATUS_OK
}

// traceProgram fingerprints the program, but only when it will be traced.
func (s *Session) traceProgram(tokens []lexer.Token, stmts []parser.Stmt) bool {
	if tracer().GetTraceLevel() < tracing.LevelDebug {
		return false
	}
	fp, err := parser.Fingerprint(tokens, stmts)
	if err != nil {
		tracer().Errorf("%v", err)
		return false
	}
	tracer().Debugf("%s: program %s, %d statements", s.Filename, fp, len(stmts))
	return true
}
