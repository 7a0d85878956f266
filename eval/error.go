package eval

import (
	"bytes"
	"fmt"

	"lox/lexer"
)

// RuntimeError is a user-facing error raised while executing. Trace
// lists the active call frames, innermost first.
type RuntimeError struct {
	Token   lexer.Token
	Message string
	Trace   []string
}

func (e *RuntimeError) Error() string { return e.String() }
func (e *RuntimeError) String() string {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "%s\n[line %d]", e.Message, e.Token.Line)
	for _, frame := range e.Trace {
		buf.WriteString("\n  in ")
		buf.WriteString(frame)
	}
	return buf.String()
}

// Return carries the value of a return statement up to the function
// call that executes the body. It is not an error.
type Return struct {
	Value Value
}

// err creates a runtime error at the given token, capturing the
// current call stack.
func (in *Interpreter) err(tok lexer.Token, format string, args ...interface{}) *RuntimeError {
	trace := make([]string, 0, in.frames.Size())
	for _, f := range in.frames.Values() { // LIFO order
		trace = append(trace, f.(Callable).String())
	}
	e := &RuntimeError{
		Token:   tok,
		Message: fmt.Sprintf(format, args...),
		Trace:   trace,
	}
	tracer().Debugf("runtime error at line %d: %s", tok.Line, e.Message)
	return e
}
