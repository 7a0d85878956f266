package eval

import (
	"fmt"
	"math"

	"lox/parser"
)

//go:generate stringer -type=ValueType

type ValueType uint8

const (
	_ = ValueType(iota)
	VT_NIL
	VT_BOOLEAN
	VT_NUMBER
	VT_STRING
	VT_FUNCTION
	VT_BUILTIN
	VT_CLASS
	VT_INSTANCE
)

// Value is the closed set of runtime values. Every value knows how to
// display itself, which is what print uses.
type Value interface {
	Type() ValueType
	String() string
}

// Callable is implemented by functions, natives and classes.
type Callable interface {
	Value
	Arity() int
	call(in *Interpreter, args []Value) (Value, error)
}

type Nil struct{}
type Boolean bool
type Number float64
type String string

var (
	NIL   = Nil{}
	TRUE  = Boolean(true)
	FALSE = Boolean(false)
)

// Function is a user-defined function or method, closed over the
// environment active where it was declared.
type Function struct {
	decl          *parser.Function
	closure       *Environment
	isInitializer bool
}

func newFunction(decl *parser.Function, closure *Environment, isInitializer bool) *Function {
	return &Function{
		decl:          decl,
		closure:       closure,
		isInitializer: isInitializer,
	}
}

// Builtin represents a native function.
type Builtin struct {
	name  string
	arity int
	fn    NativeFunc
}

type Class struct {
	Name       string
	superclass *Class
	methods    map[string]*Function
}

type Instance struct {
	class  *Class
	fields map[string]Value
}

func newInstance(class *Class) *Instance {
	return &Instance{
		class:  class,
		fields: map[string]Value{},
	}
}

func (v Nil) Type() ValueType       { return VT_NIL }
func (v Boolean) Type() ValueType   { return VT_BOOLEAN }
func (v Number) Type() ValueType    { return VT_NUMBER }
func (v String) Type() ValueType    { return VT_STRING }
func (v *Function) Type() ValueType { return VT_FUNCTION }
func (v *Builtin) Type() ValueType  { return VT_BUILTIN }
func (v *Class) Type() ValueType    { return VT_CLASS }
func (v *Instance) Type() ValueType { return VT_INSTANCE }

func (v Nil) String() string { return "nil" }
func (v Boolean) String() string {
	if v {
		return "true"
	}
	return "false"
}
func (v Number) String() string    { return parser.FormatNumber(float64(v)) }
func (v String) String() string    { return string(v) }
func (v *Function) String() string { return fmt.Sprintf("<fn %s>", v.decl.Name.Lexeme) }
func (v *Builtin) String() string  { return "<native fn>" }
func (v *Class) String() string    { return v.Name }
func (v *Instance) String() string { return v.class.Name + " instance" }

// isTruthy: nil and false are falsy, everything else is truthy.
func isTruthy(v Value) bool {
	switch v := v.(type) {
	case Nil:
		return false
	case Boolean:
		return bool(v)
	}
	return true
}

// isEqual compares by value; values of different types are never equal.
func isEqual(a, b Value) bool {
	if x, ok := a.(Number); ok {
		y, ok := b.(Number)
		return ok && (x == y || math.IsNaN(float64(x)) && math.IsNaN(float64(y)))
	}
	return a == b
}

// fromLiteral converts a scanned literal to a runtime value.
func fromLiteral(lit interface{}) Value {
	switch lit := lit.(type) {
	case nil:
		return NIL
	case bool:
		return Boolean(lit)
	case float64:
		return Number(lit)
	case string:
		return String(lit)
	}
	panic(fmt.Sprintf("eval: unknown literal %#v", lit))
}
