package eval

import "time"

// =================
// Builtin functions
// =================

// NativeFunc implements a native function. Arguments have already been
// checked against the declared arity. A returned error which is not a
// *RuntimeError is reported at the call site.
type NativeFunc func(args []Value) (Value, error)

// DefineNative binds a native function in the global environment.
func (in *Interpreter) DefineNative(name string, arity int, fn NativeFunc) {
	in.globals.Define(name, &Builtin{
		name:  name,
		arity: arity,
		fn:    fn,
	})
	tracer().Debugf("native %s/%d", name, arity)
}

func setupBuiltins(in *Interpreter) {
	in.DefineNative("clock", 0, bi_clock)
}

// -----
// clock
// -----
func bi_clock(args []Value) (Value, error) {
	return Number(float64(time.Now().UnixNano()) / float64(time.Second)), nil
}
