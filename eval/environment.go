package eval

import "fmt"

// Environment binds names to values. Closures keep a pointer to the
// environment active at their declaration, so environments are shared
// and outlive the blocks that created them.
type Environment struct {
	store map[string]Value
	outer *Environment
}

func NewEnvironment(outer *Environment) *Environment {
	return &Environment{
		store: map[string]Value{},
		outer: outer,
	}
}

// Define binds the given name to the given value, overwriting any
// existing binding in this environment.
func (e *Environment) Define(name string, value Value) {
	e.store[name] = value
}

// Get gets the given name from the environment, traversing
// the outer environments if it is not found.
func (e *Environment) Get(name string) (Value, bool) {
	for ; e != nil; e = e.outer {
		if v, ok := e.store[name]; ok {
			return v, true
		}
	}
	return nil, false
}

// Assign rebinds an existing name, searching outwards. It reports
// false if the name is not bound anywhere.
func (e *Environment) Assign(name string, value Value) bool {
	for ; e != nil; e = e.outer {
		if _, ok := e.store[name]; ok {
			e.store[name] = value
			return true
		}
	}
	return false
}

// ancestor returns the environment that is distance x
// away from the current environment.
func (e *Environment) ancestor(distance int) *Environment {
	for distance > 0 {
		distance--
		e = e.outer
	}
	return e
}

// GetAt gets the variable name at the environment that is distance x
// away from the current environment. The resolver guarantees the slot
// exists; a missing one is an internal fault.
func (e *Environment) GetAt(distance int, name string) Value {
	v, ok := e.ancestor(distance).store[name]
	if !ok {
		panic(fmt.Sprintf("eval: no '%s' at distance %d", name, distance))
	}
	return v
}

// AssignAt rebinds a resolved variable, see GetAt.
func (e *Environment) AssignAt(distance int, name string, value Value) {
	env := e.ancestor(distance)
	if _, ok := env.store[name]; !ok {
		panic(fmt.Sprintf("eval: no '%s' at distance %d", name, distance))
	}
	env.store[name] = value
}
