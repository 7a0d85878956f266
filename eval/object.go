package eval

// ---------
// Functions
// ---------

func (f *Function) Arity() int { return len(f.decl.Params) }

func (f *Function) call(in *Interpreter, args []Value) (Value, error) {
	env := NewEnvironment(f.closure)
	for i, param := range f.decl.Params {
		env.Define(param.Lexeme, args[i])
	}
	ret, err := in.executeBlock(f.decl.Body, env)
	if err != nil {
		return nil, err
	}
	// init always produces the instance, even with a bare return.
	if f.isInitializer {
		return f.closure.GetAt(0, "this"), nil
	}
	if ret != nil {
		return ret.Value, nil
	}
	return NIL, nil
}

// bind returns a copy of the method whose closure has 'this' bound
// to the given instance.
func (f *Function) bind(instance *Instance) *Function {
	env := NewEnvironment(f.closure)
	env.Define("this", instance)
	tracer().Debugf("bind %s to %s", f, instance)
	return newFunction(f.decl, env, f.isInitializer)
}

// -------
// Natives
// -------

func (b *Builtin) Arity() int { return b.arity }

func (b *Builtin) call(in *Interpreter, args []Value) (Value, error) {
	tracer().Debugf("native %s(%d args)", b.name, len(args))
	return b.fn(args)
}

// -------
// Classes
// -------

// FindMethod looks up a method on the class, then its superclasses.
func (c *Class) FindMethod(name string) *Function {
	for ; c != nil; c = c.superclass {
		if m, ok := c.methods[name]; ok {
			return m
		}
	}
	return nil
}

// Arity of a class is the arity of its initializer, if any.
func (c *Class) Arity() int {
	if initializer := c.FindMethod("init"); initializer != nil {
		return initializer.Arity()
	}
	return 0
}

func (c *Class) call(in *Interpreter, args []Value) (Value, error) {
	instance := newInstance(c)
	if initializer := c.FindMethod("init"); initializer != nil {
		if _, err := initializer.bind(instance).call(in, args); err != nil {
			return nil, err
		}
	}
	return instance, nil
}

// ---------
// Instances
// ---------

// Get returns a field, or else a method bound to the instance.
func (i *Instance) Get(name string) (Value, bool) {
	if v, ok := i.fields[name]; ok {
		return v, true
	}
	if m := i.class.FindMethod(name); m != nil {
		return m.bind(i), true
	}
	return nil, false
}

// Set creates or overwrites a field.
func (i *Instance) Set(name string, value Value) {
	i.fields[name] = value
}
