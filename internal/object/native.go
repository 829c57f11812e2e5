package object

// Variadic is the maximum arity reported by rest conventions.
const Variadic = -1

// Implementation is the native calling convention of a primitive. The set of
// conventions is closed: a primitive commits to exactly one of the types below
// when it is registered, matching the parameter shape of the Go function.
type Implementation interface {
	// Arity returns the accepted argument counts; max is Variadic for rest
	// conventions.
	Arity() (min, max int)
	Convention() string
	implementation()
}

// Eval hands back code for the evaluator to run. Used by primitives that are
// themselves control constructs.
type Eval func(args []Object) (*Code, error)

// Apply hands back another callable and its arguments so the call can be
// dispatched as a tail call.
type Apply func(args []Object) (*Procedure, []Object, error)

type (
	Native0 func() (Object, error)
	Native1 func(a Object) (Object, error)
	Native2 func(a, b Object) (Object, error)
	Native3 func(a, b, c Object) (Object, error)
	Native4 func(a, b, c, d Object) (Object, error)
)

// The O conventions take one optional trailing argument, passed as nil when
// the caller omits it.
type (
	Native0O func(opt Object) (Object, error)
	Native1O func(a, opt Object) (Object, error)
	Native2O func(a, b, opt Object) (Object, error)
	Native3O func(a, b, c, opt Object) (Object, error)
)

// The R conventions collect all remaining arguments into rest.
type (
	Native0R func(rest []Object) (Object, error)
	Native1R func(a Object, rest []Object) (Object, error)
	Native2R func(a, b Object, rest []Object) (Object, error)
	Native3R func(a, b, c Object, rest []Object) (Object, error)
)

func (Eval) Arity() (int, int)     { return 0, Variadic }
func (Apply) Arity() (int, int)    { return 0, Variadic }
func (Native0) Arity() (int, int)  { return 0, 0 }
func (Native1) Arity() (int, int)  { return 1, 1 }
func (Native2) Arity() (int, int)  { return 2, 2 }
func (Native3) Arity() (int, int)  { return 3, 3 }
func (Native4) Arity() (int, int)  { return 4, 4 }
func (Native0O) Arity() (int, int) { return 0, 1 }
func (Native1O) Arity() (int, int) { return 1, 2 }
func (Native2O) Arity() (int, int) { return 2, 3 }
func (Native3O) Arity() (int, int) { return 3, 4 }
func (Native0R) Arity() (int, int) { return 0, Variadic }
func (Native1R) Arity() (int, int) { return 1, Variadic }
func (Native2R) Arity() (int, int) { return 2, Variadic }
func (Native3R) Arity() (int, int) { return 3, Variadic }

func (Eval) Convention() string     { return "eval" }
func (Apply) Convention() string    { return "apply" }
func (Native0) Convention() string  { return "native0" }
func (Native1) Convention() string  { return "native1" }
func (Native2) Convention() string  { return "native2" }
func (Native3) Convention() string  { return "native3" }
func (Native4) Convention() string  { return "native4" }
func (Native0O) Convention() string { return "native0O" }
func (Native1O) Convention() string { return "native1O" }
func (Native2O) Convention() string { return "native2O" }
func (Native3O) Convention() string { return "native3O" }
func (Native0R) Convention() string { return "native0R" }
func (Native1R) Convention() string { return "native1R" }
func (Native2R) Convention() string { return "native2R" }
func (Native3R) Convention() string { return "native3R" }

func (Eval) implementation()     {}
func (Apply) implementation()    {}
func (Native0) implementation()  {}
func (Native1) implementation()  {}
func (Native2) implementation()  {}
func (Native3) implementation()  {}
func (Native4) implementation()  {}
func (Native0O) implementation() {}
func (Native1O) implementation() {}
func (Native2O) implementation() {}
func (Native3O) implementation() {}
func (Native0R) implementation() {}
func (Native1R) implementation() {}
func (Native2R) implementation() {}
func (Native3R) implementation() {}

// CallNative invokes a value-returning convention with already arity-checked
// arguments. It reports false for Eval and Apply, which the dispatcher
// handles itself.
func CallNative(impl Implementation, args []Object) (Object, bool, error) {
	opt := func(i int) Object {
		if i < len(args) {
			return args[i]
		}
		return nil
	}
	var (
		result Object
		err    error
	)
	switch fn := impl.(type) {
	case Native0:
		result, err = fn()
	case Native1:
		result, err = fn(args[0])
	case Native2:
		result, err = fn(args[0], args[1])
	case Native3:
		result, err = fn(args[0], args[1], args[2])
	case Native4:
		result, err = fn(args[0], args[1], args[2], args[3])
	case Native0O:
		result, err = fn(opt(0))
	case Native1O:
		result, err = fn(args[0], opt(1))
	case Native2O:
		result, err = fn(args[0], args[1], opt(2))
	case Native3O:
		result, err = fn(args[0], args[1], args[2], opt(3))
	case Native0R:
		result, err = fn(args)
	case Native1R:
		result, err = fn(args[0], args[1:])
	case Native2R:
		result, err = fn(args[0], args[1], args[2:])
	case Native3R:
		result, err = fn(args[0], args[1], args[2], args[3:])
	default:
		return nil, false, nil
	}
	return result, true, err
}
