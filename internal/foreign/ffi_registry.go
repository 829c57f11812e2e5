package foreign

import (
	"log/slog"
	"sort"

	"skein/internal/object"
)

// Registry holds the primitives a library makes available, keyed by the
// identifier they are registered under.
type Registry struct {
	procs map[string]*object.Procedure
}

func NewRegistry() *Registry {
	return &Registry{procs: map[string]*object.Procedure{}}
}

// Define registers impl under name and returns the new primitive. A later
// definition under the same name replaces the earlier one.
func (r *Registry) Define(name string, impl object.Implementation) *object.Procedure {
	proc := object.NewPrimitive(name, impl, nil)
	r.procs[name] = proc
	slog.Debug("registered primitive",
		slog.String("name", name),
		slog.String("convention", impl.Convention()))
	return proc
}

func (r *Registry) Lookup(name string) (*object.Procedure, bool) {
	proc, ok := r.procs[name]
	return proc, ok
}

func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.procs))
	for name := range r.procs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GetForeignFunctions returns the native implementations of the base
// library. eval compiles through ctx.
func GetForeignFunctions(ctx object.CompilationContext) map[string]object.Implementation {
	return map[string]object.Implementation{
		"car":    fnCar(),
		"cdr":    fnCdr(),
		"cons":   fnCons(),
		"list":   fnList(),
		"length": fnLength(),

		"vector":        fnVector(),
		"make-vector":   fnMakeVector(),
		"vector-ref":    fnVectorRef(),
		"vector-set!":   fnVectorSet(),
		"vector-length": fnVectorLength(),

		"box":      fnBox(),
		"unbox":    fnUnbox(),
		"set-box!": fnSetBox(),

		"+":        fnAdd(),
		"-":        fnSub(),
		"quotient": fnQuotient(),

		"procedure?": fnIsProcedure(),
		"apply":      fnApply(),
		"eval":       fnEval(ctx),
		"error":      fnError(),
		"raise":      fnRaise(),
	}
}

// Builtins registers the base library.
func Builtins(ctx object.CompilationContext) *Registry {
	r := NewRegistry()
	for name, impl := range GetForeignFunctions(ctx) {
		r.Define(name, impl)
	}
	return r
}
