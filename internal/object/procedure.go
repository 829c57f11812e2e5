package object

import (
	"strconv"
	"sync/atomic"
)

type ProcedureKind int

const (
	PrimitiveKind ProcedureKind = iota
	ClosureKind
	ContinuationKind
	TransformerKind
)

var procedureKindNames = [...]string{"primitive", "closure", "continuation", "transformer"}

func (k ProcedureKind) String() string { return procedureKindNames[k] }

var nextProcedureID atomic.Uint64

// Procedure is every callable value: built-in primitives, user closures,
// first-class continuations and macro transformers. The variant payload is
// fixed at construction; only the values it references may be mutated
// elsewhere.
type Procedure struct {
	Managed
	id   uint64
	kind ProcedureKind

	name     string
	impl     Implementation
	compiler FormCompiler

	captured []Object
	code     *Code

	state VMState
	rules *SyntaxRules
}

func newProcedure(kind ProcedureKind) *Procedure {
	return &Procedure{id: nextProcedureID.Add(1), kind: kind}
}

// NewPrimitive creates a built-in procedure registered under name. compiler
// is optional and lets the compiler treat calls as a special form.
func NewPrimitive(name string, impl Implementation, compiler FormCompiler) *Procedure {
	p := newProcedure(PrimitiveKind)
	p.name = name
	p.impl = impl
	p.compiler = compiler
	return p
}

// NewSyntaxPrimitive creates a primitive whose calls are compiled by compile.
// Applying it as a first-class value rebuilds the form (name args...) and
// compiles it through ctx.
func NewSyntaxPrimitive(name string, compile FormCompiler, ctx CompilationContext) *Procedure {
	indirect := Eval(func(args []Object) (*Code, error) {
		form := Cons(ctx.Intern(name), List(args...))
		return ctx.Compile(List(form))
	})
	return NewPrimitive(name, indirect, compile)
}

// NewClosure creates a user procedure. An empty name marks an anonymous
// closure.
func NewClosure(name string, captured []Object, code *Code) *Procedure {
	p := newProcedure(ClosureKind)
	p.name = name
	p.captured = captured
	p.code = code
	return p
}

func NewContinuation(state VMState) *Procedure {
	p := newProcedure(ContinuationKind)
	p.state = state
	return p
}

func NewTransformer(rules *SyntaxRules) *Procedure {
	p := newProcedure(TransformerKind)
	p.rules = rules
	return p
}

func (p *Procedure) ID() uint64          { return p.id }
func (p *Procedure) Kind() ProcedureKind { return p.kind }

// Implementation returns the native convention and optional form compiler of
// a primitive.
func (p *Procedure) Implementation() (Implementation, FormCompiler, bool) {
	return p.impl, p.compiler, p.kind == PrimitiveKind
}

// Captured returns the lexical values and code of a closure.
func (p *Procedure) Captured() ([]Object, *Code, bool) {
	return p.captured, p.code, p.kind == ClosureKind
}

func (p *Procedure) State() (VMState, bool) {
	return p.state, p.kind == ContinuationKind
}

func (p *Procedure) Rules() (*SyntaxRules, bool) {
	return p.rules, p.kind == TransformerKind
}

// Name returns a unique, deterministic label: the registered name of a
// primitive, "name@hex" for a named closure, and the identity in hex for
// everything else.
func (p *Procedure) Name() string {
	hex := strconv.FormatUint(p.id, 16)
	switch p.kind {
	case PrimitiveKind:
		return p.name
	case ClosureKind:
		if p.name != "" {
			return p.name + "@" + hex
		}
	}
	return hex
}

func (p *Procedure) Description() string { return "proc#" + p.Name() }

func (p *Procedure) Type() ObjectType { return PROCEDURE_OBJ }
func (p *Procedure) Inspect() string  { return "#<" + p.Description() + ">" }
func (p *Procedure) String() string   { return p.Description() }

// Mark traces a closure's captured values and code. Primitives are process
// wide, continuation states trace themselves through the machine and
// transformer rules belong to their defining form, so none of those
// propagate.
func (p *Procedure) Mark(tag Tag) {
	if !p.retag(tag) {
		return
	}
	if p.kind == ClosureKind {
		for _, value := range p.captured {
			Mark(value, tag)
		}
		if p.code != nil {
			p.code.Mark(tag)
		}
	}
}
