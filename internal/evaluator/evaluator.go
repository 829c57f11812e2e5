package evaluator

import (
	"log/slog"

	"skein/internal/errs"
	"skein/internal/object"
)

// Machine is the virtual machine the evaluator hands compiled work to.
type Machine interface {
	ID() uint64
	// Execute runs code returned by an Eval-convention primitive.
	Execute(code *object.Code) (object.Object, error)
	// Invoke runs a closure with its arguments.
	Invoke(closure *object.Procedure, args []object.Object) (object.Object, error)
	// Resume discards the current dynamic extent and continues at the
	// capture point of state, delivering args there.
	Resume(state object.VMState, args []object.Object) (object.Object, error)
}

// Evaluator dispatches calls on the variant of the callee.
type Evaluator struct {
	machine Machine
	log     *slog.Logger
}

func New(machine Machine) *Evaluator {
	return &Evaluator{machine: machine, log: slog.Default().With(slog.String("component", "evaluator"))}
}

func (e *Evaluator) Machine() Machine { return e.machine }

// Apply calls fn with args. Apply-convention primitives are trampolined: the
// callable and arguments they return are dispatched in the same loop, so a
// chain of tail calls runs without growing the Go stack.
func (e *Evaluator) Apply(fn object.Object, args []object.Object) (object.Object, error) {
	for {
		proc, ok := fn.(*object.Procedure)
		if !ok {
			return nil, errs.NonApplicativeValue(fn)
		}

		e.log.Debug("dispatching call",
			slog.String("procedure", proc.Name()),
			slog.String("kind", proc.Kind().String()),
			slog.Int("argument-count", len(args)))

		switch proc.Kind() {
		case object.PrimitiveKind:
			impl, _, _ := proc.Implementation()
			if err := checkArity(impl, args); err != nil {
				return nil, err
			}
			switch native := impl.(type) {
			case object.Eval:
				code, err := native(args)
				if err != nil {
					return nil, raise(err)
				}
				result, err := e.machine.Execute(code)
				return result, raise(err)
			case object.Apply:
				next, nextArgs, err := native(args)
				if err != nil {
					return nil, raise(err)
				}
				if next == nil {
					return nil, errs.NonApplicativeValue(object.VOID)
				}
				fn, args = next, nextArgs
				continue
			}
			result, _, err := object.CallNative(impl, args)
			if err != nil {
				return nil, raise(err)
			}
			return result, nil

		case object.ClosureKind:
			result, err := e.machine.Invoke(proc, args)
			return result, raise(err)

		case object.ContinuationKind:
			state, _ := proc.State()
			if state == nil || state.MachineID() != e.machine.ID() {
				e.log.Warn("continuation applied outside its machine",
					slog.String("procedure", proc.Name()),
					slog.Uint64("machine", e.machine.ID()))
				return nil, errs.IllegalContinuationApplication(proc, e.machine.ID())
			}
			result, err := e.machine.Resume(state, args)
			return result, raise(err)

		default:
			return nil, errs.NonApplicativeValue(proc)
		}
	}
}

// checkArity validates the argument count against a native convention.
func checkArity(impl object.Implementation, args []object.Object) error {
	min, max := impl.Arity()
	n := len(args)
	switch {
	case min == max && n != min:
		return errs.ArgumentCountError(min, object.List(args...))
	case n < min:
		return errs.LeastArgumentCountError(min, object.List(args...))
	case max != object.Variadic && n > max:
		return errs.ArgumentCountError(max, object.List(args...))
	}
	return nil
}

// raise converts anything that is not already part of the taxonomy into an
// os error.
func raise(err error) error {
	if err == nil {
		return nil
	}
	return errs.FromHost(err)
}
