package main

import (
	"context"
	"fmt"
	"io"
	"sync/atomic"

	"skein/internal/errs"
	"skein/internal/evaluator"
	"skein/internal/foreign"
	"skein/internal/journal"
	"skein/internal/object"
)

var nextMachineID atomic.Uint64

// quoteMachine runs only code produced by quoteCompiler, which is a single
// constant. Closures and continuations never reach it from the builtins.
type quoteMachine struct {
	id uint64
}

func newQuoteMachine() *quoteMachine {
	return &quoteMachine{id: nextMachineID.Add(1)}
}

func (m *quoteMachine) ID() uint64 { return m.id }

func (m *quoteMachine) Execute(code *object.Code) (object.Object, error) {
	if len(code.Constants) == 0 {
		return object.VOID, nil
	}
	return code.Constants[0], nil
}

func (m *quoteMachine) Invoke(closure *object.Procedure, _ []object.Object) (object.Object, error) {
	return nil, errs.NonApplicativeValue(closure)
}

func (m *quoteMachine) Resume(state object.VMState, _ []object.Object) (object.Object, error) {
	return nil, errs.IllegalContinuationApplication(object.NewContinuation(state), m.id)
}

// quoteCompiler compiles an expression list to code returning its last
// expression unevaluated.
type quoteCompiler struct {
	symbols *object.SymbolTable
}

func (c *quoteCompiler) Intern(name string) *object.Symbol { return c.symbols.Intern(name) }

func (c *quoteCompiler) Compile(exprs object.Object) (*object.Code, error) {
	elements, ok := object.ListToSlice(exprs)
	if !ok {
		return nil, errs.MalformedArgumentList(exprs)
	}
	if len(elements) == 0 {
		return nil, errs.EmptySyntax
	}
	return &object.Code{
		Instructions: []object.Instruction{{Op: "push-constant"}, {Op: "return"}},
		Constants:    []object.Object{elements[len(elements)-1]},
	}, nil
}

// survey calls every builtin with too few arguments and with arguments of
// the wrong type, and records whatever fails.
func survey(ctx context.Context, j *journal.Journal, out io.Writer) error {
	compiler := &quoteCompiler{symbols: object.NewSymbolTable()}
	registry := foreign.Builtins(compiler)
	ev := evaluator.New(newQuoteMachine())

	for _, name := range registry.Names() {
		proc, _ := registry.Lookup(name)
		for _, args := range malformedArguments(proc) {
			_, err := ev.Apply(proc, args)
			if err == nil {
				continue
			}
			entry, fresh, rerr := j.Record(ctx, err)
			if rerr != nil {
				return rerr
			}
			marker := " "
			if fresh {
				marker = "+"
			}
			fmt.Fprintf(out, "%s %-14s %s\n", marker, name, entry.Description)
		}
	}
	return nil
}

func malformedArguments(proc *object.Procedure) [][]object.Object {
	impl, _, _ := proc.Implementation()
	lower, _ := impl.Arity()
	wrong := make([]object.Object, max(lower, 1))
	for i := range wrong {
		wrong[i] = object.TRUE
	}
	return [][]object.Object{nil, wrong}
}
