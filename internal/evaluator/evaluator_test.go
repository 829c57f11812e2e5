package evaluator

import (
	"errors"
	"testing"

	"skein/internal/errs"
	"skein/internal/object"
)

type testState struct{ machine uint64 }

func (s *testState) Mark(object.Tag)   {}
func (s *testState) MachineID() uint64 { return s.machine }

type testMachine struct {
	id       uint64
	executed []*object.Code
	invoked  []*object.Procedure
	resumed  []object.VMState
}

func (m *testMachine) ID() uint64 { return m.id }

func (m *testMachine) Execute(code *object.Code) (object.Object, error) {
	m.executed = append(m.executed, code)
	return object.NewFixnum(int64(len(code.Instructions))), nil
}

func (m *testMachine) Invoke(closure *object.Procedure, args []object.Object) (object.Object, error) {
	m.invoked = append(m.invoked, closure)
	return object.List(args...), nil
}

func (m *testMachine) Resume(state object.VMState, args []object.Object) (object.Object, error) {
	m.resumed = append(m.resumed, state)
	if len(args) == 1 {
		return args[0], nil
	}
	return object.List(args...), nil
}

func fix(n int64) object.Object { return object.NewFixnum(n) }

func pair() *object.Procedure {
	return object.NewPrimitive("pair", object.Native2(func(a, b object.Object) (object.Object, error) {
		return object.Cons(a, b), nil
	}), nil)
}

func TestApplyArity(t *testing.T) {
	ev := New(&testMachine{id: 1})
	opt := object.NewPrimitive("opt", object.Native1O(func(a, b object.Object) (object.Object, error) {
		if b == nil {
			return a, nil
		}
		return b, nil
	}), nil)
	rest := object.NewPrimitive("rest", object.Native1R(func(a object.Object, r []object.Object) (object.Object, error) {
		return object.NewFixnum(int64(len(r))), nil
	}), nil)

	tests := []struct {
		name     string
		fn       *object.Procedure
		args     []object.Object
		expected object.Object
		err      error
	}{
		{"fixed exact", pair(), []object.Object{fix(1), fix(2)}, object.Cons(fix(1), fix(2)), nil},
		{"fixed too few", pair(), []object.Object{fix(1)}, nil, errs.ArgumentCountError(2, object.List(fix(1)))},
		{"fixed too many", pair(), []object.Object{fix(1), fix(2), fix(3)}, nil,
			errs.ArgumentCountError(2, object.List(fix(1), fix(2), fix(3)))},
		{"optional absent", opt, []object.Object{fix(1)}, fix(1), nil},
		{"optional present", opt, []object.Object{fix(1), fix(2)}, fix(2), nil},
		{"optional too few", opt, nil, nil, errs.LeastArgumentCountError(1, object.NULL)},
		{"optional too many", opt, []object.Object{fix(1), fix(2), fix(3)}, nil,
			errs.ArgumentCountError(2, object.List(fix(1), fix(2), fix(3)))},
		{"rest empty", rest, []object.Object{fix(1)}, fix(0), nil},
		{"rest many", rest, []object.Object{fix(1), fix(2), fix(3)}, fix(2), nil},
		{"rest too few", rest, nil, nil, errs.LeastArgumentCountError(1, object.NULL)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ev.Apply(tt.fn, tt.args)
			if tt.err != nil {
				if !errors.Is(err, tt.err) {
					t.Fatalf("expected %v, got %v", tt.err, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !object.Equal(result, tt.expected) {
				t.Errorf("expected %s, got %s", tt.expected.Inspect(), result.Inspect())
			}
		})
	}
}

func TestApplyTrampoline(t *testing.T) {
	ev := New(&testMachine{id: 1})
	target := pair()
	depth := 0
	var bounce *object.Procedure
	bounce = object.NewPrimitive("bounce", object.Apply(func(args []object.Object) (*object.Procedure, []object.Object, error) {
		depth++
		if depth < 10000 {
			return bounce, args, nil
		}
		return target, args, nil
	}), nil)

	result, err := ev.Apply(bounce, []object.Object{fix(1), fix(2)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !object.Equal(result, object.Cons(fix(1), fix(2))) {
		t.Errorf("unexpected result %s", result.Inspect())
	}
	if depth != 10000 {
		t.Errorf("expected 10000 bounces, got %d", depth)
	}
}

func TestApplyNilCallee(t *testing.T) {
	ev := New(&testMachine{id: 1})
	broken := object.NewPrimitive("broken", object.Apply(func([]object.Object) (*object.Procedure, []object.Object, error) {
		return nil, nil, nil
	}), nil)
	_, err := ev.Apply(broken, nil)
	if !errors.Is(err, errs.NonApplicativeValue(object.VOID)) {
		t.Errorf("expected non-applicative value, got %v", err)
	}
}

func TestApplyEvalConvention(t *testing.T) {
	m := &testMachine{id: 1}
	ev := New(m)
	code := &object.Code{Instructions: []object.Instruction{{Op: "push"}, {Op: "return"}}}
	eval := object.NewPrimitive("eval", object.Eval(func([]object.Object) (*object.Code, error) {
		return code, nil
	}), nil)

	result, err := ev.Apply(eval, []object.Object{fix(1)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(m.executed) != 1 || m.executed[0] != code {
		t.Fatalf("expected the compiled code to be executed once")
	}
	if !object.Equal(result, fix(2)) {
		t.Errorf("unexpected result %s", result.Inspect())
	}
}

func TestApplyClosure(t *testing.T) {
	m := &testMachine{id: 1}
	ev := New(m)
	closure := object.NewClosure("f", nil, &object.Code{})
	result, err := ev.Apply(closure, []object.Object{fix(1)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(m.invoked) != 1 || m.invoked[0] != closure {
		t.Errorf("closure was not invoked")
	}
	if !object.Equal(result, object.List(fix(1))) {
		t.Errorf("unexpected result %s", result.Inspect())
	}
}

func TestApplyContinuation(t *testing.T) {
	m := &testMachine{id: 1}
	ev := New(m)

	own := object.NewContinuation(&testState{machine: 1})
	result, err := ev.Apply(own, []object.Object{fix(5)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !object.Equal(result, fix(5)) || len(m.resumed) != 1 {
		t.Errorf("continuation was not resumed")
	}

	foreign := object.NewContinuation(&testState{machine: 2})
	_, err = ev.Apply(foreign, []object.Object{fix(5)})
	if !errors.Is(err, errs.IllegalContinuationApplication(foreign, 1)) {
		t.Errorf("expected illegal continuation application, got %v", err)
	}
	if len(m.resumed) != 1 {
		t.Errorf("foreign continuation must not resume")
	}
}

func TestApplyNonApplicative(t *testing.T) {
	ev := New(&testMachine{id: 1})
	trans := object.NewTransformer(&object.SyntaxRules{})

	for _, fn := range []object.Object{fix(3), trans} {
		_, err := ev.Apply(fn, nil)
		if !errors.Is(err, errs.NonApplicativeValue(fn)) {
			t.Errorf("expected non-applicative value for %s, got %v", fn.Inspect(), err)
		}
	}
}

func TestApplyWrapsHostErrors(t *testing.T) {
	ev := New(&testMachine{id: 1})
	failing := object.NewPrimitive("failing", object.Native0(func() (object.Object, error) {
		return nil, errors.New("disk on fire")
	}), nil)

	_, err := ev.Apply(failing, nil)
	lerr, ok := errs.As(err)
	if !ok {
		t.Fatalf("expected a taxonomy error, got %T", err)
	}
	if lerr.Type() != errs.OS {
		t.Errorf("expected os error, got %s", lerr.Type())
	}
}
