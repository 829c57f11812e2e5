package object

import (
	"errors"
	"regexp"
	"strings"
	"testing"
)

var lowerHex = regexp.MustCompile(`^[0-9a-f]+$`)

type testState struct {
	machine uint64
	marks   []Tag
}

func (s *testState) Mark(tag Tag)      { s.marks = append(s.marks, tag) }
func (s *testState) MachineID() uint64 { return s.machine }

type testContext struct {
	symbols  *SymbolTable
	compiled Object
}

func (c *testContext) Intern(name string) *Symbol { return c.symbols.Intern(name) }
func (c *testContext) Compile(exprs Object) (*Code, error) {
	c.compiled = exprs
	return &Code{Instructions: []Instruction{{Op: "return"}}}, nil
}

func TestProcedureNames(t *testing.T) {
	car := NewPrimitive("car", Native1(func(a Object) (Object, error) { return a, nil }), nil)
	if car.Name() != "car" {
		t.Errorf("expected primitive name car, got %s", car.Name())
	}

	anon := NewClosure("", nil, &Code{})
	if !lowerHex.MatchString(anon.Name()) {
		t.Errorf("expected lowercase hex for anonymous closure, got %q", anon.Name())
	}

	foo := NewClosure("foo", nil, &Code{})
	if !strings.HasPrefix(foo.Name(), "foo@") || !lowerHex.MatchString(strings.TrimPrefix(foo.Name(), "foo@")) {
		t.Errorf("expected foo@<hex>, got %q", foo.Name())
	}

	cont := NewContinuation(&testState{})
	trans := NewTransformer(&SyntaxRules{})
	for _, p := range []*Procedure{cont, trans} {
		if !lowerHex.MatchString(p.Name()) {
			t.Errorf("expected lowercase hex for %s, got %q", p.Kind(), p.Name())
		}
	}

	if anon.Name() == NewClosure("", nil, &Code{}).Name() {
		t.Errorf("anonymous closures share a name")
	}
}

func TestProcedureDescription(t *testing.T) {
	car := NewPrimitive("car", Native1(func(a Object) (Object, error) { return a, nil }), nil)
	if car.Description() != "proc#car" {
		t.Errorf("expected proc#car, got %s", car.Description())
	}
	anon := NewClosure("", nil, nil)
	first := anon.Description()
	if first != "proc#"+anon.Name() {
		t.Errorf("unexpected description %s", first)
	}
	if anon.Description() != first {
		t.Errorf("description is not deterministic")
	}
}

func TestProcedureVariantAccessors(t *testing.T) {
	captured := []Object{NewFixnum(1)}
	code := &Code{}
	closure := NewClosure("f", captured, code)

	if _, _, ok := closure.Implementation(); ok {
		t.Errorf("closure reported a native implementation")
	}
	got, gotCode, ok := closure.Captured()
	if !ok || len(got) != 1 || gotCode != code {
		t.Errorf("closure payload not returned")
	}

	state := &testState{machine: 7}
	cont := NewContinuation(state)
	if s, ok := cont.State(); !ok || s.MachineID() != 7 {
		t.Errorf("continuation state not returned")
	}

	rules := &SyntaxRules{Name: Intern("my-if")}
	trans := NewTransformer(rules)
	if r, ok := trans.Rules(); !ok || r != rules {
		t.Errorf("transformer rules not returned")
	}
}

func TestClosureMarkPropagates(t *testing.T) {
	inner := NewClosure("inner", []Object{&Box{Value: NewFixnum(1)}}, &Code{})
	box := &Box{Value: NewFixnum(2)}
	constant := &Vector{}
	code := &Code{Constants: []Object{constant}, Fragments: []*Code{{}}}
	outer := NewClosure("outer", []Object{box, inner}, code)

	outer.Mark(3)

	if box.Tag() != 3 {
		t.Errorf("captured box not marked")
	}
	if inner.Tag() != 3 {
		t.Errorf("captured closure not marked")
	}
	innerBox := inner.captured[0].(*Box)
	if innerBox.Tag() != 3 {
		t.Errorf("mark did not reach values captured by a captured closure")
	}
	if code.Tag() != 3 || constant.Tag() != 3 || code.Fragments[0].Tag() != 3 {
		t.Errorf("code was not marked")
	}
}

func TestMarkHandlesCycles(t *testing.T) {
	box := &Box{}
	closure := NewClosure("loop", []Object{box}, &Code{})
	box.Value = closure

	closure.Mark(1)
	if box.Tag() != 1 || closure.Tag() != 1 {
		t.Errorf("cycle not marked")
	}
}

func TestPrimitiveMarkDoesNotPropagate(t *testing.T) {
	code := &Code{}
	prim := NewPrimitive("eval", Eval(func(args []Object) (*Code, error) { return code, nil }), nil)
	prim.Mark(5)
	if code.Tag() != 0 {
		t.Errorf("primitive mark propagated")
	}

	state := &testState{}
	NewContinuation(state).Mark(5)
	if len(state.marks) != 0 {
		t.Errorf("continuation mark propagated into the machine state")
	}

	pattern := &Vector{}
	NewTransformer(&SyntaxRules{Patterns: []Object{pattern}}).Mark(5)
	if pattern.Tag() != 0 {
		t.Errorf("transformer mark propagated")
	}
}

func TestSyntaxPrimitiveCompilesRebuiltForm(t *testing.T) {
	ctx := &testContext{symbols: NewSymbolTable()}
	compile := func(ctx CompilationContext, form Object, tail bool) (bool, error) {
		return tail, nil
	}
	when := NewSyntaxPrimitive("when", compile, ctx)

	impl, compiler, ok := when.Implementation()
	if !ok || compiler == nil {
		t.Fatalf("expected primitive with a form compiler")
	}
	eval, ok := impl.(Eval)
	if !ok {
		t.Fatalf("expected eval convention, got %s", impl.Convention())
	}
	if _, err := eval([]Object{TRUE, NewFixnum(1)}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := List(List(ctx.symbols.Intern("when"), TRUE, NewFixnum(1)))
	if !Equal(ctx.compiled, want) {
		t.Errorf("expected %s, got %s", want.Inspect(), ctx.compiled.Inspect())
	}
}

func TestCallNative(t *testing.T) {
	var seen Object = VOID
	opt := Native1O(func(a, o Object) (Object, error) {
		seen = o
		return a, nil
	})
	if _, handled, _ := CallNative(opt, []Object{TRUE}); !handled || seen != nil {
		t.Errorf("omitted optional argument should arrive as nil")
	}

	rest := Native1R(func(a Object, rest []Object) (Object, error) {
		return NewFixnum(int64(len(rest))), nil
	})
	got, _, _ := CallNative(rest, []Object{TRUE, TRUE, TRUE})
	if !Equal(got, NewFixnum(2)) {
		t.Errorf("expected 2 rest arguments, got %s", got.Inspect())
	}

	boom := errors.New("boom")
	failing := Native0(func() (Object, error) { return nil, boom })
	if _, _, err := CallNative(failing, nil); err != boom {
		t.Errorf("expected native error to pass through, got %v", err)
	}

	if _, handled, _ := CallNative(Apply(nil), nil); handled {
		t.Errorf("apply convention should be left to the dispatcher")
	}
}

func TestConventionArity(t *testing.T) {
	cases := []struct {
		impl     Implementation
		min, max int
	}{
		{Native0(nil), 0, 0},
		{Native2(nil), 2, 2},
		{Native4(nil), 4, 4},
		{Native2O(nil), 2, 3},
		{Native3R(nil), 3, Variadic},
		{Eval(nil), 0, Variadic},
	}
	for _, c := range cases {
		t.Run(c.impl.Convention(), func(t *testing.T) {
			min, max := c.impl.Arity()
			if min != c.min || max != c.max {
				t.Errorf("expected (%d, %d), got (%d, %d)", c.min, c.max, min, max)
			}
		})
	}
}

func TestMarkWithZeroTag(t *testing.T) {
	box := &Box{Value: NewFixnum(1)}
	NewClosure("fresh", []Object{box}, &Code{}).Mark(0)
	if !box.marked || box.Tag() != 0 {
		t.Errorf("first mark with tag 0 did not reach the captured box")
	}

	wrapped := &Box{}
	wrapped.Mark(255)
	closure := NewClosure("wrapped", []Object{wrapped}, &Code{})
	closure.Mark(0)
	if wrapped.Tag() != 0 {
		t.Errorf("mark after tag wraparound did not reach the captured box, tag %d", wrapped.Tag())
	}
}
