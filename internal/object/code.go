package object

import (
	"fmt"
	"strings"
)

// Instruction is a single opcode with its immediate operand.
type Instruction struct {
	Op  string
	Arg int
}

func (i Instruction) String() string {
	return fmt.Sprintf("%s %d", i.Op, i.Arg)
}

// Code is a compiled-code handle. The compiler produces it and a closure owns
// it; the constants and fragments it references must survive a trace.
type Code struct {
	Managed
	Instructions []Instruction
	Constants    []Object
	Fragments    []*Code
}

func (c *Code) Mark(tag Tag) {
	if c.retag(tag) {
		for _, constant := range c.Constants {
			Mark(constant, tag)
		}
		for _, fragment := range c.Fragments {
			fragment.Mark(tag)
		}
	}
}

func (c *Code) String() string {
	lines := make([]string, 0, len(c.Instructions))
	for n, instr := range c.Instructions {
		lines = append(lines, fmt.Sprintf("%4d: %s", n, instr))
	}
	return strings.Join(lines, "\n")
}

// VMState is an evaluator snapshot captured by a continuation. It traces
// itself and remembers which machine produced it.
type VMState interface {
	Traceable
	MachineID() uint64
}

// CompilationContext is the part of the compiler a syntax-aware primitive
// needs: interning the primitive's own name and compiling a rebuilt form.
type CompilationContext interface {
	Intern(name string) *Symbol
	Compile(exprs Object) (*Code, error)
}

// FormCompiler compiles a special form in place of a regular call. It
// reports whether the form left its value in tail position.
type FormCompiler func(ctx CompilationContext, form Object, tail bool) (bool, error)

// SyntaxRules is the rule set of a syntax-rules transformer.
type SyntaxRules struct {
	Name      *Symbol
	Ellipsis  *Symbol
	Literals  []*Symbol
	Patterns  []Object
	Templates []Object
}

func (r *SyntaxRules) String() string {
	name := "anonymous"
	if r.Name != nil {
		name = r.Name.Name
	}
	return fmt.Sprintf("syntax-rules %s (%d rules)", name, len(r.Patterns))
}
