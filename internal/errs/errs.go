// Package errs is the error vocabulary of the runtime. Every failure the
// lexer, parser, compiler or evaluator signals is one of five categories
// (lexical, syntax, eval, os, custom). All error values compare structurally,
// hash consistently with that comparison and render through one template:
//
//	#<kind| message: irritant, irritant>
//
// The ": irritants" part is omitted when there are none.
package errs

import (
	"errors"
	"hash"
	"hash/fnv"
	"strings"

	"skein/internal/object"
)

type ErrorType int

const (
	Lexical ErrorType = iota
	Syntax
	Eval
	OS
	Custom
)

var errorTypeNames = [...]string{"lexical error", "syntax error", "eval error", "os error", "custom error"}

func (t ErrorType) String() string { return errorTypeNames[t] }

// LispError is implemented by every error value of the taxonomy.
type LispError interface {
	error
	Type() ErrorType
	Kind() string
	Message() string
	Irritants() []object.Object
	// Equals never holds between values of different Type.
	Equals(other LispError) bool
	Hash() uint64
}

// Describe renders e with the shared template.
func Describe(e LispError) string {
	var out strings.Builder
	out.WriteString("#<")
	out.WriteString(e.Kind())
	out.WriteString("| ")
	out.WriteString(e.Message())
	if irritants := e.Irritants(); len(irritants) > 0 {
		out.WriteString(": ")
		for i, irritant := range irritants {
			if i > 0 {
				out.WriteString(", ")
			}
			out.WriteString(inspect(irritant))
		}
	}
	out.WriteString(">")
	return out.String()
}

// Equal compares the category first and then the variant.
func Equal(a, b LispError) bool {
	a, b = unbox(a), unbox(b)
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a.Type() != b.Type() {
		return false
	}
	return a.Equals(b)
}

// As extracts the taxonomy value from err, looking through wrapping.
func As(err error) (LispError, bool) {
	var e LispError
	if errors.As(err, &e) {
		return unbox(e), true
	}
	return nil, false
}

func unbox(e LispError) LispError {
	for {
		boxed, ok := e.(*AnyError)
		if !ok {
			return e
		}
		if boxed == nil {
			return nil
		}
		e = boxed.Err
	}
}

// isEqual backs the Is method of every concrete error so errors.Is uses
// structural equality.
func isEqual(self LispError, target error) bool {
	other, ok := target.(LispError)
	if !ok {
		return false
	}
	return Equal(self, other)
}

func newHash(t ErrorType, kind string) hash.Hash64 {
	h := fnv.New64a()
	h.Write([]byte{byte(t)})
	h.Write([]byte(kind))
	return h
}

func hashIrritants(h hash.Hash64, irritants []object.Object) {
	for _, irritant := range irritants {
		object.Hash(irritant, h)
	}
}

func equalIrritants(a, b []object.Object) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !object.Equal(a[i], b[i]) {
			return false
		}
	}
	return true
}

func inspect(o object.Object) string {
	if o == nil {
		return "#<undefined>"
	}
	return o.Inspect()
}
