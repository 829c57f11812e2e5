package errs

import "skein/internal/object"

type SyntaxError int

const (
	EmptySyntax SyntaxError = iota
	ClosingParenthesisMissing
	UnexpectedClosingParenthesis
	UnexpectedDot
	NotAByteValue
	SyntaxNotYetSupported
)

var syntaxMessages = [...]string{
	EmptySyntax:                  "empty input",
	ClosingParenthesisMissing:    "closing parenthesis missing",
	UnexpectedClosingParenthesis: "unexpected closing parenthesis",
	UnexpectedDot:                "unexpected dot",
	NotAByteValue:                "bytevector element not a byte",
	SyntaxNotYetSupported:        "syntax not yet supported",
}

// SyntaxErrors lists every case.
func SyntaxErrors() []SyntaxError {
	cases := make([]SyntaxError, len(syntaxMessages))
	for i := range cases {
		cases[i] = SyntaxError(i)
	}
	return cases
}

func (e SyntaxError) Type() ErrorType            { return Syntax }
func (e SyntaxError) Kind() string               { return Syntax.String() }
func (e SyntaxError) Message() string            { return syntaxMessages[e] }
func (e SyntaxError) Irritants() []object.Object { return nil }
func (e SyntaxError) Error() string              { return Describe(e) }
func (e SyntaxError) Is(target error) bool       { return isEqual(e, target) }

func (e SyntaxError) Equals(other LispError) bool {
	o, ok := unbox(other).(SyntaxError)
	return ok && o == e
}

func (e SyntaxError) Hash() uint64 {
	h := newHash(Syntax, "")
	h.Write([]byte{byte(e)})
	return h.Sum64()
}
