package errs

import "skein/internal/object"

type LexicalError int

const (
	EmptyInput LexicalError = iota
	MalformedIdentifier
	BrokenIdentifierEncoding
	BrokenNumberEncoding
	NumberExpected
	MalformedFloatLiteral
	MalformedComplexLiteral
	MalformedStringLiteral
	MalformedCharacterLiteral
	UnknownCharacterLiteral
	IncompleteCharacterLiteral
	IllegalCharacter
	IllegalHexCharacter
	IllegalEscapeSequence
	IllegalEndOfLine
	TokenNotYetSupported
	DivisionByZeroLiteral
	ExactComplexNumbersUnsupported
)

var lexicalMessages = [...]string{
	EmptyInput:                     "no input available",
	MalformedIdentifier:            "malformed identifier",
	BrokenIdentifierEncoding:       "broken identifier encoding",
	BrokenNumberEncoding:           "broken number encoding",
	NumberExpected:                 "expected a number",
	MalformedFloatLiteral:          "malformed floating point number literal",
	MalformedComplexLiteral:        "malformed complex number literal",
	MalformedStringLiteral:         "malformed string literal",
	MalformedCharacterLiteral:      "malformed character literal",
	UnknownCharacterLiteral:        "unknown character literal",
	IncompleteCharacterLiteral:     "incomplete character literal",
	IllegalCharacter:               "illegal character",
	IllegalHexCharacter:            "illegal hex character",
	IllegalEscapeSequence:          "illegal escape sequence",
	IllegalEndOfLine:               "illegal end of line",
	TokenNotYetSupported:           "token not yet supported",
	DivisionByZeroLiteral:          "division by zero in number literal",
	ExactComplexNumbersUnsupported: "exact complex numbers are not supported",
}

// LexicalErrors lists every case.
func LexicalErrors() []LexicalError {
	cases := make([]LexicalError, len(lexicalMessages))
	for i := range cases {
		cases[i] = LexicalError(i)
	}
	return cases
}

func (e LexicalError) Type() ErrorType            { return Lexical }
func (e LexicalError) Kind() string               { return Lexical.String() }
func (e LexicalError) Message() string            { return lexicalMessages[e] }
func (e LexicalError) Irritants() []object.Object { return nil }
func (e LexicalError) Error() string              { return Describe(e) }
func (e LexicalError) Is(target error) bool       { return isEqual(e, target) }

func (e LexicalError) Equals(other LispError) bool {
	o, ok := unbox(other).(LexicalError)
	return ok && o == e
}

func (e LexicalError) Hash() uint64 {
	h := newHash(Lexical, "")
	h.Write([]byte{byte(e)})
	return h.Sum64()
}
