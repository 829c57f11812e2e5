package errs

import (
	"encoding/binary"
	"fmt"

	"skein/internal/object"
)

type EvalCase int

const (
	CaseIllegalKeywordUsage EvalCase = iota
	CaseIllegalFormalParameter
	CaseIllegalFormalRestParameter
	CaseDivisionByZero
	CaseUnboundVariable
	CaseVariableNotYetInitialized
	CaseMalformedArgumentList
	CaseMalformedDefinition
	CaseMalformedTransformer
	CaseMalformedSyntaxRule
	CaseMalformedSyntaxRulePattern
	CaseMalformedSyntaxRuleLiterals
	CaseInvalidContextInQuasiquote
	CaseMacroMismatchedRepetitionPatterns
	CaseMalformedBindings
	CaseMalformedTest
	CaseMalformedCondClause
	CaseMalformedCaseClause
	CaseDuplicateBinding
	CaseIndexOutOfBounds
	CaseParameterOutOfBounds
	CaseNonApplicativeValue
	CaseIllegalRadix
	CaseTypeError
	CaseArgumentError
	CaseArgumentCountError
	CaseLeastArgumentCountError
	CaseOutOfScope
	CaseDefineInLocalEnv
	CaseDefineSyntaxInLocalEnv
	CaseCannotOpenFile
	CaseCannotOpenURL
	CaseCannotWriteToPort
	CaseIllegalContinuationApplication
	CaseAttemptToModifyImmutableData
	CaseUnknownFieldOfRecordType
	CaseFieldCountError
	CaseMalformedLibraryDefinition
	CaseMalformedLibraryName
	CaseUnknownLibrary
	CaseUncaughtException
)

var evalCaseNames = [...]string{
	CaseIllegalKeywordUsage:               "illegal-keyword-usage",
	CaseIllegalFormalParameter:            "illegal-formal-parameter",
	CaseIllegalFormalRestParameter:        "illegal-formal-rest-parameter",
	CaseDivisionByZero:                    "division-by-zero",
	CaseUnboundVariable:                   "unbound-variable",
	CaseVariableNotYetInitialized:         "variable-not-yet-initialized",
	CaseMalformedArgumentList:             "malformed-argument-list",
	CaseMalformedDefinition:               "malformed-definition",
	CaseMalformedTransformer:              "malformed-transformer",
	CaseMalformedSyntaxRule:               "malformed-syntax-rule",
	CaseMalformedSyntaxRulePattern:        "malformed-syntax-rule-pattern",
	CaseMalformedSyntaxRuleLiterals:       "malformed-syntax-rule-literals",
	CaseInvalidContextInQuasiquote:        "invalid-context-in-quasiquote",
	CaseMacroMismatchedRepetitionPatterns: "macro-mismatched-repetition-patterns",
	CaseMalformedBindings:                 "malformed-bindings",
	CaseMalformedTest:                     "malformed-test",
	CaseMalformedCondClause:               "malformed-cond-clause",
	CaseMalformedCaseClause:               "malformed-case-clause",
	CaseDuplicateBinding:                  "duplicate-binding",
	CaseIndexOutOfBounds:                  "index-out-of-bounds",
	CaseParameterOutOfBounds:              "parameter-out-of-bounds",
	CaseNonApplicativeValue:               "non-applicative-value",
	CaseIllegalRadix:                      "illegal-radix",
	CaseTypeError:                         "type-error",
	CaseArgumentError:                     "argument-error",
	CaseArgumentCountError:                "argument-count-error",
	CaseLeastArgumentCountError:           "least-argument-count-error",
	CaseOutOfScope:                        "out-of-scope",
	CaseDefineInLocalEnv:                  "define-in-local-env",
	CaseDefineSyntaxInLocalEnv:            "define-syntax-in-local-env",
	CaseCannotOpenFile:                    "cannot-open-file",
	CaseCannotOpenURL:                     "cannot-open-url",
	CaseCannotWriteToPort:                 "cannot-write-to-port",
	CaseIllegalContinuationApplication:    "illegal-continuation-application",
	CaseAttemptToModifyImmutableData:      "attempt-to-modify-immutable-data",
	CaseUnknownFieldOfRecordType:          "unknown-field-of-record-type",
	CaseFieldCountError:                   "field-count-error",
	CaseMalformedLibraryDefinition:        "malformed-library-definition",
	CaseMalformedLibraryName:              "malformed-library-name",
	CaseUnknownLibrary:                    "unknown-library",
	CaseUncaughtException:                 "uncaught-exception",
}

func (c EvalCase) String() string {
	if c >= 0 && int(c) < len(evalCaseNames) {
		return evalCaseNames[c]
	}
	return fmt.Sprintf("eval-case-%d", int(c))
}

// EvalError is raised by the compiler and evaluator. Case selects the
// variant; each constructor below fills in only the payload fields its case
// uses, the rest stay zero and take part in equality like any other field.
type EvalError struct {
	Case EvalCase

	// Expr is the offending expression; Context is the enclosing form, the
	// argument list, or a second expression the case needs.
	Expr    object.Object
	Context object.Object
	Symbol  *object.Symbol

	Index int64
	Lower int64
	Upper int64
	Count int
	Name  string
	Types TypeSet
	Proc  *object.Procedure
}

func newEval(c EvalCase) *EvalError { return &EvalError{Case: c} }

func IllegalKeywordUsage(expr object.Object) *EvalError {
	e := newEval(CaseIllegalKeywordUsage)
	e.Expr = expr
	return e
}

func IllegalFormalParameter(expr object.Object) *EvalError {
	e := newEval(CaseIllegalFormalParameter)
	e.Expr = expr
	return e
}

func IllegalFormalRestParameter(expr object.Object) *EvalError {
	e := newEval(CaseIllegalFormalRestParameter)
	e.Expr = expr
	return e
}

func DivisionByZero() *EvalError { return newEval(CaseDivisionByZero) }

func UnboundVariable(sym *object.Symbol) *EvalError {
	e := newEval(CaseUnboundVariable)
	e.Symbol = sym
	return e
}

// VariableNotYetInitialized accepts a nil symbol when the variable is not
// known by name.
func VariableNotYetInitialized(sym *object.Symbol) *EvalError {
	e := newEval(CaseVariableNotYetInitialized)
	e.Symbol = sym
	return e
}

func MalformedArgumentList(args object.Object) *EvalError {
	e := newEval(CaseMalformedArgumentList)
	e.Expr = args
	return e
}

func MalformedDefinition(def object.Object) *EvalError {
	e := newEval(CaseMalformedDefinition)
	e.Expr = def
	return e
}

func MalformedTransformer(transformer object.Object) *EvalError {
	e := newEval(CaseMalformedTransformer)
	e.Expr = transformer
	return e
}

func MalformedSyntaxRule(rule object.Object) *EvalError {
	e := newEval(CaseMalformedSyntaxRule)
	e.Expr = rule
	return e
}

// MalformedSyntaxRulePattern takes the offending sub-pattern, which may be
// nil, and the full pattern.
func MalformedSyntaxRulePattern(offending, pattern object.Object) *EvalError {
	e := newEval(CaseMalformedSyntaxRulePattern)
	e.Expr = offending
	e.Context = pattern
	return e
}

func MalformedSyntaxRuleLiterals(literals object.Object) *EvalError {
	e := newEval(CaseMalformedSyntaxRuleLiterals)
	e.Expr = literals
	return e
}

func InvalidContextInQuasiquote(op *object.Symbol, expr object.Object) *EvalError {
	e := newEval(CaseInvalidContextInQuasiquote)
	e.Symbol = op
	e.Expr = expr
	return e
}

func MacroMismatchedRepetitionPatterns(sym *object.Symbol) *EvalError {
	e := newEval(CaseMacroMismatchedRepetitionPatterns)
	e.Symbol = sym
	return e
}

// MalformedBindings takes the offending binding, which may be nil, and the
// binding list.
func MalformedBindings(binding, bindings object.Object) *EvalError {
	e := newEval(CaseMalformedBindings)
	e.Expr = binding
	e.Context = bindings
	return e
}

func MalformedTest(test object.Object) *EvalError {
	e := newEval(CaseMalformedTest)
	e.Expr = test
	return e
}

func MalformedCondClause(clause object.Object) *EvalError {
	e := newEval(CaseMalformedCondClause)
	e.Expr = clause
	return e
}

func MalformedCaseClause(clause object.Object) *EvalError {
	e := newEval(CaseMalformedCaseClause)
	e.Expr = clause
	return e
}

func DuplicateBinding(sym *object.Symbol, form object.Object) *EvalError {
	e := newEval(CaseDuplicateBinding)
	e.Symbol = sym
	e.Expr = form
	return e
}

// IndexOutOfBounds reports index used against the valid range [0..max] of
// expr.
func IndexOutOfBounds(index, max int64, expr object.Object) *EvalError {
	e := newEval(CaseIndexOutOfBounds)
	e.Index = index
	e.Upper = max
	e.Expr = expr
	return e
}

// ParameterOutOfBounds reports that argument number argn of the procedure
// called name had value outside [lower..upper].
func ParameterOutOfBounds(name string, argn int, value, lower, upper int64) *EvalError {
	e := newEval(CaseParameterOutOfBounds)
	e.Name = name
	e.Count = argn
	e.Index = value
	e.Lower = lower
	e.Upper = upper
	return e
}

func NonApplicativeValue(value object.Object) *EvalError {
	e := newEval(CaseNonApplicativeValue)
	e.Expr = value
	return e
}

func IllegalRadix(radix object.Object) *EvalError {
	e := newEval(CaseIllegalRadix)
	e.Expr = radix
	return e
}

func TypeError(value object.Object, expected ...object.ObjectType) *EvalError {
	e := newEval(CaseTypeError)
	e.Expr = value
	e.Types = NewTypeSet(expected...)
	return e
}

func ArgumentError(fn, args object.Object) *EvalError {
	e := newEval(CaseArgumentError)
	e.Expr = fn
	e.Context = args
	return e
}

// ArgumentCountError reports a call with the wrong number of arguments;
// formals is the number expected, args the argument list received.
func ArgumentCountError(formals int, args object.Object) *EvalError {
	e := newEval(CaseArgumentCountError)
	e.Count = formals
	e.Context = args
	return e
}

func LeastArgumentCountError(formals int, args object.Object) *EvalError {
	e := newEval(CaseLeastArgumentCountError)
	e.Count = formals
	e.Context = args
	return e
}

func OutOfScope(expr object.Object) *EvalError {
	e := newEval(CaseOutOfScope)
	e.Expr = expr
	return e
}

func DefineInLocalEnv(signature, definition object.Object) *EvalError {
	e := newEval(CaseDefineInLocalEnv)
	e.Expr = signature
	e.Context = definition
	return e
}

func DefineSyntaxInLocalEnv(keyword *object.Symbol, definition object.Object) *EvalError {
	e := newEval(CaseDefineSyntaxInLocalEnv)
	e.Symbol = keyword
	e.Context = definition
	return e
}

func CannotOpenFile(path string) *EvalError {
	e := newEval(CaseCannotOpenFile)
	e.Name = path
	return e
}

func CannotOpenURL(url string) *EvalError {
	e := newEval(CaseCannotOpenURL)
	e.Name = url
	return e
}

func CannotWriteToPort(port object.Object) *EvalError {
	e := newEval(CaseCannotWriteToPort)
	e.Expr = port
	return e
}

// IllegalContinuationApplication reports a continuation resumed on a
// machine other than the one that captured it.
func IllegalContinuationApplication(proc *object.Procedure, machine uint64) *EvalError {
	e := newEval(CaseIllegalContinuationApplication)
	e.Proc = proc
	e.Index = int64(machine)
	return e
}

func AttemptToModifyImmutableData(expr object.Object) *EvalError {
	e := newEval(CaseAttemptToModifyImmutableData)
	e.Expr = expr
	return e
}

func UnknownFieldOfRecordType(recordType object.Object, field *object.Symbol) *EvalError {
	e := newEval(CaseUnknownFieldOfRecordType)
	e.Expr = recordType
	e.Symbol = field
	return e
}

func FieldCountError(expected int, values object.Object) *EvalError {
	e := newEval(CaseFieldCountError)
	e.Count = expected
	e.Context = values
	return e
}

func MalformedLibraryDefinition(decls object.Object) *EvalError {
	e := newEval(CaseMalformedLibraryDefinition)
	e.Expr = decls
	return e
}

func MalformedLibraryName(name object.Object) *EvalError {
	e := newEval(CaseMalformedLibraryName)
	e.Expr = name
	return e
}

func UnknownLibrary(name object.Object) *EvalError {
	e := newEval(CaseUnknownLibrary)
	e.Expr = name
	return e
}

func UncaughtException(value object.Object) *EvalError {
	e := newEval(CaseUncaughtException)
	e.Expr = value
	return e
}

func (e *EvalError) Type() ErrorType            { return Eval }
func (e *EvalError) Kind() string               { return Eval.String() }
func (e *EvalError) Message() string            { return evalMessage(e) }
func (e *EvalError) Irritants() []object.Object { return nil }
func (e *EvalError) Error() string              { return Describe(e) }
func (e *EvalError) Is(target error) bool       { return isEqual(e, target) }

func (e *EvalError) Equals(other LispError) bool {
	o, ok := unbox(other).(*EvalError)
	if !ok || o == nil {
		return false
	}
	return e.Case == o.Case &&
		object.Equal(e.Expr, o.Expr) &&
		object.Equal(e.Context, o.Context) &&
		equalSymbols(e.Symbol, o.Symbol) &&
		e.Index == o.Index &&
		e.Lower == o.Lower &&
		e.Upper == o.Upper &&
		e.Count == o.Count &&
		e.Name == o.Name &&
		e.Types.Equal(o.Types) &&
		e.Proc == o.Proc
}

func (e *EvalError) Hash() uint64 {
	h := newHash(Eval, e.Case.String())
	object.Hash(e.Expr, h)
	object.Hash(e.Context, h)
	if e.Symbol != nil {
		h.Write([]byte(e.Symbol.Name))
	}
	var buf [8]byte
	for _, n := range []int64{e.Index, e.Lower, e.Upper, int64(e.Count)} {
		binary.LittleEndian.PutUint64(buf[:], uint64(n))
		h.Write(buf[:])
	}
	h.Write([]byte(e.Name))
	for _, t := range NewTypeSet(e.Types...) {
		h.Write([]byte(t))
	}
	if e.Proc != nil {
		binary.LittleEndian.PutUint64(buf[:], e.Proc.ID())
		h.Write(buf[:])
	}
	return h.Sum64()
}

func equalSymbols(a, b *object.Symbol) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a == b || a.Name == b.Name
}
