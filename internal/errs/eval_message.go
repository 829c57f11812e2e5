package errs

import (
	"fmt"

	"skein/internal/object"
)

func evalMessage(e *EvalError) string {
	switch e.Case {
	case CaseIllegalKeywordUsage:
		return fmt.Sprintf("syntactic keywords may not be used as expressions: %s", inspect(e.Expr))
	case CaseIllegalFormalParameter:
		return fmt.Sprintf("cannot use expression as formal parameter: %s", inspect(e.Expr))
	case CaseIllegalFormalRestParameter:
		return fmt.Sprintf("cannot use expression as formal rest parameter: %s", inspect(e.Expr))
	case CaseDivisionByZero:
		return "division by zero"
	case CaseUnboundVariable:
		return fmt.Sprintf("unbound variable: %s", symbolName(e.Symbol))
	case CaseVariableNotYetInitialized:
		if e.Symbol == nil {
			return "variable not yet initialized"
		}
		return fmt.Sprintf("variable %s not yet initialized", symbolName(e.Symbol))
	case CaseMalformedArgumentList:
		return fmt.Sprintf("malformed argument list: %s", inspect(e.Expr))
	case CaseMalformedDefinition:
		return fmt.Sprintf("malformed definition: %s", inspect(e.Expr))
	case CaseMalformedTransformer:
		return fmt.Sprintf("malformed transformer: %s", inspect(e.Expr))
	case CaseMalformedSyntaxRule:
		return fmt.Sprintf("not a valid syntax rule: %s", inspect(e.Expr))
	case CaseMalformedSyntaxRulePattern:
		if e.Expr == nil {
			return fmt.Sprintf("malformed syntax rule pattern: %s", inspect(e.Context))
		}
		return fmt.Sprintf("illegal pattern %s in syntax rule pattern: %s", inspect(e.Expr), inspect(e.Context))
	case CaseMalformedSyntaxRuleLiterals:
		return fmt.Sprintf("illegal literals list for syntax rule: %s", inspect(e.Expr))
	case CaseInvalidContextInQuasiquote:
		return fmt.Sprintf("%s not allowed in this context within quasiquote: %s", symbolName(e.Symbol), inspect(e.Expr))
	case CaseMacroMismatchedRepetitionPatterns:
		return fmt.Sprintf("macro could not be expanded: mismatched repetition patterns for %s", symbolName(e.Symbol))
	case CaseMalformedBindings:
		if e.Expr == nil {
			return fmt.Sprintf("malformed bindings: %s", inspect(e.Context))
		}
		return fmt.Sprintf("malformed binding %s in %s", inspect(e.Expr), inspect(e.Context))
	case CaseMalformedTest:
		return fmt.Sprintf("malformed test expression: %s", inspect(e.Expr))
	case CaseMalformedCondClause:
		return fmt.Sprintf("malformed clause in cond form: %s", inspect(e.Expr))
	case CaseMalformedCaseClause:
		return fmt.Sprintf("malformed clause in case form: %s", inspect(e.Expr))
	case CaseDuplicateBinding:
		return fmt.Sprintf("symbol %s bound multiple times in %s", symbolName(e.Symbol), inspect(e.Expr))
	case CaseIndexOutOfBounds:
		if e.Index < 0 {
			return fmt.Sprintf("index %d must not be negative when accessing %s", e.Index, inspect(e.Expr))
		}
		return fmt.Sprintf("index %d out of bounds [0..%d] for %s", e.Index, e.Upper, inspect(e.Expr))
	case CaseParameterOutOfBounds:
		return fmt.Sprintf("parameter %d of %s out of bounds [%d..%d]: %d", e.Count, e.Name, e.Lower, e.Upper, e.Index)
	case CaseNonApplicativeValue:
		return fmt.Sprintf("cannot apply arguments to %s", inspect(e.Expr))
	case CaseIllegalRadix:
		return fmt.Sprintf("illegal radix %s", inspect(e.Expr))
	case CaseTypeError:
		return fmt.Sprintf("expected value of type %s; received %s", e.Types, inspect(e.Expr))
	case CaseArgumentError:
		return fmt.Sprintf("wrong arguments for %s: %s", inspect(e.Expr), inspect(e.Context))
	case CaseArgumentCountError:
		return fmt.Sprintf("expected %s, received %d: %s", plural(e.Count, "argument"), argumentCount(e.Context), inspect(e.Context))
	case CaseLeastArgumentCountError:
		return fmt.Sprintf("expected at least %s, received %d: %s", plural(e.Count, "argument"), argumentCount(e.Context), inspect(e.Context))
	case CaseOutOfScope:
		return fmt.Sprintf("%s used out of scope", inspect(e.Expr))
	case CaseDefineInLocalEnv:
		return fmt.Sprintf("definition of %s not allowed in local environment: %s", inspect(e.Expr), inspect(e.Context))
	case CaseDefineSyntaxInLocalEnv:
		return fmt.Sprintf("syntax definition of %s not allowed in local environment: %s", symbolName(e.Symbol), inspect(e.Context))
	case CaseCannotOpenFile:
		return fmt.Sprintf("cannot open file '%s'", e.Name)
	case CaseCannotOpenURL:
		return fmt.Sprintf("cannot open URL '%s'", e.Name)
	case CaseCannotWriteToPort:
		return fmt.Sprintf("cannot write to port %s", inspect(e.Expr))
	case CaseIllegalContinuationApplication:
		return fmt.Sprintf("continuation %s applied in the wrong context (machine %x)", procName(e.Proc), uint64(e.Index))
	case CaseAttemptToModifyImmutableData:
		return fmt.Sprintf("attempt to modify immutable data structure: %s", inspect(e.Expr))
	case CaseUnknownFieldOfRecordType:
		return fmt.Sprintf("unknown field %s of record type %s", symbolName(e.Symbol), inspect(e.Expr))
	case CaseFieldCountError:
		return fmt.Sprintf("expected values for %s, received %s", plural(e.Count, "field"), inspect(e.Context))
	case CaseMalformedLibraryDefinition:
		return fmt.Sprintf("malformed library definition: %s", inspect(e.Expr))
	case CaseMalformedLibraryName:
		return fmt.Sprintf("malformed library name: %s", inspect(e.Expr))
	case CaseUnknownLibrary:
		return fmt.Sprintf("unknown library: %s", inspect(e.Expr))
	case CaseUncaughtException:
		return fmt.Sprintf("uncaught exception: %s", inspect(e.Expr))
	}
	return fmt.Sprintf("unknown eval error %d", int(e.Case))
}

func plural(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return fmt.Sprintf("%d %ss", n, noun)
}

func argumentCount(args object.Object) int {
	elements, _ := object.ListToSlice(args)
	return len(elements)
}

func symbolName(sym *object.Symbol) string {
	if sym == nil {
		return "<unknown>"
	}
	return sym.Inspect()
}

func procName(p *object.Procedure) string {
	if p == nil {
		return "<unknown>"
	}
	return p.Description()
}
