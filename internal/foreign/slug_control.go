package foreign

import (
	"skein/internal/errs"
	"skein/internal/object"
)

func fnIsProcedure() object.Native1 {
	return func(a object.Object) (object.Object, error) {
		_, ok := a.(*object.Procedure)
		return object.NativeBool(ok), nil
	}
}

// apply spreads its last argument, which must be a proper list, and tail
// calls the procedure with the result.
func fnApply() object.Apply {
	return func(args []object.Object) (*object.Procedure, []object.Object, error) {
		if len(args) < 2 {
			return nil, nil, errs.LeastArgumentCountError(2, object.List(args...))
		}
		proc, err := unpackProcedure(args[0])
		if err != nil {
			return nil, nil, err
		}
		last := args[len(args)-1]
		spread, ok := object.ListToSlice(last)
		if !ok {
			return nil, nil, errs.TypeError(last, object.PROPER_LIST_OBJ)
		}
		callArgs := make([]object.Object, 0, len(args)-2+len(spread))
		callArgs = append(callArgs, args[1:len(args)-1]...)
		callArgs = append(callArgs, spread...)
		return proc, callArgs, nil
	}
}

// eval compiles its argument; the evaluator runs the resulting code. An
// optional environment argument is accepted and ignored, there is only the
// global one.
func fnEval(ctx object.CompilationContext) object.Eval {
	return func(args []object.Object) (*object.Code, error) {
		switch {
		case len(args) < 1:
			return nil, errs.LeastArgumentCountError(1, object.NULL)
		case len(args) > 2:
			return nil, errs.ArgumentCountError(2, object.List(args...))
		}
		return ctx.Compile(object.List(args[0]))
	}
}

// error raises a custom error with the given message and irritants.
func fnError() object.Native1R {
	return func(message object.Object, irritants []object.Object) (object.Object, error) {
		text, err := unpackString(message)
		if err != nil {
			return nil, err
		}
		return nil, errs.NewCustom("error", text, irritants...)
	}
}

func fnRaise() object.Native1 {
	return func(value object.Object) (object.Object, error) {
		return nil, errs.UncaughtException(value)
	}
}
