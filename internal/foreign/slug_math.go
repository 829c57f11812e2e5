package foreign

import (
	"skein/internal/errs"
	"skein/internal/object"
)

// sum adds numbers, switching to flonum arithmetic at the first flonum.
func sum(start object.Object, args []object.Object, sign int64) (object.Object, error) {
	var (
		fixed   int64
		floated float64
		inexact bool
	)
	add := func(o object.Object, s int64) error {
		switch n := o.(type) {
		case *object.Fixnum:
			if inexact {
				floated += float64(s * n.Value)
			} else {
				fixed += s * n.Value
			}
		case *object.Flonum:
			if !inexact {
				inexact = true
				floated = float64(fixed)
			}
			floated += float64(s) * n.Value
		default:
			return errs.TypeError(o, object.NUMBER_OBJ)
		}
		return nil
	}
	if start != nil {
		if err := add(start, 1); err != nil {
			return nil, err
		}
	}
	for _, arg := range args {
		if err := add(arg, sign); err != nil {
			return nil, err
		}
	}
	if inexact {
		return &object.Flonum{Value: floated}, nil
	}
	return object.NewFixnum(fixed), nil
}

func fnAdd() object.Native0R {
	return func(rest []object.Object) (object.Object, error) {
		return sum(nil, rest, 1)
	}
}

// With a single argument - negates it.
func fnSub() object.Native1R {
	return func(first object.Object, rest []object.Object) (object.Object, error) {
		if len(rest) == 0 {
			return sum(nil, []object.Object{first}, -1)
		}
		return sum(first, rest, -1)
	}
}

func fnQuotient() object.Native2 {
	return func(a, b object.Object) (object.Object, error) {
		x, err := unpackFixnum(a)
		if err != nil {
			return nil, err
		}
		y, err := unpackFixnum(b)
		if err != nil {
			return nil, err
		}
		if y == 0 {
			return nil, errs.DivisionByZero()
		}
		return object.NewFixnum(x / y), nil
	}
}
