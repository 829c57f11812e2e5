package foreign

import (
	"skein/internal/errs"
	"skein/internal/object"
)

func fnCar() object.Native1 {
	return func(a object.Object) (object.Object, error) {
		p, err := unpackPair(a)
		if err != nil {
			return nil, err
		}
		return p.Car, nil
	}
}

func fnCdr() object.Native1 {
	return func(a object.Object) (object.Object, error) {
		p, err := unpackPair(a)
		if err != nil {
			return nil, err
		}
		return p.Cdr, nil
	}
}

func fnCons() object.Native2 {
	return func(car, cdr object.Object) (object.Object, error) {
		return object.Cons(car, cdr), nil
	}
}

func fnList() object.Native0R {
	return func(rest []object.Object) (object.Object, error) {
		return object.List(rest...), nil
	}
}

func fnLength() object.Native1 {
	return func(a object.Object) (object.Object, error) {
		elements, ok := object.ListToSlice(a)
		if !ok {
			return nil, errs.TypeError(a, object.PROPER_LIST_OBJ)
		}
		return object.NewFixnum(int64(len(elements))), nil
	}
}
