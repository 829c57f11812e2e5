package foreign

import (
	"skein/internal/errs"
	"skein/internal/object"
)

func unpackFixnum(o object.Object) (int64, error) {
	n, ok := o.(*object.Fixnum)
	if !ok {
		return 0, errs.TypeError(o, object.FIXNUM_OBJ)
	}
	return n.Value, nil
}

func unpackVector(o object.Object) (*object.Vector, error) {
	v, ok := o.(*object.Vector)
	if !ok {
		return nil, errs.TypeError(o, object.VECTOR_OBJ)
	}
	return v, nil
}

func unpackPair(o object.Object) (*object.Pair, error) {
	p, ok := o.(*object.Pair)
	if !ok {
		return nil, errs.TypeError(o, object.PAIR_OBJ)
	}
	return p, nil
}

func unpackBox(o object.Object) (*object.Box, error) {
	b, ok := o.(*object.Box)
	if !ok {
		return nil, errs.TypeError(o, object.BOX_OBJ)
	}
	return b, nil
}

func unpackString(o object.Object) (string, error) {
	s, ok := o.(*object.String)
	if !ok {
		return "", errs.TypeError(o, object.STRING_OBJ)
	}
	return s.Value, nil
}

func unpackProcedure(o object.Object) (*object.Procedure, error) {
	p, ok := o.(*object.Procedure)
	if !ok {
		return nil, errs.TypeError(o, object.PROCEDURE_OBJ)
	}
	return p, nil
}
