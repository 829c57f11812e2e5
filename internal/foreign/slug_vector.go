package foreign

import (
	"slices"

	"skein/internal/errs"
	"skein/internal/object"
)

const maxVectorLength = 1 << 24

func fnVector() object.Native0R {
	return func(rest []object.Object) (object.Object, error) {
		return &object.Vector{Elements: slices.Clone(rest)}, nil
	}
}

// make-vector takes a length and an optional fill value, #f by default.
func fnMakeVector() object.Native1O {
	return func(k, fill object.Object) (object.Object, error) {
		n, err := unpackFixnum(k)
		if err != nil {
			return nil, err
		}
		if n < 0 || n > maxVectorLength {
			return nil, errs.ParameterOutOfBounds("make-vector", 1, n, 0, maxVectorLength)
		}
		if fill == nil {
			fill = object.FALSE
		}
		elements := make([]object.Object, n)
		for i := range elements {
			elements[i] = fill
		}
		return &object.Vector{Elements: elements}, nil
	}
}

func fnVectorRef() object.Native2 {
	return func(v, k object.Object) (object.Object, error) {
		vec, err := unpackVector(v)
		if err != nil {
			return nil, err
		}
		i, err := unpackFixnum(k)
		if err != nil {
			return nil, err
		}
		if i < 0 || i >= int64(len(vec.Elements)) {
			return nil, errs.IndexOutOfBounds(i, int64(len(vec.Elements))-1, vec)
		}
		return vec.Elements[i], nil
	}
}

func fnVectorSet() object.Native3 {
	return func(v, k, value object.Object) (object.Object, error) {
		vec, err := unpackVector(v)
		if err != nil {
			return nil, err
		}
		if vec.Immutable {
			return nil, errs.AttemptToModifyImmutableData(vec)
		}
		i, err := unpackFixnum(k)
		if err != nil {
			return nil, err
		}
		if i < 0 || i >= int64(len(vec.Elements)) {
			return nil, errs.IndexOutOfBounds(i, int64(len(vec.Elements))-1, vec)
		}
		vec.Elements[i] = value
		return object.VOID, nil
	}
}

func fnVectorLength() object.Native1 {
	return func(v object.Object) (object.Object, error) {
		vec, err := unpackVector(v)
		if err != nil {
			return nil, err
		}
		return object.NewFixnum(int64(len(vec.Elements))), nil
	}
}

func fnBox() object.Native1 {
	return func(value object.Object) (object.Object, error) {
		return &object.Box{Value: value}, nil
	}
}

func fnUnbox() object.Native1 {
	return func(b object.Object) (object.Object, error) {
		box, err := unpackBox(b)
		if err != nil {
			return nil, err
		}
		return box.Value, nil
	}
}

func fnSetBox() object.Native2 {
	return func(b, value object.Object) (object.Object, error) {
		box, err := unpackBox(b)
		if err != nil {
			return nil, err
		}
		box.Value = value
		return object.VOID, nil
	}
}
