package errs

import (
	"slices"
	"strings"

	"skein/internal/object"
)

// TypeSet is the set of types a value was expected to have. Order and
// duplicates do not matter for equality.
type TypeSet []object.ObjectType

func NewTypeSet(types ...object.ObjectType) TypeSet {
	set := slices.Clone(types)
	slices.Sort(set)
	return slices.Compact(set)
}

func (s TypeSet) Contains(t object.ObjectType) bool {
	return slices.Contains(s, t)
}

func (s TypeSet) Equal(other TypeSet) bool {
	return slices.Equal(NewTypeSet(s...), NewTypeSet(other...))
}

// String renders "a", "a or b", "a, b or c".
func (s TypeSet) String() string {
	set := NewTypeSet(s...)
	switch len(set) {
	case 0:
		return "no type"
	case 1:
		return string(set[0])
	}
	names := make([]string, len(set))
	for i, t := range set {
		names[i] = string(t)
	}
	return strings.Join(names[:len(names)-1], ", ") + " or " + names[len(names)-1]
}
