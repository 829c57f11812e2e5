package errs

import "skein/internal/object"

// AnyError boxes an arbitrary taxonomy value so it can flow through a
// boundary that expects one nominal error type. Every accessor delegates to
// the boxed value, and equality holds in both directions between a box and
// its content.
type AnyError struct {
	Err LispError
}

// Box wraps e. Boxes are never nested, and there is no box for nil.
func Box(e LispError) *AnyError {
	if e == nil {
		return nil
	}
	if boxed, ok := e.(*AnyError); ok {
		return boxed
	}
	return &AnyError{Err: e}
}

func (e *AnyError) Type() ErrorType            { return e.Err.Type() }
func (e *AnyError) Kind() string               { return e.Err.Kind() }
func (e *AnyError) Message() string            { return e.Err.Message() }
func (e *AnyError) Irritants() []object.Object { return e.Err.Irritants() }
func (e *AnyError) Error() string              { return e.Err.Error() }
func (e *AnyError) Unwrap() error              { return e.Err }
func (e *AnyError) Hash() uint64               { return e.Err.Hash() }
func (e *AnyError) Is(target error) bool       { return isEqual(e, target) }

func (e *AnyError) Equals(other LispError) bool {
	return Equal(e.Err, other)
}
