package errs

import "skein/internal/object"

// CustomError is raised by library code for its own domain conditions.
type CustomError struct {
	Label string
	Text  string
	Items []object.Object
}

func NewCustom(kind, message string, irritants ...object.Object) *CustomError {
	return &CustomError{Label: kind, Text: message, Items: irritants}
}

func (e *CustomError) Type() ErrorType            { return Custom }
func (e *CustomError) Kind() string               { return e.Label }
func (e *CustomError) Message() string            { return e.Text }
func (e *CustomError) Irritants() []object.Object { return e.Items }
func (e *CustomError) Error() string              { return Describe(e) }
func (e *CustomError) Is(target error) bool       { return isEqual(e, target) }

func (e *CustomError) Equals(other LispError) bool {
	o, ok := unbox(other).(*CustomError)
	if !ok || o == nil {
		return false
	}
	return e.Label == o.Label && e.Text == o.Text && equalIrritants(e.Items, o.Items)
}

func (e *CustomError) Hash() uint64 {
	h := newHash(Custom, e.Label)
	h.Write([]byte{0})
	h.Write([]byte(e.Text))
	hashIrritants(h, e.Items)
	return h.Sum64()
}
