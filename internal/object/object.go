package object

import (
	"encoding/binary"
	"hash"
	"hash/fnv"
	"math"
	"strconv"
	"strings"
)

const (
	NULL_OBJ    = "null"
	VOID_OBJ    = "void"
	BOOLEAN_OBJ = "boolean"
	FIXNUM_OBJ  = "fixnum"
	FLONUM_OBJ  = "flonum"
	STRING_OBJ  = "string"
	SYMBOL_OBJ  = "symbol"

	PAIR_OBJ      = "pair"
	VECTOR_OBJ    = "vector"
	BOX_OBJ       = "box"
	PROCEDURE_OBJ = "procedure"

	// Abstract types only appear in type error diagnostics.
	NUMBER_OBJ        = "number"
	INTEGER_OBJ       = "integer"
	LIST_OBJ          = "list"
	PROPER_LIST_OBJ   = "proper list"
	RECORD_OBJ        = "record"
	RECORD_TYPE_OBJ   = "record type"
	PORT_OBJ          = "port"
	ERROR_OBJECT_OBJ  = "error object"
	ENVIRONMENT_OBJ   = "environment"
	CHARACTER_OBJ     = "character"
	BYTEVECTOR_OBJ    = "bytevector"
	HASHTABLE_OBJ     = "hashtable"
	PARAMETER_OBJ     = "parameter"
	PROMISE_OBJ       = "promise"
	UNDEFINED_OBJ     = "undefined"
	ANY_OBJ           = "any"
	PROCEDURE_OR_NULL = "procedure or null"
)

var (
	NULL  = &Null{}
	VOID  = &Void{}
	TRUE  = &Boolean{Value: true}
	FALSE = &Boolean{Value: false}
)

type ObjectType string

// Object is any expression value the runtime passes around: captured by
// closures, attached to errors as irritants, handed to natives as arguments.
type Object interface {
	Type() ObjectType
	Inspect() string
}

type Null struct{}

func (n *Null) Type() ObjectType { return NULL_OBJ }
func (n *Null) Inspect() string  { return "()" }

type Void struct{}

func (v *Void) Type() ObjectType { return VOID_OBJ }
func (v *Void) Inspect() string  { return "#<void>" }

type Boolean struct {
	Value bool
}

func (b *Boolean) Type() ObjectType { return BOOLEAN_OBJ }
func (b *Boolean) Inspect() string {
	if b.Value {
		return "#t"
	}
	return "#f"
}

func NativeBool(b bool) *Boolean {
	if b {
		return TRUE
	}
	return FALSE
}

type Fixnum struct {
	Value int64
}

func (f *Fixnum) Type() ObjectType { return FIXNUM_OBJ }
func (f *Fixnum) Inspect() string  { return strconv.FormatInt(f.Value, 10) }

func NewFixnum(v int64) *Fixnum { return &Fixnum{Value: v} }

type Flonum struct {
	Value float64
}

func (f *Flonum) Type() ObjectType { return FLONUM_OBJ }
func (f *Flonum) Inspect() string {
	switch {
	case math.IsNaN(f.Value):
		return "+nan.0"
	case math.IsInf(f.Value, 1):
		return "+inf.0"
	case math.IsInf(f.Value, -1):
		return "-inf.0"
	}
	s := strconv.FormatFloat(f.Value, 'g', -1, 64)
	if !strings.ContainsAny(s, ".e") {
		s += ".0"
	}
	return s
}

type String struct {
	Value string
}

func (s *String) Type() ObjectType { return STRING_OBJ }
func (s *String) Inspect() string  { return strconv.Quote(s.Value) }

// Pair is a cons cell. Lists are chains of pairs ending in NULL. The
// runtime never mutates a pair, but Go code can, so every walk over pairs
// must stop at cycles.
type Pair struct {
	Managed
	Car Object
	Cdr Object
}

func (p *Pair) Type() ObjectType { return PAIR_OBJ }
func (p *Pair) Inspect() string  { return render(p) }

func Cons(car, cdr Object) *Pair { return &Pair{Car: car, Cdr: cdr} }

func List(elements ...Object) Object {
	var result Object = NULL
	for i := len(elements) - 1; i >= 0; i-- {
		result = Cons(elements[i], result)
	}
	return result
}

// ListToSlice unpacks a proper list. ok is false for improper and circular
// lists.
func ListToSlice(o Object) (elements []Object, ok bool) {
	slow := o
	for {
		switch v := o.(type) {
		case *Null:
			return elements, true
		case *Pair:
			elements = append(elements, v.Car)
			o = v.Cdr
		default:
			return elements, false
		}
		if len(elements)%2 == 0 {
			slow = slow.(*Pair).Cdr
			if slow == o {
				return elements, false
			}
		}
	}
}

// Vector is a mutable sequence. Literal vectors are immutable.
type Vector struct {
	Managed
	Elements  []Object
	Immutable bool
}

func (v *Vector) Type() ObjectType { return VECTOR_OBJ }
func (v *Vector) Inspect() string  { return render(v) }

func (v *Vector) Mark(tag Tag) {
	if v.retag(tag) {
		for _, e := range v.Elements {
			Mark(e, tag)
		}
	}
}

// Box is a mutable single-value cell.
type Box struct {
	Managed
	Value Object
}

func (b *Box) Type() ObjectType { return BOX_OBJ }
func (b *Box) Inspect() string  { return render(b) }

func (b *Box) Mark(tag Tag) {
	if b.retag(tag) {
		Mark(b.Value, tag)
	}
}

// render writes o, printing #<cycle> where a container refers back to one
// it is nested in.
func render(o Object) string {
	var out strings.Builder
	write(&out, o, map[Object]bool{})
	return out.String()
}

func write(out *strings.Builder, o Object, path map[Object]bool) {
	if o == nil {
		out.WriteString("#<undefined>")
		return
	}
	if path[o] {
		out.WriteString("#<cycle>")
		return
	}
	switch v := o.(type) {
	case *Pair:
		var entered []Object
		out.WriteString("(")
		var cur Object = v
		for {
			pair, ok := cur.(*Pair)
			if !ok {
				break
			}
			if path[pair] {
				out.WriteString(" . #<cycle>")
				cur = NULL
				break
			}
			path[pair] = true
			entered = append(entered, pair)
			if len(entered) > 1 {
				out.WriteString(" ")
			}
			write(out, pair.Car, path)
			cur = pair.Cdr
		}
		if _, ok := cur.(*Null); !ok {
			out.WriteString(" . ")
			write(out, cur, path)
		}
		out.WriteString(")")
		for _, pair := range entered {
			delete(path, pair)
		}
	case *Vector:
		path[v] = true
		out.WriteString("#(")
		for i, e := range v.Elements {
			if i > 0 {
				out.WriteString(" ")
			}
			write(out, e, path)
		}
		out.WriteString(")")
		delete(path, v)
	case *Box:
		path[v] = true
		out.WriteString("#<box ")
		write(out, v.Value, path)
		out.WriteString(">")
		delete(path, v)
	default:
		out.WriteString(o.Inspect())
	}
}

// Equal reports structural equality. Procedures compare by identity. Cyclic
// values are equal when their unfoldings are.
func Equal(a, b Object) bool {
	return equal(a, b, nil)
}

type nodePair struct{ a, b Object }

// visit records that a and b are being compared and reports whether they
// already were, in which case the comparison in progress decides.
func visit(seen *map[nodePair]bool, a, b Object) bool {
	if *seen == nil {
		*seen = map[nodePair]bool{}
	}
	key := nodePair{a, b}
	if (*seen)[key] {
		return true
	}
	(*seen)[key] = true
	return false
}

func equal(a, b Object, seen map[nodePair]bool) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a == b {
		return true
	}
	switch x := a.(type) {
	case *Null:
		_, ok := b.(*Null)
		return ok
	case *Void:
		_, ok := b.(*Void)
		return ok
	case *Boolean:
		y, ok := b.(*Boolean)
		return ok && x.Value == y.Value
	case *Fixnum:
		y, ok := b.(*Fixnum)
		return ok && x.Value == y.Value
	case *Flonum:
		y, ok := b.(*Flonum)
		return ok && (x.Value == y.Value || (math.IsNaN(x.Value) && math.IsNaN(y.Value)))
	case *String:
		y, ok := b.(*String)
		return ok && x.Value == y.Value
	case *Symbol:
		y, ok := b.(*Symbol)
		return ok && x.Name == y.Name
	case *Pair:
		y, ok := b.(*Pair)
		if !ok {
			return false
		}
		if visit(&seen, x, y) {
			return true
		}
		return equal(x.Car, y.Car, seen) && equal(x.Cdr, y.Cdr, seen)
	case *Vector:
		y, ok := b.(*Vector)
		if !ok || len(x.Elements) != len(y.Elements) {
			return false
		}
		if visit(&seen, x, y) {
			return true
		}
		for i := range x.Elements {
			if !equal(x.Elements[i], y.Elements[i], seen) {
				return false
			}
		}
		return true
	case *Box:
		y, ok := b.(*Box)
		if !ok {
			return false
		}
		if visit(&seen, x, y) {
			return true
		}
		return equal(x.Value, y.Value, seen)
	}
	return false
}

// hashBudget bounds how many nodes Hash visits. Equal values unfold into the
// same tree, so hashing the same preorder prefix keeps Hash consistent with
// Equal while cyclic values hash in bounded time.
const hashBudget = 256

// Hash writes a structural hash of o into h. Values that are Equal hash
// identically.
func Hash(o Object, h hash.Hash64) {
	budget := hashBudget
	hashNode(o, h, &budget)
}

func hashNode(o Object, h hash.Hash64, budget *int) {
	if *budget <= 0 {
		return
	}
	*budget--

	var buf [8]byte
	writeInt := func(v uint64) {
		binary.LittleEndian.PutUint64(buf[:], v)
		h.Write(buf[:])
	}
	if o == nil {
		h.Write([]byte("nil"))
		return
	}
	h.Write([]byte(o.Type()))
	switch v := o.(type) {
	case *Boolean:
		if v.Value {
			writeInt(1)
		} else {
			writeInt(0)
		}
	case *Fixnum:
		writeInt(uint64(v.Value))
	case *Flonum:
		if math.IsNaN(v.Value) {
			writeInt(math.Float64bits(math.NaN()))
		} else if v.Value == 0 {
			writeInt(0)
		} else {
			writeInt(math.Float64bits(v.Value))
		}
	case *String:
		h.Write([]byte(v.Value))
	case *Symbol:
		h.Write([]byte(v.Name))
	case *Pair:
		hashNode(v.Car, h, budget)
		hashNode(v.Cdr, h, budget)
	case *Vector:
		writeInt(uint64(len(v.Elements)))
		for _, e := range v.Elements {
			hashNode(e, h, budget)
		}
	case *Box:
		hashNode(v.Value, h, budget)
	case *Procedure:
		writeInt(v.id)
	}
}

// HashOf returns the structural hash of a single value.
func HashOf(o Object) uint64 {
	h := fnv.New64a()
	Hash(o, h)
	return h.Sum64()
}
