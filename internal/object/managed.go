package object

// Tag is the token a tracing collector uses to mark a value reachable during
// one sweep. Any value, 0 included, is a valid tag, and tags may wrap: a
// value that has never been marked is always walked by its first mark.
type Tag uint8

// Traceable values propagate a trace tag to the values they reference.
type Traceable interface {
	Mark(tag Tag)
}

// Managed holds collector-owned tracing state. Embed it in any value that
// takes part in a trace.
type Managed struct {
	tag    Tag
	marked bool
}

func (m *Managed) Tag() Tag { return m.tag }

// retag records tag and reports whether it was not already set, so shared
// sub-graphs and cycles are only walked once per sweep.
func (m *Managed) retag(tag Tag) bool {
	if m.marked && m.tag == tag {
		return false
	}
	m.tag, m.marked = tag, true
	return true
}

// Mark forwards tag to o. Pairs are walked in place and stop at pairs
// already carrying tag; atoms carry no tracing state.
func Mark(o Object, tag Tag) {
	for {
		switch v := o.(type) {
		case *Pair:
			if !v.retag(tag) {
				return
			}
			Mark(v.Car, tag)
			o = v.Cdr
			continue
		case Traceable:
			v.Mark(tag)
		}
		return
	}
}
