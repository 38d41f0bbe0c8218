package query

import "iter"

// Kind names the family of a column slot.
type Kind uint8

const (
	KindText Kind = iota + 1
	KindOrdered
	KindDiscrete
	KindOrder
)

func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindOrdered:
		return "ordered"
	case KindDiscrete:
		return "discrete"
	case KindOrder:
		return "order"
	default:
		return "unknown"
	}
}

// Slot is the populated value of one declared column. Only the variants in
// this package implement it. A nil Slot means the client left the column out.
type Slot interface {
	Kind() Kind
	isSlot()
}

// TextSlot carries a text filter.
type TextSlot struct {
	Values []string
	Op     TextOp
}

// OrderedSlot carries a numeric or date filter. List holds the caller's typed
// slice so it can be bound as one array argument.
type OrderedSlot struct {
	Values []any
	List   any
	Op     OrderedOp
}

// DiscreteSlot carries an enum or bool filter.
type DiscreteSlot struct {
	Values []any
	List   any
	Op     DiscreteOp
}

// OrderSlot carries a chosen sort direction.
type OrderSlot struct {
	Dir Direction
}

func (TextSlot) Kind() Kind     { return KindText }
func (OrderedSlot) Kind() Kind  { return KindOrdered }
func (DiscreteSlot) Kind() Kind { return KindDiscrete }
func (OrderSlot) Kind() Kind    { return KindOrder }

func (TextSlot) isSlot()     {}
func (OrderedSlot) isSlot()  {}
func (DiscreteSlot) isSlot() {}
func (OrderSlot) isSlot()    {}

// ColumnSet is implemented by a resource's filter and order declarations.
// Columns yields every declared column in declaration order, populated or not.
type ColumnSet interface {
	Columns() iter.Seq2[string, Slot]
}

// Column pairs a declared column name with its slot.
type Column struct {
	Name string
	Slot Slot
}

// Seq yields cols in the given order.
func Seq(cols ...Column) iter.Seq2[string, Slot] {
	return func(yield func(string, Slot) bool) {
		for _, c := range cols {
			if !yield(c.Name, c.Slot) {
				return
			}
		}
	}
}

func Text(name string, f *TextFilter) Column {
	if f == nil {
		return Column{Name: name}
	}
	return Column{Name: name, Slot: TextSlot{Values: f.Val, Op: f.Op}}
}

func Ordered[T any](name string, f *OrderedFilter[T]) Column {
	if f == nil {
		return Column{Name: name}
	}
	return Column{Name: name, Slot: OrderedSlot{Values: boxed(f.Val), List: f.Val, Op: f.Op}}
}

func Discrete[T any](name string, f *DiscreteFilter[T]) Column {
	if f == nil {
		return Column{Name: name}
	}
	return Column{Name: name, Slot: DiscreteSlot{Values: boxed(f.Val), List: f.Val, Op: f.Op}}
}

// By declares an order column.
func By(name string, d *Direction) Column {
	if d == nil {
		return Column{Name: name}
	}
	return Column{Name: name, Slot: OrderSlot{Dir: *d}}
}

func boxed[T any](vals []T) []any {
	out := make([]any, len(vals))
	for i, v := range vals {
		out[i] = v
	}
	return out
}
