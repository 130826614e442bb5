package variant

import (
	"cmp"
	"fmt"
	"math"
	"reflect"
	"strconv"
)

// Ordering is the result of a three-way comparison.
type Ordering int8

const (
	OrderLess       Ordering = -1
	OrderEquivalent Ordering = 0
	OrderGreater    Ordering = 1
	// OrderUnordered is produced by partial orderings, for example a NaN
	// operand.
	OrderUnordered Ordering = 2
)

func (o Ordering) String() string {
	switch o {
	case OrderLess:
		return "less"
	case OrderEquivalent:
		return "equivalent"
	case OrderGreater:
		return "greater"
	case OrderUnordered:
		return "unordered"
	default:
		return "Ordering(" + strconv.Itoa(int(o)) + ")"
	}
}

// Category is the strength of the ordering an alternative supports. Larger is
// stronger.
type Category uint8

const (
	NoOrdering Category = iota
	PartialOrdering
	WeakOrdering
	StrongOrdering
)

func (c Category) String() string {
	switch c {
	case NoOrdering:
		return "none"
	case PartialOrdering:
		return "partial"
	case WeakOrdering:
		return "weak"
	case StrongOrdering:
		return "strong"
	default:
		return "Category(" + strconv.Itoa(int(c)) + ")"
	}
}

// commonCategory returns the weakest of cats, StrongOrdering when empty.
func commonCategory(cats ...Category) Category {
	out := StrongOrdering
	for _, c := range cats {
		out = min(out, c)
	}
	return out
}

func fromCmp(n int) Ordering {
	switch {
	case n < 0:
		return OrderLess
	case n > 0:
		return OrderGreater
	default:
		return OrderEquivalent
	}
}

// defaultCompare picks the built-in ordering for typ. Types without one get a
// nil comparison and NoOrdering.
func defaultCompare(typ reflect.Type) (func(a, b any) Ordering, Category) {
	elems := func(a, b any) (reflect.Value, reflect.Value) {
		return reflect.ValueOf(a).Elem(), reflect.ValueOf(b).Elem()
	}
	switch typ.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return func(a, b any) Ordering {
			x, y := elems(a, b)
			return fromCmp(cmp.Compare(x.Int(), y.Int()))
		}, StrongOrdering
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return func(a, b any) Ordering {
			x, y := elems(a, b)
			return fromCmp(cmp.Compare(x.Uint(), y.Uint()))
		}, StrongOrdering
	case reflect.String:
		return func(a, b any) Ordering {
			x, y := elems(a, b)
			return fromCmp(cmp.Compare(x.String(), y.String()))
		}, StrongOrdering
	case reflect.Bool:
		return func(a, b any) Ordering {
			x, y := elems(a, b)
			switch {
			case x.Bool() == y.Bool():
				return OrderEquivalent
			case y.Bool():
				return OrderLess
			default:
				return OrderGreater
			}
		}, StrongOrdering
	case reflect.Float32, reflect.Float64:
		return func(a, b any) Ordering {
			x, y := elems(a, b)
			fx, fy := x.Float(), y.Float()
			if math.IsNaN(fx) || math.IsNaN(fy) {
				return OrderUnordered
			}
			return fromCmp(cmp.Compare(fx, fy))
		}, PartialOrdering
	case reflect.Struct:
		if typ.NumField() == 0 {
			return func(a, b any) Ordering { return OrderEquivalent }, StrongOrdering
		}
	}
	return nil, NoOrdering
}

// Equal reports whether a and b hold the same alternative with equal values.
// Two valueless variants are equal. Variants of different tables are never
// equal.
func Equal(a, b *Variant) bool {
	if a.Index() != b.Index() {
		return false
	}
	if a.Valueless() {
		return true
	}
	if a.table != b.table {
		return false
	}
	return a.table.alts[a.Index()].hooks.equal(a.storage, b.storage)
}

// NotEqual is !Equal(a, b).
func NotEqual(a, b *Variant) bool {
	return !Equal(a, b)
}

// Compare orders a against b. A valueless variant sorts before every other
// variant and is equivalent only to another valueless one. Otherwise the lower
// index is less, and equal indices compare the held values.
func Compare(a, b *Variant) (Ordering, error) {
	if a.table != nil && b.table != nil && a.table != b.table {
		return OrderUnordered, ErrTableMismatch
	}
	switch {
	case a.Valueless() && b.Valueless():
		return OrderEquivalent, nil
	case a.Valueless():
		return OrderLess, nil
	case b.Valueless():
		return OrderGreater, nil
	}
	ia, ib := a.Index(), b.Index()
	if ia != ib {
		return fromCmp(cmp.Compare(ia, ib)), nil
	}
	alt := &a.table.alts[ia]
	if alt.hooks.compare == nil {
		return OrderUnordered, fmt.Errorf("%w: alternative %d (%s)", ErrNotOrdered, ia, alt.Type)
	}
	return alt.hooks.compare(a.storage, b.storage), nil
}

// Less reports a < b.
func Less(a, b *Variant) (bool, error) {
	o, err := Compare(a, b)
	return o == OrderLess, err
}

// LessOrEqual reports a <= b.
func LessOrEqual(a, b *Variant) (bool, error) {
	o, err := Compare(a, b)
	return o == OrderLess || o == OrderEquivalent, err
}

// Greater reports a > b.
func Greater(a, b *Variant) (bool, error) {
	o, err := Compare(a, b)
	return o == OrderGreater, err
}

// GreaterOrEqual reports a >= b.
func GreaterOrEqual(a, b *Variant) (bool, error) {
	o, err := Compare(a, b)
	return o == OrderGreater || o == OrderEquivalent, err
}
