package variant

import (
	"reflect"
)

type conversionRank int

const (
	rankExact conversionRank = iota
	rankPromotion
	rankConversion
	rankNone
)

type selection struct {
	index int
	err   error
}

// SelectedIndex returns the alternative a value of type typ converts to.
//
// Candidates are ranked the way an overload set taking each alternative by
// value would rank them: an exact type match beats an integral or floating
// promotion (small integers to int32, float32 to float64), which beats a
// conversion (non-narrowing integer widening, a named type to or from its
// underlying type, assignment to an interface the type implements). Narrowing
// conversions, conversions between integers and floats, signed to unsigned
// conversions and conversions to bool from anything but bool are never
// candidates. Several candidates at the best rank yield ErrAmbiguousType, none
// at all ErrNoAlternative.
func (t *Table) SelectedIndex(typ reflect.Type) (int, error) {
	sel, _ := t.selections.LoadOrCompute(typ, func() selection {
		return t.selectIndex(typ)
	})
	return sel.index, sel.err
}

func (t *Table) selectIndex(typ reflect.Type) selection {
	best := rankNone
	var candidates []int
	for i := range t.alts {
		r := rankOf(typ, t.alts[i].Type)
		switch {
		case r < best:
			best = r
			candidates = []int{i}
		case r == best && r != rankNone:
			candidates = append(candidates, i)
		}
	}
	switch len(candidates) {
	case 0:
		return selection{index: Npos, err: &SelectionError{Type: typ, Table: t.String(), Err: ErrNoAlternative}}
	case 1:
		return selection{index: candidates[0]}
	default:
		return selection{index: Npos, err: &SelectionError{Type: typ, Table: t.String(), Candidates: candidates, Err: ErrAmbiguousType}}
	}
}

func rankOf(from, to reflect.Type) conversionRank {
	if from == to {
		return rankExact
	}
	if to.Kind() == reflect.Interface {
		if from.Implements(to) {
			return rankConversion
		}
		return rankNone
	}

	fk, tk := from.Kind(), to.Kind()
	switch {
	case isSigned(fk) && isSigned(tk):
		if from.Size() < 4 && tk == reflect.Int32 {
			return rankPromotion
		}
		if to.Size() >= from.Size() {
			return rankConversion
		}
	case isUnsigned(fk) && isUnsigned(tk):
		if to.Size() >= from.Size() {
			return rankConversion
		}
	case isUnsigned(fk) && isSigned(tk):
		if from.Size() < 4 && tk == reflect.Int32 {
			return rankPromotion
		}
		if to.Size() > from.Size() {
			return rankConversion
		}
	case isFloat(fk) && isFloat(tk):
		if fk == reflect.Float32 && tk == reflect.Float64 {
			return rankPromotion
		}
		if to.Size() >= from.Size() {
			return rankConversion
		}
	case isComplex(fk) && isComplex(tk):
		if to.Size() >= from.Size() {
			return rankConversion
		}
	case fk == tk && !isNumeric(fk):
		if from.ConvertibleTo(to) {
			return rankConversion
		}
	case from.AssignableTo(to):
		return rankConversion
	}
	return rankNone
}

func isSigned(k reflect.Kind) bool {
	return k >= reflect.Int && k <= reflect.Int64
}

func isUnsigned(k reflect.Kind) bool {
	return k >= reflect.Uint && k <= reflect.Uintptr
}

func isFloat(k reflect.Kind) bool {
	return k == reflect.Float32 || k == reflect.Float64
}

func isComplex(k reflect.Kind) bool {
	return k == reflect.Complex64 || k == reflect.Complex128
}

func isNumeric(k reflect.Kind) bool {
	return isSigned(k) || isUnsigned(k) || isFloat(k) || isComplex(k)
}

// convertValue converts v to typ. The caller has already ranked the
// conversion as a candidate.
func convertValue(v reflect.Value, typ reflect.Type) reflect.Value {
	switch {
	case v.Type() == typ:
		return v
	case typ.Kind() == reflect.Interface:
		out := reflect.New(typ).Elem()
		if v.IsValid() {
			out.Set(v)
		}
		return out
	default:
		return v.Convert(typ)
	}
}
