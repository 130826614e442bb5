package variant

import (
	"fmt"
	"reflect"
)

// Npos is the index reported by a valueless Variant.
const Npos = -1

// Variant holds at most one alternative of its Table. The zero Variant has
// no table and is valueless.
//
// A Variant is not safe for concurrent mutation.
type Variant struct {
	table *Table
	// storage is a *T of the live alternative, nil when valueless.
	storage any
	// live is the live index plus one, so that the zero value is valueless.
	live int
}

// Table returns the alternative table of v.
func (v *Variant) Table() *Table {
	return v.table
}

// Index returns the live alternative index, or Npos when v is valueless.
func (v *Variant) Index() int {
	return v.live - 1
}

// Valueless reports whether v holds no alternative.
func (v *Variant) Valueless() bool {
	return v.live == 0
}

// Holds reports whether the alternative at idx is live.
func (v *Variant) Holds(idx int) bool {
	return !v.Valueless() && v.Index() == idx
}

// HoldsAlternative reports whether the live alternative has type T. T must
// name exactly one alternative; otherwise the result is false.
func HoldsAlternative[T any](v *Variant) bool {
	if v.table == nil {
		return false
	}
	idx, err := IndexOf[T](v.table)
	return err == nil && v.Holds(idx)
}

// Value returns a copy of the live value, or nil when v is valueless.
func (v *Variant) Value() any {
	if v.Valueless() {
		return nil
	}
	return reflect.ValueOf(v.storage).Elem().Interface()
}

// Ptr returns the *T pointing at the live value, or nil when v is
// valueless. The pointer stays valid until the live alternative changes.
func (v *Variant) Ptr() any {
	return v.storage
}

// Get returns a pointer to the live value when it has type T. T must name
// exactly one alternative.
func Get[T any](v *Variant) (*T, error) {
	if v.table == nil {
		return nil, &BadAccess{Valueless: true, Want: Npos, Have: Npos}
	}
	idx, err := IndexOf[T](v.table)
	if err != nil {
		return nil, err
	}
	return GetAt[T](v, idx)
}

// GetAt returns a pointer to the live value when idx is the live index. A
// mismatch or a valueless v yields a *BadAccess.
func GetAt[T any](v *Variant, idx int) (*T, error) {
	if v.table == nil {
		return nil, &BadAccess{Valueless: true, Want: idx, Have: Npos}
	}
	if err := checkType[T](v.table, idx); err != nil {
		return nil, err
	}
	if v.Valueless() {
		return nil, &BadAccess{Valueless: true, Want: idx, Have: Npos}
	}
	if have := v.Index(); have != idx {
		return nil, &BadAccess{Want: idx, Have: have}
	}
	return v.storage.(*T), nil
}

// GetIf is Get that returns nil instead of an error.
func GetIf[T any](v *Variant) *T {
	p, _ := Get[T](v)
	return p
}

// GetIfAt is GetAt that returns nil instead of an error.
func GetIfAt[T any](v *Variant, idx int) *T {
	p, _ := GetAt[T](v, idx)
	return p
}

func (v *Variant) String() string {
	if v.Valueless() {
		return "valueless"
	}
	return fmt.Sprintf("%d(%v)", v.Index(), v.Value())
}

func (v *Variant) alt() *Alternative {
	return &v.table.alts[v.live-1]
}
