package variant

import (
	"reflect"
)

// Empty returns a valueless Variant of t.
func Empty(t *Table) *Variant {
	return &Variant{table: t}
}

// New default-constructs the first alternative of t: its WithInit hook when
// one is set, the zero value otherwise. A failing hook leaves no value and is
// returned together with the valueless Variant.
func New(t *Table) (*Variant, error) {
	v := Empty(t)
	return v, v.constructDefault(0)
}

// InPlaceIndex constructs the alternative at idx from val.
func InPlaceIndex[T any](t *Table, idx int, val T) (*Variant, error) {
	v := Empty(t)
	if err := checkType[T](t, idx); err != nil {
		return v, err
	}
	return v, v.constructMove(idx, &val)
}

// InPlaceIndexFunc constructs the alternative at idx by running ctor on its
// zero value.
func InPlaceIndexFunc[T any](t *Table, idx int, ctor func(*T) error) (*Variant, error) {
	v := Empty(t)
	if err := checkType[T](t, idx); err != nil {
		return v, err
	}
	return v, v.construct(idx, func(p any) error { return ctor(p.(*T)) })
}

// InPlaceType constructs the alternative whose type is exactly T.
func InPlaceType[T any](t *Table, val T) (*Variant, error) {
	idx, err := IndexOf[T](t)
	if err != nil {
		return Empty(t), err
	}
	return InPlaceIndex(t, idx, val)
}

// From constructs the alternative val converts to under SelectedIndex.
func From[T any](t *Table, val T) (*Variant, error) {
	v := Empty(t)
	idx, src, err := convertInto(t, val)
	if err != nil {
		return v, err
	}
	return v, v.constructMove(idx, src)
}

// Clone copy-constructs a new Variant holding the same alternative as v.
func (v *Variant) Clone() (*Variant, error) {
	out := Empty(v.table)
	if v.Valueless() {
		return out, nil
	}
	alt := v.alt()
	return out, out.construct(alt.Index, func(p any) error { return alt.hooks.copy(p, v.storage) })
}

// Take move-constructs a new Variant from src. src keeps its alternative in
// the state the move hook leaves it.
func Take(src *Variant) (*Variant, error) {
	out := Empty(src.table)
	if src.Valueless() {
		return out, nil
	}
	alt := src.alt()
	return out, out.construct(alt.Index, func(p any) error { return alt.hooks.move(p, src.storage) })
}

// Reset destroys the live alternative, if any, leaving v valueless.
func (v *Variant) Reset() {
	if v.Valueless() {
		return
	}
	if destroy := v.alt().hooks.destroy; destroy != nil {
		destroy(v.storage)
	}
	v.storage, v.live = nil, 0
}

// Close resets v. It lets a Variant holding resources be used as an
// io.Closer.
func (v *Variant) Close() error {
	v.Reset()
	return nil
}

// Emplace replaces the live alternative with the alternative whose type is
// exactly T, constructed from val.
func Emplace[T any](v *Variant, val T) error {
	if v.table == nil {
		return ErrNoTable
	}
	idx, err := IndexOf[T](v.table)
	if err != nil {
		return err
	}
	return EmplaceAt(v, idx, val)
}

// EmplaceAt replaces the live alternative with the alternative at idx,
// constructed from val. When construction fails v is left valueless.
func EmplaceAt[T any](v *Variant, idx int, val T) error {
	if v.table == nil {
		return ErrNoTable
	}
	if err := checkType[T](v.table, idx); err != nil {
		return err
	}
	v.Reset()
	return v.constructMove(idx, &val)
}

// EmplaceFunc replaces the live alternative with the alternative at idx,
// built by ctor from its zero value. When ctor fails or panics v is left
// valueless.
func EmplaceFunc[T any](v *Variant, idx int, ctor func(*T) error) error {
	if v.table == nil {
		return ErrNoTable
	}
	if err := checkType[T](v.table, idx); err != nil {
		return err
	}
	v.Reset()
	return v.construct(idx, func(p any) error { return ctor(p.(*T)) })
}

// construct is the only transition out of the valueless state. v must be
// valueless. The discriminator is set once fill returns nil, so an error or a
// panic from fill leaves v valueless.
func (v *Variant) construct(idx int, fill func(p any) error) error {
	if v.table == nil {
		return ErrNoTable
	}
	alt := &v.table.alts[idx]
	p := alt.hooks.alloc()
	if err := fill(p); err != nil {
		v.table.logger().V(1).Info("construction failed, variant is valueless", "index", idx, "type", alt.Type.String(), "error", err.Error())
		return err
	}
	v.storage, v.live = p, idx+1
	return nil
}

func (v *Variant) constructDefault(idx int) error {
	if v.table == nil {
		return ErrNoTable
	}
	init := v.table.alts[idx].hooks.init
	return v.construct(idx, func(p any) error {
		if init == nil {
			return nil
		}
		return init(p)
	})
}

// constructMove move-constructs the alternative at idx from src, a *T of
// that alternative.
func (v *Variant) constructMove(idx int, src any) error {
	if v.table == nil {
		return ErrNoTable
	}
	move := v.table.alts[idx].hooks.move
	return v.construct(idx, func(p any) error { return move(p, src) })
}

// convertInto selects the alternative for val and returns a pointer to val
// converted to its type.
func convertInto[T any](t *Table, val T) (int, any, error) {
	if t == nil {
		return Npos, nil, ErrNoTable
	}
	typ := reflect.TypeFor[T]()
	idx, err := t.SelectedIndex(typ)
	if err != nil {
		return Npos, nil, err
	}
	altType := t.alts[idx].Type
	if altType == typ {
		return idx, &val, nil
	}
	src := reflect.New(altType)
	src.Elem().Set(convertValue(reflect.ValueOf(&val).Elem(), altType))
	return idx, src.Interface(), nil
}
