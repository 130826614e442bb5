package variant

// CopyFrom makes v hold a copy of other's alternative.
//
// When both hold the same copy-assignable alternative the value is assigned
// in place and pointers into v stay valid; a failing assignment keeps the
// discriminator. Otherwise the live alternative of v is destroyed and a copy
// is constructed, and a failing copy leaves v valueless. A valueless other
// resets v.
func (v *Variant) CopyFrom(other *Variant) error {
	if v == other {
		return nil
	}
	if err := v.bind(other); err != nil {
		return err
	}
	if other.Valueless() {
		v.Reset()
		return nil
	}
	alt := other.alt()
	if v.Holds(alt.Index) && alt.hooks.assign != nil {
		return alt.hooks.assign(v.storage, other.storage)
	}
	v.Reset()
	return v.construct(alt.Index, func(p any) error { return alt.hooks.copy(p, other.storage) })
}

// MoveFrom is CopyFrom using the move hooks. other keeps its alternative in
// the state the move leaves it; with the default hooks that is the zero value.
func (v *Variant) MoveFrom(other *Variant) error {
	if v == other {
		return nil
	}
	if err := v.bind(other); err != nil {
		return err
	}
	if other.Valueless() {
		v.Reset()
		return nil
	}
	alt := other.alt()
	if v.Holds(alt.Index) && alt.hooks.moveAssign != nil {
		return alt.hooks.moveAssign(v.storage, other.storage)
	}
	v.Reset()
	return v.construct(alt.Index, func(p any) error { return alt.hooks.move(p, other.storage) })
}

// Assign is converting assignment: val goes to the alternative chosen by
// SelectedIndex, in place when that alternative is live and assignable.
// Selection errors are returned before v changes.
func Assign[T any](v *Variant, val T) error {
	idx, src, err := convertInto(v.table, val)
	if err != nil {
		return err
	}
	alt := &v.table.alts[idx]
	if v.Holds(idx) && alt.hooks.moveAssign != nil {
		return alt.hooks.moveAssign(v.storage, src)
	}
	v.Reset()
	return v.constructMove(idx, src)
}

// bind gives a tableless v the table of other and rejects variants of
// different tables.
func (v *Variant) bind(other *Variant) error {
	switch {
	case other.table == nil:
		return nil
	case v.table == nil:
		v.table = other.table
		return nil
	case v.table != other.table:
		return ErrTableMismatch
	}
	return nil
}
