package variant

import (
	"go.uber.org/multierr"
)

// Swap exchanges the alternatives of a and b.
//
// The second operand is moved into a temporary, the first is moved into the
// second and the temporary into the first. When only one operand moves
// without failing it is taken as the second. If moving the first operand
// fails and Config.SwapRecovery is set, the temporary is moved back so that
// the second operand keeps its value; a failing recovery leaves it valueless
// and both errors are returned.
func Swap(a, b *Variant) error {
	if a == b || (a.Valueless() && b.Valueless()) {
		return nil
	}
	switch {
	case a.table == nil:
		a.table = b.table
	case b.table == nil:
		b.table = a.table
	case a.table != b.table:
		return ErrTableMismatch
	}

	lhs, rhs := a, b
	if lhs.canMoveNothrow() && !rhs.canMoveNothrow() {
		lhs, rhs = rhs, lhs
	}

	tmp, err := Take(rhs)
	if err != nil {
		return err
	}
	if err := moveInto(rhs, lhs); err != nil {
		if !lhs.table.config.SwapRecovery {
			return err
		}
		if rerr := moveInto(rhs, tmp); rerr != nil {
			lhs.table.logger().Error(rerr, "swap recovery failed, variant is valueless", "cause", err.Error())
			return multierr.Append(err, rerr)
		}
		lhs.table.logger().Info("swap failed, restored second operand", "index", rhs.Index(), "cause", err.Error())
		return err
	}
	return moveInto(lhs, tmp)
}

// canMoveNothrow reports whether moving out of v cannot fail.
func (v *Variant) canMoveNothrow() bool {
	return v.Valueless() || v.alt().Traits.NothrowMove
}

// moveInto replaces the live alternative of dst with one moved from src.
// dst is valueless when src is or when the move fails.
func moveInto(dst, src *Variant) error {
	dst.Reset()
	if src.Valueless() {
		return nil
	}
	alt := src.alt()
	return dst.construct(alt.Index, func(p any) error { return alt.hooks.move(p, src.storage) })
}
