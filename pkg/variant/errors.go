package variant

import (
	"errors"
	"fmt"
	"reflect"
)

var (
	// ErrBadAccess matches every *BadAccess through errors.Is.
	ErrBadAccess = errors.New("variant: bad variant access")
	// ErrEmptyTable is returned when a table is built without alternatives.
	ErrEmptyTable = errors.New("variant: table needs at least one alternative")
	// ErrNoTable is returned by operations on a Variant that has no table.
	ErrNoTable = errors.New("variant: variant has no alternative table")
	// ErrTableMismatch is returned when two variants of different tables meet.
	ErrTableMismatch = errors.New("variant: variants use different alternative tables")
	// ErrIndexOutOfRange is returned for an alternative index outside [0, n).
	ErrIndexOutOfRange = errors.New("variant: alternative index out of range")
	// ErrTypeMismatch is returned when a typed accessor names the wrong type
	// for an alternative index.
	ErrTypeMismatch = errors.New("variant: type does not match alternative")
	// ErrNoAlternative is returned when no alternative accepts a type.
	ErrNoAlternative = errors.New("variant: no alternative matches type")
	// ErrAmbiguousType is returned when several alternatives accept a type
	// equally well.
	ErrAmbiguousType = errors.New("variant: type matches more than one alternative")
	// ErrNotOrdered is returned by ordered comparisons when an alternative
	// has no ordering.
	ErrNotOrdered = errors.New("variant: alternatives are not ordered")
	// ErrNotExhaustive is returned when a visitor has no case for a
	// combination of alternatives.
	ErrNotExhaustive = errors.New("variant: visitor is not exhaustive")
	// ErrDispatchTooLarge is returned when a dispatch table would exceed
	// Config.MaxDispatchKeys entries.
	ErrDispatchTooLarge = errors.New("variant: dispatch table too large")
	// ErrValueless is returned when encoding a valueless variant.
	ErrValueless = errors.New("variant: variant is valueless")
)

// BadAccess reports an access to an alternative that is not live.
type BadAccess struct {
	// Valueless is true when the variant held no alternative at all.
	Valueless bool
	// Want is the requested alternative index, or Npos for dispatch.
	Want int
	// Have is the live alternative index, or Npos.
	Have int
}

func (e *BadAccess) Error() string {
	if e.Valueless {
		return "variant: bad variant access: variant is valueless"
	}
	return fmt.Sprintf("variant: bad variant access: wrong index for variant (want %d, have %d)", e.Want, e.Have)
}

// Is makes errors.Is(err, ErrBadAccess) match.
func (e *BadAccess) Is(target error) bool {
	return target == ErrBadAccess
}

// SelectionError reports why a type could not select an alternative.
type SelectionError struct {
	Type       reflect.Type
	Table      string
	Candidates []int
	Err        error
}

func (e *SelectionError) Error() string {
	if len(e.Candidates) > 0 {
		return fmt.Sprintf("%v: %s in table %q (candidates %v)", e.Err, e.Type, e.Table, e.Candidates)
	}
	return fmt.Sprintf("%v: %s in table %q", e.Err, e.Type, e.Table)
}

func (e *SelectionError) Unwrap() error {
	return e.Err
}

// NotExhaustiveError names the first combination of alternatives a visitor
// does not handle.
type NotExhaustiveError struct {
	Types []reflect.Type
}

func (e *NotExhaustiveError) Error() string {
	return fmt.Sprintf("%v: no case for %v", ErrNotExhaustive, e.Types)
}

func (e *NotExhaustiveError) Unwrap() error {
	return ErrNotExhaustive
}
