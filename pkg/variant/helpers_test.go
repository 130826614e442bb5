package variant

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

var (
	errBoom    = errors.New("boom")
	errFragile = errors.New("fragile move failed")
	errFlaky   = errors.New("flaky move failed")
)

// resource counts the objects its hooks construct and destroy, so tests can
// check that exactly the live alternatives are owed a destroy.
type resource struct {
	name string
}

type ledger struct {
	constructed int
	destroyed   int
	failInit    bool
	failCopy    bool
	failAssign  bool
	panicInit   bool
}

func (l *ledger) live() int {
	return l.constructed - l.destroyed
}

func resourceAlt(l *ledger) Spec {
	return Alt[resource]("resource",
		WithInit(func(p *resource) error {
			if l.panicInit {
				panic("resource init")
			}
			if l.failInit {
				return errBoom
			}
			p.name = "init"
			l.constructed++
			return nil
		}),
		WithCopy(func(dst, src *resource) error {
			if l.failCopy {
				return errBoom
			}
			*dst = *src
			l.constructed++
			return nil
		}),
		WithMove(func(dst, src *resource) error {
			*dst = *src
			src.name = ""
			l.constructed++
			return nil
		}),
		WithAssign(func(dst, src *resource) error {
			if l.failAssign {
				dst.name = "partial"
				return errBoom
			}
			dst.name = src.name
			return nil
		}),
		WithDestroy(func(*resource) { l.destroyed++ }),
	)
}

// fragile fails to move out of a value whose fail flag is set.
type fragile struct {
	n    int
	fail bool
}

func fragileAlt() Spec {
	return Alt[fragile]("fragile", WithMove(func(dst, src *fragile) error {
		if src.fail {
			return errFragile
		}
		*dst = *src
		return nil
	}))
}

// flaky allows a fixed number of moves out of a value.
type flaky struct {
	moves int
}

func flakyAlt() Spec {
	return Alt[flaky]("flaky", WithMove(func(dst, src *flaky) error {
		if src.moves == 0 {
			return errFlaky
		}
		*dst = *src
		dst.moves--
		return nil
	}))
}

func newTable(t *testing.T, specs ...Spec) *Table {
	t.Helper()
	tbl, err := NewTable(specs...)
	require.NoError(t, err)
	return tbl
}

func mustFrom[T any](t *testing.T, tbl *Table, val T) *Variant {
	t.Helper()
	v, err := From(tbl, val)
	require.NoError(t, err)
	return v
}

func mustAt[T any](t *testing.T, tbl *Table, idx int, val T) *Variant {
	t.Helper()
	v, err := InPlaceIndex(tbl, idx, val)
	require.NoError(t, err)
	return v
}

// valueless builds a Variant of tbl whose construction failed.
func valueless(t *testing.T, tbl *Table) *Variant {
	t.Helper()
	v, err := InPlaceIndexFunc(tbl, 0, func(p *int) error { return errBoom })
	require.ErrorIs(t, err, errBoom)
	require.True(t, v.Valueless())
	return v
}
