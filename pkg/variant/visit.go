package variant

import (
	"fmt"
	"reflect"
	"slices"
	"strconv"

	"github.com/puzpuzpuz/xsync/v3"
	"github.com/samber/lo"

	"github.com/clockworklabs/SpacetimeDB/crates/variant-go/internal/dispatch"
)

// Case is one overload of a visitor. Build cases with On, On2, On3 and
// Otherwise.
type Case[R any] struct {
	// types are the alternative types the case accepts, nil for Otherwise.
	types    []reflect.Type
	fallback bool
	call     func(args []any) (R, error)
}

// On handles a single variant holding an A.
func On[A, R any](fn func(*A) (R, error)) Case[R] {
	return Case[R]{
		types: []reflect.Type{reflect.TypeFor[A]()},
		call:  func(args []any) (R, error) { return fn(args[0].(*A)) },
	}
}

// On2 handles two variants holding an A and a B.
func On2[A, B, R any](fn func(*A, *B) (R, error)) Case[R] {
	return Case[R]{
		types: []reflect.Type{reflect.TypeFor[A](), reflect.TypeFor[B]()},
		call:  func(args []any) (R, error) { return fn(args[0].(*A), args[1].(*B)) },
	}
}

// On3 handles three variants holding an A, a B and a C.
func On3[A, B, C, R any](fn func(*A, *B, *C) (R, error)) Case[R] {
	return Case[R]{
		types: []reflect.Type{reflect.TypeFor[A](), reflect.TypeFor[B](), reflect.TypeFor[C]()},
		call: func(args []any) (R, error) {
			return fn(args[0].(*A), args[1].(*B), args[2].(*C))
		},
	}
}

// Otherwise handles any combination no earlier case accepts. Each argument
// is a pointer to a live value.
func Otherwise[R any](fn func(args ...any) (R, error)) Case[R] {
	return Case[R]{
		fallback: true,
		call:     func(args []any) (R, error) { return fn(args...) },
	}
}

func (c Case[R]) accepts(types []reflect.Type) bool {
	return c.fallback || slices.Equal(c.types, types)
}

// Visitor is an overload set dispatched over the live alternatives of one or
// more variants. It is safe for concurrent use.
type Visitor[R any] struct {
	cases []Case[R]
	// compiled holds one dispatch table per combination of tables.
	compiled *xsync.MapOf[string, *dispatchTable[R]]
}

type dispatchTable[R any] struct {
	shape   dispatch.Shape
	entries []func(args []any) (R, error)
	err     error
}

// Match builds a Visitor from cases. For each combination of alternatives
// the first accepting case wins.
func Match[R any](cases ...Case[R]) *Visitor[R] {
	return &Visitor[R]{
		cases:    cases,
		compiled: xsync.NewMapOf[string, *dispatchTable[R]](),
	}
}

// Visit calls the case of vis that accepts the live alternatives of vs.
//
// The first visit of a combination of tables binds every combination of
// their alternatives to a case through a flat key. A combination no case
// accepts fails every visit over those tables with a *NotExhaustiveError,
// and a combination count above Config.MaxDispatchKeys with
// ErrDispatchTooLarge. A valueless participant yields a *BadAccess.
func Visit[R any](vis *Visitor[R], vs ...*Variant) (R, error) {
	var zero R
	if len(vs) == 0 {
		for _, c := range vis.cases {
			if c.fallback {
				return c.call(nil)
			}
		}
		return zero, ErrNotExhaustive
	}

	subs := make([]int, len(vs))
	args := make([]any, len(vs))
	for i, v := range vs {
		if v.Valueless() {
			return zero, &BadAccess{Valueless: true, Want: Npos, Have: Npos}
		}
		subs[i] = v.Index()
		args[i] = v.storage
	}

	tbl := vis.table(vs)
	if tbl.err != nil {
		return zero, tbl.err
	}
	key, err := tbl.shape.Encode(subs...)
	if err != nil {
		return zero, err
	}
	return tbl.entries[key](args)
}

// VisitIndexed calls fn with the live index of v and a pointer to its value.
func VisitIndexed[R any](v *Variant, fn func(idx int, alt any) (R, error)) (R, error) {
	var zero R
	if v.Valueless() {
		return zero, &BadAccess{Valueless: true, Want: Npos, Have: Npos}
	}
	return fn(v.Index(), v.storage)
}

func (vis *Visitor[R]) table(vs []*Variant) *dispatchTable[R] {
	buf := make([]byte, 0, 8*len(vs))
	for i, v := range vs {
		if i > 0 {
			buf = append(buf, ',')
		}
		buf = strconv.AppendUint(buf, v.table.id, 10)
	}
	tbl, _ := vis.compiled.LoadOrCompute(string(buf), func() *dispatchTable[R] {
		return vis.compile(lo.Map(vs, func(v *Variant, _ int) *Table { return v.table }))
	})
	return tbl
}

func (vis *Visitor[R]) compile(tables []*Table) *dispatchTable[R] {
	limit := tables[0].config.MaxDispatchKeys
	for _, t := range tables[1:] {
		limit = min(limit, t.config.MaxDispatchKeys)
	}
	size := 1
	for _, t := range tables {
		if size > limit/t.Len() {
			return &dispatchTable[R]{err: fmt.Errorf("%w: more than %d keys", ErrDispatchTooLarge, limit)}
		}
		size *= t.Len()
	}

	shape, err := dispatch.NewShape(lo.Map(tables, func(t *Table, _ int) int { return t.Len() })...)
	if err != nil {
		return &dispatchTable[R]{err: err}
	}
	tbl := &dispatchTable[R]{
		shape:   shape,
		entries: make([]func(args []any) (R, error), shape.Size()),
	}
	for _, k := range shape.Keys() {
		types := make([]reflect.Type, len(tables))
		for i, sub := range k.Subindices {
			types[i] = tables[i].alts[sub].Type
		}
		c, ok := lo.Find(vis.cases, func(c Case[R]) bool { return c.accepts(types) })
		if !ok {
			tbl.err = &NotExhaustiveError{Types: types}
			break
		}
		tbl.entries[k.Index] = c.call
	}

	tables[0].logger().V(1).Info("compiled dispatch table", "rank", shape.Rank(), "keys", shape.Size(), "exhaustive", tbl.err == nil)
	return tbl
}
