package variant

import (
	"reflect"

	"github.com/google/go-cmp/cmp"
)

// Destroyer is implemented by alternatives that release resources when they
// stop being the live alternative. Alt wires it automatically when *T
// implements it.
type Destroyer interface {
	Destroy()
}

// Traits records what an alternative's lifecycle hooks can do.
type Traits struct {
	// NothrowDefault is false when default construction runs a failing hook.
	NothrowDefault bool
	// NothrowCopy is false when copy construction runs a failing hook.
	NothrowCopy bool
	// NothrowMove is false when move construction runs a failing hook.
	NothrowMove bool
	// CopyAssignable is true when a live value can be overwritten in place.
	CopyAssignable bool
	// Destructible is true when the alternative has a Destroy hook.
	Destructible bool
	// Category is the ordering the alternative supports.
	Category Category
}

// hooks are the type-erased operations of one alternative. Every pointer
// argument is a *T of that alternative.
type hooks struct {
	alloc  func() any
	init   func(dst any) error
	copy   func(dst, src any) error
	move   func(dst, src any) error
	assign func(dst, src any) error
	// moveAssign is nil exactly when assign is.
	moveAssign func(dst, src any) error
	destroy    func(p any)
	equal      func(a, b any) bool
	compare    func(a, b any) Ordering
	hash       func(p any) uint64
}

// Spec describes one alternative before it is placed in a Table.
type Spec struct {
	name   string
	typ    reflect.Type
	traits Traits
	hooks  hooks
}

// Name returns the alternative name given to Alt.
func (s Spec) Name() string { return s.name }

// Type returns the alternative type.
func (s Spec) Type() reflect.Type { return s.typ }

type altConfig[T any] struct {
	init     func(*T) error
	copy     func(dst, src *T) error
	move     func(dst, src *T) error
	assign   func(dst, src *T) error
	noAssign bool
	destroy  func(*T)
	equal    func(a, b *T) bool
	compare  func(a, b *T) Ordering
	category Category
	hash     func(*T) uint64
}

// AltOption configures the hooks of one alternative.
type AltOption[T any] func(*altConfig[T])

// WithInit sets the default constructor run on a zero T.
func WithInit[T any](fn func(*T) error) AltOption[T] {
	return func(c *altConfig[T]) { c.init = fn }
}

// WithCopy sets the copy constructor; dst is a zero T.
func WithCopy[T any](fn func(dst, src *T) error) AltOption[T] {
	return func(c *altConfig[T]) { c.copy = fn }
}

// WithMove sets the move constructor; dst is a zero T. The source keeps its
// alternative in whatever state the hook leaves it.
func WithMove[T any](fn func(dst, src *T) error) AltOption[T] {
	return func(c *altConfig[T]) { c.move = fn }
}

// WithAssign sets the copy assignment run when the same alternative is live
// on both sides.
func WithAssign[T any](fn func(dst, src *T) error) AltOption[T] {
	return func(c *altConfig[T]) { c.assign = fn }
}

// WithoutAssign marks the alternative as not copy-assignable; assignment then
// destroys and reconstructs it.
func WithoutAssign[T any]() AltOption[T] {
	return func(c *altConfig[T]) { c.noAssign = true }
}

// WithDestroy sets the destructor.
func WithDestroy[T any](fn func(*T)) AltOption[T] {
	return func(c *altConfig[T]) { c.destroy = fn }
}

// WithEqual sets the equality used by Equal.
func WithEqual[T any](fn func(a, b *T) bool) AltOption[T] {
	return func(c *altConfig[T]) { c.equal = fn }
}

// WithCompare sets the three-way comparison and the ordering category it
// provides.
func WithCompare[T any](fn func(a, b *T) Ordering, category Category) AltOption[T] {
	return func(c *altConfig[T]) {
		c.compare = fn
		c.category = category
	}
}

// WithHash sets the value hash mixed into Hash.
func WithHash[T any](fn func(*T) uint64) AltOption[T] {
	return func(c *altConfig[T]) { c.hash = fn }
}

// Alt describes an alternative of type T.
func Alt[T any](name string, opts ...AltOption[T]) Spec {
	var cfg altConfig[T]
	for _, opt := range opts {
		opt(&cfg)
	}
	typ := reflect.TypeFor[T]()

	s := Spec{
		name: name,
		typ:  typ,
		traits: Traits{
			NothrowDefault: cfg.init == nil,
			NothrowCopy:    cfg.copy == nil,
			NothrowMove:    cfg.move == nil,
			CopyAssignable: !cfg.noAssign,
		},
	}

	h := &s.hooks
	h.alloc = func() any { return new(T) }
	if cfg.init != nil {
		h.init = func(dst any) error { return cfg.init(dst.(*T)) }
	}

	h.copy = func(dst, src any) error {
		*dst.(*T) = *src.(*T)
		return nil
	}
	if cfg.copy != nil {
		h.copy = func(dst, src any) error { return cfg.copy(dst.(*T), src.(*T)) }
	}

	h.move = func(dst, src any) error {
		d, s := dst.(*T), src.(*T)
		*d = *s
		var zero T
		*s = zero
		return nil
	}
	if cfg.move != nil {
		h.move = func(dst, src any) error { return cfg.move(dst.(*T), src.(*T)) }
	}

	switch {
	case cfg.noAssign:
	case cfg.assign != nil:
		h.assign = func(dst, src any) error { return cfg.assign(dst.(*T), src.(*T)) }
	case cfg.copy != nil:
		// a custom copy means plain assignment would skip it
		h.assign = func(dst, src any) error {
			var tmp T
			if err := cfg.copy(&tmp, src.(*T)); err != nil {
				return err
			}
			*dst.(*T) = tmp
			return nil
		}
	default:
		h.assign = h.copy
	}

	switch {
	case cfg.noAssign:
	case cfg.move != nil:
		h.moveAssign = func(dst, src any) error {
			var tmp T
			if err := cfg.move(&tmp, src.(*T)); err != nil {
				return err
			}
			*dst.(*T) = tmp
			return nil
		}
	case cfg.assign != nil:
		h.moveAssign = func(dst, src any) error {
			if err := cfg.assign(dst.(*T), src.(*T)); err != nil {
				return err
			}
			var zero T
			*src.(*T) = zero
			return nil
		}
	default:
		h.moveAssign = h.move
	}

	switch {
	case cfg.destroy != nil:
		h.destroy = func(p any) { cfg.destroy(p.(*T)) }
	default:
		if _, ok := any(new(T)).(Destroyer); ok {
			h.destroy = func(p any) { p.(Destroyer).Destroy() }
		}
	}
	s.traits.Destructible = h.destroy != nil

	h.equal = defaultEqual(typ)
	if cfg.equal != nil {
		h.equal = func(a, b any) bool { return cfg.equal(a.(*T), b.(*T)) }
	}

	h.compare, s.traits.Category = defaultCompare(typ)
	if cfg.compare != nil {
		h.compare = func(a, b any) Ordering { return cfg.compare(a.(*T), b.(*T)) }
		s.traits.Category = cfg.category
	}

	if cfg.hash != nil {
		h.hash = func(p any) uint64 { return cfg.hash(p.(*T)) }
	}
	return s
}

var exportAll = cmp.Exporter(func(reflect.Type) bool { return true })

func defaultEqual(typ reflect.Type) func(a, b any) bool {
	if typ.Comparable() && !holdsInterface(typ) {
		return func(a, b any) bool {
			return reflect.ValueOf(a).Elem().Interface() == reflect.ValueOf(b).Elem().Interface()
		}
	}
	return func(a, b any) bool {
		return cmp.Equal(reflect.ValueOf(a).Elem().Interface(), reflect.ValueOf(b).Elem().Interface(), exportAll)
	}
}

// holdsInterface reports whether == on typ can reach an interface value,
// whose dynamic type may not be comparable.
func holdsInterface(typ reflect.Type) bool {
	switch typ.Kind() {
	case reflect.Interface:
		return true
	case reflect.Array:
		return holdsInterface(typ.Elem())
	case reflect.Struct:
		for i := range typ.NumField() {
			if holdsInterface(typ.Field(i).Type) {
				return true
			}
		}
	}
	return false
}
