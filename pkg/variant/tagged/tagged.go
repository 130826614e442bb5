// Package tagged names the alternatives of a variant with the values of an
// integer enum, so that callers can switch on a tag instead of an index.
//
//	type Shape uint8
//
//	const (
//		Circle Shape = iota
//		Square
//	)
//
//	func (s Shape) String() string { ... }
//
//	var shapes = tagged.MustSchema(
//		tagged.Alt[float64](Circle),
//		tagged.Alt[[2]float64](Square),
//	)
//
//	v, _ := tagged.Of(shapes, Square, [2]float64{1, 2})
//	switch tag, _ := v.Tag(); tag {
//	case Circle:
//	case Square:
//	}
package tagged

import (
	"errors"
	"fmt"
	"reflect"

	"golang.org/x/exp/constraints"

	"github.com/clockworklabs/SpacetimeDB/crates/variant-go/pkg/variant"
)

// ErrUnknownTag is returned for a tag the schema does not contain.
var ErrUnknownTag = errors.New("tagged: unknown tag")

// Enum is an integer enum whose String method names each value uniquely.
type Enum interface {
	constraints.Integer
	fmt.Stringer
}

// Case binds a tag to an alternative.
type Case[E Enum] struct {
	tag  E
	spec variant.Spec
}

// Alt describes the alternative of type T selected by tag. The alternative
// is named after tag.String().
func Alt[T any, E Enum](tag E, opts ...variant.AltOption[T]) Case[E] {
	return Case[E]{tag: tag, spec: variant.Alt[T](tag.String(), opts...)}
}

// Schema is the alternative table of a tagged variant. The order of the cases
// is the order of the alternatives.
type Schema[E Enum] struct {
	table *variant.Table
	tags  []E
}

// NewSchema builds a Schema. Tags and their names must be unique.
func NewSchema[E Enum](cases ...Case[E]) (*Schema[E], error) {
	return NewSchemaWithOptions(cases)
}

// NewSchemaWithOptions builds a Schema whose table uses opts. The table is
// named after E unless opts name it.
func NewSchemaWithOptions[E Enum](cases []Case[E], opts ...variant.Option) (*Schema[E], error) {
	specs := make([]variant.Spec, len(cases))
	tags := make([]E, len(cases))
	seen := make(map[E]int, len(cases))
	for i, c := range cases {
		if prev, dup := seen[c.tag]; dup {
			return nil, fmt.Errorf("tagged: tag %s used by cases %d and %d", c.tag, prev, i)
		}
		seen[c.tag] = i
		specs[i], tags[i] = c.spec, c.tag
	}
	opts = append([]variant.Option{variant.WithName(reflect.TypeFor[E]().String())}, opts...)
	table, err := variant.NewTableWithOptions(specs, opts...)
	if err != nil {
		return nil, err
	}
	return &Schema[E]{table: table, tags: tags}, nil
}

// MustSchema is NewSchema that panics on error.
func MustSchema[E Enum](cases ...Case[E]) *Schema[E] {
	s, err := NewSchema(cases...)
	if err != nil {
		panic(err)
	}
	return s
}

// Table returns the underlying alternative table.
func (s *Schema[E]) Table() *variant.Table {
	return s.table
}

// Tags returns the tags in alternative order.
func (s *Schema[E]) Tags() []E {
	return append([]E(nil), s.tags...)
}

// IndexOf returns the alternative index of tag.
func (s *Schema[E]) IndexOf(tag E) (int, error) {
	idx, ok := s.table.IndexOfName(tag.String())
	if !ok || s.tags[idx] != tag {
		return variant.Npos, fmt.Errorf("%w: %s", ErrUnknownTag, tag)
	}
	return idx, nil
}

// Variant is a variant.Variant whose alternatives are addressed by tag.
type Variant[E Enum] struct {
	*variant.Variant
	schema *Schema[E]
}

// New default-constructs the first alternative of s.
func New[E Enum](s *Schema[E]) (*Variant[E], error) {
	v, err := variant.New(s.table)
	return &Variant[E]{Variant: v, schema: s}, err
}

// Of constructs the alternative selected by tag from val.
func Of[T any, E Enum](s *Schema[E], tag E, val T) (*Variant[E], error) {
	idx, err := s.IndexOf(tag)
	if err != nil {
		return &Variant[E]{Variant: variant.Empty(s.table), schema: s}, err
	}
	v, err := variant.InPlaceIndex(s.table, idx, val)
	return &Variant[E]{Variant: v, schema: s}, err
}

// From constructs the alternative val converts to.
func From[T any, E Enum](s *Schema[E], val T) (*Variant[E], error) {
	v, err := variant.From(s.table, val)
	return &Variant[E]{Variant: v, schema: s}, err
}

// Schema returns the schema of v.
func (v *Variant[E]) Schema() *Schema[E] {
	return v.schema
}

// Tag returns the tag of the live alternative. It reports false when v is
// valueless.
func (v *Variant[E]) Tag() (E, bool) {
	if v.Valueless() {
		var zero E
		return zero, false
	}
	return v.schema.tags[v.Index()], true
}

// Get returns a pointer to the live value when tag is live. Otherwise the
// error is a *variant.BadAccess.
func Get[T any, E Enum](v *Variant[E], tag E) (*T, error) {
	idx, err := v.schema.IndexOf(tag)
	if err != nil {
		return nil, err
	}
	return variant.GetAt[T](v.Variant, idx)
}

// GetIf is Get that returns nil instead of an error.
func GetIf[T any, E Enum](v *Variant[E], tag E) *T {
	p, _ := Get[T](v, tag)
	return p
}

// Emplace replaces the live alternative with the one selected by tag.
func Emplace[T any, E Enum](v *Variant[E], tag E, val T) error {
	idx, err := v.schema.IndexOf(tag)
	if err != nil {
		return err
	}
	return variant.EmplaceAt(v.Variant, idx, val)
}

// Switch calls fn with the live tag and a pointer to the live value.
func Switch[R any, E Enum](v *Variant[E], fn func(tag E, alt any) (R, error)) (R, error) {
	return variant.VisitIndexed(v.Variant, func(idx int, alt any) (R, error) {
		return fn(v.schema.tags[idx], alt)
	})
}
