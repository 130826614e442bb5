package variant

import (
	"fmt"
	"reflect"
	"strings"
	"sync/atomic"

	"github.com/go-logr/logr"
	"github.com/puzpuzpuz/xsync/v3"
	"github.com/samber/lo"
)

// Alternative is one entry of a Table.
type Alternative struct {
	Index  int
	Name   string
	Type   reflect.Type
	Traits Traits

	hooks hooks
}

// Table is the ordered list of alternatives a Variant may hold. It is
// immutable once built and safe for concurrent use.
type Table struct {
	id       uint64
	alts     []Alternative
	byType   map[reflect.Type][]int
	byName   map[string]int
	category Category
	config   Config

	// selections caches SelectedIndex results per argument type.
	selections *xsync.MapOf[reflect.Type, selection]
}

var nextTableID atomic.Uint64

// NewTable builds a Table with DefaultConfig.
func NewTable(specs ...Spec) (*Table, error) {
	return NewTableWithOptions(specs)
}

// NewTableWithOptions builds a Table from specs, applying opts over
// DefaultConfig. Non-empty alternative names must be unique.
func NewTableWithOptions(specs []Spec, opts ...Option) (*Table, error) {
	if len(specs) == 0 {
		return nil, ErrEmptyTable
	}
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.MaxDispatchKeys <= 0 {
		return nil, fmt.Errorf("variant: MaxDispatchKeys must be positive, got %d", cfg.MaxDispatchKeys)
	}

	t := &Table{
		id:         nextTableID.Add(1),
		alts:       make([]Alternative, len(specs)),
		byType:     make(map[reflect.Type][]int, len(specs)),
		byName:     make(map[string]int, len(specs)),
		config:     cfg,
		selections: xsync.NewMapOf[reflect.Type, selection](),
	}
	for i, s := range specs {
		if s.typ == nil {
			return nil, fmt.Errorf("variant: alternative %d was not built with Alt", i)
		}
		if s.name != "" {
			if prev, dup := t.byName[s.name]; dup {
				return nil, fmt.Errorf("variant: duplicate alternative name %q at %d and %d", s.name, prev, i)
			}
			t.byName[s.name] = i
		}
		t.alts[i] = Alternative{Index: i, Name: s.name, Type: s.typ, Traits: s.traits, hooks: s.hooks}
		t.byType[s.typ] = append(t.byType[s.typ], i)
	}
	t.category = commonCategory(lo.Map(t.alts, func(a Alternative, _ int) Category {
		return a.Traits.Category
	})...)

	t.logger().V(1).Info("registered alternative table", "alternatives", t.typeNames(), "category", t.category.String())
	return t, nil
}

// MustTable is NewTable that panics on error. It is meant for package-level
// table declarations.
func MustTable(specs ...Spec) *Table {
	t, err := NewTable(specs...)
	if err != nil {
		panic(err)
	}
	return t
}

// Len returns the number of alternatives.
func (t *Table) Len() int {
	return len(t.alts)
}

// Alternative returns the alternative at idx. It panics when idx is out of
// range.
func (t *Table) Alternative(idx int) Alternative {
	return t.alts[idx]
}

// Alternatives returns a copy of the alternative list.
func (t *Table) Alternatives() []Alternative {
	return append([]Alternative(nil), t.alts...)
}

// Traits returns the traits of the alternative at idx.
func (t *Table) Traits(idx int) Traits {
	return t.alts[idx].Traits
}

// Category returns the weakest ordering category among all alternatives.
func (t *Table) Category() Category {
	return t.category
}

// Config returns the table configuration.
func (t *Table) Config() Config {
	return t.config
}

// IndexOfType returns the index of the alternative whose type is exactly typ.
func (t *Table) IndexOfType(typ reflect.Type) (int, error) {
	idx := t.byType[typ]
	switch len(idx) {
	case 0:
		return Npos, &SelectionError{Type: typ, Table: t.String(), Err: ErrNoAlternative}
	case 1:
		return idx[0], nil
	default:
		return Npos, &SelectionError{Type: typ, Table: t.String(), Candidates: append([]int(nil), idx...), Err: ErrAmbiguousType}
	}
}

// IndexOf returns the index of the alternative whose type is exactly T.
func IndexOf[T any](t *Table) (int, error) {
	return t.IndexOfType(reflect.TypeFor[T]())
}

// IndexOfName returns the index of the alternative with the given name.
func (t *Table) IndexOfName(name string) (int, bool) {
	idx, ok := t.byName[name]
	return idx, ok
}

// String renders the table as variant<T0, T1, ...>, prefixed with the
// configured name when there is one.
func (t *Table) String() string {
	s := "variant<" + strings.Join(t.typeNames(), ", ") + ">"
	if t.config.Name != "" {
		return t.config.Name + " " + s
	}
	return s
}

func (t *Table) typeNames() []string {
	return lo.Map(t.alts, func(a Alternative, _ int) string { return a.Type.String() })
}

func (t *Table) checkIndex(idx int) error {
	if idx < 0 || idx >= len(t.alts) {
		return fmt.Errorf("%w: %d not in [0, %d)", ErrIndexOutOfRange, idx, len(t.alts))
	}
	return nil
}

// checkType verifies that T is the type of the alternative at idx.
func checkType[T any](t *Table, idx int) error {
	if err := t.checkIndex(idx); err != nil {
		return err
	}
	if want := reflect.TypeFor[T](); t.alts[idx].Type != want {
		return fmt.Errorf("%w: alternative %d is %s, not %s", ErrTypeMismatch, idx, t.alts[idx].Type, want)
	}
	return nil
}

func (t *Table) logger() logr.Logger {
	return t.config.logger().WithValues("table", t.String())
}
