package tagged

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clockworklabs/SpacetimeDB/crates/variant-go/pkg/variant"
)

type kind uint8

const (
	kindInt kind = iota
	kindChar
	kindBool
	kindMissing
)

func (k kind) String() string {
	switch k {
	case kindInt:
		return "INT"
	case kindChar:
		return "CHAR"
	case kindBool:
		return "BOOL"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

var kinds = MustSchema(
	Alt[int](kindInt),
	Alt[rune](kindChar),
	Alt[bool](kindBool),
)

func TestTagged_Tag(t *testing.T) {
	v, err := From(kinds, 42)
	require.NoError(t, err)
	tag, ok := v.Tag()
	require.True(t, ok)
	assert.Equal(t, kindInt, tag)

	require.NoError(t, Emplace(v, kindBool, false))
	tag, _ = v.Tag()
	assert.Equal(t, kindBool, tag)

	v.Reset()
	_, ok = v.Tag()
	assert.False(t, ok)
}

func TestTagged_Get(t *testing.T) {
	v, err := Of(kinds, kindChar, 'x')
	require.NoError(t, err)

	p, err := Get[rune](v, kindChar)
	require.NoError(t, err)
	assert.Equal(t, 'x', *p)

	_, err = Get[bool](v, kindBool)
	assert.ErrorIs(t, err, variant.ErrBadAccess)
	assert.Nil(t, GetIf[bool](v, kindBool))

	_, err = Get[int](v, kindMissing)
	assert.ErrorIs(t, err, ErrUnknownTag)

	_, err = Of(kinds, kindMissing, 1)
	assert.ErrorIs(t, err, ErrUnknownTag)

	_, err = Of(kinds, kindInt, "wrong type")
	assert.ErrorIs(t, err, variant.ErrTypeMismatch)
}

func TestTagged_Switch(t *testing.T) {
	tests := []struct {
		name string
		make func() (*Variant[kind], error)
		want string
	}{
		{name: "int", make: func() (*Variant[kind], error) { return Of(kinds, kindInt, 42) }, want: "INT=42"},
		{name: "bool", make: func() (*Variant[kind], error) { return Of(kinds, kindBool, false) }, want: "BOOL=false"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := tt.make()
			require.NoError(t, err)
			got, err := Switch(v, func(tag kind, alt any) (string, error) {
				switch tag {
				case kindInt:
					return fmt.Sprintf("%s=%d", tag, *alt.(*int)), nil
				case kindBool:
					return fmt.Sprintf("%s=%t", tag, *alt.(*bool)), nil
				default:
					return "", fmt.Errorf("unexpected tag %s", tag)
				}
			})
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTagged_Schema(t *testing.T) {
	v, err := New(kinds)
	require.NoError(t, err)
	tag, _ := v.Tag()
	assert.Equal(t, kindInt, tag)
	assert.Same(t, kinds, v.Schema())

	assert.Equal(t, []kind{kindInt, kindChar, kindBool}, kinds.Tags())
	assert.Equal(t, "tagged.kind variant<int, int32, bool>", kinds.Table().String())

	idx, err := kinds.IndexOf(kindBool)
	require.NoError(t, err)
	assert.Equal(t, 2, idx)

	_, err = NewSchema(Alt[int](kindInt), Alt[string](kindInt))
	assert.Error(t, err)

	assert.Panics(t, func() { MustSchema[kind]() })
}
