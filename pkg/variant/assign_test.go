package variant

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCopyFrom(t *testing.T) {
	var l ledger
	tbl := newTable(t, Alt[int]("int"), resourceAlt(&l), Alt[[]int]("slice", WithoutAssign[[]int]()))

	t.Run("same alternative assigns in place", func(t *testing.T) {
		v := mustAt(t, tbl, 0, 1)
		p := GetIfAt[int](v, 0)
		require.NoError(t, v.CopyFrom(mustAt(t, tbl, 0, 2)))
		assert.Same(t, p, GetIfAt[int](v, 0))
		assert.Equal(t, 2, *p)
	})

	t.Run("different alternative reconstructs", func(t *testing.T) {
		v := mustAt(t, tbl, 0, 1)
		other := mustAt(t, tbl, 1, resource{name: "r"})
		require.NoError(t, v.CopyFrom(other))
		assert.Equal(t, resource{name: "r"}, v.Value())
		assert.Equal(t, resource{name: "r"}, other.Value())
	})

	t.Run("not assignable reconstructs", func(t *testing.T) {
		v := mustAt(t, tbl, 2, []int{1})
		p := v.Ptr()
		require.NoError(t, v.CopyFrom(mustAt(t, tbl, 2, []int{2, 3})))
		assert.NotSame(t, p, v.Ptr())
		assert.Equal(t, []int{2, 3}, v.Value())
	})

	t.Run("valueless source resets", func(t *testing.T) {
		v := mustAt(t, tbl, 0, 1)
		require.NoError(t, v.CopyFrom(valueless(t, tbl)))
		assert.True(t, v.Valueless())
	})

	t.Run("self assignment", func(t *testing.T) {
		v := mustAt(t, tbl, 0, 1)
		require.NoError(t, v.CopyFrom(v))
		assert.Equal(t, 1, v.Value())
	})

	t.Run("failing copy leaves valueless", func(t *testing.T) {
		v := mustAt(t, tbl, 0, 1)
		other := mustAt(t, tbl, 1, resource{name: "r"})
		l.failCopy = true
		defer func() { l.failCopy = false }()
		assert.ErrorIs(t, v.CopyFrom(other), errBoom)
		assert.True(t, v.Valueless())
	})

	t.Run("failing assignment keeps the index", func(t *testing.T) {
		v := mustAt(t, tbl, 1, resource{name: "a"})
		other := mustAt(t, tbl, 1, resource{name: "b"})
		l.failAssign = true
		defer func() { l.failAssign = false }()
		assert.ErrorIs(t, v.CopyFrom(other), errBoom)
		assert.Equal(t, 1, v.Index())
		assert.Equal(t, resource{name: "partial"}, v.Value())
	})

	t.Run("tableless destination adopts the table", func(t *testing.T) {
		var v Variant
		require.NoError(t, v.CopyFrom(mustAt(t, tbl, 0, 5)))
		assert.Same(t, tbl, v.Table())
		assert.Equal(t, 5, v.Value())
	})

	t.Run("different tables", func(t *testing.T) {
		v := mustAt(t, tbl, 0, 1)
		other := mustFrom(t, newTable(t, Alt[int]("int")), 2)
		assert.ErrorIs(t, v.CopyFrom(other), ErrTableMismatch)
		assert.Equal(t, 1, v.Value())
	})
}

func TestMoveFrom(t *testing.T) {
	tbl := newTable(t, Alt[int]("int"), Alt[string]("string"))

	v := mustAt(t, tbl, 0, 1)
	src := mustAt(t, tbl, 1, "hello")
	require.NoError(t, v.MoveFrom(src))
	assert.Equal(t, "hello", v.Value())
	assert.Equal(t, 1, src.Index())
	assert.Equal(t, "", src.Value())

	p := v.Ptr()
	require.NoError(t, v.MoveFrom(mustAt(t, tbl, 1, "again")))
	assert.Same(t, p, v.Ptr())
	assert.Equal(t, "again", v.Value())

	require.NoError(t, v.MoveFrom(v))
	assert.Equal(t, "again", v.Value())

	require.NoError(t, v.MoveFrom(valueless(t, tbl)))
	assert.True(t, v.Valueless())
}

func TestAssign(t *testing.T) {
	t.Run("converting assignment keeps the alternative", func(t *testing.T) {
		tbl := newTable(t, Alt[int]("int"), Alt[float32]("float"))
		v := mustFrom(t, tbl, 43)
		require.NoError(t, Assign(v, 42))
		assert.Equal(t, 0, v.Index())
		p, err := GetAt[int](v, 0)
		require.NoError(t, err)
		assert.Equal(t, 42, *p)
	})

	t.Run("switches alternative", func(t *testing.T) {
		tbl := newTable(t, Alt[int64]("int"), Alt[string]("string"))
		v := mustFrom(t, tbl, "x")
		require.NoError(t, Assign(v, int8(3)))
		assert.Equal(t, int64(3), v.Value())
	})

	t.Run("selection failure leaves value", func(t *testing.T) {
		tbl := newTable(t, Alt[int64]("a"), Alt[int64]("b"))
		v := mustAt(t, tbl, 1, int64(1))
		assert.ErrorIs(t, Assign(v, 2), ErrAmbiguousType)
		assert.Equal(t, 1, v.Index())
		assert.Equal(t, int64(1), v.Value())
	})

	t.Run("no table", func(t *testing.T) {
		var v Variant
		assert.ErrorIs(t, Assign(&v, 1), ErrNoTable)
	})
}
