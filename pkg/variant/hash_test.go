package variant

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustHash(t *testing.T, v *Variant) uint64 {
	t.Helper()
	h, err := Hash(v)
	require.NoError(t, err)
	return h
}

func TestHash_IndexParticipates(t *testing.T) {
	tbl := newTable(t, Alt[Monostate](""), Alt[Monostate](""))
	a := mustAt(t, tbl, 0, Monostate{})
	b := mustAt(t, tbl, 1, Monostate{})
	assert.NotEqual(t, mustHash(t, a), mustHash(t, b))
	assert.Equal(t, mustHash(t, a), mustHash(t, mustAt(t, tbl, 0, Monostate{})))
}

func TestHash_Values(t *testing.T) {
	tbl := newTable(t, Alt[int]("int"), Alt[string]("string"), Alt[[]uint16]("slice"))

	assert.Equal(t, mustHash(t, mustAt(t, tbl, 1, "x")), mustHash(t, mustAt(t, tbl, 1, "x")))
	assert.NotEqual(t, mustHash(t, mustAt(t, tbl, 1, "x")), mustHash(t, mustAt(t, tbl, 1, "y")))
	assert.Equal(t, mustHash(t, mustAt(t, tbl, 2, []uint16{1, 2})), mustHash(t, mustAt(t, tbl, 2, []uint16{1, 2})))

	v := mustAt(t, tbl, 0, 5)
	before := mustHash(t, v)
	require.NoError(t, Assign(v, 6))
	assert.NotEqual(t, before, mustHash(t, v))

	other := newTable(t, Alt[int]("int"))
	assert.Equal(t, mustHash(t, valueless(t, tbl)), mustHash(t, valueless(t, other)))
	assert.NotEqual(t, mustHash(t, valueless(t, tbl)), mustHash(t, mustAt(t, tbl, 0, 0)))
}

func TestHash_Hook(t *testing.T) {
	byLen := func(p *string) uint64 { return uint64(len(*p)) }
	tbl := newTable(t, Alt[string]("string", WithHash(byLen)), Alt[map[string]int]("map"))

	assert.Equal(t, mustHash(t, mustAt(t, tbl, 0, "ab")), mustHash(t, mustAt(t, tbl, 0, "cd")))

	_, err := Hash(mustAt(t, tbl, 1, map[string]int{"a": 1}))
	assert.Error(t, err)
}

type reading struct {
	Sensor  string
	Samples [2]float64
	Offsets []float32
	Note    any
}

func TestHash_SignedZero(t *testing.T) {
	negZero := math.Copysign(0, -1)
	tbl := newTable(t, Alt[float64]("float"), Alt[reading]("reading"))

	tests := []struct {
		name string
		a, b *Variant
	}{
		{name: "float", a: mustAt(t, tbl, 0, 0.0), b: mustAt(t, tbl, 0, negZero)},
		{
			name: "nested",
			a:    mustAt(t, tbl, 1, reading{Sensor: "t1", Samples: [2]float64{0, 1}, Offsets: []float32{0}, Note: 0.0}),
			b:    mustAt(t, tbl, 1, reading{Sensor: "t1", Samples: [2]float64{negZero, 1}, Offsets: []float32{float32(negZero)}, Note: negZero}),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.True(t, Equal(tt.a, tt.b))
			assert.Equal(t, mustHash(t, tt.a), mustHash(t, tt.b))
		})
	}

	// the hashed copy must not touch the stored value
	v := mustAt(t, tbl, 0, negZero)
	mustHash(t, v)
	assert.True(t, math.Signbit(*GetIfAt[float64](v, 0)))
}
