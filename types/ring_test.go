package types

import (
	"io"
	"os"
	"testing"

	fuzz "github.com/google/gofuzz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mezonai/blackball/logx"
)

func TestMain(m *testing.M) {
	logx.SetOutput(io.Discard)
	os.Exit(m.Run())
}

func TestCanonicalize_DropsZeroDeltas(t *testing.T) {
	assert.Equal(t, Ring{5, 3, 2}, Canonicalize(Ring{5, 0, 3, 0, 2}))
	assert.Equal(t, Ring{0, 1}, Canonicalize(Ring{0, 0, 1}))
	assert.Equal(t, Ring{7}, Canonicalize(Ring{7}))
	assert.Equal(t, Ring{0}, Canonicalize(Ring{0, 0, 0}))
}

func TestCanonicalize_Properties(t *testing.T) {
	f := fuzz.New().NilChance(0).NumElements(1, 16).Funcs(func(v *uint64, c fuzz.Continue) {
		// small values so that zero deltas show up often
		*v = uint64(c.Intn(4))
	})

	for i := 0; i < 500; i++ {
		var ring Ring
		f.Fuzz(&ring)
		require.NotEmpty(t, ring)

		c := Canonicalize(ring)
		assert.LessOrEqual(t, len(c), len(ring))
		assert.Equal(t, ring[0], c[0])
		assert.Equal(t, c, Canonicalize(c), "canonicalize must be idempotent for %v", ring)
		for _, off := range c[1:] {
			assert.NotZero(t, off)
		}
	}
}

func TestRelativeAbsolute_RoundTrip(t *testing.T) {
	assert.Equal(t, []uint64{10, 13, 20}, RelativeToAbsolute(Ring{10, 3, 7}))
	assert.Equal(t, Ring{10, 3, 7}, AbsoluteToRelative([]uint64{20, 10, 13}))

	f := fuzz.New().NilChance(0).NumElements(1, 16).Funcs(func(v *uint64, c fuzz.Continue) {
		*v = uint64(c.Intn(1000)) + 1
	})
	for i := 0; i < 200; i++ {
		var ring Ring
		f.Fuzz(&ring)
		assert.Equal(t, ring, AbsoluteToRelative(RelativeToAbsolute(ring)))
	}
}

func TestRingKey_RoundTrip(t *testing.T) {
	r := Ring{1, 2, 1 << 40}
	k := r.Key()
	assert.Len(t, string(k), 24)
	assert.True(t, r.Equal(k.Ring()))
	assert.NotEqual(t, k, Ring{1, 2}.Key())
	assert.Equal(t, k, r.Clone().Key())
}

func TestRing_Equal(t *testing.T) {
	assert.True(t, Ring{1, 2}.Equal(Ring{1, 2}))
	assert.False(t, Ring{1, 2}.Equal(Ring{1, 3}))
	assert.False(t, Ring{1, 2}.Equal(Ring{1}))
	assert.Equal(t, "1 2", Ring{1, 2}.String())
}
