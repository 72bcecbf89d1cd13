package dice_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/cyberdino/internal/game/dice"
)

// TestLCGSource_KnownSequence pins the first states of the minimal standard generator.
func TestLCGSource_KnownSequence(t *testing.T) {
	src := dice.NewLCGSource(1)
	src.Float64()
	assert.Equal(t, int64(16807), src.State())
	src.Float64()
	assert.Equal(t, int64(282475249), src.State())
	src.Float64()
	assert.Equal(t, int64(1622650073), src.State())
}

func TestLCGSource_Property_InUnitInterval(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		seed := rapid.Int64().Draw(rt, "seed")
		src := dice.NewLCGSource(seed)
		for i := 0; i < 50; i++ {
			v := src.Float64()
			assert.GreaterOrEqual(rt, v, 0.0)
			assert.Less(rt, v, 1.0)
		}
	})
}

func TestLCGSource_Property_SameSeedSameSequence(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		seed := rapid.Int64().Draw(rt, "seed")
		a, b := dice.NewLCGSource(seed), dice.NewLCGSource(seed)
		for i := 0; i < 20; i++ {
			require.Equal(rt, a.Float64(), b.Float64())
		}
	})
}

func TestLCGSource_ZeroSeedDoesNotStick(t *testing.T) {
	src := dice.NewLCGSource(0)
	first := src.Float64()
	second := src.Float64()
	assert.NotEqual(t, first, second)
}

func TestRoller_UniformAndIntnBounds(t *testing.T) {
	r := dice.NewLoggedRoller(dice.NewLCGSource(7), nil)
	for i := 0; i < 1000; i++ {
		u := r.Uniform("u", 0.9, 1.2)
		assert.GreaterOrEqual(t, u, 0.9)
		assert.Less(t, u, 1.2)
		n := r.Intn("n", 5)
		assert.GreaterOrEqual(t, n, 0)
		assert.Less(t, n, 5)
	}
}

func TestRoller_IntnPanicsOnZero(t *testing.T) {
	r := dice.NewLoggedRoller(dice.NewLCGSource(7), nil)
	assert.Panics(t, func() { r.Intn("zero", 0) })
}

func TestRoller_ChanceExtremes(t *testing.T) {
	r := dice.NewLoggedRoller(dice.NewLCGSource(3), nil)
	for i := 0; i < 100; i++ {
		assert.False(t, r.Chance("never", 0))
		assert.True(t, r.Chance("always", 1))
	}
}

func TestRoller_LogsEveryDraw(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	r := dice.NewLoggedRoller(dice.NewLCGSource(11), zap.New(core))

	r.Float64("raw")
	r.Uniform("variance", -1, 1)
	dice.Pick(r, "slot", []string{"a", "b", "c"})

	require.Equal(t, 3, logs.Len())
	assert.Equal(t, "raw", logs.All()[0].ContextMap()["label"])
	assert.Equal(t, "variance", logs.All()[1].ContextMap()["label"])
	assert.Equal(t, "slot", logs.All()[2].ContextMap()["label"])
}
