package idgen_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/cyberdino/internal/game/idgen"
)

func TestAllocator_SequencesArePerKind(t *testing.T) {
	a := idgen.New()
	assert.Equal(t, "item-1", a.Next(idgen.KindItem))
	assert.Equal(t, "item-2", a.Next(idgen.KindItem))
	assert.Equal(t, "char-1", a.Next(idgen.KindCharacter))
	assert.Equal(t, "ability-1", a.Next(idgen.KindAbility))
	assert.Equal(t, uint64(2), a.Issued(idgen.KindItem))
}

func TestAllocator_Property_NeverRepeats(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		n := rapid.IntRange(1, 200).Draw(rt, "n")
		a := idgen.New()
		seen := make(map[string]bool, n)
		for i := 0; i < n; i++ {
			id := a.Next(idgen.KindItem)
			assert.False(rt, seen[id], "duplicate id %s", id)
			seen[id] = true
		}
	})
}
