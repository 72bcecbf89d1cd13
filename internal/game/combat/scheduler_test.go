package combat_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/cyberdino/internal/game/combat"
)

func TestScheduler_RunsWhenDue(t *testing.T) {
	clock := combat.NewManualClock(epoch)
	s := combat.NewScheduler(clock, nil)
	ran := 0
	require.NoError(t, s.Schedule("a", 500*time.Millisecond, func() { ran++ }))

	due, ok := s.NextDue()
	require.True(t, ok)
	assert.Equal(t, epoch.Add(500*time.Millisecond), due)

	assert.Zero(t, s.Tick(clock.Advance(499*time.Millisecond)))
	assert.Equal(t, 1, s.Tick(clock.Advance(time.Millisecond)))
	assert.Equal(t, 1, ran)
	assert.Zero(t, s.Tick(clock.Advance(time.Hour)), "tasks run once")
	_, ok = s.NextDue()
	assert.False(t, ok)
}

func TestScheduler_RejectsDuplicateKey(t *testing.T) {
	s := combat.NewScheduler(combat.NewManualClock(epoch), nil)
	require.NoError(t, s.Schedule("enemy", time.Second, func() {}))
	err := s.Schedule("enemy", time.Second, func() {})
	assert.True(t, errors.Is(err, combat.ErrAlreadyPending))
	assert.Equal(t, 1, s.Len())
	assert.Error(t, s.Schedule("nil", time.Second, nil))
}

func TestScheduler_ResetDropsPendingTasks(t *testing.T) {
	clock := combat.NewManualClock(epoch)
	s := combat.NewScheduler(clock, nil)
	ran := false
	require.NoError(t, s.Schedule("enemy", 800*time.Millisecond, func() { ran = true }))

	gen := s.Reset()
	assert.Equal(t, uint64(1), gen)
	assert.Equal(t, gen, s.Generation())
	assert.False(t, s.Pending("enemy"))

	assert.Zero(t, s.Tick(clock.Advance(time.Second)))
	assert.False(t, ran, "a task from an older generation never runs")
	require.NoError(t, s.Schedule("enemy", 0, func() {}), "the key is free again after a reset")
}

func TestScheduler_ResetDuringTickSkipsStaleBatchMembers(t *testing.T) {
	clock := combat.NewManualClock(epoch)
	s := combat.NewScheduler(clock, nil)
	var order []string
	require.NoError(t, s.Schedule("first", 100*time.Millisecond, func() {
		order = append(order, "first")
		s.Reset()
	}))
	require.NoError(t, s.Schedule("second", 200*time.Millisecond, func() { order = append(order, "second") }))

	assert.Equal(t, 1, s.Tick(clock.Advance(time.Second)))
	assert.Equal(t, []string{"first"}, order)
}

func TestScheduler_CancelAndTasksScheduledDuringTick(t *testing.T) {
	clock := combat.NewManualClock(epoch)
	s := combat.NewScheduler(clock, nil)
	require.NoError(t, s.Schedule("x", time.Second, func() {}))
	assert.True(t, s.Cancel("x"))
	assert.False(t, s.Cancel("x"))

	chained := false
	require.NoError(t, s.Schedule("outer", 0, func() {
		_ = s.Schedule("inner", 0, func() { chained = true })
	}))
	assert.Equal(t, 1, s.Tick(clock.Now()))
	assert.False(t, chained, "work scheduled while ticking waits for the next tick")
	assert.Equal(t, 1, s.Tick(clock.Now()))
	assert.True(t, chained)
}

func TestScheduler_Property_RunsInDueOrder(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		clock := combat.NewManualClock(epoch)
		s := combat.NewScheduler(clock, nil)
		delays := rapid.SliceOfNDistinct(rapid.IntRange(0, 10_000), 1, 30, rapid.ID[int]).Draw(rt, "delays")
		var got []int
		for i, d := range delays {
			d := d
			require.NoError(rt, s.Schedule(string(rune('a'+i)), time.Duration(d)*time.Millisecond, func() { got = append(got, d) }))
		}
		assert.Equal(rt, len(delays), s.Tick(clock.Advance(11*time.Second)))
		for i := 1; i < len(got); i++ {
			assert.Less(rt, got[i-1], got[i])
		}
	})
}

func TestManualClock(t *testing.T) {
	c := combat.NewManualClock(epoch)
	assert.Equal(t, epoch.Add(time.Minute), c.Advance(time.Minute))
	c.Set(epoch)
	assert.Equal(t, epoch, c.Now())
	assert.False(t, combat.SystemClock{}.Now().IsZero())
}
