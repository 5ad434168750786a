package counter

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erazemk/shutils/internal/model"
)

func boundHunt(id, phase int64) *model.Hunt {
	return &model.Hunt{ID: id, PhaseEncounters: phase, PhaseCount: 1}
}

func TestNew(t *testing.T) {
	c := New()
	assert.Equal(t, int64(DefaultStep), c.Step)
	assert.Zero(t, c.Count)
	assert.False(t, c.Bound())
}

func TestIncrementUnbound(t *testing.T) {
	c, eff, err := New().Increment()
	require.NoError(t, err)
	assert.Equal(t, int64(1), c.Count)
	assert.True(t, eff.None())
}

func TestIncrementBoundAddsStep(t *testing.T) {
	for _, step := range []int64{1, 2, 5, 100} {
		h := boundHunt(7, 12)
		c := Counter{HuntID: 7, Step: step, Count: 12}

		next, eff, err := c.Increment()
		require.NoError(t, err)
		require.NoError(t, eff.Apply(h))

		assert.Equal(t, 12+step, h.PhaseEncounters, "step %d", step)
		assert.Equal(t, 12+step, next.Count, "step %d", step)
	}
}

func TestIncrementOverflow(t *testing.T) {
	c := Counter{Step: 1, Count: math.MaxInt64}
	next, eff, err := c.Increment()
	assert.ErrorIs(t, err, model.ErrOverflow)
	assert.Equal(t, c, next)
	assert.True(t, eff.None())
}

func TestIncrementNegativeStepFloorsAtZero(t *testing.T) {
	h := boundHunt(1, 2)
	c := Counter{HuntID: 1, Step: -5, Count: 2}

	next, eff, err := c.Increment()
	require.NoError(t, err)
	require.NoError(t, eff.Apply(h))

	assert.Zero(t, next.Count)
	assert.Zero(t, h.PhaseEncounters)
}

func TestDecrementNeverNegative(t *testing.T) {
	c := New()
	for range 3 {
		c, _ = c.Decrement()
		assert.Zero(t, c.Count)
	}
}

func TestDecrementFloorsAreIndependent(t *testing.T) {
	t.Run("hunt at zero, counter positive", func(t *testing.T) {
		h := boundHunt(3, 0)
		c := Counter{HuntID: 3, Step: 1, Count: 4}

		next, eff := c.Decrement()
		require.NoError(t, eff.Apply(h))

		assert.Equal(t, int64(3), next.Count)
		assert.Zero(t, h.PhaseEncounters)
	})

	t.Run("counter at zero, hunt positive", func(t *testing.T) {
		h := boundHunt(3, 4)
		c := Counter{HuntID: 3, Step: 1, Count: 0}

		next, eff := c.Decrement()
		require.NoError(t, eff.Apply(h))

		assert.Zero(t, next.Count)
		assert.Equal(t, int64(3), h.PhaseEncounters)
	})
}

func TestDecrementSubtractsOneRegardlessOfStep(t *testing.T) {
	h := boundHunt(2, 10)
	c := Counter{HuntID: 2, Step: 5, Count: 10}

	next, eff := c.Decrement()
	require.NoError(t, eff.Apply(h))

	assert.Equal(t, int64(9), next.Count)
	assert.Equal(t, int64(9), h.PhaseEncounters)
}

func TestSetCountReconcilesHunt(t *testing.T) {
	for _, tc := range []struct{ before, v int64 }{
		{0, 0}, {0, 17}, {40, 3}, {5, 5}, {12, 0},
	} {
		h := boundHunt(9, tc.before)
		c := Counter{HuntID: 9, Step: 1, Count: tc.before}

		next, eff, err := c.Perform(SetCount(tc.v))
		require.NoError(t, err)
		require.NoError(t, eff.Apply(h))

		assert.Equal(t, tc.v, h.PhaseEncounters, "from %d to %d", tc.before, tc.v)
		assert.Equal(t, tc.v, next.Count)
	}
}

func TestSetCountNegativeClampsToZero(t *testing.T) {
	h := boundHunt(1, 8)
	next, eff, err := Counter{HuntID: 1, Step: 1, Count: 8}.Perform(SetCount(-3))
	require.NoError(t, err)
	require.NoError(t, eff.Apply(h))
	assert.Zero(t, next.Count)
	assert.Zero(t, h.PhaseEncounters)
}

func TestBindingHasNoEffect(t *testing.T) {
	c := New()

	c, eff, err := c.Perform(SetHunt(4))
	require.NoError(t, err)
	assert.True(t, eff.None())
	assert.Equal(t, int64(4), c.HuntID)

	c, eff, err = c.Perform(UnsetHunt())
	require.NoError(t, err)
	assert.True(t, eff.None())
	assert.False(t, c.Bound())
}

func TestSetHuntRejectsInvalidID(t *testing.T) {
	c := New()
	next, _, err := c.Perform(SetHunt(0))
	assert.ErrorIs(t, err, model.ErrValidation)
	assert.Equal(t, c, next)
}

func TestSetIncrement(t *testing.T) {
	c, eff, err := New().Perform(SetIncrement(3))
	require.NoError(t, err)
	assert.True(t, eff.None())

	c, _, err = c.Increment()
	require.NoError(t, err)
	assert.Equal(t, int64(3), c.Count)
}

func TestApplyOverflow(t *testing.T) {
	h := boundHunt(1, math.MaxInt64)
	eff := Effect{HuntID: 1, Op: OpAdd, Value: 1}

	assert.ErrorIs(t, eff.Apply(h), model.ErrOverflow)
	assert.Equal(t, int64(math.MaxInt64), h.PhaseEncounters)
}

func TestApplyTotalOverflow(t *testing.T) {
	h := &model.Hunt{ID: 1, PreviousEncounters: math.MaxInt64, PhaseCount: 1}
	eff := Effect{HuntID: 1, Op: OpSet, Value: 1}

	assert.ErrorIs(t, eff.Apply(h), model.ErrOverflow)
	assert.Zero(t, h.PhaseEncounters)
}

func TestApplyWrongHunt(t *testing.T) {
	h := boundHunt(2, 0)
	eff := Effect{HuntID: 1, Op: OpAdd, Value: 1}
	assert.Error(t, eff.Apply(h))
	assert.Zero(t, h.PhaseEncounters)
}

func TestParseActionKind(t *testing.T) {
	tests := []struct {
		in      string
		want    ActionKind
		wantErr bool
	}{
		{"set_hunt", ActionSetHunt, false},
		{"SET-COUNT", ActionSetCount, false},
		{" unset_hunt ", ActionUnsetHunt, false},
		{"set_increment", ActionSetIncrement, false},
		{"shiny", "", true},
	}

	for _, tt := range tests {
		got, err := ParseActionKind(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
	}
}
