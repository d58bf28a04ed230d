package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFixed(t *testing.T) {
	t.Parallel()

	t.Run("success case", func(t *testing.T) {
		s, err := NewFixed(2000, 5, 2020)
		require.NoError(t, err)
		assert.Equal(t, 5, s.Len())
		assert.Equal(t, []int{2000, 2005, 2010, 2015, 2020}, s.Times())
		assert.Equal(t, 5, s.Step())
	})

	t.Run("single point schedule", func(t *testing.T) {
		s, err := NewFixed(2000, 1, 2000)
		require.NoError(t, err)
		assert.Equal(t, 1, s.Len())
	})

	t.Run("error cases", func(t *testing.T) {
		_, err := NewFixed(2000, 0, 2020)
		assert.ErrorContains(t, err, "step must be positive")

		_, err = NewFixed(2000, -5, 2020)
		assert.ErrorContains(t, err, "step must be positive")

		_, err = NewFixed(2020, 5, 2000)
		assert.ErrorContains(t, err, "precedes first")

		_, err = NewFixed(2000, 7, 2020)
		assert.ErrorContains(t, err, "does not divide")
	})
}

func TestFixed_TimeAt(t *testing.T) {
	t.Parallel()

	s, err := NewFixed(2000, 5, 2020)
	require.NoError(t, err)

	assert.Equal(t, 2000, s.TimeAt(0))
	assert.Equal(t, 2010, s.TimeAt(2))
	assert.Equal(t, 2020, s.TimeAt(4))

	// One position past the last index reads the past-the-end sentinel.
	assert.Equal(t, 2021, s.TimeAt(5))
	assert.Equal(t, 2021, s.TimeAt(6))
}

func TestFixed_IndexOf(t *testing.T) {
	t.Parallel()

	s, err := NewFixed(2000, 5, 2020)
	require.NoError(t, err)

	pos, ok := s.IndexOf(2010)
	require.True(t, ok)
	assert.Equal(t, 2, pos)

	_, ok = s.IndexOf(2011) // off-grid
	assert.False(t, ok)
	_, ok = s.IndexOf(1995) // before first
	assert.False(t, ok)
	_, ok = s.IndexOf(2025) // after last
	assert.False(t, ok)
}

func TestNewVariable(t *testing.T) {
	t.Parallel()

	t.Run("success case", func(t *testing.T) {
		s, err := NewVariable([]int{2000, 2005, 2010})
		require.NoError(t, err)
		assert.Equal(t, 3, s.Len())
		assert.Equal(t, []int{2000, 2005, 2010}, s.Times())
	})

	t.Run("owns its time list", func(t *testing.T) {
		times := []int{2000, 2005, 2010}
		s, err := NewVariable(times)
		require.NoError(t, err)
		times[0] = 1900
		assert.Equal(t, 2000, s.TimeAt(0))
	})

	t.Run("error cases", func(t *testing.T) {
		_, err := NewVariable(nil)
		assert.ErrorContains(t, err, "no time points")

		_, err = NewVariable([]int{2000, 2000})
		assert.ErrorContains(t, err, "strictly increasing")

		_, err = NewVariable([]int{2005, 2000})
		assert.ErrorContains(t, err, "strictly increasing")
	})
}

func TestVariable_TimeAt(t *testing.T) {
	t.Parallel()

	s, err := NewVariable([]int{2000, 2005, 2010})
	require.NoError(t, err)

	assert.Equal(t, 2000, s.TimeAt(0))
	assert.Equal(t, 2010, s.TimeAt(2))

	// Past the end reads last declared time + 1, not last + step.
	assert.Equal(t, 2011, s.TimeAt(3))
}

func TestVariable_IndexOf(t *testing.T) {
	t.Parallel()

	s, err := NewVariable([]int{2000, 2005, 2010})
	require.NoError(t, err)

	pos, ok := s.IndexOf(2005)
	require.True(t, ok)
	assert.Equal(t, 1, pos)

	_, ok = s.IndexOf(2001)
	assert.False(t, ok)
}

func TestClock(t *testing.T) {
	t.Parallel()

	s, err := NewFixed(2000, 10, 2020)
	require.NoError(t, err)
	c := NewClock(s)

	assert.Equal(t, 0, c.Pos())
	assert.Equal(t, 2000, c.Time())
	assert.False(t, c.Finished())

	c.Advance()
	c.Advance()
	assert.Equal(t, 2, c.Pos())
	assert.Equal(t, 2020, c.Time())
	assert.False(t, c.Finished())

	c.Advance()
	assert.True(t, c.Finished())
	assert.Equal(t, 2021, c.Time(), "finished clock reads the sentinel time")

	c.Reset()
	assert.Equal(t, 0, c.Pos())
	assert.Equal(t, 2000, c.Time())
	assert.False(t, c.Finished())

	assert.Same(t, Schedule(s), c.Schedule())
}
