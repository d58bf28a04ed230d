package dims

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("success case", func(t *testing.T) {
		d, err := New("region", []string{"usa", "eu", "row"})
		require.NoError(t, err)
		assert.Equal(t, "region", d.Name())
		assert.Equal(t, 3, d.Len())
		assert.Equal(t, "eu", d.Key(1))

		i, ok := d.Index("row")
		require.True(t, ok)
		assert.Equal(t, 2, i)

		_, ok = d.Index("asia")
		assert.False(t, ok)
	})

	t.Run("error cases", func(t *testing.T) {
		_, err := New("region", nil)
		assert.ErrorContains(t, err, "no keys")

		_, err = New("region", []string{"usa", "usa"})
		assert.ErrorContains(t, err, "duplicate key")
	})
}

func TestNewRange(t *testing.T) {
	t.Parallel()

	t.Run("success case", func(t *testing.T) {
		d, err := NewRange("cohort", 1, 4)
		require.NoError(t, err)
		assert.Equal(t, 4, d.Len())
		assert.Equal(t, []string{"1", "2", "3", "4"}, d.Keys())
	})

	t.Run("empty range", func(t *testing.T) {
		_, err := NewRange("cohort", 4, 1)
		assert.ErrorContains(t, err, "is empty")
	})
}

func TestKeys_ReturnsCopy(t *testing.T) {
	t.Parallel()

	d, err := New("region", []string{"usa", "eu"})
	require.NoError(t, err)

	keys := d.Keys()
	keys[0] = "mutated"
	assert.Equal(t, "usa", d.Key(0))
}
