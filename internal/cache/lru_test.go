package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLRU_EvictsLeastRecentlyUsed(t *testing.T) {
	var evicted []string
	c := New[string, int](2, func(k string, _ int) { evicted = append(evicted, k) })

	c.Add("a", 1)
	c.Add("b", 2)
	_, _ = c.Get("a") // a becomes MRU
	c.Add("c", 3)

	_, ok := c.Get("b")
	assert.False(t, ok)
	assert.Equal(t, []string{"b"}, evicted)
	assert.Equal(t, 2, c.Len())

	v, ok := c.Get("a")
	require.True(t, ok)
	assert.Equal(t, 1, v)
}

func TestLRU_UpdateAndRemove(t *testing.T) {
	c := New[string, int](2, nil)
	c.Add("a", 1)
	c.Add("a", 10)

	v, _ := c.Get("a")
	assert.Equal(t, 10, v)
	assert.Equal(t, 1, c.Len())

	assert.True(t, c.Remove("a"))
	assert.False(t, c.Remove("a"))
	assert.Zero(t, c.Len())
}

func TestLRU_Oldest(t *testing.T) {
	c := New[string, int](3, nil)
	c.Add("a", 1)
	c.Add("b", 2)
	c.Add("c", 3)

	var order []string
	c.Oldest(func(k string, _ int) bool {
		order = append(order, k)
		return k != "b"
	})
	assert.Equal(t, []string{"a", "b"}, order)
}

func TestLRU_PanicsOnZeroCapacity(t *testing.T) {
	assert.Panics(t, func() { New[string, int](0, nil) })
}
