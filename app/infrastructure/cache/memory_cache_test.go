package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMemoryCacheSetGet(t *testing.T) {
	c := NewMemoryCache()
	defer c.Stop()

	c.Set("k", "v", time.Minute)
	value, ok := c.Get("k")
	assert.True(t, ok)
	assert.Equal(t, "v", value)

	_, ok = c.Get("absent")
	assert.False(t, ok)
}

func TestMemoryCacheReplacesWholesale(t *testing.T) {
	c := NewMemoryCache()
	defer c.Stop()

	c.Set("k", "first", time.Minute)
	c.Set("k", "second", time.Minute)
	value, ok := c.Get("k")
	assert.True(t, ok)
	assert.Equal(t, "second", value)
}

func TestMemoryCacheExpiry(t *testing.T) {
	c := NewMemoryCache()
	defer c.Stop()

	c.Set("k", "v", 30*time.Millisecond)
	_, ok := c.Get("k")
	assert.True(t, ok)

	time.Sleep(80 * time.Millisecond)
	_, ok = c.Get("k")
	assert.False(t, ok)
}

func TestMemoryCacheNoExpiry(t *testing.T) {
	c := NewMemoryCache()
	defer c.Stop()

	c.Set("k", "v", 0)
	time.Sleep(50 * time.Millisecond)
	_, ok := c.Get("k")
	assert.True(t, ok)
}

func TestMemoryCacheFlush(t *testing.T) {
	c := NewMemoryCache()
	defer c.Stop()

	c.Set("a", "1", time.Minute)
	c.Set("b", "2", time.Minute)
	c.Flush()

	_, ok := c.Get("a")
	assert.False(t, ok)
	_, ok = c.Get("b")
	assert.False(t, ok)
}
