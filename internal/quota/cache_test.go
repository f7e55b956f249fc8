package quota

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCacheExpiry(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	c := NewCache[bool](time.Minute)
	c.now = func() time.Time { return now }

	c.Set("ana", true)
	v, ok := c.Get("ana")
	assert.True(t, ok)
	assert.True(t, v)

	now = now.Add(59 * time.Second)
	_, ok = c.Get("ana")
	assert.True(t, ok, "entry should still be live before the TTL")

	now = now.Add(time.Second)
	_, ok = c.Get("ana")
	assert.False(t, ok, "entry should expire at the TTL")
	assert.Equal(t, 0, c.Len(), "expired entry should be evicted on read")
}

func TestCacheInvalidate(t *testing.T) {
	c := NewCache[int](time.Hour)
	c.Set("k", 7)
	c.Invalidate("k")

	_, ok := c.Get("k")
	assert.False(t, ok)
}

func TestCacheDisabled(t *testing.T) {
	c := NewCache[bool](0)
	c.Set("k", true)

	_, ok := c.Get("k")
	assert.False(t, ok)
	assert.Equal(t, 0, c.Len())
}
