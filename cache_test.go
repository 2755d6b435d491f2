package textatlas

import "testing"

func TestLRUCache_GetOrCreate(t *testing.T) {
	c := newLRUCache[string, int](8)

	calls := 0
	create := func() int {
		calls++
		return 42
	}

	if got := c.getOrCreate("a", create); got != 42 {
		t.Errorf("getOrCreate: got %d, want 42", got)
	}
	if got := c.getOrCreate("a", create); got != 42 {
		t.Errorf("getOrCreate (cached): got %d, want 42", got)
	}
	if calls != 1 {
		t.Errorf("create called %d times, want 1", calls)
	}

	if _, ok := c.get("missing"); ok {
		t.Error("get on missing key reported a hit")
	}
	if v, ok := c.get("a"); !ok || v != 42 {
		t.Errorf("get(a): got (%d, %v), want (42, true)", v, ok)
	}
}

func TestLRUCache_Eviction(t *testing.T) {
	c := newLRUCache[int, int](8)

	for i := 0; i < 8; i++ {
		c.getOrCreate(i, func() int { return i })
	}
	// Keep key 0 warm, then overflow the cache.
	c.get(0)
	for i := 8; i < 16; i++ {
		c.getOrCreate(i, func() int { return i })
	}

	if c.len() > 8 {
		t.Errorf("cache size %d exceeds soft limit 8", c.len())
	}
	if _, ok := c.get(0); !ok {
		t.Error("recently used key 0 was evicted")
	}
	if _, ok := c.get(15); !ok {
		t.Error("newest key 15 was evicted")
	}
}

func TestLRUCache_Unlimited(t *testing.T) {
	c := newLRUCache[int, int](0)
	for i := 0; i < 100; i++ {
		c.getOrCreate(i, func() int { return i })
	}
	if c.len() != 100 {
		t.Errorf("unlimited cache evicted: len %d, want 100", c.len())
	}
}

func TestLRUCache_Clear(t *testing.T) {
	c := newLRUCache[string, int](8)
	c.getOrCreate("a", func() int { return 1 })
	c.getOrCreate("b", func() int { return 2 })

	c.clear()
	if c.len() != 0 {
		t.Errorf("len after clear: got %d, want 0", c.len())
	}
	if _, ok := c.get("a"); ok {
		t.Error("cleared key still present")
	}
}
