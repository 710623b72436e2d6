package cache

import (
	"testing"
	"time"
)

func TestKey(t *testing.T) {
	a := Key("2025.1", "revenue")
	b := Key("2025.1", "revenue")
	if a != b {
		t.Error("same parts must produce the same key")
	}
	if a == Key("2025.2", "revenue") {
		t.Error("different vocabulary versions must produce different keys")
	}
	// Joining must not collide across part boundaries.
	if Key("ab", "c") == Key("a", "bc") {
		t.Error("part boundaries must be preserved")
	}
}

func TestMemoryCache(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)

	if _, found := c.Get("missing"); found {
		t.Error("unexpected hit on an empty cache")
	}

	if err := c.Set("k", []byte("v"), time.Minute); err != nil {
		t.Fatal(err)
	}
	got, found := c.Get("k")
	if !found || string(got) != "v" {
		t.Errorf("Get = %q/%v, want v/true", got, found)
	}

	if err := c.Delete("k"); err != nil {
		t.Fatal(err)
	}
	if _, found := c.Get("k"); found {
		t.Error("value survived Delete")
	}

	c.Set("a", []byte("1"), time.Minute)
	c.Set("b", []byte("2"), time.Minute)
	if err := c.Clear(); err != nil {
		t.Fatal(err)
	}
	if _, found := c.Get("a"); found {
		t.Error("value survived Clear")
	}
}

func TestMemoryCache_TTLExpiry(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)
	c.Set("k", []byte("v"), 10*time.Millisecond)
	time.Sleep(30 * time.Millisecond)
	if _, found := c.Get("k"); found {
		t.Error("value survived its TTL")
	}
}
