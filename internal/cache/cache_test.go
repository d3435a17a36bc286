package cache

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

func TestKeyStable(t *testing.T) {
	a := Key("retrieve|question|anchor|3")
	b := Key("retrieve|question|anchor|3")
	if a != b {
		t.Error("same request must yield the same key")
	}
	if a == Key("retrieve|question|anchor|2") {
		t.Error("different requests must yield different keys")
	}
	if !strings.HasPrefix(a, "worldmind:v1:") {
		t.Errorf("key %q missing version prefix", a)
	}
}

func tiers(t *testing.T) map[string]Cache {
	t.Helper()
	return map[string]Cache{
		"memory":  NewMemoryCache(time.Minute, 0),
		"disk":    NewDiskCache(t.TempDir(), time.Minute),
		"layered": NewLayeredCache(time.Minute, t.TempDir(), time.Minute),
	}
}

func TestTierRoundTrip(t *testing.T) {
	for name, c := range tiers(t) {
		key := Key(name)
		if _, found := c.Get(key); found {
			t.Errorf("%s: unexpected hit before Set", name)
		}
		if err := c.Set(key, []byte("context"), time.Minute); err != nil {
			t.Fatalf("%s: Set failed: %v", name, err)
		}
		val, found := c.Get(key)
		if !found || !bytes.Equal(val, []byte("context")) {
			t.Errorf("%s: Get = %q, %v", name, val, found)
		}
		if err := c.Delete(key); err != nil {
			t.Errorf("%s: Delete failed: %v", name, err)
		}
		if _, found := c.Get(key); found {
			t.Errorf("%s: hit after Delete", name)
		}
	}
}

func TestTierClear(t *testing.T) {
	for name, c := range tiers(t) {
		_ = c.Set(Key("a"), []byte("1"), time.Minute)
		_ = c.Set(Key("b"), []byte("2"), time.Minute)
		if err := c.Clear(); err != nil {
			t.Fatalf("%s: Clear failed: %v", name, err)
		}
		if _, found := c.Get(Key("a")); found {
			t.Errorf("%s: hit after Clear", name)
		}
	}
}

func TestDiskExpiry(t *testing.T) {
	c := NewDiskCache(t.TempDir(), time.Minute)
	key := Key("expired")
	if err := c.Set(key, []byte("stale"), time.Nanosecond); err != nil {
		t.Fatal(err)
	}
	time.Sleep(time.Millisecond)
	if _, found := c.Get(key); found {
		t.Error("expired entry served")
	}
}

func TestLayeredPromotion(t *testing.T) {
	dir := t.TempDir()
	disk := NewDiskCache(dir, time.Minute)
	key := Key("promoted")
	if err := disk.Set(key, []byte("warm"), time.Minute); err != nil {
		t.Fatal(err)
	}

	layered := NewLayeredCache(time.Minute, dir, time.Minute)
	val, found := layered.Get(key)
	if !found || string(val) != "warm" {
		t.Fatalf("layered Get = %q, %v", val, found)
	}

	// The disk entry is gone; the promoted memory copy must still serve
	if err := disk.Delete(key); err != nil {
		t.Fatal(err)
	}
	if _, found := layered.Get(key); !found {
		t.Error("promoted entry not served from memory")
	}
}
