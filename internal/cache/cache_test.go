package cache

import (
	"strings"
	"testing"
	"time"
)

func TestKey(t *testing.T) {
	a := Key("query", "k=10")
	b := Key("query", "k=10")
	if a != b {
		t.Error("identical parts must produce identical keys")
	}
	if !strings.HasPrefix(a, "veripack:v1:") {
		t.Errorf("missing version prefix: %s", a)
	}

	if Key("query", "k=10") == Key("query", "k=5") {
		t.Error("changing a parameter must change the key")
	}
	// Joining with a separator, not concatenation: ("ab","c") != ("a","bc").
	if Key("ab", "c") == Key("a", "bc") {
		t.Error("part boundaries must be preserved")
	}
}

func TestMemoryCache(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)

	if _, found := c.Get("missing"); found {
		t.Error("expected miss for unset key")
	}

	if err := c.Set("k", []byte("value"), time.Minute); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	val, found := c.Get("k")
	if !found || string(val) != "value" {
		t.Errorf("expected hit with 'value', got %q found=%v", val, found)
	}

	if err := c.Delete("k"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, found := c.Get("k"); found {
		t.Error("expected miss after delete")
	}
}

func TestDiskCache(t *testing.T) {
	dir := t.TempDir()
	c := NewDiskCache(dir, time.Minute)

	if err := c.Set("k", []byte("payload"), time.Minute); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	// A second cache over the same directory sees the entry.
	val, found := NewDiskCache(dir, time.Minute).Get("k")
	if !found || string(val) != "payload" {
		t.Errorf("expected persisted hit, got %q found=%v", val, found)
	}

	if err := c.Clear(); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	if _, found := c.Get("k"); found {
		t.Error("expected miss after clear")
	}
}

func TestDiskCache_Expiry(t *testing.T) {
	c := NewDiskCache(t.TempDir(), time.Minute)

	if err := c.Set("k", []byte("stale"), -time.Second); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if _, found := c.Get("k"); found {
		t.Error("expected expired entry to miss")
	}
}

func TestLayeredCache(t *testing.T) {
	dir := t.TempDir()
	c := NewLayeredCache(time.Minute, dir, time.Minute)

	if err := c.Set("k", []byte("value"), time.Minute); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	val, found := c.Get("k")
	if !found || string(val) != "value" {
		t.Errorf("expected hit, got %q found=%v", val, found)
	}

	// A fresh layered cache has cold memory; the disk layer serves the
	// hit and promotes it.
	warm := NewLayeredCache(time.Minute, dir, time.Minute)
	val, found = warm.Get("k")
	if !found || string(val) != "value" {
		t.Errorf("expected disk fallback hit, got %q found=%v", val, found)
	}
	if _, found := warm.memory.Get("k"); !found {
		t.Error("disk hit was not promoted to memory")
	}
}
