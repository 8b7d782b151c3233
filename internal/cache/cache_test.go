package cache

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestGetSetRoundTrip(t *testing.T) {
	c, err := New(t.TempDir(), 24, true)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	key := HashBytes([]byte("source"))
	if _, ok := c.Get(key); ok {
		t.Fatal("Get() hit on an empty cache")
	}

	if err := c.Set(key, []byte("payload")); err != nil {
		t.Fatalf("Set() error: %v", err)
	}

	data, ok := c.Get(key)
	if !ok {
		t.Fatal("Get() missed after Set()")
	}
	if string(data) != "payload" {
		t.Errorf("Get() = %q", data)
	}
}

func TestHashBytesStable(t *testing.T) {
	a := HashBytes([]byte("x = 1"))
	b := HashBytes([]byte("x = 1"))
	if a != b {
		t.Errorf("same input hashed to %q and %q", a, b)
	}
	if a == HashBytes([]byte("x = 2")) {
		t.Error("different inputs hashed identically")
	}
	if len(a) != 64 {
		t.Errorf("hash length = %d, want 64", len(a))
	}
}

func TestExpiredEntryEvicted(t *testing.T) {
	dir := t.TempDir()
	c, err := New(dir, 1, true)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	entry := Entry{
		Timestamp: time.Now().Add(-2 * time.Hour),
		Data:      []byte("stale"),
	}
	raw, _ := json.Marshal(entry)
	path := filepath.Join(dir, "old.json")
	if err := os.WriteFile(path, raw, 0o600); err != nil {
		t.Fatalf("WriteFile() error: %v", err)
	}

	if _, ok := c.Get("old"); ok {
		t.Fatal("Get() returned an expired entry")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("expired entry not removed from disk")
	}
}

func TestCorruptEntryMisses(t *testing.T) {
	dir := t.TempDir()
	c, err := New(dir, 24, true)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	if err := os.WriteFile(filepath.Join(dir, "bad.json"), []byte("{not json"), 0o600); err != nil {
		t.Fatalf("WriteFile() error: %v", err)
	}
	if _, ok := c.Get("bad"); ok {
		t.Fatal("Get() returned a corrupt entry")
	}
}

func TestDisabledCacheIsNoop(t *testing.T) {
	c, err := New("", 24, false)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	if err := c.Set("k", []byte("v")); err != nil {
		t.Fatalf("Set() error: %v", err)
	}
	if _, ok := c.Get("k"); ok {
		t.Fatal("disabled cache returned a hit")
	}
	if err := c.Clear(); err != nil {
		t.Fatalf("Clear() error: %v", err)
	}
}

func TestClear(t *testing.T) {
	dir := t.TempDir()
	c, err := New(dir, 24, true)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	for _, key := range []string{"a", "b"} {
		if err := c.Set(key, []byte(key)); err != nil {
			t.Fatalf("Set(%q) error: %v", key, err)
		}
	}
	if err := c.Clear(); err != nil {
		t.Fatalf("Clear() error: %v", err)
	}
	if _, ok := c.Get("a"); ok {
		t.Fatal("Get() hit after Clear()")
	}
}
