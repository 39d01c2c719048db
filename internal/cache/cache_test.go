package cache

import (
	"fmt"
	"testing"
	"time"
)

func TestMemoryCache_SetGet(t *testing.T) {
	mc := NewMemoryCache(1 << 20)
	defer mc.Close()

	mc.Set("https://example.com/a", &Entry{Body: []byte("body"), StatusCode: 200}, time.Minute)

	entry, ok := mc.Get("https://example.com/a")
	if !ok {
		t.Fatal("expected cache hit")
	}
	if string(entry.Body) != "body" || entry.StatusCode != 200 {
		t.Errorf("entry = %+v", entry)
	}

	if _, ok := mc.Get("https://example.com/missing"); ok {
		t.Error("expected miss for unknown key")
	}
}

func TestMemoryCache_TTLExpiry(t *testing.T) {
	mc := NewMemoryCache(1 << 20)
	defer mc.Close()

	mc.Set("url", &Entry{Body: []byte("x")}, 10*time.Millisecond)
	time.Sleep(25 * time.Millisecond)

	if _, ok := mc.Get("url"); ok {
		t.Error("expected expired entry to miss")
	}
}

func TestMemoryCache_ZeroTTLNotStored(t *testing.T) {
	mc := NewMemoryCache(1 << 20)
	defer mc.Close()

	mc.Set("url", &Entry{Body: []byte("x")}, 0)
	if _, ok := mc.Get("url"); ok {
		t.Error("zero TTL entries must not be stored")
	}
}

func TestMemoryCache_EvictsLRUOverSizeLimit(t *testing.T) {
	// Room for roughly three 100-byte bodies.
	mc := NewMemoryCache(300)
	defer mc.Close()

	body := make([]byte, 100)
	for i := 0; i < 3; i++ {
		mc.Set(fmt.Sprintf("url-%d", i), &Entry{Body: body}, time.Minute)
	}

	// Touch url-0 so url-1 becomes the eviction candidate.
	if _, ok := mc.Get("url-0"); !ok {
		t.Fatal("url-0 should be present")
	}

	mc.Set("url-3", &Entry{Body: body}, time.Minute)

	if _, ok := mc.Get("url-1"); ok {
		t.Error("url-1 should have been evicted")
	}
	if _, ok := mc.Get("url-0"); !ok {
		t.Error("recently used url-0 should survive eviction")
	}
	if _, ok := mc.Get("url-3"); !ok {
		t.Error("newest entry should be present")
	}
}

func TestMemoryCache_ReplaceUpdatesSize(t *testing.T) {
	mc := NewMemoryCache(250)
	defer mc.Close()

	mc.Set("url", &Entry{Body: make([]byte, 200)}, time.Minute)
	mc.Set("url", &Entry{Body: make([]byte, 50)}, time.Minute)

	// After replacement there should be room for another 200 bytes.
	mc.Set("other", &Entry{Body: make([]byte, 200)}, time.Minute)

	if _, ok := mc.Get("url"); !ok {
		t.Error("replaced entry should still be present")
	}
	if _, ok := mc.Get("other"); !ok {
		t.Error("second entry should fit after replacement shrunk the first")
	}
}
