package common

import (
	"testing"
	"time"
)

func setupTestEnvironment(t *testing.T) (*Cache, func()) {
	t.Helper()

	// Set up the test environment
	cache := NewCache(0, 0)

	cleanup := func() {
		cache.Flush()
	}

	return cache, cleanup
}

func TestCache_Set(t *testing.T) {
	cache, cleanup := setupTestEnvironment(t)
	defer cleanup()

	cache.Set("key", "value")

	if _, ok := cache.Get("key"); !ok {
		t.Error("expected key to be set")
	}
}

func TestCache_Get(t *testing.T) {
	cache, cleanup := setupTestEnvironment(t)
	defer cleanup()

	cache.Set("key", "value")

	if _, ok := cache.Get("key"); !ok {
		t.Error("expected key to be set")
	}
}

func TestCache_Flush(t *testing.T) {
	cache, cleanup := setupTestEnvironment(t)
	defer cleanup()

	cache.Set("key", "value")
	cache.Flush()

	if _, ok := cache.Get("key"); ok {
		t.Error("expected cache to be flushed")
	}
}

func TestCacheKeys(t *testing.T) {
	if got := CacheKeyBlog(7); got != "blog:7" {
		t.Errorf("unexpected blog key: %s", got)
	}

	if got := CacheKeyBlogs(); got != "blogs:all" {
		t.Errorf("unexpected blogs key: %s", got)
	}

	if got := CacheKeyUserById(42); got != "user_by_id:42" {
		t.Errorf("unexpected user key: %s", got)
	}
}

func TestCache_SetWithExpiration(t *testing.T) {
	cache, cleanup := setupTestEnvironment(t)
	defer cleanup()

	cache.Set("key", "value", 50*time.Millisecond)

	if _, ok := cache.Get("key"); !ok {
		t.Error("expected key to be set")
	}

	time.Sleep(100 * time.Millisecond)

	if _, ok := cache.Get("key"); ok {
		t.Error("expected key to be expired")
	}
}
