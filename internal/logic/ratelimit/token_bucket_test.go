package ratelimit

import (
	"sync"
	"testing"
	"time"
)

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.t = c.t.Add(d)
	c.mu.Unlock()
}

func TestTokenBucket_Allow(t *testing.T) {
	bucket := NewTokenBucket(5, 1)

	for i := 0; i < 5; i++ {
		if !bucket.Allow() {
			t.Errorf("Expected request %d to be allowed", i+1)
		}
	}
	if bucket.Allow() {
		t.Error("Expected 6th request to be blocked")
	}

	hits, total := bucket.Stats()
	if hits != 1 {
		t.Errorf("Expected 1 hit, got %d", hits)
	}
	if total != 6 {
		t.Errorf("Expected 6 total requests, got %d", total)
	}
}

func TestTokenBucket_Refill(t *testing.T) {
	clock := &fakeClock{t: time.Unix(0, 0)}
	bucket := newTokenBucket(2, 10, clock.Now)

	bucket.Allow()
	bucket.Allow()
	if bucket.Allow() {
		t.Fatal("Expected request to be blocked")
	}

	clock.Advance(200 * time.Millisecond)
	if !bucket.Allow() {
		t.Error("Expected request to be allowed after refill")
	}
	if !bucket.Allow() {
		t.Error("Expected second refilled token")
	}
	if bucket.Allow() {
		t.Error("Expected bucket to be empty again")
	}
}

func TestTokenBucket_RefillCapsAtCapacity(t *testing.T) {
	clock := &fakeClock{t: time.Unix(0, 0)}
	bucket := newTokenBucket(3, 100, clock.Now)

	clock.Advance(time.Hour)
	allowed := 0
	for i := 0; i < 10; i++ {
		if bucket.Allow() {
			allowed++
		}
	}
	if allowed != 3 {
		t.Errorf("Expected 3 allowed requests, got %d", allowed)
	}
}

func TestClientLimiter_Disabled(t *testing.T) {
	l := NewClientLimiter(Config{Capacity: 1, RefillRate: 1, Enabled: false}, nil)
	for i := 0; i < 10; i++ {
		if !l.Allow("c") {
			t.Fatal("Expected disabled limiter to allow everything")
		}
	}
	if len(l.Stats()) != 0 {
		t.Error("Expected no buckets for disabled limiter")
	}
}

func TestClientLimiter_PerClientBuckets(t *testing.T) {
	l := NewClientLimiter(Config{Capacity: 2, RefillRate: 1, Enabled: true}, nil)
	clock := &fakeClock{t: time.Unix(0, 0)}
	l.now = clock.Now

	if !l.Allow("a") || !l.Allow("a") {
		t.Fatal("Expected burst for client a")
	}
	if l.Allow("a") {
		t.Error("Expected client a to be limited")
	}
	if !l.Allow("b") {
		t.Error("Expected client b to have its own bucket")
	}

	stats := l.Stats()
	if stats["a"].Hits != 1 || stats["a"].Total != 3 {
		t.Errorf("Unexpected stats for a: %s", stats["a"])
	}
	if stats["b"].Hits != 0 {
		t.Errorf("Unexpected stats for b: %s", stats["b"])
	}
}

func TestClientLimiter_Prune(t *testing.T) {
	l := NewClientLimiter(Config{Capacity: 2, RefillRate: 1, Enabled: true}, nil)
	clock := &fakeClock{t: time.Unix(0, 0)}
	l.now = clock.Now

	l.Allow("old")
	clock.Advance(10 * time.Minute)
	l.Allow("fresh")

	if n := l.Prune(5 * time.Minute); n != 1 {
		t.Fatalf("Expected 1 pruned bucket, got %d", n)
	}
	if _, ok := l.Stats()["old"]; ok {
		t.Error("Expected old bucket to be pruned")
	}
	if _, ok := l.Stats()["fresh"]; !ok {
		t.Error("Expected fresh bucket to remain")
	}
}

func TestClientLimiter_Concurrent(t *testing.T) {
	l := NewClientLimiter(Config{Capacity: 50, RefillRate: 0, Enabled: true}, nil)

	var wg sync.WaitGroup
	var mu sync.Mutex
	allowed := 0
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if l.Allow("shared") {
				mu.Lock()
				allowed++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if allowed != 50 {
		t.Errorf("Expected 50 allowed requests, got %d", allowed)
	}
}
