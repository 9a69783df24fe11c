package cache_test

import (
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/resilience-works/continuity/pkg/service/cache"
)

type fakeClock struct {
	now time.Time
}

func (f *fakeClock) Now() time.Time {
	return f.now
}

func (f *fakeClock) Advance(d time.Duration) {
	f.now = f.now.Add(d)
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
}

func TestCacheTTLBoundary(t *testing.T) {
	clk := newFakeClock()
	c := cache.New(cache.WithClock(clk.Now), cache.WithTTL(5*time.Minute))

	c.Set("hazards:all", "v")

	clk.Advance(5*time.Minute - time.Millisecond)
	_, ok := c.Get("hazards:all")
	gt.Bool(t, ok).True()

	clk.Advance(2 * time.Millisecond)
	_, ok = c.Get("hazards:all")
	gt.Bool(t, ok).False()

	// expired entry was evicted, not just hidden
	gt.Value(t, c.Len()).Equal(0)
}

func TestCachePerEntryTTL(t *testing.T) {
	clk := newFakeClock()
	c := cache.New(cache.WithClock(clk.Now), cache.WithTTL(5*time.Minute))

	c.SetTTL("short", "v", time.Second)
	c.Set("long", "v")

	clk.Advance(2 * time.Second)
	_, ok := c.Get("short")
	gt.Bool(t, ok).False()
	_, ok = c.Get("long")
	gt.Bool(t, ok).True()
}

func TestCachePrefixInvalidation(t *testing.T) {
	c := cache.New()
	c.Set("strategies:a", 1)
	c.Set("strategies:b", 2)
	c.Set("hazards:b", 3)

	n := c.Invalidate("strategies")
	gt.Value(t, n).Equal(2)

	_, ok := c.Get("strategies:a")
	gt.Bool(t, ok).False()
	_, ok = c.Get("strategies:b")
	gt.Bool(t, ok).False()

	v, ok := c.Get("hazards:b")
	gt.Bool(t, ok).True()
	gt.Value(t, v).Equal(3)
}

func TestCacheInvalidateAll(t *testing.T) {
	c := cache.New()
	c.Set("strategies:a", 1)
	c.Set("hazards:b", 2)

	n := c.Invalidate("")
	gt.Value(t, n).Equal(2)
	gt.Value(t, c.Len()).Equal(0)
}

func TestCacheOverwrite(t *testing.T) {
	c := cache.New()
	c.Set("k", "old")
	c.Set("k", "new")

	v, ok := c.Get("k")
	gt.Bool(t, ok).True()
	gt.Value(t, v).Equal("new")
	gt.Value(t, c.Len()).Equal(1)
}
