package memory

import (
	"context"
	"testing"
	"time"

	"github.com/Gunvolt24/telecom_cart/internal/domain"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func newProduct(id string) domain.Product {
	return domain.Product{ID: id, Name: "x", Category: domain.CategoryAddon, Price: 9.99}
}

func TestSetGet_HitMiss(t *testing.T) {
	c := NewProductCache(2, 5*time.Minute)
	ctx := context.Background()

	// miss
	if _, ok := c.Get(ctx, "id-1"); ok {
		t.Fatalf("expected miss before Set")
	}

	// hit после Set
	c.Set(ctx, newProduct("id-1"))
	got, ok := c.Get(ctx, "id-1")
	if !ok || got.ID != "id-1" {
		t.Fatalf("expected hit for id-1")
	}
}

func TestSet_EmptyIDIgnored(t *testing.T) {
	c := NewProductCache(2, 0)
	c.Set(context.Background(), domain.Product{})
	if c.Len() != 0 {
		t.Fatalf("product without id must not be cached")
	}
}

func TestTTL_Expiry(t *testing.T) {
	clock := &fakeClock{t: time.Unix(1_700_000_000, 0)}
	c := NewProductCache(2, 100*time.Millisecond, WithClock(clock.Now))
	ctx := context.Background()

	c.Set(ctx, newProduct("ttl"))
	if _, ok := c.Get(ctx, "ttl"); !ok {
		t.Fatalf("expected hit right after Set")
	}
	clock.Advance(150 * time.Millisecond)
	if _, ok := c.Get(ctx, "ttl"); ok {
		t.Fatalf("expected miss after TTL expires")
	}
	if c.Len() != 0 {
		t.Fatalf("expired entry must be removed on Get, len=%d", c.Len())
	}
}

func TestTTL_SlidingOnHit(t *testing.T) {
	clock := &fakeClock{t: time.Unix(1_700_000_000, 0)}
	c := NewProductCache(2, 100*time.Millisecond, WithClock(clock.Now))
	ctx := context.Background()

	c.Set(ctx, newProduct("p"))
	clock.Advance(80 * time.Millisecond)
	if _, ok := c.Get(ctx, "p"); !ok {
		t.Fatalf("expected hit before TTL")
	}
	clock.Advance(80 * time.Millisecond)
	if _, ok := c.Get(ctx, "p"); !ok {
		t.Fatalf("hit must extend TTL")
	}
}

func TestLRUEviction(t *testing.T) {
	c := NewProductCache(2, 0) // 0 = без TTL
	ctx := context.Background()

	c.Set(ctx, newProduct("A"))
	c.Set(ctx, newProduct("B"))
	// A сделать «свежим»
	if _, ok := c.Get(ctx, "A"); !ok {
		t.Fatalf("expected hit for A")
	}
	// Добавляем C — вытеснит B (самый старый)
	c.Set(ctx, newProduct("C"))

	if _, ok := c.Get(ctx, "B"); ok {
		t.Fatalf("expected B to be evicted")
	}
	if _, ok := c.Get(ctx, "A"); !ok || c.Len() != 2 {
		t.Fatalf("expected A & C to stay in cache")
	}
}

func TestSet_OverwritesExisting(t *testing.T) {
	c := NewProductCache(2, 0)
	ctx := context.Background()

	c.Set(ctx, newProduct("A"))
	updated := newProduct("A")
	updated.Price = 19.99
	c.Set(ctx, updated)

	got, ok := c.Get(ctx, "A")
	if !ok || got.Price != 19.99 || c.Len() != 1 {
		t.Fatalf("expected overwritten entry, got %+v len=%d", got, c.Len())
	}
}

func TestWarmUp_KeepsMostRecent(t *testing.T) {
	c := NewProductCache(2, 0)
	ctx := context.Background()

	c.WarmUp(ctx, []domain.Product{newProduct("A"), newProduct("B"), newProduct("C")})

	if _, ok := c.Get(ctx, "A"); ok {
		t.Fatalf("A must be evicted by warm-up overflow")
	}
	for _, id := range []string{"B", "C"} {
		if _, ok := c.Get(ctx, id); !ok {
			t.Fatalf("expected %s after warm-up", id)
		}
	}
}
