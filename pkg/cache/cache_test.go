package cache

import (
	"context"
	"testing"
	"time"
)

func TestInMemorySetGet(t *testing.T) {
	c := NewInMemory()
	ctx := context.Background()
	if _, ok := c.Get(ctx, "missing"); ok {
		t.Fatal("expected miss for unset key")
	}
	if err := c.Set(ctx, "k", "v", 0); err != nil {
		t.Fatalf("set: %v", err)
	}
	got, ok := c.Get(ctx, "k")
	if !ok || got != "v" {
		t.Fatalf("expected hit with v, got %q ok=%v", got, ok)
	}
}

func TestInMemoryTTLExpiry(t *testing.T) {
	c := NewInMemory()
	ctx := context.Background()
	if err := c.Set(ctx, "k", "v", time.Millisecond); err != nil {
		t.Fatalf("set: %v", err)
	}
	time.Sleep(5 * time.Millisecond)
	if _, ok := c.Get(ctx, "k"); ok {
		t.Fatal("expected expired entry to miss")
	}
}

func TestInMemoryDelete(t *testing.T) {
	c := NewInMemory()
	ctx := context.Background()
	if err := c.Set(ctx, "k", "v", 0); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := c.Delete(ctx, "k"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, ok := c.Get(ctx, "k"); ok {
		t.Fatal("expected miss after delete")
	}
	if err := c.Delete(ctx, "k"); err != nil {
		t.Fatal("deleting an absent key should not error")
	}
}
