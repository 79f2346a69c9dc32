package products

import (
	"context"
	"errors"
	"testing"
	"time"
)

type fakeStore struct {
	values  map[string]string
	failing bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{values: map[string]string{}}
}

func (f *fakeStore) Set(_ context.Context, key string, value any, _ time.Duration) error {
	if f.failing {
		return errors.New("redis down")
	}
	f.values[key] = value.(string)
	return nil
}

func (f *fakeStore) Get(_ context.Context, key string) (string, error) {
	if f.failing {
		return "", errors.New("redis down")
	}
	raw, ok := f.values[key]
	if !ok {
		return "", errors.New("key missing")
	}
	return raw, nil
}

func (f *fakeStore) Del(_ context.Context, keys ...string) error {
	if f.failing {
		return errors.New("redis down")
	}
	for _, key := range keys {
		delete(f.values, key)
	}
	return nil
}

func (f *fakeStore) ProductHintsKey(draftID string) string {
	return "enquiry:product_hints:" + draftID
}

func (f *fakeStore) CountKey(draftID string) string {
	return "enquiry:count:" + draftID
}

func TestCacheRoundTripsHints(t *testing.T) {
	store := newFakeStore()
	cache := NewCache(CacheParams{Store: store})
	ctx := context.Background()

	cache.StoreHints(ctx, "D1", map[string]Hint{
		"V1": {Image: "https://cdn/img.png", Vendor: "Acme"},
	})

	hints := cache.Hints(ctx, "D1")
	if len(hints) != 1 {
		t.Fatalf("expected one hint, got %v", hints)
	}
	if hints["V1"].Vendor != "Acme" {
		t.Fatalf("unexpected hint %+v", hints["V1"])
	}
}

func TestCacheSwallowsStoreFailures(t *testing.T) {
	store := newFakeStore()
	store.failing = true
	cache := NewCache(CacheParams{Store: store})
	ctx := context.Background()

	cache.StoreHints(ctx, "D1", map[string]Hint{"V1": {Vendor: "Acme"}})
	if hints := cache.Hints(ctx, "D1"); hints != nil {
		t.Fatalf("expected nil hints on failure, got %v", hints)
	}

	cache.SetCount(ctx, "D1", 4)
	if _, ok := cache.Count(ctx, "D1"); ok {
		t.Fatal("expected count miss on failure")
	}
}

func TestCacheCountMirror(t *testing.T) {
	store := newFakeStore()
	cache := NewCache(CacheParams{Store: store})
	ctx := context.Background()

	cache.SetCount(ctx, "D1", 7)
	count, ok := cache.Count(ctx, "D1")
	if !ok || count != 7 {
		t.Fatalf("expected count 7, got %d (hit=%v)", count, ok)
	}

	cache.Clear(ctx, "D1")
	if _, ok := cache.Count(ctx, "D1"); ok {
		t.Fatal("expected miss after clear")
	}
	if hints := cache.Hints(ctx, "D1"); hints != nil {
		t.Fatalf("expected no hints after clear, got %v", hints)
	}
}

func TestCacheIgnoresEmptyDraftID(t *testing.T) {
	store := newFakeStore()
	cache := NewCache(CacheParams{Store: store})
	ctx := context.Background()

	cache.SetCount(ctx, "", 3)
	if len(store.values) != 0 {
		t.Fatalf("expected no writes, got %v", store.values)
	}
}
