package loaders

import (
	"context"
	"testing"

	"github.com/Conversly/carteira-api/internal/config"
	"github.com/Conversly/carteira-api/internal/types"
)

func newTestMemoryStore(t *testing.T) Store {
	t.Helper()
	store, err := NewMemoryStore()
	if err != nil {
		t.Fatalf("new memory store: %v", err)
	}
	return store
}

func TestMemoryStore(t *testing.T) {
	runStoreSuite(t, newTestMemoryStore)
}

func TestMemoryStoreReturnsCopies(t *testing.T) {
	ctx := context.Background()
	store := newTestMemoryStore(t)

	c, err := store.CreateClient(ctx, types.ClientFields{Name: "Ana", Email: "ana@x.com", Status: true})
	if err != nil {
		t.Fatalf("create client: %v", err)
	}
	c.Name = "mutated"

	got, err := store.GetClient(ctx, c.ID)
	if err != nil {
		t.Fatalf("get client: %v", err)
	}
	if got.Name != "Ana" {
		t.Fatalf("stored row changed through returned pointer: %q", got.Name)
	}
}

func TestMemoryStoreOrdersPastVarintBoundary(t *testing.T) {
	ctx := context.Background()
	store := newTestMemoryStore(t)

	for i := 0; i < 70; i++ {
		if _, err := store.CreateAsset(ctx, types.AssetFields{Name: "a", CurrentValue: dec("1")}); err != nil {
			t.Fatalf("create asset: %v", err)
		}
	}
	assets, err := store.ListAssets(ctx)
	if err != nil {
		t.Fatalf("list assets: %v", err)
	}
	for i, a := range assets {
		if a.ID != int64(i+1) {
			t.Fatalf("position %d holds id %d", i, a.ID)
		}
	}
}

func TestOpen(t *testing.T) {
	ctx := context.Background()

	store, err := Open(ctx, &config.Config{StoreDriver: DriverMemory})
	if err != nil {
		t.Fatalf("open memory: %v", err)
	}
	if store.Driver() != DriverMemory {
		t.Fatalf("expected memory driver, got %s", store.Driver())
	}

	if _, err := Open(ctx, &config.Config{StoreDriver: "sqlite"}); err == nil {
		t.Fatal("expected error for unknown driver")
	}
}
