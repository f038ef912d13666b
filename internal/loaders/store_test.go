package loaders

import (
	"context"
	"errors"
	"testing"

	"github.com/Conversly/carteira-api/internal/types"
	"github.com/shopspring/decimal"
)

// runStoreSuite exercises the gateway contract shared by every backend.
// newStore must return an empty store whose sequences start at 1.
func runStoreSuite(t *testing.T, newStore func(t *testing.T) Store) {
	ctx := context.Background()

	t.Run("create assigns increasing ids", func(t *testing.T) {
		store := newStore(t)
		first, err := store.CreateClient(ctx, types.ClientFields{Name: "Ana", Email: "ana@x.com", Status: true})
		if err != nil {
			t.Fatalf("create client: %v", err)
		}
		second, err := store.CreateClient(ctx, types.ClientFields{Name: "Bia", Email: "bia@x.com"})
		if err != nil {
			t.Fatalf("create client: %v", err)
		}
		if first.ID <= 0 || second.ID <= first.ID {
			t.Fatalf("expected increasing positive ids, got %d then %d", first.ID, second.ID)
		}
		if second.Status {
			t.Fatalf("expected status false to be stored as given")
		}
	})

	t.Run("lists are ordered by id and joined", func(t *testing.T) {
		store := newStore(t)
		ana := mustClient(t, store, "Ana")
		bia := mustClient(t, store, "Bia")
		selic := mustAsset(t, store, "Tesouro Selic", "100.50")
		petr := mustAsset(t, store, "PETR4", "37.12")

		mustAllocation(t, store, bia.ID, petr.ID, "3")
		mustAllocation(t, store, ana.ID, selic.ID, "10")
		mustAllocation(t, store, ana.ID, petr.ID, "0.5")

		clients, err := store.ListClients(ctx)
		if err != nil {
			t.Fatalf("list clients: %v", err)
		}
		if len(clients) != 2 || clients[0].ID != ana.ID || clients[1].ID != bia.ID {
			t.Fatalf("unexpected clients order: %+v", clients)
		}
		if len(clients[0].Allocations) != 2 {
			t.Fatalf("expected 2 allocations for Ana, got %d", len(clients[0].Allocations))
		}
		got := clients[0].Allocations[0]
		if got.Asset == nil || got.Asset.ID != selic.ID || !got.Asset.CurrentValue.Equal(dec("100.5")) {
			t.Fatalf("expected Selic joined on first allocation, got %+v", got.Asset)
		}

		assets, err := store.ListAssets(ctx)
		if err != nil {
			t.Fatalf("list assets: %v", err)
		}
		if len(assets) != 2 || assets[0].ID != selic.ID || assets[1].ID != petr.ID {
			t.Fatalf("unexpected assets order: %+v", assets)
		}

		allocs, err := store.ListAllocations(ctx)
		if err != nil {
			t.Fatalf("list allocations: %v", err)
		}
		if len(allocs) != 3 {
			t.Fatalf("expected 3 allocations, got %d", len(allocs))
		}
		for i := 1; i < len(allocs); i++ {
			if allocs[i-1].ID >= allocs[i].ID {
				t.Fatalf("allocations not ordered by id: %+v", allocs)
			}
		}
		if allocs[0].Client == nil || allocs[0].Client.ID != bia.ID || allocs[0].Asset == nil || allocs[0].Asset.ID != petr.ID {
			t.Fatalf("expected first allocation joined with Bia and PETR4, got %+v", allocs[0])
		}
	})

	t.Run("client without allocations has an empty list", func(t *testing.T) {
		store := newStore(t)
		c := mustClient(t, store, "Ana")

		got, err := store.GetClient(ctx, c.ID)
		if err != nil {
			t.Fatalf("get client: %v", err)
		}
		if got.Allocations == nil || len(got.Allocations) != 0 {
			t.Fatalf("expected empty non-nil allocations, got %#v", got.Allocations)
		}
	})

	t.Run("asset allocations carry clients", func(t *testing.T) {
		store := newStore(t)
		ana := mustClient(t, store, "Ana")
		selic := mustAsset(t, store, "Tesouro Selic", "100.50")
		mustAllocation(t, store, ana.ID, selic.ID, "10")

		got, err := store.GetAssetAllocations(ctx, selic.ID)
		if err != nil {
			t.Fatalf("get asset allocations: %v", err)
		}
		if len(got.Allocations) != 1 {
			t.Fatalf("expected 1 allocation, got %d", len(got.Allocations))
		}
		al := got.Allocations[0]
		if al.Client == nil || al.Client.Email != "ana@x.com" || !al.Quantity.Equal(dec("10")) {
			t.Fatalf("unexpected allocation %+v", al)
		}
	})

	t.Run("quantities keep every digit", func(t *testing.T) {
		store := newStore(t)
		ana := mustClient(t, store, "Ana")
		selic := mustAsset(t, store, "Tesouro Selic", "100.50")
		created := mustAllocation(t, store, ana.ID, selic.ID, "12.34567891")

		got, err := store.GetAllocation(ctx, created.ID)
		if err != nil {
			t.Fatalf("get allocation: %v", err)
		}
		if !got.Quantity.Equal(dec("12.34567891")) {
			t.Fatalf("expected 12.34567891, got %s", got.Quantity)
		}
		if got.ClientID != ana.ID || got.AssetID != selic.ID {
			t.Fatalf("unexpected references %+v", got)
		}
	})

	t.Run("update replaces fields", func(t *testing.T) {
		store := newStore(t)
		c := mustClient(t, store, "Ana")
		updated, err := store.UpdateClient(ctx, c.ID, types.ClientFields{Name: "Ana Maria", Email: "am@x.com", Status: false})
		if err != nil {
			t.Fatalf("update client: %v", err)
		}
		if updated.ID != c.ID || updated.Name != "Ana Maria" || updated.Status {
			t.Fatalf("unexpected update result %+v", updated)
		}

		a := mustAsset(t, store, "Selic", "1")
		ua, err := store.UpdateAsset(ctx, a.ID, types.AssetFields{Name: "Selic 2029", CurrentValue: dec("2.25")})
		if err != nil {
			t.Fatalf("update asset: %v", err)
		}
		if ua.Name != "Selic 2029" || !ua.CurrentValue.Equal(dec("2.25")) {
			t.Fatalf("unexpected asset %+v", ua)
		}

		al := mustAllocation(t, store, c.ID, a.ID, "1")
		ual, err := store.UpdateAllocation(ctx, al.ID, dec("7.5"))
		if err != nil {
			t.Fatalf("update allocation: %v", err)
		}
		if !ual.Quantity.Equal(dec("7.5")) || ual.ClientID != c.ID || ual.AssetID != a.ID {
			t.Fatalf("unexpected allocation %+v", ual)
		}
	})

	t.Run("missing rows are not found", func(t *testing.T) {
		store := newStore(t)
		const missing = 9999

		checks := map[string]error{}
		_, checks["get client"] = store.GetClient(ctx, missing)
		_, checks["update client"] = store.UpdateClient(ctx, missing, types.ClientFields{Name: "x", Email: "x@x.com"})
		checks["delete client"] = store.DeleteClient(ctx, missing)
		_, checks["get asset"] = store.GetAsset(ctx, missing)
		_, checks["get asset allocations"] = store.GetAssetAllocations(ctx, missing)
		_, checks["update asset"] = store.UpdateAsset(ctx, missing, types.AssetFields{Name: "x", CurrentValue: dec("1")})
		checks["delete asset"] = store.DeleteAsset(ctx, missing)
		_, checks["get allocation"] = store.GetAllocation(ctx, missing)
		_, checks["update allocation"] = store.UpdateAllocation(ctx, missing, dec("1"))
		checks["delete allocation"] = store.DeleteAllocation(ctx, missing)

		for op, err := range checks {
			var nf *types.NotFoundError
			if !errors.As(err, &nf) {
				t.Errorf("%s: expected NotFoundError, got %v", op, err)
				continue
			}
			if nf.ID != missing {
				t.Errorf("%s: expected id %d, got %d", op, missing, nf.ID)
			}
		}
	})

	t.Run("delete then get is not found", func(t *testing.T) {
		store := newStore(t)
		c := mustClient(t, store, "Ana")
		a := mustAsset(t, store, "Selic", "1")
		al := mustAllocation(t, store, c.ID, a.ID, "1")

		if err := store.DeleteAllocation(ctx, al.ID); err != nil {
			t.Fatalf("delete allocation: %v", err)
		}
		if err := store.DeleteAsset(ctx, a.ID); err != nil {
			t.Fatalf("delete asset: %v", err)
		}
		if err := store.DeleteClient(ctx, c.ID); err != nil {
			t.Fatalf("delete client: %v", err)
		}

		var nf *types.NotFoundError
		if _, err := store.GetClient(ctx, c.ID); !errors.As(err, &nf) {
			t.Fatalf("expected NotFoundError after delete, got %v", err)
		}
		if err := store.DeleteClient(ctx, c.ID); !errors.As(err, &nf) {
			t.Fatalf("expected NotFoundError on second delete, got %v", err)
		}
	})

	t.Run("dangling references are store errors", func(t *testing.T) {
		store := newStore(t)
		c := mustClient(t, store, "Ana")
		a := mustAsset(t, store, "Selic", "1")

		var se *types.StoreError
		_, err := store.CreateAllocation(ctx, types.AllocationFields{ClientID: 4242, AssetID: a.ID, Quantity: dec("1")})
		if !errors.As(err, &se) {
			t.Fatalf("expected StoreError for missing client, got %v", err)
		}
		if se.Code != foreignKeyViolation {
			t.Fatalf("expected code %s, got %q", foreignKeyViolation, se.Code)
		}
		_, err = store.CreateAllocation(ctx, types.AllocationFields{ClientID: c.ID, AssetID: 4242, Quantity: dec("1")})
		if !errors.As(err, &se) {
			t.Fatalf("expected StoreError for missing asset, got %v", err)
		}

		mustAllocation(t, store, c.ID, a.ID, "1")
		if err := store.DeleteClient(ctx, c.ID); !errors.As(err, &se) {
			t.Fatalf("expected StoreError deleting referenced client, got %v", err)
		}
		if err := store.DeleteAsset(ctx, a.ID); !errors.As(err, &se) {
			t.Fatalf("expected StoreError deleting referenced asset, got %v", err)
		}
	})

	t.Run("ping", func(t *testing.T) {
		if err := newStore(t).Ping(ctx); err != nil {
			t.Fatalf("ping: %v", err)
		}
	})
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func mustClient(t *testing.T, store Store, name string) *types.Client {
	t.Helper()
	email := map[string]string{"Ana": "ana@x.com", "Bia": "bia@x.com"}[name]
	if email == "" {
		email = "someone@x.com"
	}
	c, err := store.CreateClient(context.Background(), types.ClientFields{Name: name, Email: email, Status: true})
	if err != nil {
		t.Fatalf("create client %s: %v", name, err)
	}
	return c
}

func mustAsset(t *testing.T, store Store, name, value string) *types.Asset {
	t.Helper()
	a, err := store.CreateAsset(context.Background(), types.AssetFields{Name: name, CurrentValue: dec(value)})
	if err != nil {
		t.Fatalf("create asset %s: %v", name, err)
	}
	return a
}

func mustAllocation(t *testing.T, store Store, clientID, assetID int64, quantity string) *types.Allocation {
	t.Helper()
	al, err := store.CreateAllocation(context.Background(), types.AllocationFields{
		ClientID: clientID,
		AssetID:  assetID,
		Quantity: dec(quantity),
	})
	if err != nil {
		t.Fatalf("create allocation: %v", err)
	}
	return al
}
