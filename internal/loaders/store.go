package loaders

import (
	"context"
	"fmt"

	"github.com/Conversly/carteira-api/internal/config"
	"github.com/Conversly/carteira-api/internal/types"
	"github.com/shopspring/decimal"
)

// Store is the persistence gateway. Every method is a single round-trip and
// reports a missing row with *types.NotFoundError and any other failure with
// *types.StoreError.
type Store interface {
	ListClients(ctx context.Context) ([]types.ClientWithAllocations, error)
	GetClient(ctx context.Context, id int64) (*types.ClientWithAllocations, error)
	CreateClient(ctx context.Context, in types.ClientFields) (*types.Client, error)
	UpdateClient(ctx context.Context, id int64, in types.ClientFields) (*types.Client, error)
	DeleteClient(ctx context.Context, id int64) error

	ListAssets(ctx context.Context) ([]types.Asset, error)
	GetAsset(ctx context.Context, id int64) (*types.Asset, error)
	GetAssetAllocations(ctx context.Context, id int64) (*types.AssetWithAllocations, error)
	CreateAsset(ctx context.Context, in types.AssetFields) (*types.Asset, error)
	UpdateAsset(ctx context.Context, id int64, in types.AssetFields) (*types.Asset, error)
	DeleteAsset(ctx context.Context, id int64) error

	ListAllocations(ctx context.Context) ([]types.Allocation, error)
	GetAllocation(ctx context.Context, id int64) (*types.Allocation, error)
	CreateAllocation(ctx context.Context, in types.AllocationFields) (*types.Allocation, error)
	UpdateAllocation(ctx context.Context, id int64, quantity decimal.Decimal) (*types.Allocation, error)
	DeleteAllocation(ctx context.Context, id int64) error

	Ping(ctx context.Context) error
	Driver() string
	Close()
}

const (
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// Open builds the store selected by cfg.StoreDriver.
func Open(ctx context.Context, cfg *config.Config) (Store, error) {
	switch cfg.StoreDriver {
	case DriverPostgres:
		client, err := NewPostgresClient(ctx, cfg.DatabaseURL, cfg.DBMaxConns)
		if err != nil {
			return nil, err
		}
		if cfg.DBAutoSchema {
			if err := client.EnsureSchema(ctx); err != nil {
				client.Close()
				return nil, err
			}
		}
		return client, nil
	case DriverMemory:
		return NewMemoryStore()
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
}
