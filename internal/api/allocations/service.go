package allocations

import (
	"context"

	"github.com/Conversly/carteira-api/internal/types"
	"github.com/Conversly/carteira-api/internal/utils"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type Store interface {
	ListAllocations(ctx context.Context) ([]types.Allocation, error)
	GetAllocation(ctx context.Context, id int64) (*types.Allocation, error)
	CreateAllocation(ctx context.Context, in types.AllocationFields) (*types.Allocation, error)
	UpdateAllocation(ctx context.Context, id int64, quantity decimal.Decimal) (*types.Allocation, error)
	DeleteAllocation(ctx context.Context, id int64) error
}

type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

func (s *Service) List(ctx context.Context) ([]types.Allocation, error) {
	return s.store.ListAllocations(ctx)
}

func (s *Service) Get(ctx context.Context, id int64) (*types.Allocation, error) {
	return s.store.GetAllocation(ctx, id)
}

// Create inserts the allocation without checking the client and asset first;
// a dangling reference is rejected by the store's foreign keys.
func (s *Service) Create(ctx context.Context, in types.AllocationFields) (*types.Allocation, error) {
	al, err := s.store.CreateAllocation(ctx, in)
	if err != nil {
		return nil, err
	}
	utils.Zlog.Info("Allocation created",
		zap.Int64("allocationId", al.ID),
		zap.Int64("clientId", al.ClientID),
		zap.Int64("assetId", al.AssetID),
		zap.String("quantity", al.Quantity.String()))
	return al, nil
}

func (s *Service) Update(ctx context.Context, id int64, quantity decimal.Decimal) (*types.Allocation, error) {
	al, err := s.store.UpdateAllocation(ctx, id, quantity)
	if err != nil {
		return nil, err
	}
	utils.Zlog.Info("Allocation updated",
		zap.Int64("allocationId", id),
		zap.String("quantity", al.Quantity.String()))
	return al, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.store.DeleteAllocation(ctx, id); err != nil {
		return err
	}
	utils.Zlog.Info("Allocation deleted", zap.Int64("allocationId", id))
	return nil
}
