package assets

import (
	"context"

	"github.com/Conversly/carteira-api/internal/types"
	"github.com/Conversly/carteira-api/internal/utils"
	"go.uber.org/zap"
)

type Store interface {
	ListAssets(ctx context.Context) ([]types.Asset, error)
	GetAsset(ctx context.Context, id int64) (*types.Asset, error)
	GetAssetAllocations(ctx context.Context, id int64) (*types.AssetWithAllocations, error)
	CreateAsset(ctx context.Context, in types.AssetFields) (*types.Asset, error)
	UpdateAsset(ctx context.Context, id int64, in types.AssetFields) (*types.Asset, error)
	DeleteAsset(ctx context.Context, id int64) error
}

type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

func (s *Service) List(ctx context.Context) ([]types.Asset, error) {
	return s.store.ListAssets(ctx)
}

func (s *Service) Get(ctx context.Context, id int64) (*types.Asset, error) {
	return s.store.GetAsset(ctx, id)
}

func (s *Service) Allocations(ctx context.Context, id int64) (*AssetAllocationsResponse, error) {
	asset, err := s.store.GetAssetAllocations(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := FlattenAllocations(asset)
	return &resp, nil
}

func (s *Service) Create(ctx context.Context, in types.AssetFields) (*types.Asset, error) {
	a, err := s.store.CreateAsset(ctx, in)
	if err != nil {
		return nil, err
	}
	utils.Zlog.Info("Asset created",
		zap.Int64("assetId", a.ID),
		zap.String("currentValue", a.CurrentValue.String()))
	return a, nil
}

func (s *Service) Update(ctx context.Context, id int64, in types.AssetFields) (*types.Asset, error) {
	a, err := s.store.UpdateAsset(ctx, id, in)
	if err != nil {
		return nil, err
	}
	utils.Zlog.Info("Asset updated",
		zap.Int64("assetId", id),
		zap.String("currentValue", a.CurrentValue.String()))
	return a, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.store.DeleteAsset(ctx, id); err != nil {
		return err
	}
	utils.Zlog.Info("Asset deleted", zap.Int64("assetId", id))
	return nil
}
