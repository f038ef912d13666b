package clients

import (
	"context"

	"github.com/Conversly/carteira-api/internal/types"
	"github.com/Conversly/carteira-api/internal/utils"
	"go.uber.org/zap"
)

// Store is the part of the persistence gateway this feature uses.
type Store interface {
	ListClients(ctx context.Context) ([]types.ClientWithAllocations, error)
	GetClient(ctx context.Context, id int64) (*types.ClientWithAllocations, error)
	CreateClient(ctx context.Context, in types.ClientFields) (*types.Client, error)
	UpdateClient(ctx context.Context, id int64, in types.ClientFields) (*types.Client, error)
	DeleteClient(ctx context.Context, id int64) error
}

type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

func (s *Service) List(ctx context.Context) ([]types.ClientWithAllocations, error) {
	return s.store.ListClients(ctx)
}

func (s *Service) Get(ctx context.Context, id int64) (*types.ClientWithAllocations, error) {
	return s.store.GetClient(ctx, id)
}

func (s *Service) Create(ctx context.Context, in types.ClientFields) (*types.Client, error) {
	c, err := s.store.CreateClient(ctx, in)
	if err != nil {
		return nil, err
	}
	utils.Zlog.Info("Client created",
		zap.Int64("clientId", c.ID),
		zap.Bool("status", c.Status))
	return c, nil
}

func (s *Service) Update(ctx context.Context, id int64, in types.ClientFields) (*types.Client, error) {
	c, err := s.store.UpdateClient(ctx, id, in)
	if err != nil {
		return nil, err
	}
	utils.Zlog.Info("Client updated", zap.Int64("clientId", id))
	return c, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.store.DeleteClient(ctx, id); err != nil {
		return err
	}
	utils.Zlog.Info("Client deleted", zap.Int64("clientId", id))
	return nil
}
