package loaders

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"time"

	"github.com/Conversly/carteira-api/internal/queries"
	"github.com/Conversly/carteira-api/internal/types"
	"github.com/Conversly/carteira-api/internal/utils"
	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

//go:embed schema.sql
var schemaSQL string

// PostgresClient is the Store backed by a pgx connection pool.
type PostgresClient struct {
	pool *pgxpool.Pool
}

// NewPostgresClient connects to dsn with at most maxConns pooled connections.
func NewPostgresClient(ctx context.Context, dsn string, maxConns int) (*PostgresClient, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database URL: %w", err)
	}
	if maxConns > 0 {
		cfg.MaxConns = int32(maxConns)
	}

	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	pool, err := pgxpool.ConnectConfig(connectCtx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}

	utils.Zlog.Info("Connected to PostgreSQL",
		zap.String("host", cfg.ConnConfig.Host),
		zap.String("database", cfg.ConnConfig.Database),
		zap.Int32("maxConns", cfg.MaxConns))

	return &PostgresClient{pool: pool}, nil
}

// EnsureSchema creates the tables when they do not exist yet.
func (p *PostgresClient) EnsureSchema(ctx context.Context) error {
	if _, err := p.pool.Exec(ctx, schemaSQL); err != nil {
		return storeError("ensure schema", err)
	}
	utils.Zlog.Info("Database schema ensured")
	return nil
}

func (p *PostgresClient) Ping(ctx context.Context) error {
	if err := p.pool.Ping(ctx); err != nil {
		return storeError("ping", err)
	}
	return nil
}

func (p *PostgresClient) Driver() string {
	return DriverPostgres
}

func (p *PostgresClient) Close() {
	p.pool.Close()
}

// ====== CLIENTS ======

func (p *PostgresClient) ListClients(ctx context.Context) ([]types.ClientWithAllocations, error) {
	rows, err := p.pool.Query(ctx, queries.ListClientsWithAllocations)
	if err != nil {
		return nil, storeError("list clients", err)
	}
	defer rows.Close()

	clients := []types.ClientWithAllocations{}
	for rows.Next() {
		var row clientJoinRow
		if err := row.scan(rows); err != nil {
			return nil, storeError("list clients", err)
		}
		if n := len(clients); n == 0 || clients[n-1].ID != row.client.ID {
			clients = append(clients, types.ClientWithAllocations{
				Client:      row.client,
				Allocations: []types.Allocation{},
			})
		}
		if alloc := row.allocation(); alloc != nil {
			last := &clients[len(clients)-1]
			last.Allocations = append(last.Allocations, *alloc)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, storeError("list clients", err)
	}
	return clients, nil
}

func (p *PostgresClient) GetClient(ctx context.Context, id int64) (*types.ClientWithAllocations, error) {
	rows, err := p.pool.Query(ctx, queries.GetClientWithAllocations, id)
	if err != nil {
		return nil, storeError("get client", err)
	}
	defer rows.Close()

	var client *types.ClientWithAllocations
	for rows.Next() {
		var row clientJoinRow
		if err := row.scan(rows); err != nil {
			return nil, storeError("get client", err)
		}
		if client == nil {
			client = &types.ClientWithAllocations{Client: row.client, Allocations: []types.Allocation{}}
		}
		if alloc := row.allocation(); alloc != nil {
			client.Allocations = append(client.Allocations, *alloc)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, storeError("get client", err)
	}
	if client == nil {
		return nil, &types.NotFoundError{Entity: types.EntityClient, ID: id}
	}
	return client, nil
}

func (p *PostgresClient) CreateClient(ctx context.Context, in types.ClientFields) (*types.Client, error) {
	var c types.Client
	err := p.pool.QueryRow(ctx, queries.InsertClient, in.Name, in.Email, in.Status).
		Scan(&c.ID, &c.Name, &c.Email, &c.Status)
	if err != nil {
		return nil, storeError("create client", err)
	}
	return &c, nil
}

func (p *PostgresClient) UpdateClient(ctx context.Context, id int64, in types.ClientFields) (*types.Client, error) {
	var c types.Client
	err := p.pool.QueryRow(ctx, queries.UpdateClient, id, in.Name, in.Email, in.Status).
		Scan(&c.ID, &c.Name, &c.Email, &c.Status)
	if err != nil {
		return nil, rowError("update client", types.EntityClient, id, err)
	}
	return &c, nil
}

func (p *PostgresClient) DeleteClient(ctx context.Context, id int64) error {
	return p.deleteByID(ctx, "delete client", queries.DeleteClient, types.EntityClient, id)
}

// ====== ASSETS ======

func (p *PostgresClient) ListAssets(ctx context.Context) ([]types.Asset, error) {
	rows, err := p.pool.Query(ctx, queries.ListAssets)
	if err != nil {
		return nil, storeError("list assets", err)
	}
	defer rows.Close()

	assets := []types.Asset{}
	for rows.Next() {
		var a types.Asset
		if err := rows.Scan(&a.ID, &a.Name, &a.CurrentValue); err != nil {
			return nil, storeError("list assets", err)
		}
		assets = append(assets, a)
	}
	if err := rows.Err(); err != nil {
		return nil, storeError("list assets", err)
	}
	return assets, nil
}

func (p *PostgresClient) GetAsset(ctx context.Context, id int64) (*types.Asset, error) {
	var a types.Asset
	err := p.pool.QueryRow(ctx, queries.GetAsset, id).Scan(&a.ID, &a.Name, &a.CurrentValue)
	if err != nil {
		return nil, rowError("get asset", types.EntityAsset, id, err)
	}
	return &a, nil
}

func (p *PostgresClient) GetAssetAllocations(ctx context.Context, id int64) (*types.AssetWithAllocations, error) {
	rows, err := p.pool.Query(ctx, queries.GetAssetWithAllocations, id)
	if err != nil {
		return nil, storeError("get asset allocations", err)
	}
	defer rows.Close()

	var asset *types.AssetWithAllocations
	for rows.Next() {
		var row assetJoinRow
		if err := row.scan(rows); err != nil {
			return nil, storeError("get asset allocations", err)
		}
		if asset == nil {
			asset = &types.AssetWithAllocations{Asset: row.asset, Allocations: []types.Allocation{}}
		}
		if alloc := row.allocation(); alloc != nil {
			asset.Allocations = append(asset.Allocations, *alloc)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, storeError("get asset allocations", err)
	}
	if asset == nil {
		return nil, &types.NotFoundError{Entity: types.EntityAsset, ID: id}
	}
	return asset, nil
}

func (p *PostgresClient) CreateAsset(ctx context.Context, in types.AssetFields) (*types.Asset, error) {
	var a types.Asset
	err := p.pool.QueryRow(ctx, queries.InsertAsset, in.Name, in.CurrentValue).
		Scan(&a.ID, &a.Name, &a.CurrentValue)
	if err != nil {
		return nil, storeError("create asset", err)
	}
	return &a, nil
}

func (p *PostgresClient) UpdateAsset(ctx context.Context, id int64, in types.AssetFields) (*types.Asset, error) {
	var a types.Asset
	err := p.pool.QueryRow(ctx, queries.UpdateAsset, id, in.Name, in.CurrentValue).
		Scan(&a.ID, &a.Name, &a.CurrentValue)
	if err != nil {
		return nil, rowError("update asset", types.EntityAsset, id, err)
	}
	return &a, nil
}

func (p *PostgresClient) DeleteAsset(ctx context.Context, id int64) error {
	return p.deleteByID(ctx, "delete asset", queries.DeleteAsset, types.EntityAsset, id)
}

// ====== ALLOCATIONS ======

func (p *PostgresClient) ListAllocations(ctx context.Context) ([]types.Allocation, error) {
	rows, err := p.pool.Query(ctx, queries.ListAllocations)
	if err != nil {
		return nil, storeError("list allocations", err)
	}
	defer rows.Close()

	allocations := []types.Allocation{}
	for rows.Next() {
		alloc, err := scanAllocationJoin(rows)
		if err != nil {
			return nil, storeError("list allocations", err)
		}
		allocations = append(allocations, *alloc)
	}
	if err := rows.Err(); err != nil {
		return nil, storeError("list allocations", err)
	}
	return allocations, nil
}

func (p *PostgresClient) GetAllocation(ctx context.Context, id int64) (*types.Allocation, error) {
	alloc, err := scanAllocationJoin(p.pool.QueryRow(ctx, queries.GetAllocation, id))
	if err != nil {
		return nil, rowError("get allocation", types.EntityAllocation, id, err)
	}
	return alloc, nil
}

func (p *PostgresClient) CreateAllocation(ctx context.Context, in types.AllocationFields) (*types.Allocation, error) {
	var al types.Allocation
	err := p.pool.QueryRow(ctx, queries.InsertAllocation, in.ClientID, in.AssetID, in.Quantity).
		Scan(&al.ID, &al.ClientID, &al.AssetID, &al.Quantity)
	if err != nil {
		return nil, storeError("create allocation", err)
	}
	return &al, nil
}

func (p *PostgresClient) UpdateAllocation(ctx context.Context, id int64, quantity decimal.Decimal) (*types.Allocation, error) {
	var al types.Allocation
	err := p.pool.QueryRow(ctx, queries.UpdateAllocationQuantity, id, quantity).
		Scan(&al.ID, &al.ClientID, &al.AssetID, &al.Quantity)
	if err != nil {
		return nil, rowError("update allocation", types.EntityAllocation, id, err)
	}
	return &al, nil
}

func (p *PostgresClient) DeleteAllocation(ctx context.Context, id int64) error {
	return p.deleteByID(ctx, "delete allocation", queries.DeleteAllocation, types.EntityAllocation, id)
}

// ====== HELPERS ======

func (p *PostgresClient) deleteByID(ctx context.Context, op, sql, entity string, id int64) error {
	tag, err := p.pool.Exec(ctx, sql, id)
	if err != nil {
		return storeError(op, err)
	}
	if tag.RowsAffected() == 0 {
		return &types.NotFoundError{Entity: entity, ID: id}
	}
	return nil
}

// clientJoinRow is one row of a clientes ⟕ alocacoes ⟕ ativos join.
type clientJoinRow struct {
	client        types.Client
	allocID       *int64
	allocClientID *int64
	allocAssetID  *int64
	quantity      decimal.NullDecimal
	assetID       *int64
	assetName     *string
	assetValue    decimal.NullDecimal
}

func (r *clientJoinRow) scan(row pgx.Row) error {
	return row.Scan(
		&r.client.ID, &r.client.Name, &r.client.Email, &r.client.Status,
		&r.allocID, &r.allocClientID, &r.allocAssetID, &r.quantity,
		&r.assetID, &r.assetName, &r.assetValue,
	)
}

func (r *clientJoinRow) allocation() *types.Allocation {
	if r.allocID == nil {
		return nil
	}
	alloc := &types.Allocation{
		ID:       *r.allocID,
		ClientID: *r.allocClientID,
		AssetID:  *r.allocAssetID,
		Quantity: r.quantity.Decimal,
	}
	if r.assetID != nil {
		alloc.Asset = &types.Asset{ID: *r.assetID, Name: *r.assetName, CurrentValue: r.assetValue.Decimal}
	}
	return alloc
}

// assetJoinRow is one row of an ativos ⟕ alocacoes ⟕ clientes join.
type assetJoinRow struct {
	asset         types.Asset
	allocID       *int64
	allocClientID *int64
	allocAssetID  *int64
	quantity      decimal.NullDecimal
	clientID      *int64
	clientName    *string
	clientEmail   *string
	clientStatus  *bool
}

func (r *assetJoinRow) scan(row pgx.Row) error {
	return row.Scan(
		&r.asset.ID, &r.asset.Name, &r.asset.CurrentValue,
		&r.allocID, &r.allocClientID, &r.allocAssetID, &r.quantity,
		&r.clientID, &r.clientName, &r.clientEmail, &r.clientStatus,
	)
}

func (r *assetJoinRow) allocation() *types.Allocation {
	if r.allocID == nil {
		return nil
	}
	alloc := &types.Allocation{
		ID:       *r.allocID,
		ClientID: *r.allocClientID,
		AssetID:  *r.allocAssetID,
		Quantity: r.quantity.Decimal,
	}
	if r.clientID != nil {
		alloc.Client = &types.Client{
			ID:     *r.clientID,
			Name:   *r.clientName,
			Email:  *r.clientEmail,
			Status: *r.clientStatus,
		}
	}
	return alloc
}

func scanAllocationJoin(row pgx.Row) (*types.Allocation, error) {
	var al types.Allocation
	var c types.Client
	var a types.Asset
	err := row.Scan(
		&al.ID, &al.ClientID, &al.AssetID, &al.Quantity,
		&c.ID, &c.Name, &c.Email, &c.Status,
		&a.ID, &a.Name, &a.CurrentValue,
	)
	if err != nil {
		return nil, err
	}
	al.Client = &c
	al.Asset = &a
	return &al, nil
}

// rowError maps a single-row miss to NotFoundError and anything else to
// StoreError.
func rowError(op, entity string, id int64, err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return &types.NotFoundError{Entity: entity, ID: id}
	}
	return storeError(op, err)
}

func storeError(op string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return &types.StoreError{
			Op:         op,
			Code:       pgErr.Code,
			Constraint: pgErr.ConstraintName,
			Err:        err,
		}
	}
	return &types.StoreError{Op: op, Err: err}
}
