package loaders

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/Conversly/carteira-api/internal/types"
	"github.com/hashicorp/go-memdb"
	"github.com/shopspring/decimal"
)

const (
	tableClients     = "clientes"
	tableAssets      = "ativos"
	tableAllocations = "alocacoes"

	indexID       = "id"
	indexClientID = "cliente_id"
	indexAssetID  = "ativo_id"

	foreignKeyViolation = "23503"
)

var errForeignKey = errors.New("violates foreign key constraint")

func memorySchema() *memdb.DBSchema {
	byID := func() *memdb.IndexSchema {
		return &memdb.IndexSchema{
			Name:    indexID,
			Unique:  true,
			Indexer: &memdb.IntFieldIndex{Field: "ID"},
		}
	}
	return &memdb.DBSchema{
		Tables: map[string]*memdb.TableSchema{
			tableClients: {
				Name:    tableClients,
				Indexes: map[string]*memdb.IndexSchema{indexID: byID()},
			},
			tableAssets: {
				Name:    tableAssets,
				Indexes: map[string]*memdb.IndexSchema{indexID: byID()},
			},
			tableAllocations: {
				Name: tableAllocations,
				Indexes: map[string]*memdb.IndexSchema{
					indexID: byID(),
					indexClientID: {
						Name:    indexClientID,
						Indexer: &memdb.IntFieldIndex{Field: "ClientID"},
					},
					indexAssetID: {
						Name:    indexAssetID,
						Indexer: &memdb.IntFieldIndex{Field: "AssetID"},
					},
				},
			},
		},
	}
}

// MemoryStore is a Store held in process memory. Ids are assigned from
// per-table sequences and foreign keys are checked the way Postgres would,
// so handlers behave the same against either backend.
type MemoryStore struct {
	db *memdb.MemDB

	// sequences are only touched inside write transactions, which memdb
	// serializes.
	nextClientID     int64
	nextAssetID      int64
	nextAllocationID int64
}

func NewMemoryStore() (*MemoryStore, error) {
	db, err := memdb.NewMemDB(memorySchema())
	if err != nil {
		return nil, fmt.Errorf("failed to create memory store: %w", err)
	}
	return &MemoryStore{db: db}, nil
}

func (m *MemoryStore) Ping(ctx context.Context) error {
	return ctx.Err()
}

func (m *MemoryStore) Driver() string {
	return DriverMemory
}

func (m *MemoryStore) Close() {}

// ====== CLIENTS ======

func (m *MemoryStore) ListClients(ctx context.Context) ([]types.ClientWithAllocations, error) {
	txn := m.db.Txn(false)
	defer txn.Abort()

	clients, err := listAll[types.Client](txn, tableClients)
	if err != nil {
		return nil, memError("list clients", err)
	}
	out := make([]types.ClientWithAllocations, 0, len(clients))
	for _, c := range clients {
		joined, err := clientWithAllocations(txn, c)
		if err != nil {
			return nil, memError("list clients", err)
		}
		out = append(out, *joined)
	}
	return out, nil
}

func (m *MemoryStore) GetClient(ctx context.Context, id int64) (*types.ClientWithAllocations, error) {
	txn := m.db.Txn(false)
	defer txn.Abort()

	c, err := first[types.Client](txn, tableClients, id)
	if err != nil {
		return nil, memError("get client", err)
	}
	if c == nil {
		return nil, &types.NotFoundError{Entity: types.EntityClient, ID: id}
	}
	joined, err := clientWithAllocations(txn, *c)
	if err != nil {
		return nil, memError("get client", err)
	}
	return joined, nil
}

func (m *MemoryStore) CreateClient(ctx context.Context, in types.ClientFields) (*types.Client, error) {
	txn := m.db.Txn(true)
	defer txn.Abort()

	m.nextClientID++
	c := &types.Client{ID: m.nextClientID, Name: in.Name, Email: in.Email, Status: in.Status}
	if err := txn.Insert(tableClients, c); err != nil {
		return nil, memError("create client", err)
	}
	txn.Commit()
	out := *c
	return &out, nil
}

func (m *MemoryStore) UpdateClient(ctx context.Context, id int64, in types.ClientFields) (*types.Client, error) {
	txn := m.db.Txn(true)
	defer txn.Abort()

	existing, err := first[types.Client](txn, tableClients, id)
	if err != nil {
		return nil, memError("update client", err)
	}
	if existing == nil {
		return nil, &types.NotFoundError{Entity: types.EntityClient, ID: id}
	}
	c := &types.Client{ID: id, Name: in.Name, Email: in.Email, Status: in.Status}
	if err := txn.Insert(tableClients, c); err != nil {
		return nil, memError("update client", err)
	}
	txn.Commit()
	out := *c
	return &out, nil
}

func (m *MemoryStore) DeleteClient(ctx context.Context, id int64) error {
	txn := m.db.Txn(true)
	defer txn.Abort()

	c, err := first[types.Client](txn, tableClients, id)
	if err != nil {
		return memError("delete client", err)
	}
	if c == nil {
		return &types.NotFoundError{Entity: types.EntityClient, ID: id}
	}
	ref, err := txn.First(tableAllocations, indexClientID, id)
	if err != nil {
		return memError("delete client", err)
	}
	if ref != nil {
		return fkError("delete client", "alocacoes_cliente_id_fkey")
	}
	if err := txn.Delete(tableClients, c); err != nil {
		return memError("delete client", err)
	}
	txn.Commit()
	return nil
}

// ====== ASSETS ======

func (m *MemoryStore) ListAssets(ctx context.Context) ([]types.Asset, error) {
	txn := m.db.Txn(false)
	defer txn.Abort()

	assets, err := listAll[types.Asset](txn, tableAssets)
	if err != nil {
		return nil, memError("list assets", err)
	}
	return assets, nil
}

func (m *MemoryStore) GetAsset(ctx context.Context, id int64) (*types.Asset, error) {
	txn := m.db.Txn(false)
	defer txn.Abort()

	a, err := first[types.Asset](txn, tableAssets, id)
	if err != nil {
		return nil, memError("get asset", err)
	}
	if a == nil {
		return nil, &types.NotFoundError{Entity: types.EntityAsset, ID: id}
	}
	return a, nil
}

func (m *MemoryStore) GetAssetAllocations(ctx context.Context, id int64) (*types.AssetWithAllocations, error) {
	txn := m.db.Txn(false)
	defer txn.Abort()

	a, err := first[types.Asset](txn, tableAssets, id)
	if err != nil {
		return nil, memError("get asset allocations", err)
	}
	if a == nil {
		return nil, &types.NotFoundError{Entity: types.EntityAsset, ID: id}
	}
	allocs, err := allocationsBy(txn, indexAssetID, id)
	if err != nil {
		return nil, memError("get asset allocations", err)
	}
	for i := range allocs {
		c, err := first[types.Client](txn, tableClients, allocs[i].ClientID)
		if err != nil {
			return nil, memError("get asset allocations", err)
		}
		allocs[i].Client = c
	}
	return &types.AssetWithAllocations{Asset: *a, Allocations: allocs}, nil
}

func (m *MemoryStore) CreateAsset(ctx context.Context, in types.AssetFields) (*types.Asset, error) {
	txn := m.db.Txn(true)
	defer txn.Abort()

	m.nextAssetID++
	a := &types.Asset{ID: m.nextAssetID, Name: in.Name, CurrentValue: in.CurrentValue}
	if err := txn.Insert(tableAssets, a); err != nil {
		return nil, memError("create asset", err)
	}
	txn.Commit()
	out := *a
	return &out, nil
}

func (m *MemoryStore) UpdateAsset(ctx context.Context, id int64, in types.AssetFields) (*types.Asset, error) {
	txn := m.db.Txn(true)
	defer txn.Abort()

	existing, err := first[types.Asset](txn, tableAssets, id)
	if err != nil {
		return nil, memError("update asset", err)
	}
	if existing == nil {
		return nil, &types.NotFoundError{Entity: types.EntityAsset, ID: id}
	}
	a := &types.Asset{ID: id, Name: in.Name, CurrentValue: in.CurrentValue}
	if err := txn.Insert(tableAssets, a); err != nil {
		return nil, memError("update asset", err)
	}
	txn.Commit()
	out := *a
	return &out, nil
}

func (m *MemoryStore) DeleteAsset(ctx context.Context, id int64) error {
	txn := m.db.Txn(true)
	defer txn.Abort()

	a, err := first[types.Asset](txn, tableAssets, id)
	if err != nil {
		return memError("delete asset", err)
	}
	if a == nil {
		return &types.NotFoundError{Entity: types.EntityAsset, ID: id}
	}
	ref, err := txn.First(tableAllocations, indexAssetID, id)
	if err != nil {
		return memError("delete asset", err)
	}
	if ref != nil {
		return fkError("delete asset", "alocacoes_ativo_id_fkey")
	}
	if err := txn.Delete(tableAssets, a); err != nil {
		return memError("delete asset", err)
	}
	txn.Commit()
	return nil
}

// ====== ALLOCATIONS ======

func (m *MemoryStore) ListAllocations(ctx context.Context) ([]types.Allocation, error) {
	txn := m.db.Txn(false)
	defer txn.Abort()

	allocs, err := listAll[types.Allocation](txn, tableAllocations)
	if err != nil {
		return nil, memError("list allocations", err)
	}
	for i := range allocs {
		if err := attachParties(txn, &allocs[i]); err != nil {
			return nil, memError("list allocations", err)
		}
	}
	return allocs, nil
}

func (m *MemoryStore) GetAllocation(ctx context.Context, id int64) (*types.Allocation, error) {
	txn := m.db.Txn(false)
	defer txn.Abort()

	al, err := first[types.Allocation](txn, tableAllocations, id)
	if err != nil {
		return nil, memError("get allocation", err)
	}
	if al == nil {
		return nil, &types.NotFoundError{Entity: types.EntityAllocation, ID: id}
	}
	if err := attachParties(txn, al); err != nil {
		return nil, memError("get allocation", err)
	}
	return al, nil
}

func (m *MemoryStore) CreateAllocation(ctx context.Context, in types.AllocationFields) (*types.Allocation, error) {
	txn := m.db.Txn(true)
	defer txn.Abort()

	c, err := first[types.Client](txn, tableClients, in.ClientID)
	if err != nil {
		return nil, memError("create allocation", err)
	}
	if c == nil {
		return nil, fkError("create allocation", "alocacoes_cliente_id_fkey")
	}
	a, err := first[types.Asset](txn, tableAssets, in.AssetID)
	if err != nil {
		return nil, memError("create allocation", err)
	}
	if a == nil {
		return nil, fkError("create allocation", "alocacoes_ativo_id_fkey")
	}

	m.nextAllocationID++
	al := &types.Allocation{
		ID:       m.nextAllocationID,
		ClientID: in.ClientID,
		AssetID:  in.AssetID,
		Quantity: in.Quantity,
	}
	if err := txn.Insert(tableAllocations, al); err != nil {
		return nil, memError("create allocation", err)
	}
	txn.Commit()
	out := *al
	return &out, nil
}

func (m *MemoryStore) UpdateAllocation(ctx context.Context, id int64, quantity decimal.Decimal) (*types.Allocation, error) {
	txn := m.db.Txn(true)
	defer txn.Abort()

	existing, err := first[types.Allocation](txn, tableAllocations, id)
	if err != nil {
		return nil, memError("update allocation", err)
	}
	if existing == nil {
		return nil, &types.NotFoundError{Entity: types.EntityAllocation, ID: id}
	}
	al := &types.Allocation{
		ID:       id,
		ClientID: existing.ClientID,
		AssetID:  existing.AssetID,
		Quantity: quantity,
	}
	if err := txn.Insert(tableAllocations, al); err != nil {
		return nil, memError("update allocation", err)
	}
	txn.Commit()
	out := *al
	return &out, nil
}

func (m *MemoryStore) DeleteAllocation(ctx context.Context, id int64) error {
	txn := m.db.Txn(true)
	defer txn.Abort()

	al, err := first[types.Allocation](txn, tableAllocations, id)
	if err != nil {
		return memError("delete allocation", err)
	}
	if al == nil {
		return &types.NotFoundError{Entity: types.EntityAllocation, ID: id}
	}
	if err := txn.Delete(tableAllocations, al); err != nil {
		return memError("delete allocation", err)
	}
	txn.Commit()
	return nil
}

// ====== HELPERS ======

// first returns a copy of the row with the given id, or nil.
func first[T any](txn *memdb.Txn, table string, id int64) (*T, error) {
	raw, err := txn.First(table, indexID, id)
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, nil
	}
	row, ok := raw.(*T)
	if !ok {
		return nil, fmt.Errorf("unexpected %T in table %s", raw, table)
	}
	out := *row
	return &out, nil
}

// listAll returns copies of every row of table in id order.
func listAll[T any](txn *memdb.Txn, table string) ([]T, error) {
	it, err := txn.Get(table, indexID)
	if err != nil {
		return nil, err
	}
	out := []T{}
	for raw := it.Next(); raw != nil; raw = it.Next() {
		row, ok := raw.(*T)
		if !ok {
			return nil, fmt.Errorf("unexpected %T in table %s", raw, table)
		}
		out = append(out, *row)
	}
	// memdb orders int keys by their varint encoding, not numerically.
	sort.Slice(out, func(i, j int) bool { return rowID(&out[i]) < rowID(&out[j]) })
	return out, nil
}

func rowID(row interface{}) int64 {
	switch r := row.(type) {
	case *types.Client:
		return r.ID
	case *types.Asset:
		return r.ID
	case *types.Allocation:
		return r.ID
	default:
		return 0
	}
}

func allocationsBy(txn *memdb.Txn, index string, id int64) ([]types.Allocation, error) {
	it, err := txn.Get(tableAllocations, index, id)
	if err != nil {
		return nil, err
	}
	out := []types.Allocation{}
	for raw := it.Next(); raw != nil; raw = it.Next() {
		out = append(out, *raw.(*types.Allocation))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func clientWithAllocations(txn *memdb.Txn, c types.Client) (*types.ClientWithAllocations, error) {
	allocs, err := allocationsBy(txn, indexClientID, c.ID)
	if err != nil {
		return nil, err
	}
	for i := range allocs {
		a, err := first[types.Asset](txn, tableAssets, allocs[i].AssetID)
		if err != nil {
			return nil, err
		}
		allocs[i].Asset = a
	}
	return &types.ClientWithAllocations{Client: c, Allocations: allocs}, nil
}

func attachParties(txn *memdb.Txn, al *types.Allocation) error {
	c, err := first[types.Client](txn, tableClients, al.ClientID)
	if err != nil {
		return err
	}
	a, err := first[types.Asset](txn, tableAssets, al.AssetID)
	if err != nil {
		return err
	}
	al.Client = c
	al.Asset = a
	return nil
}

func fkError(op, constraint string) error {
	return &types.StoreError{
		Op:         op,
		Code:       foreignKeyViolation,
		Constraint: constraint,
		Err:        errForeignKey,
	}
}

func memError(op string, err error) error {
	return &types.StoreError{Op: op, Err: err}
}
