package types

import (
	"github.com/shopspring/decimal"
)

func init() {
	// valorAtual and quantidade travel as JSON numbers, not strings.
	decimal.MarshalJSONWithoutQuotes = true
}

// ====== CORE TYPES ======

type Client struct {
	ID     int64  `json:"id" db:"id"`
	Name   string `json:"nome" db:"nome"`
	Email  string `json:"email" db:"email"`
	Status bool   `json:"status" db:"status"`
}

type Asset struct {
	ID           int64           `json:"id" db:"id"`
	Name         string          `json:"nome" db:"nome"`
	CurrentValue decimal.Decimal `json:"valorAtual" db:"valor_atual"`
}

// Allocation is a quantity of one asset held by one client. Client and Asset
// are only populated by the join-fetch operations.
type Allocation struct {
	ID       int64           `json:"id" db:"id"`
	ClientID int64           `json:"clienteId" db:"cliente_id"`
	AssetID  int64           `json:"ativoId" db:"ativo_id"`
	Quantity decimal.Decimal `json:"quantidade" db:"quantidade"`
	Client   *Client         `json:"cliente,omitempty"`
	Asset    *Asset          `json:"ativo,omitempty"`
}

// ClientWithAllocations is a client joined with its allocations, each
// carrying its asset.
type ClientWithAllocations struct {
	Client
	Allocations []Allocation `json:"alocacoes"`
}

// AssetWithAllocations is an asset joined with its allocations, each
// carrying its client.
type AssetWithAllocations struct {
	Asset
	Allocations []Allocation `json:"alocacoes"`
}

// ====== GATEWAY INPUTS ======

type ClientFields struct {
	Name   string
	Email  string
	Status bool
}

type AssetFields struct {
	Name         string
	CurrentValue decimal.Decimal
}

type AllocationFields struct {
	ClientID int64
	AssetID  int64
	Quantity decimal.Decimal
}

// ====== RESPONSE TYPES ======

type ErrorResponse struct {
	Message string      `json:"message,omitempty"`
	Error   interface{} `json:"error,omitempty"`
	Details interface{} `json:"details,omitempty"`
}

type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
	Store   string `json:"store"`
}
