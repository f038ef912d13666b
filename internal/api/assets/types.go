package assets

import (
	"github.com/Conversly/carteira-api/internal/types"
	"github.com/shopspring/decimal"
)

// Request DTOs
type AssetRequest struct {
	Name         string        `json:"nome" binding:"required"`
	CurrentValue *types.Amount `json:"valorAtual"`
}

// Response DTOs

// AssetAllocationsResponse is the flattened view of who holds an asset.
type AssetAllocationsResponse struct {
	ID           int64           `json:"id"`
	Name         string          `json:"nome"`
	CurrentValue decimal.Decimal `json:"valorAtual"`
	Allocations  []HolderSummary `json:"alocacoes"`
}

type HolderSummary struct {
	ClientID int64           `json:"clienteId"`
	Name     string          `json:"nome"`
	Email    string          `json:"email"`
	Quantity decimal.Decimal `json:"quantidade"`
}
