package clients

import "github.com/shopspring/decimal"

// Request DTOs
type ClientRequest struct {
	Name   string `json:"nome" binding:"required"`
	Email  string `json:"email" binding:"required,email"`
	Status *bool  `json:"status"`
}

// Response DTOs

// ClientAllocationsResponse is the flattened view of one client's holdings.
type ClientAllocationsResponse struct {
	ID          int64            `json:"id"`
	Name        string           `json:"nome"`
	Email       string           `json:"email"`
	Status      bool             `json:"status"`
	Allocations []HoldingSummary `json:"alocacoes"`
}

type HoldingSummary struct {
	AssetID      int64           `json:"ativoId"`
	Name         string          `json:"nome"`
	CurrentValue decimal.Decimal `json:"valorAtual"`
	Quantity     decimal.Decimal `json:"quantidade"`
}
