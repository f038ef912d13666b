package allocations

import "github.com/Conversly/carteira-api/internal/types"

// Request DTOs
type CreateAllocationRequest struct {
	ClientID int64         `json:"clienteId" binding:"required,gt=0"`
	AssetID  int64         `json:"ativoId" binding:"required,gt=0"`
	Quantity *types.Amount `json:"quantidade"`
}

type UpdateAllocationRequest struct {
	Quantity *types.Amount `json:"quantidade"`
}
