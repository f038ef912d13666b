package assets

import (
	"strings"

	"github.com/Conversly/carteira-api/internal/types"
	"github.com/Conversly/carteira-api/internal/utils"
)

func ValidateAssetRequest(r *AssetRequest) (types.AssetFields, error) {
	if strings.TrimSpace(r.Name) == "" {
		return types.AssetFields{}, types.NewValidationError("nome", "cannot be empty")
	}
	value, err := utils.ValidateAmount("valorAtual", r.CurrentValue)
	if err != nil {
		return types.AssetFields{}, err
	}
	return types.AssetFields{Name: r.Name, CurrentValue: value}, nil
}

// FlattenAllocations combines each allocation's client with its quantity.
func FlattenAllocations(a *types.AssetWithAllocations) AssetAllocationsResponse {
	resp := AssetAllocationsResponse{
		ID:           a.ID,
		Name:         a.Name,
		CurrentValue: a.CurrentValue,
		Allocations:  make([]HolderSummary, 0, len(a.Allocations)),
	}
	for _, al := range a.Allocations {
		h := HolderSummary{ClientID: al.ClientID, Quantity: al.Quantity}
		if al.Client != nil {
			h.Name = al.Client.Name
			h.Email = al.Client.Email
		}
		resp.Allocations = append(resp.Allocations, h)
	}
	return resp
}
