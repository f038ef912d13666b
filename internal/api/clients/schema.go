package clients

import (
	"strings"

	"github.com/Conversly/carteira-api/internal/types"
)

// ValidateClientRequest checks what binding tags cannot and returns the
// fields to store as given. An omitted status defaults to true.
func ValidateClientRequest(r *ClientRequest) (types.ClientFields, error) {
	if strings.TrimSpace(r.Name) == "" {
		return types.ClientFields{}, types.NewValidationError("nome", "cannot be empty")
	}
	if strings.TrimSpace(r.Email) == "" {
		return types.ClientFields{}, types.NewValidationError("email", "cannot be empty")
	}

	status := true
	if r.Status != nil {
		status = *r.Status
	}
	return types.ClientFields{Name: r.Name, Email: r.Email, Status: status}, nil
}

// FlattenAllocations turns a joined client into its holdings view.
func FlattenAllocations(c *types.ClientWithAllocations) ClientAllocationsResponse {
	resp := ClientAllocationsResponse{
		ID:          c.ID,
		Name:        c.Name,
		Email:       c.Email,
		Status:      c.Status,
		Allocations: make([]HoldingSummary, 0, len(c.Allocations)),
	}
	for _, al := range c.Allocations {
		h := HoldingSummary{AssetID: al.AssetID, Quantity: al.Quantity}
		if al.Asset != nil {
			h.Name = al.Asset.Name
			h.CurrentValue = al.Asset.CurrentValue
		}
		resp.Allocations = append(resp.Allocations, h)
	}
	return resp
}
