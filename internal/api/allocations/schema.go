package allocations

import (
	"github.com/Conversly/carteira-api/internal/types"
	"github.com/Conversly/carteira-api/internal/utils"
	"github.com/shopspring/decimal"
)

func ValidateCreateRequest(r *CreateAllocationRequest) (types.AllocationFields, error) {
	quantity, err := validateQuantity(r.Quantity)
	if err != nil {
		return types.AllocationFields{}, err
	}
	return types.AllocationFields{
		ClientID: r.ClientID,
		AssetID:  r.AssetID,
		Quantity: quantity,
	}, nil
}

func ValidateUpdateRequest(r *UpdateAllocationRequest) (decimal.Decimal, error) {
	return validateQuantity(r.Quantity)
}

func validateQuantity(q *types.Amount) (decimal.Decimal, error) {
	return utils.ValidateAmount("quantidade", q)
}
