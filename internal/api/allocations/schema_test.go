package allocations

import (
	"errors"
	"testing"

	"github.com/Conversly/carteira-api/internal/types"
	"github.com/shopspring/decimal"
)

func TestValidateQuantity(t *testing.T) {
	q := func(s string) *types.Amount {
		return types.NewAmount(decimal.RequireFromString(s))
	}

	tests := []struct {
		name    string
		in      *types.Amount
		wantErr bool
	}{
		{"integer", q("10"), false},
		{"fraction", q("0.5"), false},
		{"missing", nil, true},
		{"zero", q("0"), true},
		{"negative", q("-1"), true},
		{"eight decimals", q("0.12345678"), false},
		{"nine decimals", q("0.123456789"), true},
		{"twelve integer digits", q("999999999999.99999999"), false},
		{"thirteen integer digits", q("1000000000000"), true},
		{"huge exponent", q("1e1000000000"), true},
		{"tiny exponent", q("1e-1000000000"), true},
	}

	for _, tt := range tests {
		_, errCreate := ValidateCreateRequest(&CreateAllocationRequest{ClientID: 1, AssetID: 1, Quantity: tt.in})
		_, errUpdate := ValidateUpdateRequest(&UpdateAllocationRequest{Quantity: tt.in})
		for _, err := range []error{errCreate, errUpdate} {
			if !tt.wantErr {
				if err != nil {
					t.Errorf("%s: unexpected error %v", tt.name, err)
				}
				continue
			}
			var ve *types.ValidationError
			if !errors.As(err, &ve) || ve.Field != "quantidade" {
				t.Errorf("%s: expected quantidade validation error, got %v", tt.name, err)
			}
		}
	}
}
