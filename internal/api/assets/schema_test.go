package assets

import (
	"errors"
	"testing"

	"github.com/Conversly/carteira-api/internal/types"
	"github.com/shopspring/decimal"
)

func TestValidateAssetRequest(t *testing.T) {
	value := func(s string) *types.Amount {
		return types.NewAmount(decimal.RequireFromString(s))
	}

	tests := []struct {
		name      string
		req       AssetRequest
		wantField string
	}{
		{name: "valid", req: AssetRequest{Name: " Tesouro Selic ", CurrentValue: value("100.50")}},
		{name: "tiny positive", req: AssetRequest{Name: "Cripto", CurrentValue: value("0.00000001")}},
		{name: "blank name", req: AssetRequest{Name: "  ", CurrentValue: value("1")}, wantField: "nome"},
		{name: "missing value", req: AssetRequest{Name: "Selic"}, wantField: "valorAtual"},
		{name: "zero value", req: AssetRequest{Name: "Selic", CurrentValue: value("0")}, wantField: "valorAtual"},
		{name: "negative value", req: AssetRequest{Name: "Selic", CurrentValue: value("-0.01")}, wantField: "valorAtual"},
		{name: "trailing zeros past the scale", req: AssetRequest{Name: "Selic", CurrentValue: value("1.0000000000")}},
		{name: "nine decimals", req: AssetRequest{Name: "Selic", CurrentValue: value("1.000000001")}, wantField: "valorAtual"},
		{name: "huge exponent", req: AssetRequest{Name: "Selic", CurrentValue: value("1e1000000000")}, wantField: "valorAtual"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fields, err := ValidateAssetRequest(&tt.req)
			if tt.wantField == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if !fields.CurrentValue.Equal(tt.req.CurrentValue.Decimal) {
					t.Fatalf("value changed: %s", fields.CurrentValue)
				}
				return
			}
			var ve *types.ValidationError
			if !errors.As(err, &ve) || ve.Field != tt.wantField {
				t.Fatalf("expected validation error on %s, got %v", tt.wantField, err)
			}
		})
	}

	fields, _ := ValidateAssetRequest(&AssetRequest{Name: " Tesouro Selic ", CurrentValue: value("1")})
	if fields.Name != " Tesouro Selic " {
		t.Fatalf("expected name stored as given, got %q", fields.Name)
	}
}

func TestFlattenAllocations(t *testing.T) {
	asset := &types.AssetWithAllocations{
		Asset: types.Asset{ID: 1, Name: "Selic", CurrentValue: decimal.RequireFromString("100.5")},
		Allocations: []types.Allocation{
			{ID: 3, ClientID: 7, AssetID: 1, Quantity: decimal.NewFromInt(10), Client: &types.Client{ID: 7, Name: "Ana", Email: "ana@x.com"}},
		},
	}

	got := FlattenAllocations(asset)
	if got.ID != 1 || len(got.Allocations) != 1 {
		t.Fatalf("unexpected view %+v", got)
	}
	h := got.Allocations[0]
	if h.ClientID != 7 || h.Name != "Ana" || h.Email != "ana@x.com" || !h.Quantity.Equal(decimal.NewFromInt(10)) {
		t.Fatalf("unexpected holder %+v", h)
	}

	empty := FlattenAllocations(&types.AssetWithAllocations{Asset: types.Asset{ID: 2}})
	if empty.Allocations == nil {
		t.Fatal("expected empty non-nil allocations")
	}
}
