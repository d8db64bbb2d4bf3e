package domain_test

import (
	"testing"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

func TestProductValidate(t *testing.T) {
	cases := []struct {
		name    string
		product domain.Product
		wantErr bool
	}{
		{
			name:    "ok",
			product: domain.Product{ID: "product-1", Name: "widget", PriceMinor: 1000, Qty: 5},
		},
		{
			name:    "zero stock is allowed",
			product: domain.Product{ID: "product-1", PriceMinor: 1000, Qty: 0},
		},
		{
			name:    "no id",
			product: domain.Product{PriceMinor: 1000, Qty: 5},
			wantErr: true,
		},
		{
			name:    "negative price",
			product: domain.Product{ID: "product-1", PriceMinor: -1, Qty: 5},
			wantErr: true,
		},
		{
			name:    "negative stock",
			product: domain.Product{ID: "product-1", PriceMinor: 1000, Qty: -1},
			wantErr: true,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			errs := tc.product.Validate()
			if tc.wantErr && len(errs) == 0 {
				t.Fatal("expected validation errors, got none")
			}
			if !tc.wantErr && len(errs) != 0 {
				t.Fatalf("expected no validation errors, got %v", errs)
			}
		})
	}
}
