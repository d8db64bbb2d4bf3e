package domain_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

func TestIsBusinessRejection(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want bool
	}{
		{name: "customer not found", err: domain.ErrCustomerNotFound, want: true},
		{name: "no products found", err: domain.ErrNoProductsFound, want: true},
		{name: "product not found wrapped", err: fmt.Errorf("%w: product-9", domain.ErrProductNotFound), want: true},
		{name: "insufficient stock wrapped", err: fmt.Errorf("%w: product-1", domain.ErrInsufficientStock), want: true},
		{name: "order not found", err: domain.ErrOrderNotFound, want: false},
		{name: "infrastructure", err: errors.New("connection refused"), want: false},
		{name: "nil", err: nil, want: false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := domain.IsBusinessRejection(tc.err); got != tc.want {
				t.Fatalf("IsBusinessRejection(%v) = %v, want %v", tc.err, got, tc.want)
			}
		})
	}
}
