package sale_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/tu-usuario/consigna-pro/internal/domain/entity"
	"github.com/tu-usuario/consigna-pro/internal/domain/sale"
)

func d(v string) decimal.Decimal { return decimal.RequireFromString(v) }

func TestComputeSubtotal(t *testing.T) {
	lines := []*entity.SaleOrderLine{
		{Qty: 2, UnitPrice: d("150.50")},
		{Qty: 1, UnitPrice: d("699")},
	}
	assert.True(t, d("1000").Equal(sale.ComputeSubtotal(lines)),
		"subtotal debe ser la suma de qty * precio congelado")

	assert.True(t, decimal.Zero.Equal(sale.ComputeSubtotal(nil)),
		"sin líneas el subtotal es cero")
}

func TestComputeDiscount(t *testing.T) {
	cases := []struct {
		name     string
		subtotal string
		kind     string
		value    string
		want     string
	}{
		// Escenario de referencia: subtotal 1000 con 10% → 100.
		{"porcentaje simple", "1000", entity.DiscountPercentage, "10", "100"},
		{"porcentaje cero", "1000", entity.DiscountPercentage, "0", "0"},
		// Un porcentaje mayor a 100 se acota al subtotal completo.
		{"porcentaje mayor a 100", "1000", entity.DiscountPercentage, "150", "1000"},
		{"monto fijo", "1000", entity.DiscountFlat, "250", "250"},
		// Un monto fijo mayor al subtotal se acota al subtotal.
		{"monto fijo excede subtotal", "300", entity.DiscountFlat, "500", "300"},
		{"valor negativo no descuenta", "1000", entity.DiscountFlat, "-50", "0"},
		{"tipo desconocido no descuenta", "1000", "GIFT", "50", "0"},
		{"sin descuento", "1000", "", "0", "0"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := sale.ComputeDiscount(d(tc.subtotal), tc.kind, d(tc.value))
			assert.True(t, d(tc.want).Equal(got),
				"esperado %s, obtenido %s", tc.want, got)

			// Invariante: 0 <= descuento <= subtotal, para todo par (subtotal, descuento).
			assert.False(t, got.LessThan(decimal.Zero))
			assert.False(t, got.GreaterThan(d(tc.subtotal)))
		})
	}
}

func TestComputeOutstanding(t *testing.T) {
	payments := []*entity.Payment{
		{Amount: d("1000")},
		{Amount: d("500")},
	}
	assert.True(t, d("1500").Equal(sale.ComputeOutstanding(d("3000"), payments)))
	assert.True(t, decimal.Zero.Equal(sale.ComputeOutstanding(d("1500"), payments)),
		"saldo exacto debe quedar en cero")
	assert.True(t, decimal.Zero.Equal(sale.ComputeOutstanding(d("1000"), payments)),
		"el saldo nunca es negativo")
}
