// Package sale contiene la aritmética pura de una venta (servicios de dominio):
// subtotal, descuento y saldo pendiente. Sin estado ni efectos secundarios;
// la capa de presentación los invoca para recalcular totales.
package sale

import (
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/consigna-pro/internal/domain/entity"
)

var hundred = decimal.NewFromInt(100)

// ComputeSubtotal suma qty * precio unitario congelado de cada línea.
func ComputeSubtotal(lines []*entity.SaleOrderLine) decimal.Decimal {
	subtotal := decimal.Zero
	for _, l := range lines {
		subtotal = subtotal.Add(decimal.NewFromInt(int64(l.Qty)).Mul(l.UnitPrice))
	}
	return subtotal
}

// ComputeDiscount calcula el monto de descuento acotado a [0, subtotal]:
// PERCENTAGE aplica value% sobre el subtotal; FLAT descuenta value directo.
// Un kind vacío o desconocido no descuenta nada.
func ComputeDiscount(subtotal decimal.Decimal, kind string, value decimal.Decimal) decimal.Decimal {
	if value.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	var amount decimal.Decimal
	switch kind {
	case entity.DiscountPercentage:
		amount = subtotal.Mul(value).Div(hundred)
	case entity.DiscountFlat:
		amount = value
	default:
		return decimal.Zero
	}
	if amount.GreaterThan(subtotal) {
		return subtotal
	}
	if amount.LessThan(decimal.Zero) {
		return decimal.Zero
	}
	return amount
}

// ComputeOutstanding devuelve total - suma de pagos, nunca negativo.
func ComputeOutstanding(total decimal.Decimal, payments []*entity.Payment) decimal.Decimal {
	paid := decimal.Zero
	for _, p := range payments {
		paid = paid.Add(p.Amount)
	}
	outstanding := total.Sub(paid)
	if outstanding.LessThan(decimal.Zero) {
		return decimal.Zero
	}
	return outstanding
}
