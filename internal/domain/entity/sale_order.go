package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de orden de venta.
const (
	OrderTypeRegular = "REGULAR"
	OrderTypeLayaway = "LAYAWAY"
)

// Estados de una orden de venta. OVERDUE no se almacena: se deriva en lectura
// con EffectiveStatus. PAID y CANCELLED son terminales.
const (
	OrderStatusPending   = "PENDING"
	OrderStatusDeposit   = "DEPOSIT"
	OrderStatusPaid      = "PAID"
	OrderStatusOverdue   = "OVERDUE"
	OrderStatusCancelled = "CANCELLED"
)

// Tipos de descuento aplicables al subtotal.
const (
	DiscountPercentage = "PERCENTAGE"
	DiscountFlat       = "FLAT"
)

// OrderStatusLabels mapea estados a texto de presentación. Mantiene el texto
// visible fuera de la lógica de dominio.
var OrderStatusLabels = map[string]string{
	OrderStatusPending:   "Pending",
	OrderStatusDeposit:   "Deposit",
	OrderStatusPaid:      "Paid",
	OrderStatusOverdue:   "Overdue",
	OrderStatusCancelled: "Cancelled",
}

// SaleOrder representa una orden de venta (regular o de apartado/layaway).
// Se crea una sola vez en el checkout; nunca se elimina, solo se cancela.
// Invariantes: 0 <= DiscountAmount <= Subtotal; Total = Subtotal - DiscountAmount.
type SaleOrder struct {
	ID             string
	ClientID       string
	Type           string // REGULAR, LAYAWAY
	Status         string // PENDING, DEPOSIT, PAID, CANCELLED (almacenados)
	Subtotal       decimal.Decimal
	DiscountKind   string // PERCENTAGE, FLAT; vacío si no hubo descuento
	DiscountValue  decimal.Decimal
	DiscountAmount decimal.Decimal
	Total          decimal.Decimal
	DatePurchased  time.Time
	CreatedBy      string // UserID
	CreatedAt      time.Time
	UpdatedAt      time.Time

	// Campos derivados que las consultas de lectura pueblan (no columnas propias).
	Outstanding decimal.Decimal
	DueDate     *time.Time // solo layaway
	Lines       []*SaleOrderLine
}

// SaleOrderLine es una línea de la orden. UnitPrice es el precio congelado al
// momento de la venta: ediciones posteriores del artículo no la afectan.
type SaleOrderLine struct {
	ID          string
	OrderID     string
	StockItemID string
	Qty         int // siempre > 0
	UnitPrice   decimal.Decimal
	LineTotal   decimal.Decimal
}

// EffectiveStatus deriva el estado visible de la orden en el instante now:
// una orden PENDING o DEPOSIT con saldo pendiente y fecha límite vencida se
// reporta OVERDUE sin transición almacenada.
func (o *SaleOrder) EffectiveStatus(now time.Time) string {
	if o.Status != OrderStatusPending && o.Status != OrderStatusDeposit {
		return o.Status
	}
	if o.DueDate != nil && now.After(*o.DueDate) && o.Outstanding.GreaterThan(decimal.Zero) {
		return OrderStatusOverdue
	}
	return o.Status
}

// CanCancel indica si la orden admite cancelación explícita: cualquier estado
// no terminal (PENDING, DEPOSIT, y por derivación OVERDUE). Una orden PAID no
// se cancela por esta vía.
func (o *SaleOrder) CanCancel() bool {
	return o.Status == OrderStatusPending || o.Status == OrderStatusDeposit
}
