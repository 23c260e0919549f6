package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Métodos de pago aceptados.
const (
	PaymentMethodCash     = "CASH"
	PaymentMethodCard     = "CARD"
	PaymentMethodTransfer = "TRANSFER"
)

// Payment es un hecho inmutable: un abono registrado contra una orden.
// Las correcciones se hacen con pagos compensatorios nuevos, nunca editando.
type Payment struct {
	ID          string
	OrderID     string
	Amount      decimal.Decimal // siempre > 0
	Method      string          // CASH, CARD, TRANSFER
	PaymentDate time.Time
	CreatedBy   string // UserID
	CreatedAt   time.Time
}
