package repository

import (
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/consigna-pro/internal/domain/entity"
)

// PaymentRepository define el puerto de persistencia para Payment.
// Los pagos son inmutables: correcciones con entradas compensatorias nuevas.
type PaymentRepository interface {
	Create(payment *entity.Payment) error
	SumByOrder(orderID string) (decimal.Decimal, error)
	ListByOrder(orderID string) ([]*entity.Payment, error)
}
