package entity

import "time"

// Límites del plan de apartado.
const (
	LayawayMinMonths = 1
	LayawayMaxMonths = 4
)

// LayawayPlan define el plan de pago por cuotas de una orden LAYAWAY:
// el stock se descuenta al crear la orden y el saldo se cobra antes de DueDate.
// DueDate = fecha del primer pago + NumberOfMonths meses.
type LayawayPlan struct {
	OrderID        string
	NumberOfMonths int
	DueDate        time.Time
	CreatedAt      time.Time
}
