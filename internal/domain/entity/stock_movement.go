package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de stock.
const (
	MovementIncrease = "INCREASE"
	MovementDecrease = "DECREASE"
)

// Motivos de movimiento. Determinan la contabilidad de SoldStock:
// una venta suma unidades vendidas; una cancelación o rollback las resta;
// reposiciones y correcciones no la tocan.
const (
	ReasonSale         = "SALE"
	ReasonCancellation = "CANCELLATION"
	ReasonRollback     = "ROLLBACK"
	ReasonRestock      = "RESTOCK"
	ReasonCorrection   = "CORRECTION"
)

// StockMovement es un hecho inmutable del ledger de inventario: registra el
// antes y el después de la cantidad de un artículo. Las correcciones nunca
// editan filas existentes; se escriben movimientos compensatorios nuevos.
// Invariante: QtyAfter = QtyBefore ± Qty, y QtyAfter nunca es negativo.
type StockMovement struct {
	ID          string
	StockItemID string
	Kind        string // INCREASE, DECREASE
	Qty         int    // siempre > 0
	UnitCost    decimal.Decimal
	QtyBefore   int
	QtyAfter    int
	Reason      string // SALE, CANCELLATION, ROLLBACK, RESTOCK, CORRECTION
	Reference   string // ID de la orden de venta asociada; vacío si no aplica
	PerformedBy string // UserID
	CreatedAt   time.Time
}
