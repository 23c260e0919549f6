package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Etiquetas de estado de stock para presentación. Aisladas de la lógica de dominio:
// el estado se deriva siempre de las cantidades, nunca se almacena.
const (
	StockLabelSold     = "Sold"
	StockLabelLowStock = "Low Stock"
	StockLabelListed   = "Listed"
)

// StockItem representa un artículo del inventario de la tienda.
// Las cantidades se mutan únicamente a través de movimientos del ledger
// (nunca con escrituras directas). Se retira con soft-delete: mientras existan
// movimientos que lo referencien, la fila no se elimina físicamente.
type StockItem struct {
	ID           string
	Name         string
	Code         string // código interno del artículo
	QtyInStock   int    // nunca negativo
	MinQty       int    // umbral de alerta de stock bajo
	SoldStock    int    // acumulado de unidades vendidas
	UnitCost     decimal.Decimal
	SellingPrice decimal.Decimal
	IsConsigned  bool
	ConsignorID  string // cliente consignante; vacío si es mercancía propia
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// StatusLabel deriva la etiqueta de presentación según la cantidad disponible:
// "Sold" (agotado), "Low Stock" (0 < qty <= MinQty) o "Listed".
func (s *StockItem) StatusLabel() string {
	switch {
	case s.QtyInStock == 0:
		return StockLabelSold
	case s.QtyInStock <= s.MinQty:
		return StockLabelLowStock
	default:
		return StockLabelListed
	}
}
