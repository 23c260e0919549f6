package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ApplyMovementRequest body para POST /api/stock/movements.
type ApplyMovementRequest struct {
	StockItemID string           `json:"stock_item_id" validate:"required,uuid"`
	Kind        string           `json:"kind" validate:"required,oneof=INCREASE DECREASE"`
	Qty         int              `json:"qty" validate:"required,gt=0"`
	UnitCost    *decimal.Decimal `json:"unit_cost,omitempty"`
	Reason      string           `json:"reason,omitempty"`
}

// MovementResponse resultado de un movimiento aplicado: snapshot antes/después.
type MovementResponse struct {
	MovementID string `json:"movement_id"`
	QtyBefore  int    `json:"qty_before"`
	QtyAfter   int    `json:"qty_after"`
}

// StockItemResponse salida de un artículo con su etiqueta de estado derivada.
type StockItemResponse struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Code         string          `json:"code"`
	QtyInStock   int             `json:"qty_in_stock"`
	MinQty       int             `json:"min_qty"`
	SoldStock    int             `json:"sold_stock"`
	UnitCost     decimal.Decimal `json:"unit_cost"`
	SellingPrice decimal.Decimal `json:"selling_price"`
	IsConsigned  bool            `json:"is_consigned"`
	StatusLabel  string          `json:"status_label"` // Sold, Low Stock, Listed
}

// StockMovementResponse una entrada del historial del ledger.
type StockMovementResponse struct {
	ID          string          `json:"id"`
	StockItemID string          `json:"stock_item_id"`
	Kind        string          `json:"kind"`
	Qty         int             `json:"qty"`
	UnitCost    decimal.Decimal `json:"unit_cost"`
	QtyBefore   int             `json:"qty_before"`
	QtyAfter    int             `json:"qty_after"`
	Reason      string          `json:"reason"`
	Reference   string          `json:"reference,omitempty"`
	PerformedBy string          `json:"performed_by"`
	CreatedAt   time.Time       `json:"created_at"`
}
