package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderLineRequest una línea del carrito. UnitPrice opcional: si viene en cero
// se congela el precio de venta actual del artículo.
type OrderLineRequest struct {
	StockItemID string          `json:"stock_item_id" validate:"required,uuid"`
	Qty         int             `json:"qty" validate:"required,gt=0"`
	UnitPrice   decimal.Decimal `json:"unit_price,omitempty"`
}

// DiscountRequest descuento opcional de la orden.
type DiscountRequest struct {
	Kind  string          `json:"kind" validate:"required,oneof=PERCENTAGE FLAT"`
	Value decimal.Decimal `json:"value" validate:"min=0"`
}

// PaymentRequest pago inicial (REGULAR: igual al total; LAYAWAY: 0 o abono).
type PaymentRequest struct {
	Amount      decimal.Decimal `json:"amount"`
	Method      string          `json:"method" validate:"omitempty,oneof=CASH CARD TRANSFER"`
	PaymentDate *time.Time      `json:"payment_date,omitempty"`
}

// CreateOrderRequest body para POST /api/sales.
type CreateOrderRequest struct {
	ClientID       string             `json:"client_id" validate:"required,uuid"`
	Type           string             `json:"type" validate:"required,oneof=REGULAR LAYAWAY"`
	Lines          []OrderLineRequest `json:"lines" validate:"required,min=1,dive"`
	Discount       *DiscountRequest   `json:"discount,omitempty"`
	Payment        PaymentRequest     `json:"payment"`
	NumberOfMonths int                `json:"number_of_months,omitempty"` // LAYAWAY: 1-4
}

// CreateOrderResponse resultado del checkout.
type CreateOrderResponse struct {
	OrderID     string          `json:"order_id"`
	Status      string          `json:"status"`
	Total       decimal.Decimal `json:"total"`
	Outstanding decimal.Decimal `json:"outstanding"`
}

// RecordPaymentRequest body para POST /api/sales/:id/payments.
type RecordPaymentRequest struct {
	Amount      decimal.Decimal `json:"amount" validate:"required"`
	Method      string          `json:"method" validate:"omitempty,oneof=CASH CARD TRANSFER"`
	PaymentDate *time.Time      `json:"payment_date,omitempty"`
}

// RecordPaymentResponse estado resultante tras el abono.
type RecordPaymentResponse struct {
	Status      string          `json:"status"`
	Outstanding decimal.Decimal `json:"outstanding"`
}

// OrderLineResponse una línea de la orden con precio congelado.
type OrderLineResponse struct {
	StockItemID string          `json:"stock_item_id"`
	Qty         int             `json:"qty"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	LineTotal   decimal.Decimal `json:"line_total"`
}

// OrderResponse salida completa de una orden. Status es el estado efectivo
// (OVERDUE derivado en lectura); StatusLabel el texto de presentación.
type OrderResponse struct {
	ID             string              `json:"id"`
	ClientID       string              `json:"client_id"`
	Type           string              `json:"type"`
	Status         string              `json:"status"`
	StatusLabel    string              `json:"status_label"`
	Subtotal       decimal.Decimal     `json:"subtotal"`
	DiscountAmount decimal.Decimal     `json:"discount_amount"`
	Total          decimal.Decimal     `json:"total"`
	Outstanding    decimal.Decimal     `json:"outstanding"`
	DatePurchased  time.Time           `json:"date_purchased"`
	DueDate        *time.Time          `json:"due_date,omitempty"`
	CreatedBy      string              `json:"created_by"`
	Lines          []OrderLineResponse `json:"lines,omitempty"`
}

// CatalogViewResponse estado de una pestaña del catálogo tras un refresh.
type CatalogViewResponse struct {
	Category   string          `json:"category"`
	Orders     []OrderResponse `json:"orders"`
	Pagination PageResponse    `json:"pagination"`
}

// CategoryCountsResponse totales por pestaña (badges).
type CategoryCountsResponse struct {
	Counts map[string]int `json:"counts"`
}
