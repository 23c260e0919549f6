package repository

import (
	"time"

	"github.com/tu-usuario/consigna-pro/internal/domain/entity"
)

// Categorías de listado de órdenes (las siete pestañas del catálogo).
const (
	CategoryAll       = "ALL"
	CategoryRegular   = "REGULAR"
	CategoryLayaway   = "LAYAWAY"
	CategoryOverdue   = "OVERDUE"
	CategoryConsigned = "CONSIGNED"
	CategoryPaid      = "PAID"
	CategoryCancelled = "CANCELLED"
)

// ListParams parametriza el listado/conteo de órdenes por categoría.
// Search busca por ID de orden o nombre de cliente; las fechas acotan
// DatePurchased (ambas opcionales).
type ListParams struct {
	Category string
	Search   string
	DateFrom *time.Time
	DateTo   *time.Time
	Limit    int
	Offset   int
	SortBy   string // date_purchased, total; por defecto date_purchased
	OrderBy  string // asc, desc; por defecto desc
}

// SaleOrderRepository define el puerto de persistencia para SaleOrder.
// Las lecturas pueblan Outstanding y DueDate (derivados de pagos y plan).
type SaleOrderRepository interface {
	Create(order *entity.SaleOrder) error
	CreateLine(line *entity.SaleOrderLine) error
	GetByID(id string) (*entity.SaleOrder, error)
	// GetForUpdate bloquea la fila de la orden para registrar pagos o cancelar
	// sin carreras entre escritores concurrentes.
	GetForUpdate(id string) (*entity.SaleOrder, error)
	GetLines(orderID string) ([]*entity.SaleOrderLine, error)
	UpdateStatus(id, status string) error
	List(p ListParams) ([]*entity.SaleOrder, error)
	Count(p ListParams) (int, error)
	// CountsByCategory devuelve el total por cada una de las siete categorías
	// en una sola consulta (badges de pestañas).
	CountsByCategory() (map[string]int, error)
}
