package repository

import "github.com/tu-usuario/consigna-pro/internal/domain/entity"

// StockItemRepository define el puerto de persistencia para StockItem.
// Las cantidades solo se actualizan dentro de una transacción del ledger,
// con la fila bloqueada vía GetForUpdate.
type StockItemRepository interface {
	GetByID(id string) (*entity.StockItem, error)
	// GetForUpdate bloquea la fila del artículo (SELECT FOR UPDATE) para
	// serializar movimientos concurrentes sobre el mismo artículo.
	GetForUpdate(id string) (*entity.StockItem, error)
	UpdateQuantities(id string, qtyInStock, soldStock int) error
	List(search string, limit, offset int) ([]*entity.StockItem, error)
	Count(search string) (int, error)
}
