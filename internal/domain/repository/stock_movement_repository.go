package repository

import "github.com/tu-usuario/consigna-pro/internal/domain/entity"

// StockMovementRepository define el puerto del ledger de movimientos.
// Solo inserta y lee: los movimientos son inmutables una vez escritos.
type StockMovementRepository interface {
	Create(movement *entity.StockMovement) error
	ListByItem(stockItemID string, limit, offset int) ([]*entity.StockMovement, error)
	ListByReference(reference string) ([]*entity.StockMovement, error)
}
