package ledger

import (
	"context"

	"github.com/tu-usuario/consigna-pro/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza atomicidad por movimiento: el bloqueo
// de fila del artículo serializa escritores del mismo artículo y deja que
// artículos distintos avancen en paralelo.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		itemRepo repository.StockItemRepository,
		movRepo repository.StockMovementRepository,
	) error) error
}
