package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/consigna-pro/internal/domain"
	"github.com/tu-usuario/consigna-pro/internal/domain/entity"
	"github.com/tu-usuario/consigna-pro/internal/domain/repository"
	"github.com/tu-usuario/consigna-pro/pkg/logger"
)

// MovementInput entrada para aplicar un movimiento del ledger.
// UnitCost opcional: si es nil se toma el costo actual del artículo.
type MovementInput struct {
	StockItemID string
	Kind        string // INCREASE, DECREASE
	Qty         int
	UnitCost    *decimal.Decimal
	Reason      string // vacío -> CORRECTION
	Reference   string // ID de orden asociada, si aplica
	Actor       string // UserID que ejecuta el movimiento
}

// MovementResult snapshot antes/después del movimiento aplicado.
type MovementResult struct {
	MovementID string
	QtyBefore  int
	QtyAfter   int
}

// StockLedger aplica movimientos atómicos de stock y escribe el registro
// inmutable de auditoría. Un DECREASE que exceda el stock disponible falla
// completo con ErrInsufficientStock: nunca hay aplicación parcial.
type StockLedger struct {
	txRunner TxRunner
	log      *logger.Logger
}

// NewStockLedger construye el ledger.
func NewStockLedger(txRunner TxRunner, log *logger.Logger) *StockLedger {
	return &StockLedger{txRunner: txRunner, log: log}
}

// ApplyMovement valida la entrada, bloquea la fila del artículo
// (SELECT FOR UPDATE), actualiza cantidades y guarda el movimiento, todo en una
// transacción con Commit/Rollback.
func (l *StockLedger) ApplyMovement(ctx context.Context, in MovementInput) (*MovementResult, error) {
	var missing []string
	if in.StockItemID == "" {
		missing = append(missing, "stock_item_id")
	}
	if in.Kind != entity.MovementIncrease && in.Kind != entity.MovementDecrease {
		missing = append(missing, "kind")
	}
	if in.Actor == "" {
		missing = append(missing, "actor")
	}
	if len(missing) > 0 {
		return nil, domain.NewValidationError(missing...)
	}
	if in.Qty <= 0 {
		return nil, domain.ErrInvalidQuantity
	}
	if in.Reason == "" {
		in.Reason = entity.ReasonCorrection
	}

	now := time.Now()
	var result *MovementResult

	err := l.txRunner.Run(ctx, func(
		itemRepo repository.StockItemRepository,
		movRepo repository.StockMovementRepository,
	) error {
		item, err := itemRepo.GetForUpdate(in.StockItemID)
		if err != nil {
			return err
		}
		if item == nil || !item.Active {
			return domain.ErrNotFound
		}

		qtyBefore := item.QtyInStock
		var qtyAfter int
		soldStock := item.SoldStock

		switch in.Kind {
		case entity.MovementDecrease:
			if in.Qty > qtyBefore {
				return domain.ErrInsufficientStock
			}
			qtyAfter = qtyBefore - in.Qty
			if in.Reason == entity.ReasonSale {
				soldStock += in.Qty
			}
		case entity.MovementIncrease:
			qtyAfter = qtyBefore + in.Qty
			// Compensaciones de venta devuelven las unidades al no-vendido.
			if in.Reason == entity.ReasonCancellation || in.Reason == entity.ReasonRollback {
				soldStock -= in.Qty
				if soldStock < 0 {
					soldStock = 0
				}
			}
		}

		if err := itemRepo.UpdateQuantities(item.ID, qtyAfter, soldStock); err != nil {
			return err
		}

		unitCost := item.UnitCost
		if in.UnitCost != nil {
			unitCost = *in.UnitCost
		}
		mov := &entity.StockMovement{
			ID:          uuid.New().String(),
			StockItemID: item.ID,
			Kind:        in.Kind,
			Qty:         in.Qty,
			UnitCost:    unitCost,
			QtyBefore:   qtyBefore,
			QtyAfter:    qtyAfter,
			Reason:      in.Reason,
			Reference:   in.Reference,
			PerformedBy: in.Actor,
			CreatedAt:   now,
		}
		if err := movRepo.Create(mov); err != nil {
			return err
		}
		result = &MovementResult{MovementID: mov.ID, QtyBefore: qtyBefore, QtyAfter: qtyAfter}
		return nil
	})
	if err != nil {
		return nil, err
	}

	l.log.Debug().
		Str("stock_item_id", in.StockItemID).
		Str("kind", in.Kind).
		Int("qty", in.Qty).
		Int("qty_after", result.QtyAfter).
		Msg("movimiento de stock aplicado")

	return result, nil
}
