package sales

import (
	"context"

	"github.com/tu-usuario/consigna-pro/internal/application/ledger"
	"github.com/tu-usuario/consigna-pro/internal/domain"
	"github.com/tu-usuario/consigna-pro/internal/domain/entity"
	"github.com/tu-usuario/consigna-pro/internal/domain/repository"
	"github.com/tu-usuario/consigna-pro/pkg/logger"
)

// CancelOrderUseCase cancela una orden no terminal y restaura el stock con
// movimientos compensatorios INCREASE, dejando cada artículo en su nivel
// previo a la orden. Una orden PAID no se cancela por esta vía
// (ErrInvalidTransition); una ya CANCELLED tampoco.
type CancelOrderUseCase struct {
	txRunner TxRunner
	stockUC  Ledger
	log      *logger.Logger
}

// NewCancelOrderUseCase construye el caso de uso.
func NewCancelOrderUseCase(txRunner TxRunner, stockUC Ledger, log *logger.Logger) *CancelOrderUseCase {
	return &CancelOrderUseCase{txRunner: txRunner, stockUC: stockUC, log: log}
}

// Cancel marca la orden CANCELLED con su fila bloqueada y después repone el
// stock línea por línea. La reposición queda referenciada a la orden en el
// ledger: si una línea falla se registra y se continúa con las demás, para
// que la corrección manual sea auditable.
func (uc *CancelOrderUseCase) Cancel(ctx context.Context, orderID, actor string) (string, error) {
	if orderID == "" || actor == "" {
		return "", domain.NewValidationError("order_id", "actor")
	}

	var lines []*entity.SaleOrderLine
	err := uc.txRunner.Run(ctx, func(
		orderRepo repository.SaleOrderRepository,
		_ repository.PaymentRepository,
		_ repository.LayawayPlanRepository,
	) error {
		order, err := orderRepo.GetForUpdate(orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrNotFound
		}
		if !order.CanCancel() {
			return domain.ErrInvalidTransition
		}
		lines, err = orderRepo.GetLines(orderID)
		if err != nil {
			return err
		}
		return orderRepo.UpdateStatus(orderID, entity.OrderStatusCancelled)
	})
	if err != nil {
		return "", err
	}

	for _, l := range lines {
		_, err := uc.stockUC.ApplyMovement(ctx, ledger.MovementInput{
			StockItemID: l.StockItemID,
			Kind:        entity.MovementIncrease,
			Qty:         l.Qty,
			Reason:      entity.ReasonCancellation,
			Reference:   orderID,
			Actor:       actor,
		})
		if err != nil {
			uc.log.Error().Err(err).
				Str("order_id", orderID).
				Str("stock_item_id", l.StockItemID).
				Msg("fallo reponiendo stock al cancelar")
		}
	}

	uc.log.Info().Str("order_id", orderID).Msg("orden cancelada")
	return entity.OrderStatusCancelled, nil
}
