package sales

import (
	"context"
	"time"

	"github.com/tu-usuario/consigna-pro/internal/application/dto"
	"github.com/tu-usuario/consigna-pro/internal/domain"
	"github.com/tu-usuario/consigna-pro/internal/domain/entity"
	"github.com/tu-usuario/consigna-pro/internal/domain/repository"
)

// OrderQueryUseCase lecturas de órdenes individuales.
type OrderQueryUseCase struct {
	orderRepo repository.SaleOrderRepository
	movRepo   repository.StockMovementRepository
}

// NewOrderQueryUseCase construye el caso de uso.
func NewOrderQueryUseCase(orderRepo repository.SaleOrderRepository, movRepo repository.StockMovementRepository) *OrderQueryUseCase {
	return &OrderQueryUseCase{orderRepo: orderRepo, movRepo: movRepo}
}

// GetOrder obtiene una orden con sus líneas y el estado efectivo al momento
// de la consulta (OVERDUE se deriva aquí, nunca se almacena).
func (uc *OrderQueryUseCase) GetOrder(ctx context.Context, id string) (*dto.OrderResponse, error) {
	order, err := uc.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	lines, err := uc.orderRepo.GetLines(id)
	if err != nil {
		return nil, err
	}
	order.Lines = lines
	resp := ToOrderResponse(order, time.Now())
	return &resp, nil
}

// GetOrderMovements devuelve los movimientos del ledger referenciados a una
// orden, en el orden en que ocurrieron: el descuento de cada línea y, si hubo
// cancelación o rollback, sus compensaciones INCREASE.
func (uc *OrderQueryUseCase) GetOrderMovements(ctx context.Context, id string) ([]dto.StockMovementResponse, error) {
	order, err := uc.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	movs, err := uc.movRepo.ListByReference(id)
	if err != nil {
		return nil, err
	}
	out := make([]dto.StockMovementResponse, 0, len(movs))
	for _, m := range movs {
		out = append(out, dto.StockMovementResponse{
			ID:          m.ID,
			StockItemID: m.StockItemID,
			Kind:        m.Kind,
			Qty:         m.Qty,
			UnitCost:    m.UnitCost,
			QtyBefore:   m.QtyBefore,
			QtyAfter:    m.QtyAfter,
			Reason:      m.Reason,
			Reference:   m.Reference,
			PerformedBy: m.PerformedBy,
			CreatedAt:   m.CreatedAt,
		})
	}
	return out, nil
}

// ToOrderResponse mapea la entidad a su DTO de salida con estado efectivo y
// etiqueta de presentación.
func ToOrderResponse(o *entity.SaleOrder, now time.Time) dto.OrderResponse {
	status := o.EffectiveStatus(now)
	resp := dto.OrderResponse{
		ID:             o.ID,
		ClientID:       o.ClientID,
		Type:           o.Type,
		Status:         status,
		StatusLabel:    entity.OrderStatusLabels[status],
		Subtotal:       o.Subtotal,
		DiscountAmount: o.DiscountAmount,
		Total:          o.Total,
		Outstanding:    o.Outstanding,
		DatePurchased:  o.DatePurchased,
		DueDate:        o.DueDate,
		CreatedBy:      o.CreatedBy,
	}
	for _, l := range o.Lines {
		resp.Lines = append(resp.Lines, dto.OrderLineResponse{
			StockItemID: l.StockItemID,
			Qty:         l.Qty,
			UnitPrice:   l.UnitPrice,
			LineTotal:   l.LineTotal,
		})
	}
	return resp
}
