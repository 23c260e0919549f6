package ledger

import (
	"context"

	"github.com/tu-usuario/consigna-pro/internal/application/dto"
	"github.com/tu-usuario/consigna-pro/internal/domain"
	"github.com/tu-usuario/consigna-pro/internal/domain/entity"
	"github.com/tu-usuario/consigna-pro/internal/domain/repository"
)

// StockQueryUseCase lecturas de inventario: listado con búsqueda, detalle e
// historial de movimientos por artículo.
type StockQueryUseCase struct {
	itemRepo repository.StockItemRepository
	movRepo  repository.StockMovementRepository
}

// NewStockQueryUseCase construye el caso de uso.
func NewStockQueryUseCase(itemRepo repository.StockItemRepository, movRepo repository.StockMovementRepository) *StockQueryUseCase {
	return &StockQueryUseCase{itemRepo: itemRepo, movRepo: movRepo}
}

// ListItems lista artículos activos con búsqueda por nombre o código.
func (uc *StockQueryUseCase) ListItems(ctx context.Context, search string, page dto.PageRequest) ([]dto.StockItemResponse, dto.PageResponse, error) {
	page.DefaultPage()
	items, err := uc.itemRepo.List(search, page.PageSize, page.Offset())
	if err != nil {
		return nil, dto.PageResponse{}, err
	}
	total, err := uc.itemRepo.Count(search)
	if err != nil {
		return nil, dto.PageResponse{}, err
	}
	out := make([]dto.StockItemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, toStockItemResponse(it))
	}
	return out, dto.NewPageResponse(page.Page, page.PageSize, total), nil
}

// GetItem detalle de un artículo.
func (uc *StockQueryUseCase) GetItem(ctx context.Context, id string) (*dto.StockItemResponse, error) {
	item, err := uc.itemRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if item == nil || !item.Active {
		return nil, domain.ErrNotFound
	}
	resp := toStockItemResponse(item)
	return &resp, nil
}

// ListMovements historial del ledger para un artículo, del más reciente al
// más antiguo.
func (uc *StockQueryUseCase) ListMovements(ctx context.Context, itemID string, page dto.PageRequest) ([]dto.StockMovementResponse, error) {
	item, err := uc.itemRepo.GetByID(itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	page.DefaultPage()
	movs, err := uc.movRepo.ListByItem(itemID, page.PageSize, page.Offset())
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

func toStockItemResponse(it *entity.StockItem) dto.StockItemResponse {
	return dto.StockItemResponse{
		ID:           it.ID,
		Name:         it.Name,
		Code:         it.Code,
		QtyInStock:   it.QtyInStock,
		MinQty:       it.MinQty,
		SoldStock:    it.SoldStock,
		UnitCost:     it.UnitCost,
		SellingPrice: it.SellingPrice,
		IsConsigned:  it.IsConsigned,
		StatusLabel:  it.StatusLabel(),
	}
}
