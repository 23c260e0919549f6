package sales

import (
	"context"

	"github.com/tu-usuario/consigna-pro/internal/domain"
	"github.com/tu-usuario/consigna-pro/internal/domain/repository"
	"github.com/tu-usuario/consigna-pro/pkg/logger"
)

// ReceiptUseCase arma los datos del recibo de una orden y delega el PDF al
// generador de infraestructura.
type ReceiptUseCase struct {
	orderRepo   repository.SaleOrderRepository
	paymentRepo repository.PaymentRepository
	clientRepo  repository.ClientRepository
	itemRepo    repository.StockItemRepository
	generator   ReceiptPDFGenerator
	log         *logger.Logger
}

// NewReceiptUseCase construye el caso de uso.
func NewReceiptUseCase(
	orderRepo repository.SaleOrderRepository,
	paymentRepo repository.PaymentRepository,
	clientRepo repository.ClientRepository,
	itemRepo repository.StockItemRepository,
	generator ReceiptPDFGenerator,
	log *logger.Logger,
) *ReceiptUseCase {
	return &ReceiptUseCase{
		orderRepo:   orderRepo,
		paymentRepo: paymentRepo,
		clientRepo:  clientRepo,
		itemRepo:    itemRepo,
		generator:   generator,
		log:         log,
	}
}

// GenerateReceipt genera el PDF del recibo con líneas, descuento, abonos y
// saldo pendiente (y fecha límite si es apartado).
func (uc *ReceiptUseCase) GenerateReceipt(ctx context.Context, orderID string) ([]byte, error) {
	order, err := uc.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	lines, err := uc.orderRepo.GetLines(orderID)
	if err != nil {
		return nil, err
	}
	order.Lines = lines

	payments, err := uc.paymentRepo.ListByOrder(orderID)
	if err != nil {
		return nil, err
	}
	client, err := uc.clientRepo.GetByID(order.ClientID)
	if err != nil {
		return nil, err
	}

	// Nombres de artículos para la tabla del recibo.
	itemNames := make(map[string]string, len(lines))
	for _, l := range lines {
		if _, ok := itemNames[l.StockItemID]; ok {
			continue
		}
		item, err := uc.itemRepo.GetByID(l.StockItemID)
		if err != nil {
			return nil, err
		}
		if item != nil {
			itemNames[l.StockItemID] = item.Name
		}
	}

	return uc.generator.GenerateReceiptPDF(ctx, order, client, payments, itemNames)
}
