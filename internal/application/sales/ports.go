package sales

import (
	"context"

	"github.com/tu-usuario/consigna-pro/internal/application/ledger"
	"github.com/tu-usuario/consigna-pro/internal/domain/entity"
	"github.com/tu-usuario/consigna-pro/internal/domain/repository"
)

// Ledger es el puerto hacia el ledger de stock. El motor de ventas descuenta
// y compensa unidades únicamente a través de él.
type Ledger interface {
	ApplyMovement(ctx context.Context, in ledger.MovementInput) (*ledger.MovementResult, error)
}

// TxRunner ejecuta una función dentro de una transacción de BD con los
// repositorios de ventas atados a esa tx (orden + pagos + plan de apartado).
type TxRunner interface {
	Run(ctx context.Context, fn func(
		orderRepo repository.SaleOrderRepository,
		paymentRepo repository.PaymentRepository,
		planRepo repository.LayawayPlanRepository,
	) error) error
}

// ReceiptPDFGenerator genera la representación PDF del recibo de una orden.
type ReceiptPDFGenerator interface {
	GenerateReceiptPDF(
		ctx context.Context,
		order *entity.SaleOrder,
		client *entity.Client,
		payments []*entity.Payment,
		itemNames map[string]string,
	) ([]byte, error)
}
