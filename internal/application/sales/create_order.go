package sales

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/consigna-pro/internal/application/dto"
	"github.com/tu-usuario/consigna-pro/internal/application/ledger"
	"github.com/tu-usuario/consigna-pro/internal/domain"
	"github.com/tu-usuario/consigna-pro/internal/domain/entity"
	"github.com/tu-usuario/consigna-pro/internal/domain/repository"
	"github.com/tu-usuario/consigna-pro/internal/domain/sale"
	"github.com/tu-usuario/consigna-pro/pkg/logger"
)

// CreateOrderUseCase convierte un carrito en una orden consistente: valida,
// congela precios, descuenta stock línea por línea vía el ledger y persiste
// orden, pago inicial y plan de apartado. Si cualquier línea falla por stock,
// las líneas ya descontadas se compensan con INCREASE antes de devolver el
// error: a nivel de orden es todo-o-nada y nunca persiste una orden parcial.
type CreateOrderUseCase struct {
	txRunner   TxRunner
	stockUC    Ledger
	itemRepo   repository.StockItemRepository
	clientRepo repository.ClientRepository
	log        *logger.Logger
}

// NewCreateOrderUseCase construye el caso de uso.
func NewCreateOrderUseCase(
	txRunner TxRunner,
	stockUC Ledger,
	itemRepo repository.StockItemRepository,
	clientRepo repository.ClientRepository,
	log *logger.Logger,
) *CreateOrderUseCase {
	return &CreateOrderUseCase{
		txRunner:   txRunner,
		stockUC:    stockUC,
		itemRepo:   itemRepo,
		clientRepo: clientRepo,
		log:        log,
	}
}

// CreateOrder ejecuta el checkout completo. createdBy es el usuario actor,
// siempre explícito: el núcleo no guarda sesión ambiente.
func (uc *CreateOrderUseCase) CreateOrder(ctx context.Context, createdBy string, in dto.CreateOrderRequest) (*dto.CreateOrderResponse, error) {
	// 1) Validación de campos requeridos según el tipo, reportando el conjunto
	// completo de ofensores en un solo error.
	if err := validateCreateOrder(createdBy, in); err != nil {
		return nil, err
	}

	client, err := uc.clientRepo.GetByID(in.ClientID)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, domain.ErrNotFound
	}

	// 2) Congelar precios: cada línea toma el precio enviado o, si viene en
	// cero, el precio de venta vigente del artículo. Ediciones posteriores del
	// artículo no afectan la orden.
	orderID := uuid.New().String()
	lines := make([]*entity.SaleOrderLine, 0, len(in.Lines))
	for _, l := range in.Lines {
		item, err := uc.itemRepo.GetByID(l.StockItemID)
		if err != nil {
			return nil, err
		}
		if item == nil || !item.Active {
			return nil, domain.ErrNotFound
		}
		unitPrice := l.UnitPrice
		if unitPrice.LessThan(decimal.Zero) {
			return nil, domain.NewValidationError("lines.unit_price")
		}
		if unitPrice.IsZero() {
			unitPrice = item.SellingPrice
		}
		lines = append(lines, &entity.SaleOrderLine{
			ID:          uuid.New().String(),
			OrderID:     orderID,
			StockItemID: item.ID,
			Qty:         l.Qty,
			UnitPrice:   unitPrice,
			LineTotal:   decimal.NewFromInt(int64(l.Qty)).Mul(unitPrice),
		})
	}

	// 3) Totales con la aritmética pura de dominio.
	subtotal := sale.ComputeSubtotal(lines)
	var discountKind string
	discountValue := decimal.Zero
	if in.Discount != nil {
		discountKind = in.Discount.Kind
		discountValue = in.Discount.Value
	}
	discountAmount := sale.ComputeDiscount(subtotal, discountKind, discountValue)
	total := subtotal.Sub(discountAmount)

	// 4) Reglas de pago inicial, antes de tocar el stock (cero efectos
	// secundarios en errores de validación).
	now := time.Now()
	paymentDate := now
	if in.Payment.PaymentDate != nil {
		paymentDate = *in.Payment.PaymentDate
	}
	amount := in.Payment.Amount
	if amount.LessThan(decimal.Zero) {
		return nil, domain.NewValidationError("payment.amount")
	}
	switch in.Type {
	case entity.OrderTypeRegular:
		// La UI fuerza el monto exacto; el núcleo lo exige igual al total.
		if !amount.Equal(total) {
			return nil, domain.NewValidationError("payment.amount")
		}
	case entity.OrderTypeLayaway:
		if amount.GreaterThan(total) {
			return nil, domain.ErrOverpayment
		}
	}

	// 5) Descontar stock línea por línea. Cada movimiento serializa sobre su
	// artículo; ante un fallo se compensan los ya aplicados.
	applied := make([]*entity.SaleOrderLine, 0, len(lines))
	for _, l := range lines {
		_, err := uc.stockUC.ApplyMovement(ctx, ledger.MovementInput{
			StockItemID: l.StockItemID,
			Kind:        entity.MovementDecrease,
			Qty:         l.Qty,
			Reason:      entity.ReasonSale,
			Reference:   orderID,
			Actor:       createdBy,
		})
		if err != nil {
			uc.compensate(ctx, applied, orderID, createdBy, entity.ReasonRollback)
			return nil, err
		}
		applied = append(applied, l)
	}

	// 6) Estado inicial y saldo.
	outstanding := total.Sub(amount)
	status := entity.OrderStatusPending
	switch {
	case outstanding.LessThanOrEqual(decimal.Zero):
		status = entity.OrderStatusPaid
	case amount.GreaterThan(decimal.Zero):
		status = entity.OrderStatusDeposit
	}

	order := &entity.SaleOrder{
		ID:             orderID,
		ClientID:       in.ClientID,
		Type:           in.Type,
		Status:         status,
		Subtotal:       subtotal,
		DiscountKind:   discountKind,
		DiscountValue:  discountValue,
		DiscountAmount: discountAmount,
		Total:          total,
		DatePurchased:  now,
		CreatedBy:      createdBy,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	// 7) Persistir orden, líneas, pago inicial y plan en una transacción.
	// Si la persistencia falla, el stock ya descontado se compensa.
	err = uc.txRunner.Run(ctx, func(
		orderRepo repository.SaleOrderRepository,
		paymentRepo repository.PaymentRepository,
		planRepo repository.LayawayPlanRepository,
	) error {
		if err := orderRepo.Create(order); err != nil {
			return err
		}
		for _, l := range lines {
			if err := orderRepo.CreateLine(l); err != nil {
				return err
			}
		}
		if amount.GreaterThan(decimal.Zero) {
			payment := &entity.Payment{
				ID:          uuid.New().String(),
				OrderID:     orderID,
				Amount:      amount,
				Method:      paymentMethodOrDefault(in.Payment.Method),
				PaymentDate: paymentDate,
				CreatedBy:   createdBy,
				CreatedAt:   now,
			}
			if err := paymentRepo.Create(payment); err != nil {
				return err
			}
		}
		if in.Type == entity.OrderTypeLayaway {
			plan := &entity.LayawayPlan{
				OrderID:        orderID,
				NumberOfMonths: in.NumberOfMonths,
				DueDate:        paymentDate.AddDate(0, in.NumberOfMonths, 0),
				CreatedAt:      now,
			}
			if err := planRepo.Create(plan); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		uc.compensate(ctx, applied, orderID, createdBy, entity.ReasonRollback)
		return nil, err
	}

	uc.log.Info().
		Str("order_id", orderID).
		Str("type", in.Type).
		Str("status", status).
		Str("total", total.String()).
		Msg("orden de venta creada")

	return &dto.CreateOrderResponse{
		OrderID:     orderID,
		Status:      status,
		Total:       total,
		Outstanding: outstanding,
	}, nil
}

// compensate revierte con INCREASE los descuentos de stock ya aplicados para
// la orden. Un fallo al compensar se registra y sigue con las demás líneas:
// el ledger conserva la referencia de la orden para la corrección manual.
func (uc *CreateOrderUseCase) compensate(ctx context.Context, applied []*entity.SaleOrderLine, orderID, actor, reason string) {
	for _, l := range applied {
		_, err := uc.stockUC.ApplyMovement(ctx, ledger.MovementInput{
			StockItemID: l.StockItemID,
			Kind:        entity.MovementIncrease,
			Qty:         l.Qty,
			Reason:      reason,
			Reference:   orderID,
			Actor:       actor,
		})
		if err != nil {
			uc.log.Error().Err(err).
				Str("order_id", orderID).
				Str("stock_item_id", l.StockItemID).
				Msg("fallo compensando movimiento de stock")
		}
	}
}

func validateCreateOrder(createdBy string, in dto.CreateOrderRequest) error {
	var missing []string
	if createdBy == "" {
		missing = append(missing, "created_by")
	}
	if in.ClientID == "" {
		missing = append(missing, "client_id")
	}
	if in.Type != entity.OrderTypeRegular && in.Type != entity.OrderTypeLayaway {
		missing = append(missing, "type")
	}
	if len(in.Lines) == 0 {
		missing = append(missing, "lines")
	}
	for _, l := range in.Lines {
		if l.StockItemID == "" || l.Qty <= 0 {
			missing = append(missing, "lines")
			break
		}
	}
	switch in.Type {
	case entity.OrderTypeLayaway:
		if in.NumberOfMonths < entity.LayawayMinMonths || in.NumberOfMonths > entity.LayawayMaxMonths {
			missing = append(missing, "number_of_months")
		}
	case entity.OrderTypeRegular:
		if in.Payment.Amount.IsZero() {
			missing = append(missing, "payment.amount")
		}
	}
	if len(missing) > 0 {
		return domain.NewValidationError(missing...)
	}
	return nil
}

func paymentMethodOrDefault(method string) string {
	if method == "" {
		return entity.PaymentMethodCash
	}
	return method
}
