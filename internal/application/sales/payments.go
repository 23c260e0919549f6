package sales

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/consigna-pro/internal/application/dto"
	"github.com/tu-usuario/consigna-pro/internal/domain"
	"github.com/tu-usuario/consigna-pro/internal/domain/entity"
	"github.com/tu-usuario/consigna-pro/internal/domain/repository"
	"github.com/tu-usuario/consigna-pro/pkg/logger"
)

// RecordPaymentUseCase registra abonos contra una orden y deriva el saldo y el
// estado resultante. Los pagos son hechos inmutables: el núcleo nunca corrige
// totales por su cuenta; toda corrección es un pago compensatorio nuevo.
// La protección contra doble envío es responsabilidad del caller (token de
// idempotencia); aquí no se inventa uno.
type RecordPaymentUseCase struct {
	txRunner TxRunner
	log      *logger.Logger
}

// NewRecordPaymentUseCase construye el caso de uso.
func NewRecordPaymentUseCase(txRunner TxRunner, log *logger.Logger) *RecordPaymentUseCase {
	return &RecordPaymentUseCase{txRunner: txRunner, log: log}
}

// RecordPayment valida el abono con la fila de la orden bloqueada:
// un pago que deje el saldo negativo se rechaza con ErrOverpayment sin cambiar
// nada (tolerancia cero). Con saldo en cero la orden pasa a PAID; el primer
// abono de una orden PENDING la pasa a DEPOSIT.
func (uc *RecordPaymentUseCase) RecordPayment(ctx context.Context, orderID, actor string, in dto.RecordPaymentRequest) (*dto.RecordPaymentResponse, error) {
	if orderID == "" {
		return nil, domain.NewValidationError("order_id")
	}
	if in.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, domain.NewValidationError("amount")
	}

	now := time.Now()
	paymentDate := now
	if in.PaymentDate != nil {
		paymentDate = *in.PaymentDate
	}

	var resp *dto.RecordPaymentResponse
	err := uc.txRunner.Run(ctx, func(
		orderRepo repository.SaleOrderRepository,
		paymentRepo repository.PaymentRepository,
		_ repository.LayawayPlanRepository,
	) error {
		order, err := orderRepo.GetForUpdate(orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrNotFound
		}
		// Solo órdenes con saldo admiten abonos: PAID y CANCELLED son terminales.
		if order.Status != entity.OrderStatusPending && order.Status != entity.OrderStatusDeposit {
			return domain.ErrInvalidTransition
		}

		paid, err := paymentRepo.SumByOrder(orderID)
		if err != nil {
			return err
		}
		outstanding := order.Total.Sub(paid).Sub(in.Amount)
		if outstanding.LessThan(decimal.Zero) {
			return domain.ErrOverpayment
		}

		payment := &entity.Payment{
			ID:          uuid.New().String(),
			OrderID:     orderID,
			Amount:      in.Amount,
			Method:      paymentMethodOrDefault(in.Method),
			PaymentDate: paymentDate,
			CreatedBy:   actor,
			CreatedAt:   now,
		}
		if err := paymentRepo.Create(payment); err != nil {
			return err
		}

		status := entity.OrderStatusDeposit
		if outstanding.IsZero() {
			status = entity.OrderStatusPaid
		}
		if status != order.Status {
			if err := orderRepo.UpdateStatus(orderID, status); err != nil {
				return err
			}
		}

		resp = &dto.RecordPaymentResponse{Status: status, Outstanding: outstanding}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("order_id", orderID).
		Str("amount", in.Amount.String()).
		Str("status", resp.Status).
		Msg("abono registrado")

	return resp, nil
}
