package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/consigna-pro/internal/application/dto"
	"github.com/tu-usuario/consigna-pro/internal/application/sales"
)

// SalesHandler maneja el ciclo de vida de órdenes de venta (protegido).
type SalesHandler struct {
	createUC  *sales.CreateOrderUseCase
	cancelUC  *sales.CancelOrderUseCase
	payUC     *sales.RecordPaymentUseCase
	queryUC   *sales.OrderQueryUseCase
	receiptUC *sales.ReceiptUseCase
}

// NewSalesHandler construye el handler.
func NewSalesHandler(
	createUC *sales.CreateOrderUseCase,
	cancelUC *sales.CancelOrderUseCase,
	payUC *sales.RecordPaymentUseCase,
	queryUC *sales.OrderQueryUseCase,
	receiptUC *sales.ReceiptUseCase,
) *SalesHandler {
	return &SalesHandler{
		createUC:  createUC,
		cancelUC:  cancelUC,
		payUC:     payUC,
		queryUC:   queryUC,
		receiptUC: receiptUC,
	}
}

// Create godoc
// @Summary      Crear orden de venta
// @Description  Checkout completo: congela precios, descuenta stock y registra
//
//	el pago inicial. Todo-o-nada a nivel de orden.
//
// @Tags         sales
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateOrderRequest  true  "client_id, type, lines, discount, payment, number_of_months"
// @Success      201   {object}  dto.CreateOrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/sales [post]
func (h *SalesHandler) Create(c *fiber.Ctx) error {
	actor := GetUserID(c)
	if actor == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.CreateOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	resp, err := h.createUC.CreateOrder(c.Context(), actor, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// GetByID godoc
// @Summary      Detalle de una orden
// @Description  Devuelve la orden con sus líneas, saldo y estado efectivo
//
//	(OVERDUE se deriva al momento de la consulta).
//
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la orden"
// @Success      200  {object}  dto.OrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sales/{id} [get]
func (h *SalesHandler) GetByID(c *fiber.Ctx) error {
	resp, err := h.queryUC.GetOrder(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// RecordPayment godoc
// @Summary      Registrar un abono
// @Tags         sales
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la orden"
// @Param        body  body  dto.RecordPaymentRequest  true  "amount, method, payment_date"
// @Success      201   {object}  dto.RecordPaymentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/sales/{id}/payments [post]
func (h *SalesHandler) RecordPayment(c *fiber.Ctx) error {
	actor := GetUserID(c)
	if actor == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.RecordPaymentRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	resp, err := h.payUC.RecordPayment(c.Context(), c.Params("id"), actor, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// Cancel godoc
// @Summary      Cancelar una orden
// @Description  Marca la orden CANCELLED y repone el stock de cada línea.
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la orden"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/sales/{id}/cancel [post]
func (h *SalesHandler) Cancel(c *fiber.Ctx) error {
	actor := GetUserID(c)
	if actor == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	status, err := h.cancelUC.Cancel(c.Context(), c.Params("id"), actor)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"status": status})
}

// Movements godoc
// @Summary      Movimientos de stock de una orden
// @Description  Historial del ledger referenciado a la orden: descuentos por
//
//	venta y compensaciones por cancelación o rollback.
//
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la orden"
// @Success      200  {array}   dto.StockMovementResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sales/{id}/movements [get]
func (h *SalesHandler) Movements(c *fiber.Ctx) error {
	movs, err := h.queryUC.GetOrderMovements(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"movements": movs})
}

// Receipt godoc
// @Summary      Recibo PDF de una orden
// @Tags         sales
// @Security     Bearer
// @Produce      application/pdf
// @Param        id  path  string  true  "ID de la orden"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sales/{id}/receipt [get]
func (h *SalesHandler) Receipt(c *fiber.Ctx) error {
	pdfBytes, err := h.receiptUC.GenerateReceipt(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="recibo.pdf"`)
	return c.Send(pdfBytes)
}
