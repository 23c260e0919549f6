package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/consigna-pro/internal/application/dto"
	"github.com/tu-usuario/consigna-pro/internal/application/ledger"
)

// StockHandler maneja las peticiones HTTP de inventario (protegido).
type StockHandler struct {
	ledgerUC *ledger.StockLedger
	queryUC  *ledger.StockQueryUseCase
}

// NewStockHandler construye el handler.
func NewStockHandler(ledgerUC *ledger.StockLedger, queryUC *ledger.StockQueryUseCase) *StockHandler {
	return &StockHandler{ledgerUC: ledgerUC, queryUC: queryUC}
}

// List godoc
// @Summary      Listar artículos de inventario
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        search     query  string  false  "Busca por nombre o código"
// @Param        page       query  int     false  "Página (desde 1)"
// @Param        page_size  query  int     false  "Tamaño de página"
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/stock [get]
func (h *StockHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	items, pagination, err := h.queryUC.ListItems(c.Context(), c.Query("search"), page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"items": items, "pagination": pagination})
}

// GetByID godoc
// @Summary      Detalle de un artículo
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del artículo"
// @Success      200  {object}  dto.StockItemResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stock/{id} [get]
func (h *StockHandler) GetByID(c *fiber.Ctx) error {
	item, err := h.queryUC.GetItem(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(item)
}

// ListMovements godoc
// @Summary      Historial de movimientos de un artículo
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        id         path   string  true   "ID del artículo"
// @Param        page       query  int     false  "Página (desde 1)"
// @Param        page_size  query  int     false  "Tamaño de página"
// @Success      200  {array}   dto.StockMovementResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stock/{id}/movements [get]
func (h *StockHandler) ListMovements(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	movs, err := h.queryUC.ListMovements(c.Context(), c.Params("id"), page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"movements": movs})
}

// ApplyMovement godoc
// @Summary      Aplicar un movimiento de stock
// @Description  Registra un INCREASE o DECREASE en el ledger y actualiza las
//
//	cantidades del artículo en la misma transacción.
//
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ApplyMovementRequest  true  "stock_item_id, kind, qty, unit_cost, reason"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/stock/movements [post]
func (h *StockHandler) ApplyMovement(c *fiber.Ctx) error {
	actor := GetUserID(c)
	if actor == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.ApplyMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	result, err := h.ledgerUC.ApplyMovement(c.Context(), ledger.MovementInput{
		StockItemID: in.StockItemID,
		Kind:        in.Kind,
		Qty:         in.Qty,
		UnitCost:    in.UnitCost,
		Reason:      in.Reason,
		Actor:       actor,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.MovementResponse{
		MovementID: result.MovementID,
		QtyBefore:  result.QtyBefore,
		QtyAfter:   result.QtyAfter,
	})
}
