package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/consigna-pro/internal/application/catalog"
	"github.com/tu-usuario/consigna-pro/internal/application/dto"
	"github.com/tu-usuario/consigna-pro/internal/domain/repository"
)

// CatalogHandler sirve las siete pestañas del catálogo de ventas y sus badges.
type CatalogHandler struct {
	aggregator *catalog.Aggregator
	countsUC   *catalog.CountsUseCase
}

// NewCatalogHandler construye el handler.
func NewCatalogHandler(aggregator *catalog.Aggregator, countsUC *catalog.CountsUseCase) *CatalogHandler {
	return &CatalogHandler{aggregator: aggregator, countsUC: countsUC}
}

// List godoc
// @Summary      Listar órdenes por pestaña del catálogo
// @Tags         catalog
// @Security     Bearer
// @Produce      json
// @Param        category   query  string  false  "ALL, REGULAR, LAYAWAY, OVERDUE, CONSIGNED, PAID, CANCELLED (defecto ALL)"
// @Param        search     query  string  false  "Busca por ID de orden o nombre de cliente"
// @Param        date_from  query  string  false  "YYYY-MM-DD"
// @Param        date_to    query  string  false  "YYYY-MM-DD"
// @Param        sort_by    query  string  false  "date_purchased o total (defecto date_purchased)"
// @Param        order_by   query  string  false  "asc o desc (defecto desc)"
// @Param        page       query  int     false  "Página (desde 1)"
// @Success      200  {object}  dto.CatalogViewResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/sales [get]
func (h *CatalogHandler) List(c *fiber.Ctx) error {
	category := c.Query("category", repository.CategoryAll)

	filter := catalog.Filter{
		Search:  c.Query("search"),
		SortBy:  c.Query("sort_by"),
		OrderBy: c.Query("order_by"),
	}
	if raw := c.Query("date_from"); raw != "" {
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "date_from inválida (YYYY-MM-DD)", Fields: []string{"date_from"}})
		}
		filter.DateFrom = &t
	}
	if raw := c.Query("date_to"); raw != "" {
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "date_to inválida (YYYY-MM-DD)", Fields: []string{"date_to"}})
		}
		// Inclusivo: el día completo entra en el rango.
		end := t.AddDate(0, 0, 1).Add(-time.Nanosecond)
		filter.DateTo = &end
	}

	resp, err := h.aggregator.Refresh(c.Context(), category, filter, c.QueryInt("page", 1))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// Counts godoc
// @Summary      Totales por pestaña (badges)
// @Tags         catalog
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.CategoryCountsResponse
// @Router       /api/sales/counts [get]
func (h *CatalogHandler) Counts(c *fiber.Ctx) error {
	resp, err := h.countsUC.Counts(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}
