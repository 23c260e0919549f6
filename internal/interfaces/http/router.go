package http

import (
	"github.com/gofiber/fiber/v2"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Auth      *AuthHandler
	Stock     *StockHandler
	Sales     *SalesHandler
	Catalog   *CatalogHandler
	JWTSecret string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authGroup.Post("/register", deps.Auth.Register)
	authGroup.Post("/login", deps.Auth.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Stock (protegido)
	stock := protected.Group("/stock")
	stock.Get("/", deps.Stock.List)
	stock.Post("/movements", deps.Stock.ApplyMovement)
	stock.Get("/:id", deps.Stock.GetByID)
	stock.Get("/:id/movements", deps.Stock.ListMovements)

	// Ventas (protegido). /counts va antes de /:id para que no lo capture.
	salesGroup := protected.Group("/sales")
	salesGroup.Get("/", deps.Catalog.List)
	salesGroup.Post("/", deps.Sales.Create)
	salesGroup.Get("/counts", deps.Catalog.Counts)
	salesGroup.Get("/:id", deps.Sales.GetByID)
	salesGroup.Post("/:id/payments", deps.Sales.RecordPayment)
	salesGroup.Post("/:id/cancel", deps.Sales.Cancel)
	salesGroup.Get("/:id/movements", deps.Sales.Movements)
	salesGroup.Get("/:id/receipt", deps.Sales.Receipt)
}
