package entity

import "time"

// Client representa un cliente de la tienda: comprador o consignante
// (quien entrega artículos para venta en consignación). El CRUD de clientes
// vive fuera de este núcleo; aquí solo se consulta como dato maestro.
type Client struct {
	ID          string
	Name        string
	Email       string
	Phone       string
	IsConsignor bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
