package repository

import "github.com/tu-usuario/consigna-pro/internal/domain/entity"

// ClientRepository define el puerto de consulta de clientes. El CRUD completo
// vive en el módulo de clientes, fuera de este núcleo; aquí solo se valida
// que el cliente de una orden exista.
type ClientRepository interface {
	GetByID(id string) (*entity.Client, error)
}
